// Package httpclient is the HTTP transport used by firekit to talk to the
// database's REST interface.
//
// An Adapter performs exactly one exchange per Do call. It applies default
// headers, optional client-side rate limiting and TLS settings, reads the
// whole response body and classifies the outcome into a typed *Error:
// network failures, body read failures and non-2xx statuses are all
// distinguishable. It never retries.
//
// # Basic Usage
//
//	a, err := httpclient.New(httpclient.Config{Timeout: 10 * time.Second})
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://dinosaur-facts.firebaseio.com/dinosaurs.json",
//	})
package httpclient
