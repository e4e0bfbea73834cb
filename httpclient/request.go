package httpclient

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, PUT, POST, PATCH, DELETE).
	Method string
	// URL is the absolute request URL. It is sent as given: the query string
	// is not re-encoded.
	URL string
	// Headers are request-specific headers (merged over the adapter defaults).
	Headers map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any
	// value that will be JSON-encoded. Nil sends no body.
	Body any
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
