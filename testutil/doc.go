// Package testutil provides test infrastructure for firekit: an in-memory
// fake Realtime Database served over TLS, certificate generation and a
// transport that routes *.firebaseio.com to the fake.
//
// # Quick Start
//
//	func TestFeature(t *testing.T) {
//	    db := testutil.NewFakeDB(t)
//	    testutil.T(t).Setup(db)
//
//	    client, _ := rtdb.New(db.Endpoint("demo"),
//	        rtdb.WithHTTPOptions(httpclient.WithRoundTripper(db.Transport())))
//	    // ...
//	    last, ok := db.LastRequest()
//	}
//
// The fake keeps one JSON tree. GET, PUT, POST, PATCH and DELETE behave like
// the REST interface, including a subset of the ordering and filtering
// query parameters. Every request is recorded for inspection.
//
// # Components
//
// FakeDB implements TestComponent: Start and Stop manage the listener,
// Reset clears data and recorded requests, Snapshot and Restore capture and
// restore the tree.
package testutil
