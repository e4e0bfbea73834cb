package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind says at which stage an exchange failed.
type Kind int

const (
	// KindRequest means the request could not be built. Nothing was sent.
	KindRequest Kind = iota + 1
	// KindTimeout means the context or the client timeout expired before a
	// response arrived.
	KindTimeout
	// KindConnection means the exchange failed at the network level.
	KindConnection
	// KindBody means a response arrived but its body could not be read.
	KindBody
	// KindAuth is a 401 or 403 status.
	KindAuth
	// KindNotFound is a 404 status.
	KindNotFound
	// KindRateLimit is a 429 status.
	KindRateLimit
	// KindRejected is any other 4xx status, e.g. a malformed query.
	KindRejected
	// KindServer is a 5xx status or any other status outside 2xx.
	KindServer
)

var kindNames = map[Kind]string{
	KindRequest:    "request",
	KindTimeout:    "timeout",
	KindConnection: "connection",
	KindBody:       "body",
	KindAuth:       "auth",
	KindNotFound:   "not_found",
	KindRateLimit:  "rate_limit",
	KindRejected:   "rejected",
	KindServer:     "server",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a classified exchange failure returned by Adapter.Do.
type Error struct {
	Kind Kind
	// StatusCode is the response status, 0 when no response arrived.
	StatusCode int
	// Body is the response body of a status failure.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode > 0 && e.Err != nil:
		return fmt.Sprintf("httpclient: %s (HTTP %d): %v", e.Kind, e.StatusCode, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("httpclient: %s (HTTP %d)", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("httpclient: %s: %v", e.Kind, e.Err)
	default:
		return "httpclient: " + e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// ClassifyStatus returns the error for a completed exchange, or nil for a
// 2xx status.
func ClassifyStatus(status int, body []byte) *Error {
	var kind Kind
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status >= 400 && status < 500:
		kind = KindRejected
	default:
		kind = KindServer
	}
	return &Error{Kind: kind, StatusCode: status, Body: body}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsTimeout reports whether err is a KindTimeout failure.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// IsConnection reports whether err is a KindConnection failure.
func IsConnection(err error) bool { return KindOf(err) == KindConnection }

// IsBody reports whether err is a KindBody failure.
func IsBody(err error) bool { return KindOf(err) == KindBody }

// IsAuth reports whether err is a KindAuth failure.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// IsNotFound reports whether err is a KindNotFound failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
