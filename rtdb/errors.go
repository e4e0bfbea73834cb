package rtdb

import (
	apperrors "github.com/kbukum/firekit/errors"
)

// Sentinels for errors.Is. Returned errors carry the same code and
// additional detail.
var (
	// ErrInvalidEndpoint is returned by New when the endpoint fails validation.
	ErrInvalidEndpoint = apperrors.New(apperrors.ErrCodeInvalidEndpoint, "Invalid Endpoint")
	// ErrTransport is returned when an exchange could not be completed or
	// completed with a non-2xx status.
	ErrTransport = apperrors.New(apperrors.ErrCodeTransport, "Unable To Send Request")
	// ErrBodyRead is returned when a response body was needed but could not
	// be read.
	ErrBodyRead = apperrors.New(apperrors.ErrCodeBodyRead, "Unable To Parse Body Of Response")
)

// DetailKind is the details key holding the transport failure kind
// ("timeout", "connection", "auth", ...) of ErrTransport and ErrBodyRead
// errors.
const DetailKind = "kind"

// StatusCode returns the HTTP status of a status-level transport failure,
// or 0 when err carries none.
func StatusCode(err error) int {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return 0
}
