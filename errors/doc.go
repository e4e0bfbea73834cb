// Package errors provides the structured error type shared by firekit
// packages. Every failure carries a machine-readable ErrorCode, a
// human-readable message, optional details and the underlying cause.
//
// Errors compare by code, so sentinels work with the standard library:
//
//	if errors.Is(err, rtdb.ErrTransport) {
//	    // the exchange could not be completed
//	}
package errors
