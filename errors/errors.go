package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified firekit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation could succeed when repeated.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the upstream status code for status-level failures,
	// zero otherwise.
	HTTPStatus int `json:"http_status,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError carrying the same code.
// This lets package-level sentinels match freshly constructed errors.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidEndpoint creates an error for an endpoint that failed validation.
func InvalidEndpoint(endpoint string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidEndpoint, Message: "Invalid Endpoint",
		Details: map[string]any{"endpoint": endpoint},
	}
}

// InvalidConfig creates an error for a configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// TransportFailed creates an error for an exchange that could not be completed.
func TransportFailed(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransport, Message: fmt.Sprintf("Unable to send %s request", operation),
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// UnexpectedStatus creates a transport error for a completed exchange whose
// status code was outside 2xx. The response body is kept in details.
func UnexpectedStatus(operation string, status int, body []byte) *AppError {
	return &AppError{
		Code: ErrCodeTransport, Message: fmt.Sprintf("%s request returned HTTP %d", operation, status),
		HTTPStatus: status,
		Retryable:  status == http.StatusTooManyRequests || status >= http.StatusInternalServerError,
		Details:    map[string]any{"operation": operation, "body": string(body)},
	}
}

// BodyReadFailed creates an error for a response body that could not be read.
func BodyReadFailed(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeBodyRead, Message: fmt.Sprintf("Unable to parse body of %s response", operation),
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// EncodeFailed creates an error for a value that could not be encoded.
func EncodeFailed(cause error) *AppError {
	return &AppError{Code: ErrCodeEncode, Message: "Unable to encode request value", Cause: cause}
}

// DecodeFailed creates an error for a response that could not be decoded.
func DecodeFailed(cause error) *AppError {
	return &AppError{Code: ErrCodeDecode, Message: "Unable to decode response body", Cause: cause}
}

// InvalidQuery creates an error for a JSONPath expression that failed to parse.
func InvalidQuery(expr string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidQuery, Message: fmt.Sprintf("Invalid JSONPath expression %q", expr),
		Cause: cause, Details: map[string]any{"expression": expr},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
