package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors
const (
	// ErrCodeInvalidEndpoint indicates the database endpoint failed validation.
	ErrCodeInvalidEndpoint ErrorCode = "INVALID_ENDPOINT"
	// ErrCodeInvalidConfig indicates a configuration struct failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Exchange errors
const (
	// ErrCodeTransport indicates an HTTP exchange could not be completed or
	// completed with a non-2xx status.
	ErrCodeTransport ErrorCode = "TRANSPORT_FAILED"
	// ErrCodeBodyRead indicates the exchange completed but the response body
	// could not be read.
	ErrCodeBodyRead ErrorCode = "BODY_READ_FAILED"
)

// Payload errors
const (
	// ErrCodeEncode indicates a value could not be encoded as JSON.
	ErrCodeEncode ErrorCode = "ENCODE_FAILED"
	// ErrCodeDecode indicates a response body could not be decoded.
	ErrCodeDecode ErrorCode = "DECODE_FAILED"
	// ErrCodeInvalidQuery indicates a JSONPath expression could not be parsed.
	ErrCodeInvalidQuery ErrorCode = "INVALID_QUERY"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransport: true,
	ErrCodeBodyRead:  true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Nothing in firekit retries; the flag is informational for callers.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
