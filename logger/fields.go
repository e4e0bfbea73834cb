package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldKind      = "kind"
	FieldDuration  = "duration_ms"
	FieldEndpoint  = "endpoint"
)

// Fields builds a map[string]any from alternating key-value pairs.
//
//	log.Debug("done", logger.Fields("method", "PUT", "status", 200))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
