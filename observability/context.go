package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Status values recorded on spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OperationContext holds observability context for one database call.
type OperationContext struct {
	ServiceName   string
	OperationName string
	Method        string
	URL           string
	RequestID     string
	// HTTPStatus is set by the caller once a response arrives.
	HTTPStatus int
	StartTime  time.Time
	Metrics    *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(serviceName, operationName, requestID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		RequestID:     requestID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

// operationContextKey is the context key for OperationContext.
type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// StartSpanForOperation starts a client span, stores the operation context
// in the returned context and records the request start metric.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
		attribute.String(AttrRequestID, oc.RequestID),
		attribute.String(AttrDBSystem, DBSystem),
	)
	if oc.Method != "" {
		span.SetAttributes(attribute.String(AttrHTTPMethod, oc.Method))
	}
	if oc.URL != "" {
		span.SetAttributes(attribute.String(AttrURL, oc.URL))
	}

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestStart(ctx)
	}
	return WithOperationContext(ctx, oc), span
}

// EndOperation ends the span and records request-end metrics. errCode is
// recorded on the error counter when err is non-nil.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, err error, errCode string) {
	duration := time.Since(oc.StartTime)
	status := StatusOK

	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	if oc.HTTPStatus != 0 {
		span.SetAttributes(attribute.Int(AttrHTTPStatus, oc.HTTPStatus))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestEnd(ctx, oc.ServiceName, oc.OperationName, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, errCode, oc.OperationName)
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
