// Package observability provides OpenTelemetry tracing and metrics for
// firekit database calls.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("firekit")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("firekit")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("firekit"))
//	client, err := rtdb.New(endpoint, rtdb.WithMetrics(metrics))
//
// Each verb call is wrapped in an OperationContext that starts a span,
// tracks the active-request gauge and records duration and status on end.
package observability
