// Package logger provides structured logging for firekit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields. Loggers enriched with
// WithContext carry the OpenTelemetry trace and span IDs of the active span.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("rtdb")
//	log.Debug("request completed", logger.Fields("method", "GET", "status", 200))
package logger
