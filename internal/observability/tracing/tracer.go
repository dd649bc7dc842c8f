// Package tracing provides OpenTelemetry tracing for the HTTP surface:
// a shared tracer and a middleware that opens a server span per request and
// exposes the trace ID to clients via the X-Trace-Id header.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the shared tracer for the bookshelf application.
var tracer = otel.Tracer("bookshelf")

// GetTracer returns the shared tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "book.create")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
