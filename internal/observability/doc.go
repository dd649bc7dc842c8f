// Package observability groups the logging, metrics, tracing and SLO
// infrastructure shared by the API server, the digest worker and the
// publish CLI.
//
// Subpackages:
//   - logging: structured logging with slog and request-ID propagation
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracing middleware
//   - slo: service level objective gauges
//
// Example usage:
//
//	import (
//	    "bookshelf/internal/observability/logging"
//	    "bookshelf/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordBookEventPublished("book.created")
//	}
package observability
