// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (books, events, digests)
//   - Messaging client metrics (publishes, drops, degraded mode)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "bookshelf/internal/observability/metrics"
//
//	func publishEvent(topic string, payload []byte) {
//	    start := time.Now()
//	    // ... publish ...
//
//	    metrics.RecordMessagePublished("kafka", topic, time.Since(start))
//	}
package metrics
