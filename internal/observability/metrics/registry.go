// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track application-specific operations
var (
	// BooksTotal tracks total number of books in database
	BooksTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "books_total",
			Help: "Total number of books in the database",
		},
	)

	// BookEventsPublishedTotal counts book lifecycle events handed to the broker
	BookEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_events_published_total",
			Help: "Total number of book events published",
		},
		[]string{"event_type"},
	)

	// DigestRunsTotal counts digest worker runs by outcome
	DigestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest runs",
		},
		[]string{"status"}, // status: success, failure
	)

	// DigestDuration measures time to build and publish a digest
	DigestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_duration_seconds",
			Help:    "Time taken to build and publish a digest",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

// Messaging metrics track the broker client facade
var (
	// MessagesPublishedTotal counts messages delivered to the broker
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "Total number of messages published to the broker",
		},
		[]string{"driver", "topic"},
	)

	// MessagesDroppedTotal counts messages dropped in degraded mode
	MessagesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_dropped_total",
			Help: "Total number of messages dropped in degraded mode",
		},
		[]string{"topic"},
	)

	// MessagePublishFailuresTotal counts failed publish attempts
	MessagePublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "message_publish_failures_total",
			Help: "Total number of failed publish attempts",
		},
		[]string{"driver", "topic"},
	)

	// MessagePublishDuration measures time to publish a single message
	MessagePublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_publish_duration_seconds",
			Help:    "Time taken to publish a single message",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	// MessagingClientDegraded reports whether the client runs degraded
	MessagingClientDegraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "messaging_client_degraded",
			Help: "1 when the messaging client is running in degraded mode, 0 when connected",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
