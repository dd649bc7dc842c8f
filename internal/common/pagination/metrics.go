package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated book requests by HTTP status and the
	// page bucket the client asked for. The bucket keeps cardinality flat
	// while still showing how deep clients actually page.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_pagination_requests_total",
			Help: "Total number of paginated book requests",
		},
		[]string{"status", "page_range"},
	)

	// DurationSeconds observes how long the paginated path takes, split by
	// operation (handler, repository).
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "book_pagination_duration_seconds",
			Help:    "Duration of paginated book operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// TotalCount mirrors the most recent COUNT(*) of the books table.
	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "book_total_count",
			Help: "Current total number of books",
		},
	)

	// ErrorsTotal counts pagination failures by type (validation, database,
	// timeout).
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_pagination_errors_total",
			Help: "Total number of book pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records one paginated request.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		getPageRangeBucket(page),
	).Inc()
}

// RecordDuration records the duration of one pagination operation in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount updates the book count gauge.
func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

// RecordError records a pagination failure.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
