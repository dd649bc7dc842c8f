package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bookshelf/internal/pkg/config"
)

// Metrics exposes Prometheus metrics for the digest worker. It embeds the
// shared configuration metrics (worker_config_*) and adds job execution
// metrics:
//
//	worker_digest_runs_total{status}        counter, status is success|failure
//	worker_digest_duration_seconds          histogram of run duration
//	worker_digest_books_total               counter of books summarized
//	worker_digest_last_success_timestamp    gauge, Unix time of last success
type Metrics struct {
	*config.ConfigMetrics

	DigestRunsTotal          *prometheus.CounterVec
	DigestDurationSeconds    prometheus.Histogram
	DigestBooksTotal         prometheus.Counter
	DigestLastSuccess        prometheus.Gauge
}

// NewMetrics registers the worker metric set. Metrics register via promauto
// at construction; calling this twice in one process panics.
func NewMetrics() *Metrics {
	return &Metrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		DigestRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_digest_runs_total",
			Help: "Total number of digest runs by status (success/failure)",
		}, []string{"status"}),

		DigestDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_digest_duration_seconds",
			Help:    "Duration of digest runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300, 600},
		}),

		DigestBooksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_digest_books_total",
			Help: "Total number of books summarized across all digest runs",
		}),

		DigestLastSuccess: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_digest_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest run",
		}),
	}
}

// RecordRun counts one digest run. Status is "success" or "failure".
func (m *Metrics) RecordRun(status string) {
	m.DigestRunsTotal.WithLabelValues(status).Inc()
}

// RecordDuration observes how long one digest run took, in seconds.
func (m *Metrics) RecordDuration(seconds float64) {
	m.DigestDurationSeconds.Observe(seconds)
}

// RecordBooks adds the number of books summarized in one run.
func (m *Metrics) RecordBooks(count int) {
	m.DigestBooksTotal.Add(float64(count))
}

// RecordLastSuccess sets the last-success gauge to the current time.
func (m *Metrics) RecordLastSuccess() {
	m.DigestLastSuccess.SetToCurrentTime()
}
