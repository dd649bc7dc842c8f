package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics records limiter activity in a private registry so that
// the package can be instantiated multiple times (API and tests) without
// duplicate-registration panics on the default registry.
type PrometheusMetrics struct {
	registry      *prometheus.Registry
	allowedTotal  *prometheus.CounterVec
	deniedTotal   *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	activeKeys    *prometheus.GaugeVec
	evictedTotal  *prometheus.CounterVec
}

// NewPrometheusMetrics creates the metrics with their own registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	m := &PrometheusMetrics{
		registry: registry,
		allowedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_allowed_total",
				Help: "Total number of requests admitted by the rate limiter",
			},
			[]string{"limiter_type", "endpoint"},
		),
		deniedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_denied_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
			[]string{"limiter_type", "endpoint"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ratelimit_check_duration_seconds",
				Help:    "Duration of rate limit checks in seconds",
				Buckets: []float64{.00001, .0001, .001, .01, .1},
			},
			[]string{"limiter_type"},
		),
		activeKeys: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ratelimit_active_keys",
				Help: "Number of keys currently tracked by the rate limit store",
			},
			[]string{"limiter_type"},
		),
		evictedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_evicted_keys_total",
				Help: "Total number of keys evicted from the rate limit store",
			},
			[]string{"limiter_type"},
		),
	}

	registry.MustRegister(m.allowedTotal, m.deniedTotal, m.checkDuration, m.activeKeys, m.evictedTotal)
	return m
}

// Registry returns the private registry for exposure alongside the default
// /metrics handler.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAllowed records an admitted request.
func (m *PrometheusMetrics) RecordAllowed(limiterType, endpoint string) {
	m.allowedTotal.WithLabelValues(limiterType, endpoint).Inc()
}

// RecordDenied records a rejected request.
func (m *PrometheusMetrics) RecordDenied(limiterType, endpoint string) {
	m.deniedTotal.WithLabelValues(limiterType, endpoint).Inc()
}

// RecordCheckDuration records the duration of one check.
func (m *PrometheusMetrics) RecordCheckDuration(limiterType string, duration time.Duration) {
	m.checkDuration.WithLabelValues(limiterType).Observe(duration.Seconds())
}

// SetActiveKeys records the current key count.
func (m *PrometheusMetrics) SetActiveKeys(limiterType string, count int) {
	m.activeKeys.WithLabelValues(limiterType).Set(float64(count))
}

// RecordEviction records evicted keys.
func (m *PrometheusMetrics) RecordEviction(limiterType string, count int) {
	m.evictedTotal.WithLabelValues(limiterType).Add(float64(count))
}
