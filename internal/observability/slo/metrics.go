// Package slo defines the service level objectives of the bookshelf API and
// the gauges that track how the service measures against them.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets. The gauges below are expected to be updated periodically
// (e.g. once a minute) from recent measurements.
const (
	// AvailabilitySLO is the target uptime percentage (99.9% allows about
	// 43 minutes of downtime per month).
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the p95 latency target in seconds.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the p99 latency target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum acceptable 5xx ratio.
	ErrorRateSLO = 0.001

	// EventDeliverySLO is the target ratio of book events that reach the
	// broker while the messaging client is connected. Degraded-mode drops
	// are excluded: they are an accepted operating mode, not a failure.
	EventDeliverySLO = 0.999
)

var (
	// SLOAvailability is (total_requests - 5xx) / total_requests.
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOLatencyP95 is derived from the http_request_duration_seconds histogram.
	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "Current p95 latency in seconds, target: 0.200",
		},
	)

	// SLOLatencyP99 is derived from the http_request_duration_seconds histogram.
	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "Current p99 latency in seconds, target: 0.500",
		},
	)

	// SLOErrorRate is 5xx / total_requests.
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)

	// SLOEventDelivery is successful publishes / attempted publishes on a
	// connected messaging client.
	SLOEventDelivery = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_event_delivery_ratio",
			Help: "Current book event delivery ratio (0-1) while connected, target: 0.999",
		},
	)
)

// UpdateAvailability sets the availability gauge.
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateLatencyP95 sets the p95 latency gauge (seconds).
//
// Example Prometheus query feeding this value:
//
//	histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
func UpdateLatencyP95(seconds float64) {
	SLOLatencyP95.Set(seconds)
}

// UpdateLatencyP99 sets the p99 latency gauge (seconds).
func UpdateLatencyP99(seconds float64) {
	SLOLatencyP99.Set(seconds)
}

// UpdateErrorRate sets the error-rate gauge.
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}

// UpdateEventDelivery sets the event-delivery gauge.
func UpdateEventDelivery(ratio float64) {
	SLOEventDelivery.Set(ratio)
}
