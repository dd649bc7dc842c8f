package ratelimit_test

import (
	"testing"
	"time"

	"bookshelf/pkg/ratelimit"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherMetric(t *testing.T, registry *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestPrometheusMetricsRecording(t *testing.T) {
	t.Parallel()

	m := ratelimit.NewPrometheusMetrics()

	m.RecordAllowed("ip", "/books")
	m.RecordAllowed("ip", "/books")
	m.RecordDenied("auth", "/auth/token")
	m.RecordCheckDuration("ip", 50*time.Microsecond)
	m.SetActiveKeys("ip", 12)
	m.RecordEviction("ip", 3)

	allowed := gatherMetric(t, m.Registry(), "ratelimit_allowed_total")
	if allowed == nil {
		t.Fatal("ratelimit_allowed_total not registered")
	}
	if got := allowed.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("allowed counter = %v, want 2", got)
	}

	denied := gatherMetric(t, m.Registry(), "ratelimit_denied_total")
	if denied == nil {
		t.Fatal("ratelimit_denied_total not registered")
	}
	if got := denied.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Errorf("denied counter = %v, want 1", got)
	}

	keys := gatherMetric(t, m.Registry(), "ratelimit_active_keys")
	if got := keys.GetMetric()[0].GetGauge().GetValue(); got != 12 {
		t.Errorf("active keys gauge = %v, want 12", got)
	}

	evicted := gatherMetric(t, m.Registry(), "ratelimit_evicted_keys_total")
	if got := evicted.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Errorf("evicted counter = %v, want 3", got)
	}
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	t.Parallel()

	// Each instance owns its registry, so two instances in one process
	// must not panic with duplicate registration.
	a := ratelimit.NewPrometheusMetrics()
	b := ratelimit.NewPrometheusMetrics()

	a.RecordAllowed("ip", "/books")
	b.RecordAllowed("ip", "/books")

	am := gatherMetric(t, a.Registry(), "ratelimit_allowed_total")
	if got := am.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Errorf("instance a counter = %v, want 1", got)
	}
}

func TestNoOpMetricsDoesNothing(t *testing.T) {
	t.Parallel()

	m := ratelimit.NewNoOpMetrics()
	m.RecordAllowed("ip", "/books")
	m.RecordDenied("ip", "/books")
	m.RecordCheckDuration("ip", time.Millisecond)
	m.SetActiveKeys("ip", 5)
	m.RecordEviction("ip", 1)
	// Nothing to assert; the calls simply must not panic.
}
