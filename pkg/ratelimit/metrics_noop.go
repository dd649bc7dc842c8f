package ratelimit

import "time"

// NoOpMetrics discards every measurement. Used in tests and in tools that
// embed the limiter without a metrics pipeline.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a NoOpMetrics.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordAllowed does nothing.
func (m *NoOpMetrics) RecordAllowed(limiterType, endpoint string) {}

// RecordDenied does nothing.
func (m *NoOpMetrics) RecordDenied(limiterType, endpoint string) {}

// RecordCheckDuration does nothing.
func (m *NoOpMetrics) RecordCheckDuration(limiterType string, duration time.Duration) {}

// SetActiveKeys does nothing.
func (m *NoOpMetrics) SetActiveKeys(limiterType string, count int) {}

// RecordEviction does nothing.
func (m *NoOpMetrics) RecordEviction(limiterType string, count int) {}
