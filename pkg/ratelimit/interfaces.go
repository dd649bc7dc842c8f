// Package ratelimit provides framework-agnostic rate limiting with
// pluggable storage backends, algorithms and metrics collectors. The HTTP
// middleware builds on it; nothing in here knows about net/http.
package ratelimit

import (
	"context"
	"time"
)

// RateLimitStore stores request timestamps per key. All methods must be
// safe for concurrent use.
type RateLimitStore interface {
	// AddRequest records a request timestamp for the key.
	AddRequest(ctx context.Context, key string, timestamp time.Time) error

	// GetRequestCount returns the number of requests for the key that
	// occurred after the cutoff time.
	GetRequestCount(ctx context.Context, key string, cutoff time.Time) (int, error)

	// Cleanup removes timestamps older than the cutoff from all keys and
	// drops keys that become empty.
	Cleanup(ctx context.Context, cutoff time.Time) error

	// KeyCount returns the number of keys currently tracked.
	KeyCount(ctx context.Context) (int, error)
}

// AtomicRateLimitStore extends RateLimitStore with a combined
// check-and-record operation, closing the TOCTOU window between counting
// and recording under concurrency.
type AtomicRateLimitStore interface {
	RateLimitStore

	// CheckAndAddRequest atomically counts requests after cutoff and, when
	// the count is below limit, records the new timestamp. It returns
	// whether the request was admitted and the count including it.
	CheckAndAddRequest(ctx context.Context, key string, timestamp, cutoff time.Time, limit int) (allowed bool, count int, err error)
}

// RateLimitAlgorithm decides whether a request identified by key is allowed
// under the given limit and window.
type RateLimitAlgorithm interface {
	IsAllowed(ctx context.Context, key string, store RateLimitStore, limit int, window time.Duration) (*RateLimitDecision, error)

	// GetWindowDuration returns the effective window, used to compute
	// reset times and retry delays.
	GetWindowDuration() time.Duration
}

// RateLimitMetrics records rate limiting outcomes. Implementations exist
// for Prometheus and as a no-op for tests.
type RateLimitMetrics interface {
	// RecordAllowed records a check that admitted the request.
	RecordAllowed(limiterType, endpoint string)

	// RecordDenied records a rate limit violation.
	RecordDenied(limiterType, endpoint string)

	// RecordCheckDuration records how long one rate limit check took.
	RecordCheckDuration(limiterType string, duration time.Duration)

	// SetActiveKeys records the number of keys currently tracked.
	SetActiveKeys(limiterType string, count int)

	// RecordEviction records keys evicted from the store.
	RecordEviction(limiterType string, count int)
}

// Clock abstracts time.Now for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
