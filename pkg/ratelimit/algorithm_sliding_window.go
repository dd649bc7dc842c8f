package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// SlidingWindowAlgorithm admits a request when fewer than limit requests
// were recorded in the trailing window. When the store implements
// AtomicRateLimitStore the check and the record happen under one lock,
// so concurrent requests cannot sneak past the limit together.
type SlidingWindowAlgorithm struct {
	clock Clock
}

// NewSlidingWindowAlgorithm creates the algorithm; a nil clock means the
// system clock.
func NewSlidingWindowAlgorithm(clock Clock) *SlidingWindowAlgorithm {
	if clock == nil {
		clock = &SystemClock{}
	}
	return &SlidingWindowAlgorithm{clock: clock}
}

// IsAllowed checks and records one request for the key.
func (a *SlidingWindowAlgorithm) IsAllowed(
	ctx context.Context,
	key string,
	store RateLimitStore,
	limit int,
	window time.Duration,
) (*RateLimitDecision, error) {
	now := a.clock.Now()
	cutoff := now.Add(-window)
	resetAt := now.Add(window)

	if atomicStore, ok := store.(AtomicRateLimitStore); ok {
		allowed, count, err := atomicStore.CheckAndAddRequest(ctx, key, now, cutoff, limit)
		if err != nil {
			return nil, fmt.Errorf("check and add request: %w", err)
		}
		if !allowed {
			return NewDeniedDecision(key, "", limit, resetAt), nil
		}
		return NewAllowedDecision(key, "", limit, limit-count, resetAt), nil
	}

	// Non-atomic fallback: count, then record. A concurrent burst can
	// overshoot the limit by the number of in-flight requests.
	count, err := store.GetRequestCount(ctx, key, cutoff)
	if err != nil {
		return nil, fmt.Errorf("get request count: %w", err)
	}
	if count >= limit {
		return NewDeniedDecision(key, "", limit, resetAt), nil
	}
	if err := store.AddRequest(ctx, key, now); err != nil {
		return nil, fmt.Errorf("add request: %w", err)
	}
	return NewAllowedDecision(key, "", limit, limit-count-1, resetAt), nil
}

// GetWindowDuration returns zero: the window is supplied per call, not
// fixed per algorithm instance.
func (a *SlidingWindowAlgorithm) GetWindowDuration() time.Duration {
	return 0
}
