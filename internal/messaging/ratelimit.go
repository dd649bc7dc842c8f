package messaging

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements token bucket algorithm for publish throttling.
// It keeps event bursts from flooding the broker connection.
type RateLimiter struct {
	rate    rate.Limit
	burst   int
	limiter *rate.Limiter
}

// NewRateLimiter creates a new RateLimiter with the specified rate and burst capacity.
//
// Parameters:
//   - publishesPerSecond: Maximum sustained publish rate (e.g., 50.0 for 50 publishes per second)
//   - burst: Maximum number of publishes that can be made in a burst (e.g., 100)
//
// The token bucket algorithm allows up to 'burst' publishes immediately,
// then refills tokens at 'publishesPerSecond' rate.
//
// Example:
//
//	limiter := NewRateLimiter(50.0, 100)  // 50 publishes/s with burst of 100
func NewRateLimiter(publishesPerSecond float64, burst int) *RateLimiter {
	r := rate.Limit(publishesPerSecond)
	l := rate.NewLimiter(r, burst)

	return &RateLimiter{
		rate:    r,
		burst:   burst,
		limiter: l,
	}
}

// Allow blocks until a token is available or the context is canceled.
// It should be called before handing a message to the broker.
//
// Parameters:
//   - ctx: Context for cancellation control
//
// Returns:
//   - error: Non-nil if context was canceled or deadline exceeded
//
// Example:
//
//	if err := limiter.Allow(ctx); err != nil {
//	    return fmt.Errorf("publish rate limit: %w", err)
//	}
//	// Proceed with the publish
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
