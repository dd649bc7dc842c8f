package ratelimit

import (
	"fmt"
	"time"
)

// RateLimitDecision is the outcome of one rate limit check, carrying the
// metadata clients need to back off correctly.
type RateLimitDecision struct {
	// Key is the identifier that was limited (e.g., an IP address).
	Key string

	// Allowed reports whether the request is within the limit.
	Allowed bool

	// Limit is the maximum number of requests per window.
	Limit int

	// Remaining is the number of requests left in the current window;
	// zero when the limit has been reached.
	Remaining int

	// ResetAt is when the current window expires.
	ResetAt time.Time

	// RetryAfter is how long the client should wait before retrying.
	RetryAfter time.Duration

	// LimiterType identifies the limiter that decided (e.g., "ip", "auth").
	LimiterType string
}

// String returns a human-readable representation of the decision.
func (d *RateLimitDecision) String() string {
	if d.Allowed {
		return fmt.Sprintf("RateLimitDecision{Allowed: true, Key: %s, Type: %s, Remaining: %d/%d}",
			d.Key, d.LimiterType, d.Remaining, d.Limit)
	}
	return fmt.Sprintf("RateLimitDecision{Allowed: false, Key: %s, Type: %s, Limit: %d, RetryAfter: %s}",
		d.Key, d.LimiterType, d.Limit, d.RetryAfter)
}

// IsDenied reports whether the request was rejected.
func (d *RateLimitDecision) IsDenied() bool {
	return !d.Allowed
}

// ResetAtUnix returns the reset time as a Unix timestamp, for the
// X-RateLimit-Reset header.
func (d *RateLimitDecision) ResetAtUnix() int64 {
	return d.ResetAt.Unix()
}

// RetryAfterSeconds returns the retry delay in whole seconds, for the
// Retry-After header. Never negative.
func (d *RateLimitDecision) RetryAfterSeconds() int64 {
	seconds := int64(d.RetryAfter.Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// NewAllowedDecision builds a decision admitting the request.
func NewAllowedDecision(key, limiterType string, limit, remaining int, resetAt time.Time) *RateLimitDecision {
	retryAfter := time.Until(resetAt)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return &RateLimitDecision{
		Key:         key,
		Allowed:     true,
		Limit:       limit,
		Remaining:   remaining,
		ResetAt:     resetAt,
		RetryAfter:  retryAfter,
		LimiterType: limiterType,
	}
}

// NewDeniedDecision builds a decision rejecting the request.
func NewDeniedDecision(key, limiterType string, limit int, resetAt time.Time) *RateLimitDecision {
	retryAfter := time.Until(resetAt)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return &RateLimitDecision{
		Key:         key,
		Allowed:     false,
		Limit:       limit,
		Remaining:   0,
		ResetAt:     resetAt,
		RetryAfter:  retryAfter,
		LimiterType: limiterType,
	}
}
