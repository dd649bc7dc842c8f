package ratelimit

import (
	"fmt"
	"time"
)

// RateLimitConfig holds the limiter settings used by the HTTP middleware:
// a general per-IP limit for the API surface and a stricter limit for the
// token endpoint, plus memory management for the in-memory store.
type RateLimitConfig struct {
	// Enabled switches rate limiting on and off globally.
	Enabled bool

	// DefaultIPLimit is the number of requests allowed per IP per window.
	DefaultIPLimit int

	// DefaultIPWindow is the window for the per-IP limit.
	DefaultIPWindow time.Duration

	// AuthLimit is the stricter per-IP limit applied to /auth/token.
	AuthLimit int

	// AuthWindow is the window for the auth limit.
	AuthWindow time.Duration

	// MaxActiveKeys bounds the number of keys the store tracks before
	// evicting the least recently used.
	MaxActiveKeys int

	// CleanupInterval is how often the background cleanup loop runs.
	CleanupInterval time.Duration

	// CleanupMaxAge is the age past which timestamps are dropped by cleanup.
	CleanupMaxAge time.Duration
}

// Validate checks the configuration for values that would break the limiter.
func (c *RateLimitConfig) Validate() error {
	if c.DefaultIPLimit < 0 {
		return fmt.Errorf("DefaultIPLimit must be non-negative, got %d", c.DefaultIPLimit)
	}
	if c.DefaultIPWindow <= 0 {
		return fmt.Errorf("DefaultIPWindow must be positive, got %v", c.DefaultIPWindow)
	}
	if c.AuthLimit < 0 {
		return fmt.Errorf("AuthLimit must be non-negative, got %d", c.AuthLimit)
	}
	if c.AuthWindow <= 0 {
		return fmt.Errorf("AuthWindow must be positive, got %v", c.AuthWindow)
	}
	if c.MaxActiveKeys <= 0 {
		return fmt.Errorf("MaxActiveKeys must be positive, got %d", c.MaxActiveKeys)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("CleanupInterval must be positive, got %v", c.CleanupInterval)
	}
	if c.CleanupMaxAge <= 0 {
		return fmt.Errorf("CleanupMaxAge must be positive, got %v", c.CleanupMaxAge)
	}
	return nil
}

// ApplyDefaults overwrites every field with the default configuration.
// Called when validation fails on env-loaded values.
func (c *RateLimitConfig) ApplyDefaults() {
	*c = *DefaultConfig()
}

// DefaultConfig returns the configuration used when nothing is set in the
// environment: 100 requests per IP per minute, 10 token requests per IP
// per minute.
func DefaultConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:         true,
		DefaultIPLimit:  100,
		DefaultIPWindow: 1 * time.Minute,
		AuthLimit:       10,
		AuthWindow:      1 * time.Minute,
		MaxActiveKeys:   10000,
		CleanupInterval: 5 * time.Minute,
		CleanupMaxAge:   1 * time.Hour,
	}
}
