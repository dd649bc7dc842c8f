package ratelimit_test

import (
	"strings"
	"testing"
	"time"

	"bookshelf/pkg/ratelimit"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	if err := ratelimit.DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *ratelimit.RateLimitConfig { return ratelimit.DefaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*ratelimit.RateLimitConfig)
		wantSub string
	}{
		{
			name:    "negative IP limit",
			mutate:  func(c *ratelimit.RateLimitConfig) { c.DefaultIPLimit = -1 },
			wantSub: "DefaultIPLimit",
		},
		{
			name:    "zero IP window",
			mutate:  func(c *ratelimit.RateLimitConfig) { c.DefaultIPWindow = 0 },
			wantSub: "DefaultIPWindow",
		},
		{
			name:    "negative auth limit",
			mutate:  func(c *ratelimit.RateLimitConfig) { c.AuthLimit = -5 },
			wantSub: "AuthLimit",
		},
		{
			name:    "zero auth window",
			mutate:  func(c *ratelimit.RateLimitConfig) { c.AuthWindow = 0 },
			wantSub: "AuthWindow",
		},
		{
			name:    "zero max keys",
			mutate:  func(c *ratelimit.RateLimitConfig) { c.MaxActiveKeys = 0 },
			wantSub: "MaxActiveKeys",
		},
		{
			name:    "negative cleanup interval",
			mutate:  func(c *ratelimit.RateLimitConfig) { c.CleanupInterval = -time.Second },
			wantSub: "CleanupInterval",
		},
		{
			name:    "zero cleanup max age",
			mutate:  func(c *ratelimit.RateLimitConfig) { c.CleanupMaxAge = 0 },
			wantSub: "CleanupMaxAge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	cfg := &ratelimit.RateLimitConfig{DefaultIPLimit: -1}
	cfg.ApplyDefaults()

	if *cfg != *ratelimit.DefaultConfig() {
		t.Errorf("ApplyDefaults() = %+v, want %+v", cfg, ratelimit.DefaultConfig())
	}
}
