package config

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"bookshelf/pkg/ratelimit"
)

// LoadRateLimitConfig loads rate limiting configuration from the
// environment. Invalid values produce warnings and safe defaults; the error
// return exists for interface symmetry and is always nil.
//
// Environment variables:
//   - RATELIMIT_ENABLED: enable/disable rate limiting (default: true)
//   - RATELIMIT_IP_LIMIT: requests per IP per window (default: 100)
//   - RATELIMIT_IP_WINDOW: per-IP window (default: 1m)
//   - RATELIMIT_AUTH_LIMIT: token-endpoint requests per IP per window (default: 10)
//   - RATELIMIT_AUTH_WINDOW: token-endpoint window (default: 1m)
//   - RATELIMIT_MAX_KEYS: maximum keys in memory (default: 10000)
//   - RATELIMIT_CLEANUP_INTERVAL: cleanup interval (default: 5m)
func LoadRateLimitConfig() (*ratelimit.RateLimitConfig, error) {
	config := ratelimit.DefaultConfig()

	config.Enabled = GetEnvBool("RATELIMIT_ENABLED", true)

	ipLimit := GetEnvInt("RATELIMIT_IP_LIMIT", 100)
	if ipLimit < 0 {
		slog.Warn("invalid RATELIMIT_IP_LIMIT, using default",
			slog.Int("value", ipLimit),
			slog.Int("default", 100))
		ipLimit = 100
	}
	config.DefaultIPLimit = ipLimit

	ipWindow := GetEnvDuration("RATELIMIT_IP_WINDOW", 1*time.Minute)
	if err := ValidatePositiveDuration(ipWindow); err != nil {
		slog.Warn("invalid RATELIMIT_IP_WINDOW, using default",
			slog.String("value", ipWindow.String()),
			slog.String("default", "1m"),
			slog.String("error", err.Error()))
		ipWindow = 1 * time.Minute
	}
	config.DefaultIPWindow = ipWindow

	authLimit := GetEnvInt("RATELIMIT_AUTH_LIMIT", 10)
	if authLimit < 0 {
		slog.Warn("invalid RATELIMIT_AUTH_LIMIT, using default",
			slog.Int("value", authLimit),
			slog.Int("default", 10))
		authLimit = 10
	}
	config.AuthLimit = authLimit

	authWindow := GetEnvDuration("RATELIMIT_AUTH_WINDOW", 1*time.Minute)
	if err := ValidatePositiveDuration(authWindow); err != nil {
		slog.Warn("invalid RATELIMIT_AUTH_WINDOW, using default",
			slog.String("value", authWindow.String()),
			slog.String("default", "1m"),
			slog.String("error", err.Error()))
		authWindow = 1 * time.Minute
	}
	config.AuthWindow = authWindow

	maxKeys := GetEnvInt("RATELIMIT_MAX_KEYS", 10000)
	if maxKeys <= 0 {
		slog.Warn("invalid RATELIMIT_MAX_KEYS, using default",
			slog.Int("value", maxKeys),
			slog.Int("default", 10000))
		maxKeys = 10000
	}
	config.MaxActiveKeys = maxKeys

	cleanupInterval := GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	if err := ValidatePositiveDuration(cleanupInterval); err != nil {
		slog.Warn("invalid RATELIMIT_CLEANUP_INTERVAL, using default",
			slog.String("value", cleanupInterval.String()),
			slog.String("default", "5m"),
			slog.String("error", err.Error()))
		cleanupInterval = 5 * time.Minute
	}
	config.CleanupInterval = cleanupInterval

	// Not exposed as an env var; one hour covers every configured window.
	config.CleanupMaxAge = 1 * time.Hour

	if err := config.Validate(); err != nil {
		slog.Warn("rate limit configuration validation failed, applying defaults",
			slog.String("error", err.Error()))
		config.ApplyDefaults()
	}

	return config, nil
}

// CSPConfig holds the Content Security Policy settings, which help prevent
// cross-site scripting and other injection attacks against the API docs UI.
type CSPConfig struct {
	// Enabled controls whether CSP headers are applied
	Enabled bool

	// ReportOnly switches to Content-Security-Policy-Report-Only, which
	// logs violations without enforcing
	ReportOnly bool

	// TrustedScriptSources lists additional trusted script sources
	TrustedScriptSources []string

	// TrustedStyleSources lists additional trusted style sources
	TrustedStyleSources []string
}

// LoadCSPConfig loads CSP configuration from CSP_ENABLED (default true) and
// CSP_REPORT_ONLY (default false).
func LoadCSPConfig() (*CSPConfig, error) {
	config := &CSPConfig{
		Enabled:    GetEnvBool("CSP_ENABLED", true),
		ReportOnly: GetEnvBool("CSP_REPORT_ONLY", false),
	}

	return config, nil
}

// ValidateTrustedProxies checks that every entry is valid CIDR notation
// (e.g. "10.0.0.0/8").
func ValidateTrustedProxies(cidrs []string) error {
	for _, cidr := range cidrs {
		if cidr == "" {
			return fmt.Errorf("CIDR cannot be empty")
		}
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid CIDR %q: %w", cidr, err)
		}
	}
	return nil
}
