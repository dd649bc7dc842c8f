package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bookshelf/pkg/ratelimit"
)

// IPRateLimiterConfig configures per-IP request limiting.
type IPRateLimiterConfig struct {
	// Limit is the maximum number of requests per IP within the window.
	Limit int

	// Window is the sliding window duration.
	Window time.Duration

	// Enabled toggles the limiter; when false requests pass through.
	Enabled bool

	// LimiterType names the limiter in headers, logs and metrics
	// ("ip" for the general limiter, "auth" for the token endpoint).
	LimiterType string
}

// DefaultIPRateLimiterConfig returns 100 requests per minute per IP.
func DefaultIPRateLimiterConfig() IPRateLimiterConfig {
	return IPRateLimiterConfig{
		Limit:       100,
		Window:      time.Minute,
		Enabled:     true,
		LimiterType: "ip",
	}
}

// IPRateLimiter is the HTTP adapter over pkg/ratelimit: it extracts the
// client IP, consults the sliding-window algorithm and answers 429 with
// X-RateLimit-* headers when the limit is exceeded. Store failures fail
// open so the limiter can never take the API down.
type IPRateLimiter struct {
	config      IPRateLimiterConfig
	ipExtractor IPExtractor
	store       ratelimit.RateLimitStore
	algorithm   ratelimit.RateLimitAlgorithm
	metrics     ratelimit.RateLimitMetrics
}

// NewIPRateLimiter wires a limiter from its parts. Zero or negative
// config values fall back to the defaults.
func NewIPRateLimiter(
	config IPRateLimiterConfig,
	ipExtractor IPExtractor,
	store ratelimit.RateLimitStore,
	algorithm ratelimit.RateLimitAlgorithm,
	metrics ratelimit.RateLimitMetrics,
) *IPRateLimiter {
	if config.Limit <= 0 {
		config.Limit = 100
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.LimiterType == "" {
		config.LimiterType = "ip"
	}
	return &IPRateLimiter{
		config:      config,
		ipExtractor: ipExtractor,
		store:       store,
		algorithm:   algorithm,
		metrics:     metrics,
	}
}

// Middleware returns the rate limiting handler wrapper.
func (rl *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			ip, err := rl.ipExtractor.ExtractIP(r)
			if err != nil {
				slog.Error("rate limiter: failed to extract IP, allowing request",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			decision, err := rl.algorithm.IsAllowed(r.Context(), ip, rl.store, rl.config.Limit, rl.config.Window)

			if rl.metrics != nil {
				rl.metrics.RecordCheckDuration(rl.config.LimiterType, time.Since(start))
			}

			if err != nil {
				// Fail open: a broken limiter must not break the API.
				slog.Error("rate limiter: check failed, allowing request",
					slog.String("error", err.Error()),
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			decision.LimiterType = rl.config.LimiterType
			rl.setRateLimitHeaders(w, decision)

			if decision.IsDenied() {
				rl.writeRateLimitError(w, r, decision)
				return
			}

			if rl.metrics != nil {
				rl.metrics.RecordAllowed(rl.config.LimiterType, r.URL.Path)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *IPRateLimiter) setRateLimitHeaders(w http.ResponseWriter, decision *ratelimit.RateLimitDecision) {
	if decision == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAtUnix(), 10))
	w.Header().Set("X-RateLimit-Type", rl.config.LimiterType)
}

func (rl *IPRateLimiter) writeRateLimitError(w http.ResponseWriter, r *http.Request, decision *ratelimit.RateLimitDecision) {
	retryAfter := decision.RetryAfterSeconds()
	w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	response := map[string]any{
		"error":       "rate_limit_exceeded",
		"message":     "Too many requests from this IP address",
		"retry_after": retryAfter,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("rate limiter: failed to encode response",
			slog.String("error", err.Error()),
		)
	}

	if rl.metrics != nil {
		rl.metrics.RecordDenied(rl.config.LimiterType, r.URL.Path)
	}

	slog.Warn("rate limit exceeded",
		slog.String("limiter_type", rl.config.LimiterType),
		slog.String("key", decision.Key),
		slog.Int("limit", decision.Limit),
		slog.Int64("retry_after", retryAfter),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	)
}
