package http

import (
	"context"
	"log/slog"
	"time"

	"bookshelf/pkg/ratelimit"
)

// StartRateLimitCleanup periodically removes expired timestamps from the
// rate limit store so memory does not grow with client churn. It blocks
// until ctx is cancelled and is meant to run in its own goroutine.
func StartRateLimitCleanup(
	ctx context.Context,
	store ratelimit.RateLimitStore,
	interval time.Duration,
	windowDuration time.Duration,
	limiterType string,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter_type", limiterType),
		slog.Duration("interval", interval),
		slog.Duration("window_duration", windowDuration))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter_type", limiterType))
			return

		case <-ticker.C:
			// Entries older than twice the window can never affect a
			// rate limit decision again.
			cutoff := time.Now().Add(-2 * windowDuration)
			if err := store.Cleanup(ctx, cutoff); err != nil {
				slog.Warn("rate limit cleanup failed",
					slog.String("limiter_type", limiterType),
					slog.String("error", err.Error()))
				continue
			}

			if keyCount, err := store.KeyCount(ctx); err == nil {
				slog.Debug("rate limit cleanup completed",
					slog.String("limiter_type", limiterType),
					slog.Int("active_keys", keyCount))
			}
		}
	}
}
