package messaging

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("TC-1: should allow publish within rate limit", func(t *testing.T) {
		// Arrange
		limiter := NewRateLimiter(10.0, 5) // 10 publishes/s, burst of 5
		ctx := context.Background()

		// Act
		err := limiter.Allow(ctx)

		// Assert
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("TC-2: should block publish exceeding rate limit", func(t *testing.T) {
		// Arrange
		limiter := NewRateLimiter(1.0, 1) // 1 publish/s, burst of 1
		ctx := context.Background()

		// Consume the single token
		err := limiter.Allow(ctx)
		if err != nil {
			t.Fatalf("first publish should succeed: %v", err)
		}

		// Act - Second publish should be delayed
		start := time.Now()
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()

		err = limiter.Allow(ctxWithTimeout)

		// Assert
		elapsed := time.Since(start)
		if err == nil {
			t.Errorf("expected timeout error, but publish succeeded")
		}
		if elapsed < 90*time.Millisecond {
			t.Logf("warning: expected publish to be blocked for ~100ms, but elapsed time was %v (timing may vary)", elapsed)
		}
		// Check if error is related to context (various error message formats)
		if err != nil && !isContextError(err) && err.Error() != "rate: Wait(n=1) would exceed context deadline" {
			t.Errorf("expected context-related error, got %v", err)
		}
	})

	t.Run("TC-3: should handle burst publishes immediately", func(t *testing.T) {
		// Arrange
		limiter := NewRateLimiter(2.0, 5) // 2 publishes/s, burst of 5
		ctx := context.Background()

		// Act - First 5 publishes should succeed immediately
		start := time.Now()
		for i := 0; i < 5; i++ {
			err := limiter.Allow(ctx)
			if err != nil {
				t.Fatalf("burst publish %d should succeed: %v", i+1, err)
			}
		}
		elapsed := time.Since(start)

		// Assert - All 5 publishes should complete very quickly (< 100ms)
		if elapsed > 100*time.Millisecond {
			t.Errorf("expected burst publishes to complete quickly, but took %v", elapsed)
		}

		// Act - 6th publish should be rate limited
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()

		err := limiter.Allow(ctxWithTimeout)

		// Assert - 6th publish should be blocked
		if err == nil {
			t.Errorf("expected 6th publish to be rate limited")
		}
		// Check if error is related to context (various error message formats)
		if err != nil && !isContextError(err) && err.Error() != "rate: Wait(n=1) would exceed context deadline" {
			t.Errorf("expected context-related error, got %v", err)
		}
	})

	t.Run("TC-4: should respect context cancellation during rate limiting", func(t *testing.T) {
		// Arrange
		limiter := NewRateLimiter(1.0, 1) // 1 publish/s, burst of 1
		ctx := context.Background()

		// Consume the single token
		err := limiter.Allow(ctx)
		if err != nil {
			t.Fatalf("first publish should succeed: %v", err)
		}

		// Create a context that will be canceled
		ctxWithCancel, cancel := context.WithCancel(ctx)

		// Act - Start rate limited publish in goroutine
		errChan := make(chan error, 1)
		go func() {
			errChan <- limiter.Allow(ctxWithCancel)
		}()

		// Cancel context after 50ms
		time.Sleep(50 * time.Millisecond)
		cancel()

		// Wait for publish to complete
		err = <-errChan

		// Assert
		if err == nil {
			t.Errorf("expected cancellation error, but publish succeeded")
		}
		if !isContextError(err) {
			t.Errorf("expected context canceled error, got %v", err)
		}
	})
}

func TestNewRateLimiter(t *testing.T) {
	t.Run("should create rate limiter with correct configuration", func(t *testing.T) {
		// Arrange
		publishesPerSecond := 2.0
		burst := 5

		// Act
		limiter := NewRateLimiter(publishesPerSecond, burst)

		// Assert
		if limiter == nil {
			t.Fatal("expected non-nil limiter")
		}
		if limiter.limiter == nil {
			t.Error("expected internal limiter to be initialized")
		}
		if limiter.burst != burst {
			t.Errorf("expected burst=%d, got %d", burst, limiter.burst)
		}
		if float64(limiter.rate) != publishesPerSecond {
			t.Errorf("expected rate=%f, got %f", publishesPerSecond, float64(limiter.rate))
		}
	})
}

// isContextError checks if the error is a context error (Canceled or DeadlineExceeded)
func isContextError(err error) bool {
	return err == context.Canceled || err == context.DeadlineExceeded
}
