package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"bookshelf/pkg/ratelimit"
)

// fakeClock returns a controllable time.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestSlidingWindowAllowsUpToLimit(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	algo := ratelimit.NewSlidingWindowAlgorithm(clock)
	store := ratelimit.NewInMemoryRateLimitStore(ratelimit.DefaultInMemoryStoreConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision, err := algo.IsAllowed(ctx, "1.2.3.4", store, 3, time.Minute)
		if err != nil {
			t.Fatalf("IsAllowed: %v", err)
		}
		if !decision.Allowed {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
		if want := 3 - i - 1; decision.Remaining != want {
			t.Errorf("request %d remaining = %d, want %d", i+1, decision.Remaining, want)
		}
	}

	decision, err := algo.IsAllowed(ctx, "1.2.3.4", store, 3, time.Minute)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if decision.Allowed {
		t.Error("request over limit allowed, want denied")
	}
	if decision.Remaining != 0 {
		t.Errorf("denied remaining = %d, want 0", decision.Remaining)
	}
}

func TestSlidingWindowResetsAfterWindow(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	algo := ratelimit.NewSlidingWindowAlgorithm(clock)
	store := ratelimit.NewInMemoryRateLimitStore(ratelimit.DefaultInMemoryStoreConfig())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		algo.IsAllowed(ctx, "1.2.3.4", store, 2, time.Minute)
	}

	decision, _ := algo.IsAllowed(ctx, "1.2.3.4", store, 2, time.Minute)
	if decision.Allowed {
		t.Fatal("expected denial at the limit")
	}

	// After the window slides past the earlier requests, admission resumes
	clock.advance(61 * time.Second)

	decision, err := algo.IsAllowed(ctx, "1.2.3.4", store, 2, time.Minute)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if !decision.Allowed {
		t.Error("request after window denied, want allowed")
	}
}

func TestSlidingWindowKeysAreIndependent(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	algo := ratelimit.NewSlidingWindowAlgorithm(clock)
	store := ratelimit.NewInMemoryRateLimitStore(ratelimit.DefaultInMemoryStoreConfig())
	ctx := context.Background()

	algo.IsAllowed(ctx, "1.2.3.4", store, 1, time.Minute)

	decision, _ := algo.IsAllowed(ctx, "1.2.3.4", store, 1, time.Minute)
	if decision.Allowed {
		t.Error("same key over limit allowed")
	}

	decision, _ = algo.IsAllowed(ctx, "5.6.7.8", store, 1, time.Minute)
	if !decision.Allowed {
		t.Error("different key denied")
	}
}

func TestSlidingWindowDecisionMetadata(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	algo := ratelimit.NewSlidingWindowAlgorithm(clock)
	store := ratelimit.NewInMemoryRateLimitStore(ratelimit.DefaultInMemoryStoreConfig())

	decision, err := algo.IsAllowed(context.Background(), "1.2.3.4", store, 5, time.Minute)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if decision.Key != "1.2.3.4" {
		t.Errorf("key = %q", decision.Key)
	}
	if decision.Limit != 5 {
		t.Errorf("limit = %d, want 5", decision.Limit)
	}
	if !decision.ResetAt.Equal(start.Add(time.Minute)) {
		t.Errorf("resetAt = %v, want %v", decision.ResetAt, start.Add(time.Minute))
	}
}
