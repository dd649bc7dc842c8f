package book

import (
	"context"
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/messaging"
	"bookshelf/internal/observability/logging"
	"bookshelf/internal/observability/metrics"
)

const (
	// booksTopic is the broker topic carrying book lifecycle events.
	booksTopic = "books"

	// publishTimeout is the maximum time to wait for a background publish.
	// This prevents the publish goroutine from running indefinitely.
	publishTimeout = 10 * time.Second
)

// Prometheus metrics for the event hook
var (
	// eventPendingTotal tracks in-flight event publications.
	eventPendingTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "book_event_pending_total",
			Help: "Number of pending book event publications",
		},
	)

	// eventProcessedTotal tracks completed event publications.
	eventProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_event_processed_total",
			Help: "Total book event publications processed",
		},
		[]string{"status"},
	)
)

// EventPublisher is an interface for asynchronous book event publication.
// This is used to decouple the book service from the messaging implementation.
type EventPublisher interface {
	PublishEventAsync(ctx context.Context, eventType string, book *entity.Book)
}

// EventHook publishes book lifecycle events to the message broker.
// It spawns a goroutine per event so callers never block on the broker.
type EventHook struct {
	publisher messaging.MessagePublisher
	limiter   *messaging.RateLimiter
}

// NewEventHook creates a new event hook backed by the given publisher.
//
// Parameters:
//   - publisher: Broker client for event delivery (nil disables publication entirely)
//   - limiter: Publish rate limiter (can be nil to disable throttling)
func NewEventHook(publisher messaging.MessagePublisher, limiter *messaging.RateLimiter) *EventHook {
	return &EventHook{publisher: publisher, limiter: limiter}
}

// PublishEventAsync publishes a book event asynchronously.
// This method is non-blocking and returns immediately.
//
// Behavior:
//   - Spawns a goroutine for the publish
//   - Returns immediately (does not block caller)
//   - Uses detached context with 10s timeout
//   - Throttles through the rate limiter when one is configured
//   - Gracefully handles failures (logs warnings, no error propagation)
//   - Skips execution if no publisher is configured
//
// The caller's context is used for request ID extraction only; the publish
// itself runs on a detached context so it survives request completion.
func (h *EventHook) PublishEventAsync(ctx context.Context, eventType string, book *entity.Book) {
	if h.publisher == nil {
		return
	}

	// Validate input before spawning goroutine
	if book == nil {
		slog.Warn("Cannot publish event for nil book",
			slog.String("event_type", eventType))
		return
	}

	// Carry the request ID into the background goroutine for tracing
	logger := logging.WithRequestID(ctx, slog.Default())

	go h.publishEvent(logger, eventType, book)
}

// publishEvent performs the actual publish in a goroutine.
// This method runs asynchronously and handles all errors gracefully.
func (h *EventHook) publishEvent(logger *slog.Logger, eventType string, book *entity.Book) {
	// Track pending operation - must be decremented on all exit paths including panic
	eventPendingTotal.Inc()
	completed := false
	defer func() {
		// Ensure gauge is decremented even on panic
		if !completed {
			eventPendingTotal.Dec()
			eventProcessedTotal.WithLabelValues("panic").Inc()
		}
		if r := recover(); r != nil {
			logger.Error("Panic in book event hook",
				slog.String("event_type", eventType),
				slog.Int64("book_id", book.ID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	// Create detached context with timeout
	// We use context.Background() instead of parent context to avoid cancellation
	// when the parent request completes
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	ev := entity.NewBookEvent(eventType, book)
	payload, err := json.Marshal(ev)
	if err != nil {
		completed = true
		recordEventComplete(false)

		logger.Warn("Book event marshal failed (non-blocking)",
			slog.String("event_type", eventType),
			slog.Int64("book_id", book.ID),
			slog.Any("error", err))
		return
	}

	// Wait for a publish token. The detached timeout bounds the wait.
	if h.limiter != nil {
		if err := h.limiter.Allow(ctx); err != nil {
			completed = true
			eventPendingTotal.Dec()
			eventProcessedTotal.WithLabelValues("dropped").Inc()

			logger.Warn("Book event dropped by publish rate limit (non-blocking)",
				slog.String("event_type", eventType),
				slog.Int64("book_id", book.ID),
				slog.Any("error", err))
			return
		}
	}

	// Publish with metrics tracking
	startTime := time.Now()
	err = h.publisher.Publish(ctx, booksTopic, payload)
	duration := time.Since(startTime)

	if err != nil {
		// Record failure and mark as completed
		completed = true
		recordEventComplete(false)

		// Publish failed, log warning but do not propagate error
		// This is graceful degradation - the book is saved, consumers catch up later
		logger.Warn("Book event publish failed (non-blocking)",
			slog.String("event_type", eventType),
			slog.Int64("book_id", book.ID),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return
	}

	// Record success and mark as completed
	completed = true
	recordEventComplete(true)
	metrics.RecordBookEventPublished(eventType)

	logger.Info("Book event published",
		slog.String("event_type", eventType),
		slog.String("event_id", ev.ID),
		slog.Int64("book_id", book.ID),
		slog.Duration("duration", duration))
}

// recordEventComplete decrements the pending count and records the result.
func recordEventComplete(success bool) {
	eventPendingTotal.Dec()
	status := "success"
	if !success {
		status = "failure"
	}
	eventProcessedTotal.WithLabelValues(status).Inc()
}
