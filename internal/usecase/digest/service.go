// Package digest builds periodic summaries of the book catalog and publishes
// them to the message broker.
//
// A digest event carries the current catalog size and a sample of the most
// recently added books. Consumers that missed individual lifecycle events use
// the digest to resynchronize without replaying the whole topic.
package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/messaging"
	"bookshelf/internal/observability/metrics"
	"bookshelf/internal/repository"
	"bookshelf/internal/resilience/retry"
)

const (
	// booksTopic is the broker topic carrying catalog digest events.
	booksTopic = "books"

	// defaultSampleSize is the number of recent books included in a digest.
	defaultSampleSize = 10

	// fanOutConcurrency bounds how many per-book publishes run at once.
	fanOutConcurrency = 4
)

// Service aggregates catalog statistics and publishes digest events.
type Service struct {
	Repo      repository.BookRepository
	Publisher messaging.MessagePublisher
	Limiter   *messaging.RateLimiter

	retryConfig retry.Config
	sampleSize  int
}

// NewService creates a new digest Service with the provided dependencies.
//
// Parameters:
//   - repo: Repository for reading the book catalog
//   - publisher: Broker client for digest delivery
//   - limiter: Token bucket throttling the per-book fan-out (nil disables it)
//
// Returns:
//   - Service: Configured digest service ready to use
func NewService(repo repository.BookRepository, publisher messaging.MessagePublisher, limiter *messaging.RateLimiter) Service {
	return Service{
		Repo:        repo,
		Publisher:   publisher,
		Limiter:     limiter,
		retryConfig: retry.BrokerPublishConfig(),
		sampleSize:  defaultSampleSize,
	}
}

// DigestStats contains statistics about a digest run.
type DigestStats struct {
	TotalBooks int64
	Sampled    int
	Duration   time.Duration
}

// digestPayload is the JSON body of a catalog digest event.
type digestPayload struct {
	EventID    string        `json:"event_id"`
	Type       string        `json:"type"`
	TotalBooks int64         `json:"total_books"`
	Recent     []digestEntry `json:"recent"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// digestEntry is one recently added book inside a digest payload.
type digestEntry struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Price  int64  `json:"price"`
}

// Run builds and publishes one catalog digest.
// It performs the following steps:
// 1. Counts the catalog and loads the most recent books in parallel
// 2. Builds the digest payload
// 3. Publishes it to the books topic with retry
// 4. Fans out one re-announce event per sampled book
// Returns digest statistics including the catalog size and run duration.
func (s *Service) Run(ctx context.Context) (*DigestStats, error) {
	logger := slog.Default()
	start := time.Now()
	stats := &DigestStats{}

	var (
		total  int64
		recent []*entity.Book
	)

	// 件数と直近の書籍は独立したクエリなので並列に取得する
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := s.Repo.CountBooks(egCtx)
		if err != nil {
			return fmt.Errorf("count books: %w", err)
		}
		total = n
		return nil
	})
	eg.Go(func() error {
		books, err := s.Repo.ListPaginated(egCtx, 0, s.sampleSize)
		if err != nil {
			return fmt.Errorf("list recent books: %w", err)
		}
		recent = books
		return nil
	})
	if err := eg.Wait(); err != nil {
		metrics.RecordDigestRun(false, time.Since(start))
		return nil, err
	}

	stats.TotalBooks = total
	stats.Sampled = len(recent)
	metrics.UpdateBooksTotal(int(total))

	payload := digestPayload{
		EventID:    uuid.New().String(),
		Type:       entity.EventBookDigest,
		TotalBooks: total,
		// 空のカタログでも "recent": [] を出力する
		Recent:     make([]digestEntry, 0, len(recent)),
		OccurredAt: time.Now().UTC(),
	}
	for _, b := range recent {
		payload.Recent = append(payload.Recent, digestEntry{
			BookID: b.ID,
			Title:  b.Title,
			Author: b.Author,
			Price:  b.Price,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		metrics.RecordDigestRun(false, time.Since(start))
		return nil, fmt.Errorf("marshal digest payload: %w", err)
	}

	// 劣化モードのクライアントは Publish が常に成功するため、リトライは
	// 接続済みブローカーの一時障害に対してのみ働く
	err = retry.WithBackoff(ctx, s.retryConfig, func() error {
		return s.Publisher.Publish(ctx, booksTopic, body)
	})
	if err != nil {
		metrics.RecordDigestRun(false, time.Since(start))
		return nil, fmt.Errorf("publish digest: %w", err)
	}

	if err := s.fanOut(ctx, recent); err != nil {
		metrics.RecordDigestRun(false, time.Since(start))
		return nil, err
	}

	stats.Duration = time.Since(start)
	metrics.RecordDigestRun(true, stats.Duration)

	logger.Info("catalog digest published",
		slog.String("event_id", payload.EventID),
		slog.Int64("total_books", stats.TotalBooks),
		slog.Int("sampled", stats.Sampled),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// fanOut re-announces each sampled book as its own event. The errgroup limit
// caps concurrent publishes and the token bucket caps the sustained rate, so
// a large sample cannot flood the broker connection.
func (s *Service) fanOut(ctx context.Context, books []*entity.Book) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(fanOutConcurrency)

	for _, b := range books {
		b := b
		eg.Go(func() error {
			if s.Limiter != nil {
				if err := s.Limiter.Allow(egCtx); err != nil {
					return fmt.Errorf("digest fan-out throttle: %w", err)
				}
			}

			ev := entity.NewBookEvent(entity.EventBookDigestEntry, b)
			body, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("marshal digest entry for book %d: %w", b.ID, err)
			}
			if err := s.Publisher.Publish(egCtx, booksTopic, body); err != nil {
				return fmt.Errorf("publish digest entry for book %d: %w", b.ID, err)
			}
			return nil
		})
	}

	return eg.Wait()
}
