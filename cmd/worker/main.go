package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"bookshelf/internal/handler/http/respond"
	pgRepo "bookshelf/internal/infra/adapter/persistence/postgres"
	sqliteRepo "bookshelf/internal/infra/adapter/persistence/sqlite"
	"bookshelf/internal/infra/db"
	workerPkg "bookshelf/internal/infra/worker"
	"bookshelf/internal/messaging"

	// ブローカードライバを登録する
	_ "bookshelf/internal/messaging/driver/kafka"
	_ "bookshelf/internal/messaging/driver/nats"
	_ "bookshelf/internal/messaging/driver/rabbitmq"

	"bookshelf/internal/observability/logging"
	"bookshelf/internal/repository"
	digestUC "bookshelf/internal/usecase/digest"
)

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM books LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("digest_schedule", workerConfig.DigestSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("digest_timeout", workerConfig.DigestTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("grpc_health_port", workerConfig.GRPCHealthPort),
		slog.Bool("run_once", workerConfig.RunOnce))

	// イベントパブリッシャ（ブローカー不達時は劣化モードで起動する）
	publisher := initPublisher(logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close publisher", slog.Any("error", err))
		}
	}()

	// ファンアウトの発行レートは API のイベントフックと同じ上限に揃える
	svc := digestUC.NewService(newBookRepository(database), publisher, messaging.NewRateLimiter(50.0, 100))

	if workerConfig.RunOnce {
		// 単発実行モード: スケジューラもヘルスサーバも起動しない
		os.Exit(runOnce(logger, &svc, workerConfig, workerMetrics))
	}

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, publisher, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	grpcHealth := workerPkg.NewGRPCHealthServer(workerConfig.GRPCHealthPort, publisher, logger)
	go func() {
		if err := grpcHealth.Start(ctx); err != nil {
			logger.Error("grpc health server failed", slog.Any("error", err))
		}
	}()

	startCronWorker(ctx, logger, &svc, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for migrations to
// complete. The API server owns the migrations; the worker only reads.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// initPublisher constructs the messaging client for digest delivery.
func initPublisher(logger *slog.Logger) messaging.MessagePublisher {
	cfg, warnings := messaging.LoadConfigFromEnv()
	for _, warning := range warnings {
		logger.Warn("messaging configuration fallback", slog.String("warning", warning))
	}

	publisher := messaging.New(cfg, logger)
	logger.Info("messaging client initialized",
		slog.String("driver", cfg.Driver),
		slog.String("state", publisher.State().String()))
	return publisher
}

// newBookRepository selects the repository implementation for the
// configured database driver.
func newBookRepository(database *sql.DB) repository.BookRepository {
	if db.Driver() == "sqlite" {
		return sqliteRepo.NewBookRepo(database)
	}
	return pgRepo.NewBookRepo(database)
}

// runOnce executes a single digest and returns the process exit code.
func runOnce(logger *slog.Logger, svc *digestUC.Service, cfg *workerPkg.Config, metrics *workerPkg.Metrics) int {
	logger.Info("run-once mode: executing a single digest")
	if ok := runDigestJob(logger, svc, cfg, metrics); !ok {
		return 1
	}
	return 0
}

// startCronWorker starts the cron scheduler and blocks until a shutdown
// signal arrives.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	svc *digestUC.Service,
	cfg *workerPkg.Config,
	metrics *workerPkg.Metrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.DigestSchedule, func() {
		runDigestJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.DigestSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Info("shutting down worker...")

	healthServer.SetReady(false)
	cronCtx := c.Stop()
	// 実行中のジョブがあれば完了を待つ
	<-cronCtx.Done()
	logger.Info("worker stopped")
}

// runDigestJob executes a single digest with timeout and error handling.
// It reports whether the run succeeded.
func runDigestJob(logger *slog.Logger, svc *digestUC.Service, cfg *workerPkg.Config, metrics *workerPkg.Metrics) bool {
	startTime := time.Now()
	logger.Info("digest started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DigestTimeout)
	defer cancel()

	stats, err := svc.Run(ctx)
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("digest failed", slog.Any("error", respond.SanitizeError(err)))
		metrics.RecordRun("failure")
		metrics.RecordDuration(time.Since(startTime).Seconds())
		return false
	}

	metrics.RecordRun("success")
	metrics.RecordDuration(time.Since(startTime).Seconds())
	metrics.RecordBooks(int(stats.TotalBooks))
	metrics.RecordLastSuccess()

	logger.Info("digest completed",
		slog.Int64("total_books", stats.TotalBooks),
		slog.Int("sampled", stats.Sampled),
		slog.Duration("duration", stats.Duration),
	)
	return true
}
