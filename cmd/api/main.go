package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"bookshelf/internal/common/pagination"
	seccfg "bookshelf/internal/config"
	pgRepo "bookshelf/internal/infra/adapter/persistence/postgres"
	sqliteRepo "bookshelf/internal/infra/adapter/persistence/sqlite"
	"bookshelf/internal/infra/db"
	"bookshelf/internal/messaging"

	// ブローカードライバを登録する
	_ "bookshelf/internal/messaging/driver/kafka"
	_ "bookshelf/internal/messaging/driver/nats"
	_ "bookshelf/internal/messaging/driver/rabbitmq"

	"bookshelf/internal/observability/logging"
	"bookshelf/internal/observability/tracing"
	"bookshelf/internal/repository"
	"bookshelf/pkg/config"
	"bookshelf/pkg/ratelimit"

	bookUC "bookshelf/internal/usecase/book"

	hhttp "bookshelf/internal/handler/http"
	hauth "bookshelf/internal/handler/http/auth"
	hbook "bookshelf/internal/handler/http/book"
	"bookshelf/internal/handler/http/middleware"
	"bookshelf/internal/handler/http/requestid"
	authservice "bookshelf/internal/service/auth"

	_ "bookshelf/docs" // swagger docs
)

// @title           Bookshelf API
// @version         1.0
// @description     書籍カタログ管理の REST API
// @description     書籍の CRUD・検索機能と、メッセージブローカーへのイベント配信を提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	logger := initLogger()
	validateAdminCredentials(logger)
	validateViewerCredentials(logger)
	validateJWTSecret(logger)

	securityConfig := loadSecurityConfig(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	publisher := initPublisher(logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close publisher", slog.Any("error", err))
		}
	}()

	version := getVersion()
	serverComponents := setupServer(logger, database, publisher, securityConfig, version)

	runServer(logger, serverComponents, version)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateAdminCredentials validates the admin credentials at startup.
// The server refuses to start with empty or weak admin credentials.
func validateAdminCredentials(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// validateViewerCredentials validates the optional viewer credentials.
// Unlike admin validation this degrades gracefully: misconfigured viewer
// credentials disable the viewer role and the server runs admin-only.
func validateViewerCredentials(logger *slog.Logger) {
	_ = hauth.ValidateViewerCredentials(logger)
}

// validateJWTSecret enforces the minimum strength of the signing secret.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	// セキュリティ: よくある弱い秘密鍵を拒否
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// loadSecurityConfig loads the YAML security configuration when
// SECURITY_CONFIG_PATH is set and falls back to the built-in defaults
// otherwise. An unreadable or invalid file is fatal: silently running with
// weaker settings than the operator configured would be worse than not
// starting.
func loadSecurityConfig(logger *slog.Logger) *seccfg.SecurityConfig {
	path := os.Getenv("SECURITY_CONFIG_PATH")
	if path == "" {
		logger.Info("security config: using defaults")
		cfg := seccfg.DefaultSecurityConfig()
		hauth.ConfigurePublicEndpoints(cfg.PublicEndpoints())
		return cfg
	}

	cfg, err := seccfg.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security config",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}

	hauth.ConfigurePublicEndpoints(cfg.PublicEndpoints())
	logger.Info("security config loaded",
		slog.String("path", path),
		slog.String("auth_provider", cfg.AuthProvider()),
		slog.Int("public_endpoints", len(cfg.PublicEndpoints())),
		slog.Int("jwt_expiry_hours", cfg.JWTExpiryHours()))
	return cfg
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initPublisher constructs the messaging client. Construction never fails:
// an unreachable broker produces a degraded client that drops events, and
// the API keeps serving.
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

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler         http.Handler
	IPStore         *ratelimit.InMemoryRateLimitStore
	AuthStore       *ratelimit.InMemoryRateLimitStore
	IPWindow        time.Duration
	AuthWindow      time.Duration
	CleanupInterval time.Duration
}

// setupServer configures and returns the HTTP handler with all routes and
// middleware.
func setupServer(
	logger *slog.Logger,
	database *sql.DB,
	publisher messaging.MessagePublisher,
	securityConfig *seccfg.SecurityConfig,
	version string,
) *ServerComponents {
	// イベントフックは非同期配信なので CRUD 応答時間に影響しない
	eventHook := bookUC.NewEventHook(publisher, messaging.NewRateLimiter(50.0, 100))
	bookSvc := &bookUC.Service{
		Repo:   newBookRepository(database),
		Events: eventHook,
	}

	rateLimitConfig, err := config.LoadRateLimitConfig()
	if err != nil {
		logger.Error("failed to load rate limit configuration", slog.Any("error", err))
		os.Exit(1)
	}

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (secure mode, proxy headers ignored)")
	}

	var (
		ipRateLimiter   *middleware.IPRateLimiter
		authRateLimiter *middleware.IPRateLimiter
		ipStore         *ratelimit.InMemoryRateLimitStore
		authStore       *ratelimit.InMemoryRateLimitStore
	)

	if rateLimitConfig.Enabled {
		// IP 全体と認証エンドポイントでストアを分離し、独立にクリーンアップする
		ipStore = ratelimit.NewInMemoryRateLimitStore(ratelimit.InMemoryStoreConfig{
			MaxKeys: rateLimitConfig.MaxActiveKeys,
		})
		authStore = ratelimit.NewInMemoryRateLimitStore(ratelimit.InMemoryStoreConfig{
			MaxKeys: rateLimitConfig.MaxActiveKeys,
		})

		algorithm := ratelimit.NewSlidingWindowAlgorithm(&ratelimit.SystemClock{})
		metrics := ratelimit.NewPrometheusMetrics()

		ipRateLimiter = middleware.NewIPRateLimiter(
			middleware.IPRateLimiterConfig{
				Limit:       rateLimitConfig.DefaultIPLimit,
				Window:      rateLimitConfig.DefaultIPWindow,
				Enabled:     true,
				LimiterType: "ip",
			},
			ipExtractor, ipStore, algorithm, metrics,
		)

		// 認証エンドポイントはブルートフォース対策としてより厳しい制限を適用
		authRateLimiter = middleware.NewIPRateLimiter(
			middleware.IPRateLimiterConfig{
				Limit:       rateLimitConfig.AuthLimit,
				Window:      rateLimitConfig.AuthWindow,
				Enabled:     true,
				LimiterType: "auth",
			},
			ipExtractor, authStore, algorithm, metrics,
		)

		logger.Info("rate limiting initialized",
			slog.Bool("enabled", true),
			slog.Int("ip_limit", rateLimitConfig.DefaultIPLimit),
			slog.Duration("ip_window", rateLimitConfig.DefaultIPWindow),
			slog.Int("auth_limit", rateLimitConfig.AuthLimit),
			slog.Duration("auth_window", rateLimitConfig.AuthWindow),
			slog.Int("max_keys", rateLimitConfig.MaxActiveKeys),
		)
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	rootMux := setupRoutes(database, publisher, version, bookSvc, securityConfig, authRateLimiter, ipStore, rateLimitConfig.Enabled, logger)
	handler := applyMiddleware(logger, rootMux, ipRateLimiter)

	return &ServerComponents{
		Handler:         handler,
		IPStore:         ipStore,
		AuthStore:       authStore,
		IPWindow:        rateLimitConfig.DefaultIPWindow,
		AuthWindow:      rateLimitConfig.AuthWindow,
		CleanupInterval: rateLimitConfig.CleanupInterval,
	}
}

// setupRoutes registers all HTTP routes (public and protected).
func setupRoutes(
	database *sql.DB,
	publisher messaging.MessagePublisher,
	version string,
	bookSvc *bookUC.Service,
	securityConfig *seccfg.SecurityConfig,
	authRateLimiter *middleware.IPRateLimiter,
	ipStore *ratelimit.InMemoryRateLimitStore,
	rateLimiterEnabled bool,
	logger *slog.Logger,
) *http.ServeMux {
	authProvider := hauth.NewStaticUserProvider(
		securityConfig.MinPasswordLength(),
		securityConfig.WeakPasswords(),
	)
	authService := authservice.NewService(authProvider, securityConfig.PublicEndpoints())
	tokenTTL := time.Duration(securityConfig.JWTExpiryHours()) * time.Hour

	var tokenHandler http.Handler = hauth.TokenHandler(authService, tokenTTL)
	if authRateLimiter != nil {
		tokenHandler = authRateLimiter.Middleware()(tokenHandler)
	}

	cspConfig, _ := config.LoadCSPConfig()

	rootMux := http.NewServeMux()
	rootMux.Handle("/auth/token", tokenHandler)

	// ヘルスチェックエンドポイント（認証不要）
	rootMux.Handle("/health", &hhttp.HealthHandler{
		DB:                 database,
		Publisher:          publisher,
		Version:            version,
		RateLimiterStore:   ipStore,
		RateLimiterEnabled: rateLimiterEnabled,
		CSPEnabled:         cspConfig.Enabled,
		CSPReportOnly:      cspConfig.ReportOnly,
	})
	rootMux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	rootMux.Handle("/live", &hhttp.LiveHandler{})
	rootMux.Handle("/metrics", hhttp.MetricsHandler())

	// Swagger UI（認証不要）
	rootMux.Handle("/swagger/", httpSwagger.WrapHandler)

	// 書籍エンドポイント。読み取りは公開、書き込みはハンドラ登録時に Authz を適用
	paginationCfg := pagination.LoadFromEnv()
	hbook.Register(rootMux, bookSvc, paginationCfg, logger)

	return rootMux
}

// applyMiddleware wraps the handler with the middleware chain, innermost
// first: metrics → CSP → timeout → body limit → input validation → logging
// → recover → IP rate limit → tracing → request ID → CORS.
func applyMiddleware(logger *slog.Logger, handler http.Handler, ipRateLimiter *middleware.IPRateLimiter) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsConfig.Logger = logger

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Any("allowed_headers", corsConfig.AllowedHeaders),
		slog.Int("max_age", corsConfig.MaxAge))

	cspEnv, _ := config.LoadCSPConfig()
	cspConfig := middleware.DefaultCSPConfig()
	cspConfig.Enabled = cspEnv.Enabled
	cspConfig.ReportOnly = cspEnv.ReportOnly
	if cspConfig.Enabled {
		logger.Info("CSP enabled", slog.Bool("report_only", cspConfig.ReportOnly))
	} else {
		logger.Warn("CSP is disabled")
	}

	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	middlewareChain := handler
	middlewareChain = hhttp.MetricsMiddleware(middlewareChain)
	middlewareChain = middleware.CSP(cspConfig)(middlewareChain)
	middlewareChain = hhttp.Timeout(requestTimeout)(middlewareChain)
	middlewareChain = hhttp.LimitRequestBody(1 << 20)(middlewareChain) // 1MB limit
	middlewareChain = hhttp.InputValidation()(middlewareChain)
	middlewareChain = hhttp.Logging(logger)(middlewareChain)
	middlewareChain = hhttp.Recover(logger)(middlewareChain)

	if ipRateLimiter != nil {
		middlewareChain = ipRateLimiter.Middleware()(middlewareChain)
	}

	middlewareChain = tracing.Middleware(middlewareChain)
	middlewareChain = requestid.Middleware(middlewareChain)
	middlewareChain = middleware.CORS(*corsConfig)(middlewareChain)

	return middlewareChain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// レート制限ストアのバックグラウンドクリーンアップ
	if components.IPStore != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.IPStore, components.CleanupInterval, components.IPWindow, "ip")
	}
	if components.AuthStore != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.AuthStore, components.CleanupInterval, components.AuthWindow, "auth")
	}

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", ":8080"),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
