package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"bookshelf/internal/messaging"
)

// HealthServer exposes the worker's health over HTTP:
//
//	GET /health            liveness, always 200
//	GET /health/ready      readiness, 200 once initialization finished
//	GET /health/publisher  the messaging facade state
//
// A degraded publisher still answers 200 on /health/publisher: the facade
// keeps the worker running and the endpoint exists so operators can see
// that events are being dropped.
type HealthServer struct {
	addr      string
	logger    *slog.Logger
	publisher messaging.MessagePublisher
	isReady   *atomic.Bool
	server    *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

type publisherResponse struct {
	State     string `json:"state"`
	Degraded  bool   `json:"degraded"`
	ClusterID string `json:"cluster_id,omitempty"`
	Brokers   int    `json:"brokers,omitempty"`
}

// NewHealthServer creates the health server. It starts not-ready; call
// SetReady(true) once the worker finished initializing.
func NewHealthServer(addr string, publisher messaging.MessagePublisher, logger *slog.Logger) *HealthServer {
	isReady := &atomic.Bool{}
	isReady.Store(false)

	return &HealthServer{
		addr:      addr,
		logger:    logger,
		publisher: publisher,
		isReady:   isReady,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully with a
// five second grace period. It returns http.ErrServerClosed on a clean
// shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleLiveness)
	mux.HandleFunc("/health/ready", h.handleReadiness)
	mux.HandleFunc("/health/publisher", h.handlePublisher)

	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		if err := h.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		return http.ErrServerClosed

	case err := <-errChan:
		if err != http.ErrServerClosed {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady flips the readiness state reported by /health/ready.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if h.isReady.Load() {
		h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
		return
	}
	h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
}

func (h *HealthServer) handlePublisher(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		h.writeJSON(w, http.StatusOK, publisherResponse{
			State:    messaging.StateUninitialized.String(),
			Degraded: true,
		})
		return
	}

	state := h.publisher.State()
	resp := publisherResponse{
		State:    state.String(),
		Degraded: state != messaging.StateConnected,
	}

	if state == messaging.StateConnected {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if info, err := h.publisher.CheckHealth(ctx); err == nil {
			resp.ClusterID = info.ClusterID
			resp.Brokers = len(info.Brokers)
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *HealthServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}

// GRPCHealthServer mirrors the publisher state onto the standard gRPC
// health protocol so mesh-side probes can watch the worker without HTTP.
// A connected publisher reports SERVING; degraded or uninitialized reports
// NOT_SERVING.
type GRPCHealthServer struct {
	port      int
	logger    *slog.Logger
	publisher messaging.MessagePublisher
	server    *grpc.Server
	health    *health.Server
}

// NewGRPCHealthServer creates the gRPC listener. Nothing is bound until
// Start is called.
func NewGRPCHealthServer(port int, publisher messaging.MessagePublisher, logger *slog.Logger) *GRPCHealthServer {
	return &GRPCHealthServer{
		port:      port,
		logger:    logger,
		publisher: publisher,
	}
}

// Start binds the port, publishes the initial status and serves until ctx
// is cancelled. The publisher state is set once at startup: the facade
// decides its state at construction and never changes it afterwards.
func (g *GRPCHealthServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", g.port))
	if err != nil {
		return fmt.Errorf("grpc health listen: %w", err)
	}

	g.server = grpc.NewServer()
	g.health = health.NewServer()
	healthpb.RegisterHealthServer(g.server, g.health)

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if g.publisher != nil && g.publisher.State() == messaging.StateConnected {
		status = healthpb.HealthCheckResponse_SERVING
	}
	g.health.SetServingStatus("", status)
	g.health.SetServingStatus("bookshelf.publisher", status)

	errChan := make(chan error, 1)
	go func() {
		g.logger.Info("grpc health server starting",
			slog.Int("port", g.port),
			slog.String("publisher_status", status.String()))
		errChan <- g.server.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		g.health.Shutdown()
		g.server.GracefulStop()
		g.logger.Info("grpc health server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}
