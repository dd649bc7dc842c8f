package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"bookshelf/internal/messaging"
	"bookshelf/pkg/ratelimit"
)

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus is the status of a single named check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// HealthHandler serves the detailed health endpoint. It checks database
// connectivity and pool pressure, reports the event publisher state, and
// exposes rate limiter occupancy for operational monitoring.
//
// A degraded publisher does not make the service unhealthy: the facade
// absorbs broker unavailability by design, so the API keeps serving.
type HealthHandler struct {
	DB        *sql.DB
	Publisher messaging.MessagePublisher
	Version   string

	// Rate limiter store (optional)
	RateLimiterStore   ratelimit.RateLimitStore
	RateLimiterEnabled bool

	// CSP status (optional)
	CSPEnabled    bool
	CSPReportOnly bool
}

// ServeHTTP runs all checks and answers 200 when healthy or 503 when a
// required dependency is down.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	// データベース接続チェック
	if h.DB != nil {
		dbCheck := h.checkDatabase(ctx)
		checks["database"] = dbCheck
		if dbCheck.Status == "unhealthy" {
			allHealthy = false
		}
	} else {
		checks["database"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
		allHealthy = false
	}

	// イベントパブリッシャチェック（劣化していてもサービスは継続）
	if h.Publisher != nil {
		checks["publisher"] = h.checkPublisher(ctx)
	}

	// レート制限チェック
	if h.RateLimiterEnabled {
		checks["rate_limiter"] = h.checkRateLimiter(ctx)
	}

	// CSPチェック
	if h.CSPEnabled {
		checks["csp"] = CheckStatus{
			Status: "healthy",
			Details: map[string]interface{}{
				"enabled":     h.CSPEnabled,
				"report_only": h.CSPReportOnly,
			},
		}
	}

	// 全体のステータス決定
	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// checkDatabase pings the database and inspects connection pool stats.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	}

	stats := h.DB.Stats()
	details := map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilizationPercent := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilizationPercent

	if utilizationPercent >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{
		Status:  "healthy",
		Details: details,
	}
}

// checkPublisher reports the messaging facade state. Degraded mode is a
// warning, not a failure: publishes are absorbed as no-ops.
func (h *HealthHandler) checkPublisher(ctx context.Context) CheckStatus {
	state := h.Publisher.State()
	details := map[string]interface{}{
		"state": state.String(),
	}

	switch state {
	case messaging.StateConnected:
		info, err := h.Publisher.CheckHealth(ctx)
		if err != nil {
			return CheckStatus{
				Status:  "degraded",
				Message: "broker health check failed: " + err.Error(),
				Details: details,
			}
		}
		details["cluster_id"] = info.ClusterID
		details["brokers"] = len(info.Brokers)
		return CheckStatus{
			Status:  "healthy",
			Details: details,
		}
	case messaging.StateDegraded:
		return CheckStatus{
			Status:  "degraded",
			Message: "publisher running in degraded mode; events are dropped",
			Details: details,
		}
	default:
		return CheckStatus{
			Status:  "degraded",
			Message: "publisher not initialized",
			Details: details,
		}
	}
}

// checkRateLimiter reports store occupancy. It is always "healthy":
// eviction and fail-open are operational states, not failures.
func (h *HealthHandler) checkRateLimiter(ctx context.Context) CheckStatus {
	details := make(map[string]interface{})

	if h.RateLimiterStore != nil {
		if keyCount, err := h.RateLimiterStore.KeyCount(ctx); err == nil {
			details["active_keys"] = keyCount
		}
		if memStore, ok := h.RateLimiterStore.(*ratelimit.InMemoryRateLimitStore); ok {
			details["evicted_total"] = memStore.EvictedTotal()
		}
	}

	return CheckStatus{
		Status:  "healthy",
		Details: details,
	}
}

// ReadyHandler answers Kubernetes readiness probes: ready once the
// database accepts connections.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler answers Kubernetes liveness probes.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
