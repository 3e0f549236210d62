package api

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/herbgarden/herbarium/internal/log"
)

// Pinger is the database dependency of the health check.
// *pgxpool.Pool satisfies it; tests inject fakes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	db     Pinger
	logger log.Logger
}

// NewHealthHandler creates a new health handler.
// pool is the database dependency reported in the health payload.
func NewHealthHandler(pool *pgxpool.Pool, logger log.Logger) *HealthHandler {
	h := &HealthHandler{logger: logger}
	// Assign through the interface only when non-nil, so a nil pool is a
	// nil Pinger rather than a typed-nil interface.
	if pool != nil {
		h.db = pool
	}
	return h
}

// NewHealthHandlerWithPinger creates a health handler with an explicit
// database dependency. Used by tests.
func NewHealthHandlerWithPinger(db Pinger, logger log.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
}

// databaseStatus reports database connectivity inside the health payload.
type databaseStatus struct {
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// healthResponse is the health endpoint payload.
type healthResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Dependencies struct {
		Database databaseStatus `json:"database"`
	} `json:"dependencies"`
}

// health reports overall service health including database connectivity.
// The endpoint answers 200 even when degraded; the payload carries the
// detail.
func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	dbStatus := databaseStatus{Database: "unreachable"}

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Error("health check database ping failed", "error", err)
			dbStatus = databaseStatus{Database: "failed", Error: err.Error()}
		} else {
			dbStatus = databaseStatus{Database: "connected"}
		}
	}

	resp := healthResponse{
		Status:  "degraded",
		Message: "Backend health degraded",
	}
	if dbStatus.Database == "connected" {
		resp.Status = "ok"
		resp.Message = "Backend is healthy"
	}
	resp.Dependencies.Database = dbStatus

	writeJSON(w, http.StatusOK, resp)
}
