// Package api provides the HTTP REST API for the herbarium backend.
//
// Endpoints:
//
//	GET    /health                                    → health probe with database status
//	GET    /                                          → welcome message
//	POST   /users/sync                                → upsert a user by Google ID
//	GET    /users/                                    → list users (paginated)
//	GET    /users/{google_id}                         → fetch a user
//	POST   /plants/                                   → create a plant (409 on duplicate name)
//	GET    /plants/?q=&skip=&limit=                   → search/list plants
//	GET    /plants/{plant_id}                         → fetch a plant
//	POST   /bookmarks/                                → bookmark a plant for a user
//	GET    /bookmarks/                                → list all bookmarks (paginated)
//	GET    /bookmarks/user/{google_id}                → list a user's bookmarks
//	DELETE /bookmarks/{user_google_id}/{plant_id}     → remove a bookmark
//	POST   /ai/chat                                   → herbal chat via Gemini
//	POST   /identify-plant/                           → identify a plant from an image
//	GET    /list_gemini_models/                       → list generation-capable Gemini models
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (request ID, logging, recovery, CORS)
//   - health.go: health check endpoint
//   - users.go / plants.go / bookmarks.go: resource handlers
//   - ai.go: AI proxy endpoints
//   - response.go: JSON response helpers and error mapping
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/herbgarden/herbarium/internal/log"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	// Image uploads for identification need headroom here.
	ReadTimeout = 60 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// AI generation calls can take a while upstream.
	WriteTimeout = 2 * time.Minute

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// ServerConfig carries the dependencies for NewServer.
type ServerConfig struct {
	Pool        *pgxpool.Pool
	Users       UserStore
	Plants      PlantStore
	Bookmarks   BookmarkStore
	AI          AIService
	CORSOrigins []string
	Logger      log.Logger
}

// Server is the HTTP server for the herbarium REST API.
type Server struct {
	mux         *http.ServeMux
	corsOrigins []string
	logger      log.Logger
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Users == nil || cfg.Plants == nil || cfg.Bookmarks == nil {
		return nil, fmt.Errorf("user, plant and bookmark stores are required")
	}
	if cfg.AI == nil {
		return nil, fmt.Errorf("AI service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:         mux,
		corsOrigins: cfg.CORSOrigins,
		logger:      logger,
	}

	NewHealthHandler(cfg.Pool, logger).RegisterRoutes(mux)
	NewUserHandler(cfg.Users, logger).RegisterRoutes(mux)
	NewPlantHandler(cfg.Plants, logger).RegisterRoutes(mux)
	NewBookmarkHandler(cfg.Bookmarks, logger).RegisterRoutes(mux)
	NewAIHandler(cfg.AI, logger).RegisterRoutes(mux)

	mux.HandleFunc("GET /{$}", s.welcome)

	return s, nil
}

// welcome is the root endpoint.
func (s *Server) welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Virtual Herbal Garden API!",
	})
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → request ID → logging → CORS → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		requestIDMiddleware,
		loggingMiddleware(s.logger),
		corsMiddleware(s.corsOrigins),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
