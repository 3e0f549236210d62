package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/herbgarden/herbarium/internal/log"
	"github.com/herbgarden/herbarium/internal/user"
)

// UserStore is the user registry contract the HTTP layer depends on.
// Interfaces are defined by the consumer; *user.Store satisfies it.
type UserStore interface {
	Sync(ctx context.Context, p user.SyncParams) (*user.User, error)
	List(ctx context.Context, skip, limit int) ([]*user.User, error)
	Get(ctx context.Context, googleID string) (*user.User, error)
}

// UserHandler handles user registry endpoints.
type UserHandler struct {
	store  UserStore
	logger log.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(store UserStore, logger log.Logger) *UserHandler {
	return &UserHandler{store: store, logger: logger}
}

// RegisterRoutes registers user routes on the given mux.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /users/sync", h.sync)
	mux.HandleFunc("GET /users/{$}", h.list)
	mux.HandleFunc("GET /users/{google_id}", h.get)
}

// SyncUserRequest is the request body for syncing a user.
type SyncUserRequest struct {
	GoogleID  string  `json:"google_id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// sync upserts a user keyed by Google ID. Repeating the call with the same
// payload is idempotent.
func (h *UserHandler) sync(w http.ResponseWriter, r *http.Request) {
	var req SyncUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.GoogleID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "google_id is required")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	u, err := h.store.Sync(r.Context(), user.SyncParams{
		GoogleID:  req.GoogleID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// list returns users with skip/limit pagination.
func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	users, err := h.store.List(r.Context(), skip, limit)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// get returns a single user by Google ID.
func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.Get(r.Context(), r.PathValue("google_id"))
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}
