package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/herbgarden/herbarium/internal/bookmark"
	"github.com/herbgarden/herbarium/internal/log"
)

// BookmarkStore is the bookmark ledger contract the HTTP layer depends on.
// *bookmark.Store satisfies it.
type BookmarkStore interface {
	Create(ctx context.Context, userGoogleID string, plantID int64) (*bookmark.Bookmark, error)
	List(ctx context.Context, skip, limit int) ([]*bookmark.Bookmark, error)
	ListForUser(ctx context.Context, userGoogleID string) ([]*bookmark.Bookmark, error)
	Delete(ctx context.Context, userGoogleID string, plantID int64) error
}

// BookmarkHandler handles bookmark ledger endpoints.
type BookmarkHandler struct {
	store  BookmarkStore
	logger log.Logger
}

// NewBookmarkHandler creates a new bookmark handler.
func NewBookmarkHandler(store BookmarkStore, logger log.Logger) *BookmarkHandler {
	return &BookmarkHandler{store: store, logger: logger}
}

// RegisterRoutes registers bookmark routes on the given mux.
func (h *BookmarkHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /bookmarks/{$}", h.create)
	mux.HandleFunc("GET /bookmarks/{$}", h.list)
	mux.HandleFunc("GET /bookmarks/user/{google_id}", h.listForUser)
	mux.HandleFunc("DELETE /bookmarks/{user_google_id}/{plant_id}", h.delete)
}

// CreateBookmarkRequest is the request body for creating a bookmark.
type CreateBookmarkRequest struct {
	UserGoogleID string `json:"user_google_id"`
	PlantID      int64  `json:"plant_id"`
}

// create bookmarks a plant for a user. Missing user or plant answers 404,
// an already-bookmarked pair answers 409.
func (h *BookmarkHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.UserGoogleID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_google_id is required")
		return
	}
	if req.PlantID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "plant_id is required")
		return
	}

	b, err := h.store.Create(r.Context(), req.UserGoogleID, req.PlantID)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// list returns all bookmarks with skip/limit pagination.
func (h *BookmarkHandler) list(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	bookmarks, err := h.store.List(r.Context(), skip, limit)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmarks)
}

// listForUser returns all bookmarks for one user, unpaginated.
// A user with no bookmarks gets an empty list, not an error.
func (h *BookmarkHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.store.ListForUser(r.Context(), r.PathValue("google_id"))
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmarks)
}

// delete removes the bookmark for the (user, plant) pair.
func (h *BookmarkHandler) delete(w http.ResponseWriter, r *http.Request) {
	plantID, err := strconv.ParseInt(r.PathValue("plant_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "plant_id must be an integer")
		return
	}

	if err := h.store.Delete(r.Context(), r.PathValue("user_google_id"), plantID); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
