package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/herbgarden/herbarium/internal/bookmark"
	"github.com/herbgarden/herbarium/internal/log"
	"github.com/herbgarden/herbarium/internal/plant"
	"github.com/herbgarden/herbarium/internal/user"
)

// DefaultListLimit is the page size when the limit query parameter is
// absent. There is no upper bound; callers govern page size.
const DefaultListLimit = 100

// writeJSON writes a JSON response with the given status code.
// If encoding fails after WriteHeader, the status code is already sent;
// the error is only logged.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Can't change the response after WriteHeader
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse represents a JSON error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: message})
}

// writeStoreError maps store sentinel errors onto the HTTP error taxonomy:
// missing entities are 404, uniqueness/duplicate violations are 409, and
// anything else is an upstream failure reported as 500.
func writeStoreError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, plant.ErrNotFound),
		errors.Is(err, bookmark.ErrNotFound),
		errors.Is(err, bookmark.ErrUserNotFound),
		errors.Is(err, bookmark.ErrPlantNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, plant.ErrCommonNameTaken),
		errors.Is(err, plant.ErrScientificNameTaken),
		errors.Is(err, bookmark.ErrDuplicate):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		logger.Error("storage operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

// parseIntParam parses a non-negative integer query parameter.
// Missing or malformed values fall back to the default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}

// pagination extracts the skip/limit pair used by every list endpoint.
func pagination(r *http.Request) (skip, limit int) {
	return parseIntParam(r, "skip", 0), parseIntParam(r, "limit", DefaultListLimit)
}
