package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/herbgarden/herbarium/internal/bookmark"
	"github.com/herbgarden/herbarium/internal/log"
	"github.com/herbgarden/herbarium/internal/plant"
	"github.com/herbgarden/herbarium/internal/user"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	writeJSON(w, http.StatusCreated, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestWriteStoreError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"user not found", user.ErrNotFound, http.StatusNotFound, "not_found"},
		{"plant not found", plant.ErrNotFound, http.StatusNotFound, "not_found"},
		{"bookmark not found", bookmark.ErrNotFound, http.StatusNotFound, "not_found"},
		{"bookmark user missing", bookmark.ErrUserNotFound, http.StatusNotFound, "not_found"},
		{"bookmark plant missing", bookmark.ErrPlantNotFound, http.StatusNotFound, "not_found"},
		{"common name taken", plant.ErrCommonNameTaken, http.StatusConflict, "conflict"},
		{"scientific name taken", plant.ErrScientificNameTaken, http.StatusConflict, "conflict"},
		{"duplicate bookmark", bookmark.ErrDuplicate, http.StatusConflict, "conflict"},
		{"unexpected error", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeStoreError(w, log.NewNop(), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantError)
		})
	}
}

func TestWriteStoreError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()

	writeStoreError(w, log.NewNop(), errors.New("pq: secret dsn detail"))

	assert.NotContains(t, w.Body.String(), "secret dsn detail")
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"present", "skip=7", 7},
		{"missing falls back", "", 3},
		{"malformed falls back", "skip=abc", 3},
		{"negative falls back", "skip=-1", 3},
		{"zero is valid", "skip=0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, parseIntParam(req, "skip", 3))
		})
	}
}

func TestPagination_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	skip, limit := pagination(req)

	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultListLimit, limit)
}
