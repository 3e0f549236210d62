package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbgarden/herbarium/internal/log"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) healthResponse {
	t.Helper()
	var resp healthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestHealthHandler_Healthy(t *testing.T) {
	h := NewHealthHandlerWithPinger(&fakePinger{}, log.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeHealth(t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "connected", resp.Dependencies.Database.Database)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	h := NewHealthHandlerWithPinger(&fakePinger{err: errors.New("connection refused")}, log.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.health(w, req)

	// Degraded still answers 200; the payload carries the detail.
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeHealth(t, w)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "failed", resp.Dependencies.Database.Database)
	assert.Contains(t, resp.Dependencies.Database.Error, "connection refused")
}

func TestHealthHandler_PoolNil(t *testing.T) {
	h := NewHealthHandler(nil, log.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeHealth(t, w)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unreachable", resp.Dependencies.Database.Database)
}
