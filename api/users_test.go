package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbgarden/herbarium/internal/log"
	"github.com/herbgarden/herbarium/internal/user"
)

type fakeUserStore struct {
	syncErr  error
	getErr   error
	listErr  error
	lastSync user.SyncParams
	lastSkip int
	lastLim  int
	users    []*user.User
}

func (f *fakeUserStore) Sync(_ context.Context, p user.SyncParams) (*user.User, error) {
	f.lastSync = p
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return &user.User{
		GoogleID:  p.GoogleID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}, nil
}

func (f *fakeUserStore) List(_ context.Context, skip, limit int) ([]*user.User, error) {
	f.lastSkip, f.lastLim = skip, limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeUserStore) Get(_ context.Context, googleID string) (*user.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &user.User{GoogleID: googleID, Email: "u@example.com"}, nil
}

func newUserMux(store UserStore) *http.ServeMux {
	mux := http.NewServeMux()
	NewUserHandler(store, log.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestUserHandler_Sync(t *testing.T) {
	store := &fakeUserStore{}
	mux := newUserMux(store)

	body := `{"google_id":"g-123","email":"ada@example.com","first_name":"Ada"}`
	req := httptest.NewRequest(http.MethodPost, "/users/sync", strings.NewReader(body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g-123", store.lastSync.GoogleID)
	assert.Equal(t, "ada@example.com", store.lastSync.Email)
	require.NotNil(t, store.lastSync.FirstName)
	assert.Equal(t, "Ada", *store.lastSync.FirstName)
	assert.Nil(t, store.lastSync.LastName)

	var got user.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "g-123", got.GoogleID)
}

func TestUserHandler_Sync_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing google_id", `{"email":"a@example.com"}`},
		{"missing email", `{"google_id":"g-123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newUserMux(&fakeUserStore{})
			req := httptest.NewRequest(http.MethodPost, "/users/sync", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid_request")
		})
	}
}

func TestUserHandler_List_Pagination(t *testing.T) {
	store := &fakeUserStore{users: []*user.User{}}
	mux := newUserMux(store)

	req := httptest.NewRequest(http.MethodGet, "/users/?skip=5&limit=2", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, store.lastSkip)
	assert.Equal(t, 2, store.lastLim)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUserHandler_List_DefaultPagination(t *testing.T) {
	store := &fakeUserStore{users: []*user.User{}}
	mux := newUserMux(store)

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.lastSkip)
	assert.Equal(t, DefaultListLimit, store.lastLim)
}

func TestUserHandler_Get(t *testing.T) {
	mux := newUserMux(&fakeUserStore{})

	req := httptest.NewRequest(http.MethodGet, "/users/g-456", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got user.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "g-456", got.GoogleID)
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	mux := newUserMux(&fakeUserStore{getErr: user.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/users/missing", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}
