package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbgarden/herbarium/internal/bookmark"
	"github.com/herbgarden/herbarium/internal/log"
)

type fakeBookmarkStore struct {
	createErr error
	deleteErr error
	listErr   error

	lastUser    string
	lastPlantID int64
	bookmarks   []*bookmark.Bookmark
}

func (f *fakeBookmarkStore) Create(_ context.Context, userGoogleID string, plantID int64) (*bookmark.Bookmark, error) {
	f.lastUser, f.lastPlantID = userGoogleID, plantID
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &bookmark.Bookmark{
		ID:           1,
		UserGoogleID: userGoogleID,
		PlantID:      plantID,
		BookmarkedAt: time.Now(),
	}, nil
}

func (f *fakeBookmarkStore) List(_ context.Context, _, _ int) ([]*bookmark.Bookmark, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bookmarks, nil
}

func (f *fakeBookmarkStore) ListForUser(_ context.Context, userGoogleID string) ([]*bookmark.Bookmark, error) {
	f.lastUser = userGoogleID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bookmarks, nil
}

func (f *fakeBookmarkStore) Delete(_ context.Context, userGoogleID string, plantID int64) error {
	f.lastUser, f.lastPlantID = userGoogleID, plantID
	return f.deleteErr
}

func newBookmarkMux(store BookmarkStore) *http.ServeMux {
	mux := http.NewServeMux()
	NewBookmarkHandler(store, log.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestBookmarkHandler_Create(t *testing.T) {
	store := &fakeBookmarkStore{}
	mux := newBookmarkMux(store)

	body := `{"user_google_id":"g-123","plant_id":7}`
	req := httptest.NewRequest(http.MethodPost, "/bookmarks/", strings.NewReader(body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "g-123", store.lastUser)
	assert.Equal(t, int64(7), store.lastPlantID)

	var got bookmark.Bookmark
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, int64(7), got.PlantID)
}

func TestBookmarkHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing user_google_id", `{"plant_id":7}`},
		{"missing plant_id", `{"user_google_id":"g-123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newBookmarkMux(&fakeBookmarkStore{})
			req := httptest.NewRequest(http.MethodPost, "/bookmarks/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBookmarkHandler_Create_StoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user missing", bookmark.ErrUserNotFound, http.StatusNotFound},
		{"plant missing", bookmark.ErrPlantNotFound, http.StatusNotFound},
		{"already bookmarked", bookmark.ErrDuplicate, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newBookmarkMux(&fakeBookmarkStore{createErr: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/bookmarks/",
				strings.NewReader(`{"user_google_id":"g-123","plant_id":7}`))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}

func TestBookmarkHandler_ListForUser(t *testing.T) {
	store := &fakeBookmarkStore{bookmarks: []*bookmark.Bookmark{
		{ID: 1, UserGoogleID: "g-123", PlantID: 7},
	}}
	mux := newBookmarkMux(store)

	req := httptest.NewRequest(http.MethodGet, "/bookmarks/user/g-123", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g-123", store.lastUser)

	var got []*bookmark.Bookmark
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].PlantID)
}

func TestBookmarkHandler_ListForUser_Empty(t *testing.T) {
	mux := newBookmarkMux(&fakeBookmarkStore{bookmarks: []*bookmark.Bookmark{}})

	req := httptest.NewRequest(http.MethodGet, "/bookmarks/user/nobody", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookmarkHandler_Delete(t *testing.T) {
	store := &fakeBookmarkStore{}
	mux := newBookmarkMux(store)

	req := httptest.NewRequest(http.MethodDelete, "/bookmarks/g-123/7", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "g-123", store.lastUser)
	assert.Equal(t, int64(7), store.lastPlantID)
}

func TestBookmarkHandler_Delete_NotFound(t *testing.T) {
	mux := newBookmarkMux(&fakeBookmarkStore{deleteErr: bookmark.ErrNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/bookmarks/g-123/7", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarkHandler_Delete_InvalidPlantID(t *testing.T) {
	mux := newBookmarkMux(&fakeBookmarkStore{})

	req := httptest.NewRequest(http.MethodDelete, "/bookmarks/g-123/seven", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
