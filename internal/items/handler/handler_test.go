package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim/internal/items/models"
	"reclaim/internal/items/service"
	foundstore "reclaim/internal/items/store/found"
	loststore "reclaim/internal/items/store/lost"
)

type noopMatcher struct{}

func (noopMatcher) OnLostItemCreated(context.Context, *models.LostItem)   {}
func (noopMatcher) OnFoundItemCreated(context.Context, *models.FoundItem) {}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(loststore.NewInMemory(), foundstore.NewInMemory(), noopMatcher{}, logger, nil)

	router := chi.NewRouter()
	New(svc, logger).Register(router)
	return router
}

func postJSON(router chi.Router, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReportLostItem(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, "/lost-items", `{
		"title": "iPhone 12",
		"category": "electronics",
		"serial_number": "SN123",
		"first_name": "Alice",
		"last_name": "Owner",
		"email": "a@x.com"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp LostItemResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "lost", resp.Status)
	assert.Equal(t, "Alice Owner", resp.ReporterName)
	assert.Equal(t, "SN123", resp.SerialNumber)
}

func TestReportLostItemMissingTitle(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, "/lost-items", `{"category": "electronics"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "invalid_input", body["error"])
}

func TestReportLostItemRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, "/lost-items", `{"title": "Wallet", "category": "accessories", "bogus": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLostItem(t *testing.T) {
	router := newTestRouter(t)

	created := postJSON(router, "/lost-items", `{"title": "Wallet", "category": "accessories"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var item LostItemResponse
	require.NoError(t, json.NewDecoder(created.Body).Decode(&item))

	req := httptest.NewRequest(http.MethodGet, "/lost-items/"+item.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var fetched LostItemResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
	assert.Equal(t, item.ID, fetched.ID)
}

func TestGetLostItemNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/lost-items/00000000-0000-0000-0000-000000000001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchFoundItems(t *testing.T) {
	router := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(router, "/found-items",
		`{"name": "Black iPhone", "category": "electronics", "color": "black"}`).Code)
	require.Equal(t, http.StatusCreated, postJSON(router, "/found-items",
		`{"name": "Umbrella", "category": "accessories", "color": "red"}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/found-items?category=electronics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var items []FoundItemResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Black iPhone", items[0].Name)
}

func TestUpdateStatus(t *testing.T) {
	router := newTestRouter(t)

	created := postJSON(router, "/lost-items", `{"title": "Wallet", "category": "accessories"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var item LostItemResponse
	require.NoError(t, json.NewDecoder(created.Body).Decode(&item))

	req := httptest.NewRequest(http.MethodPatch, "/lost-items/"+item.ID+"/status",
		bytes.NewBufferString(`{"status": "claimed"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var updated LostItemResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, "claimed", updated.Status)

	// Claimed is terminal; walking it back must fail.
	req = httptest.NewRequest(http.MethodPatch, "/lost-items/"+item.ID+"/status",
		bytes.NewBufferString(`{"status": "lost"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	router := newTestRouter(t)

	created := postJSON(router, "/lost-items", `{"title": "Wallet", "category": "accessories"}`)
	var item LostItemResponse
	require.NoError(t, json.NewDecoder(created.Body).Decode(&item))

	req := httptest.NewRequest(http.MethodPatch, "/lost-items/"+item.ID+"/status",
		bytes.NewBufferString(`{"status": "vanished"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
