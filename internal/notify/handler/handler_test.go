package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim/internal/notify"
	"reclaim/internal/notify/store/inbox"
	id "reclaim/pkg/domain"
	"reclaim/pkg/requestcontext"
)

func newRouter(store *inbox.InMemory) chi.Router {
	r := chi.NewRouter()
	New(store, slog.Default()).Register(r)
	return r
}

func addNotification(t *testing.T, store *inbox.InMemory, userID id.UserID, subject string) notify.Notification {
	t.Helper()
	uid := userID
	n := notify.Notification{
		ID:        id.NewNotificationID(),
		Recipient: "user@example.com",
		UserID:    &uid,
		Subject:   subject,
		Body:      "hello",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Add(context.Background(), n))
	return n
}

func doRequest(router chi.Router, method, target string, userID id.UserID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if !userID.IsNil() {
		req = req.WithContext(requestcontext.WithUserID(req.Context(), userID))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListNotifications(t *testing.T) {
	store := inbox.NewInMemory()
	router := newRouter(store)
	user := id.NewUserID()

	addNotification(t, store, user, "first")
	addNotification(t, store, user, "second")
	addNotification(t, store, id.NewUserID(), "someone else's")

	w := doRequest(router, http.MethodGet, "/notifications", user)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Notifications []notify.Notification `json:"notifications"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Notifications, 2)
	// Newest first.
	assert.Equal(t, "second", body.Notifications[0].Subject)
	assert.Equal(t, "first", body.Notifications[1].Subject)
}

func TestListNotificationsEmptyInbox(t *testing.T) {
	router := newRouter(inbox.NewInMemory())

	w := doRequest(router, http.MethodGet, "/notifications", id.NewUserID())
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notifications":[]}`, w.Body.String())
}

func TestListNotificationsUnauthenticated(t *testing.T) {
	router := newRouter(inbox.NewInMemory())

	w := doRequest(router, http.MethodGet, "/notifications", id.UserID{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMarkRead(t *testing.T) {
	store := inbox.NewInMemory()
	router := newRouter(store)
	user := id.NewUserID()
	n := addNotification(t, store, user, "unread")

	w := doRequest(router, http.MethodPatch, "/notifications/"+n.ID.String()+"/read", user)
	require.Equal(t, http.StatusNoContent, w.Code)

	feed, err := store.ListByUser(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Read)
}

func TestMarkReadForeignNotificationIsNotFound(t *testing.T) {
	store := inbox.NewInMemory()
	router := newRouter(store)
	owner := id.NewUserID()
	n := addNotification(t, store, owner, "private")

	w := doRequest(router, http.MethodPatch, "/notifications/"+n.ID.String()+"/read", id.NewUserID())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkReadInvalidID(t *testing.T) {
	router := newRouter(inbox.NewInMemory())

	w := doRequest(router, http.MethodPatch, "/notifications/not-a-uuid/read", id.NewUserID())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
