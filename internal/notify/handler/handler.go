// Package handler exposes the in-app notification inbox over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/platform/httputil"
	"reclaim/pkg/platform/sentinel"
	"reclaim/pkg/requestcontext"
)

// Inbox defines the notification reads the handler needs.
type Inbox interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]notify.Notification, error)
	MarkRead(ctx context.Context, userID id.UserID, notificationID id.NotificationID) error
}

// Handler wires inbox endpoints to the inbox store.
type Handler struct {
	inbox  Inbox
	logger *slog.Logger
}

// New constructs a notification handler.
func New(inbox Inbox, logger *slog.Logger) *Handler {
	return &Handler{inbox: inbox, logger: logger}
}

// Register mounts notification endpoints on the router. The router is
// expected to already enforce authentication.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.HandleList)
	r.Patch("/notifications/{notificationID}/read", h.HandleMarkRead)
}

// HandleList handles GET /notifications.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	notifications, err := h.inbox.ListByUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "inbox list failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list notifications"))
		return
	}
	if notifications == nil {
		notifications = []notify.Notification{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

// HandleMarkRead handles PATCH /notifications/{notificationID}/read.
// Notifications belonging to another user read as not found.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	notificationID, err := id.ParseNotificationID(chi.URLParam(r, "notificationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid notification id"))
		return
	}

	if err := h.inbox.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "notification not found"))
			return
		}
		h.logger.ErrorContext(ctx, "inbox mark-read failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"notification_id", notificationID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "mark notification read"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
