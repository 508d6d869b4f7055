// Package handler exposes lost and found item reports over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reclaim/internal/items/models"
	"reclaim/internal/items/service"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/platform/httputil"
	"reclaim/pkg/requestcontext"
)

// Service defines the item operations the handler needs.
type Service interface {
	ReportLost(ctx context.Context, input service.ReportLostInput) (*models.LostItem, error)
	ReportFound(ctx context.Context, input service.ReportFoundInput) (*models.FoundItem, error)
	GetLost(ctx context.Context, itemID id.LostItemID) (*models.LostItem, error)
	GetFound(ctx context.Context, itemID id.FoundItemID) (*models.FoundItem, error)
	SearchLost(ctx context.Context, title, category, color string) ([]*models.LostItem, error)
	SearchFound(ctx context.Context, name, category, color string) ([]*models.FoundItem, error)
	UpdateLostStatus(ctx context.Context, itemID id.LostItemID, status models.Status) (*models.LostItem, error)
	UpdateFoundStatus(ctx context.Context, itemID id.FoundItemID, status models.Status) (*models.FoundItem, error)
}

// Handler wires item endpoints to the items service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an items handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts item endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/lost-items", h.HandleReportLost)
	r.Get("/lost-items", h.HandleSearchLost)
	r.Get("/lost-items/{itemID}", h.HandleGetLost)
	r.Patch("/lost-items/{itemID}/status", h.HandleUpdateLostStatus)

	r.Post("/found-items", h.HandleReportFound)
	r.Get("/found-items", h.HandleSearchFound)
	r.Get("/found-items/{itemID}", h.HandleGetFound)
	r.Patch("/found-items/{itemID}/status", h.HandleUpdateFoundStatus)
}

// HandleReportLost handles POST /lost-items requests.
func (h *Handler) HandleReportLost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ReportLostRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	item, err := h.service.ReportLost(ctx, req.ToInput())
	if err != nil {
		h.writeServiceError(ctx, w, "lost item report failed", err)
		return
	}

	h.logger.InfoContext(ctx, "lost item reported",
		"request_id", requestID,
		"lost_item_id", item.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromLostItem(item))
}

// HandleReportFound handles POST /found-items requests.
func (h *Handler) HandleReportFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ReportFoundRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	item, err := h.service.ReportFound(ctx, req.ToInput())
	if err != nil {
		h.writeServiceError(ctx, w, "found item report failed", err)
		return
	}

	h.logger.InfoContext(ctx, "found item reported",
		"request_id", requestID,
		"found_item_id", item.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromFoundItem(item))
}

// HandleGetLost handles GET /lost-items/{itemID} requests.
func (h *Handler) HandleGetLost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := id.ParseLostItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid item id"))
		return
	}

	item, err := h.service.GetLost(ctx, itemID)
	if err != nil {
		h.writeServiceError(ctx, w, "lost item lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromLostItem(item))
}

// HandleGetFound handles GET /found-items/{itemID} requests.
func (h *Handler) HandleGetFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := id.ParseFoundItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid item id"))
		return
	}

	item, err := h.service.GetFound(ctx, itemID)
	if err != nil {
		h.writeServiceError(ctx, w, "found item lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFoundItem(item))
}

// HandleSearchLost handles GET /lost-items requests. Query parameters title,
// category, and color filter case-insensitively; all are optional.
func (h *Handler) HandleSearchLost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	items, err := h.service.SearchLost(ctx, q.Get("title"), q.Get("category"), q.Get("color"))
	if err != nil {
		h.writeServiceError(ctx, w, "lost item search failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromLostItems(items))
}

// HandleSearchFound handles GET /found-items requests.
func (h *Handler) HandleSearchFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	items, err := h.service.SearchFound(ctx, q.Get("name"), q.Get("category"), q.Get("color"))
	if err != nil {
		h.writeServiceError(ctx, w, "found item search failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFoundItems(items))
}

// HandleUpdateLostStatus handles PATCH /lost-items/{itemID}/status requests.
func (h *Handler) HandleUpdateLostStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	itemID, err := id.ParseLostItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid item id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	item, err := h.service.UpdateLostStatus(ctx, itemID, req.ParsedStatus())
	if err != nil {
		h.writeServiceError(ctx, w, "lost item status update failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromLostItem(item))
}

// HandleUpdateFoundStatus handles PATCH /found-items/{itemID}/status requests.
func (h *Handler) HandleUpdateFoundStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	itemID, err := id.ParseFoundItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid item id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	item, err := h.service.UpdateFoundStatus(ctx, itemID, req.ParsedStatus())
	if err != nil {
		h.writeServiceError(ctx, w, "found item status update failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFoundItem(item))
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
