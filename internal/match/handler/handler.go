// Package handler exposes match records over HTTP for the handover staff.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reclaim/internal/match/models"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/platform/httputil"
	"reclaim/pkg/platform/sentinel"
	"reclaim/pkg/requestcontext"
)

// Store defines read access to match records.
type Store interface {
	List(ctx context.Context) ([]*models.Match, error)
	FindByID(ctx context.Context, matchID id.MatchID) (*models.Match, error)
}

// Handler wires match endpoints to the match store.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// New constructs a match handler.
func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts match endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/matches", h.HandleList)
	r.Get("/matches/{matchID}", h.HandleGet)
}

// MatchResponse is the HTTP representation of a match, including the frozen
// contact snapshot the handover staff work from.
type MatchResponse struct {
	ID           string     `json:"id"`
	LostItemID   string     `json:"lost_item_id"`
	FoundItemID  string     `json:"found_item_id"`
	Status       string     `json:"status"`
	MatchedAt    time.Time  `json:"matched_at"`
	ClaimedAt    *time.Time `json:"claimed_at,omitempty"`
	LosterName   string     `json:"loster_name"`
	LosterPhone  string     `json:"loster_phone,omitempty"`
	LosterEmail  string     `json:"loster_email,omitempty"`
	FounderName  string     `json:"founder_name"`
	FounderPhone string     `json:"founder_phone,omitempty"`
	FounderEmail string     `json:"founder_email,omitempty"`
	DeviceName   string     `json:"device_name"`
	SerialNumber string     `json:"serial_number"`
}

func fromMatch(m *models.Match) MatchResponse {
	return MatchResponse{
		ID:           m.ID.String(),
		LostItemID:   m.LostItemID.String(),
		FoundItemID:  m.FoundItemID.String(),
		Status:       string(m.Status),
		MatchedAt:    m.MatchedAt,
		ClaimedAt:    m.ClaimedAt,
		LosterName:   m.Snapshot.LosterName,
		LosterPhone:  m.Snapshot.LosterPhone,
		LosterEmail:  m.Snapshot.LosterEmail,
		FounderName:  m.Snapshot.FounderName,
		FounderPhone: m.Snapshot.FounderPhone,
		FounderEmail: m.Snapshot.FounderEmail,
		DeviceName:   m.Snapshot.DeviceName,
		SerialNumber: m.Snapshot.SerialNumber,
	}
}

// HandleList handles GET /matches requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	matches, err := h.store.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "match list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list matches"))
		return
	}

	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, fromMatch(m))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /matches/{matchID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	matchID, err := id.ParseMatchID(chi.URLParam(r, "matchID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid match id"))
		return
	}

	m, err := h.store.FindByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "match not found"))
			return
		}
		h.logger.ErrorContext(ctx, "match lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"match_id", matchID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "load match"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromMatch(m))
}
