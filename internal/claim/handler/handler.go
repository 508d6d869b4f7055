// Package handler exposes the claim operation and the return ledger over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	claimmodels "reclaim/internal/claim/models"
	matchmodels "reclaim/internal/match/models"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/platform/httputil"
	"reclaim/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,Returns

// Service defines the interface for claim operations.
type Service interface {
	Claim(ctx context.Context, matchID id.MatchID, claimedBy *id.UserID, notes string) (*matchmodels.Match, error)
}

// Returns defines read access to the return ledger.
type Returns interface {
	List(ctx context.Context) ([]*claimmodels.Return, error)
}

// Handler wires claim endpoints to the claim service.
type Handler struct {
	service Service
	returns Returns
	logger  *slog.Logger
}

// New constructs a claim handler with its dependencies.
func New(service Service, returns Returns, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		returns: returns,
		logger:  logger,
	}
}

// Register mounts claim endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/matches/{matchID}/claim", h.HandleClaim)
	r.Get("/returns", h.HandleListReturns)
}

// HandleClaim handles POST /matches/{matchID}/claim requests.
func (h *Handler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	matchID, err := id.ParseMatchID(chi.URLParam(r, "matchID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid match id"))
		return
	}

	var claimedBy *id.UserID
	if userID := requestcontext.UserID(ctx); !userID.IsNil() {
		claimedBy = &userID
	}

	req, ok := httputil.DecodeAndPrepare[ClaimRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	match, err := h.service.Claim(ctx, matchID, claimedBy, req.Notes)
	if err != nil {
		if code := dErrors.CodeOf(err); code == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "claim failed",
				"request_id", requestID,
				"match_id", matchID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "claim completed",
		"request_id", requestID,
		"match_id", matchID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromMatch(match))
}

// HandleListReturns handles GET /returns requests.
func (h *Handler) HandleListReturns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	returns, err := h.returns.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "return list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list returns"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReturns(returns))
}
