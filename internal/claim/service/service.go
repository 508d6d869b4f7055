// Package service coordinates the claim transaction: the one place where a
// match, both item reports, and a new Return record change together.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	claimmodels "reclaim/internal/claim/models"
	itemmodels "reclaim/internal/items/models"
	matchmodels "reclaim/internal/match/models"
	"reclaim/internal/notify"
	"reclaim/internal/platform/metrics"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/platform/sentinel"
)

// Dispatcher queues post-claim notifications.
type Dispatcher interface {
	DispatchAll(ctx context.Context, notifications []notify.Notification)
}

// Service executes claims.
type Service struct {
	tx         Runner
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// New constructs the claim service.
func New(tx Runner, dispatcher Dispatcher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		tx:         tx,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer("reclaim/claim/service"),
	}
}

// Claim finalizes a match: the match flips to claimed, both item reports
// flip to claimed, and one Return record is appended, all in one
// transaction. Exactly one of any number of concurrent claims for the same
// match succeeds; the rest fail with a conflict and write nothing.
func (s *Service) Claim(ctx context.Context, matchID id.MatchID, claimedBy *id.UserID, notes string) (*matchmodels.Match, error) {
	ctx, span := s.tracer.Start(ctx, "claim.execute",
		trace.WithAttributes(attribute.String("match_id", matchID.String())))
	defer span.End()

	var (
		claimed     *matchmodels.Match
		losterUser  *id.UserID
		founderUser *id.UserID
	)
	now := time.Now().UTC()

	err := s.tx.RunInTx(ctx, func(ctx context.Context, stores Stores) error {
		match, err := stores.Matches.FindByIDForUpdate(ctx, matchID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "match not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "load match")
		}
		if match.Status == matchmodels.StatusClaimed {
			return dErrors.New(dErrors.CodeConflict, "match is already claimed")
		}

		if err := stores.Matches.MarkClaimed(ctx, matchID, now); err != nil {
			if errors.Is(err, sentinel.ErrInvalidState) {
				return dErrors.New(dErrors.CodeConflict, "match is already claimed")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "mark match claimed")
		}

		lost, err := stores.Lost.FindByID(ctx, match.LostItemID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "load lost item")
		}
		found, err := stores.Found.FindByID(ctx, match.FoundItemID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "load found item")
		}
		losterUser, founderUser = lost.UserID, found.UserID

		if err := stores.Lost.UpdateStatus(ctx, match.LostItemID, itemmodels.StatusClaimed); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "claim lost item")
		}
		if err := stores.Found.UpdateStatus(ctx, match.FoundItemID, itemmodels.StatusClaimed); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "claim found item")
		}

		snap := match.Snapshot
		if err := stores.Returns.Create(ctx, &claimmodels.Return{
			ID:           id.NewReturnID(),
			MatchID:      match.ID,
			LostItemID:   match.LostItemID,
			FoundItemID:  match.FoundItemID,
			LosterName:   snap.LosterName,
			LosterPhone:  snap.LosterPhone,
			LosterEmail:  snap.LosterEmail,
			FounderName:  snap.FounderName,
			FounderPhone: snap.FounderPhone,
			FounderEmail: snap.FounderEmail,
			DeviceName:   snap.DeviceName,
			SerialNumber: snap.SerialNumber,
			Confirmation: true,
			OwnerID:      losterUser,
			FinderID:     founderUser,
			ClaimedBy:    claimedBy,
			Notes:        notes,
			CreatedAt:    now,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "append return record")
		}

		match.Status = matchmodels.StatusClaimed
		match.ClaimedAt = &now
		claimed = match
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			s.metrics.RecordClaimConflict()
		}
		return nil, err
	}

	s.metrics.RecordClaimCompleted()
	s.logger.InfoContext(ctx, "match claimed",
		"match_id", matchID,
		"lost_item_id", claimed.LostItemID,
		"found_item_id", claimed.FoundItemID,
	)

	// Notifications ride outside the transaction: a queueing failure can
	// never unwind a committed claim.
	s.dispatcher.DispatchAll(ctx, notify.ClaimConfirmed(claimed, losterUser, founderUser))
	return claimed, nil
}
