// Package matcher runs serial-number matching after an item report lands.
// Matching never fails the report that triggered it: every error here is
// logged and swallowed.
package matcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	itemmodels "reclaim/internal/items/models"
	"reclaim/internal/match/models"
	"reclaim/internal/notify"
	"reclaim/internal/platform/metrics"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
)

// LostStore is the lost-item lookup the matcher needs.
type LostStore interface {
	FindBySerial(ctx context.Context, serial string, status itemmodels.Status) ([]*itemmodels.LostItem, error)
}

// FoundStore is the found-item lookup the matcher needs.
type FoundStore interface {
	FindBySerial(ctx context.Context, serial string, status itemmodels.Status) ([]*itemmodels.FoundItem, error)
}

// MatchStore persists match records. Create must return
// sentinel.ErrConflict when the pair already has a match.
type MatchStore interface {
	Create(ctx context.Context, m *models.Match) error
}

// Dispatcher queues match notifications.
type Dispatcher interface {
	DispatchAll(ctx context.Context, notifications []notify.Notification)
}

// Matcher pairs opposite-side reports that share a serial number. Serials
// compare byte-for-byte; no trimming, no case folding.
type Matcher struct {
	lost       LostStore
	found      FoundStore
	matches    MatchStore
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// New constructs a matcher.
func New(lost LostStore, found FoundStore, matches MatchStore, dispatcher Dispatcher, logger *slog.Logger, m *metrics.Metrics) *Matcher {
	return &Matcher{
		lost:       lost,
		found:      found,
		matches:    matches,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer("reclaim/match/matcher"),
	}
}

// OnLostItemCreated matches a fresh lost report against existing found
// reports that still carry the initial found status.
func (m *Matcher) OnLostItemCreated(ctx context.Context, item *itemmodels.LostItem) {
	if item.SerialNumber == "" {
		return
	}
	ctx, span := m.tracer.Start(ctx, "matcher.on_lost_item_created",
		trace.WithAttributes(attribute.String("lost_item_id", item.ID.String())))
	defer span.End()

	counterparts, err := m.found.FindBySerial(ctx, item.SerialNumber, itemmodels.StatusFound)
	if err != nil {
		m.logger.ErrorContext(ctx, "matching scan failed",
			"lost_item_id", item.ID,
			"error", err,
		)
		return
	}
	for _, found := range counterparts {
		match, created := m.createMatch(ctx, item, found)
		if !created {
			continue
		}
		m.dispatcher.DispatchAll(ctx, notify.LostTriggered(match, item.UserID, found.UserID))
	}
}

// OnFoundItemCreated matches a fresh found report against existing lost
// reports that still carry the initial lost status.
func (m *Matcher) OnFoundItemCreated(ctx context.Context, item *itemmodels.FoundItem) {
	if item.SerialNumber == "" {
		return
	}
	ctx, span := m.tracer.Start(ctx, "matcher.on_found_item_created",
		trace.WithAttributes(attribute.String("found_item_id", item.ID.String())))
	defer span.End()

	counterparts, err := m.lost.FindBySerial(ctx, item.SerialNumber, itemmodels.StatusLost)
	if err != nil {
		m.logger.ErrorContext(ctx, "matching scan failed",
			"found_item_id", item.ID,
			"error", err,
		)
		return
	}
	for _, lost := range counterparts {
		match, created := m.createMatch(ctx, lost, item)
		if !created {
			continue
		}
		m.dispatcher.DispatchAll(ctx, notify.FoundTriggered(match, lost.UserID, item.UserID))
	}
}

// createMatch inserts the match for one (lost, found) pair. Losing the
// pair-uniqueness race is normal operation, not an error: no notifications
// go out for the duplicate attempt.
func (m *Matcher) createMatch(ctx context.Context, lost *itemmodels.LostItem, found *itemmodels.FoundItem) (*models.Match, bool) {
	match := &models.Match{
		ID:          id.NewMatchID(),
		LostItemID:  lost.ID,
		FoundItemID: found.ID,
		Status:      models.StatusUnclaimed,
		MatchedAt:   time.Now().UTC(),
		Snapshot:    buildSnapshot(lost, found),
	}

	err := m.matches.Create(ctx, match)
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		m.metrics.RecordDuplicateMatch()
		m.logger.DebugContext(ctx, "match already exists for pair",
			"lost_item_id", lost.ID,
			"found_item_id", found.ID,
		)
		return nil, false
	case err != nil:
		m.logger.ErrorContext(ctx, "match create failed",
			"lost_item_id", lost.ID,
			"found_item_id", found.ID,
			"error", err,
		)
		return nil, false
	}

	m.metrics.RecordMatchCreated()
	m.logger.InfoContext(ctx, "match created",
		"match_id", match.ID,
		"lost_item_id", lost.ID,
		"found_item_id", found.ID,
	)
	return match, true
}

// buildSnapshot freezes both parties' contact details at match time.
func buildSnapshot(lost *itemmodels.LostItem, found *itemmodels.FoundItem) models.Snapshot {
	deviceName := found.Name
	if deviceName == "" {
		deviceName = lost.Title
	}
	return models.Snapshot{
		LosterName:   lost.ReporterName(),
		LosterPhone:  lost.Phone,
		LosterEmail:  lost.Email,
		FounderName:  found.ReporterName(),
		FounderPhone: found.Phone,
		FounderEmail: found.Email,
		DeviceName:   deviceName,
		SerialNumber: found.SerialNumber,
	}
}
