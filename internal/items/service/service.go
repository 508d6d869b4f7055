// Package service owns the item-report lifecycle: intake, listing, search,
// and the guarded status transitions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"reclaim/internal/items/models"
	"reclaim/internal/platform/metrics"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/platform/sentinel"
	"reclaim/pkg/requestcontext"
)

// LostStore is the persistence surface for lost-item reports.
type LostStore interface {
	Create(ctx context.Context, item *models.LostItem) error
	FindByID(ctx context.Context, itemID id.LostItemID) (*models.LostItem, error)
	List(ctx context.Context) ([]*models.LostItem, error)
	Search(ctx context.Context, title, category, color string) ([]*models.LostItem, error)
	UpdateStatus(ctx context.Context, itemID id.LostItemID, status models.Status) error
	ClaimBySerial(ctx context.Context, serial string) (int64, error)
}

// FoundStore is the persistence surface for found-item reports.
type FoundStore interface {
	Create(ctx context.Context, item *models.FoundItem) error
	FindByID(ctx context.Context, itemID id.FoundItemID) (*models.FoundItem, error)
	List(ctx context.Context) ([]*models.FoundItem, error)
	Search(ctx context.Context, name, category, color string) ([]*models.FoundItem, error)
	UpdateStatus(ctx context.Context, itemID id.FoundItemID, status models.Status) error
	ClaimBySerial(ctx context.Context, serial string) (int64, error)
}

// Matcher is invoked after a report is stored. Matching never surfaces
// errors into the report path.
type Matcher interface {
	OnLostItemCreated(ctx context.Context, item *models.LostItem)
	OnFoundItemCreated(ctx context.Context, item *models.FoundItem)
}

// ReportLostInput carries a new lost-item report.
type ReportLostInput struct {
	Title        string
	Category     string
	Description  string
	Color        string
	SerialNumber string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
}

// ReportFoundInput carries a new found-item report.
type ReportFoundInput struct {
	Name         string
	Category     string
	Description  string
	Color        string
	SerialNumber string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
}

// Service implements item-report operations.
type Service struct {
	lost    LostStore
	found   FoundStore
	matcher Matcher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs the items service.
func New(lost LostStore, found FoundStore, matcher Matcher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		lost:    lost,
		found:   found,
		matcher: matcher,
		logger:  logger,
		metrics: m,
	}
}

// ReportLost stores a lost-item report and runs matching against existing
// found reports. The report succeeds even when matching does not.
func (s *Service) ReportLost(ctx context.Context, input ReportLostInput) (*models.LostItem, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	if input.Title == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "title is required")
	}
	if input.Category == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "category is required")
	}

	now := requestcontext.Now(ctx)
	item := &models.LostItem{
		ID:           id.NewLostItemID(),
		Title:        input.Title,
		Category:     input.Category,
		Description:  input.Description,
		Color:        input.Color,
		SerialNumber: input.SerialNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Email:        input.Email,
		UserID:       reporter(ctx),
		Status:       models.StatusLost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.lost.Create(ctx, item); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store lost item")
	}

	s.metrics.RecordItemReported("lost")
	s.logger.InfoContext(ctx, "lost item reported",
		"lost_item_id", item.ID,
		"has_serial", item.SerialNumber != "",
	)

	s.matcher.OnLostItemCreated(ctx, item)
	return item, nil
}

// ReportFound stores a found-item report and runs matching against existing
// lost reports.
func (s *Service) ReportFound(ctx context.Context, input ReportFoundInput) (*models.FoundItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if input.Category == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "category is required")
	}

	now := requestcontext.Now(ctx)
	item := &models.FoundItem{
		ID:           id.NewFoundItemID(),
		Name:         input.Name,
		Category:     input.Category,
		Description:  input.Description,
		Color:        input.Color,
		SerialNumber: input.SerialNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Email:        input.Email,
		UserID:       reporter(ctx),
		Status:       models.StatusFound,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.found.Create(ctx, item); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store found item")
	}

	s.metrics.RecordItemReported("found")
	s.logger.InfoContext(ctx, "found item reported",
		"found_item_id", item.ID,
		"has_serial", item.SerialNumber != "",
	)

	s.matcher.OnFoundItemCreated(ctx, item)
	return item, nil
}

// GetLost fetches one lost-item report.
func (s *Service) GetLost(ctx context.Context, itemID id.LostItemID) (*models.LostItem, error) {
	item, err := s.lost.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "lost item not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load lost item")
	}
	return item, nil
}

// GetFound fetches one found-item report.
func (s *Service) GetFound(ctx context.Context, itemID id.FoundItemID) (*models.FoundItem, error) {
	item, err := s.found.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "found item not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load found item")
	}
	return item, nil
}

// SearchLost lists lost-item reports matching all given filters. Empty
// filters match everything.
func (s *Service) SearchLost(ctx context.Context, title, category, color string) ([]*models.LostItem, error) {
	items, err := s.lost.Search(ctx, title, category, color)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "search lost items")
	}
	return items, nil
}

// SearchFound lists found-item reports matching all given filters.
func (s *Service) SearchFound(ctx context.Context, name, category, color string) ([]*models.FoundItem, error) {
	items, err := s.found.Search(ctx, name, category, color)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "search found items")
	}
	return items, nil
}

// UpdateLostStatus applies a status change to a lost item, enforcing the
// one-way transition rules. Marking an item claimed also claims every
// counterpart found report sharing its serial number.
func (s *Service) UpdateLostStatus(ctx context.Context, itemID id.LostItemID, status models.Status) (*models.LostItem, error) {
	item, err := s.GetLost(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(item.Status, status) {
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			"cannot change status from "+string(item.Status)+" to "+string(status))
	}
	if err := s.lost.UpdateStatus(ctx, itemID, status); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update lost item status")
	}
	item.Status = status

	if status == models.StatusClaimed && item.SerialNumber != "" {
		s.cascadeClaim(ctx, item.SerialNumber, "lost_item_id", itemID.String())
	}
	return item, nil
}

// UpdateFoundStatus mirrors UpdateLostStatus for the finder side.
func (s *Service) UpdateFoundStatus(ctx context.Context, itemID id.FoundItemID, status models.Status) (*models.FoundItem, error) {
	item, err := s.GetFound(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(item.Status, status) {
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			"cannot change status from "+string(item.Status)+" to "+string(status))
	}
	if err := s.found.UpdateStatus(ctx, itemID, status); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update found item status")
	}
	item.Status = status

	if status == models.StatusClaimed && item.SerialNumber != "" {
		s.cascadeClaim(ctx, item.SerialNumber, "found_item_id", itemID.String())
	}
	return item, nil
}

// cascadeClaim claims all reports on both sides that share the serial. A
// cascade failure leaves the direct update in place; the claimed state is
// already true and the stragglers surface in the next claim attempt.
func (s *Service) cascadeClaim(ctx context.Context, serial, triggerKey, triggerID string) {
	lostClaimed, err := s.lost.ClaimBySerial(ctx, serial)
	if err != nil {
		s.logger.ErrorContext(ctx, "cascade claim failed on lost items",
			triggerKey, triggerID,
			"error", err,
		)
	}
	foundClaimed, err := s.found.ClaimBySerial(ctx, serial)
	if err != nil {
		s.logger.ErrorContext(ctx, "cascade claim failed on found items",
			triggerKey, triggerID,
			"error", err,
		)
	}
	if lostClaimed+foundClaimed > 0 {
		s.logger.InfoContext(ctx, "cascade claimed counterpart reports",
			triggerKey, triggerID,
			"lost_claimed", lostClaimed,
			"found_claimed", foundClaimed,
		)
	}
}

func reporter(ctx context.Context) *id.UserID {
	if userID := requestcontext.UserID(ctx); !userID.IsNil() {
		return &userID
	}
	return nil
}
