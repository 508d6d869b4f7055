package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"reclaim/internal/items/models"
	foundstore "reclaim/internal/items/store/found"
	loststore "reclaim/internal/items/store/lost"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
	"reclaim/pkg/testutil"
)

type recordingMatcher struct {
	lostSeen  []*models.LostItem
	foundSeen []*models.FoundItem
}

func (m *recordingMatcher) OnLostItemCreated(_ context.Context, item *models.LostItem) {
	m.lostSeen = append(m.lostSeen, item)
}

func (m *recordingMatcher) OnFoundItemCreated(_ context.Context, item *models.FoundItem) {
	m.foundSeen = append(m.foundSeen, item)
}

type ItemsSuite struct {
	suite.Suite
	ctx     context.Context
	lost    *loststore.InMemory
	found   *foundstore.InMemory
	matcher *recordingMatcher
	service *Service
}

func (s *ItemsSuite) SetupTest() {
	s.ctx = context.Background()
	s.lost = loststore.NewInMemory()
	s.found = foundstore.NewInMemory()
	s.matcher = &recordingMatcher{}
	s.service = New(s.lost, s.found, s.matcher, slog.Default(), nil)
}

func TestItemsSuite(t *testing.T) {
	suite.Run(t, new(ItemsSuite))
}

func (s *ItemsSuite) TestReportLost() {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	ctx, userID := testutil.AuthedContext(testutil.FrozenContext(s.ctx, now))

	item, err := s.service.ReportLost(ctx, ReportLostInput{
		Title:        "iPhone 12",
		Category:     "electronics",
		SerialNumber: "SN123",
		FirstName:    "Alice",
		Email:        "a@x.com",
	})
	s.Require().NoError(err)
	s.Equal(models.StatusLost, item.Status)
	s.Equal(now, item.CreatedAt)
	s.Require().NotNil(item.UserID)
	s.Equal(userID, *item.UserID)

	stored, err := s.lost.FindByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal("iPhone 12", stored.Title)

	s.Require().Len(s.matcher.lostSeen, 1)
	s.Equal(item.ID, s.matcher.lostSeen[0].ID)
}

func (s *ItemsSuite) TestReportLostValidation() {
	_, err := s.service.ReportLost(s.ctx, ReportLostInput{Category: "electronics"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.service.ReportLost(s.ctx, ReportLostInput{Title: "iPhone 12"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	s.Empty(s.matcher.lostSeen, "matching must not run for rejected reports")
}

func (s *ItemsSuite) TestReportFoundAnonymously() {
	item, err := s.service.ReportFound(s.ctx, ReportFoundInput{
		Name:     "Black iPhone",
		Category: "electronics",
	})
	s.Require().NoError(err)
	s.Equal(models.StatusFound, item.Status)
	s.Nil(item.UserID)

	s.Require().Len(s.matcher.foundSeen, 1)
}

func (s *ItemsSuite) TestUpdateLostStatusToClaimed() {
	item, err := s.service.ReportLost(s.ctx, ReportLostInput{Title: "Wallet", Category: "accessories"})
	s.Require().NoError(err)

	updated, err := s.service.UpdateLostStatus(s.ctx, item.ID, models.StatusClaimed)
	s.Require().NoError(err)
	s.Equal(models.StatusClaimed, updated.Status)
}

func (s *ItemsSuite) TestClaimedIsTerminal() {
	item, err := s.service.ReportLost(s.ctx, ReportLostInput{Title: "Wallet", Category: "accessories"})
	s.Require().NoError(err)

	_, err = s.service.UpdateLostStatus(s.ctx, item.ID, models.StatusClaimed)
	s.Require().NoError(err)

	_, err = s.service.UpdateLostStatus(s.ctx, item.ID, models.StatusLost)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
}

func (s *ItemsSuite) TestSidewaysTransitionRejected() {
	item, err := s.service.ReportLost(s.ctx, ReportLostInput{Title: "Wallet", Category: "accessories"})
	s.Require().NoError(err)

	_, err = s.service.UpdateLostStatus(s.ctx, item.ID, models.StatusFound)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
}

func (s *ItemsSuite) TestUpdateStatusUnknownItem() {
	_, err := s.service.UpdateLostStatus(s.ctx, id.NewLostItemID(), models.StatusClaimed)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ItemsSuite) TestDirectClaimCascadesAcrossSerial() {
	lost, err := s.service.ReportLost(s.ctx, ReportLostInput{
		Title: "iPhone 12", Category: "electronics", SerialNumber: "SN123",
	})
	s.Require().NoError(err)

	found, err := s.service.ReportFound(s.ctx, ReportFoundInput{
		Name: "Black iPhone", Category: "electronics", SerialNumber: "SN123",
	})
	s.Require().NoError(err)

	other, err := s.service.ReportFound(s.ctx, ReportFoundInput{
		Name: "Red phone", Category: "electronics", SerialNumber: "SN999",
	})
	s.Require().NoError(err)

	_, err = s.service.UpdateLostStatus(s.ctx, lost.ID, models.StatusClaimed)
	s.Require().NoError(err)

	stored, err := s.found.FindByID(s.ctx, found.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusClaimed, stored.Status, "counterpart with same serial follows the claim")

	unrelated, err := s.found.FindByID(s.ctx, other.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusFound, unrelated.Status, "different serial stays put")
}

func (s *ItemsSuite) TestSearchLost() {
	_, err := s.service.ReportLost(s.ctx, ReportLostInput{
		Title: "iPhone 12", Category: "electronics", Color: "black",
	})
	s.Require().NoError(err)
	_, err = s.service.ReportLost(s.ctx, ReportLostInput{
		Title: "Leather wallet", Category: "accessories", Color: "brown",
	})
	s.Require().NoError(err)

	hits, err := s.service.SearchLost(s.ctx, "iphone", "", "")
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal("iPhone 12", hits[0].Title)

	all, err := s.service.SearchLost(s.ctx, "", "", "")
	s.Require().NoError(err)
	s.Len(all, 2, "empty filters match everything")
}
