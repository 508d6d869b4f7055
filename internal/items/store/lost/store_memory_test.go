package lost

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"reclaim/internal/items/models"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
)

type LostStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *LostStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestLostStoreSuite(t *testing.T) {
	suite.Run(t, new(LostStoreSuite))
}

func (s *LostStoreSuite) newItem(serial string, createdAt time.Time) *models.LostItem {
	return &models.LostItem{
		ID:           id.NewLostItemID(),
		Title:        "Lost Phone",
		Category:     "Phone",
		SerialNumber: serial,
		Status:       models.StatusLost,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func (s *LostStoreSuite) TestCreateAndFind() {
	item := s.newItem("SN123", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, item))

	found, err := s.store.FindByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(item.Title, found.Title)
	s.Equal(models.StatusLost, found.Status)
}

func (s *LostStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(s.ctx, id.NewLostItemID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *LostStoreSuite) TestFindBySerialFiltersAndOrders() {
	older := s.newItem("SN123", time.Now().Add(-time.Hour))
	newer := s.newItem("SN123", time.Now())
	claimed := s.newItem("SN123", time.Now())
	claimed.Status = models.StatusClaimed
	other := s.newItem("SN999", time.Now())

	for _, item := range []*models.LostItem{older, newer, claimed, other} {
		s.Require().NoError(s.store.Create(s.ctx, item))
	}

	items, err := s.store.FindBySerial(s.ctx, "SN123", models.StatusLost)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(newer.ID, items[0].ID, "newest first")
	s.Equal(older.ID, items[1].ID)
}

func (s *LostStoreSuite) TestSerialMatchIsByteExact() {
	item := s.newItem("SN123", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, item))

	for _, variant := range []string{"sn123", " SN123", "SN123 "} {
		items, err := s.store.FindBySerial(s.ctx, variant, models.StatusLost)
		s.Require().NoError(err)
		s.Empty(items, "serial %q must not match", variant)
	}
}

func (s *LostStoreSuite) TestReadsReturnCopies() {
	item := s.newItem("SN123", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, item))

	found, err := s.store.FindByID(s.ctx, item.ID)
	s.Require().NoError(err)
	found.Email = "tampered@example.com"

	again, err := s.store.FindByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Empty(again.Email)
}

func (s *LostStoreSuite) TestClaimBySerialOnlyTouchesUnclaimed() {
	a := s.newItem("SN123", time.Now())
	b := s.newItem("SN123", time.Now())
	b.Status = models.StatusClaimed
	c := s.newItem("SN999", time.Now())
	for _, item := range []*models.LostItem{a, b, c} {
		s.Require().NoError(s.store.Create(s.ctx, item))
	}

	affected, err := s.store.ClaimBySerial(s.ctx, "SN123")
	s.Require().NoError(err)
	s.EqualValues(1, affected)

	got, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusClaimed, got.Status)

	untouched, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusLost, untouched.Status)
}

func (s *LostStoreSuite) TestStatusWritesAdvanceUpdatedAt() {
	reported := time.Now().Add(-time.Hour)
	a := s.newItem("SN123", reported)
	b := s.newItem("SN123", reported)
	for _, item := range []*models.LostItem{a, b} {
		s.Require().NoError(s.store.Create(s.ctx, item))
	}

	s.Require().NoError(s.store.UpdateStatus(s.ctx, a.ID, models.StatusClaimed))
	got, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.True(got.UpdatedAt.After(reported))

	_, err = s.store.ClaimBySerial(s.ctx, "SN123")
	s.Require().NoError(err)
	got, err = s.store.FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.True(got.UpdatedAt.After(reported))
}

func (s *LostStoreSuite) TestSearch() {
	phone := s.newItem("SN1", time.Now())
	phone.Title = "Black iPhone"
	phone.Color = "black"
	wallet := s.newItem("SN2", time.Now())
	wallet.Title = "Leather Wallet"
	wallet.Category = "Accessories"
	for _, item := range []*models.LostItem{phone, wallet} {
		s.Require().NoError(s.store.Create(s.ctx, item))
	}

	byTitle, err := s.store.Search(s.ctx, "iphone", "", "")
	s.Require().NoError(err)
	s.Require().Len(byTitle, 1)
	s.Equal(phone.ID, byTitle[0].ID)

	all, err := s.store.Search(s.ctx, "", "", "")
	s.Require().NoError(err)
	s.Len(all, 2)
}
