package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"reclaim/internal/match/models"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
)

type MatchStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MatchStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMatchStoreSuite(t *testing.T) {
	suite.Run(t, new(MatchStoreSuite))
}

func newMatch(lostID id.LostItemID, foundID id.FoundItemID) *models.Match {
	return &models.Match{
		ID:          id.NewMatchID(),
		LostItemID:  lostID,
		FoundItemID: foundID,
		Status:      models.StatusUnclaimed,
		MatchedAt:   time.Now(),
		Snapshot: models.Snapshot{
			LosterEmail:  "a@x.com",
			FounderEmail: "b@x.com",
			SerialNumber: "SN123",
		},
	}
}

func (s *MatchStoreSuite) TestPairUniqueness() {
	lostID := id.NewLostItemID()
	foundID := id.NewFoundItemID()

	first := newMatch(lostID, foundID)
	s.Require().NoError(s.store.Create(s.ctx, first))

	duplicate := newMatch(lostID, foundID)
	err := s.store.Create(s.ctx, duplicate)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	matches, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *MatchStoreSuite) TestDistinctPairsCoexist() {
	lostID := id.NewLostItemID()
	s.Require().NoError(s.store.Create(s.ctx, newMatch(lostID, id.NewFoundItemID())))
	s.Require().NoError(s.store.Create(s.ctx, newMatch(lostID, id.NewFoundItemID())))

	matches, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 2)
}

func (s *MatchStoreSuite) TestConcurrentCreateSamePair() {
	lostID := id.NewLostItemID()
	foundID := id.NewFoundItemID()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(s.ctx, newMatch(lostID, foundID))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

func (s *MatchStoreSuite) TestMarkClaimedIsCompareAndSet() {
	m := newMatch(id.NewLostItemID(), id.NewFoundItemID())
	s.Require().NoError(s.store.Create(s.ctx, m))

	now := time.Now()
	s.Require().NoError(s.store.MarkClaimed(s.ctx, m.ID, now))

	err := s.store.MarkClaimed(s.ctx, m.ID, now.Add(time.Second))
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)

	got, err := s.store.FindByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusClaimed, got.Status)
	s.Require().NotNil(got.ClaimedAt)
	s.WithinDuration(now, *got.ClaimedAt, time.Millisecond)
}

func (s *MatchStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(s.ctx, id.NewMatchID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MatchStoreSuite) TestSnapshotIsolatedFromCallers() {
	m := newMatch(id.NewLostItemID(), id.NewFoundItemID())
	s.Require().NoError(s.store.Create(s.ctx, m))

	// Mutating the caller's copy after create must not leak into the store.
	m.Snapshot.LosterEmail = "tampered@x.com"

	got, err := s.store.FindByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal("a@x.com", got.Snapshot.LosterEmail)
}
