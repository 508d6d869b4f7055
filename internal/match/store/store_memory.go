package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"reclaim/internal/match/models"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
)

type pairKey struct {
	lost  id.LostItemID
	found id.FoundItemID
}

// InMemory emulates the Postgres store's contract under one mutex: pair
// uniqueness on create and compare-and-set on claim.
type InMemory struct {
	mu      sync.RWMutex
	matches map[id.MatchID]*models.Match
	pairs   map[pairKey]id.MatchID
}

// NewInMemory constructs an empty in-memory match store.
func NewInMemory() *InMemory {
	return &InMemory{
		matches: make(map[id.MatchID]*models.Match),
		pairs:   make(map[pairKey]id.MatchID),
	}
}

func (s *InMemory) Create(_ context.Context, m *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{lost: m.LostItemID, found: m.FoundItemID}
	if _, exists := s.pairs[key]; exists {
		return sentinel.ErrConflict
	}
	clone := *m
	s.matches[m.ID] = &clone
	s.pairs[key] = m.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, matchID id.MatchID) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

// FindByIDForUpdate matches the Postgres signature; the memory store's
// row-level lock is the store mutex held by the memory transaction runner.
func (s *InMemory) FindByIDForUpdate(ctx context.Context, matchID id.MatchID) (*models.Match, error) {
	return s.FindByID(ctx, matchID)
}

func (s *InMemory) List(_ context.Context) ([]*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []*models.Match
	for _, m := range s.matches {
		clone := *m
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MatchedAt.After(matches[j].MatchedAt)
	})
	return matches, nil
}

func (s *InMemory) MarkClaimed(_ context.Context, matchID id.MatchID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok || m.Status != models.StatusUnclaimed {
		return sentinel.ErrInvalidState
	}
	m.Status = models.StatusClaimed
	claimedAt := at
	m.ClaimedAt = &claimedAt
	return nil
}
