package store

import (
	"context"
	"sort"
	"sync"

	"reclaim/internal/claim/models"
	id "reclaim/pkg/domain"
)

// InMemory mirrors the Postgres return store for unit tests.
type InMemory struct {
	mu      sync.RWMutex
	returns []*models.Return
}

// NewInMemory constructs an empty in-memory return store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Create(_ context.Context, r *models.Return) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.returns = append(s.returns, &cp)
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Return, 0, len(s.returns))
	for _, r := range s.returns {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) CountByMatch(_ context.Context, matchID id.MatchID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, r := range s.returns {
		if r.MatchID == matchID {
			count++
		}
	}
	return count, nil
}
