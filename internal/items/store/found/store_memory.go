package found

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"reclaim/internal/items/models"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
)

// InMemory keeps found items in a map for unit tests and local development.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.FoundItemID]*models.FoundItem
}

// NewInMemory constructs an empty in-memory found-item store.
func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.FoundItemID]*models.FoundItem)}
}

func (s *InMemory) Create(_ context.Context, item *models.FoundItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *item
	s.items[item.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, itemID id.FoundItemID) (*models.FoundItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.FoundItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(*models.FoundItem) bool { return true }), nil
}

func (s *InMemory) Search(_ context.Context, name, category, color string) ([]*models.FoundItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(item *models.FoundItem) bool {
		return containsFold(item.Name, name) &&
			containsFold(item.Category, category) &&
			containsFold(item.Color, color)
	}), nil
}

func (s *InMemory) FindBySerial(_ context.Context, serial string, status models.Status) ([]*models.FoundItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(item *models.FoundItem) bool {
		return item.SerialNumber == serial && item.Status == status
	}), nil
}

func (s *InMemory) UpdateStatus(_ context.Context, itemID id.FoundItemID, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok {
		return sentinel.ErrNotFound
	}
	item.Status = status
	item.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemory) ClaimBySerial(_ context.Context, serial string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	var affected int64
	for _, item := range s.items {
		if item.SerialNumber == serial && item.Status != models.StatusClaimed {
			item.Status = models.StatusClaimed
			item.UpdatedAt = now
			affected++
		}
	}
	return affected, nil
}

func (s *InMemory) snapshot(keep func(*models.FoundItem) bool) []*models.FoundItem {
	var items []*models.FoundItem
	for _, item := range s.items {
		if keep(item) {
			clone := *item
			items = append(items, &clone)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
