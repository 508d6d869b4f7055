package lost

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

// InMemory keeps lost items in a map for unit tests and local development.
// It mirrors the PostgresStore contract, including copy-on-read so callers
// can't mutate stored records behind the store's back.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.LostItemID]*models.LostItem
}

// NewInMemory constructs an empty in-memory lost-item store.
func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.LostItemID]*models.LostItem)}
}

func (s *InMemory) Create(_ context.Context, item *models.LostItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *item
	s.items[item.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, itemID id.LostItemID) (*models.LostItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.LostItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(*models.LostItem) bool { return true }), nil
}

func (s *InMemory) Search(_ context.Context, title, category, color string) ([]*models.LostItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(item *models.LostItem) bool {
		return containsFold(item.Title, title) &&
			containsFold(item.Category, category) &&
			containsFold(item.Color, color)
	}), nil
}

func (s *InMemory) FindBySerial(_ context.Context, serial string, status models.Status) ([]*models.LostItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(item *models.LostItem) bool {
		return item.SerialNumber == serial && item.Status == status
	}), nil
}

func (s *InMemory) UpdateStatus(_ context.Context, itemID id.LostItemID, status models.Status) error {
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

// snapshot returns copies of matching items, newest first. Callers must hold
// at least a read lock.
func (s *InMemory) snapshot(keep func(*models.LostItem) bool) []*models.LostItem {
	var items []*models.LostItem
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
