package inbox

import (
	"context"
	"sync"

	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
)

// InMemory mirrors the Redis inbox contract for unit tests.
type InMemory struct {
	mu     sync.RWMutex
	byUser map[id.UserID][]notify.Notification
}

// NewInMemory constructs an empty in-memory inbox store.
func NewInMemory() *InMemory {
	return &InMemory{byUser: make(map[id.UserID][]notify.Notification)}
}

func (s *InMemory) Add(_ context.Context, n notify.Notification) error {
	if n.UserID == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user := *n.UserID
	s.byUser[user] = append([]notify.Notification{n}, s.byUser[user]...)
	return nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]notify.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]notify.Notification, len(s.byUser[userID]))
	copy(out, s.byUser[userID])
	return out, nil
}

func (s *InMemory) MarkRead(_ context.Context, userID id.UserID, notificationID id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed := s.byUser[userID]
	for i := range feed {
		if feed[i].ID == notificationID {
			feed[i].Read = true
			return nil
		}
	}
	return sentinel.ErrNotFound
}
