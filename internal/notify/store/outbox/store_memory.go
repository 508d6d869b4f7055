package outbox

import (
	"context"
	"sort"
	"sync"
	"time"

	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
)

// InMemory mirrors the Postgres outbox for unit tests.
type InMemory struct {
	mu        sync.Mutex
	queued    map[id.NotificationID]notify.Notification
	published map[id.NotificationID]time.Time
}

// NewInMemory constructs an empty in-memory outbox.
func NewInMemory() *InMemory {
	return &InMemory{
		queued:    make(map[id.NotificationID]notify.Notification),
		published: make(map[id.NotificationID]time.Time),
	}
}

func (s *InMemory) Enqueue(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued[n.ID] = n
	return nil
}

func (s *InMemory) PendingBatch(_ context.Context, limit int) ([]notify.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var batch []notify.Notification
	for nid, n := range s.queued {
		if _, done := s.published[nid]; !done {
			batch = append(batch, n)
		}
	}
	sort.Slice(batch, func(i, j int) bool {
		return batch[i].CreatedAt.Before(batch[j].CreatedAt)
	})
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

func (s *InMemory) MarkPublished(_ context.Context, ids []id.NotificationID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, nid := range ids {
		s.published[nid] = at
	}
	return nil
}

// All returns every queued notification, oldest first. Test helper.
func (s *InMemory) All() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []notify.Notification
	for _, n := range s.queued {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}
