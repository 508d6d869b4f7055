// Package inbox keeps each registered user's in-app notification feed.
package inbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
)

const maxInboxLength = 200

// RedisStore keeps per-user inboxes in Redis lists, newest first. The inbox
// is a convenience feed; the outbox remains the durable record, so losing
// Redis only loses the in-app view.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed inbox store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func inboxKey(userID id.UserID) string {
	return "inbox:" + userID.String()
}

// Add prepends a notification to the recipient user's inbox, trimming the
// feed to a bounded length.
func (s *RedisStore) Add(ctx context.Context, n notify.Notification) error {
	if n.UserID == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal inbox notification: %w", err)
	}
	key := inboxKey(*n.UserID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, maxInboxLength-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push inbox notification: %w", err)
	}
	return nil
}

// ListByUser returns the user's notifications, newest first.
func (s *RedisStore) ListByUser(ctx context.Context, userID id.UserID) ([]notify.Notification, error) {
	raw, err := s.client.LRange(ctx, inboxKey(userID), 0, maxInboxLength-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	notifications := make([]notify.Notification, 0, len(raw))
	for _, entry := range raw {
		var n notify.Notification
		if err := json.Unmarshal([]byte(entry), &n); err != nil {
			return nil, fmt.Errorf("decode inbox notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read. Unknown IDs, and
// IDs belonging to another user's inbox, report sentinel.ErrNotFound.
func (s *RedisStore) MarkRead(ctx context.Context, userID id.UserID, notificationID id.NotificationID) error {
	key := inboxKey(userID)
	raw, err := s.client.LRange(ctx, key, 0, maxInboxLength-1).Result()
	if err != nil {
		return fmt.Errorf("load inbox: %w", err)
	}
	for i, entry := range raw {
		var n notify.Notification
		if err := json.Unmarshal([]byte(entry), &n); err != nil {
			return fmt.Errorf("decode inbox notification: %w", err)
		}
		if n.ID != notificationID {
			continue
		}
		n.Read = true
		payload, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("marshal inbox notification: %w", err)
		}
		if err := s.client.LSet(ctx, key, int64(i), payload).Err(); err != nil {
			return fmt.Errorf("update inbox notification: %w", err)
		}
		return nil
	}
	return sentinel.ErrNotFound
}
