//go:build integration

package inbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
	"reclaim/pkg/testutil/containers"
)

func addTo(t *testing.T, store *RedisStore, userID id.UserID, subject string) notify.Notification {
	t.Helper()
	uid := userID
	n := notify.Notification{
		ID:        id.NewNotificationID(),
		Recipient: "user@example.com",
		UserID:    &uid,
		Subject:   subject,
		Body:      "hello",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Add(context.Background(), n))
	return n
}

func TestRedisInboxRoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedis(rc.Client)
	ctx := context.Background()
	user := id.NewUserID()

	addTo(t, store, user, "first")
	addTo(t, store, user, "second")

	feed, err := store.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Subject, "newest first")
	assert.Equal(t, "first", feed[1].Subject)
}

func TestRedisInboxIsolation(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedis(rc.Client)
	ctx := context.Background()

	alice := id.NewUserID()
	bob := id.NewUserID()
	addTo(t, store, alice, "for alice")

	feed, err := store.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestRedisMarkRead(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedis(rc.Client)
	ctx := context.Background()
	user := id.NewUserID()

	n := addTo(t, store, user, "unread")
	require.NoError(t, store.MarkRead(ctx, user, n.ID))

	feed, err := store.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Read)
}

func TestRedisMarkReadForeignUser(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedis(rc.Client)
	ctx := context.Background()

	owner := id.NewUserID()
	n := addTo(t, store, owner, "private")

	err := store.MarkRead(ctx, id.NewUserID(), n.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisInboxTrimsToBound(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedis(rc.Client)
	ctx := context.Background()
	user := id.NewUserID()

	for i := 0; i < maxInboxLength+20; i++ {
		addTo(t, store, user, "bulk")
	}

	feed, err := store.ListByUser(ctx, user)
	require.NoError(t, err)
	assert.Len(t, feed, maxInboxLength)
}
