package worker

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim/internal/notify"
	"reclaim/internal/notify/store/outbox"
	id "reclaim/pkg/domain"
)

type recordingPublisher struct {
	published []notify.Notification
	failFor   map[id.NotificationID]bool
}

func (p *recordingPublisher) Publish(_ context.Context, n notify.Notification) error {
	if p.failFor[n.ID] {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, n)
	return nil
}

func enqueue(t *testing.T, store *outbox.InMemory, subject string) notify.Notification {
	t.Helper()
	n := notify.Notification{
		ID:        id.NewNotificationID(),
		Recipient: "user@example.com",
		Subject:   subject,
		Body:      "hello",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Enqueue(context.Background(), n))
	return n
}

func TestDrainPublishesAndMarks(t *testing.T) {
	store := outbox.NewInMemory()
	pub := &recordingPublisher{}
	w := New(store, pub, slog.Default(), time.Minute, 10)

	a := enqueue(t, store, "a")
	b := enqueue(t, store, "b")

	w.drainOnce(context.Background())

	assert.Len(t, pub.published, 2)

	pending, err := store.PendingBatch(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "published entries %s and %s should leave the queue", a.ID, b.ID)
}

func TestFailedPublishStaysPending(t *testing.T) {
	store := outbox.NewInMemory()

	ok := enqueue(t, store, "delivered")
	bad := enqueue(t, store, "stuck")

	pub := &recordingPublisher{failFor: map[id.NotificationID]bool{bad.ID: true}}
	w := New(store, pub, slog.Default(), time.Minute, 10)

	w.drainOnce(context.Background())

	require.Len(t, pub.published, 1)
	assert.Equal(t, ok.ID, pub.published[0].ID)

	pending, err := store.PendingBatch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, bad.ID, pending[0].ID)

	// Once the broker recovers the stuck entry goes out on the next tick.
	pub.failFor = nil
	w.drainOnce(context.Background())

	pending, err = store.PendingBatch(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEmptyQueueIsQuiet(t *testing.T) {
	store := outbox.NewInMemory()
	pub := &recordingPublisher{}
	w := New(store, pub, slog.Default(), time.Minute, 10)

	w.drainOnce(context.Background())

	assert.Empty(t, pub.published)
}
