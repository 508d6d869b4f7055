// Package worker drains the notification outbox to the publisher.
package worker

import (
	"context"
	"log/slog"
	"time"

	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
)

// Store is the outbox surface the worker needs.
type Store interface {
	PendingBatch(ctx context.Context, limit int) ([]notify.Notification, error)
	MarkPublished(ctx context.Context, ids []id.NotificationID, at time.Time) error
}

// Publisher hands a notification to the delivery system.
type Publisher interface {
	Publish(ctx context.Context, n notify.Notification) error
}

// Worker periodically publishes pending outbox entries. Failed publishes
// stay pending and are retried on the next tick; nothing here ever reports
// back into the request path.
type Worker struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// New constructs the outbox worker.
func New(store Store, publisher Publisher, logger *slog.Logger, interval time.Duration, batchSize int) *Worker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Worker{
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run drains the outbox until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.drainOnce(ctx)
		}
	}
}

func (w *Worker) drainOnce(ctx context.Context) {
	batch, err := w.store.PendingBatch(ctx, w.batchSize)
	if err != nil {
		w.logger.ErrorContext(ctx, "outbox read failed", "error", err)
		return
	}
	if len(batch) == 0 {
		return
	}

	published := make([]id.NotificationID, 0, len(batch))
	for _, n := range batch {
		if err := w.publisher.Publish(ctx, n); err != nil {
			w.logger.WarnContext(ctx, "notification publish failed, will retry",
				"notification_id", n.ID.String(),
				"error", err,
			)
			continue
		}
		published = append(published, n.ID)
	}
	if len(published) == 0 {
		return
	}
	if err := w.store.MarkPublished(ctx, published, time.Now()); err != nil {
		// Entries stay pending and will be re-published; delivery dedupes by ID.
		w.logger.ErrorContext(ctx, "outbox mark-published failed", "error", err)
	}
}
