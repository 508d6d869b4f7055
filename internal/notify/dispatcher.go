package notify

import (
	"context"
	"fmt"
	"log/slog"

	"reclaim/internal/platform/metrics"
	id "reclaim/pkg/domain"
	"reclaim/pkg/requestcontext"
)

// OutboxStore queues notifications for the publisher worker.
type OutboxStore interface {
	Enqueue(ctx context.Context, n Notification) error
}

// InboxStore maintains the per-user in-app feed.
type InboxStore interface {
	Add(ctx context.Context, n Notification) error
}

// Dispatcher accepts notifications from the matcher and claim coordinator.
// It writes the durable outbox entry and, for registered recipients, the
// in-app inbox entry. Callers treat any returned error as log-and-continue;
// notification failure never affects the triggering operation's outcome.
type Dispatcher struct {
	outbox  OutboxStore
	inbox   InboxStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewDispatcher wires the dispatcher. inbox may be nil when the in-app feed
// is disabled.
func NewDispatcher(outbox OutboxStore, inbox InboxStore, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{outbox: outbox, inbox: inbox, logger: logger, metrics: m}
}

// Dispatch queues one notification. The outbox write decides success; the
// inbox write is best-effort on top of best-effort and only logs.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) error {
	if n.ID.IsNil() {
		n.ID = id.NewNotificationID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = requestcontext.Now(ctx)
	}

	if err := d.outbox.Enqueue(ctx, n); err != nil {
		d.metrics.RecordNotificationFailed()
		return fmt.Errorf("dispatch notification: %w", err)
	}
	d.metrics.RecordNotificationQueued()

	if d.inbox != nil && n.UserID != nil {
		if err := d.inbox.Add(ctx, n); err != nil {
			d.logger.WarnContext(ctx, "inbox write failed",
				"notification_id", n.ID.String(),
				"user_id", n.UserID.String(),
				"error", err,
			)
		}
	}
	return nil
}

// DispatchAll queues a batch, logging and continuing past individual
// failures. Used by callers that must never fail on notification problems.
func (d *Dispatcher) DispatchAll(ctx context.Context, notifications []Notification) {
	for _, n := range notifications {
		if err := d.Dispatch(ctx, n); err != nil {
			d.logger.ErrorContext(ctx, "notification dropped",
				"recipient", n.Recipient,
				"subject", n.Subject,
				"error", err,
			)
		}
	}
}
