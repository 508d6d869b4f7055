// Package outbox queues notifications for post-commit publishing. The worker
// drains pending rows to Kafka; a row is pending until published_at is set.
package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
	txcontext "reclaim/pkg/platform/tx"
)

// PostgresStore persists the notification outbox in PostgreSQL. Enqueue
// participates in a caller transaction when one is carried in the context, so
// claim notifications become visible only if the claim commits.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed outbox store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Enqueue stores a notification for the publisher worker.
func (s *PostgresStore) Enqueue(ctx context.Context, n notify.Notification) error {
	var userID any
	if n.UserID != nil {
		userID = uuid.UUID(*n.UserID)
	}
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO notification_outbox (id, recipient, user_id, subject, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(n.ID), n.Recipient, userID, n.Subject, n.Body, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// PendingBatch returns up to limit unpublished notifications, oldest first.
func (s *PostgresStore) PendingBatch(ctx context.Context, limit int) ([]notify.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipient, user_id, subject, body, created_at
		FROM notification_outbox
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("load pending notifications: %w", err)
	}
	defer rows.Close()

	var batch []notify.Notification
	for rows.Next() {
		var (
			n       notify.Notification
			rawID   uuid.UUID
			rawUser uuid.NullUUID
		)
		if err := rows.Scan(&rawID, &n.Recipient, &rawUser, &n.Subject, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending notification: %w", err)
		}
		n.ID = id.NotificationID(rawID)
		if rawUser.Valid {
			userID := id.UserID(rawUser.UUID)
			n.UserID = &userID
		}
		batch = append(batch, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending notifications: %w", err)
	}
	return batch, nil
}

// MarkPublished stamps the given notifications as published. Re-publishing on
// a crashed worker is acceptable; the delivery system deduplicates by ID.
func (s *PostgresStore) MarkPublished(ctx context.Context, ids []id.NotificationID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, len(ids))
	for i, nid := range ids {
		raw[i] = uuid.UUID(nid)
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE notification_outbox SET published_at = $2 WHERE id = ANY($1)
	`, pq.Array(raw), at)
	if err != nil {
		return fmt.Errorf("mark notifications published: %w", err)
	}
	return nil
}
