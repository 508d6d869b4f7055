// Package store persists Return records. Returns are append-only: there is
// no update or delete path, and none may ever be added.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reclaim/internal/claim/models"
	id "reclaim/pkg/domain"
	txcontext "reclaim/pkg/platform/tx"
)

const columns = `id, match_id, lost_item_id, found_item_id,
	loster_name, loster_phone, loster_email, founder_name, founder_phone,
	founder_email, device_name, serial_number, confirmation, owner_id,
	finder_id, claimed_by, notes, created_at`

// PostgresStore persists returns in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed return store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) conn(ctx context.Context) dbConn {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func nullableUser(u *id.UserID) any {
	if u == nil {
		return nil
	}
	return uuid.UUID(*u)
}

// Create appends one return record.
func (s *PostgresStore) Create(ctx context.Context, r *models.Return) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO returns (`+columns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`,
		uuid.UUID(r.ID), uuid.UUID(r.MatchID), uuid.UUID(r.LostItemID), uuid.UUID(r.FoundItemID),
		r.LosterName, r.LosterPhone, r.LosterEmail,
		r.FounderName, r.FounderPhone, r.FounderEmail,
		r.DeviceName, r.SerialNumber, r.Confirmation,
		nullableUser(r.OwnerID), nullableUser(r.FinderID), nullableUser(r.ClaimedBy),
		r.Notes, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// List returns all return records, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Return, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT `+columns+` FROM returns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var returns []*models.Return
	for rows.Next() {
		var (
			r         models.Return
			rawID     uuid.UUID
			rawMatch  uuid.UUID
			rawLost   uuid.UUID
			rawFound  uuid.UUID
			ownerID   uuid.NullUUID
			finderID  uuid.NullUUID
			claimedBy uuid.NullUUID
		)
		err := rows.Scan(&rawID, &rawMatch, &rawLost, &rawFound,
			&r.LosterName, &r.LosterPhone, &r.LosterEmail,
			&r.FounderName, &r.FounderPhone, &r.FounderEmail,
			&r.DeviceName, &r.SerialNumber, &r.Confirmation,
			&ownerID, &finderID, &claimedBy,
			&r.Notes, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		r.ID = id.ReturnID(rawID)
		r.MatchID = id.MatchID(rawMatch)
		r.LostItemID = id.LostItemID(rawLost)
		r.FoundItemID = id.FoundItemID(rawFound)
		if ownerID.Valid {
			u := id.UserID(ownerID.UUID)
			r.OwnerID = &u
		}
		if finderID.Valid {
			u := id.UserID(finderID.UUID)
			r.FinderID = &u
		}
		if claimedBy.Valid {
			u := id.UserID(claimedBy.UUID)
			r.ClaimedBy = &u
		}
		returns = append(returns, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate returns: %w", err)
	}
	return returns, nil
}

// CountByMatch counts return records for one match. A correctly serialized
// claim path never produces more than one.
func (s *PostgresStore) CountByMatch(ctx context.Context, matchID id.MatchID) (int64, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT COUNT(*) FROM returns WHERE match_id = $1`, uuid.UUID(matchID))
	if err != nil {
		return 0, fmt.Errorf("count returns: %w", err)
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("count returns: %w", err)
		}
	}
	return count, rows.Err()
}
