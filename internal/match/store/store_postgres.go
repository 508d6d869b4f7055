// Package store persists matches. Pair uniqueness is a database constraint:
// creation is insert-or-ignore, never check-then-insert, so concurrent
// matchers racing on the same pair cannot produce duplicates.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"reclaim/internal/match/models"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
	txcontext "reclaim/pkg/platform/tx"
)

const columns = `id, lost_item_id, found_item_id, status, matched_at, claimed_at,
	loster_name, loster_phone, loster_email, founder_name, founder_phone,
	founder_email, device_name, serial_number`

// PostgresStore persists matches in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed match store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) conn(ctx context.Context) dbConn {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Create inserts a match unless one already exists for the pair. A suppressed
// duplicate returns sentinel.ErrConflict so the caller can skip notifications
// without treating the race as a failure.
func (s *PostgresStore) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT ON CONSTRAINT matches_pair_unique DO NOTHING
	`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(m.ID), uuid.UUID(m.LostItemID), uuid.UUID(m.FoundItemID),
		string(m.Status), m.MatchedAt, m.ClaimedAt,
		m.Snapshot.LosterName, m.Snapshot.LosterPhone, m.Snapshot.LosterEmail,
		m.Snapshot.FounderName, m.Snapshot.FounderPhone, m.Snapshot.FounderEmail,
		m.Snapshot.DeviceName, m.Snapshot.SerialNumber,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

// FindByID fetches one match.
func (s *PostgresStore) FindByID(ctx context.Context, matchID id.MatchID) (*models.Match, error) {
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+columns+` FROM matches WHERE id = $1`, uuid.UUID(matchID))
	return scanMatch(row)
}

// FindByIDForUpdate fetches one match and locks its row for the duration of
// the surrounding transaction. Callers must run inside a transaction; outside
// of one the lock is meaningless.
func (s *PostgresStore) FindByIDForUpdate(ctx context.Context, matchID id.MatchID) (*models.Match, error) {
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+columns+` FROM matches WHERE id = $1 FOR UPDATE`, uuid.UUID(matchID))
	return scanMatch(row)
}

// List returns all matches, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Match, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT `+columns+` FROM matches ORDER BY matched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

// MarkClaimed transitions the match to claimed with compare-and-set
// semantics: the update only applies while the match is still unclaimed, so
// exactly one of any number of concurrent claimers succeeds.
func (s *PostgresStore) MarkClaimed(ctx context.Context, matchID id.MatchID, at time.Time) error {
	res, err := s.conn(ctx).ExecContext(ctx, `
		UPDATE matches SET status = $2, claimed_at = $3
		WHERE id = $1 AND status = $4
	`, uuid.UUID(matchID), string(models.StatusClaimed), at, string(models.StatusUnclaimed))
	if err != nil {
		return fmt.Errorf("mark match claimed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark match claimed: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrInvalidState
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		m         models.Match
		rawID     uuid.UUID
		rawLost   uuid.UUID
		rawFound  uuid.UUID
		status    string
		claimedAt sql.NullTime
	)
	err := row.Scan(&rawID, &rawLost, &rawFound, &status, &m.MatchedAt, &claimedAt,
		&m.Snapshot.LosterName, &m.Snapshot.LosterPhone, &m.Snapshot.LosterEmail,
		&m.Snapshot.FounderName, &m.Snapshot.FounderPhone, &m.Snapshot.FounderEmail,
		&m.Snapshot.DeviceName, &m.Snapshot.SerialNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan match: %w", err)
	}
	m.ID = id.MatchID(rawID)
	m.LostItemID = id.LostItemID(rawLost)
	m.FoundItemID = id.FoundItemID(rawFound)
	m.Status = models.Status(status)
	if claimedAt.Valid {
		t := claimedAt.Time
		m.ClaimedAt = &t
	}
	return &m, nil
}
