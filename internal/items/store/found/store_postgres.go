// Package found persists found-item reports.
package found

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"reclaim/internal/items/models"
	id "reclaim/pkg/domain"
	"reclaim/pkg/platform/sentinel"
	txcontext "reclaim/pkg/platform/tx"
)

const columns = `id, name, category, description, color, serial_number,
	first_name, last_name, phone, email, user_id, status, created_at, updated_at`

// PostgresStore persists found items in PostgreSQL, honoring a transaction
// carried in the context.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed found-item store.
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

// Create inserts a new found-item report.
func (s *PostgresStore) Create(ctx context.Context, item *models.FoundItem) error {
	query := `
		INSERT INTO found_items (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(item.ID), item.Name, item.Category, item.Description, item.Color,
		item.SerialNumber, item.FirstName, item.LastName, item.Phone, item.Email,
		userIDArg(item.UserID), string(item.Status), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert found item: %w", err)
	}
	return nil
}

// FindByID fetches one found item, returning sentinel.ErrNotFound when absent.
func (s *PostgresStore) FindByID(ctx context.Context, itemID id.FoundItemID) (*models.FoundItem, error) {
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+columns+` FROM found_items WHERE id = $1`, uuid.UUID(itemID))
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find found item: %w", err)
	}
	return item, nil
}

// List returns all found items, newest report first.
func (s *PostgresStore) List(ctx context.Context) ([]*models.FoundItem, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT `+columns+` FROM found_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list found items: %w", err)
	}
	return collect(rows)
}

// Search filters by case-insensitive substrings on name, category, and color.
func (s *PostgresStore) Search(ctx context.Context, name, category, color string) ([]*models.FoundItem, error) {
	query := `
		SELECT ` + columns + ` FROM found_items
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR color ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query, name, category, color)
	if err != nil {
		return nil, fmt.Errorf("search found items: %w", err)
	}
	return collect(rows)
}

// FindBySerial returns found items with an exact serial-number match in the
// given status, newest first.
func (s *PostgresStore) FindBySerial(ctx context.Context, serial string, status models.Status) ([]*models.FoundItem, error) {
	query := `
		SELECT ` + columns + ` FROM found_items
		WHERE serial_number = $1 AND status = $2
		ORDER BY created_at DESC
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query, serial, string(status))
	if err != nil {
		return nil, fmt.Errorf("find found items by serial: %w", err)
	}
	return collect(rows)
}

// UpdateStatus sets the item status, reporting sentinel.ErrNotFound for
// unknown IDs.
func (s *PostgresStore) UpdateStatus(ctx context.Context, itemID id.FoundItemID, status models.Status) error {
	res, err := s.conn(ctx).ExecContext(ctx,
		`UPDATE found_items SET status = $2, updated_at = NOW() WHERE id = $1`,
		uuid.UUID(itemID), string(status))
	if err != nil {
		return fmt.Errorf("update found item status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update found item status: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ClaimBySerial bulk-marks every not-yet-claimed found item with this serial
// number as claimed. Direct-edit cascade only.
func (s *PostgresStore) ClaimBySerial(ctx context.Context, serial string) (int64, error) {
	res, err := s.conn(ctx).ExecContext(ctx, `
		UPDATE found_items SET status = $2, updated_at = NOW()
		WHERE serial_number = $1 AND status <> $2
	`, serial, string(models.StatusClaimed))
	if err != nil {
		return 0, fmt.Errorf("cascade claim found items: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.FoundItem, error) {
	var (
		item    models.FoundItem
		rawID   uuid.UUID
		rawUser uuid.NullUUID
		status  string
	)
	err := row.Scan(&rawID, &item.Name, &item.Category, &item.Description, &item.Color,
		&item.SerialNumber, &item.FirstName, &item.LastName, &item.Phone, &item.Email,
		&rawUser, &status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.ID = id.FoundItemID(rawID)
	item.Status = models.Status(status)
	if rawUser.Valid {
		userID := id.UserID(rawUser.UUID)
		item.UserID = &userID
	}
	return &item, nil
}

func collect(rows *sql.Rows) ([]*models.FoundItem, error) {
	defer rows.Close()
	var items []*models.FoundItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan found item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate found items: %w", err)
	}
	return items, nil
}

func userIDArg(userID *id.UserID) any {
	if userID == nil {
		return nil
	}
	return uuid.UUID(*userID)
}
