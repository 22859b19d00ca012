package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
)

// SQLiteCapitalActivityRepo implements CapitalActivityRepo against a SQLite
// database.
type SQLiteCapitalActivityRepo struct {
	db db.DBTX
}

// NewSQLiteCapitalActivityRepo creates a capital-activity repository over
// the given handle.
func NewSQLiteCapitalActivityRepo(dbtx db.DBTX) *SQLiteCapitalActivityRepo {
	return &SQLiteCapitalActivityRepo{db: dbtx}
}

func (r *SQLiteCapitalActivityRepo) Create(ctx context.Context, c *domain.CapitalActivity) error {
	query := `INSERT INTO capital_activities (id, venture_id, type, amount, currency, status, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.VentureID,
		string(c.Type),
		c.Amount,
		c.Currency,
		string(c.Status),
		c.Note,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting capital activity: %w", err)
	}
	return nil
}

// ListByVenture returns a venture's capital activities newest-first.
func (r *SQLiteCapitalActivityRepo) ListByVenture(ctx context.Context, ventureID string) ([]*domain.CapitalActivity, error) {
	query := `SELECT id, venture_id, type, amount, currency, status, note, created_at, updated_at
		FROM capital_activities WHERE venture_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, ventureID)
	if err != nil {
		return nil, fmt.Errorf("listing capital activities: %w", err)
	}
	defer rows.Close()

	var items []*domain.CapitalActivity
	for rows.Next() {
		var c domain.CapitalActivity
		var typeStr, statusStr, createdAtStr, updatedAtStr string
		var note sql.NullString
		err := rows.Scan(&c.ID, &c.VentureID, &typeStr, &c.Amount, &c.Currency, &statusStr, &note, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning capital activity: %w", err)
		}
		c.Type = domain.CapitalType(typeStr)
		c.Status = domain.CapitalStatus(statusStr)
		c.Note = note.String
		c.CreatedAt = parseTime(createdAtStr)
		c.UpdatedAt = parseTime(updatedAtStr)
		items = append(items, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating capital activities: %w", err)
	}
	return items, nil
}
