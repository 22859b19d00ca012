package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo against a SQLite database.
// The activities table is the audit ledger: rows are inserted and read,
// never updated or deleted directly. Venture-scoped rows are removed only
// by the cascade when their venture is deleted.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates an activity repository over the given handle.
func NewSQLiteActivityRepo(dbtx db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: dbtx}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	meta, err := marshalMetadata(a.Metadata)
	if err != nil {
		return fmt.Errorf("encoding activity metadata: %w", err)
	}
	query := `INSERT INTO activities (id, type, title, description, venture_id, user_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		string(a.Type),
		a.Title,
		a.Description,
		nullableString(a.VentureID),
		a.UserID,
		meta,
		formatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

const activityJoinQuery = `SELECT a.id, a.type, a.title, a.description, a.venture_id,
		a.user_id, a.metadata, a.created_at, u.name, u.email, v.name
		FROM activities a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN ventures v ON v.id = a.venture_id`

// ListRecent returns the newest activities across all ventures, annotated
// with author name/email and venture name where applicable.
func (r *SQLiteActivityRepo) ListRecent(ctx context.Context, limit int) ([]*ActivityWithContext, error) {
	query := activityJoinQuery + ` ORDER BY a.created_at DESC, a.id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent activities: %w", err)
	}
	return scanActivityRows(rows)
}

// ListByVenture returns a venture's newest activities.
func (r *SQLiteActivityRepo) ListByVenture(ctx context.Context, ventureID string, limit int) ([]*ActivityWithContext, error) {
	query := activityJoinQuery + ` WHERE a.venture_id = ? ORDER BY a.created_at DESC, a.id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, ventureID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing venture activities: %w", err)
	}
	return scanActivityRows(rows)
}

func scanActivityRows(rows *sql.Rows) ([]*ActivityWithContext, error) {
	defer rows.Close()

	var activities []*ActivityWithContext
	for rows.Next() {
		var ac ActivityWithContext
		var typeStr, createdAtStr string
		var description, ventureID, metadata, ventureName sql.NullString
		err := rows.Scan(
			&ac.ID, &typeStr, &ac.Title, &description, &ventureID,
			&ac.UserID, &metadata, &createdAtStr,
			&ac.UserName, &ac.UserEmail, &ventureName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		ac.Type = domain.ActivityType(typeStr)
		ac.Description = description.String
		ac.VentureID = parseNullableString(ventureID)
		ac.VentureName = parseNullableString(ventureName)
		ac.CreatedAt = parseTime(createdAtStr)
		ac.Metadata, err = unmarshalMetadata(metadata)
		if err != nil {
			return nil, fmt.Errorf("decoding activity metadata: %w", err)
		}
		activities = append(activities, &ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}
