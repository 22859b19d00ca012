package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
)

// ventureColumns is the canonical SELECT column list for ventures.
const ventureColumns = `id, name, sector, location, stage, status,
		funding_raised, funding_sought, team_size,
		contact_email, contact_phone, website,
		operational_readiness, capital_readiness,
		created_by_id, assigned_to_id, created_at, updated_at`

// SQLiteVentureRepo implements VentureRepo against a SQLite database.
type SQLiteVentureRepo struct {
	db db.DBTX
}

// NewSQLiteVentureRepo creates a venture repository over the given handle,
// which may be the pool or a transaction.
func NewSQLiteVentureRepo(dbtx db.DBTX) *SQLiteVentureRepo {
	return &SQLiteVentureRepo{db: dbtx}
}

func (r *SQLiteVentureRepo) Create(ctx context.Context, v *domain.Venture) error {
	query := `INSERT INTO ventures (` + ventureColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Name,
		v.Sector,
		v.Location,
		string(v.Stage),
		string(v.Status),
		v.FundingRaised,
		v.FundingSought,
		v.TeamSize,
		v.ContactEmail,
		v.ContactPhone,
		v.Website,
		v.OperationalReadiness,
		v.CapitalReadiness,
		v.CreatedByID,
		nullableString(v.AssignedToID),
		formatTime(v.CreatedAt),
		formatTime(v.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting venture: %w", err)
	}
	return nil
}

func (r *SQLiteVentureRepo) GetByID(ctx context.Context, id string) (*domain.Venture, error) {
	query := `SELECT ` + ventureColumns + ` FROM ventures WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	v, err := scanVenture(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "Venture"}
		}
		return nil, err
	}
	return v, nil
}

func (r *SQLiteVentureRepo) List(ctx context.Context, filter VentureFilter) ([]*domain.Venture, error) {
	query := `SELECT ` + ventureColumns + ` FROM ventures WHERE 1=1`
	var args []any
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Stage != "" {
		query += ` AND stage = ?`
		args = append(args, string(filter.Stage))
	}
	if filter.Sector != "" {
		query += ` AND sector = ?`
		args = append(args, filter.Sector)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ventures: %w", err)
	}
	defer rows.Close()

	var ventures []*domain.Venture
	for rows.Next() {
		v, err := scanVenture(rows)
		if err != nil {
			return nil, err
		}
		ventures = append(ventures, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ventures: %w", err)
	}
	return ventures, nil
}

func (r *SQLiteVentureRepo) Update(ctx context.Context, v *domain.Venture) error {
	query := `UPDATE ventures SET name = ?, sector = ?, location = ?, stage = ?, status = ?,
		funding_raised = ?, funding_sought = ?, team_size = ?,
		contact_email = ?, contact_phone = ?, website = ?,
		operational_readiness = ?, capital_readiness = ?,
		assigned_to_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		v.Name,
		v.Sector,
		v.Location,
		string(v.Stage),
		string(v.Status),
		v.FundingRaised,
		v.FundingSought,
		v.TeamSize,
		v.ContactEmail,
		v.ContactPhone,
		v.Website,
		v.OperationalReadiness,
		v.CapitalReadiness,
		nullableString(v.AssignedToID),
		formatTime(v.UpdatedAt),
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating venture: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating venture: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Venture"}
	}
	return nil
}

// Delete removes the venture row; metrics, documents, venture-scoped
// activities and capital activities go with it via ON DELETE CASCADE.
func (r *SQLiteVentureRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ventures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting venture: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting venture: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Venture"}
	}
	return nil
}

func (r *SQLiteVentureRepo) CountChildren(ctx context.Context, id string) (*ChildCounts, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM gedsi_metrics WHERE venture_id = ?),
		(SELECT COUNT(*) FROM documents WHERE venture_id = ?),
		(SELECT COUNT(*) FROM activities WHERE venture_id = ?),
		(SELECT COUNT(*) FROM capital_activities WHERE venture_id = ?)`
	var c ChildCounts
	err := r.db.QueryRowContext(ctx, query, id, id, id, id).
		Scan(&c.Metrics, &c.Documents, &c.Activities, &c.CapitalActivities)
	if err != nil {
		return nil, fmt.Errorf("counting venture children: %w", err)
	}
	return &c, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenture(row rowScanner) (*domain.Venture, error) {
	var v domain.Venture
	var stageStr, statusStr, createdAtStr, updatedAtStr string
	var contactEmail, contactPhone, website, opReadiness, capReadiness, assignedTo sql.NullString

	err := row.Scan(
		&v.ID, &v.Name, &v.Sector, &v.Location, &stageStr, &statusStr,
		&v.FundingRaised, &v.FundingSought, &v.TeamSize,
		&contactEmail, &contactPhone, &website,
		&opReadiness, &capReadiness,
		&v.CreatedByID, &assignedTo, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning venture: %w", err)
	}

	v.Stage = domain.VentureStage(stageStr)
	v.Status = domain.VentureStatus(statusStr)
	v.ContactEmail = contactEmail.String
	v.ContactPhone = contactPhone.String
	v.Website = website.String
	v.OperationalReadiness = opReadiness.String
	v.CapitalReadiness = capReadiness.String
	v.AssignedToID = parseNullableString(assignedTo)
	v.CreatedAt = parseTime(createdAtStr)
	v.UpdatedAt = parseTime(updatedAtStr)

	return &v, nil
}
