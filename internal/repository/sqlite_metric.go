package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
)

// metricColumns is the canonical SELECT column list for gedsi_metrics.
const metricColumns = `id, venture_id, metric_code, metric_name, category,
		target_value, current_value, unit, status, notes,
		created_by_id, created_at, updated_at`

// SQLiteMetricRepo implements MetricRepo against a SQLite database.
type SQLiteMetricRepo struct {
	db db.DBTX
}

// NewSQLiteMetricRepo creates a metric repository over the given handle.
func NewSQLiteMetricRepo(dbtx db.DBTX) *SQLiteMetricRepo {
	return &SQLiteMetricRepo{db: dbtx}
}

func (r *SQLiteMetricRepo) Create(ctx context.Context, m *domain.GEDSIMetric) error {
	query := `INSERT INTO gedsi_metrics (` + metricColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.VentureID,
		m.MetricCode,
		m.MetricName,
		string(m.Category),
		m.TargetValue,
		m.CurrentValue,
		m.Unit,
		string(m.Status),
		m.Notes,
		m.CreatedByID,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting metric: %w", err)
	}
	return nil
}

func (r *SQLiteMetricRepo) GetByID(ctx context.Context, id string) (*domain.GEDSIMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM gedsi_metrics WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	m, err := scanMetric(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "Metric"}
		}
		return nil, err
	}
	return m, nil
}

// List returns metrics newest-first, each annotated with its parent
// venture's display name.
func (r *SQLiteMetricRepo) List(ctx context.Context, filter MetricFilter) ([]*MetricWithVenture, error) {
	query := `SELECT m.id, m.venture_id, m.metric_code, m.metric_name, m.category,
		m.target_value, m.current_value, m.unit, m.status, m.notes,
		m.created_by_id, m.created_at, m.updated_at, v.name
		FROM gedsi_metrics m
		JOIN ventures v ON v.id = m.venture_id
		WHERE 1=1`
	var args []any
	if filter.VentureID != "" {
		query += ` AND m.venture_id = ?`
		args = append(args, filter.VentureID)
	}
	if filter.Category != "" {
		query += ` AND m.category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.Status != "" {
		query += ` AND m.status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY m.created_at DESC, m.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*MetricWithVenture
	for rows.Next() {
		var mv MetricWithVenture
		var categoryStr, statusStr, createdAtStr, updatedAtStr string
		var notes sql.NullString
		err := rows.Scan(
			&mv.ID, &mv.VentureID, &mv.MetricCode, &mv.MetricName, &categoryStr,
			&mv.TargetValue, &mv.CurrentValue, &mv.Unit, &statusStr, &notes,
			&mv.CreatedByID, &createdAtStr, &updatedAtStr, &mv.VentureName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning metric row: %w", err)
		}
		mv.Category = domain.MetricCategory(categoryStr)
		mv.Status = domain.MetricStatus(statusStr)
		mv.Notes = notes.String
		mv.CreatedAt = parseTime(createdAtStr)
		mv.UpdatedAt = parseTime(updatedAtStr)
		metrics = append(metrics, &mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metrics: %w", err)
	}
	return metrics, nil
}

// ListByVenture returns a venture's metrics newest-first.
func (r *SQLiteMetricRepo) ListByVenture(ctx context.Context, ventureID string) ([]*domain.GEDSIMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM gedsi_metrics
		WHERE venture_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, ventureID)
	if err != nil {
		return nil, fmt.Errorf("listing venture metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*domain.GEDSIMetric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venture metrics: %w", err)
	}
	return metrics, nil
}

func (r *SQLiteMetricRepo) Update(ctx context.Context, m *domain.GEDSIMetric) error {
	query := `UPDATE gedsi_metrics SET metric_code = ?, metric_name = ?, category = ?,
		target_value = ?, current_value = ?, unit = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.MetricCode,
		m.MetricName,
		string(m.Category),
		m.TargetValue,
		m.CurrentValue,
		m.Unit,
		string(m.Status),
		m.Notes,
		formatTime(m.UpdatedAt),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating metric: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating metric: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Metric"}
	}
	return nil
}

func (r *SQLiteMetricRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gedsi_metrics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting metric: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting metric: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Metric"}
	}
	return nil
}

func scanMetric(row rowScanner) (*domain.GEDSIMetric, error) {
	var m domain.GEDSIMetric
	var categoryStr, statusStr, createdAtStr, updatedAtStr string
	var notes sql.NullString

	err := row.Scan(
		&m.ID, &m.VentureID, &m.MetricCode, &m.MetricName, &categoryStr,
		&m.TargetValue, &m.CurrentValue, &m.Unit, &statusStr, &notes,
		&m.CreatedByID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning metric: %w", err)
	}

	m.Category = domain.MetricCategory(categoryStr)
	m.Status = domain.MetricStatus(statusStr)
	m.Notes = notes.String
	m.CreatedAt = parseTime(createdAtStr)
	m.UpdatedAt = parseTime(updatedAtStr)

	return &m, nil
}
