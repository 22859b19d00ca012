package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
)

// SQLiteAnalyticsRepo implements AnalyticsRepo against a SQLite database.
// Timestamps are stored as RFC3339 UTC strings, so lexicographic comparison
// against a formatted cutoff and strftime month truncation are both sound.
type SQLiteAnalyticsRepo struct {
	db db.DBTX
}

// NewSQLiteAnalyticsRepo creates an analytics repository over the given
// handle. Pass a read-only transaction handle for a consistent snapshot.
func NewSQLiteAnalyticsRepo(dbtx db.DBTX) *SQLiteAnalyticsRepo {
	return &SQLiteAnalyticsRepo{db: dbtx}
}

func (r *SQLiteAnalyticsRepo) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) CountVentures(ctx context.Context) (int, error) {
	n, err := r.countRow(ctx, `SELECT COUNT(*) FROM ventures`)
	if err != nil {
		return 0, fmt.Errorf("counting ventures: %w", err)
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) CountVenturesByStatus(ctx context.Context, status domain.VentureStatus) (int, error) {
	n, err := r.countRow(ctx, `SELECT COUNT(*) FROM ventures WHERE status = ?`, string(status))
	if err != nil {
		return 0, fmt.Errorf("counting ventures by status: %w", err)
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) CountVenturesCreatedSince(ctx context.Context, since time.Time) (int, error) {
	n, err := r.countRow(ctx, `SELECT COUNT(*) FROM ventures WHERE created_at >= ?`, formatTime(since))
	if err != nil {
		return 0, fmt.Errorf("counting new ventures: %w", err)
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) CountMetrics(ctx context.Context) (int, error) {
	n, err := r.countRow(ctx, `SELECT COUNT(*) FROM gedsi_metrics`)
	if err != nil {
		return 0, fmt.Errorf("counting metrics: %w", err)
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) CountVerifiedMetrics(ctx context.Context) (int, error) {
	n, err := r.countRow(ctx,
		`SELECT COUNT(*) FROM gedsi_metrics WHERE status IN ('VERIFIED','COMPLETED')`)
	if err != nil {
		return 0, fmt.Errorf("counting verified metrics: %w", err)
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) CountDocuments(ctx context.Context) (int, error) {
	n, err := r.countRow(ctx, `SELECT COUNT(*) FROM documents`)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) CountActivitiesSince(ctx context.Context, since time.Time) (int, error) {
	n, err := r.countRow(ctx, `SELECT COUNT(*) FROM activities WHERE created_at >= ?`, formatTime(since))
	if err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	return n, nil
}

func (r *SQLiteAnalyticsRepo) GroupActiveVenturesByStage(ctx context.Context) ([]StageCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT stage, COUNT(*) FROM ventures WHERE status = 'ACTIVE' GROUP BY stage ORDER BY COUNT(*) DESC, stage`)
	if err != nil {
		return nil, fmt.Errorf("grouping ventures by stage: %w", err)
	}
	defer rows.Close()

	var out []StageCount
	for rows.Next() {
		var sc StageCount
		var stageStr string
		if err := rows.Scan(&stageStr, &sc.Count); err != nil {
			return nil, fmt.Errorf("scanning stage group: %w", err)
		}
		sc.Stage = domain.VentureStage(stageStr)
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stage groups: %w", err)
	}
	return out, nil
}

func (r *SQLiteAnalyticsRepo) GroupActiveVenturesBySector(ctx context.Context) ([]SectorCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sector, COUNT(*) FROM ventures WHERE status = 'ACTIVE' GROUP BY sector ORDER BY COUNT(*) DESC, sector`)
	if err != nil {
		return nil, fmt.Errorf("grouping ventures by sector: %w", err)
	}
	defer rows.Close()

	var out []SectorCount
	for rows.Next() {
		var sc SectorCount
		if err := rows.Scan(&sc.Sector, &sc.Count); err != nil {
			return nil, fmt.Errorf("scanning sector group: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sector groups: %w", err)
	}
	return out, nil
}

func (r *SQLiteAnalyticsRepo) GroupMetricsByCategory(ctx context.Context) ([]CategoryStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*), AVG(current_value), AVG(target_value)
		FROM gedsi_metrics GROUP BY category ORDER BY COUNT(*) DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("grouping metrics by category: %w", err)
	}
	defer rows.Close()

	var out []CategoryStats
	for rows.Next() {
		var cs CategoryStats
		var categoryStr string
		if err := rows.Scan(&categoryStr, &cs.Count, &cs.AvgCurrent, &cs.AvgTarget); err != nil {
			return nil, fmt.Errorf("scanning category group: %w", err)
		}
		cs.Category = domain.MetricCategory(categoryStr)
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category groups: %w", err)
	}
	return out, nil
}

// TopVenturesByMetricCount returns the active ventures carrying the most
// GEDSI metrics. Ties break on creation time then id, so the order is
// deterministic for a given data snapshot.
func (r *SQLiteAnalyticsRepo) TopVenturesByMetricCount(ctx context.Context, limit int) ([]VentureMetricStats, error) {
	query := `SELECT v.id, v.name, v.stage, v.sector,
		COUNT(m.id) AS metric_count,
		COALESCE(SUM(CASE WHEN m.status IN ('VERIFIED','COMPLETED') THEN 1 ELSE 0 END), 0)
		FROM ventures v
		LEFT JOIN gedsi_metrics m ON m.venture_id = v.id
		WHERE v.status = 'ACTIVE'
		GROUP BY v.id
		ORDER BY metric_count DESC, v.created_at, v.id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking ventures by metric count: %w", err)
	}
	defer rows.Close()

	var out []VentureMetricStats
	for rows.Next() {
		var vs VentureMetricStats
		var stageStr string
		if err := rows.Scan(&vs.VentureID, &vs.Name, &stageStr, &vs.Sector, &vs.TotalMetrics, &vs.CompletedMetrics); err != nil {
			return nil, fmt.Errorf("scanning venture stats: %w", err)
		}
		vs.Stage = domain.VentureStage(stageStr)
		out = append(out, vs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venture stats: %w", err)
	}
	return out, nil
}

// MonthlyVentureCounts buckets in-window venture creations by UTC calendar
// month.
func (r *SQLiteAnalyticsRepo) MonthlyVentureCounts(ctx context.Context, since time.Time) ([]MonthCount, error) {
	query := `SELECT strftime('%Y-%m', created_at) AS month, COUNT(*)
		FROM ventures WHERE created_at >= ?
		GROUP BY month ORDER BY month`
	rows, err := r.db.QueryContext(ctx, query, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("bucketing ventures by month: %w", err)
	}
	defer rows.Close()

	var out []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scanning month bucket: %w", err)
		}
		out = append(out, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating month buckets: %w", err)
	}
	return out, nil
}
