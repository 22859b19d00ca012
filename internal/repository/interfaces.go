package repository

import (
	"context"
	"time"

	"github.com/miv-platform/miv/internal/domain"
)

// VentureFilter narrows List results. Zero-valued fields are ignored.
type VentureFilter struct {
	Status domain.VentureStatus
	Stage  domain.VentureStage
	Sector string
}

// MetricFilter narrows metric list results. Zero-valued fields are ignored.
type MetricFilter struct {
	VentureID string
	Category  domain.MetricCategory
	Status    domain.MetricStatus
}

// MetricWithVenture is a joined view of a metric and its parent venture's
// display name, used by list endpoints and reports.
type MetricWithVenture struct {
	domain.GEDSIMetric
	VentureName string `json:"ventureName"`
}

// ActivityWithContext is a joined view of an activity with its author and,
// when venture-scoped, the venture's display name.
type ActivityWithContext struct {
	domain.Activity
	UserName    string  `json:"userName"`
	UserEmail   string  `json:"userEmail"`
	VentureName *string `json:"ventureName,omitempty"`
}

// ChildCounts holds per-venture counts of dependent rows.
type ChildCounts struct {
	Metrics           int `json:"metrics"`
	Documents         int `json:"documents"`
	Activities        int `json:"activities"`
	CapitalActivities int `json:"capitalActivities"`
}

type VentureRepo interface {
	Create(ctx context.Context, v *domain.Venture) error
	GetByID(ctx context.Context, id string) (*domain.Venture, error)
	List(ctx context.Context, filter VentureFilter) ([]*domain.Venture, error)
	Update(ctx context.Context, v *domain.Venture) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (*ChildCounts, error)
}

type MetricRepo interface {
	Create(ctx context.Context, m *domain.GEDSIMetric) error
	GetByID(ctx context.Context, id string) (*domain.GEDSIMetric, error)
	List(ctx context.Context, filter MetricFilter) ([]*MetricWithVenture, error)
	ListByVenture(ctx context.Context, ventureID string) ([]*domain.GEDSIMetric, error)
	Update(ctx context.Context, m *domain.GEDSIMetric) error
	Delete(ctx context.Context, id string) error
}

type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByVenture(ctx context.Context, ventureID string) ([]*domain.Document, error)
	Delete(ctx context.Context, id string) error
}

// ActivityRepo is append-only: the ledger has no update or delete.
type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*ActivityWithContext, error)
	ListByVenture(ctx context.Context, ventureID string, limit int) ([]*ActivityWithContext, error)
}

type CapitalActivityRepo interface {
	Create(ctx context.Context, c *domain.CapitalActivity) error
	ListByVenture(ctx context.Context, ventureID string) ([]*domain.CapitalActivity, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// StageCount is a (stage, count) pair over active ventures.
type StageCount struct {
	Stage domain.VentureStage `json:"stage"`
	Count int                 `json:"count"`
}

// SectorCount is a (sector, count) pair over active ventures.
type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// CategoryStats aggregates metrics per GEDSI category.
type CategoryStats struct {
	Category   domain.MetricCategory `json:"category"`
	Count      int                   `json:"count"`
	AvgCurrent float64               `json:"avgCurrentValue"`
	AvgTarget  float64               `json:"avgTargetValue"`
}

// VentureMetricStats is a per-venture metric tally used for the top-venture
// leaderboard.
type VentureMetricStats struct {
	VentureID        string              `json:"ventureId"`
	Name             string              `json:"name"`
	Stage            domain.VentureStage `json:"stage"`
	Sector           string              `json:"sector"`
	TotalMetrics     int                 `json:"totalMetrics"`
	CompletedMetrics int                 `json:"completedMetrics"`
}

// MonthCount is a (YYYY-MM, count) bucket of venture creations.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// AnalyticsRepo exposes the aggregate queries behind pipeline snapshots.
// The queries are independent reads and safe to run concurrently against
// the pool; a snapshot is advisory and does not need a single isolated view.
type AnalyticsRepo interface {
	CountVentures(ctx context.Context) (int, error)
	CountVenturesByStatus(ctx context.Context, status domain.VentureStatus) (int, error)
	CountVenturesCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountMetrics(ctx context.Context) (int, error)
	CountVerifiedMetrics(ctx context.Context) (int, error)
	CountDocuments(ctx context.Context) (int, error)
	CountActivitiesSince(ctx context.Context, since time.Time) (int, error)
	GroupActiveVenturesByStage(ctx context.Context) ([]StageCount, error)
	GroupActiveVenturesBySector(ctx context.Context) ([]SectorCount, error)
	GroupMetricsByCategory(ctx context.Context) ([]CategoryStats, error)
	TopVenturesByMetricCount(ctx context.Context, limit int) ([]VentureMetricStats, error)
	MonthlyVentureCounts(ctx context.Context, since time.Time) ([]MonthCount, error)
}
