package service

import (
	"context"
	"time"

	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
)

// CreateVentureInput is the payload for venture intake.
type CreateVentureInput struct {
	Name                 string  `json:"name"`
	Sector               string  `json:"sector"`
	Location             string  `json:"location"`
	Stage                string  `json:"stage"`
	Status               string  `json:"status"`
	FundingRaised        float64 `json:"fundingRaised"`
	FundingSought        float64 `json:"fundingSought"`
	TeamSize             int     `json:"teamSize"`
	ContactEmail         string  `json:"contactEmail"`
	ContactPhone         string  `json:"contactPhone"`
	Website              string  `json:"website"`
	OperationalReadiness string  `json:"operationalReadiness"`
	CapitalReadiness     string  `json:"capitalReadiness"`
	AssignedToID         *string `json:"assignedToId"`
}

// UpdateVentureInput is a partial update: nil fields are left untouched.
type UpdateVentureInput struct {
	Name                 *string  `json:"name"`
	Sector               *string  `json:"sector"`
	Location             *string  `json:"location"`
	Stage                *string  `json:"stage"`
	Status               *string  `json:"status"`
	FundingRaised        *float64 `json:"fundingRaised"`
	FundingSought        *float64 `json:"fundingSought"`
	TeamSize             *int     `json:"teamSize"`
	ContactEmail         *string  `json:"contactEmail"`
	ContactPhone         *string  `json:"contactPhone"`
	Website              *string  `json:"website"`
	OperationalReadiness *string  `json:"operationalReadiness"`
	CapitalReadiness     *string  `json:"capitalReadiness"`
	AssignedToID         *string  `json:"assignedToId"`
}

// CreateMetricInput is the payload for recording a GEDSI metric.
type CreateMetricInput struct {
	VentureID    string   `json:"ventureId"`
	MetricCode   string   `json:"metricCode"`
	MetricName   string   `json:"metricName"`
	Category     string   `json:"category"`
	TargetValue  *float64 `json:"targetValue"`
	CurrentValue *float64 `json:"currentValue"`
	Unit         string   `json:"unit"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
}

// UpdateMetricInput is a partial metric update: nil fields are untouched.
type UpdateMetricInput struct {
	MetricCode   *string  `json:"metricCode"`
	MetricName   *string  `json:"metricName"`
	Category     *string  `json:"category"`
	TargetValue  *float64 `json:"targetValue"`
	CurrentValue *float64 `json:"currentValue"`
	Unit         *string  `json:"unit"`
	Status       *string  `json:"status"`
	Notes        *string  `json:"notes"`
}

// CreateDocumentInput registers document metadata against a venture.
type CreateDocumentInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// CreateCapitalActivityInput records a capital-facilitation event.
type CreateCapitalActivityInput struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
	Note     string  `json:"note"`
}

// VentureDetail is a venture with its relations and child counts, the
// response shape for the venture detail endpoint.
type VentureDetail struct {
	domain.Venture
	Metrics           []*domain.GEDSIMetric             `json:"metrics"`
	Documents         []*domain.Document                `json:"documents"`
	Activities        []*repository.ActivityWithContext `json:"activities"`
	CapitalActivities []*domain.CapitalActivity         `json:"capitalActivities"`
	Counts            repository.ChildCounts            `json:"counts"`
}

// recentActivityLimit caps the activity slice embedded in a venture detail.
const recentActivityLimit = 20

type VentureService interface {
	Create(ctx context.Context, actorID string, in CreateVentureInput) (*domain.Venture, error)
	Get(ctx context.Context, id string) (*VentureDetail, error)
	List(ctx context.Context, filter repository.VentureFilter) ([]*domain.Venture, error)
	Update(ctx context.Context, actorID, id string, in UpdateVentureInput) (*VentureDetail, error)
	Delete(ctx context.Context, actorID, id string) error
	AddDocument(ctx context.Context, actorID, ventureID string, in CreateDocumentInput) (*domain.Document, error)
	ListDocuments(ctx context.Context, ventureID string) ([]*domain.Document, error)
	AddCapitalActivity(ctx context.Context, actorID, ventureID string, in CreateCapitalActivityInput) (*domain.CapitalActivity, error)
	ListCapitalActivities(ctx context.Context, ventureID string) ([]*domain.CapitalActivity, error)
	RecentActivities(ctx context.Context, limit int) ([]*repository.ActivityWithContext, error)
}

type MetricService interface {
	Create(ctx context.Context, actorID string, in CreateMetricInput) (*domain.GEDSIMetric, error)
	Update(ctx context.Context, actorID, id string, in UpdateMetricInput) (*domain.GEDSIMetric, error)
	List(ctx context.Context, filter repository.MetricFilter) ([]*repository.MetricWithVenture, error)
}

// Overview is the headline-number section of a pipeline snapshot.
type Overview struct {
	TotalVentures        int     `json:"totalVentures"`
	ActiveVentures       int     `json:"activeVentures"`
	NewVentures          int     `json:"newVentures"`
	TotalMetrics         int     `json:"totalMetrics"`
	VerifiedMetrics      int     `json:"verifiedMetrics"`
	TotalDocuments       int     `json:"totalDocuments"`
	RecentActivityCount  int     `json:"recentActivityCount"`
	AvgMetricsPerVenture float64 `json:"avgMetricsPerVenture"`
	VerificationRate     float64 `json:"verificationRate"`
}

// TopVenture is a leaderboard entry with its metric completion rate.
type TopVenture struct {
	repository.VentureMetricStats
	CompletionRate float64 `json:"completionRate"`
}

// Distribution groups pipeline entities along their reporting axes.
type Distribution struct {
	ByStage    []repository.StageCount    `json:"byStage"`
	BySector   []repository.SectorCount   `json:"bySector"`
	ByCategory []repository.CategoryStats `json:"byCategory"`
}

// Performance holds the leaderboard and the recent-activity feed.
type Performance struct {
	TopVentures      []TopVenture                      `json:"topVentures"`
	RecentActivities []*repository.ActivityWithContext `json:"recentActivities"`
}

// Trends holds time-bucketed series.
type Trends struct {
	Monthly []repository.MonthCount `json:"monthly"`
}

// Snapshot is one pipeline-health report for a trailing window.
type Snapshot struct {
	PeriodDays   int          `json:"periodDays"`
	GeneratedAt  time.Time    `json:"generatedAt"`
	Overview     Overview     `json:"overview"`
	Distribution Distribution `json:"distribution"`
	Performance  Performance  `json:"performance"`
	Trends       Trends       `json:"trends"`
}

type AnalyticsService interface {
	Snapshot(ctx context.Context, periodDays int) (*Snapshot, error)
}
