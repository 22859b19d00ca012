package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/miv-platform/miv/internal/domain"
)

var testEmailCounter atomic.Int64

// User fixtures

func NewTestUser(name string) *domain.User {
	n := testEmailCounter.Add(1)
	return &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("user%d@example.org", n),
		Role:      "analyst",
		CreatedAt: time.Now().UTC(),
	}
}

// Venture options

type VentureOption func(*domain.Venture)

func WithStage(s domain.VentureStage) VentureOption {
	return func(v *domain.Venture) {
		v.Stage = s
	}
}

func WithVentureStatus(s domain.VentureStatus) VentureOption {
	return func(v *domain.Venture) {
		v.Status = s
	}
}

func WithSector(s string) VentureOption {
	return func(v *domain.Venture) {
		v.Sector = s
	}
}

func WithCreatedAt(t time.Time) VentureOption {
	return func(v *domain.Venture) {
		v.CreatedAt = t
		v.UpdatedAt = t
	}
}

func NewTestVenture(name, createdByID string, opts ...VentureOption) *domain.Venture {
	now := time.Now().UTC()
	v := &domain.Venture{
		ID:          uuid.New().String(),
		Name:        name,
		Sector:      "Agriculture",
		Location:    "Hanoi, Vietnam",
		Stage:       domain.StageScreening,
		Status:      domain.VentureActive,
		CreatedByID: createdByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Metric options

type MetricOption func(*domain.GEDSIMetric)

func WithCategory(c domain.MetricCategory) MetricOption {
	return func(m *domain.GEDSIMetric) {
		m.Category = c
	}
}

func WithMetricStatus(s domain.MetricStatus) MetricOption {
	return func(m *domain.GEDSIMetric) {
		m.Status = s
	}
}

func WithValues(current, target float64) MetricOption {
	return func(m *domain.GEDSIMetric) {
		m.CurrentValue = current
		m.TargetValue = target
	}
}

func WithMetricCreatedAt(t time.Time) MetricOption {
	return func(m *domain.GEDSIMetric) {
		m.CreatedAt = t
		m.UpdatedAt = t
	}
}

func NewTestMetric(ventureID, createdByID string, opts ...MetricOption) *domain.GEDSIMetric {
	now := time.Now().UTC()
	m := &domain.GEDSIMetric{
		ID:          uuid.New().String(),
		VentureID:   ventureID,
		MetricCode:  "OI.1",
		MetricName:  "Women in leadership",
		Category:    domain.CategoryGender,
		TargetValue: 100,
		Unit:        "percent",
		Status:      domain.MetricNotStarted,
		CreatedByID: createdByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Activity fixtures

func NewTestActivity(ventureID *string, userID string) *domain.Activity {
	return &domain.Activity{
		ID:        uuid.New().String(),
		Type:      domain.ActivityNote,
		Title:     "Test activity",
		VentureID: ventureID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// Document fixtures

func NewTestDocument(ventureID string) *domain.Document {
	return &domain.Document{
		ID:         uuid.New().String(),
		VentureID:  ventureID,
		Name:       "pitch-deck.pdf",
		Type:       "PITCH_DECK",
		URL:        "https://storage.example.org/docs/" + uuid.New().String(),
		Size:       1024,
		MimeType:   "application/pdf",
		UploadedAt: time.Now().UTC(),
	}
}

// Capital activity fixtures

func NewTestCapitalActivity(ventureID string) *domain.CapitalActivity {
	now := time.Now().UTC()
	return &domain.CapitalActivity{
		ID:        uuid.New().String(),
		VentureID: ventureID,
		Type:      domain.CapitalGrant,
		Amount:    50000,
		Currency:  "USD",
		Status:    domain.CapitalRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
