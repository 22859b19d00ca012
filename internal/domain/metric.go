package domain

import (
	"fmt"
	"time"
)

// GEDSIMetric is a single Gender Equality, Disability and Social Inclusion
// measurement tracked against a venture. A metric belongs to exactly one
// venture, which must exist when the metric is created.
type GEDSIMetric struct {
	ID           string         `json:"id"`
	VentureID    string         `json:"ventureId"`
	MetricCode   string         `json:"metricCode"`
	MetricName   string         `json:"metricName"`
	Category     MetricCategory `json:"category"`
	TargetValue  float64        `json:"targetValue"`
	CurrentValue float64        `json:"currentValue"`
	Unit         string         `json:"unit"`
	Status       MetricStatus   `json:"status"`
	Notes        string         `json:"notes,omitempty"`
	CreatedByID  string         `json:"createdById"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (m *GEDSIMetric) Validate() error {
	if m.VentureID == "" {
		return fmt.Errorf("metric venture ID is required")
	}
	if !ValidMetricCategories[m.Category] {
		return fmt.Errorf("invalid metric category %q", m.Category)
	}
	if !ValidMetricStatuses[m.Status] {
		return fmt.Errorf("invalid metric status %q", m.Status)
	}
	if m.TargetValue < 0 {
		return fmt.Errorf("target value must be non-negative, got %v", m.TargetValue)
	}
	if m.CurrentValue < 0 {
		return fmt.Errorf("current value must be non-negative, got %v", m.CurrentValue)
	}
	if m.Unit == "" {
		return fmt.Errorf("metric unit is required")
	}
	return nil
}

// Verified reports whether the metric counts toward verification totals.
func (m *GEDSIMetric) Verified() bool {
	return m.Status == MetricVerified || m.Status == MetricCompleted
}
