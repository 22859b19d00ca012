package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
)

// AnalysisQueue accepts fire-and-forget requests to re-analyse a venture's
// metric portfolio. Enqueue must never block the caller; it reports whether
// the request was accepted.
type AnalysisQueue interface {
	Enqueue(ventureID string) bool
}

type metricService struct {
	uow     db.UnitOfWork
	metrics repository.MetricRepo
	queue   AnalysisQueue
}

func NewMetricService(uow db.UnitOfWork, metrics repository.MetricRepo, queue AnalysisQueue) MetricService {
	return &metricService{uow: uow, metrics: metrics, queue: queue}
}

func (s *metricService) Create(ctx context.Context, actorID string, in CreateMetricInput) (*domain.GEDSIMetric, error) {
	var fe fieldErrors
	if strings.TrimSpace(in.VentureID) == "" {
		fe.add("ventureId", "ventureId is required")
	}
	if strings.TrimSpace(in.MetricCode) == "" {
		fe.add("metricCode", "metricCode is required")
	}
	if strings.TrimSpace(in.MetricName) == "" {
		fe.add("metricName", "metricName is required")
	}
	category := domain.MetricCategory(in.Category)
	if !domain.ValidMetricCategories[category] {
		fe.add("category", fmt.Sprintf("unknown category %q", in.Category))
	}
	status := domain.MetricStatus(in.Status)
	if in.Status == "" {
		status = domain.MetricNotStarted
	} else if !domain.ValidMetricStatuses[status] {
		fe.add("status", fmt.Sprintf("unknown status %q", in.Status))
	}
	if strings.TrimSpace(in.Unit) == "" {
		fe.add("unit", "unit is required")
	}
	var target, current float64
	if in.TargetValue == nil {
		fe.add("targetValue", "targetValue is required")
	} else {
		target = *in.TargetValue
		if target < 0 {
			fe.add("targetValue", "must be non-negative")
		}
	}
	if in.CurrentValue != nil {
		current = *in.CurrentValue
	}
	if current < 0 {
		fe.add("currentValue", "must be non-negative")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	metric := &domain.GEDSIMetric{
		ID:           uuid.New().String(),
		VentureID:    in.VentureID,
		MetricCode:   in.MetricCode,
		MetricName:   in.MetricName,
		Category:     category,
		TargetValue:  target,
		CurrentValue: current,
		Unit:         in.Unit,
		Status:       status,
		Notes:        in.Notes,
		CreatedByID:  actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVentures := repository.NewSQLiteVentureRepo(tx)
		txMetrics := repository.NewSQLiteMetricRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		if _, err := txVentures.GetByID(ctx, in.VentureID); err != nil {
			return err
		}
		if err := txMetrics.Create(ctx, metric); err != nil {
			return err
		}
		return txActivities.Create(ctx, &domain.Activity{
			ID:        uuid.New().String(),
			Type:      domain.ActivityMetricAdded,
			Title:     "GEDSI metric recorded",
			VentureID: &metric.VentureID,
			UserID:    actorID,
			Metadata: map[string]string{
				"metricCode": metric.MetricCode,
				"category":   string(metric.Category),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	// The portfolio analysis hook is best-effort and must not delay or fail
	// the request; a full queue drops the job.
	if s.queue != nil {
		s.queue.Enqueue(metric.VentureID)
	}
	return metric, nil
}

func (s *metricService) Update(ctx context.Context, actorID, id string, in UpdateMetricInput) (*domain.GEDSIMetric, error) {
	var fe fieldErrors
	if in.MetricCode != nil && strings.TrimSpace(*in.MetricCode) == "" {
		fe.add("metricCode", "metricCode cannot be empty")
	}
	if in.MetricName != nil && strings.TrimSpace(*in.MetricName) == "" {
		fe.add("metricName", "metricName cannot be empty")
	}
	if in.Category != nil && !domain.ValidMetricCategories[domain.MetricCategory(*in.Category)] {
		fe.add("category", fmt.Sprintf("unknown category %q", *in.Category))
	}
	if in.Status != nil && !domain.ValidMetricStatuses[domain.MetricStatus(*in.Status)] {
		fe.add("status", fmt.Sprintf("unknown status %q", *in.Status))
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) == "" {
		fe.add("unit", "unit cannot be empty")
	}
	if in.TargetValue != nil && *in.TargetValue < 0 {
		fe.add("targetValue", "must be non-negative")
	}
	if in.CurrentValue != nil && *in.CurrentValue < 0 {
		fe.add("currentValue", "must be non-negative")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	var metric *domain.GEDSIMetric
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMetrics := repository.NewSQLiteMetricRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		m, err := txMetrics.GetByID(ctx, id)
		if err != nil {
			return err
		}

		changed := applyMetricUpdate(m, in)
		if len(changed) > 0 {
			m.UpdatedAt = time.Now().UTC()
			if err := txMetrics.Update(ctx, m); err != nil {
				return err
			}
			if err := txActivities.Create(ctx, &domain.Activity{
				ID:        uuid.New().String(),
				Type:      domain.ActivityMetricUpdated,
				Title:     "GEDSI metric updated",
				VentureID: &m.VentureID,
				UserID:    actorID,
				Metadata: map[string]string{
					"metricCode":    m.MetricCode,
					"changedFields": strings.Join(changed, ","),
				},
				CreatedAt: m.UpdatedAt,
			}); err != nil {
				return err
			}
		}
		metric = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.queue != nil {
		s.queue.Enqueue(metric.VentureID)
	}
	return metric, nil
}

func applyMetricUpdate(m *domain.GEDSIMetric, in UpdateMetricInput) []string {
	var changed []string
	if in.MetricCode != nil {
		m.MetricCode = *in.MetricCode
		changed = append(changed, "metricCode")
	}
	if in.MetricName != nil {
		m.MetricName = *in.MetricName
		changed = append(changed, "metricName")
	}
	if in.Category != nil {
		m.Category = domain.MetricCategory(*in.Category)
		changed = append(changed, "category")
	}
	if in.TargetValue != nil {
		m.TargetValue = *in.TargetValue
		changed = append(changed, "targetValue")
	}
	if in.CurrentValue != nil {
		m.CurrentValue = *in.CurrentValue
		changed = append(changed, "currentValue")
	}
	if in.Unit != nil {
		m.Unit = *in.Unit
		changed = append(changed, "unit")
	}
	if in.Status != nil {
		m.Status = domain.MetricStatus(*in.Status)
		changed = append(changed, "status")
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
		changed = append(changed, "notes")
	}
	return changed
}

func (s *metricService) List(ctx context.Context, filter repository.MetricFilter) ([]*repository.MetricWithVenture, error) {
	return s.metrics.List(ctx, filter)
}
