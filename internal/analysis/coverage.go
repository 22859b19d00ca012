package analysis

import (
	"context"
	"log/slog"

	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
)

// CoverageAnalyzer reports how much of the GEDSI category space a venture's
// metric portfolio covers. It is the default analysis hook; richer analyzers
// can replace it behind the same interface.
type CoverageAnalyzer struct {
	metrics repository.MetricRepo
	logger  *slog.Logger
}

func NewCoverageAnalyzer(metrics repository.MetricRepo, logger *slog.Logger) *CoverageAnalyzer {
	return &CoverageAnalyzer{metrics: metrics, logger: logger}
}

func (a *CoverageAnalyzer) AnalyzeVenture(ctx context.Context, ventureID string) error {
	metrics, err := a.metrics.ListByVenture(ctx, ventureID)
	if err != nil {
		return err
	}

	covered := map[domain.MetricCategory]bool{}
	verified := 0
	for _, m := range metrics {
		covered[m.Category] = true
		if m.Verified() {
			verified++
		}
	}
	var missing []string
	for cat := range domain.ValidMetricCategories {
		if !covered[cat] {
			missing = append(missing, string(cat))
		}
	}

	a.logger.Info("venture metric coverage",
		"ventureId", ventureID,
		"metrics", len(metrics),
		"verified", verified,
		"coveredCategories", len(covered),
		"missingCategories", missing,
	)
	return nil
}
