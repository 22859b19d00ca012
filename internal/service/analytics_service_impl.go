package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
)

const (
	defaultPeriodDays = 30
	topVentureLimit   = 5
	snapshotFeedLimit = 10
)

type analyticsService struct {
	analytics  repository.AnalyticsRepo
	activities repository.ActivityRepo
	now        func() time.Time
}

// NewAnalyticsService builds the pipeline-health reporting engine over the
// aggregate queries. The clock is injectable for tests.
func NewAnalyticsService(analytics repository.AnalyticsRepo, activities repository.ActivityRepo) AnalyticsService {
	return &analyticsService{
		analytics:  analytics,
		activities: activities,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot assembles one report for the trailing periodDays window. The
// aggregate queries fan out concurrently; the snapshot is advisory, so it
// tolerates the reads not sharing a single isolated view.
func (s *analyticsService) Snapshot(ctx context.Context, periodDays int) (*Snapshot, error) {
	if periodDays <= 0 {
		periodDays = defaultPeriodDays
	}
	now := s.now()
	since := now.AddDate(0, 0, -periodDays)

	snap := &Snapshot{PeriodDays: periodDays, GeneratedAt: now}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Overview.TotalVentures, err = s.analytics.CountVentures(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Overview.ActiveVentures, err = s.analytics.CountVenturesByStatus(ctx, domain.VentureActive)
		return err
	})
	g.Go(func() (err error) {
		snap.Overview.NewVentures, err = s.analytics.CountVenturesCreatedSince(ctx, since)
		return err
	})
	g.Go(func() (err error) {
		snap.Overview.TotalMetrics, err = s.analytics.CountMetrics(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Overview.VerifiedMetrics, err = s.analytics.CountVerifiedMetrics(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Overview.TotalDocuments, err = s.analytics.CountDocuments(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Overview.RecentActivityCount, err = s.analytics.CountActivitiesSince(ctx, since)
		return err
	})
	g.Go(func() (err error) {
		snap.Distribution.ByStage, err = s.analytics.GroupActiveVenturesByStage(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Distribution.BySector, err = s.analytics.GroupActiveVenturesBySector(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Distribution.ByCategory, err = s.analytics.GroupMetricsByCategory(ctx)
		return err
	})
	g.Go(func() error {
		stats, err := s.analytics.TopVenturesByMetricCount(ctx, topVentureLimit)
		if err != nil {
			return err
		}
		top := make([]TopVenture, len(stats))
		for i, st := range stats {
			top[i] = TopVenture{
				VentureMetricStats: st,
				CompletionRate:     rate(st.CompletedMetrics, st.TotalMetrics),
			}
		}
		snap.Performance.TopVentures = top
		return nil
	})
	g.Go(func() (err error) {
		snap.Performance.RecentActivities, err = s.activities.ListRecent(ctx, snapshotFeedLimit)
		return err
	})
	// The trend buckets cover the same trailing window as the rest of
	// the snapshot.
	g.Go(func() (err error) {
		snap.Trends.Monthly, err = s.analytics.MonthlyVentureCounts(ctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if snap.Overview.TotalVentures > 0 {
		snap.Overview.AvgMetricsPerVenture = round2(float64(snap.Overview.TotalMetrics) / float64(snap.Overview.TotalVentures))
	}
	snap.Overview.VerificationRate = rate(snap.Overview.VerifiedMetrics, snap.Overview.TotalMetrics)
	return snap, nil
}

// rate returns part/total as a percentage rounded to 2 decimals, and 0 when
// total is 0.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// round2 rounds half away from zero to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
