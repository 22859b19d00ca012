package service

import (
	"context"
	"testing"
	"time"

	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
	"github.com/miv-platform/miv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_Snapshot_EmptyStore(t *testing.T) {
	h := newHarness(t)

	snap, err := h.analytics.Snapshot(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, defaultPeriodDays, snap.PeriodDays)
	assert.Zero(t, snap.Overview.TotalVentures)
	assert.Zero(t, snap.Overview.TotalMetrics)
	// Zero denominators yield 0, never NaN.
	assert.Zero(t, snap.Overview.AvgMetricsPerVenture)
	assert.Zero(t, snap.Overview.VerificationRate)
	assert.Empty(t, snap.Performance.TopVentures)
	assert.Empty(t, snap.Trends.Monthly)
}

func TestAnalyticsService_Snapshot(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Seed")

	ventureRepo := repository.NewSQLiteVentureRepo(h.db)
	base := time.Now().UTC().Add(-48 * time.Hour)

	alpha := testutil.NewTestVenture("Alpha", user.ID,
		testutil.WithCreatedAt(base))
	beta := testutil.NewTestVenture("Beta", user.ID,
		testutil.WithCreatedAt(base.Add(time.Hour)))
	archived := testutil.NewTestVenture("Gamma", user.ID,
		testutil.WithVentureStatus(domain.VentureArchived),
		testutil.WithCreatedAt(base.Add(2*time.Hour)))
	for _, v := range []*domain.Venture{alpha, beta, archived} {
		require.NoError(t, ventureRepo.Create(ctx, v))
	}

	metricRepo := repository.NewSQLiteMetricRepo(h.db)
	for i := 0; i < 3; i++ {
		m := testutil.NewTestMetric(alpha.ID, user.ID,
			testutil.WithMetricStatus(domain.MetricVerified))
		require.NoError(t, metricRepo.Create(ctx, m))
	}
	for i := 0; i < 2; i++ {
		m := testutil.NewTestMetric(beta.ID, user.ID,
			testutil.WithCategory(domain.CategoryDisability))
		require.NoError(t, metricRepo.Create(ctx, m))
	}

	snap, err := h.analytics.Snapshot(ctx, 30)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Overview.TotalVentures)
	assert.Equal(t, 2, snap.Overview.ActiveVentures)
	assert.Equal(t, 3, snap.Overview.NewVentures)
	assert.Equal(t, 5, snap.Overview.TotalMetrics)
	assert.Equal(t, 3, snap.Overview.VerifiedMetrics)
	// 5/3 rounded to 2 decimals; 3/5 as a percentage.
	assert.Equal(t, 1.67, snap.Overview.AvgMetricsPerVenture)
	assert.Equal(t, 60.0, snap.Overview.VerificationRate)

	require.Len(t, snap.Performance.TopVentures, 2)
	top := snap.Performance.TopVentures[0]
	assert.Equal(t, alpha.ID, top.VentureID)
	assert.Equal(t, 3, top.TotalMetrics)
	assert.Equal(t, 100.0, top.CompletionRate)
	runner := snap.Performance.TopVentures[1]
	assert.Equal(t, beta.ID, runner.VentureID)
	assert.Zero(t, runner.CompletionRate)

	require.NotEmpty(t, snap.Trends.Monthly)
	total := 0
	for _, b := range snap.Trends.Monthly {
		assert.Regexp(t, `^\d{4}-\d{2}$`, b.Month)
		total += b.Count
	}
	assert.Equal(t, 3, total)
}

func TestAnalyticsService_Snapshot_PeriodFiltersNewVentures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Seed")

	ventureRepo := repository.NewSQLiteVentureRepo(h.db)
	old := testutil.NewTestVenture("Old Timer", user.ID,
		testutil.WithCreatedAt(time.Now().UTC().AddDate(0, -3, 0)))
	fresh := testutil.NewTestVenture("Fresh", user.ID)
	require.NoError(t, ventureRepo.Create(ctx, old))
	require.NoError(t, ventureRepo.Create(ctx, fresh))

	snap, err := h.analytics.Snapshot(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.PeriodDays)
	assert.Equal(t, 2, snap.Overview.TotalVentures)
	assert.Equal(t, 1, snap.Overview.NewVentures)

	// Trend buckets share the period window, so only the fresh venture
	// appears.
	total := 0
	for _, b := range snap.Trends.Monthly {
		total += b.Count
	}
	assert.Equal(t, 1, total)
}

func TestAnalyticsService_Snapshot_TrendsExcludeOutOfWindowVentures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Seed")

	old := testutil.NewTestVenture("Old Timer", user.ID,
		testutil.WithCreatedAt(time.Now().UTC().AddDate(0, 0, -90)))
	require.NoError(t, repository.NewSQLiteVentureRepo(h.db).Create(ctx, old))

	snap, err := h.analytics.Snapshot(ctx, 30)
	require.NoError(t, err)
	assert.Zero(t, snap.Overview.NewVentures)
	assert.Empty(t, snap.Trends.Monthly)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.67, round2(5.0/3.0))
	assert.Equal(t, 0.5, round2(0.5))
	assert.Equal(t, 33.33, round2(100.0/3.0))
	// Half rounds away from zero.
	assert.Equal(t, 2.38, round2(2.375))
	assert.Equal(t, 0.0, round2(0))
}

func TestRate_ZeroTotal(t *testing.T) {
	assert.Zero(t, rate(3, 0))
	assert.Equal(t, 60.0, rate(3, 5))
}
