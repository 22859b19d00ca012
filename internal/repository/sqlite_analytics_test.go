package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyticsScenario seeds the store with 3 ventures (2 ACTIVE, 1 ARCHIVED)
// and 5 GEDSI metrics (3 VERIFIED, 2 NOT_STARTED).
func analyticsScenario(t *testing.T) (*sql.DB, *SQLiteAnalyticsRepo, []*domain.Venture) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser("Seed")
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, user))

	ventureRepo := NewSQLiteVentureRepo(database)
	base := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	a := testutil.NewTestVenture("Alpha", user.ID,
		testutil.WithStage(domain.StageScreening),
		testutil.WithSector("AgTech"),
		testutil.WithCreatedAt(base))
	b := testutil.NewTestVenture("Beta", user.ID,
		testutil.WithStage(domain.StageScreening),
		testutil.WithSector("FinTech"),
		testutil.WithCreatedAt(base.Add(time.Hour)))
	archived := testutil.NewTestVenture("Gamma", user.ID,
		testutil.WithVentureStatus(domain.VentureArchived),
		testutil.WithStage(domain.StageDueDiligence),
		testutil.WithCreatedAt(base.Add(2*time.Hour)))
	for _, v := range []*domain.Venture{a, b, archived} {
		require.NoError(t, ventureRepo.Create(ctx, v))
	}

	metricRepo := NewSQLiteMetricRepo(database)
	verified := []domain.MetricStatus{domain.MetricVerified, domain.MetricVerified, domain.MetricVerified}
	for _, st := range verified {
		m := testutil.NewTestMetric(a.ID, user.ID,
			testutil.WithMetricStatus(st),
			testutil.WithValues(10, 20))
		require.NoError(t, metricRepo.Create(ctx, m))
	}
	for i := 0; i < 2; i++ {
		m := testutil.NewTestMetric(b.ID, user.ID,
			testutil.WithCategory(domain.CategoryDisability),
			testutil.WithValues(5, 50))
		require.NoError(t, metricRepo.Create(ctx, m))
	}

	return database, NewSQLiteAnalyticsRepo(database), []*domain.Venture{a, b, archived}
}

func TestAnalyticsRepo_Counts(t *testing.T) {
	_, repo, _ := analyticsScenario(t)
	ctx := context.Background()

	total, err := repo.CountVentures(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	active, err := repo.CountVenturesByStatus(ctx, domain.VentureActive)
	require.NoError(t, err)
	assert.Equal(t, 2, active)

	metrics, err := repo.CountMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, metrics)

	verified, err := repo.CountVerifiedMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, verified)
}

func TestAnalyticsRepo_CountVenturesCreatedSince(t *testing.T) {
	_, repo, _ := analyticsScenario(t)
	ctx := context.Background()

	all, err := repo.CountVenturesCreatedSince(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, all)

	none, err := repo.CountVenturesCreatedSince(ctx, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestAnalyticsRepo_GroupActiveVenturesByStage(t *testing.T) {
	_, repo, _ := analyticsScenario(t)

	groups, err := repo.GroupActiveVenturesByStage(context.Background())
	require.NoError(t, err)
	// The archived DUE_DILIGENCE venture is excluded.
	require.Len(t, groups, 1)
	assert.Equal(t, domain.StageScreening, groups[0].Stage)
	assert.Equal(t, 2, groups[0].Count)
}

func TestAnalyticsRepo_GroupActiveVenturesBySector(t *testing.T) {
	_, repo, _ := analyticsScenario(t)

	groups, err := repo.GroupActiveVenturesBySector(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	counts := map[string]int{}
	for _, g := range groups {
		counts[g.Sector] = g.Count
	}
	assert.Equal(t, map[string]int{"AgTech": 1, "FinTech": 1}, counts)
}

func TestAnalyticsRepo_GroupMetricsByCategory(t *testing.T) {
	_, repo, _ := analyticsScenario(t)

	groups, err := repo.GroupMetricsByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byCat := map[domain.MetricCategory]CategoryStats{}
	for _, g := range groups {
		byCat[g.Category] = g
	}
	gender := byCat[domain.CategoryGender]
	assert.Equal(t, 3, gender.Count)
	assert.InDelta(t, 10.0, gender.AvgCurrent, 0.001)
	assert.InDelta(t, 20.0, gender.AvgTarget, 0.001)

	disability := byCat[domain.CategoryDisability]
	assert.Equal(t, 2, disability.Count)
	assert.InDelta(t, 5.0, disability.AvgCurrent, 0.001)
	assert.InDelta(t, 50.0, disability.AvgTarget, 0.001)
}

func TestAnalyticsRepo_TopVenturesByMetricCount(t *testing.T) {
	_, repo, ventures := analyticsScenario(t)

	top, err := repo.TopVenturesByMetricCount(context.Background(), 5)
	require.NoError(t, err)
	// Only active ventures rank; Alpha (3 metrics) ahead of Beta (2).
	require.Len(t, top, 2)
	assert.Equal(t, ventures[0].ID, top[0].VentureID)
	assert.Equal(t, 3, top[0].TotalMetrics)
	assert.Equal(t, 3, top[0].CompletedMetrics)
	assert.Equal(t, ventures[1].ID, top[1].VentureID)
	assert.Equal(t, 2, top[1].TotalMetrics)
	assert.Zero(t, top[1].CompletedMetrics)
}

func TestAnalyticsRepo_TopVentures_ZeroMetricVentureIncluded(t *testing.T) {
	database, repo, _ := analyticsScenario(t)
	ctx := context.Background()

	user := testutil.NewTestUser("Extra")
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, user))
	empty := testutil.NewTestVenture("No Metrics Yet", user.ID)
	require.NoError(t, NewSQLiteVentureRepo(database).Create(ctx, empty))

	top, err := repo.TopVenturesByMetricCount(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	last := top[2]
	assert.Equal(t, empty.ID, last.VentureID)
	assert.Zero(t, last.TotalMetrics)
}

func TestAnalyticsRepo_MonthlyVentureCounts(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser("Seed")
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, user))

	ventureRepo := NewSQLiteVentureRepo(database)
	times := []time.Time{
		time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, ts := range times {
		v := testutil.NewTestVenture("V", user.ID, testutil.WithCreatedAt(ts))
		v.Name = v.Name + string(rune('A'+i))
		require.NoError(t, ventureRepo.Create(ctx, v))
	}

	repo := NewSQLiteAnalyticsRepo(database)
	buckets, err := repo.MonthlyVentureCounts(ctx, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, MonthCount{Month: "2026-05", Count: 2}, buckets[0])
	assert.Equal(t, MonthCount{Month: "2026-06", Count: 1}, buckets[1])
}
