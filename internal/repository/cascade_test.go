package repository

import (
	"context"
	"testing"

	"github.com/miv-platform/miv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_VentureChildren verifies that deleting a venture removes
// all of its metrics, documents, venture-scoped activities, and capital
// activities, while activities outside the venture's scope survive.
func TestCascadeDelete_VentureChildren(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser("Ops")
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, user))

	ventureRepo := NewSQLiteVentureRepo(database)
	venture := testutil.NewTestVenture("Doomed", user.ID)
	require.NoError(t, ventureRepo.Create(ctx, venture))

	metricRepo := NewSQLiteMetricRepo(database)
	docRepo := NewSQLiteDocumentRepo(database)
	actRepo := NewSQLiteActivityRepo(database)
	capRepo := NewSQLiteCapitalActivityRepo(database)

	metric := testutil.NewTestMetric(venture.ID, user.ID)
	require.NoError(t, metricRepo.Create(ctx, metric))
	require.NoError(t, docRepo.Create(ctx, testutil.NewTestDocument(venture.ID)))
	require.NoError(t, actRepo.Create(ctx, testutil.NewTestActivity(&venture.ID, user.ID)))
	require.NoError(t, capRepo.Create(ctx, testutil.NewTestCapitalActivity(venture.ID)))

	unscoped := testutil.NewTestActivity(nil, user.ID)
	require.NoError(t, actRepo.Create(ctx, unscoped))

	before, err := ventureRepo.CountChildren(ctx, venture.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, before.Metrics)
	assert.Equal(t, 1, before.Documents)
	assert.Equal(t, 1, before.Activities)
	assert.Equal(t, 1, before.CapitalActivities)

	require.NoError(t, ventureRepo.Delete(ctx, venture.ID))

	after, err := ventureRepo.CountChildren(ctx, venture.ID)
	require.NoError(t, err)
	assert.Zero(t, after.Metrics)
	assert.Zero(t, after.Documents)
	assert.Zero(t, after.Activities)
	assert.Zero(t, after.CapitalActivities)

	_, err = metricRepo.GetByID(ctx, metric.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining, err := actRepo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1, "non-venture-scoped activity must survive the cascade")
	assert.Equal(t, unscoped.ID, remaining[0].ID)
}
