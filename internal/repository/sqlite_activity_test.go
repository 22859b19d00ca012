package repository

import (
	"context"
	"testing"
	"time"

	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityTestSetup(t *testing.T) (*SQLiteActivityRepo, *domain.Venture, *domain.User) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser("Rin")
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, user))

	venture := testutil.NewTestVenture("Craft Collective", user.ID)
	require.NoError(t, NewSQLiteVentureRepo(database).Create(ctx, venture))

	return NewSQLiteActivityRepo(database), venture, user
}

func TestActivityRepo_CreateAndListRecent(t *testing.T) {
	repo, venture, user := activityTestSetup(t)
	ctx := context.Background()

	a := testutil.NewTestActivity(&venture.ID, user.ID)
	a.Type = domain.ActivityVentureUpdated
	a.Title = "Venture updated"
	a.Metadata = map[string]string{"changedFields": "name,stage"}
	require.NoError(t, repo.Create(ctx, a))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, domain.ActivityVentureUpdated, got.Type)
	assert.Equal(t, user.Name, got.UserName)
	assert.Equal(t, user.Email, got.UserEmail)
	require.NotNil(t, got.VentureName)
	assert.Equal(t, "Craft Collective", *got.VentureName)
	assert.Equal(t, map[string]string{"changedFields": "name,stage"}, got.Metadata)
}

func TestActivityRepo_NilVentureScope(t *testing.T) {
	repo, _, user := activityTestSetup(t)
	ctx := context.Background()

	a := testutil.NewTestActivity(nil, user.ID)
	a.Type = domain.ActivityVentureDeleted
	a.Title = "Venture deleted"
	require.NoError(t, repo.Create(ctx, a))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].VentureID)
	assert.Nil(t, list[0].VentureName)
}

func TestActivityRepo_ListRecent_OrderAndLimit(t *testing.T) {
	repo, venture, user := activityTestSetup(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		a := testutil.NewTestActivity(&venture.ID, user.ID)
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, a))
		ids = append(ids, a.ID)
	}

	list, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[4], list[0].ID)
	assert.Equal(t, ids[3], list[1].ID)
	assert.Equal(t, ids[2], list[2].ID)
}

func TestActivityRepo_ListByVenture(t *testing.T) {
	repo, venture, user := activityTestSetup(t)
	ctx := context.Background()

	scoped := testutil.NewTestActivity(&venture.ID, user.ID)
	global := testutil.NewTestActivity(nil, user.ID)
	require.NoError(t, repo.Create(ctx, scoped))
	require.NoError(t, repo.Create(ctx, global))

	list, err := repo.ListByVenture(ctx, venture.ID, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, scoped.ID, list[0].ID)
}
