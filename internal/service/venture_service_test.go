package service

import (
	"context"
	"testing"

	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
	"github.com/miv-platform/miv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, h *harness, name string) *domain.User {
	t.Helper()
	user := testutil.NewTestUser(name)
	require.NoError(t, h.users.Create(context.Background(), user))
	return user
}

func findActivity(t *testing.T, feed []*repository.ActivityWithContext, typ domain.ActivityType) *repository.ActivityWithContext {
	t.Helper()
	for _, a := range feed {
		if a.Type == typ {
			return a
		}
	}
	t.Fatalf("no %s activity in feed of %d", typ, len(feed))
	return nil
}

func validVentureInput() CreateVentureInput {
	return CreateVentureInput{
		Name:          "Mekong Weavers",
		Sector:        "Artisan Goods",
		Location:      "Can Tho, Vietnam",
		FundingSought: 250000,
		TeamSize:      12,
		ContactEmail:  "hello@mekongweavers.vn",
	}
}

func TestVentureService_Create(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)
	require.NotEmpty(t, venture.ID)
	assert.Equal(t, domain.StageIntake, venture.Stage)
	assert.Equal(t, domain.VentureActive, venture.Status)
	assert.Equal(t, user.ID, venture.CreatedByID)

	feed, err := h.activities.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, domain.ActivityVentureCreated, feed[0].Type)
	require.NotNil(t, feed[0].VentureID)
	assert.Equal(t, venture.ID, *feed[0].VentureID)
	assert.Equal(t, user.ID, feed[0].UserID)
}

func TestVentureService_Create_CollectsAllFieldErrors(t *testing.T) {
	h := newHarness(t)
	user := seedUser(t, h, "Analyst")

	_, err := h.ventures.Create(context.Background(), user.ID, CreateVentureInput{
		Stage:         "LAUNCHPAD",
		ContactEmail:  "not-an-email",
		FundingSought: -1,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = f.Field
	}
	assert.ElementsMatch(t,
		[]string{"name", "sector", "location", "stage", "contactEmail", "fundingSought"},
		fields)
}

func TestVentureService_Get_AssemblesRelations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)

	_, err = h.metrics.Create(ctx, user.ID, CreateMetricInput{
		VentureID:   venture.ID,
		MetricCode:  "OI.1",
		MetricName:  "Women in leadership",
		Category:    string(domain.CategoryGender),
		TargetValue: f64(50),
		Unit:        "percent",
	})
	require.NoError(t, err)

	_, err = h.ventures.AddDocument(ctx, user.ID, venture.ID, CreateDocumentInput{
		Name: "pitch-deck.pdf",
		Type: "PITCH_DECK",
		URL:  "https://storage.example.org/docs/1",
		Size: 2048,
	})
	require.NoError(t, err)

	detail, err := h.ventures.Get(ctx, venture.ID)
	require.NoError(t, err)
	assert.Equal(t, venture.ID, detail.ID)
	assert.Len(t, detail.Metrics, 1)
	assert.Len(t, detail.Documents, 1)
	assert.Equal(t, 1, detail.Counts.Metrics)
	assert.Equal(t, 1, detail.Counts.Documents)
	// VENTURE_CREATED, METRIC_ADDED, DOCUMENT_UPLOADED
	assert.Len(t, detail.Activities, 3)
}

func TestVentureService_Get_NotFound(t *testing.T) {
	h := newHarness(t)

	_, err := h.ventures.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVentureService_Update_RecordsChangedFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)

	stage := string(domain.StageDueDiligence)
	raised := 100000.0
	detail, err := h.ventures.Update(ctx, user.ID, venture.ID, UpdateVentureInput{
		Stage:         &stage,
		FundingRaised: &raised,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StageDueDiligence, detail.Stage)
	assert.Equal(t, 100000.0, detail.FundingRaised)

	feed, err := h.activities.ListByVenture(ctx, venture.ID, 10)
	require.NoError(t, err)
	updated := findActivity(t, feed, domain.ActivityVentureUpdated)
	assert.Equal(t, "stage,fundingRaised", updated.Metadata["changedFields"])
}

func TestVentureService_Update_NoFieldsNoActivity(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)

	_, err = h.ventures.Update(ctx, user.ID, venture.ID, UpdateVentureInput{})
	require.NoError(t, err)

	feed, err := h.activities.ListByVenture(ctx, venture.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, domain.ActivityVentureCreated, feed[0].Type)
}

func TestVentureService_Update_InvalidStage(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)

	bad := "MOONSHOT"
	_, err = h.ventures.Update(ctx, user.ID, venture.ID, UpdateVentureInput{Stage: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "stage", verr.Fields[0].Field)
}

func TestVentureService_Update_NotFound(t *testing.T) {
	h := newHarness(t)
	user := seedUser(t, h, "Analyst")

	name := "Renamed"
	_, err := h.ventures.Update(context.Background(), user.ID, "missing", UpdateVentureInput{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVentureService_Delete_WritesUnscopedActivity(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)

	require.NoError(t, h.ventures.Delete(ctx, user.ID, venture.ID))

	_, err = h.ventures.Get(ctx, venture.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The creation activity cascades away with the venture; the deletion
	// record has no venture scope and survives.
	feed, err := h.activities.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, domain.ActivityVentureDeleted, feed[0].Type)
	assert.Nil(t, feed[0].VentureID)
	assert.Equal(t, venture.ID, feed[0].Metadata["ventureId"])
	assert.Equal(t, venture.Name, feed[0].Metadata["ventureName"])
}

func TestVentureService_Delete_NotFound(t *testing.T) {
	h := newHarness(t)
	user := seedUser(t, h, "Analyst")

	err := h.ventures.Delete(context.Background(), user.ID, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVentureService_AddDocument_VentureMissing(t *testing.T) {
	h := newHarness(t)
	user := seedUser(t, h, "Analyst")

	_, err := h.ventures.AddDocument(context.Background(), user.ID, "missing", CreateDocumentInput{
		Name: "deck.pdf",
		URL:  "https://storage.example.org/docs/2",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVentureService_AddCapitalActivity(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)

	ca, err := h.ventures.AddCapitalActivity(ctx, user.ID, venture.ID, CreateCapitalActivityInput{
		Type:   string(domain.CapitalEquity),
		Amount: 75000,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", ca.Currency)
	assert.Equal(t, domain.CapitalRequested, ca.Status)

	listed, err := h.ventures.ListCapitalActivities(ctx, venture.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, ca.ID, listed[0].ID)

	feed, err := h.activities.ListByVenture(ctx, venture.ID, 10)
	require.NoError(t, err)
	findActivity(t, feed, domain.ActivityCapitalActivityAdded)
}

func TestVentureService_AddCapitalActivity_InvalidType(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := seedUser(t, h, "Analyst")

	venture, err := h.ventures.Create(ctx, user.ID, validVentureInput())
	require.NoError(t, err)

	_, err = h.ventures.AddCapitalActivity(ctx, user.ID, venture.ID, CreateCapitalActivityInput{
		Type:   "CRYPTO",
		Amount: -5,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
}
