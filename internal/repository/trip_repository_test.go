package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VirenMohindra/citibike-sub002/internal/database"
	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

func testRepo(t *testing.T) *TripRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewTripRepository(db)
}

func seedTrips(t *testing.T, repo *TripRepository) {
	t.Helper()
	inserted, err := repo.InsertTrips([]models.Trip{
		{
			UserID: "rider-1", ProviderTripID: "t1", Source: models.SourceAccount,
			StartTimeMs: 1_700_000_000_000, DurationSeconds: 1800,
			BikeType: models.BikeTypeClassic, StartStationID: "st-100",
		},
		{
			UserID: "rider-1", ProviderTripID: "t2", Source: models.SourceDataset,
			StartTimeMs: 1_700_100_000_000, DurationSeconds: 900,
			BikeType: models.BikeTypeEbike,
		},
		{
			UserID: "rider-2", ProviderTripID: "t1", Source: models.SourceAccount,
			StartTimeMs: 1_700_200_000_000, DurationSeconds: 600,
		},
	})
	require.NoError(t, err)
	require.Equal(t, 3, inserted)
}

func TestInsertTripsIsIdempotent(t *testing.T) {
	repo := testRepo(t)
	seedTrips(t, repo)

	// Re-inserting the same provider trip ids adds nothing.
	inserted, err := repo.InsertTrips([]models.Trip{
		{UserID: "rider-1", ProviderTripID: "t1", Source: models.SourceAccount, StartTimeMs: 1},
		{UserID: "rider-1", ProviderTripID: "t3", Source: models.SourceAccount, StartTimeMs: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func TestGetTripsScopedToUser(t *testing.T) {
	repo := testRepo(t)
	seedTrips(t, repo)

	trips, total, err := repo.GetTrips("rider-1", models.TripFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, trips, 2)
	// Newest first.
	assert.Equal(t, "t2", trips[0].ProviderTripID)

	filtered, total, err := repo.GetTrips("rider-1", models.TripFilter{BikeType: models.BikeTypeEbike})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "t2", filtered[0].ProviderTripID)
}

func TestApplyPatchesAndUnnormalizedFlow(t *testing.T) {
	repo := testRepo(t)
	seedTrips(t, repo)

	pending, err := repo.GetUnnormalized("rider-1", 100)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	cost := int64(390)
	patch := models.TripPatch{
		StartStationName: "W 21 St & 6 Ave",
		StartLat:         40.74174, StartLon: -73.99416, StartResolved: true,
		EndStationName: models.UnknownStationName,
		DistanceMeters: 2414, HasActualCoordinates: true,
		DistanceBucket: "medium", DurationBucket: "10-30min", TimeOfDay: "midday",
		CostCents:              &cost,
		TransitDurationSeconds: 940, TransitCostCents: 290,
		SuitabilityScore: 82, RecommendedMode: models.ModeEbike,
		Normalized: true,
	}

	err = repo.ApplyPatches(
		map[int64]models.TripPatch{pending[0].ID: patch},
		map[int64]string{pending[1].ID: "malformed trip input: duration_seconds is negative"},
	)
	require.NoError(t, err)

	// Patched trip round-trips with the cost intact.
	got, err := repo.GetTripByID(pending[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Normalized)
	require.NotNil(t, got.CostCents)
	assert.Equal(t, int64(390), *got.CostCents)
	assert.Equal(t, "W 21 St & 6 Ave", got.StartStationName)
	assert.Equal(t, 82, got.SuitabilityScore)

	// The failed record is marked and excluded from future batches.
	failed, err := repo.GetTripByID(pending[1].ID)
	require.NoError(t, err)
	require.NotNil(t, failed)
	assert.False(t, failed.Normalized)
	assert.Contains(t, failed.NormalizeError, "malformed")

	remaining, err := repo.GetUnnormalized("rider-1", 100)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	count, err := repo.CountUnnormalized("rider-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNilCostStoredAsNull(t *testing.T) {
	repo := testRepo(t)
	seedTrips(t, repo)

	pending, err := repo.GetUnnormalized("rider-2", 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	err = repo.ApplyPatches(map[int64]models.TripPatch{
		pending[0].ID: {Normalized: true, DistanceBucket: "short"},
	}, nil)
	require.NoError(t, err)

	got, err := repo.GetTripByID(pending[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CostCents, "free ride keeps cost NULL")
}

func TestGetTripByIDMissing(t *testing.T) {
	repo := testRepo(t)

	got, err := repo.GetTripByID(12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}
