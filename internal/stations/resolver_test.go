package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

func testIndex() *Index {
	return NewIndex([]models.MinimalStation{
		{ID: "66db2e9a", Name: "W 21 St & 6 Ave", Lat: 40.74174, Lon: -73.99416},
		{ID: "66db2f51", Name: "E 17 St & Broadway", Lat: 40.73705, Lon: -73.99009},
		{ID: "66db3cf3", Name: "Central Park S & 6 Ave", Lat: 40.76591, Lon: -73.97634},
	})
}

func TestResolveByID(t *testing.T) {
	idx := testIndex()

	res := idx.Resolve("some stale name", "66db2f51", 0, 0)
	assert.True(t, res.Resolved)
	assert.Equal(t, "E 17 St & Broadway", res.Name)
	assert.Equal(t, 40.73705, res.Lat)
	assert.Equal(t, -73.99009, res.Lon)
}

func TestResolveByProximityKeepsSuppliedCoordinates(t *testing.T) {
	idx := testIndex()

	// A GPS fix about 15m from the station centroid.
	lat, lon := 40.74184, -73.99430
	res := idx.Resolve("Unknown", "", lat, lon)
	assert.True(t, res.Resolved)
	assert.Equal(t, "W 21 St & 6 Ave", res.Name)
	assert.Equal(t, lat, res.Lat)
	assert.Equal(t, lon, res.Lon)
}

func TestResolveProximityMissBeyondThreshold(t *testing.T) {
	idx := testIndex()

	// Midtown, hundreds of meters from every indexed station.
	res := idx.Resolve("Unknown", "", 40.75500, -73.98600)
	assert.False(t, res.Resolved)
	assert.Equal(t, "Unknown", res.Name)
	assert.Equal(t, 40.75500, res.Lat)
}

func TestResolveFallbackSafety(t *testing.T) {
	idx := testIndex()

	// Id absent from the index: original name preserved, never resolved.
	res := idx.Resolve("Dock that closed", "no-such-id", 0, 0)
	assert.False(t, res.Resolved)
	assert.Equal(t, "Dock that closed", res.Name)
	assert.Equal(t, 0.0, res.Lat)
	assert.Equal(t, 0.0, res.Lon)
}

func TestResolveCanonicalNothingToResolveInput(t *testing.T) {
	idx := testIndex()

	res := idx.Resolve(models.UnknownStationName, "", 0, 0)
	assert.False(t, res.Resolved)
	assert.Equal(t, models.UnknownStationName, res.Name)
}

func TestResolveNilIndex(t *testing.T) {
	var idx *Index

	res := idx.Resolve("Unknown", "66db2f51", 40.73705, -73.99009)
	assert.False(t, res.Resolved)
	assert.Equal(t, "Unknown", res.Name)
}

func TestNearbyN(t *testing.T) {
	idx := testIndex()

	nearby := idx.NearbyN(40.73800, -73.99100, 2)
	assert.Len(t, nearby, 2)
	assert.Equal(t, "E 17 St & Broadway", nearby[0].Name)
	assert.LessOrEqual(t, nearby[0].DistanceMeters, nearby[1].DistanceMeters)
}
