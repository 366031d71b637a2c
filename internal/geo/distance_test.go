package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-polyline"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lon1     float64
		lat2     float64
		lon2     float64
		expected float64
		delta    float64
	}{
		{
			name:     "identical points",
			lat1:     40.7336, lon1: -73.9905,
			lat2:     40.7336, lon2: -73.9905,
			expected: 0, delta: 0,
		},
		{
			name:     "union square to times square",
			lat1:     40.7359, lon1: -73.9911,
			lat2:     40.7580, lon2: -73.9855,
			expected: 2500, delta: 100,
		},
		{
			name:     "one degree of latitude",
			lat1:     40.0, lon1: -74.0,
			lat2:     41.0, lon2: -74.0,
			expected: 111195, delta: 300,
		},
		{
			name:     "near antipodal",
			lat1:     0, lon1: 0,
			lat2:     0, lon2: 179.9999,
			expected: 20015000, delta: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.delta)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestPathMeters(t *testing.T) {
	assert.Equal(t, 0.0, PathMeters(nil))
	assert.Equal(t, 0.0, PathMeters([][2]float64{{40.7, -74.0}}))

	// Path via a midpoint offset from the straight line must be longer than
	// the direct distance between the endpoints.
	points := [][2]float64{
		{40.7000, -74.0000},
		{40.7100, -73.9850},
		{40.7200, -74.0000},
	}
	path := PathMeters(points)
	direct := HaversineMeters(points[0][0], points[0][1], points[2][0], points[2][1])
	assert.Greater(t, path, direct)

	// Collinear points add up to the endpoint distance.
	line := [][2]float64{
		{40.7000, -74.0000},
		{40.7050, -74.0000},
		{40.7100, -74.0000},
	}
	assert.InDelta(t,
		HaversineMeters(line[0][0], line[0][1], line[2][0], line[2][1]),
		PathMeters(line), 0.5)
}

func TestDecodePolyline(t *testing.T) {
	assert.Empty(t, DecodePolyline(""))
	assert.Empty(t, DecodePolyline("not a polyline \x01"))

	coords := [][]float64{
		{40.70000, -74.00000},
		{40.70500, -73.99500},
		{40.71000, -74.00000},
	}
	encoded := string(polyline.EncodeCoords(coords))

	points := DecodePolyline(encoded)
	assert.Len(t, points, 3)
	for i, p := range points {
		assert.InDelta(t, coords[i][0], p[0], 1e-5)
		assert.InDelta(t, coords[i][1], p[1], 1e-5)
	}
}

func TestPolylinePathMatchesHaversineForStraightLine(t *testing.T) {
	// For a straight-line path the decoded path distance must agree with the
	// haversine distance between its endpoints within 1%.
	coords := [][]float64{
		{40.70000, -74.00000},
		{40.71000, -74.00000},
		{40.72000, -74.00000},
	}
	encoded := string(polyline.EncodeCoords(coords))
	points := DecodePolyline(encoded)
	path := PathMeters(points)
	direct := HaversineMeters(coords[0][0], coords[0][1], coords[2][0], coords[2][1])
	assert.InEpsilon(t, direct, path, 0.01)
}
