package geo

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
)

// HaversineMeters calculates the great-circle distance between two points in
// meters. The s2 angle math stays numerically stable for identical and
// near-antipodal points.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PathMeters sums the haversine distance across consecutive point pairs.
// Returns 0 for fewer than two points.
func PathMeters(points [][2]float64) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineMeters(points[i-1][0], points[i-1][1], points[i][0], points[i][1])
	}
	return total
}
