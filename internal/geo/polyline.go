package geo

import (
	"github.com/twpayne/go-polyline"
)

// DecodePolyline decodes a Google-style encoded polyline (1e5 factor) into
// [lat, lon] pairs. Empty or malformed input yields an empty result rather
// than an error; a ride without a usable path simply has no path.
func DecodePolyline(encoded string) [][2]float64 {
	if encoded == "" {
		return nil
	}
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil || len(rest) > 0 {
		return nil
	}
	points := make([][2]float64, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil
		}
		points = append(points, [2]float64{c[0], c[1]})
	}
	return points
}
