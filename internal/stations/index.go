package stations

import (
	"sort"

	"github.com/VirenMohindra/citibike-sub002/internal/geo"
	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// ProximityThresholdMeters is the maximum distance at which supplied GPS
// coordinates are considered to be "at" an indexed station.
const ProximityThresholdMeters = 50.0

// Index is an in-memory lookup structure over the flattened station feed,
// keyed by station id with a linear scan fallback for proximity queries.
// Station topology is small enough (about 2000 stations citywide) that a
// linear scan stays well under a millisecond.
type Index struct {
	byID map[string]models.MinimalStation
	all  []models.MinimalStation
}

// NewIndex builds an index from a flattened station feed.
func NewIndex(list []models.MinimalStation) *Index {
	idx := &Index{
		byID: make(map[string]models.MinimalStation, len(list)),
		all:  make([]models.MinimalStation, 0, len(list)),
	}
	for _, s := range list {
		if s.ID == "" {
			continue
		}
		idx.byID[s.ID] = s
		idx.all = append(idx.all, s)
	}
	return idx
}

// Len returns the number of indexed stations.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.all)
}

// Lookup returns the station with the given id.
func (idx *Index) Lookup(id string) (models.MinimalStation, bool) {
	if idx == nil || id == "" {
		return models.MinimalStation{}, false
	}
	s, ok := idx.byID[id]
	return s, ok
}

// Nearest returns the closest indexed station to the given point and its
// distance in meters.
func (idx *Index) Nearest(lat, lon float64) (models.MinimalStation, float64, bool) {
	if idx == nil || len(idx.all) == 0 {
		return models.MinimalStation{}, 0, false
	}
	best := idx.all[0]
	bestDist := geo.HaversineMeters(lat, lon, best.Lat, best.Lon)
	for _, s := range idx.all[1:] {
		d := geo.HaversineMeters(lat, lon, s.Lat, s.Lon)
		if d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, bestDist, true
}

// NearbyN returns up to n stations sorted by distance from the given point.
func (idx *Index) NearbyN(lat, lon float64, n int) []models.NearbyStation {
	if idx == nil || len(idx.all) == 0 || n <= 0 {
		return nil
	}
	nearby := make([]models.NearbyStation, 0, len(idx.all))
	for _, s := range idx.all {
		nearby = append(nearby, models.NearbyStation{
			MinimalStation: s,
			DistanceMeters: geo.HaversineMeters(lat, lon, s.Lat, s.Lon),
		})
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})
	if len(nearby) > n {
		nearby = nearby[:n]
	}
	return nearby
}
