package stations

// Resolution is the outcome of resolving a trip's raw station reference.
type Resolution struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Resolved bool    `json:"resolved"`
}

// Resolve maps a raw station reference to a canonical station. First success
// wins:
//  1. exact id match: canonical name and coordinates
//  2. supplied coordinates within ProximityThresholdMeters of an indexed
//     station: canonical name, supplied coordinates kept
//  3. otherwise the original name and coordinates, unresolved
//
// Resolution never fabricates a station: the "Unknown" placeholder with zero
// coordinates and no id passes through unchanged with Resolved false.
func (idx *Index) Resolve(rawName, rawID string, lat, lon float64) Resolution {
	if s, ok := idx.Lookup(rawID); ok {
		return Resolution{Name: s.Name, Lat: s.Lat, Lon: s.Lon, Resolved: true}
	}

	if lat != 0 || lon != 0 {
		if s, dist, ok := idx.Nearest(lat, lon); ok && dist <= ProximityThresholdMeters {
			// Keep the supplied GPS fix, which is more precise than the
			// station centroid, but adopt the canonical name.
			return Resolution{Name: s.Name, Lat: lat, Lon: lon, Resolved: true}
		}
	}

	return Resolution{Name: rawName, Lat: lat, Lon: lon, Resolved: false}
}
