package models

// UnknownStationName is the placeholder the provider uses when a ride has no
// station identity attached yet.
const UnknownStationName = "Unknown"

// MinimalStation is the flattened station record kept in the in-memory index
// used for resolution lookups. It is not persisted.
type MinimalStation struct {
	ID   string  `json:"station_id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// NearbyStation is a station plus its distance from a query point.
type NearbyStation struct {
	MinimalStation
	DistanceMeters float64 `json:"distance_meters"`
}
