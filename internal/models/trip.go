package models

import "time"

// Bike type values as reported by the ride provider
const (
	BikeTypeClassic = "classic"
	BikeTypeEbike   = "ebike"
)

// Trip sources
const (
	SourceAccount = "account" // synced from the rider's linked account
	SourceDataset = "dataset" // imported from a bulk public trip dataset
)

// Recommended mode values produced by the suitability scorer
const (
	ModeClassic = "classic"
	ModeEbike   = "ebike"
	ModeTransit = "transit"
)

// Trip represents a single bike-share ride. Raw fields come straight from the
// provider or a bulk dataset and may be partially populated; derived fields
// are filled in by normalization and are only ever written through a TripPatch.
type Trip struct {
	ID             int64  `json:"id" db:"id"`
	UserID         string `json:"user_id" db:"user_id"`
	ProviderTripID string `json:"provider_trip_id" db:"provider_trip_id"`
	Source         string `json:"source" db:"source"` // account, dataset

	// Raw temporal info (milliseconds since epoch)
	StartTimeMs     int64 `json:"start_time_ms" db:"start_time_ms"`
	EndTimeMs       int64 `json:"end_time_ms" db:"end_time_ms"`
	DurationSeconds int64 `json:"duration_seconds" db:"duration_seconds"`

	// Raw station references. Names may be the "Unknown" placeholder and
	// coordinates may be 0,0 when the provider has not supplied them yet.
	StartStationID   string  `json:"start_station_id,omitempty" db:"start_station_id"`
	StartStationName string  `json:"start_station_name,omitempty" db:"start_station_name"`
	StartLat         float64 `json:"start_lat,omitempty" db:"start_lat"`
	StartLon         float64 `json:"start_lon,omitempty" db:"start_lon"`
	EndStationID     string  `json:"end_station_id,omitempty" db:"end_station_id"`
	EndStationName   string  `json:"end_station_name,omitempty" db:"end_station_name"`
	EndLat           float64 `json:"end_lat,omitempty" db:"end_lat"`
	EndLon           float64 `json:"end_lon,omitempty" db:"end_lon"`

	BikeType string `json:"bike_type,omitempty" db:"bike_type"` // classic, ebike

	// Optional raw path/distance data
	Polyline          string  `json:"polyline,omitempty" db:"polyline"`
	ReportedDistanceM float64 `json:"reported_distance_m,omitempty" db:"reported_distance_m"`

	// Bulk dataset metadata (benchmarking only, not used by normalization)
	DatasetMonth  string `json:"dataset_month,omitempty" db:"dataset_month"`
	RiderCategory string `json:"rider_category,omitempty" db:"rider_category"` // member, casual

	// Derived fields (written by normalization)
	DistanceMeters         float64 `json:"distance_meters" db:"distance_meters"`
	HasActualCoordinates   bool    `json:"has_actual_coordinates" db:"has_actual_coordinates"`
	StartResolved          bool    `json:"start_resolved" db:"start_resolved"`
	EndResolved            bool    `json:"end_resolved" db:"end_resolved"`
	DistanceBucket         string  `json:"distance_bucket,omitempty" db:"distance_bucket"`
	DurationBucket         string  `json:"duration_bucket,omitempty" db:"duration_bucket"`
	TimeOfDay              string  `json:"time_of_day,omitempty" db:"time_of_day"`
	CostCents              *int64  `json:"cost_cents,omitempty" db:"cost_cents"` // nil = no charge
	TransitDurationSeconds int64   `json:"transit_duration_seconds" db:"transit_duration_seconds"`
	TransitCostCents       int64   `json:"transit_cost_cents" db:"transit_cost_cents"`
	SuitabilityScore       int     `json:"suitability_score" db:"suitability_score"`
	RecommendedMode        string  `json:"recommended_mode,omitempty" db:"recommended_mode"`
	Normalized             bool    `json:"normalized" db:"normalized"`

	// Sync-pipeline bookkeeping, untouched by normalization
	DetailsFetchAttempts int    `json:"details_fetch_attempts,omitempty" db:"details_fetch_attempts"`
	DetailsFetchError    string `json:"details_fetch_error,omitempty" db:"details_fetch_error"`
	DetailsFetchedAtMs   int64  `json:"details_fetched_at_ms,omitempty" db:"details_fetched_at_ms"`
	NormalizeError       string `json:"normalize_error,omitempty" db:"normalize_error"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TripPatch holds every field normalization derives for one trip. The batch
// runner applies patches transactionally; the normalization core itself never
// touches storage.
type TripPatch struct {
	StartStationName string  `json:"start_station_name"`
	StartLat         float64 `json:"start_lat"`
	StartLon         float64 `json:"start_lon"`
	StartResolved    bool    `json:"start_resolved"`
	EndStationName   string  `json:"end_station_name"`
	EndLat           float64 `json:"end_lat"`
	EndLon           float64 `json:"end_lon"`
	EndResolved      bool    `json:"end_resolved"`

	DistanceMeters       float64 `json:"distance_meters"`
	HasActualCoordinates bool    `json:"has_actual_coordinates"`

	DistanceBucket string `json:"distance_bucket"`
	DurationBucket string `json:"duration_bucket"`
	TimeOfDay      string `json:"time_of_day"`

	CostCents              *int64 `json:"cost_cents,omitempty"`
	TransitDurationSeconds int64  `json:"transit_duration_seconds"`
	TransitCostCents       int64  `json:"transit_cost_cents"`
	SuitabilityScore       int    `json:"suitability_score"`
	RecommendedMode        string `json:"recommended_mode"`

	Normalized bool `json:"normalized"`
}

// Apply merges the patch into a trip record. Raw fields other than the
// resolved station identity are left untouched, so re-normalizing an already
// patched trip reproduces the same patch.
func (p TripPatch) Apply(t *Trip) {
	t.StartStationName = p.StartStationName
	t.StartLat = p.StartLat
	t.StartLon = p.StartLon
	t.StartResolved = p.StartResolved
	t.EndStationName = p.EndStationName
	t.EndLat = p.EndLat
	t.EndLon = p.EndLon
	t.EndResolved = p.EndResolved
	t.DistanceMeters = p.DistanceMeters
	t.HasActualCoordinates = p.HasActualCoordinates
	t.DistanceBucket = p.DistanceBucket
	t.DurationBucket = p.DurationBucket
	t.TimeOfDay = p.TimeOfDay
	t.CostCents = p.CostCents
	t.TransitDurationSeconds = p.TransitDurationSeconds
	t.TransitCostCents = p.TransitCostCents
	t.SuitabilityScore = p.SuitabilityScore
	t.RecommendedMode = p.RecommendedMode
	t.Normalized = p.Normalized
}

// TripsResponse represents a paginated response of trips
type TripsResponse struct {
	Data       []Trip `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
