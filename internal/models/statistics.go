package models

// SavingsSummary aggregates the economics of a rider's normalized trips
// against the estimated transit alternative.
type SavingsSummary struct {
	TripCount            int64   `json:"trip_count"`
	TotalDistanceMeters  float64 `json:"total_distance_meters"`
	TotalDurationSeconds int64   `json:"total_duration_seconds"`

	TotalCostCents        int64 `json:"total_cost_cents"`
	TotalTransitCostCents int64 `json:"total_transit_cost_cents"`
	// Positive when biking was cheaper than riding transit.
	CostSavingsCents int64 `json:"cost_savings_cents"`
	// Positive when biking was faster than transit overall.
	TimeSavedSeconds int64 `json:"time_saved_seconds"`

	AverageSuitabilityScore float64 `json:"average_suitability_score"`

	TripsByTimeOfDay      map[string]int64 `json:"trips_by_time_of_day"`
	TripsByDistanceBucket map[string]int64 `json:"trips_by_distance_bucket"`
	TripsByRecommendation map[string]int64 `json:"trips_by_recommendation"`
}
