package normalize

import "github.com/VirenMohindra/citibike-sub002/internal/models"

// Transit estimation heuristics. The effective speed folds walking to the
// platform, waiting, and the ride itself into one door-to-door average; the
// overhead is the fixed wait-plus-transfer buffer every transit trip pays.
// This is deliberately a heuristic, not a routing call: the estimator must
// stay synchronous and pure.
const (
	TransitEffectiveSpeedMps = 15000.0 / 3600.0 // ~15 km/h door to door
	TransitOverheadSeconds   = 360              // average wait + transfer buffer
)

// TransitAlternative is the estimated duration and cost of making the same
// trip by subway.
type TransitAlternative struct {
	DurationSeconds int64 `json:"duration_seconds"`
	CostCents       int64 `json:"cost_cents"`
}

// EstimateTransit models the comparable subway trip for a given distance.
// The fare is the plan's flat single-ride fare regardless of distance
// (flat-fare system assumption, a documented simplification). Duration never
// drops below the fixed overhead, even for a zero-distance trip.
func EstimateTransit(distanceMeters float64, plan models.PricingPlan) TransitAlternative {
	duration := int64(TransitOverheadSeconds)
	if distanceMeters > 0 {
		duration += int64(distanceMeters / TransitEffectiveSpeedMps)
	}
	return TransitAlternative{
		DurationSeconds: duration,
		CostCents:       int64(plan.TransitFlatFareCents),
	}
}
