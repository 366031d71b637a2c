// Package pricing computes what a ride actually cost under a pricing plan.
// All monetary values are integer cents; billed time is whole minutes rounded
// up, which matches how the provider meters rides.
package pricing

import (
	"math"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// TripCost returns the fee for a ride in cents, or nil when the ride carries
// no charge (a classic ride inside the free allowance, or a plan too
// incomplete to bill against, which fails closed as free).
//
// Classic bikes are free through the plan's allowance and billed per started
// overage minute beyond it. E-bikes are billed per started minute from time
// zero, capped at EbikeMaxBilledMinutes so a ride that was never docked
// properly cannot bill forever.
//
// durationSeconds must be non-negative; the normalization orchestrator
// rejects negative durations before cost computation runs.
func TripCost(bikeType string, durationSeconds int64, plan models.PricingPlan) *int64 {
	if plan.Validate() != nil {
		return nil
	}

	switch bikeType {
	case models.BikeTypeEbike:
		return ebikeCost(durationSeconds, plan)
	default:
		// Rides with a missing bike type are billed under classic rules,
		// the cheaper interpretation for the rider.
		return classicCost(durationSeconds, plan)
	}
}

func classicCost(durationSeconds int64, plan models.PricingPlan) *int64 {
	minutes := billedMinutes(durationSeconds)
	overage := minutes - int64(plan.ClassicFreeMinutes)
	if overage <= 0 {
		return nil
	}
	cost := overage * int64(plan.ClassicOverageCentsPerMinute)
	return &cost
}

func ebikeCost(durationSeconds int64, plan models.PricingPlan) *int64 {
	minutes := billedMinutes(durationSeconds)
	if limit := int64(plan.EbikeMaxBilledMinutes); limit > 0 && minutes > limit {
		minutes = limit
	}
	cost := minutes * int64(plan.EbikeCentsPerMinute)
	return &cost
}

// billedMinutes rounds a duration up to the next whole minute. Any positive
// duration bills at least one minute; zero bills zero.
func billedMinutes(durationSeconds int64) int64 {
	if durationSeconds <= 0 {
		return 0
	}
	return (durationSeconds + 59) / 60
}

// roundHalfUpCents is the single place that decides sub-cent rounding. Plan
// rates are currently whole cents per minute so this only matters if
// fractional-cent rates ever appear.
func roundHalfUpCents(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
