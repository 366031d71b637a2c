package normalize

import (
	"math"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
	"github.com/VirenMohindra/citibike-sub002/internal/pricing"
)

// Scoring calibration. The base sits at the okay/transit-better boundary so
// a trip with zero net value over transit and a middling distance scores 50;
// each dollar of net value moves the score five points, and the distance
// curve swings it by at most ten points either way. The interpretation bands
// (80-100 great, 50-79 okay, 0-49 transit would have been better) are
// calibrated against these weights; change them together.
const (
	scoreBase           = 50.0
	scorePointsPerCent  = 0.05 // 5 points per dollar of net value
	distanceCurveWeight = 20.0
	ScoreBandGreatMin   = 80
	ScoreBandOkayMin    = 50
)

// Distance-suitability curve breakpoints (meters): below walkableMaxMeters a
// bike adds nothing over walking; between idealMinMeters and idealMaxMeters a
// bike shines; beyond longHaulMeters rail or transit wins outright.
const (
	walkableMaxMeters = 400.0
	idealMinMeters    = 800.0
	idealMaxMeters    = 5000.0
	longHaulMeters    = 16000.0
)

// Modeled riding speeds used when scoring the modes the rider did not take.
const (
	classicSpeedMps = 12000.0 / 3600.0 // ~12 km/h incl. dock overhead
	ebikeSpeedMps   = 18000.0 / 3600.0 // ~18 km/h
)

// SuitabilityInput carries the derived trip fields the scorer consumes.
type SuitabilityInput struct {
	DistanceMeters  float64
	DurationSeconds int64
	BikeType        string
	CostCents       *int64 // nil = free
	Transit         TransitAlternative
	HourlyRate      float64 // rider's time value, dollars per hour
}

// ScoreSuitability produces a 0-100 score for how well the trip matched the
// bike-share use case versus transit, and the mode that would have maximized
// the rider's net value over the same distance.
//
// The score combines the monetary value of time saved versus transit (at the
// rider's hourly rate), the direct cost delta versus the flat transit fare,
// and a distance curve that penalizes walkable and long-haul trips. It is
// monotonic: nondecreasing in hourly rate while time saved is non-negative,
// and nonincreasing in trip cost.
func ScoreSuitability(in SuitabilityInput, plan models.PricingPlan) (int, string) {
	timeSavedSeconds := float64(in.Transit.DurationSeconds - in.DurationSeconds)
	timeValueCents := timeSavedSeconds * centsPerSecond(in.HourlyRate)

	var cost int64
	if in.CostCents != nil {
		cost = *in.CostCents
	}
	costDeltaCents := float64(cost - in.Transit.CostCents)

	netCents := timeValueCents - costDeltaCents
	curve := distanceSuitability(in.DistanceMeters)

	raw := scoreBase + netCents*scorePointsPerCent + (curve-0.5)*distanceCurveWeight
	score := clampScore(raw)

	return score, recommendMode(in, plan)
}

// distanceSuitability maps distance to [0, 1]: zero through the walkable
// range, ramping to one at the ideal band, tapering back to zero by the
// long-haul mark.
func distanceSuitability(meters float64) float64 {
	switch {
	case meters <= walkableMaxMeters:
		return 0
	case meters < idealMinMeters:
		return (meters - walkableMaxMeters) / (idealMinMeters - walkableMaxMeters)
	case meters <= idealMaxMeters:
		return 1
	case meters >= longHaulMeters:
		return 0
	default:
		return 1 - (meters-idealMaxMeters)/(longHaulMeters-idealMaxMeters)
	}
}

// recommendMode picks the mode with the best net value over the same
// distance: the actual duration for the mode that was ridden, modeled speeds
// for the others. Net value is the negated generalized cost (fare plus time
// at the rider's hourly rate), so less total cost wins.
func recommendMode(in SuitabilityInput, plan models.PricingPlan) string {
	cps := centsPerSecond(in.HourlyRate)

	netValue := func(durationSeconds int64, costCents int64) float64 {
		return -float64(costCents) - float64(durationSeconds)*cps
	}

	classicDur := modeledDuration(in, models.BikeTypeClassic, classicSpeedMps)
	ebikeDur := modeledDuration(in, models.BikeTypeEbike, ebikeSpeedMps)

	candidates := []struct {
		mode string
		net  float64
	}{
		{models.ModeClassic, netValue(classicDur, derefCents(pricing.TripCost(models.BikeTypeClassic, classicDur, plan)))},
		{models.ModeEbike, netValue(ebikeDur, derefCents(pricing.TripCost(models.BikeTypeEbike, ebikeDur, plan)))},
		{models.ModeTransit, netValue(in.Transit.DurationSeconds, in.Transit.CostCents)},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.net > best.net {
			best = c
		}
	}
	return best.mode
}

func modeledDuration(in SuitabilityInput, bikeType string, speedMps float64) int64 {
	if in.BikeType == bikeType && in.DurationSeconds > 0 {
		return in.DurationSeconds
	}
	if in.DistanceMeters <= 0 {
		return in.DurationSeconds
	}
	return int64(in.DistanceMeters / speedMps)
}

func centsPerSecond(hourlyRate float64) float64 {
	if hourlyRate < 0 {
		return 0
	}
	return hourlyRate * 100 / 3600
}

func derefCents(c *int64) int64 {
	if c == nil {
		return 0
	}
	return *c
}

func clampScore(raw float64) int {
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
