// Package normalize derives a complete, analyzable trip record from a raw,
// possibly-incomplete one: station identity, distance, classification,
// cost, a transit comparison, and a suitability score.
//
// Everything in this package is pure, synchronous computation over plain
// values. There is no I/O and no shared state, so normalization can run from
// any context without coordination; the caller owns reading the trip and
// applying the resulting patch.
package normalize

import (
	"github.com/VirenMohindra/citibike-sub002/internal/geo"
	"github.com/VirenMohindra/citibike-sub002/internal/models"
	"github.com/VirenMohindra/citibike-sub002/internal/pricing"
	"github.com/VirenMohindra/citibike-sub002/internal/stations"
)

// Options carries the external configuration normalization depends on. The
// pricing plan and hourly rate are injected per call so tests and fare
// changes never touch code.
type Options struct {
	Plan       models.PricingPlan
	HourlyRate float64 // rider's time value, dollars per hour
	Classifier ClassifierConfig
}

// NormalizeTrip derives every analyzable field for one trip and returns the
// merged patch. It is a deterministic function of (trip, idx, opts): running
// it on a trip that already had its patch applied produces an identical
// patch, so re-normalization is always safe.
//
// Malformed records (no start timestamp, negative duration, end before
// start) return a MalformedInputError. Everything else - unknown stations,
// zero coordinates, empty polylines, missing bike type - has a defined
// fallback and never errors.
func NormalizeTrip(trip models.Trip, idx *stations.Index, opts Options) (models.TripPatch, error) {
	duration, err := tripDuration(trip)
	if err != nil {
		return models.TripPatch{}, err
	}

	// Step 1: station resolution on both ends.
	start := idx.Resolve(trip.StartStationName, trip.StartStationID, trip.StartLat, trip.StartLon)
	end := idx.Resolve(trip.EndStationName, trip.EndStationID, trip.EndLat, trip.EndLon)

	// Step 2: best-available distance.
	distance, hasActual := tripDistance(trip, start, end)

	// Steps 3-6: classification, cost, transit comparison, suitability.
	category := Classify(distance, duration, trip.StartTimeMs, opts.Classifier)
	cost := pricing.TripCost(trip.BikeType, duration, opts.Plan)
	transit := EstimateTransit(distance, opts.Plan)
	score, mode := ScoreSuitability(SuitabilityInput{
		DistanceMeters:  distance,
		DurationSeconds: duration,
		BikeType:        trip.BikeType,
		CostCents:       cost,
		Transit:         transit,
		HourlyRate:      opts.HourlyRate,
	}, opts.Plan)

	return models.TripPatch{
		StartStationName: start.Name,
		StartLat:         start.Lat,
		StartLon:         start.Lon,
		StartResolved:    start.Resolved,
		EndStationName:   end.Name,
		EndLat:           end.Lat,
		EndLon:           end.Lon,
		EndResolved:      end.Resolved,

		DistanceMeters:       distance,
		HasActualCoordinates: hasActual,

		DistanceBucket: category.DistanceBucket,
		DurationBucket: category.DurationBucket,
		TimeOfDay:      category.TimeOfDay,

		CostCents:              cost,
		TransitDurationSeconds: transit.DurationSeconds,
		TransitCostCents:       transit.CostCents,
		SuitabilityScore:       score,
		RecommendedMode:        mode,

		Normalized: true,
	}, nil
}

func tripDuration(trip models.Trip) (int64, error) {
	if trip.StartTimeMs <= 0 {
		return 0, &MalformedInputError{Field: "start_time_ms", Reason: "is missing"}
	}
	if trip.DurationSeconds < 0 {
		return 0, &MalformedInputError{Field: "duration_seconds", Reason: "is negative"}
	}
	if trip.DurationSeconds > 0 {
		return trip.DurationSeconds, nil
	}
	if trip.EndTimeMs > 0 {
		if trip.EndTimeMs < trip.StartTimeMs {
			return 0, &MalformedInputError{Field: "end_time_ms", Reason: "precedes start"}
		}
		return (trip.EndTimeMs - trip.StartTimeMs) / 1000, nil
	}
	return 0, nil
}

// tripDistance prefers a decoded polyline path, then the great-circle
// distance between resolved coordinates, then any reported raw distance,
// then zero. hasActualCoordinates is true only when real coordinates backed
// the figure.
func tripDistance(trip models.Trip, start, end stations.Resolution) (float64, bool) {
	if points := geo.DecodePolyline(trip.Polyline); len(points) >= 2 {
		return geo.PathMeters(points), true
	}
	if (start.Lat != 0 || start.Lon != 0) && (end.Lat != 0 || end.Lon != 0) {
		return geo.HaversineMeters(start.Lat, start.Lon, end.Lat, end.Lon), true
	}
	if trip.ReportedDistanceM > 0 {
		return trip.ReportedDistanceM, false
	}
	return 0, false
}
