package normalize

import "time"

// Distance buckets (meters). A mile is 1609 m; the buckets are
// under one mile, one to three miles, and beyond.
const (
	DistanceBucketShort  = "short"
	DistanceBucketMedium = "medium"
	DistanceBucketLong   = "long"

	DistanceShortMaxMeters  = 1609.0
	DistanceMediumMaxMeters = 4827.0
)

// Duration buckets (seconds). The middle bucket is inclusive of its upper
// boundary, so a 30-minute ride classifies as "10-30min".
const (
	DurationBucketShort  = "<10min"
	DurationBucketMedium = "10-30min"
	DurationBucketLong   = ">30min"

	DurationShortMaxSeconds  = 600
	DurationMediumMaxSeconds = 1800
)

// Time-of-day buckets over half-open local-hour intervals; night wraps
// through midnight.
const (
	TimeOfDayMorningRush = "morning_rush" // [06:00, 10:00)
	TimeOfDayMidday      = "midday"       // [10:00, 16:00)
	TimeOfDayEveningRush = "evening_rush" // [16:00, 20:00)
	TimeOfDayNight       = "night"        // [20:00, 06:00)

	morningRushStartHour = 6
	middayStartHour      = 10
	eveningRushStartHour = 16
	nightStartHour       = 20
)

// ClassifierConfig pins the local timezone used to bucket start times, so
// results are deterministic regardless of the host zone.
type ClassifierConfig struct {
	Location *time.Location
}

// Category is the distance x duration x time-of-day classification of a trip.
type Category struct {
	DistanceBucket string `json:"distance_bucket"`
	DurationBucket string `json:"duration_bucket"`
	TimeOfDay      string `json:"time_of_day"`
}

// Classify buckets a trip by distance, duration, and local start hour.
func Classify(distanceMeters float64, durationSeconds int64, startMs int64, cfg ClassifierConfig) Category {
	return Category{
		DistanceBucket: distanceBucket(distanceMeters),
		DurationBucket: durationBucket(durationSeconds),
		TimeOfDay:      timeOfDay(startMs, cfg.location()),
	}
}

func (cfg ClassifierConfig) location() *time.Location {
	if cfg.Location != nil {
		return cfg.Location
	}
	return time.Local
}

func distanceBucket(meters float64) string {
	switch {
	case meters < DistanceShortMaxMeters:
		return DistanceBucketShort
	case meters <= DistanceMediumMaxMeters:
		return DistanceBucketMedium
	default:
		return DistanceBucketLong
	}
}

func durationBucket(seconds int64) string {
	switch {
	case seconds < DurationShortMaxSeconds:
		return DurationBucketShort
	case seconds <= DurationMediumMaxSeconds:
		return DurationBucketMedium
	default:
		return DurationBucketLong
	}
}

func timeOfDay(startMs int64, loc *time.Location) string {
	hour := time.UnixMilli(startMs).In(loc).Hour()
	switch {
	case hour >= morningRushStartHour && hour < middayStartHour:
		return TimeOfDayMorningRush
	case hour >= middayStartHour && hour < eveningRushStartHour:
		return TimeOfDayMidday
	case hour >= eveningRushStartHour && hour < nightStartHour:
		return TimeOfDayEveningRush
	default:
		return TimeOfDayNight
	}
}
