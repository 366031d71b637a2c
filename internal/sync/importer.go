package sync

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// datasetRecord mirrors the JSON produced by the offline conversion of the
// provider's published monthly trip CSVs.
type datasetRecord struct {
	RideID           string  `json:"ride_id"`
	RideableType     string  `json:"rideable_type"`
	StartedAt        string  `json:"started_at"` // RFC 3339
	EndedAt          string  `json:"ended_at"`
	StartStationID   string  `json:"start_station_id"`
	StartStationName string  `json:"start_station_name"`
	StartLat         float64 `json:"start_lat"`
	StartLng         float64 `json:"start_lng"`
	EndStationID     string  `json:"end_station_id"`
	EndStationName   string  `json:"end_station_name"`
	EndLat           float64 `json:"end_lat"`
	EndLng           float64 `json:"end_lng"`
	MemberCasual     string  `json:"member_casual"`
	DatasetMonth     string  `json:"dataset_month"` // YYYY-MM
}

// ParseDataset decodes a bulk public dataset (a JSON array of trip records)
// into trip records for the given user. Records without a ride id or start
// time are skipped and counted, not fatal.
func ParseDataset(r io.Reader, userID string) ([]models.Trip, int, error) {
	var records []datasetRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode dataset: %w", err)
	}

	trips := make([]models.Trip, 0, len(records))
	skipped := 0
	for _, rec := range records {
		t, ok := datasetToTrip(rec, userID)
		if !ok {
			skipped++
			continue
		}
		trips = append(trips, t)
	}
	return trips, skipped, nil
}

func datasetToTrip(rec datasetRecord, userID string) (models.Trip, bool) {
	if rec.RideID == "" {
		return models.Trip{}, false
	}
	started, err := time.Parse(time.RFC3339, rec.StartedAt)
	if err != nil {
		return models.Trip{}, false
	}

	t := models.Trip{
		UserID:           userID,
		ProviderTripID:   rec.RideID,
		Source:           models.SourceDataset,
		StartTimeMs:      started.UnixMilli(),
		StartStationID:   rec.StartStationID,
		StartStationName: rec.StartStationName,
		StartLat:         rec.StartLat,
		StartLon:         rec.StartLng,
		EndStationID:     rec.EndStationID,
		EndStationName:   rec.EndStationName,
		EndLat:           rec.EndLat,
		EndLon:           rec.EndLng,
		BikeType:         bikeType(rec.RideableType),
		DatasetMonth:     rec.DatasetMonth,
		RiderCategory:    rec.MemberCasual,
	}
	if ended, err := time.Parse(time.RFC3339, rec.EndedAt); err == nil && ended.After(started) {
		t.EndTimeMs = ended.UnixMilli()
		t.DurationSeconds = int64(ended.Sub(started).Seconds())
	}
	if t.StartStationName == "" {
		t.StartStationName = models.UnknownStationName
	}
	if t.EndStationName == "" {
		t.EndStationName = models.UnknownStationName
	}
	return t, true
}
