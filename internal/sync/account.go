// Package sync feeds raw trip records into storage: paginated history from
// the rider's linked provider account, or bulk public trip datasets. It only
// produces RawTrip-shaped records; normalization is a separate pass.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// providerRide mirrors the provider's ride-history payload field names.
type providerRide struct {
	RideID           string  `json:"ride_id"`
	StartedAtMs      int64   `json:"started_at"`
	EndedAtMs        int64   `json:"ended_at"`
	StartStationID   string  `json:"start_station_id"`
	StartStationName string  `json:"start_station_name"`
	StartLat         float64 `json:"start_lat"`
	StartLng         float64 `json:"start_lng"`
	EndStationID     string  `json:"end_station_id"`
	EndStationName   string  `json:"end_station_name"`
	EndLat           float64 `json:"end_lat"`
	EndLng           float64 `json:"end_lng"`
	RideableType     string  `json:"rideable_type"` // classic_bike, electric_bike
	RoutePolyline    string  `json:"route_polyline"`
	DistanceMeters   float64 `json:"distance_m"`
}

type rideHistoryPage struct {
	Rides   []providerRide `json:"rides"`
	HasMore bool           `json:"has_more"`
}

// AccountClient fetches ride history for a linked account. Authentication is
// the caller's problem: it hands over a valid bearer credential, nothing
// more.
type AccountClient struct {
	baseURL string
	client  *http.Client
}

// NewAccountClient creates a client for the provider's ride-history endpoint.
func NewAccountClient(baseURL string) *AccountClient {
	return &AccountClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchRides fetches one page of ride history and translates it into trip
// records for the given user. Returns the records and whether more pages
// remain.
func (c *AccountClient) FetchRides(ctx context.Context, bearer, userID string, page int) ([]models.Trip, bool, error) {
	url := fmt.Sprintf("%s/rides?page=%d", c.baseURL, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build ride history request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch ride history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, false, fmt.Errorf("ride history rate limited (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("ride history returned status %d", resp.StatusCode)
	}

	var pageData rideHistoryPage
	if err := json.NewDecoder(resp.Body).Decode(&pageData); err != nil {
		return nil, false, fmt.Errorf("failed to decode ride history: %w", err)
	}

	trips := make([]models.Trip, 0, len(pageData.Rides))
	for _, ride := range pageData.Rides {
		trips = append(trips, rideToTrip(ride, userID))
	}
	return trips, pageData.HasMore, nil
}

func rideToTrip(ride providerRide, userID string) models.Trip {
	t := models.Trip{
		UserID:            userID,
		ProviderTripID:    ride.RideID,
		Source:            models.SourceAccount,
		StartTimeMs:       ride.StartedAtMs,
		EndTimeMs:         ride.EndedAtMs,
		StartStationID:    ride.StartStationID,
		StartStationName:  ride.StartStationName,
		StartLat:          ride.StartLat,
		StartLon:          ride.StartLng,
		EndStationID:      ride.EndStationID,
		EndStationName:    ride.EndStationName,
		EndLat:            ride.EndLat,
		EndLon:            ride.EndLng,
		BikeType:          bikeType(ride.RideableType),
		Polyline:          ride.RoutePolyline,
		ReportedDistanceM: ride.DistanceMeters,
	}
	if t.EndTimeMs > t.StartTimeMs {
		t.DurationSeconds = (t.EndTimeMs - t.StartTimeMs) / 1000
	}
	if t.StartStationName == "" {
		t.StartStationName = models.UnknownStationName
	}
	if t.EndStationName == "" {
		t.EndStationName = models.UnknownStationName
	}
	return t
}

func bikeType(rideable string) string {
	switch rideable {
	case "electric_bike", "ebike":
		return models.BikeTypeEbike
	case "classic_bike", "classic", "docked_bike":
		return models.BikeTypeClassic
	default:
		return ""
	}
}
