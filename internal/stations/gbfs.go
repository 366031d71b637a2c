package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// gbfsStationInfoResponse mirrors the GBFS station_information feed shape.
type gbfsStationInfoResponse struct {
	Data struct {
		Stations []gbfsStation `json:"stations"`
	} `json:"data"`
	LastUpdated int64 `json:"last_updated"`
}

type gbfsStation struct {
	StationID string  `json:"station_id"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// FeedClient fetches the GBFS station_information feed.
type FeedClient struct {
	url    string
	client *http.Client
}

// NewFeedClient creates a feed client for the given station_information URL.
func NewFeedClient(url string) *FeedClient {
	return &FeedClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchStationIndex downloads the feed and flattens it into minimal station
// records suitable for the resolution index.
func (c *FeedClient) FetchStationIndex(ctx context.Context) ([]models.MinimalStation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build station feed request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch station feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("station feed returned status %d", resp.StatusCode)
	}

	var feed gbfsStationInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode station feed: %w", err)
	}

	list := make([]models.MinimalStation, 0, len(feed.Data.Stations))
	for _, s := range feed.Data.Stations {
		if s.StationID == "" {
			continue
		}
		list = append(list, models.MinimalStation{
			ID:   s.StationID,
			Name: s.Name,
			Lat:  s.Lat,
			Lon:  s.Lon,
		})
	}
	return list, nil
}
