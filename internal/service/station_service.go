package service

import (
	"context"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
	"github.com/VirenMohindra/citibike-sub002/internal/stations"
)

// StationService serves the station index: fetched from the GBFS feed,
// cached for a day, rebuilt on demand.
type StationService struct {
	feed  *stations.FeedClient
	cache *stations.Cache
}

// NewStationService creates a new station service
func NewStationService(feed *stations.FeedClient, cache *stations.Cache) *StationService {
	return &StationService{feed: feed, cache: cache}
}

// Index returns the resolution index built from the cached station feed.
func (s *StationService) Index(ctx context.Context) (*stations.Index, error) {
	list, err := s.cache.GetOrFetch(ctx, s.feed.FetchStationIndex)
	if err != nil {
		return nil, err
	}
	return stations.NewIndex(list), nil
}

// Stations returns the flattened station list.
func (s *StationService) Stations(ctx context.Context) ([]models.MinimalStation, error) {
	return s.cache.GetOrFetch(ctx, s.feed.FetchStationIndex)
}

// Nearby returns up to limit stations sorted by distance from a point.
func (s *StationService) Nearby(ctx context.Context, lat, lon float64, limit int) ([]models.NearbyStation, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	return idx.NearbyN(lat, lon, limit), nil
}

// Refresh drops the cached feed so the next request refetches it.
func (s *StationService) Refresh(ctx context.Context) {
	s.cache.Invalidate(ctx)
}
