package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
	"github.com/VirenMohindra/citibike-sub002/internal/repository"
	"github.com/VirenMohindra/citibike-sub002/internal/sync"
)

// maxSyncPages bounds one account-history sync so a misbehaving upstream
// pagination cursor cannot loop forever.
const maxSyncPages = 200

// TripService handles business logic for trips: queries, bulk dataset
// import, and account-history sync.
type TripService struct {
	repo    *repository.TripRepository
	account *sync.AccountClient
}

// NewTripService creates a new trip service
func NewTripService(repo *repository.TripRepository, account *sync.AccountClient) *TripService {
	return &TripService{repo: repo, account: account}
}

// GetTrips retrieves a user's trips with filtering and pagination.
func (s *TripService) GetTrips(userID string, filter models.TripFilter) ([]models.Trip, int64, error) {
	return s.repo.GetTrips(userID, filter)
}

// GetTripByID retrieves a single trip by ID
func (s *TripService) GetTripByID(id int64) (*models.Trip, error) {
	return s.repo.GetTripByID(id)
}

// ImportDataset ingests a bulk public dataset for a user. Already-imported
// rides are skipped by the unique (user, provider trip id) constraint, so
// re-importing a month is harmless.
func (s *TripService) ImportDataset(r io.Reader, userID string) (inserted, skipped int, err error) {
	trips, skipped, err := sync.ParseDataset(r, userID)
	if err != nil {
		return 0, 0, err
	}
	inserted, err = s.repo.InsertTrips(trips)
	if err != nil {
		return 0, 0, err
	}
	log.Printf("[TripService] Dataset import for %s: %d parsed, %d inserted, %d skipped",
		userID, len(trips), inserted, skipped)
	return inserted, skipped, nil
}

// SyncAccount pulls the rider's full ride history from the provider using
// the supplied bearer credential and stores any rides not yet present.
func (s *TripService) SyncAccount(ctx context.Context, bearer, userID string) (int, error) {
	if s.account == nil {
		return 0, fmt.Errorf("account sync is not configured")
	}

	total := 0
	for page := 1; page <= maxSyncPages; page++ {
		trips, hasMore, err := s.account.FetchRides(ctx, bearer, userID, page)
		if err != nil {
			return total, fmt.Errorf("sync stopped at page %d: %w", page, err)
		}
		inserted, err := s.repo.InsertTrips(trips)
		if err != nil {
			return total, err
		}
		total += inserted
		if !hasMore {
			break
		}

		// Be a polite API citizen between pages.
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	log.Printf("[TripService] Account sync for %s inserted %d new trips", userID, total)
	return total, nil
}
