package service

import (
	"context"
	"fmt"
	"log"
	gosync "sync"
	"time"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
	"github.com/VirenMohindra/citibike-sub002/internal/normalize"
	"github.com/VirenMohindra/citibike-sub002/internal/repository"
)

// Batch sizing: small enough to bound memory and report progress, large
// enough that per-batch transaction overhead stays negligible.
const (
	defaultBatchSize  = 100
	defaultBatchPause = 10 * time.Millisecond
)

// NormalizeResult summarizes one normalization run.
type NormalizeResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// NormalizeRunner drives batch normalization over a user's unnormalized
// trips. The normalization core itself is pure; the runner owns all the
// I/O around it: reading batches, applying patches transactionally, and
// recording per-record failures without halting the batch.
type NormalizeRunner struct {
	repo       *repository.TripRepository
	stationSvc *StationService
	opts       normalize.Options
	batchSize  int
	batchPause time.Duration

	planWarnOnce gosync.Once
}

// NewNormalizeRunner creates a runner with the given normalization options.
func NewNormalizeRunner(repo *repository.TripRepository, stationSvc *StationService, opts normalize.Options) *NormalizeRunner {
	return &NormalizeRunner{
		repo:       repo,
		stationSvc: stationSvc,
		opts:       opts,
		batchSize:  defaultBatchSize,
		batchPause: defaultBatchPause,
	}
}

// Run normalizes every pending trip for a user in fixed-size batches, one
// storage transaction per batch, pausing between batches so the process
// stays responsive. A per-record failure marks that record and moves on;
// stopping mid-run loses nothing because normalization is idempotent.
func (r *NormalizeRunner) Run(ctx context.Context, userID string, hourlyRate float64) (NormalizeResult, error) {
	var result NormalizeResult

	opts := r.opts
	if hourlyRate > 0 {
		opts.HourlyRate = hourlyRate
	}
	if err := opts.Plan.Validate(); err != nil {
		r.planWarnOnce.Do(func() {
			log.Printf("[NormalizeRunner] Warning: pricing plan incomplete (%v); trips will be treated as free", err)
		})
	}

	idx, err := r.stationSvc.Index(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load station index: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := r.repo.GetUnnormalized(userID, r.batchSize)
		if err != nil {
			return result, err
		}
		if len(batch) == 0 {
			break
		}

		patches := make(map[int64]models.TripPatch, len(batch))
		failures := make(map[int64]string)
		for _, trip := range batch {
			patch, err := normalize.NormalizeTrip(trip, idx, opts)
			if err != nil {
				// Fatal for this record only; the marker keeps it out of
				// future batches until the raw data is corrected upstream.
				failures[trip.ID] = err.Error()
				if !normalize.IsMalformedInput(err) {
					log.Printf("[NormalizeRunner] Unexpected error on trip %d: %v", trip.ID, err)
				}
				continue
			}
			patches[trip.ID] = patch
		}

		if err := r.repo.ApplyPatches(patches, failures); err != nil {
			return result, fmt.Errorf("failed to apply batch: %w", err)
		}

		result.Processed += len(batch)
		result.Succeeded += len(patches)
		result.Failed += len(failures)
		log.Printf("[NormalizeRunner] Batch done for %s: %d normalized, %d failed (%d total)",
			userID, len(patches), len(failures), result.Processed)

		// Cooperative pause between batches.
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(r.batchPause):
		}
	}

	remaining, err := r.repo.CountUnnormalized(userID)
	if err == nil {
		result.Remaining = int(remaining)
	}
	return result, nil
}
