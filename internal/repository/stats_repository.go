package repository

import (
	"database/sql"
	"fmt"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// StatsRepository aggregates trip economics straight in SQL.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// SavingsSummary aggregates a user's normalized trips against their estimated
// transit alternatives.
func (r *StatsRepository) SavingsSummary(userID string) (models.SavingsSummary, error) {
	summary := models.SavingsSummary{
		TripsByTimeOfDay:      make(map[string]int64),
		TripsByDistanceBucket: make(map[string]int64),
		TripsByRecommendation: make(map[string]int64),
	}

	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(distance_meters), 0),
			COALESCE(SUM(duration_seconds), 0),
			COALESCE(SUM(COALESCE(cost_cents, 0)), 0),
			COALESCE(SUM(transit_cost_cents), 0),
			COALESCE(SUM(transit_duration_seconds - duration_seconds), 0),
			COALESCE(AVG(suitability_score), 0)
		FROM trips
		WHERE user_id = ? AND normalized = 1
	`, userID).Scan(
		&summary.TripCount,
		&summary.TotalDistanceMeters,
		&summary.TotalDurationSeconds,
		&summary.TotalCostCents,
		&summary.TotalTransitCostCents,
		&summary.TimeSavedSeconds,
		&summary.AverageSuitabilityScore,
	)
	if err != nil {
		return summary, fmt.Errorf("failed to aggregate savings: %w", err)
	}
	summary.CostSavingsCents = summary.TotalTransitCostCents - summary.TotalCostCents

	for _, g := range []struct {
		column string
		into   map[string]int64
	}{
		{"time_of_day", summary.TripsByTimeOfDay},
		{"distance_bucket", summary.TripsByDistanceBucket},
		{"recommended_mode", summary.TripsByRecommendation},
	} {
		if err := r.groupCounts(userID, g.column, g.into); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func (r *StatsRepository) groupCounts(userID, column string, into map[string]int64) error {
	// column comes from a fixed list above, never from user input.
	rows, err := r.db.Query(
		fmt.Sprintf(`
			SELECT %s, COUNT(*) FROM trips
			WHERE user_id = ? AND normalized = 1 AND %s != ''
			GROUP BY %s
		`, column, column, column),
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to group trips by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan %s group: %w", column, err)
		}
		into[key] = count
	}
	return rows.Err()
}
