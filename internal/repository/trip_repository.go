package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/VirenMohindra/citibike-sub002/internal/database"
	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// tripColumns is the canonical select list; scanTrip must stay in sync.
const tripColumns = `id, user_id, provider_trip_id, source,
	start_time_ms, end_time_ms, duration_seconds,
	start_station_id, start_station_name, start_lat, start_lon,
	end_station_id, end_station_name, end_lat, end_lon,
	bike_type, polyline, reported_distance_m, dataset_month, rider_category,
	distance_meters, has_actual_coordinates, start_resolved, end_resolved,
	distance_bucket, duration_bucket, time_of_day,
	cost_cents, transit_duration_seconds, transit_cost_cents,
	suitability_score, recommended_mode, normalized,
	details_fetch_attempts, details_fetch_error, details_fetched_at_ms, normalize_error,
	created_at, updated_at`

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var t models.Trip
	var cost sql.NullInt64
	err := row.Scan(
		&t.ID, &t.UserID, &t.ProviderTripID, &t.Source,
		&t.StartTimeMs, &t.EndTimeMs, &t.DurationSeconds,
		&t.StartStationID, &t.StartStationName, &t.StartLat, &t.StartLon,
		&t.EndStationID, &t.EndStationName, &t.EndLat, &t.EndLon,
		&t.BikeType, &t.Polyline, &t.ReportedDistanceM, &t.DatasetMonth, &t.RiderCategory,
		&t.DistanceMeters, &t.HasActualCoordinates, &t.StartResolved, &t.EndResolved,
		&t.DistanceBucket, &t.DurationBucket, &t.TimeOfDay,
		&cost, &t.TransitDurationSeconds, &t.TransitCostCents,
		&t.SuitabilityScore, &t.RecommendedMode, &t.Normalized,
		&t.DetailsFetchAttempts, &t.DetailsFetchError, &t.DetailsFetchedAtMs, &t.NormalizeError,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	if cost.Valid {
		v := cost.Int64
		t.CostCents = &v
	}
	return t, nil
}

// InsertTrips inserts raw trip records, skipping ones already present for the
// same user and provider trip id so that re-running an import or sync is
// harmless. Returns the number of newly inserted rows.
func (r *TripRepository) InsertTrips(trips []models.Trip) (int, error) {
	if len(trips) == 0 {
		return 0, nil
	}

	inserted := 0
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR IGNORE INTO trips (
				user_id, provider_trip_id, source,
				start_time_ms, end_time_ms, duration_seconds,
				start_station_id, start_station_name, start_lat, start_lon,
				end_station_id, end_station_name, end_lat, end_lon,
				bike_type, polyline, reported_distance_m, dataset_month, rider_category
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, t := range trips {
			res, err := stmt.Exec(
				t.UserID, t.ProviderTripID, t.Source,
				t.StartTimeMs, t.EndTimeMs, t.DurationSeconds,
				t.StartStationID, t.StartStationName, t.StartLat, t.StartLon,
				t.EndStationID, t.EndStationName, t.EndLat, t.EndLon,
				t.BikeType, t.Polyline, t.ReportedDistanceM, t.DatasetMonth, t.RiderCategory,
			)
			if err != nil {
				return fmt.Errorf("failed to insert trip %s: %w", t.ProviderTripID, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetTrips retrieves a user's trips with filtering and pagination.
func (r *TripRepository) GetTrips(userID string, filter models.TripFilter) ([]models.Trip, int64, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.StartTime > 0 {
		conditions = append(conditions, "start_time_ms >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "start_time_ms <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.BikeType != "" {
		conditions = append(conditions, "bike_type = ?")
		args = append(args, filter.BikeType)
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.DistanceBucket != "" {
		conditions = append(conditions, "distance_bucket = ?")
		args = append(args, filter.DistanceBucket)
	}
	if filter.TimeOfDay != "" {
		conditions = append(conditions, "time_of_day = ?")
		args = append(args, filter.TimeOfDay)
	}
	switch filter.Normalized {
	case "true":
		conditions = append(conditions, "normalized = 1")
	case "false":
		conditions = append(conditions, "normalized = 0")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM trips"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + tripColumns + " FROM trips" + where +
		" ORDER BY start_time_ms DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read trips: %w", err)
	}

	return trips, total, nil
}

// GetTripByID retrieves a single trip by ID, nil when absent.
func (r *TripRepository) GetTripByID(id int64) (*models.Trip, error) {
	row := r.db.QueryRow("SELECT "+tripColumns+" FROM trips WHERE id = ?", id)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &t, nil
}

// GetUnnormalized returns up to limit of a user's trips that still need
// normalization, oldest first so resumption is deterministic.
func (r *TripRepository) GetUnnormalized(userID string, limit int) ([]models.Trip, error) {
	rows, err := r.db.Query(
		"SELECT "+tripColumns+" FROM trips WHERE user_id = ? AND normalized = 0 AND normalize_error = '' ORDER BY id LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query unnormalized trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// CountUnnormalized counts a user's trips still awaiting normalization.
func (r *TripRepository) CountUnnormalized(userID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM trips WHERE user_id = ? AND normalized = 0 AND normalize_error = ''",
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count unnormalized trips: %w", err)
	}
	return n, nil
}

// ApplyPatches writes one batch of normalization results in a single
// transaction: derived fields for the trips that normalized, error markers
// for the ones that did not. A crash mid-batch rolls the whole batch back and
// leaves it safely re-runnable.
func (r *TripRepository) ApplyPatches(patches map[int64]models.TripPatch, failures map[int64]string) error {
	if len(patches) == 0 && len(failures) == 0 {
		return nil
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			UPDATE trips SET
				start_station_name = ?, start_lat = ?, start_lon = ?, start_resolved = ?,
				end_station_name = ?, end_lat = ?, end_lon = ?, end_resolved = ?,
				distance_meters = ?, has_actual_coordinates = ?,
				distance_bucket = ?, duration_bucket = ?, time_of_day = ?,
				cost_cents = ?, transit_duration_seconds = ?, transit_cost_cents = ?,
				suitability_score = ?, recommended_mode = ?, normalized = ?,
				normalize_error = '', updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare patch update: %w", err)
		}
		defer stmt.Close()

		for id, p := range patches {
			var cost interface{}
			if p.CostCents != nil {
				cost = *p.CostCents
			}
			if _, err := stmt.Exec(
				p.StartStationName, p.StartLat, p.StartLon, p.StartResolved,
				p.EndStationName, p.EndLat, p.EndLon, p.EndResolved,
				p.DistanceMeters, p.HasActualCoordinates,
				p.DistanceBucket, p.DurationBucket, p.TimeOfDay,
				cost, p.TransitDurationSeconds, p.TransitCostCents,
				p.SuitabilityScore, p.RecommendedMode, p.Normalized,
				id,
			); err != nil {
				return fmt.Errorf("failed to apply patch to trip %d: %w", id, err)
			}
		}

		for id, msg := range failures {
			if _, err := tx.Exec(
				"UPDATE trips SET normalize_error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
				msg, id,
			); err != nil {
				return fmt.Errorf("failed to record failure for trip %d: %w", id, err)
			}
		}
		return nil
	})
}

// RecordFetchAttempt updates the sync pipeline's retry bookkeeping for one
// trip record.
func (r *TripRepository) RecordFetchAttempt(id int64, fetchErr string, fetchedAtMs int64) error {
	_, err := r.db.Exec(`
		UPDATE trips SET
			details_fetch_attempts = details_fetch_attempts + 1,
			details_fetch_error = ?,
			details_fetched_at_ms = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, fetchErr, fetchedAtMs, id)
	if err != nil {
		return fmt.Errorf("failed to record fetch attempt: %w", err)
	}
	return nil
}
