package database

import (
	"database/sql"
	"fmt"
	"log"
)

// migrations are applied in order; each version runs at most once.
var migrations = []struct {
	version int
	name    string
	sql     string
}{
	{
		version: 1,
		name:    "create_trips",
		sql: `
			CREATE TABLE IF NOT EXISTS trips (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				provider_trip_id TEXT NOT NULL,
				source TEXT NOT NULL,

				start_time_ms INTEGER NOT NULL,
				end_time_ms INTEGER NOT NULL DEFAULT 0,
				duration_seconds INTEGER NOT NULL DEFAULT 0,

				start_station_id TEXT NOT NULL DEFAULT '',
				start_station_name TEXT NOT NULL DEFAULT '',
				start_lat REAL NOT NULL DEFAULT 0,
				start_lon REAL NOT NULL DEFAULT 0,
				end_station_id TEXT NOT NULL DEFAULT '',
				end_station_name TEXT NOT NULL DEFAULT '',
				end_lat REAL NOT NULL DEFAULT 0,
				end_lon REAL NOT NULL DEFAULT 0,

				bike_type TEXT NOT NULL DEFAULT '',
				polyline TEXT NOT NULL DEFAULT '',
				reported_distance_m REAL NOT NULL DEFAULT 0,
				dataset_month TEXT NOT NULL DEFAULT '',
				rider_category TEXT NOT NULL DEFAULT '',

				distance_meters REAL NOT NULL DEFAULT 0,
				has_actual_coordinates INTEGER NOT NULL DEFAULT 0,
				start_resolved INTEGER NOT NULL DEFAULT 0,
				end_resolved INTEGER NOT NULL DEFAULT 0,
				distance_bucket TEXT NOT NULL DEFAULT '',
				duration_bucket TEXT NOT NULL DEFAULT '',
				time_of_day TEXT NOT NULL DEFAULT '',
				cost_cents INTEGER,
				transit_duration_seconds INTEGER NOT NULL DEFAULT 0,
				transit_cost_cents INTEGER NOT NULL DEFAULT 0,
				suitability_score INTEGER NOT NULL DEFAULT 0,
				recommended_mode TEXT NOT NULL DEFAULT '',
				normalized INTEGER NOT NULL DEFAULT 0,

				details_fetch_attempts INTEGER NOT NULL DEFAULT 0,
				details_fetch_error TEXT NOT NULL DEFAULT '',
				details_fetched_at_ms INTEGER NOT NULL DEFAULT 0,
				normalize_error TEXT NOT NULL DEFAULT '',

				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

				UNIQUE(user_id, provider_trip_id)
			)
		`,
	},
	{
		version: 2,
		name:    "trips_indexes",
		sql: `
			CREATE INDEX IF NOT EXISTS idx_trips_user_normalized
				ON trips(user_id, normalized);
			CREATE INDEX IF NOT EXISTS idx_trips_user_start_time
				ON trips(user_id, start_time_ms);
		`,
	},
}

// Migrate brings the schema up to date.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		log.Printf("[Database] Applied migration %d: %s", m.version, m.name)
	}

	return nil
}
