package database

import (
	"database/sql"
	"fmt"
	"log"
)

// schema holds the table definitions applied at startup. Locations are
// stored as JSON blobs; the engine treats them as opaque value types and
// nothing queries inside them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS itineraries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS segments (
		id TEXT PRIMARY KEY,
		itinerary_id TEXT NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		status TEXT NOT NULL DEFAULT 'CONFIRMED',
		inferred INTEGER NOT NULL DEFAULT 0,
		inferred_reason TEXT NOT NULL DEFAULT '',
		source_confidence REAL NOT NULL DEFAULT 1.0,
		source_mode TEXT NOT NULL DEFAULT '',
		origin_json TEXT,
		destination_json TEXT,
		pickup_json TEXT,
		dropoff_json TEXT,
		location_json TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_segments_itinerary_start
		ON segments(itinerary_id, start_time)`,
}

// Migrate applies the schema to the given database
func Migrate(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	log.Printf("Database schema up to date (%d statements)", len(schema))
	return nil
}
