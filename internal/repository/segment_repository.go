package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// SegmentRepository handles database operations for itinerary segments
type SegmentRepository struct {
	db *sql.DB
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// Create inserts a new segment
func (r *SegmentRepository) Create(seg *models.Segment) error {
	now := time.Now().UTC()
	seg.CreatedAt = now
	seg.UpdatedAt = now

	originJSON, err := marshalLocation(seg.Origin)
	if err != nil {
		return err
	}
	destJSON, err := marshalLocation(seg.Destination)
	if err != nil {
		return err
	}
	pickupJSON, err := marshalLocation(seg.Pickup)
	if err != nil {
		return err
	}
	dropoffJSON, err := marshalLocation(seg.Dropoff)
	if err != nil {
		return err
	}
	locationJSON, err := marshalLocation(seg.Location)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO segments (
			id, itinerary_id, type, name, start_time, end_time, status,
			inferred, inferred_reason, source_confidence, source_mode,
			origin_json, destination_json, pickup_json, dropoff_json, location_json,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		seg.ID, seg.ItineraryID, seg.Type, seg.Name, seg.StartTime, seg.EndTime, seg.Status,
		seg.Inferred, seg.InferredReason, seg.Source.Confidence, seg.Source.Mode,
		originJSON, destJSON, pickupJSON, dropoffJSON, locationJSON,
		seg.CreatedAt, seg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert segment: %w", err)
	}
	return nil
}

// ListByItinerary retrieves all segments of an itinerary ordered by start time
func (r *SegmentRepository) ListByItinerary(itineraryID string) ([]models.Segment, error) {
	query := `
		SELECT id, itinerary_id, type, name, start_time, end_time, status,
		       inferred, inferred_reason, source_confidence, source_mode,
		       origin_json, destination_json, pickup_json, dropoff_json, location_json,
		       created_at, updated_at
		FROM segments
		WHERE itinerary_id = ?
		ORDER BY start_time ASC
	`
	rows, err := r.db.Query(query, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *seg)
	}
	return segments, rows.Err()
}

// ReplaceForItinerary replaces the itinerary's segment set atomically.
// Used when persisting a normalized sequence: inserted placeholders become
// ordinary segments, distinguishable only by their inferred flag.
func (r *SegmentRepository) ReplaceForItinerary(itineraryID string, segments []models.Segment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM segments WHERE itinerary_id = ?`, itineraryID); err != nil {
		return fmt.Errorf("failed to clear segments: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO segments (
			id, itinerary_id, type, name, start_time, end_time, status,
			inferred, inferred_reason, source_confidence, source_mode,
			origin_json, destination_json, pickup_json, dropoff_json, location_json,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range segments {
		seg := &segments[i]
		seg.ItineraryID = itineraryID
		if seg.CreatedAt.IsZero() {
			seg.CreatedAt = now
		}
		seg.UpdatedAt = now

		originJSON, err := marshalLocation(seg.Origin)
		if err != nil {
			return err
		}
		destJSON, err := marshalLocation(seg.Destination)
		if err != nil {
			return err
		}
		pickupJSON, err := marshalLocation(seg.Pickup)
		if err != nil {
			return err
		}
		dropoffJSON, err := marshalLocation(seg.Dropoff)
		if err != nil {
			return err
		}
		locationJSON, err := marshalLocation(seg.Location)
		if err != nil {
			return err
		}

		if _, err := stmt.Exec(
			seg.ID, seg.ItineraryID, seg.Type, seg.Name, seg.StartTime, seg.EndTime, seg.Status,
			seg.Inferred, seg.InferredReason, seg.Source.Confidence, seg.Source.Mode,
			originJSON, destJSON, pickupJSON, dropoffJSON, locationJSON,
			seg.CreatedAt, seg.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert segment %s: %w", seg.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segment replacement: %w", err)
	}
	return nil
}

// scanSegment reads one segment row
func scanSegment(rows *sql.Rows) (*models.Segment, error) {
	var seg models.Segment
	var originJSON, destJSON, pickupJSON, dropoffJSON, locationJSON sql.NullString

	if err := rows.Scan(
		&seg.ID, &seg.ItineraryID, &seg.Type, &seg.Name, &seg.StartTime, &seg.EndTime, &seg.Status,
		&seg.Inferred, &seg.InferredReason, &seg.Source.Confidence, &seg.Source.Mode,
		&originJSON, &destJSON, &pickupJSON, &dropoffJSON, &locationJSON,
		&seg.CreatedAt, &seg.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan segment: %w", err)
	}

	var err error
	if seg.Origin, err = unmarshalLocation(originJSON); err != nil {
		return nil, err
	}
	if seg.Destination, err = unmarshalLocation(destJSON); err != nil {
		return nil, err
	}
	if seg.Pickup, err = unmarshalLocation(pickupJSON); err != nil {
		return nil, err
	}
	if seg.Dropoff, err = unmarshalLocation(dropoffJSON); err != nil {
		return nil, err
	}
	if seg.Location, err = unmarshalLocation(locationJSON); err != nil {
		return nil, err
	}

	return &seg, nil
}

func marshalLocation(loc *models.Location) (any, error) {
	if loc == nil {
		return nil, nil
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal location: %w", err)
	}
	return string(data), nil
}

func unmarshalLocation(raw sql.NullString) (*models.Location, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var loc models.Location
	if err := json.Unmarshal([]byte(raw.String), &loc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location: %w", err)
	}
	return &loc, nil
}
