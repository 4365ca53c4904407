package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// ItineraryRepository handles database operations for itineraries
type ItineraryRepository struct {
	db *sql.DB
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db *sql.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Create inserts a new itinerary
func (r *ItineraryRepository) Create(it *models.Itinerary) error {
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now

	query := `
		INSERT INTO itineraries (id, name, description, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		it.ID, it.Name, it.Description, it.StartDate, it.EndDate, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return nil
}

// GetByID retrieves an itinerary by ID, or nil when absent
func (r *ItineraryRepository) GetByID(id string) (*models.Itinerary, error) {
	query := `
		SELECT id, name, description, start_date, end_date, created_at, updated_at
		FROM itineraries
		WHERE id = ?
	`
	var it models.Itinerary
	err := r.db.QueryRow(query, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.StartDate, &it.EndDate,
		&it.CreatedAt, &it.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query itinerary: %w", err)
	}
	return &it, nil
}

// Touch updates the itinerary's updated_at timestamp
func (r *ItineraryRepository) Touch(id string) error {
	_, err := r.db.Exec(`UPDATE itineraries SET updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to touch itinerary: %w", err)
	}
	return nil
}

// List retrieves itineraries ordered by creation time, newest first
func (r *ItineraryRepository) List(limit, offset int) ([]models.Itinerary, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, description, start_date, end_date, created_at, updated_at
		FROM itineraries
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	var items []models.Itinerary
	for rows.Next() {
		var it models.Itinerary
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.StartDate,
			&it.EndDate, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
