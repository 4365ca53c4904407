package models

import "time"

// Itinerary groups a chronologically ordered set of segments
type Itinerary struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`

	StartDate string `json:"start_date,omitempty" db:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty" db:"end_date"`     // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ItineraryWithSegments is the API shape of an itinerary plus its ordered timeline
type ItineraryWithSegments struct {
	Itinerary
	Segments []Segment `json:"segments"`
}
