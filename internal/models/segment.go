package models

import "time"

// Segment represents one entry of an itinerary timeline. The Type field
// selects which of the location fields are meaningful:
//
//	FLIGHT              -> Origin, Destination
//	TRANSFER            -> Pickup, Dropoff
//	HOTEL, ACTIVITY,
//	MEETING, CUSTOM     -> Location
type Segment struct {
	ID          string `json:"id" db:"id"`
	ItineraryID string `json:"itinerary_id,omitempty" db:"itinerary_id"`

	Type string `json:"type" db:"type"` // FLIGHT, HOTEL, ACTIVITY, TRANSFER, MEETING, CUSTOM
	Name string `json:"name" db:"name"`

	// Temporal info. EndTime > StartTime is enforced by upstream validation.
	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`

	Status string `json:"status" db:"status"` // CONFIRMED, TENTATIVE, CANCELLED

	// Provenance
	Inferred       bool          `json:"inferred" db:"inferred"`
	InferredReason string        `json:"inferred_reason,omitempty" db:"inferred_reason"`
	Source         SourceDetails `json:"source"`

	// Type-specific locations
	Origin      *Location `json:"origin,omitempty"`      // FLIGHT
	Destination *Location `json:"destination,omitempty"` // FLIGHT
	Pickup      *Location `json:"pickup,omitempty"`      // TRANSFER
	Dropoff     *Location `json:"dropoff,omitempty"`     // TRANSFER
	Location    *Location `json:"location,omitempty"`    // HOTEL, ACTIVITY, MEETING, CUSTOM

	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// SourceDetails records where a segment came from and how much the
// importing pipeline trusted it.
type SourceDetails struct {
	Confidence float64 `json:"confidence" db:"source_confidence"` // 0~1
	Mode       string  `json:"mode,omitempty" db:"source_mode"`   // document, manual, agent, synthesized
}

// Segment type constants
const (
	SegmentFlight   = "FLIGHT"
	SegmentHotel    = "HOTEL"
	SegmentActivity = "ACTIVITY"
	SegmentTransfer = "TRANSFER"
	SegmentMeeting  = "MEETING"
	SegmentCustom   = "CUSTOM"
)

// Segment status constants
const (
	StatusConfirmed = "CONFIRMED"
	StatusTentative = "TENTATIVE"
	StatusCancelled = "CANCELLED"
)

// Source mode constants
const (
	SourceDocument    = "document"
	SourceManual      = "manual"
	SourceAgent       = "agent"
	SourceSynthesized = "synthesized"
)

// StartLocation returns where the traveler is when the segment begins
func (s *Segment) StartLocation() *Location {
	switch s.Type {
	case SegmentFlight:
		return s.Origin
	case SegmentTransfer:
		return s.Pickup
	default:
		return s.Location
	}
}

// EndLocation returns where the traveler is when the segment ends
func (s *Segment) EndLocation() *Location {
	switch s.Type {
	case SegmentFlight:
		return s.Destination
	case SegmentTransfer:
		return s.Dropoff
	default:
		return s.Location
	}
}

// IsConnecting reports whether the segment itself moves the traveler:
// flights and transfers always do, and any other segment whose start and
// end locations are distinct records counts as well.
func (s *Segment) IsConnecting() bool {
	if s.Type == SegmentFlight || s.Type == SegmentTransfer {
		return true
	}
	return s.StartLocation() != s.EndLocation()
}

// InvolvesAirport reports whether the segment touches an airport: every
// flight does, and so does a transfer whose pickup or dropoff carries a
// facility code.
func (s *Segment) InvolvesAirport() bool {
	if s.Type == SegmentFlight {
		return true
	}
	if s.Type == SegmentTransfer {
		return s.Pickup.HasCode() || s.Dropoff.HasCode()
	}
	return false
}

// IsHotel reports whether the segment is lodging
func (s *Segment) IsHotel() bool {
	return s.Type == SegmentHotel
}

// HasValidTimes reports whether both timestamps are present and ordered.
// Malformed segments are skipped from gap analysis with a logged warning.
func (s *Segment) HasValidTimes() bool {
	return !s.StartTime.IsZero() && !s.EndTime.IsZero() && s.EndTime.After(s.StartTime)
}
