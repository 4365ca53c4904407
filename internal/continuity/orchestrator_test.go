package continuity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

func TestNormalize_IdempotentOnCleanItinerary(t *testing.T) {
	o := NewDefaultOrchestrator()

	carbone := locInCity("Carbone", "New York", "United States")
	segments := []models.Segment{
		activityAt("Matinee", carbone, at(10, 13, 0), at(10, 16, 0)),
		activityAt("Dinner", carbone, at(10, 18, 0), at(10, 20, 0)),
	}

	report := o.Normalize(context.Background(), segments)

	assert.Empty(t, report.GapsDetected)
	assert.Empty(t, report.InsertedSegments)
	assert.Zero(t, report.AutoFixedCount)
	assert.True(t, report.Review.Valid)
	require.Len(t, report.Segments, 2)
	assert.Equal(t, segments, report.Segments)

	// A second pass over the already-clean output changes nothing
	second := o.Normalize(context.Background(), report.Segments)
	assert.Equal(t, report.Segments, second.Segments)
	assert.Empty(t, second.InsertedSegments)
}

func TestNormalize_FillsAirportToHotelGap(t *testing.T) {
	o := NewDefaultOrchestrator()

	flight := flightBetween("AA100",
		locWithCode("San Francisco International", "SFO"),
		locWithCode("John F. Kennedy International Airport", "JFK"),
		at(10, 8, 0), at(10, 14, 0))
	hotel := hotelAt("The Plaza", loc("The Plaza"), at(10, 15, 30), at(12, 11, 0))

	report := o.Normalize(context.Background(), []models.Segment{flight, hotel})

	require.Len(t, report.GapsDetected, 1)
	require.Len(t, report.InsertedSegments, 1)
	require.Len(t, report.Segments, 3)

	inserted := report.Segments[1]
	assert.Equal(t, models.SegmentTransfer, inserted.Type)
	assert.True(t, inserted.Inferred)
	assert.NotEmpty(t, inserted.InferredReason)
	assert.Equal(t, models.StatusTentative, inserted.Status)

	// The merged sequence stays chronologically sorted
	for i := 0; i+1 < len(report.Segments); i++ {
		assert.False(t, report.Segments[i+1].StartTime.Before(report.Segments[i].StartTime))
	}

	// The inserted transfer leaves from the arrival airport, so the
	// semantic reviewer has nothing left to flag as HIGH.
	assert.Zero(t, report.AutoFixedCount)
}

func TestNormalize_SortsUnorderedInput(t *testing.T) {
	o := NewDefaultOrchestrator()

	carbone := locInCity("Carbone", "New York", "United States")
	later := activityAt("Dinner", carbone, at(10, 18, 0), at(10, 20, 0))
	earlier := activityAt("Matinee", carbone, at(10, 13, 0), at(10, 16, 0))

	report := o.Normalize(context.Background(), []models.Segment{later, earlier})
	require.Len(t, report.Segments, 2)
	assert.Equal(t, "Matinee", report.Segments[0].Name)
	assert.Equal(t, "Dinner", report.Segments[1].Name)
}

func TestNormalize_InputSliceNotMutated(t *testing.T) {
	o := NewDefaultOrchestrator()

	flight := flightBetween("AA100",
		locWithCode("San Francisco International", "SFO"),
		locWithCode("John F. Kennedy International Airport", "JFK"),
		at(10, 8, 0), at(10, 14, 0))
	hotel := hotelAt("The Plaza", loc("The Plaza"), at(10, 15, 30), at(12, 11, 0))

	input := []models.Segment{flight, hotel}
	before := make([]models.Segment, len(input))
	copy(before, input)

	_ = o.Normalize(context.Background(), input)
	assert.Equal(t, before, input)
}

func TestNormalize_BridgesHotelToDepartureFlight(t *testing.T) {
	o := NewDefaultOrchestrator()

	// Hotel checkout and a flight out of a different-city airport the same
	// day: detection inserts a connecting segment and review finds nothing
	// left to flag.
	hotel := hotelAt("The Plaza",
		locInCity("The Plaza", "New York", "United States"),
		at(8, 15, 0), at(10, 9, 0))
	flight := flightBetween("AA200",
		locWithCode("John F. Kennedy International Airport", "JFK"),
		locWithCode("San Francisco International", "SFO"),
		at(10, 17, 0), at(10, 23, 0))

	report := o.Normalize(context.Background(), []models.Segment{hotel, flight})

	require.Len(t, report.Segments, 3)
	inserted := report.Segments[1]
	assert.True(t, inserted.Inferred)
	assert.True(t, inserted.StartTime.After(hotel.EndTime) || inserted.StartTime.Equal(hotel.EndTime))
	assert.True(t, inserted.EndTime.Before(flight.StartTime))
	assert.Zero(t, report.AutoFixedCount)
	assert.True(t, report.Review.Valid)
}
