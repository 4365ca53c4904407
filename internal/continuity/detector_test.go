package continuity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

func newTestDetector() *ContinuityDetector {
	return NewContinuityDetector(
		NewLocationResolver(),
		NewGapClassifier(NewStaticCountryLookup()),
		DefaultDetectorConfig(),
	)
}

func at(day, hour, min int) time.Time {
	return time.Date(2026, 9, day, hour, min, 0, 0, time.UTC)
}

func activityAt(name string, loc *models.Location, start, end time.Time) models.Segment {
	return models.Segment{
		ID:        name,
		Type:      models.SegmentActivity,
		Name:      name,
		StartTime: start,
		EndTime:   end,
		Location:  loc,
	}
}

func hotelAt(name string, loc *models.Location, start, end time.Time) models.Segment {
	return models.Segment{
		ID:        name,
		Type:      models.SegmentHotel,
		Name:      name,
		StartTime: start,
		EndTime:   end,
		Location:  loc,
	}
}

func flightBetween(name string, origin, dest *models.Location, start, end time.Time) models.Segment {
	return models.Segment{
		ID:          name,
		Type:        models.SegmentFlight,
		Name:        name,
		StartTime:   start,
		EndTime:     end,
		Origin:      origin,
		Destination: dest,
	}
}

func TestDetectGaps_OvernightSuppression(t *testing.T) {
	d := newTestDetector()

	dinner := activityAt("Dinner",
		locInCity("Chez Panisse", "Berkeley", "United States"),
		at(10, 19, 0), at(10, 21, 0))
	lunch := activityAt("Lunch",
		locInCity("Tartine", "San Francisco", "United States"),
		at(11, 12, 0), at(11, 13, 0))

	gaps := d.DetectGaps([]models.Segment{dinner, lunch})
	assert.Empty(t, gaps, "overnight pair should be suppressed")
}

func TestDetectGaps_SameDayLongIdleSuppressed(t *testing.T) {
	d := newTestDetector()

	morning := activityAt("Breakfast",
		locInCity("Cafe A", "Berkeley", "United States"),
		at(10, 7, 0), at(10, 8, 0))
	night := activityAt("Late show",
		locInCity("Theater B", "San Francisco", "United States"),
		at(10, 20, 30), at(10, 22, 0))

	gaps := d.DetectGaps([]models.Segment{morning, night})
	assert.Empty(t, gaps, ">8h same-day idle span should be suppressed")
}

func TestDetectGaps_AirportToHotel(t *testing.T) {
	d := newTestDetector()

	flight := flightBetween("AA100",
		locWithCode("San Francisco International", "SFO"),
		locWithCode("John F. Kennedy International Airport", "JFK"),
		at(10, 8, 0), at(10, 14, 0))
	hotel := hotelAt("The Plaza",
		loc("The Plaza"),
		at(10, 15, 30), at(12, 11, 0))

	gaps := d.DetectGaps([]models.Segment{flight, hotel})
	require.Len(t, gaps, 1)

	gap := gaps[0]
	assert.Equal(t, models.SegmentTransfer, gap.SuggestedType)
	assert.Equal(t, 95, gap.Confidence)
	assert.Equal(t, 0, gap.BeforeIndex)
	assert.Equal(t, 1, gap.AfterIndex)
	assert.NotEmpty(t, gap.Description)
}

func TestDetectGaps_ConfidenceGate(t *testing.T) {
	d := newTestDetector()

	// Two plain activities in different cities score 60 and must not surface
	museum := activityAt("Museum",
		locInCity("Art Institute", "Chicago", "United States"),
		at(10, 10, 0), at(10, 11, 0))
	show := activityAt("Broadway show",
		locInCity("Majestic Theatre", "New York", "United States"),
		at(10, 13, 0), at(10, 15, 0))

	gaps := d.DetectGaps([]models.Segment{museum, show})
	assert.Empty(t, gaps, "confidence 60 is below the gate")
}

func TestDetectGaps_HotelToHotelDomestic(t *testing.T) {
	d := newTestDetector()

	first := hotelAt("The Drake",
		locInCity("The Drake", "Chicago", "United States"),
		at(8, 15, 0), at(10, 11, 0))
	second := hotelAt("The Plaza",
		locInCity("The Plaza", "New York", "United States"),
		at(10, 16, 0), at(12, 11, 0))

	gaps := d.DetectGaps([]models.Segment{first, second})
	require.Len(t, gaps, 1)
	assert.Equal(t, models.GapDomestic, gaps[0].GapType)
	assert.Equal(t, 90, gaps[0].Confidence)
	assert.Equal(t, models.SegmentFlight, gaps[0].SuggestedType)
}

func TestDetectGaps_LocalTransferBetweenVenues(t *testing.T) {
	d := newTestDetector()

	game := activityAt("Ball game",
		locInCity("Fenway Park", "Boston", "United States"),
		at(10, 13, 0), at(10, 16, 0))
	tour := activityAt("Campus tour",
		locInCity("Harvard University", "Boston", "United States"),
		at(10, 17, 0), at(10, 18, 0))

	gaps := d.DetectGaps([]models.Segment{game, tour})
	require.Len(t, gaps, 1)
	assert.Equal(t, models.GapLocalTransfer, gaps[0].GapType)
	assert.Equal(t, 80, gaps[0].Confidence)
	assert.Equal(t, models.SegmentTransfer, gaps[0].SuggestedType)
}

func TestDetectGaps_AlreadyBridgedByTransfer(t *testing.T) {
	d := newTestDetector()

	jfk := locWithCode("JFK Airport", "JFK")
	plaza := locInCity("The Plaza", "New York", "United States")

	transfer := models.Segment{
		ID: "t1", Type: models.SegmentTransfer, Name: "Airport ride",
		StartTime: at(10, 14, 30), EndTime: at(10, 15, 15),
		Pickup: jfk, Dropoff: plaza,
	}
	hotel := hotelAt("The Plaza", plaza, at(10, 15, 30), at(12, 11, 0))

	gaps := d.DetectGaps([]models.Segment{transfer, hotel})
	assert.Empty(t, gaps, "transfer already bridges the transition")
}

func TestDetectGaps_MissingLocationSkipped(t *testing.T) {
	d := newTestDetector()

	unknown := models.Segment{
		ID: "c1", Type: models.SegmentCustom, Name: "Free time",
		StartTime: at(10, 10, 0), EndTime: at(10, 11, 0),
	}
	hotel := hotelAt("The Plaza",
		locInCity("The Plaza", "New York", "United States"),
		at(10, 16, 0), at(12, 11, 0))

	gaps := d.DetectGaps([]models.Segment{unknown, hotel})
	assert.Empty(t, gaps, "pairs without locations carry too little data")
}

func TestDetectGaps_MalformedTimestampsSkipped(t *testing.T) {
	d := newTestDetector()

	broken := models.Segment{
		ID: "b1", Type: models.SegmentActivity, Name: "No times",
		Location: locInCity("Somewhere", "Boston", "United States"),
	}
	tour := activityAt("Campus tour",
		locInCity("Harvard University", "Boston", "United States"),
		at(10, 17, 0), at(10, 18, 0))

	gaps := d.DetectGaps([]models.Segment{broken, tour})
	assert.Empty(t, gaps)
}

func TestDetectGaps_InputNotMutated(t *testing.T) {
	d := newTestDetector()

	segments := []models.Segment{
		hotelAt("The Drake", locInCity("The Drake", "Chicago", "United States"),
			at(8, 15, 0), at(10, 11, 0)),
		hotelAt("The Plaza", locInCity("The Plaza", "New York", "United States"),
			at(10, 16, 0), at(12, 11, 0)),
	}
	before := make([]models.Segment, len(segments))
	copy(before, segments)

	_ = d.DetectGaps(segments)
	assert.Equal(t, before, segments)
}
