package continuity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/itinerary-backend-go/internal/capability"
	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// stubSearchProvider returns a canned result or error
type stubSearchProvider struct {
	result *capability.SearchResult
	err    error
	calls  int
}

func (s *stubSearchProvider) Search(_ context.Context, _ *models.LocationGap, _ capability.SearchPreferences) (*capability.SearchResult, error) {
	s.calls++
	return s.result, s.err
}

func newTestResolver(searches capability.SearchRegistry) *GapResolver {
	return NewGapResolver(searches, capability.NewHeuristicDurationInferrer(), nil, DefaultResolverConfig())
}

func transferGap(beforeEnd, afterStart time.Time) models.LocationGap {
	before := activityAt("Ball game",
		locInCity("Fenway Park", "Boston", "United States"),
		beforeEnd.Add(-2*time.Hour), beforeEnd)
	after := activityAt("Campus tour",
		locInCity("Harvard University", "Boston", "United States"),
		afterStart, afterStart.Add(time.Hour))

	return models.LocationGap{
		BeforeIndex:   0,
		AfterIndex:    1,
		BeforeSegment: &before,
		AfterSegment:  &after,
		EndLocation:   before.Location,
		StartLocation: after.Location,
		GapType:       models.GapLocalTransfer,
		Confidence:    80,
		Description:   "local transfer needed in Boston",
		SuggestedType: models.SegmentTransfer,
	}
}

func flightGap(beforeEnd, afterStart time.Time) models.LocationGap {
	before := hotelAt("The Drake",
		locInCity("The Drake", "Chicago", "United States"),
		beforeEnd.Add(-24*time.Hour), beforeEnd)
	after := hotelAt("The Plaza",
		locInCity("The Plaza", "New York", "United States"),
		afterStart, afterStart.Add(24*time.Hour))

	return models.LocationGap{
		BeforeIndex:   0,
		AfterIndex:    1,
		BeforeSegment: &before,
		AfterSegment:  &after,
		EndLocation:   before.Location,
		StartLocation: after.Location,
		GapType:       models.GapDomestic,
		Confidence:    90,
		Description:   "domestic travel gap between Chicago and New York",
		SuggestedType: models.SegmentFlight,
	}
}

func TestResolve_SynthesizedTransferTiming(t *testing.T) {
	r := newTestResolver(nil)

	gap := transferGap(at(10, 16, 0), at(10, 18, 0))
	seg, warnings := r.Resolve(context.Background(), &gap)

	assert.Empty(t, warnings)
	assert.Equal(t, models.SegmentTransfer, seg.Type)
	assert.Equal(t, at(10, 16, 15), seg.StartTime, "transfer starts 15 minutes after the prior segment")
	assert.True(t, seg.EndTime.After(seg.StartTime))
	assert.True(t, seg.EndTime.Before(gap.AfterSegment.StartTime))
	assert.True(t, seg.Inferred)
	assert.Equal(t, gap.Description, seg.InferredReason)
	assert.Equal(t, models.StatusTentative, seg.Status)
	assert.Equal(t, models.SourceSynthesized, seg.Source.Mode)
	assert.InDelta(t, 0.5, seg.Source.Confidence, 1e-9)
	require.NotNil(t, seg.Pickup)
	require.NotNil(t, seg.Dropoff)
	assert.Equal(t, "Fenway Park", seg.Pickup.Name)
	assert.Equal(t, "Harvard University", seg.Dropoff.Name)
}

func TestResolve_SynthesizedFlightTiming(t *testing.T) {
	r := newTestResolver(nil)

	gap := flightGap(at(10, 11, 0), at(11, 16, 0))
	seg, warnings := r.Resolve(context.Background(), &gap)

	assert.Empty(t, warnings)
	assert.Equal(t, models.SegmentFlight, seg.Type)
	assert.Equal(t, at(10, 13, 0), seg.StartTime, "flight starts 2 hours after the prior segment")
	assert.Equal(t, at(10, 16, 0), seg.EndTime)
	require.NotNil(t, seg.Origin)
	require.NotNil(t, seg.Destination)
	assert.Equal(t, "The Drake", seg.Origin.Name)
	assert.Equal(t, "The Plaza", seg.Destination.Name)
}

func TestResolve_TightScheduleAnchoring(t *testing.T) {
	r := newTestResolver(nil)

	// Only one hour between segments: the 2h flight buffer cannot fit
	gap := flightGap(at(10, 11, 0), at(10, 12, 0))
	seg, warnings := r.Resolve(context.Background(), &gap)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "tight schedule")
	assert.Equal(t, at(10, 11, 59), seg.EndTime, "placeholder ends 1 minute before the next segment")
	assert.True(t, seg.StartTime.Before(seg.EndTime))
	assert.False(t, seg.StartTime.Before(gap.BeforeSegment.EndTime),
		"placeholder must not start before the prior segment ends")
}

func TestResolve_SearchResultUsedVerbatim(t *testing.T) {
	found := &models.Segment{
		ID:        "real-flight-1",
		Type:      models.SegmentFlight,
		Name:      "UA 512",
		StartTime: at(10, 14, 0),
		EndTime:   at(10, 17, 0),
		Status:    models.StatusTentative,
		Inferred:  true,
	}
	provider := &stubSearchProvider{result: &capability.SearchResult{Found: true, Segment: found}}
	r := newTestResolver(capability.SearchRegistry{models.SegmentFlight: provider})

	gap := flightGap(at(10, 11, 0), at(11, 16, 0))
	seg, warnings := r.Resolve(context.Background(), &gap)

	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, warnings)
	assert.Equal(t, "real-flight-1", seg.ID)
	assert.Equal(t, "UA 512", seg.Name)
}

func TestResolve_SearchFailureFallsBackToSynthesis(t *testing.T) {
	provider := &stubSearchProvider{err: errors.New("upstream timeout")}
	r := newTestResolver(capability.SearchRegistry{models.SegmentFlight: provider})

	gap := flightGap(at(10, 11, 0), at(11, 16, 0))
	seg, _ := r.Resolve(context.Background(), &gap)

	assert.Equal(t, 1, provider.calls)
	assert.True(t, seg.Inferred)
	assert.Equal(t, models.SourceSynthesized, seg.Source.Mode)
}

func TestResolve_SearchNotFoundFallsBackToSynthesis(t *testing.T) {
	provider := &stubSearchProvider{result: &capability.SearchResult{Found: false}}
	r := newTestResolver(capability.SearchRegistry{models.SegmentFlight: provider})

	gap := flightGap(at(10, 11, 0), at(11, 16, 0))
	seg, _ := r.Resolve(context.Background(), &gap)

	assert.True(t, seg.Inferred)
	assert.NotEmpty(t, seg.ID)
}

func TestResolve_DegenerateEndTimeUsesInferredDuration(t *testing.T) {
	r := newTestResolver(nil)

	// Prior segment records no meaningful duration; the heuristic inferrer
	// supplies a typical activity length before the buffer is applied.
	before := activityAt("Quick stop",
		locInCity("Fenway Park", "Boston", "United States"),
		at(10, 10, 0), at(10, 10, 0))
	after := activityAt("Campus tour",
		locInCity("Harvard University", "Boston", "United States"),
		at(10, 18, 0), at(10, 19, 0))
	gap := models.LocationGap{
		BeforeSegment: &before, AfterSegment: &after,
		EndLocation: before.Location, StartLocation: after.Location,
		GapType: models.GapLocalTransfer, Confidence: 80,
		Description:   "local transfer needed",
		SuggestedType: models.SegmentTransfer,
	}

	seg, warnings := r.Resolve(context.Background(), &gap)

	assert.Empty(t, warnings)
	// 10:00 start + 2h typical activity + 15m buffer
	assert.Equal(t, at(10, 12, 15), seg.StartTime)
}
