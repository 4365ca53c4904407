package continuity

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tripflow/itinerary-backend-go/internal/capability"
	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// ResolverConfig holds the timing knobs of gap resolution
type ResolverConfig struct {
	FlightBufferMinutes   int           // lead time before a synthesized flight
	TransferBufferMinutes int           // lead time before a synthesized transfer
	SearchTimeout         time.Duration // per-gap cap on the external search
}

// DefaultResolverConfig returns the standard buffers
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		FlightBufferMinutes:   120,
		TransferBufferMinutes: 15,
		SearchTimeout:         20 * time.Second,
	}
}

// Minimum durations for tight-schedule placeholders
const (
	minFlightDuration   = time.Hour
	minTransferDuration = 30 * time.Minute
)

// Default spans for placeholders with room to spare
const (
	defaultFlightDuration   = 3 * time.Hour
	defaultTransferDuration = 30 * time.Minute
)

// A recorded end time closer to the start than this is treated as
// missing and handed to the duration inferrer.
const minMeaningfulDuration = 5 * time.Minute

// GapResolver closes a detected gap: first by asking the external search
// capability for a real segment, then by synthesizing a placeholder with
// heuristically bounded timing. Search failures and timeouts are never
// hard errors; they degrade to synthesis.
type GapResolver struct {
	searches  capability.SearchRegistry
	durations capability.DurationInferrer
	pacer     *capability.Pacer
	cfg       ResolverConfig
}

// NewGapResolver creates a resolver. searches may be nil or incomplete;
// durations must not be nil; pacer may be nil to disable pacing.
func NewGapResolver(searches capability.SearchRegistry, durations capability.DurationInferrer, pacer *capability.Pacer, cfg ResolverConfig) *GapResolver {
	return &GapResolver{
		searches:  searches,
		durations: durations,
		pacer:     pacer,
		cfg:       cfg,
	}
}

// Resolve produces a connecting segment for the gap, plus non-fatal
// warnings (tight schedules, search degradation).
func (r *GapResolver) Resolve(ctx context.Context, gap *models.LocationGap) (models.Segment, []string) {
	var warnings []string

	if seg, ok := r.trySearch(ctx, gap); ok {
		return seg, warnings
	}

	return r.synthesize(ctx, gap, &warnings), warnings
}

// trySearch asks the registered provider for a real segment
func (r *GapResolver) trySearch(ctx context.Context, gap *models.LocationGap) (models.Segment, bool) {
	provider, ok := r.searches.ProviderFor(gap.SuggestedType)
	if !ok {
		return models.Segment{}, false
	}

	if r.pacer != nil {
		if err := r.pacer.Wait(ctx); err != nil {
			log.Printf("[GapResolver] Pacer interrupted, synthesizing: %v", err)
			return models.Segment{}, false
		}
	}

	searchCtx, cancel := context.WithTimeout(ctx, r.cfg.SearchTimeout)
	defer cancel()

	result, err := provider.Search(searchCtx, gap, capability.SearchPreferences{})
	if err != nil {
		log.Printf("[GapResolver] Search failed for %s gap, synthesizing: %v", gap.SuggestedType, err)
		return models.Segment{}, false
	}
	if result == nil || !result.Found || result.Segment == nil {
		return models.Segment{}, false
	}

	return *result.Segment, true
}

// synthesize builds a placeholder segment between the gap's endpoints
func (r *GapResolver) synthesize(ctx context.Context, gap *models.LocationGap, warnings *[]string) models.Segment {
	effectiveEnd := r.effectiveEndTime(ctx, gap.BeforeSegment)
	nextStart := gap.AfterSegment.StartTime

	buffer := time.Duration(r.cfg.TransferBufferMinutes) * time.Minute
	defaultDur := defaultTransferDuration
	minDur := minTransferDuration
	if gap.SuggestedType == models.SegmentFlight {
		buffer = time.Duration(r.cfg.FlightBufferMinutes) * time.Minute
		defaultDur = defaultFlightDuration
		minDur = minFlightDuration
	}

	start := effectiveEnd.Add(buffer)
	end := start.Add(defaultDur)

	if !start.Before(nextStart) {
		// Not enough room for the usual buffer: anchor the placeholder to
		// finish just before the next segment and warn.
		end = nextStart.Add(-time.Minute)
		start = end.Add(-minDur)
		if start.Before(effectiveEnd) {
			start = effectiveEnd
		}
		if !start.Before(end) {
			start = end.Add(-time.Minute)
		}
		warn := fmt.Sprintf("tight schedule: synthesized %s squeezed between %q and %q",
			gap.SuggestedType, gap.BeforeSegment.Name, gap.AfterSegment.Name)
		log.Printf("[GapResolver] %s", warn)
		*warnings = append(*warnings, warn)
	} else if !end.Before(nextStart) {
		end = nextStart.Add(-time.Minute)
	}

	seg := models.Segment{
		ID:             uuid.NewString(),
		Type:           gap.SuggestedType,
		StartTime:      start,
		EndTime:        end,
		Status:         models.StatusTentative,
		Inferred:       true,
		InferredReason: gap.Description,
		Source: models.SourceDetails{
			Confidence: 0.5,
			Mode:       models.SourceSynthesized,
		},
	}

	if gap.SuggestedType == models.SegmentFlight {
		seg.Origin = locationOrPlaceholder(gap.EndLocation, "Unknown Origin")
		seg.Destination = locationOrPlaceholder(gap.StartLocation, "Unknown Destination")
		seg.Name = fmt.Sprintf("Flight to %s", displayName(seg.Destination))
	} else {
		seg.Pickup = locationOrPlaceholder(gap.EndLocation, "Unknown Pickup")
		seg.Dropoff = locationOrPlaceholder(gap.StartLocation, "Unknown Dropoff")
		seg.Name = fmt.Sprintf("Transfer to %s", displayName(seg.Dropoff))
	}

	return seg
}

// effectiveEndTime returns when the traveler is actually free after the
// segment: its recorded end when meaningful, otherwise start plus an
// inferred duration.
func (r *GapResolver) effectiveEndTime(ctx context.Context, segment *models.Segment) time.Time {
	if segment.EndTime.Sub(segment.StartTime) >= minMeaningfulDuration {
		return segment.EndTime
	}

	estimate, err := r.durations.InferDuration(ctx, segment)
	if err != nil || estimate.Hours <= 0 {
		log.Printf("[GapResolver] Duration inference failed for %q, assuming one hour", segment.Name)
		return segment.StartTime.Add(time.Hour)
	}
	return segment.StartTime.Add(time.Duration(estimate.Hours * float64(time.Hour)))
}

// locationOrPlaceholder substitutes a named placeholder for a missing location
func locationOrPlaceholder(loc *models.Location, placeholder string) *models.Location {
	if loc != nil {
		return loc
	}
	return &models.Location{Name: placeholder}
}
