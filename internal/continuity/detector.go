package continuity

import (
	"fmt"
	"log"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// DetectorConfig holds the tuning knobs of gap detection
type DetectorConfig struct {
	ConfidenceThreshold int // gaps below this are never surfaced
	OvernightGapHours   int // same-day idle span treated as overnight rest
	EveningHour         int // earliest end hour for cross-midnight suppression
	MorningCutoffHour   int // latest start hour for cross-midnight suppression
}

// DefaultDetectorConfig returns the standard thresholds
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ConfidenceThreshold: 80,
		OvernightGapHours:   8,
		EveningHour:         18,
		MorningCutoffHour:   15,
	}
}

// Late-evening variant of the cross-midnight suppression window
const (
	lateEveningHour   = 21
	lateMorningCutoff = 14
)

// ContinuityDetector walks a chronologically sorted segment sequence and
// emits the geographic discontinuities worth resolving. Suppression
// heuristics run before classification so that overnight rest and
// already-bridged transitions never produce candidates.
type ContinuityDetector struct {
	resolver   *LocationResolver
	classifier *GapClassifier
	cfg        DetectorConfig
}

// NewContinuityDetector creates a detector with the given collaborators
func NewContinuityDetector(resolver *LocationResolver, classifier *GapClassifier, cfg DetectorConfig) *ContinuityDetector {
	return &ContinuityDetector{
		resolver:   resolver,
		classifier: classifier,
		cfg:        cfg,
	}
}

// DetectGaps scans adjacent pairs of the pre-sorted sequence and returns
// the discontinuities that pass the confidence gate. The input is never
// mutated.
func (d *ContinuityDetector) DetectGaps(segments []models.Segment) []models.LocationGap {
	gaps := []models.LocationGap{}

	for i := 0; i+1 < len(segments); i++ {
		before := &segments[i]
		after := &segments[i+1]

		if !before.HasValidTimes() || !after.HasValidTimes() {
			log.Printf("[ContinuityDetector] Skipping pair %d/%d: segment missing timestamps", i, i+1)
			continue
		}

		if d.isOvernightPair(before, after) {
			continue
		}
		if d.isAlreadyBridged(before, after) {
			continue
		}

		endLoc := before.EndLocation()
		startLoc := after.StartLocation()
		if endLoc == nil || startLoc == nil {
			// Not enough data to judge the transition
			continue
		}

		if d.resolver.IsSameLocation(endLoc, startLoc) {
			continue
		}

		gapType := d.classifier.Classify(endLoc, startLoc)
		confidence := scoreGapConfidence(before, after, gapType)
		if confidence < d.cfg.ConfidenceThreshold {
			continue
		}

		gaps = append(gaps, models.LocationGap{
			BeforeIndex:   i,
			AfterIndex:    i + 1,
			BeforeSegment: before,
			AfterSegment:  after,
			EndLocation:   endLoc,
			StartLocation: startLoc,
			GapType:       gapType,
			Confidence:    confidence,
			Description:   describeGap(before, after, endLoc, startLoc, gapType),
			SuggestedType: suggestedSegmentType(gapType),
		})
	}

	return gaps
}

// isOvernightPair reports whether the idle span between the two segments
// looks like a night at lodging. Hotel and airport-involving segments are
// excluded: a hotel pair in two cities or a landed flight still needs a
// connection.
func (d *ContinuityDetector) isOvernightPair(before, after *models.Segment) bool {
	if before.IsHotel() || after.IsHotel() {
		return false
	}
	if before.InvolvesAirport() || after.InvolvesAirport() {
		return false
	}

	end := before.EndTime
	start := after.StartTime
	if !start.After(end) {
		return false
	}

	sameDay := end.Year() == start.Year() && end.YearDay() == start.YearDay()
	if sameDay {
		return start.Sub(end).Hours() > float64(d.cfg.OvernightGapHours)
	}

	// Crossing a day boundary: evening end followed by a morning or early
	// afternoon start reads as a night at lodging.
	if end.Hour() >= d.cfg.EveningHour && start.Hour() <= d.cfg.MorningCutoffHour {
		return true
	}
	if end.Hour() >= lateEveningHour && start.Hour() <= lateMorningCutoff {
		return true
	}
	return false
}

// isAlreadyBridged reports whether one of the two segments is itself the
// connection: a connecting earlier segment ending where the next begins,
// or a connecting later segment starting where the previous ended.
func (d *ContinuityDetector) isAlreadyBridged(before, after *models.Segment) bool {
	if before.IsConnecting() {
		if d.resolver.IsSameLocation(before.EndLocation(), after.StartLocation()) {
			return true
		}
	}
	if after.IsConnecting() {
		if d.resolver.IsSameLocation(after.StartLocation(), before.EndLocation()) {
			return true
		}
	}
	return false
}

// confidenceRule is one row of the ordered scoring table
type confidenceRule struct {
	name       string
	confidence int
	matches    func(before, after *models.Segment, gapType string) bool
}

func isTravelGap(gapType string) bool {
	return gapType == models.GapDomestic || gapType == models.GapInternational
}

func isHotelOrActivity(s *models.Segment) bool {
	return s.Type == models.SegmentHotel || s.Type == models.SegmentActivity
}

// confidenceRules is evaluated top to bottom; the first match wins.
// Order is part of the contract: airport evidence beats hotel evidence
// beats plain segment pairs.
var confidenceRules = []confidenceRule{
	{
		name:       "airport-to-airport travel gap",
		confidence: 95,
		matches: func(before, after *models.Segment, gapType string) bool {
			return before.InvolvesAirport() && after.InvolvesAirport() && isTravelGap(gapType)
		},
	},
	{
		name:       "airport beside lodging or activity",
		confidence: 95,
		matches: func(before, after *models.Segment, gapType string) bool {
			return (before.InvolvesAirport() && isHotelOrActivity(after)) ||
				(after.InvolvesAirport() && isHotelOrActivity(before))
		},
	},
	{
		name:       "hotel-to-hotel travel gap",
		confidence: 90,
		matches: func(before, after *models.Segment, gapType string) bool {
			return before.IsHotel() && after.IsHotel() && isTravelGap(gapType)
		},
	},
	{
		name:       "hotel beside plain segment",
		confidence: 85,
		matches: func(before, after *models.Segment, gapType string) bool {
			plain := func(s *models.Segment) bool { return !s.IsHotel() && !s.InvolvesAirport() }
			return (before.IsHotel() && plain(after)) || (after.IsHotel() && plain(before))
		},
	},
	{
		name:       "local transfer",
		confidence: 80,
		matches: func(before, after *models.Segment, gapType string) bool {
			return gapType == models.GapLocalTransfer
		},
	},
	{
		name:       "travel gap between plain segments",
		confidence: 60,
		matches: func(before, after *models.Segment, gapType string) bool {
			plain := func(s *models.Segment) bool { return !s.IsHotel() && !s.InvolvesAirport() }
			return isTravelGap(gapType) && plain(before) && plain(after)
		},
	},
}

// fallbackConfidence applies when no rule matches, including UNKNOWN gaps
const fallbackConfidence = 50

// scoreGapConfidence runs the ordered rule table for a candidate gap
func scoreGapConfidence(before, after *models.Segment, gapType string) int {
	for _, rule := range confidenceRules {
		if rule.matches(before, after, gapType) {
			return rule.confidence
		}
	}
	return fallbackConfidence
}

// suggestedSegmentType maps a gap type to the kind of segment that should
// close it: long-haul gaps want a flight, everything else a transfer.
func suggestedSegmentType(gapType string) string {
	if isTravelGap(gapType) {
		return models.SegmentFlight
	}
	return models.SegmentTransfer
}

// describeGap builds the human-readable description attached to a gap
func describeGap(before, after *models.Segment, endLoc, startLoc *models.Location, gapType string) string {
	return fmt.Sprintf("%s: %s %q ends at %s but %s %q starts at %s",
		gapTypeLabel(gapType),
		before.Type, before.Name, displayName(endLoc),
		after.Type, after.Name, displayName(startLoc))
}

func gapTypeLabel(gapType string) string {
	switch gapType {
	case models.GapLocalTransfer:
		return "Local transfer needed"
	case models.GapDomestic:
		return "Domestic travel gap"
	case models.GapInternational:
		return "International travel gap"
	default:
		return "Unresolved location gap"
	}
}

// displayName renders a location for log and description output
func displayName(loc *models.Location) string {
	if loc == nil {
		return "unknown location"
	}
	if loc.Name != "" && loc.Code != "" {
		return fmt.Sprintf("%s (%s)", loc.Name, loc.Code)
	}
	if loc.Name != "" {
		return loc.Name
	}
	if loc.Code != "" {
		return loc.Code
	}
	return "unknown location"
}
