package continuity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// Buffers for synthesized airport transfers
const (
	arrivalBufferAfterLanding  = 30 * time.Minute // customs and baggage
	arrivalBufferBeforeNext    = 30 * time.Minute
	minArrivalTransferDuration = 30 * time.Minute
	departureTransferLead      = 3 * time.Hour // before takeoff
	departureTransferArrival   = 2 * time.Hour // check-in buffer
)

// SemanticReviewer is an independent second-pass rule checker over the
// merged, gap-filled segment sequence. It flags sequencing violations and
// proposes fixes for the clear-cut ones; it never mutates its input.
type SemanticReviewer struct{}

// NewSemanticReviewer creates a reviewer
func NewSemanticReviewer() *SemanticReviewer {
	return &SemanticReviewer{}
}

// Review checks the chronologically sorted sequence and reports every
// violation found. MEDIUM and LOW issues are diagnostic only.
func (r *SemanticReviewer) Review(segments []models.Segment) models.ReviewResult {
	var issues []models.SemanticIssue

	issues = append(issues, r.checkArrivalTransfers(segments)...)
	issues = append(issues, r.checkDepartureTransfers(segments)...)
	issues = append(issues, r.checkOverlaps(segments)...)

	return models.ReviewResult{
		Valid:   len(issues) == 0,
		Issues:  issues,
		Summary: summarize(issues),
	}
}

// checkArrivalTransfers finds flights whose traveler has no way from the
// arrival airport to wherever the next segment expects them.
func (r *SemanticReviewer) checkArrivalTransfers(segments []models.Segment) []models.SemanticIssue {
	var issues []models.SemanticIssue

	for i := 0; i+1 < len(segments); i++ {
		flight := &segments[i]
		next := &segments[i+1]
		if flight.Type != models.SegmentFlight {
			continue
		}
		if next.Type == models.SegmentFlight || isAirportTransfer(next) {
			continue
		}
		if sameCityForReview(flight.Destination, next.StartLocation()) {
			continue
		}

		issues = append(issues, models.SemanticIssue{
			Type:           models.IssueMissingAirportTransfer,
			Severity:       models.SeverityHigh,
			SegmentIndices: []int{i, i + 1},
			Description: fmt.Sprintf("no transfer from %s after flight %q before %q",
				displayName(flight.Destination), flight.Name, next.Name),
			SuggestedFix: r.buildArrivalTransfer(flight, next),
		})
	}

	return issues
}

// checkDepartureTransfers is the symmetric check looking backward from
// each flight toward the segment the traveler must leave from.
func (r *SemanticReviewer) checkDepartureTransfers(segments []models.Segment) []models.SemanticIssue {
	var issues []models.SemanticIssue

	for i := 1; i < len(segments); i++ {
		flight := &segments[i]
		prev := &segments[i-1]
		if flight.Type != models.SegmentFlight {
			continue
		}
		if prev.Type == models.SegmentFlight || isAirportTransfer(prev) {
			continue
		}
		if sameCityForReview(prev.EndLocation(), flight.Origin) {
			continue
		}

		issues = append(issues, models.SemanticIssue{
			Type:           models.IssueMissingAirportTransfer,
			Severity:       models.SeverityHigh,
			SegmentIndices: []int{i - 1, i},
			Description: fmt.Sprintf("no transfer to %s for flight %q after %q",
				displayName(flight.Origin), flight.Name, prev.Name),
			SuggestedFix: r.buildDepartureTransfer(prev, flight),
		})
	}

	return issues
}

// checkOverlaps flags adjacent segments whose times collide. Overlaps are
// informational; resolving them needs human judgment.
func (r *SemanticReviewer) checkOverlaps(segments []models.Segment) []models.SemanticIssue {
	var issues []models.SemanticIssue

	for i := 0; i+1 < len(segments); i++ {
		earlier := &segments[i]
		later := &segments[i+1]
		if later.StartTime.Before(earlier.EndTime) {
			issues = append(issues, models.SemanticIssue{
				Type:           models.IssueOverlappingTimes,
				Severity:       models.SeverityMedium,
				SegmentIndices: []int{i, i + 1},
				Description: fmt.Sprintf("%q starts before %q ends",
					later.Name, earlier.Name),
			})
		}
	}

	return issues
}

// buildArrivalTransfer synthesizes a transfer out of the arrival airport:
// half an hour after landing until half an hour before the next segment,
// never shorter than the minimum.
func (r *SemanticReviewer) buildArrivalTransfer(flight, next *models.Segment) *models.Segment {
	start := flight.EndTime.Add(arrivalBufferAfterLanding)
	end := next.StartTime.Add(-arrivalBufferBeforeNext)
	if end.Sub(start) < minArrivalTransferDuration {
		end = start.Add(minArrivalTransferDuration)
	}

	dropoff := next.StartLocation()
	return &models.Segment{
		ID:             uuid.NewString(),
		Type:           models.SegmentTransfer,
		Name:           fmt.Sprintf("Airport transfer from %s", displayName(flight.Destination)),
		StartTime:      start,
		EndTime:        end,
		Status:         models.StatusTentative,
		Inferred:       true,
		InferredReason: fmt.Sprintf("missing transfer after flight %q", flight.Name),
		Source: models.SourceDetails{
			Confidence: 0.5,
			Mode:       models.SourceSynthesized,
		},
		Pickup:  flight.Destination,
		Dropoff: locationOrPlaceholder(dropoff, "Unknown Dropoff"),
	}
}

// buildDepartureTransfer synthesizes the ride to the departure airport:
// three hours before takeoff, arriving two hours before.
func (r *SemanticReviewer) buildDepartureTransfer(prev, flight *models.Segment) *models.Segment {
	start := flight.StartTime.Add(-departureTransferLead)
	end := flight.StartTime.Add(-departureTransferArrival)

	pickup := prev.EndLocation()
	return &models.Segment{
		ID:             uuid.NewString(),
		Type:           models.SegmentTransfer,
		Name:           fmt.Sprintf("Airport transfer to %s", displayName(flight.Origin)),
		StartTime:      start,
		EndTime:        end,
		Status:         models.StatusTentative,
		Inferred:       true,
		InferredReason: fmt.Sprintf("missing transfer before flight %q", flight.Name),
		Source: models.SourceDetails{
			Confidence: 0.5,
			Mode:       models.SourceSynthesized,
		},
		Pickup:  locationOrPlaceholder(pickup, "Unknown Pickup"),
		Dropoff: flight.Origin,
	}
}

// AutoFix applies every HIGH-severity issue carrying a suggested fix,
// processing issues in descending order of the higher index in their
// SegmentIndices so earlier insertions never invalidate later targets.
// The fix segment is spliced in at the higher index, between the pair
// that raised the issue. Returns the new sequence and the number of
// fixes applied; the input slice is not modified.
func (r *SemanticReviewer) AutoFix(segments []models.Segment, review models.ReviewResult) ([]models.Segment, int) {
	fixable := lo.Filter(review.Issues, func(issue models.SemanticIssue, _ int) bool {
		return issue.IsAutoFixable()
	})
	if len(fixable) == 0 {
		return segments, 0
	}

	sort.SliceStable(fixable, func(i, j int) bool {
		return maxIndex(fixable[i].SegmentIndices) > maxIndex(fixable[j].SegmentIndices)
	})

	result := make([]models.Segment, len(segments))
	copy(result, segments)

	applied := 0
	for _, issue := range fixable {
		at := maxIndex(issue.SegmentIndices)
		if at < 0 || at > len(result) {
			continue
		}
		result = append(result[:at], append([]models.Segment{*issue.SuggestedFix}, result[at:]...)...)
		applied++
	}

	return result, applied
}

func maxIndex(indices []int) int {
	if len(indices) == 0 {
		return -1
	}
	m := indices[0]
	for _, idx := range indices[1:] {
		if idx > m {
			m = idx
		}
	}
	return m
}

// isAirportTransfer reports whether the segment is a transfer touching an airport
func isAirportTransfer(s *models.Segment) bool {
	return s.Type == models.SegmentTransfer && s.InvolvesAirport()
}

// sameCityForReview is the reviewer's own, deliberately strict notion of
// "same city": an airport and a non-airport location are never the same
// city even when co-located, codes compare exactly, and otherwise city
// names (or facility-stripped location names) must match.
func sameCityForReview(a, b *models.Location) bool {
	if a == nil || b == nil {
		return false
	}
	if looksLikeAirport(a) != looksLikeAirport(b) {
		return false
	}
	if a.HasCode() && b.HasCode() {
		return strings.EqualFold(a.Code, b.Code)
	}

	cityA := reviewCity(a)
	cityB := reviewCity(b)
	return cityA != "" && cityA == cityB
}

// looksLikeAirport reports whether a location reads as an airport
func looksLikeAirport(loc *models.Location) bool {
	if loc.HasCode() {
		return true
	}
	name := NormalizeName(loc.Name)
	return strings.Contains(name, "airport")
}

func reviewCity(loc *models.Location) string {
	if city := loc.City(); city != "" {
		return NormalizeName(city)
	}
	return stripFacilityWords(NormalizeName(loc.Name))
}

// summarize renders a one-line report of the review outcome
func summarize(issues []models.SemanticIssue) string {
	if len(issues) == 0 {
		return "no semantic issues found"
	}

	counts := lo.CountValuesBy(issues, func(issue models.SemanticIssue) string {
		return issue.Severity
	})
	return fmt.Sprintf("%d issue(s) found: %d high, %d medium, %d low",
		len(issues),
		counts[models.SeverityHigh],
		counts[models.SeverityMedium],
		counts[models.SeverityLow])
}
