package continuity

import (
	"context"
	"log"
	"sort"

	"github.com/samber/lo"

	"github.com/tripflow/itinerary-backend-go/internal/capability"
	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// Orchestrator composes the full pipeline: sort, detect, resolve, merge,
// review, auto-fix. A single pass by design; running it again on an
// already clean itinerary adds nothing.
type Orchestrator struct {
	detector *ContinuityDetector
	resolver *GapResolver
	reviewer *SemanticReviewer
}

// NewOrchestrator wires the pipeline stages together
func NewOrchestrator(detector *ContinuityDetector, resolver *GapResolver, reviewer *SemanticReviewer) *Orchestrator {
	return &Orchestrator{
		detector: detector,
		resolver: resolver,
		reviewer: reviewer,
	}
}

// NewDefaultOrchestrator builds a pipeline with default configuration and
// no external search capability.
func NewDefaultOrchestrator() *Orchestrator {
	resolver := NewLocationResolver()
	classifier := NewGapClassifier(NewStaticCountryLookup())
	detector := NewContinuityDetector(resolver, classifier, DefaultDetectorConfig())
	gapResolver := NewGapResolver(nil, capability.NewHeuristicDurationInferrer(), nil, DefaultResolverConfig())
	return NewOrchestrator(detector, gapResolver, NewSemanticReviewer())
}

// Normalize runs the pipeline over the given segments and returns the
// corrected sequence together with a diagnostic report. The input slice
// is never mutated; every stage returns a new sequence.
func (o *Orchestrator) Normalize(ctx context.Context, segments []models.Segment) models.NormalizationReport {
	working := make([]models.Segment, len(segments))
	copy(working, segments)
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].StartTime.Before(working[j].StartTime)
	})

	gaps := o.detector.DetectGaps(working)
	log.Printf("[Orchestrator] Detected %d gap(s) across %d segment(s)", len(gaps), len(working))

	// Resolve sequentially: placeholder timing depends on the adjacent
	// real segments, and upstream search collaborators are rate-limited.
	var warnings []string
	resolved := make([]models.Segment, 0, len(gaps))
	for i := range gaps {
		seg, segWarnings := o.resolver.Resolve(ctx, &gaps[i])
		resolved = append(resolved, seg)
		warnings = append(warnings, segWarnings...)
	}

	// Splice in descending gap order so earlier insertions never shift a
	// later insertion's target. Each segment lands at the position already
	// known to be chronologically correct; no re-sort afterwards.
	merged := working
	for i := len(gaps) - 1; i >= 0; i-- {
		at := gaps[i].AfterIndex
		merged = append(merged[:at], append([]models.Segment{resolved[i]}, merged[at:]...)...)
	}

	review := o.reviewer.Review(merged)

	final := merged
	fixed := 0
	hasFixable := lo.SomeBy(review.Issues, func(issue models.SemanticIssue) bool {
		return issue.IsAutoFixable()
	})
	if hasFixable {
		final, fixed = o.reviewer.AutoFix(merged, review)
		log.Printf("[Orchestrator] Auto-fixed %d high-severity issue(s)", fixed)
	}

	return models.NormalizationReport{
		GapsDetected:     gaps,
		InsertedSegments: resolved,
		Review:           review,
		AutoFixedCount:   fixed,
		Warnings:         warnings,
		Segments:         final,
	}
}
