package capability

import (
	"context"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// DurationEstimate is an inferred segment duration
type DurationEstimate struct {
	Hours      float64 `json:"hours"`
	Confidence float64 `json:"confidence"` // 0~1
	Reason     string  `json:"reason"`
}

// DurationInferrer estimates how long a segment lasts when its recorded
// end time is not meaningfully after its start time.
type DurationInferrer interface {
	InferDuration(ctx context.Context, segment *models.Segment) (DurationEstimate, error)
}

// HeuristicDurationInferrer estimates durations from a fixed per-type
// table. Always available; used as the fallback when no LLM-backed
// inferrer is configured.
type HeuristicDurationInferrer struct{}

// NewHeuristicDurationInferrer creates the table-backed inferrer
func NewHeuristicDurationInferrer() *HeuristicDurationInferrer {
	return &HeuristicDurationInferrer{}
}

// typicalDurationHours by segment type
var typicalDurationHours = map[string]float64{
	models.SegmentFlight:   3.0,
	models.SegmentTransfer: 0.75,
	models.SegmentHotel:    14.0, // late-afternoon check-in to morning check-out
	models.SegmentActivity: 2.0,
	models.SegmentMeeting:  1.0,
	models.SegmentCustom:   1.0,
}

// InferDuration returns the typical duration for the segment's type
func (h *HeuristicDurationInferrer) InferDuration(_ context.Context, segment *models.Segment) (DurationEstimate, error) {
	hours, ok := typicalDurationHours[segment.Type]
	if !ok {
		hours = 1.0
	}
	return DurationEstimate{
		Hours:      hours,
		Confidence: 0.4,
		Reason:     "typical duration for segment type " + segment.Type,
	}, nil
}
