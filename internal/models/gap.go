package models

// LocationGap is a derived, transient record describing a geographic
// discontinuity between two adjacent segments. Gaps are recomputed on every
// detection run and are never persisted.
type LocationGap struct {
	BeforeIndex int `json:"before_index"`
	AfterIndex  int `json:"after_index"`

	BeforeSegment *Segment `json:"before_segment,omitempty"`
	AfterSegment  *Segment `json:"after_segment,omitempty"`

	// EndLocation is where the earlier segment leaves the traveler;
	// StartLocation is where the later segment expects them.
	EndLocation   *Location `json:"end_location,omitempty"`
	StartLocation *Location `json:"start_location,omitempty"`

	GapType     string `json:"gap_type"`   // LOCAL_TRANSFER, DOMESTIC_GAP, INTERNATIONAL_GAP, UNKNOWN
	Confidence  int    `json:"confidence"` // 0~100
	Description string `json:"description"`

	SuggestedType string `json:"suggested_type"` // FLIGHT or TRANSFER
}

// Gap type constants
const (
	GapLocalTransfer = "LOCAL_TRANSFER"
	GapDomestic      = "DOMESTIC_GAP"
	GapInternational = "INTERNATIONAL_GAP"
	GapUnknown       = "UNKNOWN"
)
