package models

// SemanticIssue is a sequencing violation found by the second-pass review
// of an already gap-filled segment sequence.
type SemanticIssue struct {
	Type           string   `json:"type"`     // MISSING_AIRPORT_TRANSFER, OVERLAPPING_TIMES, IMPOSSIBLE_SEQUENCE
	Severity       string   `json:"severity"` // HIGH, MEDIUM, LOW
	SegmentIndices []int    `json:"segment_indices"`
	Description    string   `json:"description"`
	SuggestedFix   *Segment `json:"suggested_fix,omitempty"`
}

// Issue type constants
const (
	IssueMissingAirportTransfer = "MISSING_AIRPORT_TRANSFER"
	IssueOverlappingTimes       = "OVERLAPPING_TIMES"
	IssueImpossibleSequence     = "IMPOSSIBLE_SEQUENCE"
)

// Severity constants
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// IsAutoFixable reports whether the issue qualifies for automatic
// correction: only HIGH severity issues carrying a suggested fix do.
func (i *SemanticIssue) IsAutoFixable() bool {
	return i.Severity == SeverityHigh && i.SuggestedFix != nil
}

// ReviewResult is the outcome of a semantic review pass
type ReviewResult struct {
	Valid   bool            `json:"valid"`
	Issues  []SemanticIssue `json:"issues"`
	Summary string          `json:"summary"`
}
