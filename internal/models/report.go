package models

// NormalizationReport is the diagnostic output of a full pipeline run:
// which gaps were found, what was inserted, and what the semantic review
// still flags for manual attention.
type NormalizationReport struct {
	GapsDetected     []LocationGap `json:"gaps_detected"`
	InsertedSegments []Segment     `json:"inserted_segments"`
	Review           ReviewResult  `json:"review"`
	AutoFixedCount   int           `json:"auto_fixed_count"`
	Warnings         []string      `json:"warnings,omitempty"`
	Segments         []Segment     `json:"segments"`
}

// Changed reports whether the pipeline altered the input sequence
func (r *NormalizationReport) Changed() bool {
	return len(r.InsertedSegments) > 0 || r.AutoFixedCount > 0
}
