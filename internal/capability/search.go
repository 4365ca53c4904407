package capability

import (
	"context"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// SearchResult is the outcome of one external search attempt. Found=false
// with no error is the normal "nothing available" answer and triggers
// placeholder synthesis downstream.
type SearchResult struct {
	Found   bool            `json:"found"`
	Segment *models.Segment `json:"segment,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SearchPreferences carries traveler options through to a provider
type SearchPreferences struct {
	CabinClass string `json:"cabin_class,omitempty"`
	MaxStops   int    `json:"max_stops,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// SearchProvider sources a real connecting segment for a detected gap.
// Implementations must be safe to call zero or more times; a provider
// that cannot serve a gap returns Found=false rather than an error.
// Segments returned by a provider must already carry Inferred=true.
type SearchProvider interface {
	Search(ctx context.Context, gap *models.LocationGap, prefs SearchPreferences) (*SearchResult, error)
}

// SearchRegistry maps a suggested segment type (FLIGHT, TRANSFER) to the
// provider that can source it. A nil or incomplete registry is a valid,
// non-error state: missing providers fall through to synthesis.
type SearchRegistry map[string]SearchProvider

// ProviderFor returns the provider registered for the given segment type
func (r SearchRegistry) ProviderFor(segmentType string) (SearchProvider, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r[segmentType]
	return p, ok && p != nil
}
