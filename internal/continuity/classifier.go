package continuity

import (
	"strings"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// GapClassifier assigns a transition type to a pair of locations using
// country and city inference. Rules run in a fixed order; the first hit
// wins:
//
//  1. cities resolved and equal        -> LOCAL_TRANSFER
//  2. either country unresolved       -> UNKNOWN
//  3. countries differ                -> INTERNATIONAL_GAP
//  4. same country, cities differ     -> DOMESTIC_GAP
//  5. otherwise                       -> LOCAL_TRANSFER
type GapClassifier struct {
	countries CountryLookup
}

// NewGapClassifier creates a classifier over the given country lookup
func NewGapClassifier(countries CountryLookup) *GapClassifier {
	return &GapClassifier{countries: countries}
}

// Classify returns the gap type for a transition from endLoc to startLoc
func (c *GapClassifier) Classify(endLoc, startLoc *models.Location) string {
	cityA := c.resolveCity(endLoc)
	cityB := c.resolveCity(startLoc)

	// Same city is decisive even without country data
	if cityA != "" && cityA == cityB {
		return models.GapLocalTransfer
	}

	countryA := c.resolveCountry(endLoc)
	countryB := c.resolveCountry(startLoc)
	if countryA == "" || countryB == "" {
		return models.GapUnknown
	}

	if !strings.EqualFold(countryA, countryB) {
		return models.GapInternational
	}

	if cityA != cityB {
		return models.GapDomestic
	}

	return models.GapLocalTransfer
}

// resolveCountry prefers the structured address country, then falls back
// to the facility-code table.
func (c *GapClassifier) resolveCountry(loc *models.Location) string {
	if loc == nil {
		return ""
	}
	if country := loc.Country(); country != "" {
		return country
	}
	if loc.HasCode() && c.countries != nil {
		if country, ok := c.countries.CountryForCode(loc.Code); ok {
			return country
		}
	}
	return ""
}

// resolveCity prefers the structured address city and falls back to the
// raw name with facility-type words stripped ("Sydney Airport" -> "sydney").
func (c *GapClassifier) resolveCity(loc *models.Location) string {
	if loc == nil {
		return ""
	}
	if city := loc.City(); city != "" {
		return NormalizeName(city)
	}
	return stripFacilityWords(NormalizeName(loc.Name))
}

// facilityWords are trailing qualifiers that name a facility rather than
// the city itself.
var facilityWords = map[string]bool{
	"airport":       true,
	"international": true,
	"intl":          true,
	"city":          true,
	"municipal":     true,
	"regional":      true,
	"station":       true,
	"terminal":      true,
}

// stripFacilityWords removes trailing facility qualifiers from a
// normalized name.
func stripFacilityWords(normalized string) string {
	fields := strings.Fields(normalized)
	for len(fields) > 0 && facilityWords[fields[len(fields)-1]] {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}
