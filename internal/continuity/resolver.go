package continuity

import (
	"strings"
	"unicode"

	"github.com/tripflow/itinerary-backend-go/internal/models"
	"github.com/tripflow/itinerary-backend-go/internal/spatial"
)

// Thresholds for location equivalence
const (
	// Two coordinate pairs closer than this are the same place
	proximityThresholdMeters = 100.0

	// Minimum normalized-name length for the containment check
	containmentMinLength = 5

	// Fraction of tokens from the smaller name that must find a match
	// in the other name for the fuzzy check to pass
	fuzzyMatchRatio = 0.70
)

// LocationResolver decides whether two location records denote the same
// physical place. Pure logic, no I/O. The checks run in order of
// authority: facility codes first, then coordinates, then name/address
// heuristics. The resolver is biased toward false negatives; suppressing
// a real gap is worse than flagging a spurious one.
type LocationResolver struct{}

// NewLocationResolver creates a new location resolver
func NewLocationResolver() *LocationResolver {
	return &LocationResolver{}
}

// IsSameLocation reports whether a and b denote the same physical place.
// Deterministic and total: nil or empty locations are never equal to anything.
func (r *LocationResolver) IsSameLocation(a, b *models.Location) bool {
	if a == nil || b == nil {
		return false
	}

	// Facility codes are the most reliable signal. When both sides carry
	// one, the comparison terminates here either way.
	if a.HasCode() && b.HasCode() {
		return strings.EqualFold(a.Code, b.Code)
	}

	// Coordinate proximity
	if a.HasCoordinates() && b.HasCoordinates() {
		d := spatial.HaversineDistance(
			a.Coordinates.Lat, a.Coordinates.Lng,
			b.Coordinates.Lat, b.Coordinates.Lng,
		)
		if d <= proximityThresholdMeters {
			return true
		}
	}

	// Cross-field match: one record's street address showing up as the
	// other record's name ("King George Hotel" vs its street line)
	if r.crossFieldMatch(a, b) || r.crossFieldMatch(b, a) {
		return true
	}

	nameA := NormalizeName(a.Name)
	nameB := NormalizeName(b.Name)
	if nameA == "" || nameB == "" {
		return false
	}

	if nameA == nameB {
		return true
	}

	// Brand-name containment: "four seasons" within "four seasons resort oahu"
	if len(nameA) > containmentMinLength && len(nameB) > containmentMinLength {
		if strings.Contains(nameA, nameB) || strings.Contains(nameB, nameA) {
			return true
		}
	}

	return r.fuzzyNameMatch(nameA, nameB)
}

// crossFieldMatch reports whether a's street address equals b's name
func (r *LocationResolver) crossFieldMatch(a, b *models.Location) bool {
	if a.Address == nil || a.Address.Street == "" || b.Name == "" {
		return false
	}
	street := NormalizeName(a.Address.Street)
	return street != "" && street == NormalizeName(b.Name)
}

// fuzzyNameMatch compares two normalized names by token overlap. Tokens
// from the smaller set each look for a counterpart in the other set via
// exact match, substring containment, or a small edit distance. The pair
// matches when more than fuzzyMatchRatio of the smaller set is covered.
func (r *LocationResolver) fuzzyNameMatch(nameA, nameB string) bool {
	tokensA := significantTokens(nameA)
	tokensB := significantTokens(nameB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return false
	}

	smaller, larger := tokensA, tokensB
	if len(tokensB) < len(tokensA) {
		smaller, larger = tokensB, tokensA
	}

	matched := 0
	for _, tok := range smaller {
		if hasSimilarToken(tok, larger) {
			matched++
		}
	}

	return float64(matched)/float64(len(smaller)) > fuzzyMatchRatio
}

// hasSimilarToken reports whether tok has a counterpart in candidates
func hasSimilarToken(tok string, candidates []string) bool {
	for _, cand := range candidates {
		if tok == cand {
			return true
		}
		if strings.Contains(cand, tok) || strings.Contains(tok, cand) {
			return true
		}
		maxDist := 1
		if len(tok) > 5 {
			maxDist = 2
		}
		if Levenshtein(tok, cand) <= maxDist {
			return true
		}
	}
	return false
}

// NormalizeName lowercases a name, strips punctuation, and collapses
// whitespace runs to single spaces. Shared with the gap classifier.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// punctuation becomes a separator so "st.-laurent" splits cleanly
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// significantTokens splits a normalized name and drops stop-words
func significantTokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// nameStopWords are tokens that carry no identity: articles, prepositions,
// generic lodging and street-type words.
var nameStopWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"of": true, "in": true, "at": true, "on": true, "to": true,
	"and": true, "by": true, "for": true, "near": true,
	"hotel": true, "inn": true, "resort": true, "suites": true,
	"motel": true, "lodge": true, "hostel": true, "apartments": true,
	"street": true, "avenue": true, "road": true, "boulevard": true,
	"drive": true, "lane": true, "plaza": true, "square": true,
	"north": true, "south": true, "east": true, "west": true,
}

// usStateCodes covers the common 2-letter postal abbreviations that show
// up as trailing tokens in US addresses.
var usStateCodes = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true,
	"co": true, "ct": true, "de": true, "fl": true, "ga": true,
	"hi": true, "id": true, "il": true, "in": true, "ia": true,
	"ks": true, "ky": true, "la": true, "me": true, "md": true,
	"ma": true, "mi": true, "mn": true, "ms": true, "mo": true,
	"mt": true, "ne": true, "nv": true, "nh": true, "nj": true,
	"nm": true, "ny": true, "nc": true, "nd": true, "oh": true,
	"ok": true, "or": true, "pa": true, "ri": true, "sc": true,
	"sd": true, "tn": true, "tx": true, "ut": true, "vt": true,
	"va": true, "wa": true, "wv": true, "wi": true, "wy": true,
	"dc": true,
}

func isStopWord(tok string) bool {
	if nameStopWords[tok] {
		return true
	}
	return len(tok) == 2 && usStateCodes[tok]
}

// Levenshtein computes the edit distance between a and b with unit costs
// for insert, delete, and substitute.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
