package continuity

import "strings"

// CountryLookup resolves a 3-letter facility code to a country name.
// Swappable so the built-in table can be replaced with a full IATA
// database without touching classification logic.
type CountryLookup interface {
	// CountryForCode returns the country for a facility code, or
	// ("", false) when the code is unknown.
	CountryForCode(code string) (string, bool)
}

// StaticCountryLookup is an in-memory CountryLookup backed by a fixed table
type StaticCountryLookup struct {
	byCode map[string]string
}

// NewStaticCountryLookup creates a lookup over the built-in airport table
func NewStaticCountryLookup() *StaticCountryLookup {
	return &StaticCountryLookup{byCode: defaultAirportCountries}
}

// NewStaticCountryLookupWith creates a lookup over the built-in table
// extended with the given entries. Extra entries win on conflict.
func NewStaticCountryLookupWith(extra map[string]string) *StaticCountryLookup {
	merged := make(map[string]string, len(defaultAirportCountries)+len(extra))
	for code, country := range defaultAirportCountries {
		merged[code] = country
	}
	for code, country := range extra {
		merged[strings.ToUpper(code)] = country
	}
	return &StaticCountryLookup{byCode: merged}
}

// CountryForCode resolves a facility code, case-insensitively
func (l *StaticCountryLookup) CountryForCode(code string) (string, bool) {
	country, ok := l.byCode[strings.ToUpper(code)]
	return country, ok
}

// defaultAirportCountries covers major international hubs. Not exhaustive;
// unknown codes degrade the classification to UNKNOWN rather than erroring.
var defaultAirportCountries = map[string]string{
	// United States
	"JFK": "United States", "LGA": "United States", "EWR": "United States",
	"LAX": "United States", "SFO": "United States", "ORD": "United States",
	"ATL": "United States", "DFW": "United States", "DEN": "United States",
	"SEA": "United States", "MIA": "United States", "BOS": "United States",
	"IAD": "United States", "DCA": "United States", "PHX": "United States",
	"LAS": "United States", "HNL": "United States", "IAH": "United States",
	"MCO": "United States", "MSP": "United States",

	// Canada
	"YYZ": "Canada", "YVR": "Canada", "YUL": "Canada", "YYC": "Canada",

	// Mexico and Latin America
	"MEX": "Mexico", "CUN": "Mexico", "GRU": "Brazil", "GIG": "Brazil",
	"EZE": "Argentina", "SCL": "Chile", "BOG": "Colombia", "LIM": "Peru",

	// United Kingdom and Ireland
	"LHR": "United Kingdom", "LGW": "United Kingdom", "STN": "United Kingdom",
	"MAN": "United Kingdom", "EDI": "United Kingdom", "DUB": "Ireland",

	// Europe
	"CDG": "France", "ORY": "France", "NCE": "France",
	"FRA": "Germany", "MUC": "Germany", "BER": "Germany",
	"AMS": "Netherlands", "BRU": "Belgium", "ZRH": "Switzerland",
	"GVA": "Switzerland", "VIE": "Austria", "MAD": "Spain",
	"BCN": "Spain", "LIS": "Portugal", "FCO": "Italy", "MXP": "Italy",
	"ATH": "Greece", "CPH": "Denmark", "OSL": "Norway", "ARN": "Sweden",
	"HEL": "Finland", "WAW": "Poland", "PRG": "Czech Republic",
	"BUD": "Hungary", "IST": "Turkey",

	// Middle East
	"DXB": "United Arab Emirates", "AUH": "United Arab Emirates",
	"DOH": "Qatar", "TLV": "Israel", "RUH": "Saudi Arabia",
	"JED": "Saudi Arabia",

	// Africa
	"CAI": "Egypt", "JNB": "South Africa", "CPT": "South Africa",
	"NBO": "Kenya", "LOS": "Nigeria", "CMN": "Morocco",

	// Asia
	"NRT": "Japan", "HND": "Japan", "KIX": "Japan",
	"ICN": "South Korea", "PEK": "China", "PVG": "China",
	"CAN": "China", "HKG": "Hong Kong", "TPE": "Taiwan",
	"SIN": "Singapore", "BKK": "Thailand", "KUL": "Malaysia",
	"CGK": "Indonesia", "DPS": "Indonesia", "MNL": "Philippines",
	"SGN": "Vietnam", "HAN": "Vietnam", "DEL": "India",
	"BOM": "India", "BLR": "India", "CMB": "Sri Lanka",

	// Oceania
	"SYD": "Australia", "MEL": "Australia", "BNE": "Australia",
	"PER": "Australia", "AKL": "New Zealand", "CHC": "New Zealand",
	"NAN": "Fiji", "PPT": "French Polynesia",
}
