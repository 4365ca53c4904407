package models

// LatLng is a WGS84 coordinate pair
type LatLng struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// Address holds the structured address fields of a location.
// All fields are optional; imported segments frequently carry only a subset.
type Address struct {
	Street  string `json:"street,omitempty" db:"street"`
	City    string `json:"city,omitempty" db:"city"`
	State   string `json:"state,omitempty" db:"state"`
	Country string `json:"country,omitempty" db:"country"`
}

// Location represents a physical place referenced by a segment.
// Immutable value type: engine code never mutates a Location in place.
type Location struct {
	Name        string   `json:"name" db:"name"`
	Code        string   `json:"code,omitempty" db:"code"` // 3-letter facility code (airport/station)
	Coordinates *LatLng  `json:"coordinates,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// HasCode reports whether the location carries a facility code
func (l *Location) HasCode() bool {
	return l != nil && l.Code != ""
}

// HasCoordinates reports whether the location carries a coordinate pair
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Coordinates != nil
}

// City returns the best available city value: the structured address city
// when present, otherwise empty.
func (l *Location) City() string {
	if l == nil || l.Address == nil {
		return ""
	}
	return l.Address.City
}

// Country returns the structured address country, or empty
func (l *Location) Country() string {
	if l == nil || l.Address == nil {
		return ""
	}
	return l.Address.Country
}
