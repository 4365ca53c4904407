package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Same point
	assert.InDelta(t, 0, HaversineDistance(40.7128, -74.0060, 40.7128, -74.0060), 0.001)

	// JFK to LAX, roughly 3,974 km
	d := HaversineDistance(40.6413, -73.7781, 33.9416, -118.4085)
	assert.InDelta(t, 3974000, d, 15000)

	// Short hop: ~111 m per 0.001 degree of latitude
	short := HaversineDistance(48.8584, 2.2945, 48.8594, 2.2945)
	assert.InDelta(t, 111.2, short, 1.0)
}
