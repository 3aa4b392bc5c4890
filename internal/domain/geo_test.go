package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	// Manila to Cebu City is roughly 570 km.
	d := Haversine(14.5995, 120.9842, 10.3157, 123.8854)
	assert.InDelta(t, 571, d, 5)

	assert.Zero(t, Haversine(14.5, 120.5, 14.5, 120.5))

	// One degree of latitude along a meridian.
	assert.InDelta(t, 111.19, Haversine(10, 125, 11, 125), 0.01)
}

func TestBearing(t *testing.T) {
	assert.InDelta(t, 0, Bearing(10, 125, 11, 125), 1e-6)
	assert.InDelta(t, 180, Bearing(11, 125, 10, 125), 1e-6)
	assert.InDelta(t, 90, Bearing(0, 125, 0, 126), 1e-6)
	assert.InDelta(t, 270, Bearing(0, 126, 0, 125), 1e-6)
}

func TestDestination(t *testing.T) {
	lat, lon := Destination(10, 125, 0, 111.19)
	assert.InDelta(t, 11, lat, 0.001)
	assert.InDelta(t, 125, lon, 0.001)

	lat, lon = Destination(12, 126, 270, 200)
	assert.InDelta(t, 200, Haversine(12, 126, lat, lon), 0.01)
}

func TestDistanceToCoast(t *testing.T) {
	samples := []Coordinate{{Lat: 10, Lon: 125}, {Lat: 20, Lon: 125}}
	assert.InDelta(t, 111.19, DistanceToCoast(11, 125, samples), 0.01)
	assert.True(t, DistanceToCoast(0, 0, nil) > 1e9)
}

func TestInRegionOfInterest(t *testing.T) {
	assert.True(t, InRegionOfInterest(14.5, 125.0), "east of Luzon")
	assert.True(t, InRegionOfInterest(7.0, 117.0), "south-west corner")
	assert.False(t, InRegionOfInterest(22.0, 117.0), "north of the notch, South China Sea")
	assert.False(t, InRegionOfInterest(14.5, 140.0), "east of 135E")
	assert.False(t, InRegionOfInterest(30.0, 130.0), "north of 25N")
}

func TestNearestCity(t *testing.T) {
	city, dist, ok := NearestCity(11.25, 125.0, Cities())
	require.True(t, ok)
	assert.Equal(t, "Tacloban", city.Name)
	assert.Less(t, dist, 5.0)

	_, _, ok = NearestCity(0, 0, nil)
	assert.False(t, ok)
}
