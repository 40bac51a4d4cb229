package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkovalenko-dev/weather-search-api/internal/location"
)

func TestResolve_Coordinates(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		lat   float64
		lon   float64
	}{
		{name: "integers", input: "50,30", lat: 50, lon: 30},
		{name: "decimals", input: "50.45,30.52", lat: 50.45, lon: 30.52},
		{name: "negative pair", input: "-33.87,-70.66", lat: -33.87, lon: -70.66},
		{name: "mixed signs", input: "-33,151.2", lat: -33, lon: 151.2},
		{name: "trailing dot", input: "50.,30.", lat: 50, lon: 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := location.Resolve(tc.input)

			assert.Equal(t, location.KindCoordinates, target.Kind)
			assert.InDelta(t, tc.lat, target.Lat, 1e-9)
			assert.InDelta(t, tc.lon, target.Lon, 1e-9)
		})
	}
}

func TestResolve_Names(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "city", input: "Kyiv"},
		{name: "city with country", input: "Paris,FR"},
		{name: "whitespace around pair", input: " 50.45,30.52"},
		{name: "space after comma", input: "50.45, 30.52"},
		{name: "too many commas", input: "50.45,30.52,12"},
		{name: "missing longitude", input: "50.45,"},
		{name: "empty string", input: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := location.Resolve(tc.input)

			assert.Equal(t, location.KindName, target.Kind)
			assert.Equal(t, tc.input, target.Name)
		})
	}
}
