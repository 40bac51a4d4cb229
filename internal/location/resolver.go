package location

import (
	"regexp"
	"strconv"
	"strings"
)

// coordsPattern recognizes a bare "lat,lon" pair such as "50.45,30.52" or
// "-33,151.2". Anything looser (whitespace, extra commas) is a place name.
var coordsPattern = regexp.MustCompile(`^-?\d+\.?\d*,-?\d+\.?\d*$`)

type Kind int

const (
	KindName Kind = iota
	KindCoordinates
)

// Target is a classified location input, ready for an upstream lookup either
// by coordinates or by free-text name.
type Target struct {
	Kind Kind
	Name string
	Lat  float64
	Lon  float64
}

// Resolve classifies the input without touching the network. It never fails:
// inputs that do not match the coordinate pattern fall through as names and
// are left for the upstream geocoder to judge.
func Resolve(input string) Target {
	if coordsPattern.MatchString(input) {
		parts := strings.SplitN(input, ",", 2)
		lat, latErr := strconv.ParseFloat(parts[0], 64)
		lon, lonErr := strconv.ParseFloat(parts[1], 64)
		if latErr == nil && lonErr == nil {
			return Target{Kind: KindCoordinates, Lat: lat, Lon: lon}
		}
	}
	return Target{Kind: KindName, Name: input}
}
