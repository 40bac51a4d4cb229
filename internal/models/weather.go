package models

import "time"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WeatherObservation is the canonical current-conditions record produced by
// the fetch orchestrator. Units are already normalized: °C, km/h, km.
type WeatherObservation struct {
	Location    string      `json:"location"`
	Temperature int         `json:"temperature"`
	Condition   string      `json:"condition"`
	Humidity    int         `json:"humidity"`
	WindSpeed   int         `json:"windSpeed"`
	Visibility  int         `json:"visibility"`
	UVIndex     int         `json:"uvIndex"`
	Sunrise     string      `json:"sunrise"`
	Sunset      string      `json:"sunset"`
	Coordinates Coordinates `json:"coordinates"`
}

// ForecastSample is one raw 3-hour interval point as delivered upstream.
type ForecastSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
}

// ForecastDay is a daily aggregate produced from interval samples.
type ForecastDay struct {
	Date      string `json:"date"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
}
