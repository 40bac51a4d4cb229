package models

import "time"

// DateRange is an optional search window attached to a saved record. It is
// either fully present or absent; a record never carries only one bound.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeatherSnapshot is the copy of a WeatherObservation's fields embedded in a
// persisted record at save time.
type WeatherSnapshot struct {
	Temperature float64      `json:"temperature"`
	Condition   string       `json:"condition"`
	Humidity    int          `json:"humidity"`
	WindSpeed   float64      `json:"windSpeed"`
	Visibility  float64      `json:"visibility"`
	UVIndex     int          `json:"uvIndex"`
	Sunrise     string       `json:"sunrise"`
	Sunset      string       `json:"sunset"`
	Coordinates *Coordinates `json:"coordinates"`
}

// WeatherSearchRecord is a persisted weather search. Absent sub-objects are
// nil, never partially populated.
type WeatherSearchRecord struct {
	ID         int64           `json:"id"`
	Location   string          `json:"location"`
	SearchedAt time.Time       `json:"dateSearched"`
	DateRange  *DateRange      `json:"dateRange"`
	Weather    WeatherSnapshot `json:"weatherData"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// SaveSearchRequest is the inbound body for creating a history record.
// Temperature is a pointer so that a missing field is distinguishable from 0.
type SaveSearchRequest struct {
	Location       string       `json:"location"`
	DateRangeStart string       `json:"dateRangeStart"`
	DateRangeEnd   string       `json:"dateRangeEnd"`
	Temperature    *float64     `json:"temperature"`
	Condition      string       `json:"condition"`
	Humidity       int          `json:"humidity"`
	WindSpeed      float64      `json:"windSpeed"`
	Visibility     float64      `json:"visibility"`
	UVIndex        int          `json:"uvIndex"`
	Sunrise        string       `json:"sunrise"`
	Sunset         string       `json:"sunset"`
	Coordinates    *Coordinates `json:"coordinates"`
}

// UpdateSearchRequest carries the mutable subset of a record. Date range and
// coordinates are deliberately absent from the schema: they are immutable
// after creation, so a client cannot change them even by supplying them.
type UpdateSearchRequest struct {
	Location    string   `json:"location"`
	Temperature *float64 `json:"temperature"`
	Condition   string   `json:"condition"`
	Humidity    int      `json:"humidity"`
	WindSpeed   float64  `json:"windSpeed"`
	Visibility  float64  `json:"visibility"`
	UVIndex     int      `json:"uvIndex"`
}

// ExportRow is the flat table shape used by the export pipeline. It mirrors
// the weather_searches columns rather than the nested API representation.
type ExportRow struct {
	ID             int64    `json:"id"`
	Location       string   `json:"location"`
	DateSearched   string   `json:"date_searched"`
	DateRangeStart *string  `json:"date_range_start"`
	DateRangeEnd   *string  `json:"date_range_end"`
	Temperature    float64  `json:"temperature"`
	Condition      string   `json:"condition"`
	Humidity       int      `json:"humidity"`
	WindSpeed      float64  `json:"wind_speed"`
	Visibility     float64  `json:"visibility"`
	UVIndex        int      `json:"uv_index"`
	Sunrise        string   `json:"sunrise"`
	Sunset         string   `json:"sunset"`
	CoordinatesLat *float64 `json:"coordinates_lat"`
	CoordinatesLng *float64 `json:"coordinates_lng"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}
