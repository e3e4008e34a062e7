// internal/models/weather.go
package models

import "time"

// WeatherSnapshot is a location-based weather reading. A snapshot may be
// marked IsFallback (synthesized because no provider answered) or IsStale
// (last good reading past its freshness window); consumers must still treat
// it as a complete, valid value.
type WeatherSnapshot struct {
	Temperature float64   `json:"temperature"` // degrees Fahrenheit
	Condition   string    `json:"condition"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"` // mph
	Location    string    `json:"location"`
	IsFallback  bool      `json:"isFallback"`
	IsStale     bool      `json:"isStale"`
	FetchedAt   time.Time `json:"fetchedAt"`
}
