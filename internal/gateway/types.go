package gateway

import "github.com/i474232898/weather-dashboard/internal/weather"

// ForecastResponse is the payload returned by the Open-Meteo forecast
// endpoint, reduced to the fields the dashboard consumes. The hourly
// arrays are index-aligned.
type ForecastResponse struct {
	Latitude  float64                   `json:"latitude"`
	Longitude float64                   `json:"longitude"`
	Timezone  string                    `json:"timezone"`
	Current   weather.CurrentConditions `json:"current"`
	Hourly    weather.HourlySeries      `json:"hourly"`
}

// GeocodingResult is one candidate location from the geocoding search
// endpoint, best matches first.
type GeocodingResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone,omitempty"`
	Admin1    string  `json:"admin1,omitempty"`
	Admin2    string  `json:"admin2,omitempty"`
	Admin3    string  `json:"admin3,omitempty"`
}

// Coordinates is a device position fix.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the best-effort result of reverse geocoding.
type Place struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// FallbackPlace is returned when reverse geocoding fails or yields no
// usable address. Reverse geocoding is an enrichment, never a blocker.
var FallbackPlace = Place{Name: "Current Location", Country: "Unknown"}
