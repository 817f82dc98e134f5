package weather

// TemperatureUnit selects the display unit for temperatures.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// WindSpeedUnit selects the display unit for wind speeds.
type WindSpeedUnit string

const (
	UnitKmh WindSpeedUnit = "kmh"
	UnitMph WindSpeedUnit = "mph"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Location identifies a place we can fetch weather for. Identity is ID:
// two locations are the same iff their IDs match. A location is either
// built from a geocoding result or synthesized (e.g. from device
// coordinates, with a timestamp as the ID). Locations are immutable;
// they are replaced wholesale, never patched in place.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// CurrentConditions is the latest observed reading at a location.
type CurrentConditions struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature_2m"`
	WindSpeed   float64 `json:"wind_speed_10m"`
}

// HourlySeries holds per-hour readings as four parallel arrays.
// Invariant: all four slices share the same length, and index i across
// all of them describes the same hour.
type HourlySeries struct {
	Time             []string  `json:"time"`
	Temperature      []float64 `json:"temperature_2m"`
	RelativeHumidity []float64 `json:"relative_humidity_2m"`
	WindSpeed        []float64 `json:"wind_speed_10m"`
}

// Len returns the number of hourly entries.
func (h HourlySeries) Len() int { return len(h.Time) }

// HourlyPoint is one hour's readings pulled out of an HourlySeries.
type HourlyPoint struct {
	Time             string  `json:"time"`
	Temperature      float64 `json:"temperature_2m"`
	RelativeHumidity float64 `json:"relative_humidity_2m"`
	WindSpeed        float64 `json:"wind_speed_10m"`
}

// DailySummary aggregates one calendar day of hourly readings. It is
// derived on demand from an HourlySeries and never persisted.
type DailySummary struct {
	Date         string        `json:"date"`
	MaxTemp      float64       `json:"maxTemp"`
	MinTemp      float64       `json:"minTemp"`
	AvgHumidity  int           `json:"avgHumidity"`
	MaxWindSpeed float64       `json:"maxWindSpeed"`
	HourlyData   []HourlyPoint `json:"hourlyData"`
}

// WeatherSnapshot is one fetched weather payload bound to a location.
// The store keeps two independent snapshots, the live one and a
// trailing-window historical one. They are never merged.
type WeatherSnapshot struct {
	Current  CurrentConditions `json:"current"`
	Hourly   HourlySeries      `json:"hourly"`
	Location Location          `json:"location"`
}

// Preferences are the user's display settings. They are mutated only
// through the store's setters and persisted across sessions.
type Preferences struct {
	TemperatureUnit TemperatureUnit `json:"temperatureUnit"`
	WindSpeedUnit   WindSpeedUnit   `json:"windSpeedUnit"`
	Theme           Theme           `json:"theme"`
}

// DefaultPreferences returns the settings used before the user changes
// anything.
func DefaultPreferences() Preferences {
	return Preferences{
		TemperatureUnit: UnitCelsius,
		WindSpeedUnit:   UnitKmh,
		Theme:           ThemeAuto,
	}
}
