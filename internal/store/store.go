// Package store owns the process-wide dashboard state: the live and
// historical weather snapshots, the loading/error flags, the current
// location, the recent-location list and the user preferences. Every
// mutation funnels through its operations; the HTTP layer only reads.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/gateway"
	"github.com/i474232898/weather-dashboard/internal/persist"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// maxRecentLocations caps the recent-location list; the oldest entry
// beyond the cap is dropped.
const maxRecentLocations = 5

// ErrLocationNotFound is recorded when a search yields zero matches.
var ErrLocationNotFound = errors.New("Location not found")

// Gateway is the outbound-call contract the store depends on.
type Gateway interface {
	FetchCurrentWeather(ctx context.Context, lat, lon float64, timezone string) (*gateway.ForecastResponse, error)
	FetchHistoricalWeather(ctx context.Context, lat, lon float64, timezone string) (*gateway.ForecastResponse, error)
	SearchLocations(ctx context.Context, query string) ([]gateway.GeocodingResult, error)
	ResolveDeviceLocation(ctx context.Context) (gateway.Coordinates, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) gateway.Place
}

// Store is the single source of truth consumed by the presentation
// layer. One instance is constructed at process start.
//
// Overlapping flows are not serialized against each other: two
// concurrent searches both run to completion and the later writer wins,
// matching the dashboard's last-write-wins model. Within one flow the
// steps are strictly sequential.
type Store struct {
	gw        Gateway
	persister persist.Persister

	mu                sync.Mutex
	currentWeather    *weather.WeatherSnapshot
	historicalWeather *weather.WeatherSnapshot
	loading           bool
	lastError         string
	currentLocation   *weather.Location
	recentLocations   []weather.Location
	preferences       weather.Preferences
}

// New builds the store and restores the persisted recent locations and
// preferences. All other fields start fresh.
func New(gw Gateway, p persist.Persister) *Store {
	if p == nil {
		p = persist.Nop{}
	}

	s := &Store{
		gw:          gw,
		persister:   p,
		preferences: weather.DefaultPreferences(),
	}

	state, ok, err := p.Load()
	if err != nil {
		log.Printf("failed to restore persisted state: %v", err)
	} else if ok {
		s.recentLocations = state.RecentLocations
		if state.Preferences != (weather.Preferences{}) {
			s.preferences = state.Preferences
		}
	}

	return s
}

// beginFetch marks a new fetch attempt: loading goes up and the last
// error is cleared.
func (s *Store) beginFetch() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

// endFetch clears loading. It runs deferred on every fetch path so the
// flag is never left stuck.
func (s *Store) endFetch() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

func (s *Store) setCurrentLocation(loc weather.Location) {
	s.mu.Lock()
	s.currentLocation = &loc
	s.mu.Unlock()
}

// AddRecentLocation pushes a location to the front of the recent list,
// dropping any existing entry with the same ID and anything beyond the
// cap. The change is persisted immediately.
func (s *Store) AddRecentLocation(loc weather.Location) {
	s.mu.Lock()
	filtered := make([]weather.Location, 0, len(s.recentLocations)+1)
	filtered = append(filtered, loc)
	for _, l := range s.recentLocations {
		if l.ID != loc.ID {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) > maxRecentLocations {
		filtered = filtered[:maxRecentLocations]
	}
	s.recentLocations = filtered
	s.persistLocked()
	s.mu.Unlock()
}

// RemoveRecentLocation drops the entry with the given ID, if present.
func (s *Store) RemoveRecentLocation(id int64) {
	s.mu.Lock()
	kept := s.recentLocations[:0]
	for _, l := range s.recentLocations {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.recentLocations = kept
	s.persistLocked()
	s.mu.Unlock()
}

// SetTemperatureUnit updates and persists the temperature display unit.
func (s *Store) SetTemperatureUnit(unit weather.TemperatureUnit) {
	s.mu.Lock()
	s.preferences.TemperatureUnit = unit
	s.persistLocked()
	s.mu.Unlock()
}

// SetWindSpeedUnit updates and persists the wind speed display unit.
func (s *Store) SetWindSpeedUnit(unit weather.WindSpeedUnit) {
	s.mu.Lock()
	s.preferences.WindSpeedUnit = unit
	s.persistLocked()
	s.mu.Unlock()
}

// SetTheme updates and persists the theme preference.
func (s *Store) SetTheme(theme weather.Theme) {
	s.mu.Lock()
	s.preferences.Theme = theme
	s.persistLocked()
	s.mu.Unlock()
}

// persistLocked writes the durable subset of state. Callers hold s.mu.
func (s *Store) persistLocked() {
	state := persist.State{
		RecentLocations: append([]weather.Location(nil), s.recentLocations...),
		Preferences:     s.preferences,
	}
	if err := s.persister.Save(state); err != nil {
		log.Printf("failed to persist state: %v", err)
	}
}

// FetchWeather runs the weather-fetch sub-flow: fetch current
// conditions for the coordinates and store them as the live snapshot
// bound to loc. When loc is nil a placeholder location is synthesized
// from the response. On failure the error is recorded and the prior
// snapshot is kept.
func (s *Store) FetchWeather(ctx context.Context, lat, lon float64, timezone string, loc *weather.Location) {
	s.beginFetch()
	defer s.endFetch()

	resp, err := s.gw.FetchCurrentWeather(ctx, lat, lon, timezone)
	if err != nil {
		s.setError(err.Error())
		return
	}

	location := s.locationOrSynthesized(loc, resp)
	snapshot := weather.WeatherSnapshot{
		Current:  resp.Current,
		Hourly:   resp.Hourly,
		Location: location,
	}

	s.mu.Lock()
	s.currentWeather = &snapshot
	s.mu.Unlock()
}

// FetchHistoricalWeather runs the historical sub-flow for the given
// coordinates and stores the result as the historical snapshot.
func (s *Store) FetchHistoricalWeather(ctx context.Context, lat, lon float64, timezone string, loc *weather.Location) {
	s.beginFetch()
	defer s.endFetch()

	resp, err := s.gw.FetchHistoricalWeather(ctx, lat, lon, timezone)
	if err != nil {
		s.setError(err.Error())
		return
	}

	location := s.locationOrSynthesized(loc, resp)
	snapshot := weather.WeatherSnapshot{
		Current:  resp.Current,
		Hourly:   resp.Hourly,
		Location: location,
	}

	s.mu.Lock()
	s.historicalWeather = &snapshot
	s.mu.Unlock()
}

// EnsureHistoricalWeather fires the historical sub-flow once: only when
// a live snapshot exists and no historical snapshot has been loaded
// yet. A later location change does not clear the historical snapshot,
// so it is not refetched for the new place within a session; that
// mirrors the observed dashboard behavior.
func (s *Store) EnsureHistoricalWeather(ctx context.Context) {
	s.mu.Lock()
	current := s.currentWeather
	historical := s.historicalWeather
	s.mu.Unlock()

	if current == nil || historical != nil {
		return
	}

	loc := current.Location
	s.FetchHistoricalWeather(ctx, loc.Latitude, loc.Longitude, "auto", &loc)
}

func (s *Store) locationOrSynthesized(loc *weather.Location, resp *gateway.ForecastResponse) weather.Location {
	if loc != nil {
		return *loc
	}
	timezone := resp.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	return weather.Location{
		ID:        time.Now().UnixMilli(),
		Name:      "Unknown Location",
		Latitude:  resp.Latitude,
		Longitude: resp.Longitude,
		Country:   "Unknown",
		Timezone:  timezone,
	}
}

// SearchAndSetLocation is the search-driven resolution flow: geocode
// the query, take the best-ranked match, make it the current location,
// remember it, then fetch its weather. Zero matches records
// "Location not found" and aborts; any failure leaves the previous
// weather untouched.
func (s *Store) SearchAndSetLocation(ctx context.Context, query string) {
	s.beginFetch()
	defer s.endFetch()

	results, err := s.gw.SearchLocations(ctx, query)
	if err != nil {
		s.setError(err.Error())
		return
	}
	if len(results) == 0 {
		s.setError(ErrLocationNotFound.Error())
		return
	}

	best := results[0]
	timezone := best.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	loc := weather.Location{
		ID:        best.ID,
		Name:      best.Name,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Country:   best.Country,
		Timezone:  timezone,
	}

	s.setCurrentLocation(loc)
	s.AddRecentLocation(loc)
	s.FetchWeather(ctx, best.Latitude, best.Longitude, "auto", &loc)
}

// UseDeviceLocation is the device-driven resolution flow: resolve the
// device coordinates, fetch weather there (which also yields the
// timezone), reverse-geocode a display name best-effort, and make a
// synthesized location current. A device location failure aborts before
// any weather fetch.
func (s *Store) UseDeviceLocation(ctx context.Context) {
	s.beginFetch()
	defer s.endFetch()

	coords, err := s.gw.ResolveDeviceLocation(ctx)
	if err != nil {
		s.setError(err.Error())
		return
	}

	// Fetched first to learn the timezone; the sub-flow below reuses
	// the cached response.
	resp, err := s.gw.FetchCurrentWeather(ctx, coords.Latitude, coords.Longitude, "auto")
	if err != nil {
		s.setError(err.Error())
		return
	}

	place := s.gw.ReverseGeocode(ctx, coords.Latitude, coords.Longitude)

	timezone := resp.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	loc := weather.Location{
		ID:        time.Now().UnixMilli(),
		Name:      place.Name,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		Country:   place.Country,
		Timezone:  timezone,
	}

	s.setCurrentLocation(loc)
	s.AddRecentLocation(loc)
	s.FetchWeather(ctx, coords.Latitude, coords.Longitude, "auto", &loc)
}

// CurrentWeather returns the live snapshot, if one has been loaded.
func (s *Store) CurrentWeather() (weather.WeatherSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentWeather == nil {
		return weather.WeatherSnapshot{}, false
	}
	return *s.currentWeather, true
}

// HistoricalWeather returns the historical snapshot, if loaded.
func (s *Store) HistoricalWeather() (weather.WeatherSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.historicalWeather == nil {
		return weather.WeatherSnapshot{}, false
	}
	return *s.historicalWeather, true
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the most recent failure message, empty when the last
// fetch succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// CurrentLocation returns the active location, if one is set.
func (s *Store) CurrentLocation() (weather.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentLocation == nil {
		return weather.Location{}, false
	}
	return *s.currentLocation, true
}

// RecentLocations returns a copy of the recent-location list,
// most recent first.
func (s *Store) RecentLocations() []weather.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]weather.Location, len(s.recentLocations))
	copy(out, s.recentLocations)
	return out
}

// Preferences returns the current display settings.
func (s *Store) Preferences() weather.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}
