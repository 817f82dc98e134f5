// Package gateway wraps the outbound HTTP calls of the dashboard
// (forecast, historical forecast, geocoding search, reverse geocoding,
// device location) behind one contract, with a TTL cache in front of
// the cacheable calls and a circuit breaker around each upstream.
package gateway

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/cache"
)

const (
	defaultForecastBaseURL  = "https://api.open-meteo.com/v1"
	defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"
	defaultReverseBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent        = "weather-dashboard/1.0"

	// historicalPastDays is the trailing window requested from the
	// forecast endpoint for historical data.
	historicalPastDays = 10
)

// Config bundles the gateway's collaborators and endpoints. Zero-value
// URL fields fall back to the public services.
type Config struct {
	Client                *http.Client
	ForecastBaseURL       string
	GeocodingBaseURL      string
	ReverseGeocodeBaseURL string
	UserAgent             string
	CacheTTL              time.Duration
	Locator               DeviceLocator
}

// Gateway performs the dashboard's outbound calls. Both forecast
// variants share one cache; search results have their own. Cache keys
// are derived from the call's semantic parameters, so equal requests
// within the TTL never touch the network.
type Gateway struct {
	client     *http.Client
	forecast   string
	geocoding  string
	reverse    string
	userAgent  string
	locator    DeviceLocator
	forecastCB *gobreaker.CircuitBreaker
	geocodeCB  *gobreaker.CircuitBreaker
	reverseCB  *gobreaker.CircuitBreaker

	weatherCache *cache.Cache[*ForecastResponse]
	searchCache  *cache.Cache[[]GeocodingResult]
}

// New builds a Gateway. A nil Locator means the platform offers no
// device location capability.
func New(cfg Config) *Gateway {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.ForecastBaseURL == "" {
		cfg.ForecastBaseURL = defaultForecastBaseURL
	}
	if cfg.GeocodingBaseURL == "" {
		cfg.GeocodingBaseURL = defaultGeocodingBaseURL
	}
	if cfg.ReverseGeocodeBaseURL == "" {
		cfg.ReverseGeocodeBaseURL = defaultReverseBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	return &Gateway{
		client:       cfg.Client,
		forecast:     cfg.ForecastBaseURL,
		geocoding:    cfg.GeocodingBaseURL,
		reverse:      cfg.ReverseGeocodeBaseURL,
		userAgent:    cfg.UserAgent,
		locator:      cfg.Locator,
		forecastCB:   newBreaker("forecast"),
		geocodeCB:    newBreaker("geocoding"),
		reverseCB:    newBreaker("reverse-geocoding"),
		weatherCache: cache.New[*ForecastResponse](cfg.CacheTTL),
		searchCache:  cache.New[[]GeocodingResult](cfg.CacheTTL),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FetchCurrentWeather returns current conditions plus the hourly series
// for the coordinates. An empty timezone means "auto".
func (g *Gateway) FetchCurrentWeather(ctx context.Context, lat, lon float64, timezone string) (*ForecastResponse, error) {
	if timezone == "" {
		timezone = "auto"
	}

	key := "weather_" + formatCoord(lat) + "_" + formatCoord(lon) + "_" + timezone
	if cached, ok := g.weatherCache.Get(key); ok {
		return cached, nil
	}

	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("current", "temperature_2m,wind_speed_10m")
	values.Set("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m")
	values.Set("timezone", timezone)

	var resp ForecastResponse
	if err := doJSONGet(ctx, g.client, g.forecastCB, g.forecast+"/forecast?"+values.Encode(), nil, &resp); err != nil {
		log.Printf("forecast fetch failed for (%s, %s): %v", formatCoord(lat), formatCoord(lon), err)
		return nil, ErrFetchFailed
	}

	g.weatherCache.Set(key, &resp)
	return &resp, nil
}

// FetchHistoricalWeather returns the hourly series for the trailing
// ten days at the coordinates.
func (g *Gateway) FetchHistoricalWeather(ctx context.Context, lat, lon float64, timezone string) (*ForecastResponse, error) {
	if timezone == "" {
		timezone = "auto"
	}

	key := "historical_" + formatCoord(lat) + "_" + formatCoord(lon) + "_" + timezone
	if cached, ok := g.weatherCache.Get(key); ok {
		return cached, nil
	}

	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("past_days", strconv.Itoa(historicalPastDays))
	values.Set("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m")
	values.Set("timezone", timezone)

	var resp ForecastResponse
	if err := doJSONGet(ctx, g.client, g.forecastCB, g.forecast+"/forecast?"+values.Encode(), nil, &resp); err != nil {
		log.Printf("historical fetch failed for (%s, %s): %v", formatCoord(lat), formatCoord(lon), err)
		return nil, ErrFetchFailed
	}

	g.weatherCache.Set(key, &resp)
	return &resp, nil
}

// SearchLocations resolves a free-text query to candidate locations,
// best matches first. Zero matches yields an empty slice, not an error.
func (g *Gateway) SearchLocations(ctx context.Context, query string) ([]GeocodingResult, error) {
	key := "geocode_" + query
	if cached, ok := g.searchCache.Get(key); ok {
		return cached, nil
	}

	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "10")
	values.Set("language", "en")
	values.Set("format", "json")

	// An absent results key means the service found nothing.
	var payload struct {
		Results []GeocodingResult `json:"results"`
	}
	if err := doJSONGet(ctx, g.client, g.geocodeCB, g.geocoding+"/search?"+values.Encode(), nil, &payload); err != nil {
		log.Printf("location search failed for %q: %v", query, err)
		return nil, ErrSearchFailed
	}

	if payload.Results == nil {
		return []GeocodingResult{}, nil
	}

	g.searchCache.Set(key, payload.Results)
	return payload.Results, nil
}

// ResolveDeviceLocation returns the device's coordinates, or
// ErrUnsupported when no locator is configured.
func (g *Gateway) ResolveDeviceLocation(ctx context.Context) (Coordinates, error) {
	if g.locator == nil {
		return Coordinates{}, ErrUnsupported
	}
	return g.locator.Locate(ctx)
}

// ReverseGeocode resolves coordinates to a display name and country.
// It never fails: any upstream problem yields FallbackPlace, since the
// name is an enrichment rather than a required step.
func (g *Gateway) ReverseGeocode(ctx context.Context, lat, lon float64) Place {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("format", "json")
	values.Set("addressdetails", "1")
	values.Set("accept-language", "en")

	// Nominatim's usage policy requires an identifying User-Agent.
	headers := map[string]string{"User-Agent": g.userAgent}

	var payload struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			Suburb  string `json:"suburb"`
			County  string `json:"county"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"address"`
	}

	if err := doJSONGet(ctx, g.client, g.reverseCB, g.reverse+"/reverse?"+values.Encode(), headers, &payload); err != nil {
		log.Printf("reverse geocoding failed for (%s, %s): %v", formatCoord(lat), formatCoord(lon), err)
		return FallbackPlace
	}

	addr := payload.Address
	name := firstNonEmpty(addr.City, addr.Town, addr.Village, addr.Suburb, addr.County, addr.State, addr.Country)
	if name == "" {
		return FallbackPlace
	}

	country := addr.Country
	if country == "" {
		country = FallbackPlace.Country
	}
	return Place{Name: name, Country: country}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
