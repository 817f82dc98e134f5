package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"latitude": 48.85,
	"longitude": 2.35,
	"timezone": "Europe/Paris",
	"current": {"time": "2024-03-02T12:00", "temperature_2m": 14.3, "wind_speed_10m": 9.7},
	"hourly": {
		"time": ["2024-03-02T11:00", "2024-03-02T12:00"],
		"temperature_2m": [13.1, 14.3],
		"relative_humidity_2m": [70, 65],
		"wind_speed_10m": [8.2, 9.7]
	}
}`

func newTestGateway(t *testing.T, handler http.Handler) (*Gateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw := New(Config{
		Client:                srv.Client(),
		ForecastBaseURL:       srv.URL,
		GeocodingBaseURL:      srv.URL,
		ReverseGeocodeBaseURL: srv.URL,
		UserAgent:             "weather-dashboard-test/1.0",
		CacheTTL:              time.Minute,
	})
	return gw, srv
}

func TestFetchCurrentWeather(t *testing.T) {
	var calls int
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "48.85", q.Get("latitude"))
		assert.Equal(t, "2.35", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,wind_speed_10m", q.Get("current"))
		assert.Equal(t, "temperature_2m,relative_humidity_2m,wind_speed_10m", q.Get("hourly"))
		assert.Equal(t, "auto", q.Get("timezone"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastBody))
	}))

	resp, err := gw.FetchCurrentWeather(context.Background(), 48.85, 2.35, "auto")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", resp.Timezone)
	assert.Equal(t, 14.3, resp.Current.Temperature)
	assert.Equal(t, 2, resp.Hourly.Len())

	// A second identical call is served from the cache.
	again, err := gw.FetchCurrentWeather(context.Background(), 48.85, 2.35, "auto")
	require.NoError(t, err)
	assert.Equal(t, resp, again)
	assert.Equal(t, 1, calls)
}

func TestFetchCurrentWeatherEmptyTimezoneDefaultsToAuto(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "auto", r.URL.Query().Get("timezone"))
		w.Write([]byte(forecastBody))
	}))

	_, err := gw.FetchCurrentWeather(context.Background(), 48.85, 2.35, "")
	require.NoError(t, err)
}

func TestFetchCurrentWeatherUpstreamFailure(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := gw.FetchCurrentWeather(context.Background(), 48.85, 2.35, "auto")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchHistoricalWeather(t *testing.T) {
	var calls int
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("past_days"))
		assert.Empty(t, q.Get("current"))
		w.Write([]byte(forecastBody))
	}))

	_, err := gw.FetchHistoricalWeather(context.Background(), 48.85, 2.35, "auto")
	require.NoError(t, err)

	// Historical and current use distinct cache keys, so the first
	// historical call always goes out; the second does not.
	_, err = gw.FetchHistoricalWeather(context.Background(), 48.85, 2.35, "auto")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSearchLocations(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris", q.Get("name"))
		assert.Equal(t, "10", q.Get("count"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "json", q.Get("format"))
		w.Write([]byte(`{"results": [{"id": 1, "name": "Paris", "latitude": 48.85, "longitude": 2.35, "country": "France", "timezone": "Europe/Paris"}]}`))
	}))

	results, err := gw.SearchLocations(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Paris", results[0].Name)
	assert.Equal(t, int64(1), results[0].ID)
}

func TestSearchLocationsNoResultsKey(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generationtime_ms": 0.5}`))
	}))

	results, err := gw.SearchLocations(context.Background(), "Nowhereville")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLocationsTransportFailure(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))

	_, err := gw.SearchLocations(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestReverseGeocodePicksMostSpecificField(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "weather-dashboard-test/1.0", r.Header.Get("User-Agent"))
		q := r.URL.Query()
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "1", q.Get("addressdetails"))
		w.Write([]byte(`{"address": {"town": "Fontainebleau", "county": "Seine-et-Marne", "country": "France"}}`))
	}))

	place := gw.ReverseGeocode(context.Background(), 48.4, 2.7)
	assert.Equal(t, "Fontainebleau", place.Name)
	assert.Equal(t, "France", place.Country)
}

func TestReverseGeocodeFallsBackOnFailure(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))

	place := gw.ReverseGeocode(context.Background(), 0, 0)
	assert.Equal(t, FallbackPlace, place)
}

func TestReverseGeocodeFallsBackOnEmptyAddress(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address": {}}`))
	}))

	place := gw.ReverseGeocode(context.Background(), 0, 0)
	assert.Equal(t, FallbackPlace, place)
}

func TestResolveDeviceLocationUnsupported(t *testing.T) {
	gw := New(Config{})

	_, err := gw.ResolveDeviceLocation(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}
