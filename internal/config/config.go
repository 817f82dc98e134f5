package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig carries everything main needs to wire the dashboard.
type AppConfig struct {
	Port string

	// Outbound HTTP client timeout for weather/geocoding calls.
	HTTPTimeout time.Duration

	// CacheTTL bounds how long fetched responses are reused.
	CacheTTL time.Duration

	// RefreshInterval controls the background re-fetch of the current
	// location's weather. Zero disables the refresh job.
	RefreshInterval time.Duration

	ForecastBaseURL       string
	GeocodingBaseURL      string
	ReverseGeocodeBaseURL string
	UserAgent             string

	// DeviceLocationBaseURL points at an IP geolocation endpoint.
	// Empty means the device-location capability is unsupported.
	DeviceLocationBaseURL string

	// RedisAddr selects the Redis persistence backend when set;
	// otherwise state is kept in StateFile.
	RedisAddr string
	StateFile string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:                  getenvDefault("PORT", "8080"),
		ForecastBaseURL:       getenvDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1"),
		GeocodingBaseURL:      getenvDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com/v1"),
		ReverseGeocodeBaseURL: getenvDefault("REVERSE_GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		UserAgent:             getenvDefault("REVERSE_GEOCODE_USER_AGENT", "weather-dashboard/1.0"),
		DeviceLocationBaseURL: getenvDefault("DEVICE_LOCATION_BASE_URL", "http://ip-api.com/json"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		StateFile:             getenvDefault("STATE_FILE", "weather-storage.json"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
