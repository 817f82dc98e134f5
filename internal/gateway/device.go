package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// locateTimeout bounds a single device location attempt.
	locateTimeout = 10 * time.Second

	// fixMaxAge is how long a previously obtained fix may be reused.
	fixMaxAge = 5 * time.Minute
)

// DeviceLocator yields the device's coordinates. Implementations may
// reuse a recent fix instead of querying again.
type DeviceLocator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// IPLocator resolves the device position from an IP geolocation
// endpoint (ip-api.com compatible). A fix younger than fixMaxAge is
// served from memory.
type IPLocator struct {
	client  *http.Client
	baseURL string
	circuit *gobreaker.CircuitBreaker

	mu      sync.Mutex
	lastFix Coordinates
	fixedAt time.Time
	now     func() time.Time
}

// NewIPLocator builds a locator against the given base URL, e.g.
// "http://ip-api.com/json".
func NewIPLocator(client *http.Client, baseURL string) *IPLocator {
	return &IPLocator{
		client:  client,
		baseURL: baseURL,
		circuit: newBreaker("geolocate"),
		now:     time.Now,
	}
}

// Locate returns the device coordinates, preferring a cached fix up to
// five minutes old. Failures are reported as *LocationError.
func (l *IPLocator) Locate(ctx context.Context) (Coordinates, error) {
	l.mu.Lock()
	if !l.fixedAt.IsZero() && l.now().Sub(l.fixedAt) < fixMaxAge {
		fix := l.lastFix
		l.mu.Unlock()
		return fix, nil
	}
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, locateTimeout)
	defer cancel()

	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	if err := doJSONGet(ctx, l.client, l.circuit, l.baseURL, nil, &payload); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Coordinates{}, &LocationError{Reason: "timed out"}
		}
		return Coordinates{}, &LocationError{Reason: err.Error()}
	}

	if payload.Status != "" && payload.Status != "success" {
		reason := payload.Message
		if reason == "" {
			reason = fmt.Sprintf("lookup failed with status %q", payload.Status)
		}
		return Coordinates{}, &LocationError{Reason: reason}
	}

	fix := Coordinates{Latitude: payload.Lat, Longitude: payload.Lon}

	l.mu.Lock()
	l.lastFix = fix
	l.fixedAt = l.now()
	l.mu.Unlock()

	return fix, nil
}
