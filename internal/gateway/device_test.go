package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLocatorLocate(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status": "success", "lat": 47.4979, "lon": 19.0402}`))
	}))
	defer srv.Close()

	l := NewIPLocator(srv.Client(), srv.URL)

	fix, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Latitude: 47.4979, Longitude: 19.0402}, fix)

	// A fix younger than five minutes is reused without a new request.
	again, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fix, again)
	assert.Equal(t, 1, calls)
}

func TestIPLocatorExpiredFixRefreshes(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status": "success", "lat": 1, "lon": 2}`))
	}))
	defer srv.Close()

	now := time.Now()
	l := NewIPLocator(srv.Client(), srv.URL)
	l.now = func() time.Time { return now }

	_, err := l.Locate(context.Background())
	require.NoError(t, err)

	now = now.Add(fixMaxAge + time.Second)
	_, err = l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestIPLocatorDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail", "message": "private range"}`))
	}))
	defer srv.Close()

	l := NewIPLocator(srv.Client(), srv.URL)

	_, err := l.Locate(context.Background())
	var locErr *LocationError
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, "private range", locErr.Reason)
}

func TestIPLocatorTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := NewIPLocator(srv.Client(), srv.URL)

	_, err := l.Locate(context.Background())
	var locErr *LocationError
	assert.True(t, errors.As(err, &locErr))
}
