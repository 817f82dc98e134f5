package gateway

import "errors"

var (
	// ErrFetchFailed covers any transport, non-2xx or decode failure
	// from the forecast endpoint. Callers get no more detail and no
	// retry happens.
	ErrFetchFailed = errors.New("failed to fetch weather data")

	// ErrSearchFailed covers transport failures of the geocoding
	// search endpoint. Zero matches is not an error.
	ErrSearchFailed = errors.New("failed to search location")

	// ErrUnsupported is returned when no device location capability is
	// configured.
	ErrUnsupported = errors.New("device location is not supported")
)

// LocationError reports why a device location fix could not be
// obtained (denied, timed out, upstream failure).
type LocationError struct {
	Reason string
}

func (e *LocationError) Error() string {
	return "device location error: " + e.Reason
}
