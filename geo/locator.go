// Package geo defines the geolocation capability the donation form uses to
// pre-fill a pickup location. Failure is expected and non-fatal: callers fall
// back to manual text entry.
package geo

import (
	"context"
	"errors"
	"os"
	"strconv"
)

var ErrUnavailable = errors.New("geo: location detection unavailable")

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locator yields the current coordinates or an error.
type Locator interface {
	Current(ctx context.Context) (Coordinates, error)
}

// EnvLocator reads a fixed position from DEFAULT_LATITUDE / DEFAULT_LONGITUDE.
// It stands in for a real positioning source; when the variables are absent or
// malformed it reports ErrUnavailable like a denied browser prompt would.
type EnvLocator struct{}

func (EnvLocator) Current(ctx context.Context) (Coordinates, error) {
	latStr := os.Getenv("DEFAULT_LATITUDE")
	lngStr := os.Getenv("DEFAULT_LONGITUDE")
	if latStr == "" || lngStr == "" {
		return Coordinates{}, ErrUnavailable
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Coordinates{}, ErrUnavailable
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return Coordinates{}, ErrUnavailable
	}

	return Coordinates{Latitude: lat, Longitude: lng}, nil
}
