package trip

import (
	"fmt"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
)

// GeoPoint is an immutable geographic coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewGeoPoint creates a GeoPoint, validating the coordinate ranges.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: lat, Longitude: lon}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate checks that latitude is within [-90, 90] and longitude within
// [-180, 180].
func (p GeoPoint) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return errs.NewValidationError(fmt.Sprintf("latitude %v out of range [-90, 90]", p.Latitude))
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return errs.NewValidationError(fmt.Sprintf("longitude %v out of range [-180, 180]", p.Longitude))
	}
	return nil
}

// GeocodeResult is the best match returned for a free-text address lookup.
type GeocodeResult struct {
	Point       GeoPoint `json:"point"`
	DisplayName string   `json:"display_name"`
}

// Route describes a drivable route between two points. Points is derived
// from EncodedPath and preserves route-traversal order.
type Route struct {
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes float64    `json:"duration_minutes"`
	EncodedPath     string     `json:"encoded_path"`
	Points          []GeoPoint `json:"points,omitempty"`
}
