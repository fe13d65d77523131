package application

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
	"github.com/guber-mobility/service-trips/internal/domain/trip"
)

// Geocoder resolves a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*trip.GeocodeResult, error)
}

// Router computes a drivable route between two points.
type Router interface {
	Route(ctx context.Context, a, b trip.GeoPoint) (*trip.Route, error)
}

// EstimateRequest holds the data needed to estimate a trip.
type EstimateRequest struct {
	PickupAddress      string `json:"pickup_address" binding:"required"`
	DestinationAddress string `json:"destination_address" binding:"required"`
	VehicleClass       string `json:"vehicle_class"`
	Pet                bool   `json:"pet"`
}

// TripEstimate is the composite result of one estimate request. It is
// constructed once per request and never persisted.
type TripEstimate struct {
	PickupAddress      string         `json:"pickup_address"`
	DestinationAddress string         `json:"destination_address"`
	PickupPoint        trip.GeoPoint  `json:"pickup_point"`
	DestinationPoint   trip.GeoPoint  `json:"destination_point"`
	Route              trip.Route     `json:"route"`
	Fare               trip.FareQuote `json:"fare"`
}

// EstimateService orchestrates geocoding, routing, path decoding and fare
// computation into a single trip estimate.
type EstimateService struct {
	geocoder Geocoder
	router   Router
	fare     *trip.FareCalculator
	logger   *zap.Logger
}

// NewEstimateService creates a new EstimateService.
func NewEstimateService(
	geocoder Geocoder,
	router Router,
	fare *trip.FareCalculator,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
		geocoder: geocoder,
		router:   router,
		fare:     fare,
		logger:   logger,
	}
}

// Estimate resolves both addresses, routes between them, decodes the path
// geometry and computes the fare. The three remote calls run strictly in
// order and the first failure aborts the pipeline; a partial estimate is
// never returned.
func (s *EstimateService) Estimate(ctx context.Context, req EstimateRequest) (*TripEstimate, error) {
	pickupAddr := strings.TrimSpace(req.PickupAddress)
	destAddr := strings.TrimSpace(req.DestinationAddress)
	if pickupAddr == "" {
		return nil, errs.NewValidationError("pickup_address is required")
	}
	if destAddr == "" {
		return nil, errs.NewValidationError("destination_address is required")
	}
	class, err := parseClassOrDefault(req.VehicleClass)
	if err != nil {
		return nil, err
	}

	s.logger.Info("estimating trip",
		zap.String("pickup", pickupAddr),
		zap.String("destination", destAddr),
		zap.String("vehicle_class", class.String()),
		zap.Bool("pet", req.Pet),
	)

	pickup, err := s.geocoder.Geocode(ctx, pickupAddr)
	if err != nil {
		return nil, err
	}

	dest, err := s.geocoder.Geocode(ctx, destAddr)
	if err != nil {
		return nil, err
	}

	route, err := s.router.Route(ctx, pickup.Point, dest.Point)
	if err != nil {
		return nil, err
	}

	points, err := trip.DecodePolyline(route.EncodedPath, trip.Precision6)
	if err != nil {
		return nil, err
	}
	route.Points = points

	quote, err := s.fare.Calculate(route.DistanceKm, class, req.Pet)
	if err != nil {
		return nil, err
	}

	s.logger.Info("trip estimated",
		zap.Float64("distance_km", route.DistanceKm),
		zap.Float64("duration_minutes", route.DurationMinutes),
		zap.Float64("fare_total", quote.Total),
	)

	return &TripEstimate{
		PickupAddress:      pickupAddr,
		DestinationAddress: destAddr,
		PickupPoint:        pickup.Point,
		DestinationPoint:   dest.Point,
		Route:              *route,
		Fare:               quote,
	}, nil
}

// Geocode resolves a single address to its best match.
func (s *EstimateService) Geocode(ctx context.Context, query string) (*trip.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.NewValidationError("query is required")
	}
	return s.geocoder.Geocode(ctx, query)
}

// RouteBetween computes a route between two coordinates and decodes its
// path geometry.
func (s *EstimateService) RouteBetween(ctx context.Context, start, end trip.GeoPoint) (*trip.Route, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}

	route, err := s.router.Route(ctx, start, end)
	if err != nil {
		return nil, err
	}

	points, err := trip.DecodePolyline(route.EncodedPath, trip.Precision6)
	if err != nil {
		return nil, err
	}
	route.Points = points
	return route, nil
}

// DecodePath decodes an encoded polyline at the given precision.
func (s *EstimateService) DecodePath(encoded string, precision int) ([]trip.GeoPoint, error) {
	return trip.DecodePolyline(encoded, precision)
}

// parseClassOrDefault maps an empty class to standard and rejects anything
// else unrecognized.
func parseClassOrDefault(raw string) (trip.VehicleClass, error) {
	if strings.TrimSpace(raw) == "" {
		return trip.ClassStandard, nil
	}
	class, err := trip.ParseVehicleClass(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return "", errs.NewValidationError(err.Error())
	}
	return class, nil
}
