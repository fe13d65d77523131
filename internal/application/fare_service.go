package application

import (
	"go.uber.org/zap"

	"github.com/guber-mobility/service-trips/internal/domain/trip"
)

// FareRequest holds the inputs for a standalone fare calculation.
type FareRequest struct {
	DistanceKm   float64 `json:"distance_km"`
	VehicleClass string  `json:"vehicle_class"`
	Pet          bool    `json:"pet"`
}

// FareService exposes fare calculation as an application use case.
type FareService struct {
	fare   *trip.FareCalculator
	logger *zap.Logger
}

// NewFareService creates a new FareService.
func NewFareService(fare *trip.FareCalculator, logger *zap.Logger) *FareService {
	return &FareService{fare: fare, logger: logger}
}

// CalculateFare validates the request and computes the fare breakdown.
// Invalid input is rejected before any computation.
func (s *FareService) CalculateFare(req FareRequest) (trip.FareQuote, error) {
	class, err := parseClassOrDefault(req.VehicleClass)
	if err != nil {
		return trip.FareQuote{}, err
	}

	quote, err := s.fare.Calculate(req.DistanceKm, class, req.Pet)
	if err != nil {
		return trip.FareQuote{}, err
	}

	s.logger.Debug("fare calculated",
		zap.Float64("distance_km", req.DistanceKm),
		zap.String("vehicle_class", class.String()),
		zap.Bool("pet", req.Pet),
		zap.Float64("total", quote.Total),
	)
	return quote, nil
}
