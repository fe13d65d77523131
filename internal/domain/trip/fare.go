package trip

import (
	"fmt"
	"math"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
)

// FareConfig holds the fare tunables. Values are injected at construction
// and immutable thereafter.
type FareConfig struct {
	BaseFare       float64
	PerKm          float64
	LargeSurcharge float64
	PetFee         float64
}

// DefaultFareConfig returns the documented default fare tunables.
func DefaultFareConfig() FareConfig {
	return FareConfig{
		BaseFare:       4.25,
		PerKm:          1.70,
		LargeSurcharge: 0.35,
		PetFee:         7.50,
	}
}

// FareQuote is the breakdown of a computed fare. Total is derived from the
// other fields and recomputed on every call, never mutated.
type FareQuote struct {
	BaseFare       float64 `json:"base_fare"`
	PerKm          float64 `json:"per_km"`
	ClassSurcharge float64 `json:"class_surcharge"`
	PetFee         float64 `json:"pet_fee"`
	DistanceKm     float64 `json:"distance_km"`
	Total          float64 `json:"total"`
}

// FareCalculator computes fare quotes from distance and trip options. It is
// a pure function of its inputs plus the fixed config.
type FareCalculator struct {
	cfg FareConfig
}

// NewFareCalculator creates a FareCalculator with the given config.
func NewFareCalculator(cfg FareConfig) *FareCalculator {
	return &FareCalculator{cfg: cfg}
}

// Calculate computes the fare quote for a trip of the given distance.
//
// Fare formula:
//   - per-km rate: PerKm, plus LargeSurcharge for the large class
//   - total: BaseFare + distance * per-km rate, rounded to 2 decimals
//     half away from zero
//   - pet fee: added after rounding, not affecting the per-km rate
func (c *FareCalculator) Calculate(distanceKm float64, class VehicleClass, pet bool) (FareQuote, error) {
	if distanceKm < 0 {
		return FareQuote{}, errs.NewValidationError("distance_km must be >= 0")
	}
	if !class.IsValid() {
		return FareQuote{}, errs.NewValidationError(fmt.Sprintf("invalid vehicle class: %s", class))
	}

	perKm := c.cfg.PerKm
	var surcharge float64
	if class == ClassLarge {
		surcharge = c.cfg.LargeSurcharge
		perKm += surcharge
	}

	total := round2(c.cfg.BaseFare + distanceKm*perKm)

	var petFee float64
	if pet {
		petFee = c.cfg.PetFee
		total += petFee
	}

	return FareQuote{
		BaseFare:       c.cfg.BaseFare,
		PerKm:          perKm,
		ClassSurcharge: surcharge,
		PetFee:         petFee,
		DistanceKm:     distanceKm,
		Total:          total,
	}, nil
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
