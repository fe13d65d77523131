package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
)

func TestCalculateZeroDistance(t *testing.T) {
	calc := NewFareCalculator(DefaultFareConfig())

	quote, err := calc.Calculate(0, ClassStandard, false)
	require.NoError(t, err)
	assert.InDelta(t, 4.25, quote.Total, 1e-9)
	assert.InDelta(t, 0, quote.PetFee, 1e-9)
	assert.InDelta(t, 0, quote.ClassSurcharge, 1e-9)
}

func TestCalculateStandard(t *testing.T) {
	calc := NewFareCalculator(DefaultFareConfig())

	// 4.25 + 2.4 * 1.70 = 8.33
	quote, err := calc.Calculate(2.4, ClassStandard, false)
	require.NoError(t, err)
	assert.InDelta(t, 8.33, quote.Total, 1e-9)
	assert.InDelta(t, 1.70, quote.PerKm, 1e-9)
}

func TestCalculateLargeSurcharge(t *testing.T) {
	calc := NewFareCalculator(DefaultFareConfig())

	// per-km 2.05: 4.25 + 2.4 * 2.05 = 9.17
	quote, err := calc.Calculate(2.4, ClassLarge, false)
	require.NoError(t, err)
	assert.InDelta(t, 9.17, quote.Total, 1e-9)
	assert.InDelta(t, 2.05, quote.PerKm, 1e-9)
	assert.InDelta(t, 0.35, quote.ClassSurcharge, 1e-9)
}

func TestCalculatePetFeeAdditive(t *testing.T) {
	calc := NewFareCalculator(DefaultFareConfig())

	// 8.33 + 7.50 = 15.83
	quote, err := calc.Calculate(2.4, ClassStandard, true)
	require.NoError(t, err)
	assert.InDelta(t, 15.83, quote.Total, 1e-9)
	assert.InDelta(t, 7.50, quote.PetFee, 1e-9)

	// Zero distance with a pet is base fare plus the fee.
	quote, err = calc.Calculate(0, ClassStandard, true)
	require.NoError(t, err)
	assert.InDelta(t, 11.75, quote.Total, 1e-9)
}

func TestCalculateMonotonic(t *testing.T) {
	calc := NewFareCalculator(DefaultFareConfig())

	distances := []float64{0, 0.1, 1, 2.4, 5, 17.3, 120}
	var prev float64
	for i, d := range distances {
		quote, err := calc.Calculate(d, ClassLarge, true)
		require.NoError(t, err)
		if i > 0 {
			assert.GreaterOrEqual(t, quote.Total, prev,
				"total must not decrease with distance")
		}
		prev = quote.Total
	}
}

func TestCalculateNegativeDistance(t *testing.T) {
	calc := NewFareCalculator(DefaultFareConfig())

	_, err := calc.Calculate(-1, ClassStandard, false)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestCalculateInvalidClass(t *testing.T) {
	calc := NewFareCalculator(DefaultFareConfig())

	_, err := calc.Calculate(1, VehicleClass("xl"), false)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestParseVehicleClass(t *testing.T) {
	class, err := ParseVehicleClass("standard")
	require.NoError(t, err)
	assert.Equal(t, ClassStandard, class)

	class, err = ParseVehicleClass("large")
	require.NoError(t, err)
	assert.Equal(t, ClassLarge, class)

	_, err = ParseVehicleClass("suv")
	require.Error(t, err)
}
