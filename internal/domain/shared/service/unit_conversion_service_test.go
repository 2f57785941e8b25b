package service

import (
	"testing"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitConversionService_LookupUnit(t *testing.T) {
	svc := NewUnitConversionService()

	t.Run("known codes", func(t *testing.T) {
		mL, err := svc.LookupUnit("mL")
		require.NoError(t, err)
		assert.Equal(t, valueobject.Milliliters(1).Unit(), mL.Unit)

		molar, err := svc.LookupUnit(" M ")
		require.NoError(t, err)
		assert.Equal(t, valueobject.Molar(1).Unit(), molar.Unit)

		g, err := svc.LookupUnit("g")
		require.NoError(t, err)
		assert.Equal(t, valueobject.NewUnit(valueobject.MassDim), g.Unit)
	})

	t.Run("codes are case sensitive", func(t *testing.T) {
		m, err := svc.LookupUnit("M")
		require.NoError(t, err)
		mm, err := svc.LookupUnit("mM")
		require.NoError(t, err)
		assert.NotEqual(t, m.Unit, mm.Unit)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.LookupUnit("gallon")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("units are listed in table order", func(t *testing.T) {
		units := svc.Units()
		require.NotEmpty(t, units)
		assert.Equal(t, "g", units[0].Code)
		units[0].Code = "changed"
		assert.Equal(t, "g", svc.Units()[0].Code)
	})
}

func TestUnitConversionService_ConvertBetweenUnits(t *testing.T) {
	svc := NewUnitConversionService()

	tests := []struct {
		name       string
		value      float64
		digits     int
		from, to   string
		wantValue  float64
		wantFactor decimal.Decimal
	}{
		{name: "milliliters to liters", value: 250, digits: 3, from: "mL", to: "L", wantValue: 0.25, wantFactor: decimal.New(1, -3)},
		{name: "liters to milliliters", value: 0.1, digits: 2, from: "L", to: "mL", wantValue: 100, wantFactor: decimal.New(1, 3)},
		{name: "microliters to milliliters", value: 500, from: "uL", to: "mL", wantValue: 0.5, wantFactor: decimal.New(1, -3)},
		{name: "molar to millimolar", value: 0.2, digits: 4, from: "M", to: "mM", wantValue: 200, wantFactor: decimal.New(1, 3)},
		{name: "micromolar to molar", value: 256.2, digits: 4, from: "uM", to: "M", wantValue: 2.562e-4, wantFactor: decimal.New(1, -6)},
		{name: "grams to milligrams", value: 0.4019, digits: 4, from: "g", to: "mg", wantValue: 401.9, wantFactor: decimal.New(1, 3)},
		{name: "liters to cubic meters", value: 1, from: "L", to: "m3", wantValue: 0.001, wantFactor: decimal.New(1, -3)},
		{name: "same unit", value: 2, from: "mmol", to: "mmol", wantValue: 2, wantFactor: decimal.New(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ConvertBetweenUnits(tt.value, tt.digits, tt.from, tt.to)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantValue, result.Target.Float64(), 1e-12*tt.wantValue+1e-15)
			assert.True(t, tt.wantFactor.Equal(result.Factor), "factor %s", result.Factor)
			assert.Equal(t, tt.from, result.SourceUnitCode)
			assert.Equal(t, tt.to, result.TargetUnitCode)
			assert.Equal(t, result.Source.SigDigits(), result.Target.SigDigits())
			assert.InDelta(t, result.Source.BaseFloat64(), result.Target.BaseFloat64(), 1e-12*result.Source.BaseFloat64())
		})
	}
}

func TestUnitConversionService_ConvertTo(t *testing.T) {
	svc := NewUnitConversionService()

	t.Run("renders in the target unit", func(t *testing.T) {
		result, err := svc.ConvertTo(valueobject.Milliliters(250).MustWithSigDigits(3), "L")
		require.NoError(t, err)
		assert.Equal(t, "0.250 [dm^3]", result.Target.String())
	})

	t.Run("derived unit without a code", func(t *testing.T) {
		c := valueobject.Moles(1).MustDiv(valueobject.Milliliters(1000))
		result, err := svc.ConvertTo(c, "mM")
		require.NoError(t, err)
		assert.Equal(t, "mol cm^-3", result.SourceUnitCode)
		assert.InDelta(t, 1000, result.Target.Float64(), 1e-9)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := svc.ConvertTo(valueobject.Grams(1), "mL")
		assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := svc.ConvertTo(valueobject.Grams(1), "oz")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("invalid precision", func(t *testing.T) {
		_, err := svc.ConvertBetweenUnits(1, 300, "g", "mg")
		assert.ErrorIs(t, err, shared.ErrInvalidPrecision)
	})
}
