package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liters(t *testing.T, v float64) Quantity {
	t.Helper()
	return NewQuantityWithUnit(v, literUnit())
}

func TestNewQuantity(t *testing.T) {
	t.Run("default unit of the dimension", func(t *testing.T) {
		q := Grams(0.4019)
		assert.Equal(t, MassDim, q.Dimension())
		assert.Equal(t, NewUnit(MassDim), q.Unit())
		assert.Equal(t, 0.4019, q.Float64())
		assert.Equal(t, ExactSigDigits, q.SigDigits())
	})

	t.Run("milliliters are centimeter scaled", func(t *testing.T) {
		q := Milliliters(20)
		assert.Equal(t, VolumeDim, q.Dimension())
		assert.Equal(t, PrefixCenti, q.Unit().Prefix(AxisLength))
		assert.InDelta(t, 20e-6, q.BaseFloat64(), 1e-18)
	})

	t.Run("molar is decimeter scaled", func(t *testing.T) {
		q := Molar(0.1)
		assert.Equal(t, MolarityDim, q.Dimension())
		assert.Equal(t, PrefixDeci, q.Unit().Prefix(AxisLength))
		assert.InDelta(t, 100, q.BaseFloat64(), 1e-12)
	})

	t.Run("declared precision", func(t *testing.T) {
		q, err := Grams(0.4019).WithSigDigits(4)
		require.NoError(t, err)
		assert.Equal(t, 4, q.SigDigits())

		_, err = Grams(1).WithSigDigits(300)
		assert.ErrorIs(t, err, shared.ErrInvalidPrecision)
		assert.Panics(t, func() { Grams(1).MustWithSigDigits(-1) })
	})
}

func TestZeroQuantity(t *testing.T) {
	z := ZeroQuantity(MassDim)
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.False(t, z.IsNegative())
	assert.Equal(t, MassDim, z.Dimension())
}

func TestQuantityAdd(t *testing.T) {
	t.Run("zero is the identity", func(t *testing.T) {
		x := Grams(5).MustWithSigDigits(2)
		sum, err := ZeroQuantity(MassDim).Add(x)
		require.NoError(t, err)
		assert.Equal(t, 5.0, sum.Float64())
		assert.Equal(t, x.Unit(), sum.Unit())
		assert.Equal(t, "5.0 [g]", sum.String())
	})

	t.Run("zero adopts the scale of the other operand", func(t *testing.T) {
		sum, err := ZeroQuantity(VolumeDim).Add(Milliliters(20))
		require.NoError(t, err)
		assert.Equal(t, Milliliters(20).Unit(), sum.Unit())
		assert.Equal(t, 20.0, sum.Float64())
	})

	t.Run("result is expressed in the left operand's unit", func(t *testing.T) {
		sum, err := Milliliters(20).Add(liters(t, 0.1))
		require.NoError(t, err)
		assert.Equal(t, milliliterUnit(), sum.Unit())
		assert.InDelta(t, 120, sum.Float64(), 1e-12)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Grams(1).Add(Moles(1))
		assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
		assert.Panics(t, func() { Grams(1).MustAdd(Moles(1)) })
	})

	t.Run("precision follows the coarser operand", func(t *testing.T) {
		sum, err := Grams(12.3).MustWithSigDigits(3).Add(Grams(0.456).MustWithSigDigits(3))
		require.NoError(t, err)
		assert.Equal(t, "12.8 [g]", sum.String())
	})
}

func TestQuantitySub(t *testing.T) {
	diff, err := Milliliters(100).Sub(Milliliters(5))
	require.NoError(t, err)
	assert.Equal(t, 95.0, diff.Float64())

	neg := Milliliters(5).MustSub(Milliliters(100))
	assert.True(t, neg.IsNegative())
	assert.Equal(t, 95.0, neg.Neg().Float64())

	_, err = Milliliters(1).Sub(Grams(1))
	assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
}

func TestQuantityMulDiv(t *testing.T) {
	t.Run("volume times molarity is an amount", func(t *testing.T) {
		n, err := Milliliters(20).Mul(Molar(0.1))
		require.NoError(t, err)
		assert.Equal(t, AmountDim, n.Dimension())
		assert.InDelta(t, 0.002, n.BaseFloat64(), 1e-15)
	})

	t.Run("mass over molar mass is an amount", func(t *testing.T) {
		n, err := Grams(0.4019).MustWithSigDigits(4).Div(MolarMass(392.1).MustWithSigDigits(4))
		require.NoError(t, err)
		assert.Equal(t, AmountDim, n.Dimension())
		assert.Equal(t, 4, n.SigDigits())
		assert.InDelta(t, 0.4019/392.1, n.Float64(), 1e-18)
	})

	t.Run("division by a zero quantity", func(t *testing.T) {
		_, err := Grams(1).Div(MolarMass(0))
		assert.ErrorIs(t, err, shared.ErrDivisionByZero)
		assert.Panics(t, func() { Grams(1).MustDiv(MolarMass(0)) })
	})

	t.Run("dimensionless product keeps dimension", func(t *testing.T) {
		q := Grams(2).MustMul(Dimensionless(3))
		assert.Equal(t, MassDim, q.Dimension())
		assert.Equal(t, 6.0, q.Float64())
	})
}

func TestQuantityConversions(t *testing.T) {
	t.Run("amount per milliliter to molar", func(t *testing.T) {
		c, err := Moles(1).Div(Milliliters(1000))
		require.NoError(t, err)

		m, err := c.ToMolar()
		require.NoError(t, err)
		assert.Equal(t, int8(3), m.Unit().Coefficient())
		assert.Equal(t, PrefixDeci, m.Unit().Prefix(AxisLength))

		ok, err := m.IsCloseTo(Molar(1))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("liters and milliliters", func(t *testing.T) {
		l, err := Milliliters(250).ToLiters()
		require.NoError(t, err)
		assert.Equal(t, PrefixDeci, l.Unit().Prefix(AxisLength))

		back, err := l.ToMilliliters()
		require.NoError(t, err)
		assert.Equal(t, Milliliters(250), back)
	})

	t.Run("wrong dimension", func(t *testing.T) {
		_, err := Grams(1).ToMolar()
		assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
		_, err = Moles(1).ToLiters()
		assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
	})

	t.Run("into same unit", func(t *testing.T) {
		q, err := liters(t, 0.1).IntoSameUnitWith(Milliliters(1))
		require.NoError(t, err)
		assert.Equal(t, milliliterUnit(), q.Unit())
		assert.InDelta(t, 100, q.Float64(), 1e-12)
	})
}

func TestQuantityNormalized(t *testing.T) {
	q, err := Moles(0.00125).Normalized()
	require.NoError(t, err)
	assert.Equal(t, int8(-3), q.Unit().Coefficient())
	assert.InDelta(t, 1.25, q.Float64(), 1e-12)

	z, err := ZeroQuantity(AmountDim).Normalized()
	require.NoError(t, err)
	assert.Equal(t, ZeroQuantity(AmountDim), z)
}

func TestQuantityComparisons(t *testing.T) {
	t.Run("prefixes are folded in", func(t *testing.T) {
		eq, err := Milliliters(1000).Equals(liters(t, 1))
		require.NoError(t, err)
		assert.True(t, eq)

		lt, err := Milliliters(500).LessThan(liters(t, 1))
		require.NoError(t, err)
		assert.True(t, lt)

		gt, err := liters(t, 1).GreaterThan(Milliliters(500))
		require.NoError(t, err)
		assert.True(t, gt)

		le, err := Milliliters(1000).LessThanOrEqual(liters(t, 1))
		require.NoError(t, err)
		assert.True(t, le)

		ge, err := Milliliters(999).GreaterThanOrEqual(liters(t, 1))
		require.NoError(t, err)
		assert.False(t, ge)
	})

	t.Run("precision is ignored", func(t *testing.T) {
		c, err := Grams(1.5).MustWithSigDigits(2).Compare(Grams(1.5))
		require.NoError(t, err)
		assert.Equal(t, 0, c)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Grams(1).LessThan(Moles(1))
		assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
		_, err = Grams(1).IsCloseTo(Moles(1))
		assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
	})
}

func TestQuantityIsCloseTo(t *testing.T) {
	a := Milliliters(20).MustWithSigDigits(2)
	b := liters(t, 0.020).MustWithSigDigits(2)

	ok, err := a.IsCloseTo(b)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Molar(2.5625).MustWithSigDigits(2).IsCloseTo(Molar(2.562).MustWithSigDigits(4))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Molar(2.5625).MustWithSigDigits(3).IsCloseTo(Molar(2.571).MustWithSigDigits(4))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuantityString(t *testing.T) {
	q := Molar(2.562).MustWithSigDigits(4).MustShiftCoefficient(-4)
	assert.Equal(t, "2.562 [10^-4 mol dm^-3]", q.String())

	assert.Equal(t, "1.3 [10^-3 mol]", Moles(0.00126).MustWithSigDigits(2).GoString())
}

func TestQuantityJSON(t *testing.T) {
	q := Molar(2.562).MustWithSigDigits(4).MustShiftCoefficient(-4)

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2.562", raw["display"])
	assert.Equal(t, float64(4), raw["sig_digits"])

	var back Quantity
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, q, back)

	t.Run("missing precision means exact", func(t *testing.T) {
		parsed, err := ParseQuantityFromJSON([]byte(`{"value":20,"unit":{"dimension":[0,0,3,0,0,0,0],"prefixes":{"m":"centi"}}}`))
		require.NoError(t, err)
		assert.Equal(t, Milliliters(20), parsed)
	})

	t.Run("invalid precision", func(t *testing.T) {
		_, err := ParseQuantityFromJSON([]byte(`{"value":1,"sig_digits":999,"unit":{"dimension":[0,1,0,0,0,0,0]}}`))
		assert.ErrorIs(t, err, shared.ErrInvalidPrecision)
	})
}

func TestQuantityScanValue(t *testing.T) {
	q := Milliliters(20).MustWithSigDigits(2)

	v, err := q.Value()
	require.NoError(t, err)

	var scanned Quantity
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, q, scanned)

	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, q, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, Quantity{}, scanned)

	assert.Error(t, scanned.Scan(42))
}
