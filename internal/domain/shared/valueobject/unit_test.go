package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literUnit() Unit {
	u, _ := NewUnit(VolumeDim).WithPrefix(AxisLength, PrefixDeci)
	return u
}

func milliliterUnit() Unit {
	u, _ := NewUnit(VolumeDim).WithPrefix(AxisLength, PrefixCenti)
	return u
}

func TestDimension(t *testing.T) {
	t.Run("string rendering", func(t *testing.T) {
		assert.Equal(t, "1", DimensionlessDim.String())
		assert.Equal(t, "mol", AmountDim.String())
		assert.Equal(t, "m^3", VolumeDim.String())
		assert.Equal(t, "mol m^-3", MolarityDim.String())
		assert.Equal(t, "mol^-1 g", MolarMassDim.String())
	})

	t.Run("add and sub", func(t *testing.T) {
		d, err := MolarityDim.Add(VolumeDim)
		require.NoError(t, err)
		assert.Equal(t, AmountDim, d)

		d, err = MassDim.Sub(MolarMassDim)
		require.NoError(t, err)
		assert.Equal(t, AmountDim, d)
	})

	t.Run("exponent overflow", func(t *testing.T) {
		_, err := NewDimension(127, 0, 0).Add(AmountDim)
		assert.ErrorIs(t, err, shared.ErrOverflow)
	})

	t.Run("exponent lookup", func(t *testing.T) {
		assert.Equal(t, int8(-3), MolarityDim.Exponent(AxisLength))
		assert.Equal(t, int8(0), MolarityDim.Exponent(Axis(42)))
		assert.True(t, DimensionlessDim.IsDimensionless())
		assert.False(t, MassDim.IsDimensionless())
	})
}

func TestParsePrefix(t *testing.T) {
	tests := []struct {
		input   string
		want    Prefix
		wantErr bool
	}{
		{input: "", want: PrefixNone},
		{input: "none", want: PrefixNone},
		{input: "d", want: PrefixDeci},
		{input: "deci", want: PrefixDeci},
		{input: " c ", want: PrefixCenti},
		{input: "milli", want: PrefixMilli},
		{input: "kilo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePrefix(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPrefixDegree(t *testing.T) {
	assert.Equal(t, 0, PrefixNone.Degree())
	assert.Equal(t, -1, PrefixDeci.Degree())
	assert.Equal(t, -2, PrefixCenti.Degree())
	assert.Equal(t, -3, PrefixMilli.Degree())
	assert.False(t, Prefix(9).IsValid())
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "g", NewUnit(MassDim).String())
	assert.Equal(t, "", NewUnit(DimensionlessDim).String())
	assert.Equal(t, "cm^3", milliliterUnit().String())

	u, err := NewUnit(MolarityDim).WithPrefix(AxisLength, PrefixDeci)
	require.NoError(t, err)
	u, err = u.ShiftCoefficient(-4)
	require.NoError(t, err)
	assert.Equal(t, "10^-4 mol dm^-3", u.String())

	u, err = NewUnit(AmountDim).ShiftCoefficient(1)
	require.NoError(t, err)
	assert.Equal(t, "10 mol", u.String())
}

func TestUnitWithPrefix(t *testing.T) {
	t.Run("does not touch the coefficient", func(t *testing.T) {
		u, err := NewUnit(VolumeDim).WithPrefix(AxisLength, PrefixMilli)
		require.NoError(t, err)
		assert.Equal(t, int8(0), u.Coefficient())
		assert.Equal(t, PrefixMilli, u.Prefix(AxisLength))
	})

	t.Run("rejects unknown axis", func(t *testing.T) {
		_, err := NewUnit(VolumeDim).WithPrefix(Axis(7), PrefixDeci)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects unknown prefix", func(t *testing.T) {
		_, err := NewUnit(VolumeDim).WithPrefix(AxisLength, Prefix(12))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestUnitShiftCoefficient(t *testing.T) {
	u, err := NewUnit(MassDim).ShiftCoefficient(-4)
	require.NoError(t, err)
	assert.Equal(t, int8(-4), u.Coefficient())

	_, err = NewUnit(MassDim).ShiftCoefficient(200)
	assert.ErrorIs(t, err, shared.ErrOverflow)
}

func TestUnitConvertPrefix(t *testing.T) {
	t.Run("milliliter to liter", func(t *testing.T) {
		u, err := milliliterUnit().ConvertPrefix(AxisLength, PrefixDeci)
		require.NoError(t, err)
		assert.Equal(t, int8(-3), u.Coefficient())
		assert.Equal(t, PrefixDeci, u.Prefix(AxisLength))
		assert.Equal(t, milliliterUnit().CanonicalExponent(), u.CanonicalExponent())
	})

	t.Run("negative exponent axis", func(t *testing.T) {
		u, err := NewUnit(MolarityDim).WithPrefix(AxisLength, PrefixCenti)
		require.NoError(t, err)
		u, err = u.ConvertPrefix(AxisLength, PrefixDeci)
		require.NoError(t, err)
		assert.Equal(t, int8(3), u.Coefficient())
	})
}

func TestUnitHarmonizeWith(t *testing.T) {
	t.Run("liter into cubic meter", func(t *testing.T) {
		u, err := literUnit().HarmonizeWith(NewUnit(VolumeDim))
		require.NoError(t, err)
		assert.Equal(t, int8(-3), u.Coefficient())
		assert.Equal(t, PrefixNone, u.Prefix(AxisLength))
	})

	t.Run("liter into milliliter", func(t *testing.T) {
		u, err := literUnit().HarmonizeWith(milliliterUnit())
		require.NoError(t, err)
		assert.Equal(t, int8(3), u.Coefficient())
		assert.Equal(t, PrefixCenti, u.Prefix(AxisLength))
	})

	t.Run("axes unused by other keep own prefix", func(t *testing.T) {
		u, err := literUnit().HarmonizeWith(NewUnit(AmountDim))
		require.NoError(t, err)
		assert.Equal(t, literUnit(), u)
	})

	t.Run("residual coefficient", func(t *testing.T) {
		u, err := literUnit().HarmonizeWith(milliliterUnit())
		require.NoError(t, err)
		res, delta := u.ResidualCoefficient(milliliterUnit())
		assert.Equal(t, 3, delta)
		assert.Equal(t, milliliterUnit(), res)
	})
}

func TestUnitMultiplyDivide(t *testing.T) {
	t.Run("milliliter times molar", func(t *testing.T) {
		molar, err := NewUnit(MolarityDim).WithPrefix(AxisLength, PrefixDeci)
		require.NoError(t, err)

		u, err := milliliterUnit().Multiply(molar)
		require.NoError(t, err)
		assert.Equal(t, AmountDim, u.Dimension())
		assert.Equal(t, int8(-3), u.Coefficient())
		assert.Equal(t, -3, u.CanonicalExponent())
	})

	t.Run("mass over molar mass", func(t *testing.T) {
		u, err := NewUnit(MassDim).Divide(NewUnit(MolarMassDim))
		require.NoError(t, err)
		assert.Equal(t, NewUnit(AmountDim), u)
	})

	t.Run("amount over milliliter", func(t *testing.T) {
		u, err := NewUnit(AmountDim).Divide(milliliterUnit())
		require.NoError(t, err)
		assert.Equal(t, MolarityDim, u.Dimension())
		assert.Equal(t, int8(0), u.Coefficient())
		assert.Equal(t, PrefixCenti, u.Prefix(AxisLength))
		assert.Equal(t, "mol cm^-3", u.String())
	})

	t.Run("coefficients combine", func(t *testing.T) {
		a, _ := NewUnit(AmountDim).ShiftCoefficient(2)
		b, _ := NewUnit(MassDim).ShiftCoefficient(3)

		p, err := a.Multiply(b)
		require.NoError(t, err)
		assert.Equal(t, int8(5), p.Coefficient())

		q, err := a.Divide(b)
		require.NoError(t, err)
		assert.Equal(t, int8(-1), q.Coefficient())
	})
}

func TestUnitWithoutPrefixes(t *testing.T) {
	molar, err := NewUnit(MolarityDim).WithPrefix(AxisLength, PrefixDeci)
	require.NoError(t, err)

	u, err := molar.WithoutPrefixes()
	require.NoError(t, err)
	assert.Equal(t, int8(3), u.Coefficient())
	assert.Equal(t, PrefixNone, u.Prefix(AxisLength))
	assert.True(t, u.Equals(Unit{dim: MolarityDim, pow10: 3}))
}

func TestUnitJSON(t *testing.T) {
	u, err := literUnit().ShiftCoefficient(-2)
	require.NoError(t, err)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dimension":[0,0,3,0,0,0,0],"coefficient":-2,"prefixes":{"m":"deci"}}`, string(data))

	var back Unit
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, u, back)

	err = json.Unmarshal([]byte(`{"dimension":[0,0,3,0,0,0,0],"prefixes":{"x":"deci"}}`), &back)
	assert.Error(t, err)
}
