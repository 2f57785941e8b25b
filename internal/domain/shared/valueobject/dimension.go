package valueobject

import (
	"fmt"
	"math"
	"strings"

	"github.com/labbench/backend/internal/domain/shared"
)

// Axis identifies one SI base dimension inside a Dimension.
type Axis int

// SI base axes, in Dimension order
const (
	AxisAmount Axis = iota
	AxisMass
	AxisLength
	AxisTime
	AxisTemperature
	AxisCurrent
	AxisLuminosity
)

// AxisCount is the number of SI base dimensions
const AxisCount = 7

var axisSymbols = [AxisCount]string{"mol", "g", "m", "s", "K", "A", "cd"}

// Symbol returns the base unit symbol of the axis (mass is tracked in grams).
func (a Axis) Symbol() string {
	if !a.valid() {
		return "?"
	}
	return axisSymbols[a]
}

func (a Axis) valid() bool {
	return a >= 0 && a < AxisCount
}

// Dimension is the vector of SI base exponents describing a physical quantity
// (amount, mass, length, time, temperature, current, luminous intensity).
// It is a comparable value; two quantities share a dimension iff their vectors are ==.
type Dimension [AxisCount]int8

// Common dimensions
var (
	DimensionlessDim = Dimension{}
	AmountDim        = Dimension{1, 0, 0}
	MassDim          = Dimension{0, 1, 0}
	LengthDim        = Dimension{0, 0, 1}
	VolumeDim        = Dimension{0, 0, 3}
	MolarMassDim     = Dimension{-1, 1, 0}
	MolarityDim      = Dimension{1, 0, -3}
)

// NewDimension builds a Dimension from amount, mass and length exponents.
func NewDimension(amount, mass, length int8) Dimension {
	return Dimension{amount, mass, length}
}

// Exponent returns the exponent of the given axis.
func (d Dimension) Exponent(axis Axis) int8 {
	if !axis.valid() {
		return 0
	}
	return d[axis]
}

// IsDimensionless returns true when every exponent is zero.
func (d Dimension) IsDimensionless() bool {
	return d == DimensionlessDim
}

// Add combines exponents component-wise (used by multiplication).
func (d Dimension) Add(other Dimension) (Dimension, error) {
	return d.combine(other, 1)
}

// Sub subtracts exponents component-wise (used by division).
func (d Dimension) Sub(other Dimension) (Dimension, error) {
	return d.combine(other, -1)
}

func (d Dimension) combine(other Dimension, sign int) (Dimension, error) {
	var result Dimension
	for i := range d {
		e := int(d[i]) + sign*int(other[i])
		if e > math.MaxInt8 || e < math.MinInt8 {
			return Dimension{}, fmt.Errorf("%w: %s exponent %d", shared.ErrOverflow, Axis(i).Symbol(), e)
		}
		result[i] = int8(e)
	}
	return result, nil
}

// String renders the dimension as base symbols, e.g. "mol m^-3".
func (d Dimension) String() string {
	if d.IsDimensionless() {
		return "1"
	}
	parts := make([]string, 0, AxisCount)
	for i, e := range d {
		switch e {
		case 0:
		case 1:
			parts = append(parts, axisSymbols[i])
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", axisSymbols[i], e))
		}
	}
	return strings.Join(parts, " ")
}
