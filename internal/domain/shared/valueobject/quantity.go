package valueobject

import (
	"fmt"

	"github.com/labbench/backend/internal/domain/shared"
)

// Quantity is a value object representing a dimensioned, precision-tracked physical quantity
// (a mass, a volume, an amount of substance, a molarity, ...).
// It is immutable - all operations return new Quantity instances.
//
// The dimension travels with the Unit and is checked at run time: Add, Sub and the comparisons
// fail with shared.ErrDimensionMismatch when the dimensions differ, while Mul and Div accept any
// pair and derive the result dimension.
type Quantity struct {
	magnitude Measurement
	unit      Unit
}

// NewQuantity creates a Quantity from a literal in the default (unprefixed) unit of dim
func NewQuantity(value float64, dim Dimension) Quantity {
	return Quantity{magnitude: NewMeasurement(value), unit: NewUnit(dim)}
}

// NewQuantityWithUnit creates a Quantity from a literal expressed in the given unit
func NewQuantityWithUnit(value float64, unit Unit) Quantity {
	return Quantity{magnitude: NewMeasurement(value), unit: unit}
}

// NewQuantityFromMeasurement creates a Quantity from a magnitude that already carries precision
func NewQuantityFromMeasurement(m Measurement, unit Unit) Quantity {
	return Quantity{magnitude: m, unit: unit}
}

// ZeroQuantity returns a scale-less zero of the given dimension
func ZeroQuantity(dim Dimension) Quantity {
	return NewQuantity(0, dim)
}

// Dimensionless creates a pure number
func Dimensionless(value float64) Quantity {
	return NewQuantity(value, DimensionlessDim)
}

// Moles creates an amount of substance in mol
func Moles(value float64) Quantity {
	return NewQuantity(value, AmountDim)
}

// Grams creates a mass in g
func Grams(value float64) Quantity {
	return NewQuantity(value, MassDim)
}

// MolarMass creates a molar mass in g/mol
func MolarMass(value float64) Quantity {
	return NewQuantity(value, MolarMassDim)
}

// Milliliters creates a volume in mL; volumes are kept on the cm^3 scale.
func Milliliters(value float64) Quantity {
	return NewQuantityWithUnit(value, prefixedUnit(VolumeDim, AxisLength, PrefixCenti))
}

// Molar creates a molarity in mol/L; molarities are kept on the dm^-3 scale.
func Molar(value float64) Quantity {
	return NewQuantityWithUnit(value, prefixedUnit(MolarityDim, AxisLength, PrefixDeci))
}

func prefixedUnit(dim Dimension, axis Axis, p Prefix) Unit {
	u := NewUnit(dim)
	u.prefixes[axis] = p
	return u
}

// Magnitude returns the precision-tracked magnitude
func (q Quantity) Magnitude() Measurement {
	return q.magnitude
}

// Unit returns the unit descriptor
func (q Quantity) Unit() Unit {
	return q.unit
}

// Dimension returns the physical dimension
func (q Quantity) Dimension() Dimension {
	return q.unit.dim
}

// Float64 returns the raw magnitude, without unit scaling or precision.
func (q Quantity) Float64() float64 {
	return q.magnitude.value
}

// BaseFloat64 returns the value expressed in unprefixed base units with coefficient 0.
func (q Quantity) BaseFloat64() float64 {
	return scalePow10(q.magnitude.value, q.unit.CanonicalExponent())
}

// SigDigits returns the significant digit count
func (q Quantity) SigDigits() int {
	return q.magnitude.sigDigits
}

// IsZero returns true if the quantity is zero
func (q Quantity) IsZero() bool {
	return q.magnitude.IsZero()
}

// IsPositive returns true if the quantity is greater than zero
func (q Quantity) IsPositive() bool {
	return q.magnitude.value > 0
}

// IsNegative returns true if the quantity is less than zero
func (q Quantity) IsNegative() bool {
	return q.magnitude.value < 0
}

// WithSigDigits returns a new Quantity with the declared measurement precision
func (q Quantity) WithSigDigits(n int) (Quantity, error) {
	m, err := q.magnitude.WithSigDigits(n)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: m, unit: q.unit}, nil
}

// MustWithSigDigits declares precision and panics on an invalid digit count
func (q Quantity) MustWithSigDigits(n int) Quantity {
	result, err := q.WithSigDigits(n)
	if err != nil {
		panic(err)
	}
	return result
}

// ShiftCoefficient multiplies the unit by 10^delta, leaving the magnitude alone:
// Molar(2.562).ShiftCoefficient(-4) is 2.562 x 10^-4 mol/L.
func (q Quantity) ShiftCoefficient(delta int) (Quantity, error) {
	u, err := q.unit.ShiftCoefficient(delta)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude, unit: u}, nil
}

// MustShiftCoefficient shifts the coefficient and panics on overflow
func (q Quantity) MustShiftCoefficient(delta int) Quantity {
	result, err := q.ShiftCoefficient(delta)
	if err != nil {
		panic(err)
	}
	return result
}

// ConvertPrefix re-expresses the quantity with another prefix on one axis.
func (q Quantity) ConvertPrefix(axis Axis, p Prefix) (Quantity, error) {
	u, err := q.unit.ConvertPrefix(axis, p)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude, unit: u}, nil
}

// ToMilliliters expresses a volume on the cm^3 scale
func (q Quantity) ToMilliliters() (Quantity, error) {
	if q.Dimension() != VolumeDim {
		return Quantity{}, fmt.Errorf("%w: %s is not a volume", shared.ErrDimensionMismatch, q.Dimension())
	}
	return q.ConvertPrefix(AxisLength, PrefixCenti)
}

// ToLiters expresses a volume on the dm^3 scale
func (q Quantity) ToLiters() (Quantity, error) {
	if q.Dimension() != VolumeDim {
		return Quantity{}, fmt.Errorf("%w: %s is not a volume", shared.ErrDimensionMismatch, q.Dimension())
	}
	return q.ConvertPrefix(AxisLength, PrefixDeci)
}

// ToMolar expresses a molarity per liter; needed after dividing moles by a mL-scaled volume.
func (q Quantity) ToMolar() (Quantity, error) {
	if q.Dimension() != MolarityDim {
		return Quantity{}, fmt.Errorf("%w: %s is not a molarity", shared.ErrDimensionMismatch, q.Dimension())
	}
	return q.ConvertPrefix(AxisLength, PrefixDeci)
}

// IntoSameUnitWith re-expresses q in other's prefixes and coefficient. The represented physical
// value is unchanged; the magnitude absorbs the coefficient difference.
func (q Quantity) IntoSameUnitWith(other Quantity) (Quantity, error) {
	harmonized, err := q.unit.HarmonizeWith(other.unit)
	if err != nil {
		return Quantity{}, err
	}
	unit, delta := harmonized.ResidualCoefficient(other.unit)
	m, err := q.magnitude.Scale(delta)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: m, unit: unit}, nil
}

// Normalized moves the magnitude's leading digit into [1, 10), shifting the unit coefficient.
// The physical value is unchanged; this is a display form.
func (q Quantity) Normalized() (Quantity, error) {
	lead, ok := q.magnitude.LeadingDigitExponent()
	if !ok || lead == 0 {
		return q, nil
	}
	u, err := q.unit.ShiftCoefficient(lead)
	if err != nil {
		return Quantity{}, err
	}
	m, err := q.magnitude.Scale(-lead)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: m, unit: u}, nil
}

// Add returns the sum of both quantities.
// Returns error if dimensions don't match.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return q.additive(other, "add", Measurement.Add)
}

// MustAdd adds two quantities, panics on error
func (q Quantity) MustAdd(other Quantity) Quantity {
	result, err := q.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Sub returns the difference of both quantities.
// Returns error if dimensions don't match.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	return q.additive(other, "subtract", Measurement.Sub)
}

// MustSub subtracts quantities, panics on error
func (q Quantity) MustSub(other Quantity) Quantity {
	result, err := q.Sub(other)
	if err != nil {
		panic(err)
	}
	return result
}

func (q Quantity) additive(other Quantity, op string, combine func(Measurement, Measurement) (Measurement, error)) (Quantity, error) {
	if q.Dimension() != other.Dimension() {
		return Quantity{}, fmt.Errorf("%w: cannot %s %s and %s", shared.ErrDimensionMismatch, op, q.Dimension(), other.Dimension())
	}

	// A bare zero (typically a fresh accumulator) has no scale of its own and takes other's.
	if q.magnitude.IsZero() {
		lhs, err := q.IntoSameUnitWith(other)
		if err != nil {
			return Quantity{}, err
		}
		m, err := combine(lhs.magnitude, other.magnitude)
		if err != nil {
			return Quantity{}, err
		}
		return Quantity{magnitude: m, unit: other.unit}, nil
	}

	rhs, err := other.IntoSameUnitWith(q)
	if err != nil {
		return Quantity{}, err
	}
	m, err := combine(q.magnitude, rhs.magnitude)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: m, unit: q.unit}, nil
}

// Mul returns the product; the result dimension is the sum of both dimensions.
func (q Quantity) Mul(other Quantity) (Quantity, error) {
	u, err := q.unit.Multiply(other.unit)
	if err != nil {
		return Quantity{}, err
	}
	m, err := q.magnitude.Mul(other.magnitude)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: m, unit: u}, nil
}

// MustMul multiplies quantities, panics on error
func (q Quantity) MustMul(other Quantity) Quantity {
	result, err := q.Mul(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Div returns the quotient; the result dimension is the difference of both dimensions.
// Dividing by a zero-valued quantity returns shared.ErrDivisionByZero.
func (q Quantity) Div(other Quantity) (Quantity, error) {
	u, err := q.unit.Divide(other.unit)
	if err != nil {
		return Quantity{}, err
	}
	m, err := q.magnitude.Div(other.magnitude)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: m, unit: u}, nil
}

// MustDiv divides quantities, panics on error
func (q Quantity) MustDiv(other Quantity) Quantity {
	result, err := q.Div(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Neg returns the quantity with its sign flipped
func (q Quantity) Neg() Quantity {
	return Quantity{magnitude: q.magnitude.Neg(), unit: q.unit}
}

// Compare compares the physical values of both quantities: -1, 0 or 1.
// Precision is ignored. Returns error if dimensions don't match.
func (q Quantity) Compare(other Quantity) (int, error) {
	if q.Dimension() != other.Dimension() {
		return 0, fmt.Errorf("%w: cannot compare %s and %s", shared.ErrDimensionMismatch, q.Dimension(), other.Dimension())
	}
	a := NewMeasurement(q.BaseFloat64())
	return a.Compare(NewMeasurement(other.BaseFloat64())), nil
}

// Equals returns true if both quantities represent the same physical value
func (q Quantity) Equals(other Quantity) (bool, error) {
	c, err := q.Compare(other)
	return c == 0 && err == nil, err
}

// LessThan returns true if this quantity is less than the other
func (q Quantity) LessThan(other Quantity) (bool, error) {
	c, err := q.Compare(other)
	return c < 0 && err == nil, err
}

// LessThanOrEqual returns true if this quantity is less than or equal to the other
func (q Quantity) LessThanOrEqual(other Quantity) (bool, error) {
	c, err := q.Compare(other)
	return c <= 0 && err == nil, err
}

// GreaterThan returns true if this quantity is greater than the other
func (q Quantity) GreaterThan(other Quantity) (bool, error) {
	c, err := q.Compare(other)
	return c > 0 && err == nil, err
}

// GreaterThanOrEqual returns true if this quantity is greater than or equal to the other
func (q Quantity) GreaterThanOrEqual(other Quantity) (bool, error) {
	c, err := q.Compare(other)
	return c >= 0 && err == nil, err
}

// IsCloseTo reports whether both quantities agree to the lesser of their declared precisions,
// after expressing other in q's unit.
func (q Quantity) IsCloseTo(other Quantity) (bool, error) {
	if q.Dimension() != other.Dimension() {
		return false, fmt.Errorf("%w: cannot compare %s and %s", shared.ErrDimensionMismatch, q.Dimension(), other.Dimension())
	}
	rhs, err := other.IntoSameUnitWith(q)
	if err != nil {
		return false, err
	}
	return q.magnitude.IsCloseTo(rhs.magnitude), nil
}

// String renders the precision-exact magnitude followed by the unit, e.g. "2.6 [10^-4 mol dm^-3]"
func (q Quantity) String() string {
	return fmt.Sprintf("%s [%s]", q.magnitude, q.unit)
}

// GoString renders the normalized form, used by %#v
func (q Quantity) GoString() string {
	n, err := q.Normalized()
	if err != nil {
		n = q
	}
	return fmt.Sprintf("%s [%s]", n.magnitude, n.unit)
}
