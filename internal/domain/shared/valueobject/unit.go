package valueobject

import (
	"fmt"
	"math"
	"strings"

	"github.com/labbench/backend/internal/domain/shared"
)

// Unit is a value object describing the decimal scale a Quantity is expressed in.
// It is immutable - all operations return new Unit instances.
// A Unit has a dimension, a power-of-ten coefficient and one SI prefix per base axis:
// "10^3 mol dm^-3" is dimension mol·m^-3, coefficient 3, deci prefix on the length axis.
// Prefixes on axes whose exponent is zero are inert and never enter coefficient math.
type Unit struct {
	dim      Dimension
	pow10    int8
	prefixes [AxisCount]Prefix
}

// NewUnit creates the default Unit for a dimension: coefficient 0, no prefixes.
func NewUnit(dim Dimension) Unit {
	return Unit{dim: dim}
}

// Dimension returns the dimension this unit is scoped to.
func (u Unit) Dimension() Dimension {
	return u.dim
}

// Coefficient returns the power-of-ten coefficient.
func (u Unit) Coefficient() int8 {
	return u.pow10
}

// Prefix returns the prefix chosen for an axis.
func (u Unit) Prefix(axis Axis) Prefix {
	if !axis.valid() {
		return PrefixNone
	}
	return u.prefixes[axis]
}

// WithPrefix returns a new Unit with one axis's prefix changed; the coefficient is untouched,
// so the represented scale changes.
func (u Unit) WithPrefix(axis Axis, p Prefix) (Unit, error) {
	if err := validateAxisPrefix(axis, p); err != nil {
		return Unit{}, err
	}
	u.prefixes[axis] = p
	return u, nil
}

// ShiftCoefficient adds delta to the coefficient (pure rescaling).
func (u Unit) ShiftCoefficient(delta int) (Unit, error) {
	c, err := shiftPow10(u.pow10, delta)
	if err != nil {
		return Unit{}, err
	}
	u.pow10 = c
	return u, nil
}

// ConvertPrefix re-expresses the same scale with another prefix on one axis:
// coefficient += (old.Degree - new.Degree) * exponent.
// Converting a cm^3 unit to dm^3 subtracts 3 from the coefficient.
func (u Unit) ConvertPrefix(axis Axis, p Prefix) (Unit, error) {
	if err := validateAxisPrefix(axis, p); err != nil {
		return Unit{}, err
	}
	delta := (u.prefixes[axis].Degree() - p.Degree()) * int(u.dim[axis])
	c, err := shiftPow10(u.pow10, delta)
	if err != nil {
		return Unit{}, err
	}
	u.pow10 = c
	u.prefixes[axis] = p
	return u, nil
}

// HarmonizeWith re-expresses u using other's prefix on every axis where other's exponent is
// non-zero, adjusting u's coefficient so the represented scale is unchanged. Axes where other's
// exponent is zero keep u's own prefix. The two units may have different dimensions.
func (u Unit) HarmonizeWith(other Unit) (Unit, error) {
	delta := 0
	result := u
	for i := range u.prefixes {
		if other.dim[i] == 0 {
			continue
		}
		delta += (u.prefixes[i].Degree() - other.prefixes[i].Degree()) * int(u.dim[i])
		result.prefixes[i] = other.prefixes[i]
	}
	c, err := shiftPow10(u.pow10, delta)
	if err != nil {
		return Unit{}, err
	}
	result.pow10 = c
	return result, nil
}

// ResidualCoefficient takes over other's coefficient and returns the difference that was
// dropped. The caller must multiply the accompanying magnitude by 10^delta.
func (u Unit) ResidualCoefficient(other Unit) (Unit, int) {
	delta := int(u.pow10) - int(other.pow10)
	u.pow10 = other.pow10
	return u, delta
}

// Multiply combines two units: other is harmonized into u, coefficients add, exponents add.
func (u Unit) Multiply(other Unit) (Unit, error) {
	return u.combine(other, 1)
}

// Divide combines two units: other is harmonized into u, coefficients subtract, exponents subtract.
func (u Unit) Divide(other Unit) (Unit, error) {
	return u.combine(other, -1)
}

func (u Unit) combine(other Unit, sign int) (Unit, error) {
	rhs, err := other.HarmonizeWith(u)
	if err != nil {
		return Unit{}, err
	}
	dim, err := u.dim.combine(other.dim, sign)
	if err != nil {
		return Unit{}, err
	}
	c, err := shiftPow10(u.pow10, sign*int(rhs.pow10))
	if err != nil {
		return Unit{}, err
	}
	return Unit{dim: dim, pow10: c, prefixes: rhs.prefixes}, nil
}

// CanonicalExponent returns the coefficient the unit would have with every prefix folded in.
func (u Unit) CanonicalExponent() int {
	e := int(u.pow10)
	for i, p := range u.prefixes {
		e += p.Degree() * int(u.dim[i])
	}
	return e
}

// WithoutPrefixes folds every prefix into the coefficient.
func (u Unit) WithoutPrefixes() (Unit, error) {
	c, err := shiftPow10(0, u.CanonicalExponent())
	if err != nil {
		return Unit{}, err
	}
	return Unit{dim: u.dim, pow10: c}, nil
}

// Equals returns true if both units are identical (dimension, coefficient and prefixes).
func (u Unit) Equals(other Unit) bool {
	return u == other
}

// String renders the unit as "10^c unit^e ...", e.g. "10^-4 mol dm^-3".
func (u Unit) String() string {
	parts := make([]string, 0, AxisCount+1)
	switch u.pow10 {
	case 0:
	case 1:
		parts = append(parts, "10")
	default:
		parts = append(parts, fmt.Sprintf("10^%d", u.pow10))
	}
	for i, e := range u.dim {
		symbol := u.prefixes[i].Symbol() + axisSymbols[i]
		switch e {
		case 0:
		case 1:
			parts = append(parts, symbol)
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", symbol, e))
		}
	}
	return strings.Join(parts, " ")
}

func shiftPow10(c int8, delta int) (int8, error) {
	v := int(c) + delta
	if v > math.MaxInt8 || v < math.MinInt8 {
		return 0, fmt.Errorf("%w: power-of-ten coefficient %d", shared.ErrOverflow, v)
	}
	return int8(v), nil
}

func validateAxisPrefix(axis Axis, p Prefix) error {
	if !axis.valid() {
		return fmt.Errorf("%w: axis %d", shared.ErrInvalidInput, axis)
	}
	if !p.IsValid() {
		return fmt.Errorf("%w: prefix %d", shared.ErrInvalidInput, p)
	}
	return nil
}
