package valueobject

import (
	"fmt"
	"math"
	"strconv"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// ExactSigDigits is the digit count given to literals; it treats them as exact.
	ExactSigDigits = 20
	// MaxSigDigits is the largest digit count a Measurement can carry.
	MaxSigDigits = math.MaxUint8
)

// Measurement is a float value together with the number of its digits that are trustworthy.
// It is immutable - all operations return new Measurement instances.
//
// Multiplication and division keep the smaller digit count of the operands. Addition and
// subtraction keep digits down to the coarser of the two operands' last significant decimal
// places. Rendering and closeness checks round half-to-even at the last significant place.
type Measurement struct {
	value     float64
	sigDigits int
}

// NewMeasurement creates a Measurement from a literal, treated as exact.
func NewMeasurement(value float64) Measurement {
	return Measurement{value: value, sigDigits: ExactSigDigits}
}

// NewMeasurementWithSigDigits creates a Measurement with a declared precision.
func NewMeasurementWithSigDigits(value float64, sigDigits int) (Measurement, error) {
	return NewMeasurement(value).WithSigDigits(sigDigits)
}

// WithSigDigits declares the measured precision.
func (m Measurement) WithSigDigits(n int) (Measurement, error) {
	if n < 0 || n > MaxSigDigits {
		return Measurement{}, fmt.Errorf("%w: %d (allowed 0..%d)", shared.ErrInvalidPrecision, n, MaxSigDigits)
	}
	return Measurement{value: m.value, sigDigits: n}, nil
}

// Value returns the raw float value
func (m Measurement) Value() float64 {
	return m.value
}

// SigDigits returns the significant digit count
func (m Measurement) SigDigits() int {
	return m.sigDigits
}

// IsZero returns true if the value is exactly zero
func (m Measurement) IsZero() bool {
	return m.value == 0
}

func (m Measurement) isFinite() bool {
	return !math.IsInf(m.value, 0) && !math.IsNaN(m.value)
}

// LeadingDigitExponent returns floor(log10(|value|)). The second result is false for zero
// (and non-finite values), which have no leading digit.
//
// The exponent is read off the shortest decimal form of the float, so 1000 yields 3 even
// though math.Log10(1000) is not exactly 3.
func (m Measurement) LeadingDigitExponent() (int, bool) {
	if m.value == 0 || !m.isFinite() {
		return 0, false
	}
	d := decimal.NewFromFloat(math.Abs(m.value))
	return d.NumDigits() + int(d.Exponent()) - 1, true
}

// LastSignificantPlace returns the decimal place of the last trustworthy digit
// (0 = units, -1 = tenths, 2 = hundreds). A zero value is anchored by its digit count alone.
func (m Measurement) LastSignificantPlace() int {
	lead, ok := m.LeadingDigitExponent()
	if !ok {
		return -m.sigDigits
	}
	return lead - m.sigDigits + 1
}

// Round rounds the value at its last significant place, breaking exact ties toward the even
// digit. Rounding an already rounded Measurement is a no-op.
func (m Measurement) Round() Measurement {
	if m.value == 0 || !m.isFinite() {
		return m
	}
	places := int32(-m.LastSignificantPlace())
	rounded := decimal.NewFromFloat(m.value).RoundBank(places)
	return Measurement{value: rounded.InexactFloat64(), sigDigits: m.sigDigits}
}

// Neg flips the sign; precision is unchanged.
func (m Measurement) Neg() Measurement {
	return Measurement{value: -m.value, sigDigits: m.sigDigits}
}

// Add sums two measurements. The result keeps digits down to the coarser last significant
// place of the operands.
func (m Measurement) Add(other Measurement) (Measurement, error) {
	value := m.value + other.value
	if math.IsInf(value, 0) {
		return Measurement{}, fmt.Errorf("%w: %g + %g", shared.ErrOverflow, m.value, other.value)
	}
	place := max(m.LastSignificantPlace(), other.LastSignificantPlace())
	digits, err := additiveSigDigits(value, place)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{value: value, sigDigits: digits}, nil
}

// Sub subtracts other from m with the same precision rule as Add.
func (m Measurement) Sub(other Measurement) (Measurement, error) {
	return m.Add(other.Neg())
}

// Mul multiplies two measurements; the result keeps the smaller digit count.
func (m Measurement) Mul(other Measurement) (Measurement, error) {
	value := m.value * other.value
	if math.IsInf(value, 0) {
		return Measurement{}, fmt.Errorf("%w: %g * %g", shared.ErrOverflow, m.value, other.value)
	}
	return Measurement{value: value, sigDigits: min(m.sigDigits, other.sigDigits)}, nil
}

// Div divides m by other; the result keeps the smaller digit count.
func (m Measurement) Div(other Measurement) (Measurement, error) {
	if other.value == 0 {
		return Measurement{}, fmt.Errorf("%w: %g / 0", shared.ErrDivisionByZero, m.value)
	}
	value := m.value / other.value
	if math.IsInf(value, 0) {
		return Measurement{}, fmt.Errorf("%w: %g / %g", shared.ErrOverflow, m.value, other.value)
	}
	return Measurement{value: value, sigDigits: min(m.sigDigits, other.sigDigits)}, nil
}

// Scale multiplies the value by 10^pow without touching the digit count.
func (m Measurement) Scale(pow int) (Measurement, error) {
	value := scalePow10(m.value, pow)
	if math.IsInf(value, 0) {
		return Measurement{}, fmt.Errorf("%w: %g * 10^%d", shared.ErrOverflow, m.value, pow)
	}
	return Measurement{value: value, sigDigits: m.sigDigits}, nil
}

// Compare compares raw values: -1, 0 or 1. Precision is ignored.
func (m Measurement) Compare(other Measurement) int {
	switch {
	case m.value < other.value:
		return -1
	case m.value > other.value:
		return 1
	default:
		return 0
	}
}

// Equal returns true if the raw values are equal; precision is ignored.
func (m Measurement) Equal(other Measurement) bool {
	return m.value == other.value
}

// LessThan compares raw values
func (m Measurement) LessThan(other Measurement) bool {
	return m.value < other.value
}

// GreaterThan compares raw values
func (m Measurement) GreaterThan(other Measurement) bool {
	return m.value > other.value
}

// IsCloseTo rounds both measurements to the lesser of their digit counts and compares the
// rendered text.
func (m Measurement) IsCloseTo(other Measurement) bool {
	n := min(m.sigDigits, other.sigDigits)
	a := Measurement{value: m.value, sigDigits: n}
	b := Measurement{value: other.value, sigDigits: n}
	return a.String() == b.String()
}

// String renders exactly SigDigits significant digits of the rounded value:
// 12300 with 3 digits is "12300", 0.125 with 2 digits is "0.12", 0 with 3 digits is "0.000".
func (m Measurement) String() string {
	if !m.isFinite() {
		return strconv.FormatFloat(m.value, 'g', -1, 64)
	}
	r := m.Round()
	// a carry (9.96 -> 10.0) moves the leading digit; re-anchor on the rounded value
	places := -r.LastSignificantPlace()
	if places < 0 {
		places = 0
	}
	return decimal.NewFromFloat(r.value).StringFixed(int32(places))
}

func additiveSigDigits(value float64, place int) (int, error) {
	var digits int
	if lead, ok := (Measurement{value: value}).LeadingDigitExponent(); ok {
		digits = lead - place + 1
	} else {
		digits = -place
	}
	if digits > MaxSigDigits {
		return 0, fmt.Errorf("%w: %d significant digits", shared.ErrOverflow, digits)
	}
	// the result is smaller than its own uncertainty
	if digits < 0 {
		digits = 0
	}
	return digits, nil
}

// scalePow10 divides for negative powers since 10^-n is not exact in binary.
func scalePow10(v float64, pow int) float64 {
	if pow >= 0 {
		return v * math.Pow10(pow)
	}
	return v / math.Pow10(-pow)
}
