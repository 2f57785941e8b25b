package service

import (
	"fmt"
	"strings"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// UnitConversionResult represents the result of a unit conversion
type UnitConversionResult struct {
	// The quantity as it was given
	Source valueobject.Quantity
	// The code of the source unit, or its rendered form when it has no code
	SourceUnitCode string
	// The same physical value expressed in the target unit
	Target valueobject.Quantity
	// The code of the target unit
	TargetUnitCode string
	// Target magnitude = source magnitude * Factor
	Factor decimal.Decimal
}

// UnitInfo names a unit used at the bench
type UnitInfo struct {
	Code string
	Name string
	Unit valueobject.Unit
}

// UnitConversionService converts quantities between the named laboratory units.
// This is a domain service as it only works on value objects.
type UnitConversionService struct {
	units []UnitInfo
	index map[string]int
}

// NewUnitConversionService creates a new unit conversion service with the bench units
func NewUnitConversionService() *UnitConversionService {
	units := []UnitInfo{
		labUnit("g", "gram", valueobject.MassDim, valueobject.PrefixNone, 0),
		labUnit("mg", "milligram", valueobject.MassDim, valueobject.PrefixNone, -3),
		labUnit("mol", "mole", valueobject.AmountDim, valueobject.PrefixNone, 0),
		labUnit("mmol", "millimole", valueobject.AmountDim, valueobject.PrefixNone, -3),
		labUnit("umol", "micromole", valueobject.AmountDim, valueobject.PrefixNone, -6),
		labUnit("m3", "cubic meter", valueobject.VolumeDim, valueobject.PrefixNone, 0),
		labUnit("L", "liter", valueobject.VolumeDim, valueobject.PrefixDeci, 0),
		labUnit("mL", "milliliter", valueobject.VolumeDim, valueobject.PrefixCenti, 0),
		labUnit("uL", "microliter", valueobject.VolumeDim, valueobject.PrefixMilli, 0),
		labUnit("M", "mole per liter", valueobject.MolarityDim, valueobject.PrefixDeci, 0),
		labUnit("mM", "millimole per liter", valueobject.MolarityDim, valueobject.PrefixDeci, -3),
		labUnit("uM", "micromole per liter", valueobject.MolarityDim, valueobject.PrefixDeci, -6),
		labUnit("g/mol", "gram per mole", valueobject.MolarMassDim, valueobject.PrefixNone, 0),
	}
	index := make(map[string]int, len(units))
	for i, u := range units {
		index[u.Code] = i
	}
	return &UnitConversionService{units: units, index: index}
}

// labUnit builds a unit with an optional length prefix. Panics on a bad table entry.
func labUnit(code, name string, dim valueobject.Dimension, p valueobject.Prefix, coefficient int) UnitInfo {
	u := valueobject.NewUnit(dim)
	var err error
	if p != valueobject.PrefixNone {
		if u, err = u.WithPrefix(valueobject.AxisLength, p); err != nil {
			panic(err)
		}
	}
	if u, err = u.ShiftCoefficient(coefficient); err != nil {
		panic(err)
	}
	return UnitInfo{Code: code, Name: name, Unit: u}
}

// Units returns the known units in table order
func (s *UnitConversionService) Units() []UnitInfo {
	return append([]UnitInfo(nil), s.units...)
}

// LookupUnit finds a unit by its code. Codes are case sensitive ("M" and "mM" differ).
func (s *UnitConversionService) LookupUnit(code string) (UnitInfo, error) {
	i, ok := s.index[strings.TrimSpace(code)]
	if !ok {
		return UnitInfo{}, fmt.Errorf("%w: unknown unit %q", shared.ErrInvalidInput, code)
	}
	return s.units[i], nil
}

// CodeFor returns the code of a unit if it is one of the known units
func (s *UnitConversionService) CodeFor(u valueobject.Unit) (string, bool) {
	for _, info := range s.units {
		if info.Unit.Equals(u) {
			return info.Code, true
		}
	}
	return "", false
}

// NewQuantity creates a quantity in a named unit. Digits 0 means the value is exact.
func (s *UnitConversionService) NewQuantity(value float64, digits int, code string) (valueobject.Quantity, error) {
	info, err := s.LookupUnit(code)
	if err != nil {
		return valueobject.Quantity{}, err
	}
	q := valueobject.NewQuantityWithUnit(value, info.Unit)
	if digits == 0 {
		return q, nil
	}
	return q.WithSigDigits(digits)
}

// ConvertTo re-expresses a quantity in the named target unit.
// The physical value and the significant digits are unchanged.
func (s *UnitConversionService) ConvertTo(q valueobject.Quantity, targetCode string) (*UnitConversionResult, error) {
	target, err := s.LookupUnit(targetCode)
	if err != nil {
		return nil, err
	}
	if q.Dimension() != target.Unit.Dimension() {
		return nil, fmt.Errorf("%w: cannot convert %s to %s", shared.ErrDimensionMismatch, q.Dimension(), target.Code)
	}

	// only the unit of the reference quantity is read
	converted, err := q.IntoSameUnitWith(valueobject.NewQuantityWithUnit(0, target.Unit))
	if err != nil {
		return nil, err
	}

	sourceCode, ok := s.CodeFor(q.Unit())
	if !ok {
		sourceCode = q.Unit().String()
	}
	delta := q.Unit().CanonicalExponent() - target.Unit.CanonicalExponent()
	return &UnitConversionResult{
		Source:         q,
		SourceUnitCode: sourceCode,
		Target:         converted,
		TargetUnitCode: target.Code,
		Factor:         decimal.New(1, int32(delta)),
	}, nil
}

// ConvertBetweenUnits converts a reading from one named unit to another
func (s *UnitConversionService) ConvertBetweenUnits(value float64, digits int, fromCode, toCode string) (*UnitConversionResult, error) {
	q, err := s.NewQuantity(value, digits, fromCode)
	if err != nil {
		return nil, err
	}
	return s.ConvertTo(q, toCode)
}
