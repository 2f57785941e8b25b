package apparatus

import (
	"fmt"
	"math"

	"github.com/labbench/backend/internal/domain/chemistry"
	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Kind identifies a type of glassware
type Kind string

const (
	KindBeaker          Kind = "beaker"
	KindVolumetricFlask Kind = "volumetric_flask"
	KindPipette         Kind = "pipette"
)

// Default glassware precision
const (
	DefaultBeakerSigDigits  = 3
	DefaultFlaskTolerance   = 0.2
	DefaultPipetteTolerance = 0.03
)

// Apparatus is a piece of glassware with a nominal capacity in milliliters
type Apparatus interface {
	shared.AggregateRoot
	Kind() Kind
	Capacity() valueobject.Quantity
	Volume() valueobject.Quantity
}

// Tolerances describes how precisely each kind of glassware measures its nominal volume.
// Beakers are graduated coarsely and use a fixed digit count; volumetric glassware derives
// its digit count from the manufacturer tolerance in mL.
type Tolerances struct {
	BeakerSigDigits  int
	FlaskTolerance   float64
	PipetteTolerance float64
}

// DefaultTolerances returns class A glassware tolerances
func DefaultTolerances() Tolerances {
	return Tolerances{
		BeakerSigDigits:  DefaultBeakerSigDigits,
		FlaskTolerance:   DefaultFlaskTolerance,
		PipetteTolerance: DefaultPipetteTolerance,
	}
}

// SigDigitsFor returns the significant digits of a nominal capacity read with a given tolerance:
// the integer digits of the capacity plus the first decimal place where the tolerance reaches 0.5.
// A 100 mL flask at +-0.2 mL gives 4; a 5 mL pipette at +-0.03 mL gives 3.
func SigDigitsFor(capacity, tolerance float64) (int, error) {
	if capacity <= 0 || math.IsInf(capacity, 0) || math.IsNaN(capacity) {
		return 0, fmt.Errorf("%w: capacity %g", shared.ErrInvalidInput, capacity)
	}
	lead, _ := valueobject.NewMeasurement(capacity).LeadingDigitExponent()

	tolerance = math.Abs(tolerance)
	places := 0
	for i := 0; i < 20; i++ {
		if tolerance*math.Pow10(i) >= 0.5 {
			places = i
			break
		}
	}
	return max(lead+1+places, 0), nil
}

func nominalVolume(capacity float64, sigDigits int) (valueobject.Quantity, error) {
	if capacity <= 0 {
		return valueobject.Quantity{}, fmt.Errorf("%w: capacity %g", shared.ErrInvalidInput, capacity)
	}
	return valueobject.Milliliters(capacity).WithSigDigits(sigDigits)
}

// vessel is the liquid-holding part shared by beakers and flasks
type vessel struct {
	shared.BaseAggregateRoot
	capacity valueobject.Quantity
	solution *chemistry.Solution
}

func newVessel(capacity valueobject.Quantity) vessel {
	return vessel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		capacity:          capacity,
		solution:          chemistry.NewSolution(),
	}
}

// Capacity returns the nominal volume
func (v *vessel) Capacity() valueobject.Quantity {
	return v.capacity
}

// Volume returns the current liquid volume
func (v *vessel) Volume() valueobject.Quantity {
	return v.solution.Volume()
}

// Solution returns a copy of the contents
func (v *vessel) Solution() *chemistry.Solution {
	return v.solution.Clone()
}

// Concentration returns the concentration of one solute; zero when absent
func (v *vessel) Concentration(name string) (valueobject.Quantity, error) {
	return v.solution.Concentration(name)
}

// Concentrations returns the concentration of every solute
func (v *vessel) Concentrations() (map[string]valueobject.Quantity, error) {
	return v.solution.Concentrations()
}

// Moles returns the amount of one solute; zero when absent
func (v *vessel) Moles(name string) (valueobject.Quantity, error) {
	return v.solution.Moles(name)
}

// tryAdd applies fn to a copy of the contents and commits only when the result fits
func (v *vessel) tryAdd(fn func(*chemistry.Solution) error) error {
	next := v.solution.Clone()
	if err := fn(next); err != nil {
		return err
	}
	fits, err := next.Volume().LessThanOrEqual(v.capacity)
	if err != nil {
		return err
	}
	if !fits {
		return fmt.Errorf("%w: %s into %s", shared.ErrCapacityExceeded, next.Volume(), v.capacity)
	}
	v.solution = next
	return nil
}
