package chemistry

import (
	"fmt"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Solid is a weighed portion of a substance. Volume is the space it takes up once dissolved
// and is usually zero.
type Solid struct {
	Substance Substance
	Mass      valueobject.Quantity
	Volume    valueobject.Quantity
}

// NewSolid creates a solid with negligible volume
func NewSolid(substance Substance, mass valueobject.Quantity) (Solid, error) {
	return NewSolidWithVolume(substance, mass, valueobject.ZeroQuantity(valueobject.VolumeDim))
}

// NewSolidWithVolume creates a solid that displaces the given volume
func NewSolidWithVolume(substance Substance, mass, volume valueobject.Quantity) (Solid, error) {
	if mass.Dimension() != valueobject.MassDim {
		return Solid{}, fmt.Errorf("%w: mass of %s has dimension %s", shared.ErrDimensionMismatch, substance.Name, mass.Dimension())
	}
	if volume.Dimension() != valueobject.VolumeDim {
		return Solid{}, fmt.Errorf("%w: volume of %s has dimension %s", shared.ErrDimensionMismatch, substance.Name, volume.Dimension())
	}
	if mass.IsNegative() || volume.IsNegative() {
		return Solid{}, shared.NewDomainError("INVALID_AMOUNT", "Mass and volume cannot be negative")
	}
	return Solid{Substance: substance, Mass: mass, Volume: volume}, nil
}

// Name returns the substance name
func (s Solid) Name() string {
	return s.Substance.Name
}

// Moles returns the amount of substance, mass / molar mass
func (s Solid) Moles() (valueobject.Quantity, error) {
	return s.Mass.Div(s.Substance.MolarMass)
}

// merge adds another portion of the same substance
func (s Solid) merge(other Solid) (Solid, error) {
	if !s.Substance.SameAs(other.Substance) {
		return Solid{}, fmt.Errorf("%w: %s", shared.ErrSubstanceMismatch, other.Name())
	}
	mass, err := s.Mass.Add(other.Mass)
	if err != nil {
		return Solid{}, err
	}
	volume, err := s.Volume.Add(other.Volume)
	if err != nil {
		return Solid{}, err
	}
	return Solid{Substance: s.Substance, Mass: mass, Volume: volume}, nil
}

// scale multiplies mass and volume by a dimensionless ratio
func (s Solid) scale(ratio valueobject.Quantity) (Solid, error) {
	mass, err := s.Mass.Mul(ratio)
	if err != nil {
		return Solid{}, err
	}
	volume, err := s.Volume.Mul(ratio)
	if err != nil {
		return Solid{}, err
	}
	return Solid{Substance: s.Substance, Mass: mass, Volume: volume}, nil
}
