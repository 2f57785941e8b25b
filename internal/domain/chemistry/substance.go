package chemistry

import (
	"fmt"
	"strings"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Substance is a named chemical species with a measured molar mass
type Substance struct {
	Name      string
	MolarMass valueobject.Quantity
}

// NewSubstance creates a substance; molarMass must be a positive g/mol quantity
func NewSubstance(name string, molarMass valueobject.Quantity) (Substance, error) {
	name = strings.TrimSpace(name)
	if err := validateSubstanceName(name); err != nil {
		return Substance{}, err
	}
	if molarMass.Dimension() != valueobject.MolarMassDim {
		return Substance{}, fmt.Errorf("%w: molar mass of %s has dimension %s", shared.ErrDimensionMismatch, name, molarMass.Dimension())
	}
	if !molarMass.IsPositive() {
		return Substance{}, shared.NewDomainError("INVALID_MOLAR_MASS", "Molar mass must be positive")
	}
	return Substance{Name: name, MolarMass: molarMass}, nil
}

// SameAs reports whether both substances name the same species with the same molar mass
func (s Substance) SameAs(other Substance) bool {
	if s.Name != other.Name {
		return false
	}
	eq, err := s.MolarMass.Equals(other.MolarMass)
	return err == nil && eq
}

func validateSubstanceName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Substance name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Substance name cannot exceed 100 characters")
	}
	return nil
}
