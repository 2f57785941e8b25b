package chemistry

import (
	"fmt"
	"sort"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Solution is a liquid holding any number of dissolved solids, keyed by substance name.
// The zero value is not usable; create solutions with NewSolution.
type Solution struct {
	volume valueobject.Quantity
	solute map[string]Solid
}

// NewSolution creates an empty solution
func NewSolution() *Solution {
	return &Solution{
		volume: valueobject.ZeroQuantity(valueobject.VolumeDim),
		solute: make(map[string]Solid),
	}
}

// Volume returns the liquid volume
func (s *Solution) Volume() valueobject.Quantity {
	return s.volume
}

// IsEmpty reports whether the solution holds neither liquid nor solute
func (s *Solution) IsEmpty() bool {
	return s.volume.IsZero() && len(s.solute) == 0
}

// SoluteNames returns the dissolved substance names in lexical order
func (s *Solution) SoluteNames() []string {
	names := make([]string, 0, len(s.solute))
	for name := range s.solute {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Solute returns the dissolved portion of a substance
func (s *Solution) Solute(name string) (Solid, bool) {
	solid, ok := s.solute[name]
	return solid, ok
}

// Mass returns the dissolved mass of a substance; zero when absent
func (s *Solution) Mass(name string) valueobject.Quantity {
	if solid, ok := s.solute[name]; ok {
		return solid.Mass
	}
	return valueobject.ZeroQuantity(valueobject.MassDim)
}

// Moles returns the dissolved amount of a substance; zero when absent
func (s *Solution) Moles(name string) (valueobject.Quantity, error) {
	solid, ok := s.solute[name]
	if !ok {
		return valueobject.ZeroQuantity(valueobject.AmountDim), nil
	}
	return solid.Moles()
}

// Concentration returns moles / volume of a substance; zero when absent.
// The result is on the mol cm^-3 scale when the volume is in milliliters; see Quantity.ToMolar.
func (s *Solution) Concentration(name string) (valueobject.Quantity, error) {
	if _, ok := s.solute[name]; !ok {
		return valueobject.ZeroQuantity(valueobject.MolarityDim), nil
	}
	n, err := s.Moles(name)
	if err != nil {
		return valueobject.Quantity{}, err
	}
	c, err := n.Div(s.volume)
	if err != nil {
		return valueobject.Quantity{}, fmt.Errorf("concentration of %s: %w", name, err)
	}
	return c, nil
}

// Concentrations returns the concentration of every solute
func (s *Solution) Concentrations() (map[string]valueobject.Quantity, error) {
	result := make(map[string]valueobject.Quantity, len(s.solute))
	for name := range s.solute {
		c, err := s.Concentration(name)
		if err != nil {
			return nil, err
		}
		result[name] = c
	}
	return result, nil
}

// AddSolid dissolves a solid; its volume joins the liquid volume
func (s *Solution) AddSolid(solid Solid) error {
	volume, err := s.volume.Add(solid.Volume)
	if err != nil {
		return err
	}
	merged, err := s.mergeSolute(solid)
	if err != nil {
		return err
	}
	s.volume = volume
	s.solute[solid.Name()] = merged
	return nil
}

// AddSolution pours another solution in. Volumes add and solutes of the same name merge.
// Nothing is changed when a solute conflicts.
func (s *Solution) AddSolution(other *Solution) error {
	volume, err := s.volume.Add(other.volume)
	if err != nil {
		return err
	}
	merged := make(map[string]Solid, len(other.solute))
	for _, name := range other.SoluteNames() {
		m, err := s.mergeSolute(other.solute[name])
		if err != nil {
			return err
		}
		merged[name] = m
	}
	s.volume = volume
	for name, solid := range merged {
		s.solute[name] = solid
	}
	return nil
}

func (s *Solution) mergeSolute(solid Solid) (Solid, error) {
	existing, ok := s.solute[solid.Name()]
	if !ok {
		return solid, nil
	}
	return existing.merge(solid)
}

// FillTo tops the liquid up to v with solvent; v cannot be below the current volume
func (s *Solution) FillTo(v valueobject.Quantity) error {
	below, err := v.LessThan(s.volume)
	if err != nil {
		return err
	}
	if below {
		return fmt.Errorf("%w: cannot fill to %s, already holding %s", shared.ErrInvalidInput, v, s.volume)
	}
	s.volume = v
	return nil
}

// Dispense takes v out of the solution. Every solute is split in proportion v / volume;
// the returned solution holds exactly v and the receiver keeps the remainder.
func (s *Solution) Dispense(v valueobject.Quantity) (*Solution, error) {
	above, err := v.GreaterThan(s.volume)
	if err != nil {
		return nil, err
	}
	if above {
		return nil, fmt.Errorf("%w: cannot dispense %s from %s", shared.ErrInvalidInput, v, s.volume)
	}

	ratio, err := v.Div(s.volume)
	if err != nil {
		return nil, err
	}
	rest, err := valueobject.Dimensionless(1).Sub(ratio)
	if err != nil {
		return nil, err
	}
	remaining, err := s.volume.Sub(v)
	if err != nil {
		return nil, err
	}

	taken := &Solution{volume: v, solute: make(map[string]Solid, len(s.solute))}
	kept := make(map[string]Solid, len(s.solute))
	for name, solid := range s.solute {
		if taken.solute[name], err = solid.scale(ratio); err != nil {
			return nil, err
		}
		if kept[name], err = solid.scale(rest); err != nil {
			return nil, err
		}
	}

	s.volume = remaining
	s.solute = kept
	return taken, nil
}

// Clone returns an independent copy
func (s *Solution) Clone() *Solution {
	c := &Solution{volume: s.volume, solute: make(map[string]Solid, len(s.solute))}
	for name, solid := range s.solute {
		c.solute[name] = solid
	}
	return c
}
