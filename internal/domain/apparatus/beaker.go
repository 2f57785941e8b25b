package apparatus

import (
	"fmt"

	"github.com/labbench/backend/internal/domain/chemistry"
	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Beaker is a graduated vessel used to dissolve solids before quantitative transfer
type Beaker struct {
	vessel
}

// NewBeaker creates a beaker with default precision
func NewBeaker(capacity float64) (*Beaker, error) {
	return DefaultTolerances().NewBeaker(capacity)
}

// NewBeaker creates a beaker of the given capacity in mL
func (t Tolerances) NewBeaker(capacity float64) (*Beaker, error) {
	nominal, err := nominalVolume(capacity, t.BeakerSigDigits)
	if err != nil {
		return nil, err
	}
	return &Beaker{vessel: newVessel(nominal)}, nil
}

// Kind returns KindBeaker
func (b *Beaker) Kind() Kind {
	return KindBeaker
}

// AddSolid dissolves a weighed solid in the beaker
func (b *Beaker) AddSolid(solid chemistry.Solid) error {
	if err := b.tryAdd(func(s *chemistry.Solution) error { return s.AddSolid(solid) }); err != nil {
		return err
	}
	b.AddDomainEvent(NewSolutionAddedEvent(b, []string{solid.Name()}))
	return nil
}

// AddSolution pours a solution into the beaker
func (b *Beaker) AddSolution(sol *chemistry.Solution) error {
	if err := b.tryAdd(func(s *chemistry.Solution) error { return s.AddSolution(sol) }); err != nil {
		return err
	}
	b.AddDomainEvent(NewSolutionAddedEvent(b, sol.SoluteNames()))
	return nil
}

// FillTo adds solvent up to a graduation mark. The mark must be above the current level
// and below the brim.
func (b *Beaker) FillTo(v valueobject.Quantity) error {
	above, err := v.GreaterThan(b.Volume())
	if err != nil {
		return err
	}
	if !above {
		return fmt.Errorf("%w: mark %s is not above current level %s", shared.ErrInvalidInput, v, b.Volume())
	}
	below, err := v.LessThan(b.capacity)
	if err != nil {
		return err
	}
	if !below {
		return fmt.Errorf("%w: mark %s in a %s beaker", shared.ErrCapacityExceeded, v, b.capacity)
	}
	if err := b.solution.FillTo(v); err != nil {
		return err
	}
	b.AddDomainEvent(NewFilledEvent(b))
	return nil
}

// PourInto transfers the whole contents into a volumetric flask
func (b *Beaker) PourInto(flask *VolumetricFlask) error {
	v := b.Volume()
	if v.IsZero() {
		return fmt.Errorf("%w: beaker %s", shared.ErrApparatusEmpty, b.ID)
	}
	fits, err := v.LessThan(flask.Capacity())
	if err != nil {
		return err
	}
	if !fits {
		return fmt.Errorf("%w: %s into a %s flask", shared.ErrCapacityExceeded, v, flask.Capacity())
	}

	rest := b.solution.Clone()
	taken, err := rest.Dispense(v)
	if err != nil {
		return err
	}
	if err := flask.AddSolution(taken); err != nil {
		return err
	}
	b.solution = rest
	b.AddDomainEvent(NewTransferredEvent(b, flask, v))
	return nil
}

var _ Apparatus = (*Beaker)(nil)
