package apparatus

import (
	"fmt"

	"github.com/labbench/backend/internal/domain/chemistry"
	"github.com/labbench/backend/internal/domain/shared"
)

// VolumetricFlask holds exactly its nominal volume when filled to the mark
type VolumetricFlask struct {
	vessel
}

// NewVolumetricFlask creates a flask with the default tolerance
func NewVolumetricFlask(capacity float64) (*VolumetricFlask, error) {
	return DefaultTolerances().NewVolumetricFlask(capacity)
}

// NewVolumetricFlask creates a flask of the given capacity in mL
func (t Tolerances) NewVolumetricFlask(capacity float64) (*VolumetricFlask, error) {
	digits, err := SigDigitsFor(capacity, t.FlaskTolerance)
	if err != nil {
		return nil, err
	}
	nominal, err := nominalVolume(capacity, digits)
	if err != nil {
		return nil, err
	}
	return &VolumetricFlask{vessel: newVessel(nominal)}, nil
}

// Kind returns KindVolumetricFlask
func (f *VolumetricFlask) Kind() Kind {
	return KindVolumetricFlask
}

// AddSolution pours a solution into the flask
func (f *VolumetricFlask) AddSolution(sol *chemistry.Solution) error {
	if err := f.tryAdd(func(s *chemistry.Solution) error { return s.AddSolution(sol) }); err != nil {
		return err
	}
	f.AddDomainEvent(NewSolutionAddedEvent(f, sol.SoluteNames()))
	return nil
}

// FillUp adds solvent up to the mark
func (f *VolumetricFlask) FillUp() error {
	if err := f.solution.FillTo(f.capacity); err != nil {
		return err
	}
	f.AddDomainEvent(NewFilledEvent(f))
	return nil
}

// Draw fills an empty pipette from the flask. The flask must hold more than the pipette.
func (f *VolumetricFlask) Draw(p *Pipette) error {
	if p.IsFull() {
		return fmt.Errorf("%w: pipette %s", shared.ErrApparatusOccupied, p.ID)
	}
	v := p.Capacity()
	enough, err := v.LessThan(f.Volume())
	if err != nil {
		return err
	}
	if !enough {
		return fmt.Errorf("%w: cannot draw %s from %s", shared.ErrInvalidInput, v, f.Volume())
	}

	rest := f.solution.Clone()
	taken, err := rest.Dispense(v)
	if err != nil {
		return err
	}
	if err := p.Aspirate(taken); err != nil {
		return err
	}
	f.solution = rest
	f.AddDomainEvent(NewTransferredEvent(f, p, v))
	return nil
}

var _ Apparatus = (*VolumetricFlask)(nil)
