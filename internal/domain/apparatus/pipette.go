package apparatus

import (
	"fmt"

	"github.com/labbench/backend/internal/domain/chemistry"
	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Pipette is a volumetric (transfer) pipette: it is either empty or holds exactly its volume
type Pipette struct {
	shared.BaseAggregateRoot
	capacity valueobject.Quantity
	solution *chemistry.Solution
}

// NewPipette creates a pipette with the default tolerance
func NewPipette(capacity float64) (*Pipette, error) {
	return DefaultTolerances().NewPipette(capacity)
}

// NewPipette creates a pipette of the given capacity in mL
func (t Tolerances) NewPipette(capacity float64) (*Pipette, error) {
	digits, err := SigDigitsFor(capacity, t.PipetteTolerance)
	if err != nil {
		return nil, err
	}
	nominal, err := nominalVolume(capacity, digits)
	if err != nil {
		return nil, err
	}
	return &Pipette{BaseAggregateRoot: shared.NewBaseAggregateRoot(), capacity: nominal}, nil
}

// Kind returns KindPipette
func (p *Pipette) Kind() Kind {
	return KindPipette
}

// Capacity returns the nominal volume
func (p *Pipette) Capacity() valueobject.Quantity {
	return p.capacity
}

// Volume returns the held volume, zero when empty
func (p *Pipette) Volume() valueobject.Quantity {
	if p.solution == nil {
		return valueobject.ZeroQuantity(valueobject.VolumeDim)
	}
	return p.solution.Volume()
}

// IsFull reports whether the pipette holds liquid
func (p *Pipette) IsFull() bool {
	return p.solution != nil
}

// Aspirate takes up a measured solution; the pipette must be empty
func (p *Pipette) Aspirate(sol *chemistry.Solution) error {
	if p.IsFull() {
		return fmt.Errorf("%w: pipette %s", shared.ErrApparatusOccupied, p.ID)
	}
	p.solution = sol
	p.AddDomainEvent(NewSolutionAddedEvent(p, sol.SoluteNames()))
	return nil
}

// Deliver empties the pipette into a volumetric flask
func (p *Pipette) Deliver(flask *VolumetricFlask) error {
	if !p.IsFull() {
		return fmt.Errorf("%w: pipette %s", shared.ErrApparatusEmpty, p.ID)
	}
	v := p.Volume()
	if err := flask.AddSolution(p.solution); err != nil {
		return err
	}
	p.solution = nil
	p.AddDomainEvent(NewTransferredEvent(p, flask, v))
	return nil
}

var _ Apparatus = (*Pipette)(nil)
