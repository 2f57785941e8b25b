package apparatus

import (
	"github.com/google/uuid"
	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Event type constants
const (
	EventTypeSolutionAdded = "apparatus.solution_added"
	EventTypeFilled        = "apparatus.filled"
	EventTypeTransferred   = "apparatus.transferred"
)

// SolutionAddedEvent is recorded when a solid or a solution goes into a vessel
type SolutionAddedEvent struct {
	shared.BaseDomainEvent
	Kind     Kind                 `json:"kind"`
	Solutes  []string             `json:"solutes"`
	Volume   valueobject.Quantity `json:"volume"`
	Capacity valueobject.Quantity `json:"capacity"`
}

// NewSolutionAddedEvent creates a new SolutionAddedEvent
func NewSolutionAddedEvent(a Apparatus, solutes []string) *SolutionAddedEvent {
	return &SolutionAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSolutionAdded, string(a.Kind()), a.GetID()),
		Kind:            a.Kind(),
		Solutes:         solutes,
		Volume:          a.Volume(),
		Capacity:        a.Capacity(),
	}
}

// FilledEvent is recorded when a vessel is topped up with solvent
type FilledEvent struct {
	shared.BaseDomainEvent
	Kind   Kind                 `json:"kind"`
	Volume valueobject.Quantity `json:"volume"`
}

// NewFilledEvent creates a new FilledEvent
func NewFilledEvent(a Apparatus) *FilledEvent {
	return &FilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFilled, string(a.Kind()), a.GetID()),
		Kind:            a.Kind(),
		Volume:          a.Volume(),
	}
}

// TransferredEvent is recorded on the source when liquid moves to another apparatus
type TransferredEvent struct {
	shared.BaseDomainEvent
	Kind   Kind                 `json:"kind"`
	To     uuid.UUID            `json:"to"`
	ToKind Kind                 `json:"to_kind"`
	Volume valueobject.Quantity `json:"volume"`
}

// NewTransferredEvent creates a new TransferredEvent
func NewTransferredEvent(from, to Apparatus, volume valueobject.Quantity) *TransferredEvent {
	return &TransferredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferred, string(from.Kind()), from.GetID()),
		Kind:            from.Kind(),
		To:              to.GetID(),
		ToKind:          to.Kind(),
		Volume:          volume,
	}
}
