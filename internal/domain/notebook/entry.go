package notebook

import (
	"fmt"
	"strings"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeEntry = "NotebookEntry"

// Event type constants
const (
	EventTypeEntryRecorded = "notebook.entry_recorded"
)

// Stage is the state of one vessel in a dilution series
type Stage struct {
	Label         string               `json:"label"`
	Volume        valueobject.Quantity `json:"volume"`
	Concentration valueobject.Quantity `json:"concentration"`
}

// Entry is a lab notebook record of one preparation: what was weighed, how it was diluted
// and the concentration that resulted.
type Entry struct {
	shared.BaseAggregateRoot
	Title              string
	Solute             string
	MolarMass          valueobject.Quantity
	Mass               valueobject.Quantity
	Stages             []Stage
	Steps              []string
	FinalConcentration valueobject.Quantity
	Completed          bool
}

var _ shared.AggregateRoot = (*Entry)(nil)

// NewEntry opens a notebook entry for a solute
func NewEntry(title, solute string, molarMass, mass valueobject.Quantity) (*Entry, error) {
	title = strings.TrimSpace(title)
	solute = strings.TrimSpace(solute)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Entry title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Entry title cannot exceed 200 characters")
	}
	if solute == "" {
		return nil, shared.NewDomainError("INVALID_SOLUTE", "Solute name cannot be empty")
	}
	if molarMass.Dimension() != valueobject.MolarMassDim {
		return nil, fmt.Errorf("%w: molar mass has dimension %s", shared.ErrDimensionMismatch, molarMass.Dimension())
	}
	if mass.Dimension() != valueobject.MassDim {
		return nil, fmt.Errorf("%w: mass has dimension %s", shared.ErrDimensionMismatch, mass.Dimension())
	}

	return &Entry{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Title:              title,
		Solute:             solute,
		MolarMass:          molarMass,
		Mass:               mass,
		Stages:             make([]Stage, 0),
		Steps:              make([]string, 0),
		FinalConcentration: valueobject.ZeroQuantity(valueobject.MolarityDim),
	}, nil
}

// LogStep appends a free-text step to the procedure log
func (e *Entry) LogStep(format string, args ...any) {
	e.Steps = append(e.Steps, fmt.Sprintf(format, args...))
}

// RecordStage stores the concentration reached in one vessel
func (e *Entry) RecordStage(label string, volume, concentration valueobject.Quantity) error {
	if e.Completed {
		return shared.NewDomainError("INVALID_STATE", "Entry is already completed")
	}
	if volume.Dimension() != valueobject.VolumeDim {
		return fmt.Errorf("%w: stage volume has dimension %s", shared.ErrDimensionMismatch, volume.Dimension())
	}
	if concentration.Dimension() != valueobject.MolarityDim {
		return fmt.Errorf("%w: stage concentration has dimension %s", shared.ErrDimensionMismatch, concentration.Dimension())
	}
	e.Stages = append(e.Stages, Stage{Label: label, Volume: volume, Concentration: concentration})
	return nil
}

// Complete closes the entry with the last stage's concentration as the result
func (e *Entry) Complete() error {
	if e.Completed {
		return shared.NewDomainError("INVALID_STATE", "Entry is already completed")
	}
	if len(e.Stages) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Entry has no recorded stages")
	}
	e.FinalConcentration = e.Stages[len(e.Stages)-1].Concentration
	e.Completed = true
	e.IncrementVersion()
	e.AddDomainEvent(NewEntryRecordedEvent(e))
	return nil
}

// EntryRecordedEvent is published when an entry is completed
type EntryRecordedEvent struct {
	shared.BaseDomainEvent
	Title              string               `json:"title"`
	Solute             string               `json:"solute"`
	FinalConcentration valueobject.Quantity `json:"final_concentration"`
}

// NewEntryRecordedEvent creates a new EntryRecordedEvent
func NewEntryRecordedEvent(e *Entry) *EntryRecordedEvent {
	return &EntryRecordedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeEntryRecorded, AggregateTypeEntry, e.ID),
		Title:              e.Title,
		Solute:             e.Solute,
		FinalConcentration: e.FinalConcentration,
	}
}
