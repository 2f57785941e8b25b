package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/labbench/backend/internal/domain/notebook"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// StringList is a list of strings stored as a JSON array
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("cannot scan string list from non-text column")
	}
	return json.Unmarshal(data, (*[]string)(l))
}

// NotebookEntryModel is the persistence model for a notebook entry.
// Quantities are stored as JSON text with their unit and precision.
type NotebookEntryModel struct {
	AggregateModel
	Title              string               `gorm:"type:varchar(200);not null"`
	Solute             string               `gorm:"type:varchar(100);not null;index"`
	MolarMass          valueobject.Quantity `gorm:"type:text;not null"`
	Mass               valueobject.Quantity `gorm:"type:text;not null"`
	FinalConcentration valueobject.Quantity `gorm:"type:text;not null"`
	Steps              StringList           `gorm:"type:text;not null"`
	Completed          bool                 `gorm:"not null;default:false"`
	Stages             []NotebookStageModel `gorm:"foreignKey:EntryID"`
}

// TableName returns the table name for GORM
func (NotebookEntryModel) TableName() string {
	return "notebook_entries"
}

// NotebookStageModel is one recorded stage of a dilution series
type NotebookStageModel struct {
	ID            uint                 `gorm:"primaryKey;autoIncrement"`
	EntryID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	Position      int                  `gorm:"not null"`
	Label         string               `gorm:"type:varchar(100);not null"`
	Volume        valueobject.Quantity `gorm:"type:text;not null"`
	Concentration valueobject.Quantity `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (NotebookStageModel) TableName() string {
	return "notebook_stages"
}

// ToDomain converts the persistence model to a domain entry
func (m *NotebookEntryModel) ToDomain() *notebook.Entry {
	stages := make([]notebook.Stage, 0, len(m.Stages))
	for _, s := range m.Stages {
		stages = append(stages, notebook.Stage{
			Label:         s.Label,
			Volume:        s.Volume,
			Concentration: s.Concentration,
		})
	}
	steps := append([]string{}, m.Steps...)
	return &notebook.Entry{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		Title:              m.Title,
		Solute:             m.Solute,
		MolarMass:          m.MolarMass,
		Mass:               m.Mass,
		Stages:             stages,
		Steps:              steps,
		FinalConcentration: m.FinalConcentration,
		Completed:          m.Completed,
	}
}

// FromDomain populates the persistence model from a domain entry
func (m *NotebookEntryModel) FromDomain(e *notebook.Entry) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Title = e.Title
	m.Solute = e.Solute
	m.MolarMass = e.MolarMass
	m.Mass = e.Mass
	m.FinalConcentration = e.FinalConcentration
	m.Steps = append(StringList{}, e.Steps...)
	m.Completed = e.Completed
	m.Stages = make([]NotebookStageModel, 0, len(e.Stages))
	for i, s := range e.Stages {
		m.Stages = append(m.Stages, NotebookStageModel{
			EntryID:       e.ID,
			Position:      i,
			Label:         s.Label,
			Volume:        s.Volume,
			Concentration: s.Concentration,
		})
	}
}

// NotebookEntryModelFromDomain creates a persistence model from a domain entry
func NotebookEntryModelFromDomain(e *notebook.Entry) *NotebookEntryModel {
	m := &NotebookEntryModel{}
	m.FromDomain(e)
	return m
}
