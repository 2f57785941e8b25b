package dilution

import (
	"time"

	"github.com/google/uuid"
	"github.com/labbench/backend/internal/domain/notebook"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// MeasuredValue is a reading together with the number of digits the instrument gives.
// Digits 0 means the value is exact.
type MeasuredValue struct {
	Value  float64 `json:"value" binding:"gt=0"`
	Digits int     `json:"digits,omitempty" binding:"omitempty,min=1,max=20"`
}

// SoluteRequest names the solute. MolarMass may be omitted for substances already in the catalog.
type SoluteRequest struct {
	Name      string         `json:"name" binding:"required,min=1,max=100"`
	MolarMass *MeasuredValue `json:"molar_mass,omitempty"`
}

// BeakerRequest describes the beaker the solid is dissolved in
type BeakerRequest struct {
	Capacity float64       `json:"capacity" binding:"gt=0"`
	FillTo   MeasuredValue `json:"fill_to"`
}

// StageRequest is one serial dilution: an aliquot drawn with a pipette into a fresh flask
type StageRequest struct {
	Pipette float64 `json:"pipette" binding:"gt=0"`
	Flask   float64 `json:"flask" binding:"gt=0"`
}

// ProcedureRequest describes a standard solution preparation: weigh, dissolve in a beaker,
// transfer to a volumetric flask, fill to the mark, then optionally dilute serially.
// Volumes are in mL, masses in g, molar masses in g/mol.
type ProcedureRequest struct {
	Title  string         `json:"title" binding:"required,min=1,max=200"`
	Solute SoluteRequest  `json:"solute"`
	Mass   MeasuredValue  `json:"mass"`
	Beaker BeakerRequest  `json:"beaker"`
	Flask  float64        `json:"flask" binding:"gt=0"`
	Stages []StageRequest `json:"stages" binding:"max=10,dive"`
}

// MolarityRequest asks for the molarity of mass grams of a solute made up to volume mL
type MolarityRequest struct {
	Mass      MeasuredValue `json:"mass"`
	MolarMass MeasuredValue `json:"molar_mass"`
	Volume    MeasuredValue `json:"volume"`
}

// ConvertRequest asks for a reading to be re-expressed in another unit, e.g. 250 mL in L
type ConvertRequest struct {
	Value MeasuredValue `json:"value"`
	From  string        `json:"from" binding:"required,max=10"`
	To    string        `json:"to" binding:"required,max=10"`
}

// ListEntriesRequest represents the query for listing notebook entries
type ListEntriesRequest struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// QuantityResponse is the rendered form of a quantity
type QuantityResponse struct {
	Display   string  `json:"display"`
	Value     float64 `json:"value"`
	SigDigits int     `json:"sig_digits"`
	Unit      string  `json:"unit"`
}

// ConversionResponse is a reading in both units. Factor is the power of ten the source
// magnitude was multiplied by.
type ConversionResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Value     float64 `json:"value"`
	SigDigits int     `json:"sig_digits"`
	Factor    string  `json:"factor"`
}

// UnitResponse describes a unit accepted by the conversion endpoint
type UnitResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Dimension string `json:"dimension"`
	Unit      string `json:"unit"`
}

// StageResponse is one vessel of the dilution series
type StageResponse struct {
	Label         string           `json:"label"`
	Volume        QuantityResponse `json:"volume"`
	Concentration QuantityResponse `json:"concentration"`
}

// EntryResponse represents a notebook entry in API responses
type EntryResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Title              string           `json:"title"`
	Solute             string           `json:"solute"`
	MolarMass          QuantityResponse `json:"molar_mass"`
	Mass               QuantityResponse `json:"mass"`
	Stages             []StageResponse  `json:"stages"`
	Steps              []string         `json:"steps"`
	FinalConcentration QuantityResponse `json:"final_concentration"`
	CreatedAt          time.Time        `json:"created_at"`
	Version            int              `json:"version"`
}

// EntryListResponse represents a list item for notebook entries
type EntryListResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Title              string           `json:"title"`
	Solute             string           `json:"solute"`
	FinalConcentration QuantityResponse `json:"final_concentration"`
	CreatedAt          time.Time        `json:"created_at"`
}

// ToQuantityResponse renders a quantity in normalized form
func ToQuantityResponse(q valueobject.Quantity) QuantityResponse {
	n, err := q.Normalized()
	if err != nil {
		n = q
	}
	return QuantityResponse{
		Display:   n.String(),
		Value:     n.Magnitude().Round().Value(),
		SigDigits: n.SigDigits(),
		Unit:      n.Unit().String(),
	}
}

// ToEntryResponse converts a domain entry to a response
func ToEntryResponse(e *notebook.Entry) EntryResponse {
	stages := make([]StageResponse, 0, len(e.Stages))
	for _, st := range e.Stages {
		stages = append(stages, StageResponse{
			Label:         st.Label,
			Volume:        ToQuantityResponse(st.Volume),
			Concentration: ToQuantityResponse(st.Concentration),
		})
	}
	return EntryResponse{
		ID:                 e.ID,
		Title:              e.Title,
		Solute:             e.Solute,
		MolarMass:          ToQuantityResponse(e.MolarMass),
		Mass:               ToQuantityResponse(e.Mass),
		Stages:             stages,
		Steps:              append([]string(nil), e.Steps...),
		FinalConcentration: ToQuantityResponse(e.FinalConcentration),
		CreatedAt:          e.CreatedAt,
		Version:            e.Version,
	}
}

// ToEntryListResponses converts domain entries to list items
func ToEntryListResponses(entries []notebook.Entry) []EntryListResponse {
	result := make([]EntryListResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		result = append(result, EntryListResponse{
			ID:                 e.ID,
			Title:              e.Title,
			Solute:             e.Solute,
			FinalConcentration: ToQuantityResponse(e.FinalConcentration),
			CreatedAt:          e.CreatedAt,
		})
	}
	return result
}

func (m MeasuredValue) quantity(build func(float64) valueobject.Quantity) (valueobject.Quantity, error) {
	q := build(m.Value)
	if m.Digits == 0 {
		return q, nil
	}
	return q.WithSigDigits(m.Digits)
}
