package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type unitJSON struct {
	Dimension   Dimension         `json:"dimension"`
	Coefficient int8              `json:"coefficient"`
	Prefixes    map[string]Prefix `json:"prefixes,omitempty"`
}

type quantityJSON struct {
	Value     float64  `json:"value"`
	SigDigits int      `json:"sig_digits"`
	Display   string   `json:"display,omitempty"`
	Unit      unitJSON `json:"unit"`
}

// MarshalText implements encoding.TextMarshaler
func (p Prefix) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid prefix %d", int8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Prefix) UnmarshalText(text []byte) error {
	parsed, err := ParsePrefix(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Only prefixes on axes the dimension uses are written.
func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.toJSON())
}

// UnmarshalJSON implements json.Unmarshaler
func (u *Unit) UnmarshalJSON(data []byte) error {
	var v unitJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := v.toUnit()
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u Unit) toJSON() unitJSON {
	v := unitJSON{Dimension: u.dim, Coefficient: u.pow10}
	for i, p := range u.prefixes {
		if p == PrefixNone || u.dim[i] == 0 {
			continue
		}
		if v.Prefixes == nil {
			v.Prefixes = make(map[string]Prefix)
		}
		v.Prefixes[axisSymbols[i]] = p
	}
	return v
}

func (v unitJSON) toUnit() (Unit, error) {
	u := Unit{dim: v.Dimension, pow10: v.Coefficient}
	for symbol, p := range v.Prefixes {
		axis, ok := axisBySymbol(symbol)
		if !ok {
			return Unit{}, fmt.Errorf("unknown axis %q", symbol)
		}
		u.prefixes[axis] = p
	}
	return u, nil
}

func axisBySymbol(symbol string) (Axis, bool) {
	for i, s := range axisSymbols {
		if s == symbol {
			return Axis(i), true
		}
	}
	return 0, false
}

// MarshalJSON implements json.Marshaler
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(quantityJSON{
		Value:     q.magnitude.value,
		SigDigits: q.magnitude.sigDigits,
		Display:   q.magnitude.String(),
		Unit:      q.unit.toJSON(),
	})
}

// UnmarshalJSON implements json.Unmarshaler for deserialization purposes.
// A missing sig_digits field means the value is an exact literal.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	v := quantityJSON{SigDigits: ExactSigDigits}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m, err := NewMeasurementWithSigDigits(v.Value, v.SigDigits)
	if err != nil {
		return err
	}
	u, err := v.Unit.toUnit()
	if err != nil {
		return err
	}
	q.magnitude = m
	q.unit = u
	return nil
}

// ParseQuantityFromJSON creates a Quantity from JSON data with full validation.
func ParseQuantityFromJSON(data []byte) (Quantity, error) {
	var q Quantity
	if err := json.Unmarshal(data, &q); err != nil {
		return Quantity{}, fmt.Errorf("failed to parse quantity JSON: %w", err)
	}
	return q, nil
}

// Value implements driver.Valuer for database storage; the quantity is stored as JSON text.
func (q Quantity) Value() (driver.Value, error) {
	data, err := q.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval.
func (q *Quantity) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*q = Quantity{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("cannot scan quantity from non-text column")
	}
	return q.UnmarshalJSON(data)
}
