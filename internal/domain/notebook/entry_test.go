package notebook

import (
	"testing"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMohrEntry(t *testing.T) *Entry {
	t.Helper()
	e, err := NewEntry("Mohr salt standard", "Mohr", valueobject.MolarMass(392.1), valueobject.Grams(0.4019))
	require.NoError(t, err)
	return e
}

func TestNewEntry(t *testing.T) {
	e := newMohrEntry(t)
	assert.Equal(t, "Mohr salt standard", e.Title)
	assert.Equal(t, 1, e.GetVersion())
	assert.False(t, e.Completed)
	assert.True(t, e.FinalConcentration.IsZero())

	tests := []struct {
		name      string
		title     string
		solute    string
		molarMass valueobject.Quantity
		mass      valueobject.Quantity
		wantErr   error
	}{
		{name: "empty title", title: " ", solute: "Mohr", molarMass: valueobject.MolarMass(1), mass: valueobject.Grams(1)},
		{name: "empty solute", title: "x", solute: "", molarMass: valueobject.MolarMass(1), mass: valueobject.Grams(1)},
		{name: "molar mass dimension", title: "x", solute: "Mohr", molarMass: valueobject.Grams(1), mass: valueobject.Grams(1), wantErr: shared.ErrDimensionMismatch},
		{name: "mass dimension", title: "x", solute: "Mohr", molarMass: valueobject.MolarMass(1), mass: valueobject.Moles(1), wantErr: shared.ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.title, tt.solute, tt.molarMass, tt.mass)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEntryLifecycle(t *testing.T) {
	e := newMohrEntry(t)

	t.Run("complete without stages", func(t *testing.T) {
		assert.Error(t, e.Complete())
	})

	e.LogStep("dissolved %s in %s", "0.4019 g", "beaker")
	require.NoError(t, e.RecordStage("flask 1", valueobject.Milliliters(100), valueobject.Molar(0.01)))
	require.NoError(t, e.RecordStage("flask 2", valueobject.Milliliters(200), valueobject.Molar(0.00025)))

	err := e.RecordStage("bad", valueobject.Grams(1), valueobject.Molar(1))
	assert.ErrorIs(t, err, shared.ErrDimensionMismatch)
	err = e.RecordStage("bad", valueobject.Milliliters(1), valueobject.Moles(1))
	assert.ErrorIs(t, err, shared.ErrDimensionMismatch)

	require.NoError(t, e.Complete())
	assert.True(t, e.Completed)
	assert.Equal(t, 2, e.GetVersion())
	assert.Equal(t, []string{"dissolved 0.4019 g in beaker"}, e.Steps)
	assert.Equal(t, valueobject.Molar(0.00025), e.FinalConcentration)

	events := e.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeEntryRecorded, events[0].EventType())
	assert.Equal(t, AggregateTypeEntry, events[0].AggregateType())

	assert.Error(t, e.Complete())
	assert.Error(t, e.RecordStage("late", valueobject.Milliliters(1), valueobject.Molar(1)))
}
