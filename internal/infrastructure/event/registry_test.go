package event

import (
	"context"
	"testing"

	"github.com/labbench/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

type mockHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
}

func newMockHandler(eventTypes ...string) *mockHandler {
	return &mockHandler{eventTypes: eventTypes}
}

func (h *mockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.handled = append(h.handled, event)
	return nil
}

func (h *mockHandler) EventTypes() []string {
	return h.eventTypes
}

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler()

	registry.Register(handler, "Filled", "Transferred")

	assert.Len(t, registry.GetHandlers("Filled"), 1)
	assert.Len(t, registry.GetHandlers("Transferred"), 1)
	assert.Empty(t, registry.GetHandlers("SolutionAdded"))
}

func TestHandlerRegistry_Register_Wildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler()

	registry.Register(handler)

	assert.Len(t, registry.GetHandlers("Filled"), 1)
	assert.Len(t, registry.GetHandlers("anything"), 1)
}

func TestHandlerRegistry_GetHandlers_TypedBeforeWildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	typed := newMockHandler()
	wildcard := newMockHandler()

	registry.Register(wildcard)
	registry.Register(typed, "Filled")

	handlers := registry.GetHandlers("Filled")
	assert.Len(t, handlers, 2)
	assert.Same(t, typed, handlers[0])
	assert.Same(t, wildcard, handlers[1])
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	keep := newMockHandler()
	drop := newMockHandler()

	registry.Register(keep, "Filled")
	registry.Register(drop, "Filled", "Transferred")
	registry.Register(drop)

	registry.Unregister(drop)

	assert.Equal(t, []shared.EventHandler{keep}, registry.GetHandlers("Filled"))
	assert.Empty(t, registry.GetHandlers("Transferred"))
	_, ok := registry.handlers["Transferred"]
	assert.False(t, ok)
}

func TestHandlerRegistry_GetAllHandlers_NoDuplicates(t *testing.T) {
	registry := NewHandlerRegistry()
	a := newMockHandler()
	b := newMockHandler()

	registry.Register(a, "Filled", "Transferred")
	registry.Register(a)
	registry.Register(b, "EntryRecorded")

	assert.Len(t, registry.GetAllHandlers(), 2)
}
