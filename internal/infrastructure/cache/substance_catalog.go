package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/labbench/backend/internal/domain/shared/valueobject"
)

// SubstanceCatalog remembers the molar mass of each substance weighed before
type SubstanceCatalog interface {
	Get(ctx context.Context, name string) (valueobject.Quantity, bool, error)
	Set(ctx context.Context, name string, molarMass valueobject.Quantity) error
	Delete(ctx context.Context, name string) error
	Ping(ctx context.Context) error
	Close() error
}

// catalogKey folds substance names so "NaCl" and " nacl" share an entry
func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// InMemorySubstanceCatalog implements SubstanceCatalog using a map.
// It is suitable for single-instance deployments and testing.
type InMemorySubstanceCatalog struct {
	mu      sync.RWMutex
	entries map[string]valueobject.Quantity
}

// NewInMemorySubstanceCatalog creates an empty in-memory catalog
func NewInMemorySubstanceCatalog() *InMemorySubstanceCatalog {
	return &InMemorySubstanceCatalog{entries: make(map[string]valueobject.Quantity)}
}

// Get returns the molar mass recorded for name
func (c *InMemorySubstanceCatalog) Get(ctx context.Context, name string) (valueobject.Quantity, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.entries[catalogKey(name)]
	return q, ok, nil
}

// Set records the molar mass of name, replacing any previous value
func (c *InMemorySubstanceCatalog) Set(ctx context.Context, name string, molarMass valueobject.Quantity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[catalogKey(name)] = molarMass
	return nil
}

// Delete forgets name
func (c *InMemorySubstanceCatalog) Delete(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, catalogKey(name))
	return nil
}

// Len returns the number of substances in the catalog
func (c *InMemorySubstanceCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ping always succeeds
func (c *InMemorySubstanceCatalog) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (c *InMemorySubstanceCatalog) Close() error {
	return nil
}

var _ SubstanceCatalog = (*InMemorySubstanceCatalog)(nil)
