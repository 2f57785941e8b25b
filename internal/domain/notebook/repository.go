package notebook

import (
	"github.com/labbench/backend/internal/domain/shared"
)

// EntryRepository defines the interface for notebook persistence.
// FindAll and Count treat Filter.Search as a match on title or solute.
type EntryRepository interface {
	shared.Repository[Entry]
}
