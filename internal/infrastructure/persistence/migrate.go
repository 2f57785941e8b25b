package persistence

import (
	"fmt"

	"github.com/labbench/backend/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the notebook tables
func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(&models.NotebookEntryModel{}, &models.NotebookStageModel{}); err != nil {
		return fmt.Errorf("failed to migrate notebook tables: %w", err)
	}
	return nil
}
