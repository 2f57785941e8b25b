package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labbench/backend/internal/domain/notebook"
	"github.com/labbench/backend/internal/domain/shared"
	"github.com/labbench/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEntryRepository implements notebook.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds an entry with its stages
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*notebook.Entry, error) {
	var model models.NotebookEntryModel
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds entries matching the filter
func (r *GormEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notebook.Entry, error) {
	var rows []models.NotebookEntryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.NotebookEntryModel{}), filter).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]notebook.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].ToDomain())
	}
	return entries, nil
}

// Save creates or updates an entry; its stages are replaced
func (r *GormEntryRepository) Save(ctx context.Context, entry *notebook.Entry) error {
	model := models.NotebookEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("entry_id = ?", model.ID).Delete(&models.NotebookStageModel{}).Error; err != nil {
			return err
		}
		if len(model.Stages) == 0 {
			return nil
		}
		return tx.Create(&model.Stages).Error
	})
}

// Delete deletes an entry and its stages
func (r *GormEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", id).Delete(&models.NotebookStageModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.NotebookEntryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts entries matching the filter
func (r *GormEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.NotebookEntryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, NotebookEntrySortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies search and field filters
func (r *GormEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(solute) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "solute":
			query = query.Where("solute = ?", value)
		case "completed":
			query = query.Where("completed = ?", value)
		}
	}
	return query
}

// Ensure GormEntryRepository implements notebook.EntryRepository
var _ notebook.EntryRepository = (*GormEntryRepository)(nil)
