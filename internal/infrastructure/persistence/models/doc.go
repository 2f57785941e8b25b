// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel and AggregateModel, mapped onto shared.BaseEntity and BaseAggregateRoot
//   - notebook.go: notebook entries and their dilution stages; quantities are stored as JSON text
package models
