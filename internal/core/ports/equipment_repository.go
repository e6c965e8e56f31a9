package ports

import (
	"context"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// EquipmentRepository defines persistence operations for equipment records.
type EquipmentRepository interface {
	// Create inserts the equipment together with its seeded cleaning steps in
	// a single operation, so a partially-seeded checklist is never observable.
	Create(ctx context.Context, e *domain.Equipment, steps []*domain.CleaningStep) error
	FindByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Equipment, error)
	// Update overwrites the stored record. Returns domain.ErrEquipmentNotFound
	// when the id is unknown.
	Update(ctx context.Context, e *domain.Equipment) error
}

// StepRepository defines persistence operations for cleaning steps.
type StepRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.CleaningStep, error)
	// ListByEquipment returns all steps owned by the equipment. Storage order
	// is not guaranteed; callers re-sort when sequence matters.
	ListByEquipment(ctx context.Context, equipmentID int64) ([]*domain.CleaningStep, error)
	Update(ctx context.Context, s *domain.CleaningStep) error
}

// AuditRepository records status transitions for the audit trail.
type AuditRepository interface {
	Append(ctx context.Context, change *domain.StatusChange) error
	ListByEquipment(ctx context.Context, equipmentID int64) ([]*domain.StatusChange, error)
}
