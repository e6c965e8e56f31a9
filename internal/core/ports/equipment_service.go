package ports

import (
	"context"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// CreateEquipmentInput carries the data needed to register a received
// equipment unit. Id, code, status and timestamps are assigned by the service.
type CreateEquipmentInput struct {
	Name        string
	ClientID    int64
	Description string
}

// ReturnEquipmentInput identifies the unit being handed back and the employee
// receiving it. Comments are recorded on the audit trail only, never on the
// equipment record itself.
type ReturnEquipmentInput struct {
	EquipmentID int64
	ReturnedBy  int64
	Comments    string
}

// EquipmentService defines the lifecycle use-cases for equipment.
type EquipmentService interface {
	Create(ctx context.Context, input CreateEquipmentInput) (*domain.Equipment, error)
	Get(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Equipment, error)
	TransitionStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (*domain.Equipment, error)
	MarkReturned(ctx context.Context, input ReturnEquipmentInput) (*domain.Equipment, error)
	// History returns the equipment's status-change audit trail.
	History(ctx context.Context, id int64) ([]*domain.StatusChange, error)
	// NextSequenceValue exposes the allocator's upcoming equipment id so the
	// display code can be shown before the record exists.
	NextSequenceValue(ctx context.Context) (int64, error)
}

// ChecklistService drives the cleaning checklist of one equipment unit and
// derives status transitions from step completion.
type ChecklistService interface {
	ListSteps(ctx context.Context, equipmentID int64) ([]*domain.CleaningStep, error)
	SetStepCompletion(ctx context.Context, stepID int64, completed bool) (*domain.CleaningStep, error)
}
