package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/core/domain"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// EquipmentService owns equipment status and status timestamps.
type EquipmentService struct {
	repo   ports.EquipmentRepository
	steps  ports.StepRepository
	audit  ports.AuditRepository
	seq    ports.IDAllocator
	locks  *KeyedMutex
	logger zerolog.Logger
	now    func() time.Time
}

func NewEquipmentService(
	repo ports.EquipmentRepository,
	steps ports.StepRepository,
	audit ports.AuditRepository,
	seq ports.IDAllocator,
	locks *KeyedMutex,
	logger zerolog.Logger,
) *EquipmentService {
	return &EquipmentService{
		repo:   repo,
		steps:  steps,
		audit:  audit,
		seq:    seq,
		locks:  locks,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *EquipmentService) WithClock(now func() time.Time) *EquipmentService {
	s.now = now
	return s
}

// Create allocates an id and code for the received unit, stamps receivedAt,
// and seeds the six-step cleaning checklist. Equipment and checklist are
// written together so the checklist is never observable half-seeded.
func (s *EquipmentService) Create(ctx context.Context, input ports.CreateEquipmentInput) (*domain.Equipment, error) {
	id, err := s.seq.Next(ctx, ports.CounterEquipments)
	if err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}

	e := &domain.Equipment{
		ID:          id,
		Code:        domain.EquipmentCode(id),
		Name:        input.Name,
		ClientID:    input.ClientID,
		Description: input.Description,
		Status:      domain.StatusReceived,
		ReceivedAt:  s.now(),
	}

	steps, err := s.seedSteps(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.repo.Create(ctx, e, steps); err != nil {
		s.logger.Error().Err(err).Str("code", e.Code).Msg("failed to create equipment")
		return nil, err
	}

	s.logger.Info().Int64("equipment_id", id).Str("code", e.Code).Int64("client_id", input.ClientID).Msg("equipment received")
	return e, nil
}

// seedSteps builds the fixed checklist for a new equipment unit, each step
// with its own allocator-assigned id, all incomplete.
func (s *EquipmentService) seedSteps(ctx context.Context, equipmentID int64) ([]*domain.CleaningStep, error) {
	names := domain.DefaultStepNames()
	steps := make([]*domain.CleaningStep, 0, len(names))
	for _, name := range names {
		id, err := s.seq.Next(ctx, ports.CounterSteps)
		if err != nil {
			return nil, err
		}
		steps = append(steps, &domain.CleaningStep{
			ID:          id,
			EquipmentID: equipmentID,
			Step:        name,
		})
	}
	return steps, nil
}

func (s *EquipmentService) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EquipmentService) List(ctx context.Context) ([]*domain.Equipment, error) {
	return s.repo.List(ctx)
}

func (s *EquipmentService) ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Equipment, error) {
	return s.repo.ListByStatus(ctx, status)
}

// TransitionStatus overwrites the status unconditionally, serialized against
// every other mutation of the same unit. Timestamp side effects fire only on
// the first entry into CLEANING or FINISHED: the ≠-current guard makes
// re-applying the same status a timestamp no-op, which is what keeps
// cleaningStartedAt/cleaningFinishedAt set exactly once.
func (s *EquipmentService) TransitionStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (*domain.Equipment, error) {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.ApplyStatus(ctx, id, status)
}

// ApplyStatus performs the status write without taking the equipment lock.
// The caller must hold it; the checklist engine uses this entry point from
// inside SetStepCompletion's critical section.
func (s *EquipmentService) ApplyStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (*domain.Equipment, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch {
	case status == domain.StatusCleaning && e.Status != domain.StatusCleaning:
		if e.CleaningStartedAt == nil {
			e.CleaningStartedAt = &now
		}
	case status == domain.StatusFinished && e.Status != domain.StatusFinished:
		if e.CleaningFinishedAt == nil {
			e.CleaningFinishedAt = &now
		}
	}
	e.Status = status

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.recordChange(ctx, &domain.StatusChange{EquipmentID: id, Status: status, Timestamp: now})

	s.logger.Info().Int64("equipment_id", id).Str("status", string(status)).Msg("equipment status updated")
	return e, nil
}

// MarkReturned hands the unit back to an employee. There is no guard against
// a double return: re-marking overwrites returnedAt/returnedBy. Comments go
// to the audit trail only.
func (s *EquipmentService) MarkReturned(ctx context.Context, input ports.ReturnEquipmentInput) (*domain.Equipment, error) {
	unlock := s.locks.Lock(input.EquipmentID)
	defer unlock()

	e, err := s.repo.FindByID(ctx, input.EquipmentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	e.Status = domain.StatusReturned
	e.ReturnedAt = &now
	returnedBy := input.ReturnedBy
	e.ReturnedBy = &returnedBy

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.recordChange(ctx, &domain.StatusChange{
		EquipmentID: e.ID,
		Status:      domain.StatusReturned,
		Timestamp:   now,
		Notes:       input.Comments,
	})

	s.logger.Info().Int64("equipment_id", e.ID).Int64("returned_by", input.ReturnedBy).Msg("equipment returned")
	return e, nil
}

// History returns the audit trail of an equipment unit, in append order.
func (s *EquipmentService) History(ctx context.Context, id int64) ([]*domain.StatusChange, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audit.ListByEquipment(ctx, id)
}

func (s *EquipmentService) NextSequenceValue(ctx context.Context) (int64, error) {
	return s.seq.Peek(ctx, ports.CounterEquipments)
}

// recordChange appends to the audit trail; failures are logged, not fatal.
func (s *EquipmentService) recordChange(ctx context.Context, change *domain.StatusChange) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Append(ctx, change); err != nil {
		s.logger.Warn().Err(err).Int64("equipment_id", change.EquipmentID).Msg("failed to append audit entry")
	}
}
