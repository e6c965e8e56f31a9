package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/core/domain"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// StatusTransitioner is the slice of the equipment lifecycle the checklist
// engine needs when a completion makes a status change due. ApplyStatus is
// the lock-free entry point: the checklist already holds the equipment's
// keyed mutex when it calls in.
type StatusTransitioner interface {
	ApplyStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (*domain.Equipment, error)
}

// ChecklistService owns the completion state of an equipment's cleaning steps
// and derives status transitions from it: completing the Receiving step moves
// the unit to CLEANING, completing the full set moves it to FINISHED. No
// other step is status-significant, and un-completing a step never rolls the
// status back.
type ChecklistService struct {
	steps     ports.StepRepository
	lifecycle StatusTransitioner
	logger    zerolog.Logger
	now       func() time.Time

	// Shared with EquipmentService. The decide-then-write across all steps
	// of one equipment must not interleave with itself or with any
	// equipment-level mutation, or two concurrent writers could both read
	// stale state and one result would be lost.
	locks *KeyedMutex
}

func NewChecklistService(steps ports.StepRepository, lifecycle StatusTransitioner, locks *KeyedMutex, logger zerolog.Logger) *ChecklistService {
	return &ChecklistService{
		steps:     steps,
		lifecycle: lifecycle,
		locks:     locks,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *ChecklistService) WithClock(now func() time.Time) *ChecklistService {
	s.now = now
	return s
}

// ListSteps returns the equipment's checklist in workflow order (ascending
// id: steps are seeded in order, so id order is workflow order).
func (s *ChecklistService) ListSteps(ctx context.Context, equipmentID int64) ([]*domain.CleaningStep, error) {
	steps, err := s.steps.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].ID < steps[j].ID })
	return steps, nil
}

// SetStepCompletion updates one step's completed flag and completedAt
// timestamp, then re-evaluates the equipment status when the flag turned
// true. Marking a step incomplete clears its timestamp but triggers no
// re-evaluation.
func (s *ChecklistService) SetStepCompletion(ctx context.Context, stepID int64, completed bool) (*domain.CleaningStep, error) {
	step, err := s.steps.FindByID(ctx, stepID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(step.EquipmentID)
	defer unlock()

	if completed {
		now := s.now()
		step.Completed = true
		step.CompletedAt = &now
	} else {
		step.Completed = false
		step.CompletedAt = nil
	}

	if err := s.steps.Update(ctx, step); err != nil {
		return nil, err
	}

	if completed {
		if err := s.evaluate(ctx, step); err != nil {
			return nil, err
		}
	}
	return step, nil
}

// evaluate applies the narrow completion heuristic: all steps complete →
// FINISHED; otherwise the just-completed Receiving step → CLEANING.
func (s *ChecklistService) evaluate(ctx context.Context, updated *domain.CleaningStep) error {
	steps, err := s.steps.ListByEquipment(ctx, updated.EquipmentID)
	if err != nil {
		return err
	}

	allCompleted := true
	for _, st := range steps {
		if !st.Completed && st.ID != updated.ID {
			allCompleted = false
			break
		}
	}

	switch {
	case allCompleted:
		_, err = s.lifecycle.ApplyStatus(ctx, updated.EquipmentID, domain.StatusFinished)
	case updated.Step == domain.StepReceiving:
		_, err = s.lifecycle.ApplyStatus(ctx, updated.EquipmentID, domain.StatusCleaning)
	default:
		return nil
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("equipment_id", updated.EquipmentID).Msg("checklist-driven transition failed")
		return err
	}
	return nil
}
