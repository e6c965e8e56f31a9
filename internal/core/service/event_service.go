package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for step events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, equipmentID, stepID int64, completed bool, ts time.Time) (bool, error)
	Mark(ctx context.Context, equipmentID, stepID int64, completed bool, ts time.Time) error
}

type eventService struct {
	checklist ports.ChecklistService
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewEventService returns an EventService that funnels step events into the
// checklist engine after deduplication.
func NewEventService(checklist ports.ChecklistService, dedup DedupChecker, log zerolog.Logger) ports.EventService {
	return &eventService{checklist: checklist, dedup: dedup, log: log}
}

// Process deduplicates and applies a single step completion event. Retried
// deliveries of the same event are silently skipped; the checklist engine
// handles the status re-evaluation.
func (s *eventService) Process(ctx context.Context, in ports.StepEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.EquipmentID, in.StepID, in.Completed, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Int64("step_id", in.StepID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Int64("step_id", in.StepID).Bool("completed", in.Completed).Msg("duplicate step event skipped")
		return nil
	}

	// Mark before writing so a crashy retry cannot double-apply.
	if markErr := s.dedup.Mark(ctx, in.EquipmentID, in.StepID, in.Completed, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Int64("step_id", in.StepID).Msg("failed to set dedup key")
	}

	if _, err := s.checklist.SetStepCompletion(ctx, in.StepID, in.Completed); err != nil {
		return fmt.Errorf("process step event: %w", err)
	}

	s.log.Info().
		Int64("equipment_id", in.EquipmentID).
		Int64("step_id", in.StepID).
		Bool("completed", in.Completed).
		Str("source", in.Source).
		Msg("step event processed")

	return nil
}
