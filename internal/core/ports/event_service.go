package ports

import (
	"context"
	"time"
)

// StepEventInput is the DTO passed from the transport layer to EventService.
type StepEventInput struct {
	EquipmentID int64
	StepID      int64
	Completed   bool
	Timestamp   time.Time
	Source      string
}

// EventService processes step completion events arriving asynchronously
// (scanning stations, batch imports). The synchronous checklist endpoint
// remains the primary path; this one adds deduplication and per-equipment
// ordered delivery.
type EventService interface {
	Process(ctx context.Context, event StepEventInput) error
}
