package ports

import "context"

// CounterKind names one of the independent id sequences.
type CounterKind string

const (
	CounterUsers      CounterKind = "users"
	CounterClients    CounterKind = "clients"
	CounterEquipments CounterKind = "equipments"
	CounterSteps      CounterKind = "cleaning_steps"
)

// IDAllocator issues monotonically increasing numeric ids, one sequence per
// counter kind. Sequences start at 1 and values are never reused, even after
// the record they identified is deleted.
type IDAllocator interface {
	// Next consumes and returns the next value of the sequence.
	Next(ctx context.Context, kind CounterKind) (int64, error)
	// Peek returns the value Next would issue, without consuming it. Used to
	// pre-compute the equipment code before the create call.
	Peek(ctx context.Context, kind CounterKind) (int64, error)
}
