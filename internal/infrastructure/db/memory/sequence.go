package memory

import (
	"context"
	"sync"

	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// Sequence issues monotonically increasing ids per counter kind. Values start
// at 1 and are never reused, even after the identified record is deleted.
type Sequence struct {
	mu       sync.Mutex
	counters map[ports.CounterKind]int64
}

func NewSequence() *Sequence {
	return &Sequence{counters: make(map[ports.CounterKind]int64)}
}

// Next consumes and returns the next value of the sequence for kind.
func (s *Sequence) Next(_ context.Context, kind ports.CounterKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[kind]++
	return s.counters[kind], nil
}

// Peek returns the value Next would issue without consuming it.
func (s *Sequence) Peek(_ context.Context, kind ports.CounterKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[kind] + 1, nil
}
