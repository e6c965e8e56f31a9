// Package memory provides the in-memory reference implementation of the
// repository ports. One Store instance is constructed per process (or per
// test); there is no ambient shared state.
package memory

import (
	"sync"
	"time"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// Store holds all entities behind a single RWMutex and hands out per-entity
// repository views sharing that lock. Values are cloned on the way in and out
// so callers can never mutate stored state through a shared pointer.
type Store struct {
	mu         sync.RWMutex
	users      map[int64]*domain.User
	clients    map[int64]*domain.Client
	equipments map[int64]*domain.Equipment
	steps      map[int64]*domain.CleaningStep
	audit      []*domain.StatusChange
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]*domain.User),
		clients:    make(map[int64]*domain.Client),
		equipments: make(map[int64]*domain.Equipment),
		steps:      make(map[int64]*domain.CleaningStep),
	}
}

// Equipments returns the equipment repository view.
func (s *Store) Equipments() *EquipmentRepository { return &EquipmentRepository{store: s} }

// Steps returns the cleaning step repository view.
func (s *Store) Steps() *StepRepository { return &StepRepository{store: s} }

// Clients returns the client repository view.
func (s *Store) Clients() *ClientRepository { return &ClientRepository{store: s} }

// Users returns the user repository view.
func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }

// Audit returns the audit trail repository view.
func (s *Store) Audit() *AuditRepository { return &AuditRepository{store: s} }

// --- clone helpers ---

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneEquipment(e *domain.Equipment) *domain.Equipment {
	clone := *e
	clone.CleaningStartedAt = cloneTime(e.CleaningStartedAt)
	clone.CleaningFinishedAt = cloneTime(e.CleaningFinishedAt)
	clone.ReturnedAt = cloneTime(e.ReturnedAt)
	if e.ReturnedBy != nil {
		v := *e.ReturnedBy
		clone.ReturnedBy = &v
	}
	return &clone
}

func cloneStep(st *domain.CleaningStep) *domain.CleaningStep {
	clone := *st
	clone.CompletedAt = cloneTime(st.CompletedAt)
	return &clone
}
