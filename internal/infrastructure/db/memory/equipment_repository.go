package memory

import (
	"context"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// EquipmentRepository is the in-memory equipment adapter.
type EquipmentRepository struct {
	store *Store
}

// Create inserts the equipment and its seeded steps under one lock, so a
// partially-seeded checklist is never observable.
func (r *EquipmentRepository) Create(_ context.Context, e *domain.Equipment, steps []*domain.CleaningStep) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.equipments[e.ID] = cloneEquipment(e)
	for _, st := range steps {
		r.store.steps[st.ID] = cloneStep(st)
	}
	return nil
}

func (r *EquipmentRepository) FindByID(_ context.Context, id int64) (*domain.Equipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.equipments[id]
	if !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	return cloneEquipment(e), nil
}

func (r *EquipmentRepository) List(_ context.Context) ([]*domain.Equipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Equipment, 0, len(r.store.equipments))
	for _, e := range r.store.equipments {
		out = append(out, cloneEquipment(e))
	}
	return out, nil
}

func (r *EquipmentRepository) ListByStatus(_ context.Context, status domain.EquipmentStatus) ([]*domain.Equipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Equipment, 0)
	for _, e := range r.store.equipments {
		if e.Status == status {
			out = append(out, cloneEquipment(e))
		}
	}
	return out, nil
}

func (r *EquipmentRepository) Update(_ context.Context, e *domain.Equipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.equipments[e.ID]; !ok {
		return domain.ErrEquipmentNotFound
	}
	r.store.equipments[e.ID] = cloneEquipment(e)
	return nil
}

// StepRepository is the in-memory cleaning step adapter.
type StepRepository struct {
	store *Store
}

func (r *StepRepository) FindByID(_ context.Context, id int64) (*domain.CleaningStep, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	st, ok := r.store.steps[id]
	if !ok {
		return nil, domain.ErrStepNotFound
	}
	return cloneStep(st), nil
}

// ListByEquipment returns the equipment's steps in map iteration order.
// Callers re-sort when sequence matters.
func (r *StepRepository) ListByEquipment(_ context.Context, equipmentID int64) ([]*domain.CleaningStep, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.CleaningStep, 0)
	for _, st := range r.store.steps {
		if st.EquipmentID == equipmentID {
			out = append(out, cloneStep(st))
		}
	}
	return out, nil
}

func (r *StepRepository) Update(_ context.Context, st *domain.CleaningStep) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.steps[st.ID]; !ok {
		return domain.ErrStepNotFound
	}
	r.store.steps[st.ID] = cloneStep(st)
	return nil
}

// AuditRepository is the in-memory audit trail adapter.
type AuditRepository struct {
	store *Store
}

func (r *AuditRepository) Append(_ context.Context, change *domain.StatusChange) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clone := *change
	r.store.audit = append(r.store.audit, &clone)
	return nil
}

func (r *AuditRepository) ListByEquipment(_ context.Context, equipmentID int64) ([]*domain.StatusChange, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.StatusChange, 0)
	for _, c := range r.store.audit {
		if c.EquipmentID == equipmentID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}
