package service

import "sync"

// KeyedMutex serializes work per equipment id. Every mutation of an equipment
// record or its checklist runs inside the unit's critical section, so a
// read-modify-write can never overwrite a concurrent writer's result with a
// stale clone. One instance is shared by EquipmentService and
// ChecklistService.
type KeyedMutex struct {
	locks sync.Map // equipmentID → *sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for id and returns the unlock function.
func (m *KeyedMutex) Lock(id int64) func() {
	v, _ := m.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
