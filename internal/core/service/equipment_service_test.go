package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/core/domain"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubData struct {
	equipments map[int64]*domain.Equipment
	steps      map[int64]*domain.CleaningStep
	clients    map[int64]*domain.Client
	users      map[int64]*domain.User
	audit      []*domain.StatusChange
	counters   map[ports.CounterKind]int64
}

func newStubData() *stubData {
	return &stubData{
		equipments: make(map[int64]*domain.Equipment),
		steps:      make(map[int64]*domain.CleaningStep),
		clients:    make(map[int64]*domain.Client),
		users:      make(map[int64]*domain.User),
		counters:   make(map[ports.CounterKind]int64),
	}
}

type stubEquipmentRepo struct {
	d         *stubData
	createErr error
	updateErr error
	findHook  func(id int64) // called on entry to FindByID when set
}

func (r *stubEquipmentRepo) Create(_ context.Context, e *domain.Equipment, steps []*domain.CleaningStep) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *e
	r.d.equipments[e.ID] = &clone
	for _, st := range steps {
		sc := *st
		r.d.steps[st.ID] = &sc
	}
	return nil
}

func (r *stubEquipmentRepo) FindByID(_ context.Context, id int64) (*domain.Equipment, error) {
	if r.findHook != nil {
		r.findHook(id)
	}
	e, ok := r.d.equipments[id]
	if !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEquipmentRepo) List(_ context.Context) ([]*domain.Equipment, error) {
	out := make([]*domain.Equipment, 0, len(r.d.equipments))
	for _, e := range r.d.equipments {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubEquipmentRepo) ListByStatus(_ context.Context, status domain.EquipmentStatus) ([]*domain.Equipment, error) {
	out := make([]*domain.Equipment, 0)
	for _, e := range r.d.equipments {
		if e.Status == status {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubEquipmentRepo) Update(_ context.Context, e *domain.Equipment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.d.equipments[e.ID]; !ok {
		return domain.ErrEquipmentNotFound
	}
	clone := *e
	r.d.equipments[e.ID] = &clone
	return nil
}

type stubStepRepo struct {
	d *stubData
}

func (r *stubStepRepo) FindByID(_ context.Context, id int64) (*domain.CleaningStep, error) {
	st, ok := r.d.steps[id]
	if !ok {
		return nil, domain.ErrStepNotFound
	}
	clone := *st
	return &clone, nil
}

func (r *stubStepRepo) ListByEquipment(_ context.Context, equipmentID int64) ([]*domain.CleaningStep, error) {
	out := make([]*domain.CleaningStep, 0)
	for _, st := range r.d.steps {
		if st.EquipmentID == equipmentID {
			clone := *st
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubStepRepo) Update(_ context.Context, st *domain.CleaningStep) error {
	if _, ok := r.d.steps[st.ID]; !ok {
		return domain.ErrStepNotFound
	}
	clone := *st
	r.d.steps[st.ID] = &clone
	return nil
}

type stubAllocator struct {
	d *stubData
}

func (a *stubAllocator) Next(_ context.Context, kind ports.CounterKind) (int64, error) {
	a.d.counters[kind]++
	return a.d.counters[kind], nil
}

func (a *stubAllocator) Peek(_ context.Context, kind ports.CounterKind) (int64, error) {
	return a.d.counters[kind] + 1, nil
}

type stubAuditRepo struct {
	d *stubData
}

func (r *stubAuditRepo) Append(_ context.Context, change *domain.StatusChange) error {
	clone := *change
	r.d.audit = append(r.d.audit, &clone)
	return nil
}

func (r *stubAuditRepo) ListByEquipment(_ context.Context, equipmentID int64) ([]*domain.StatusChange, error) {
	out := make([]*domain.StatusChange, 0)
	for _, c := range r.d.audit {
		if c.EquipmentID == equipmentID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type fixture struct {
	data      *stubData
	equipRepo *stubEquipmentRepo
	stepRepo  *stubStepRepo
	equipment *EquipmentService
	checklist *ChecklistService
}

func newFixture() *fixture {
	d := newStubData()
	er := &stubEquipmentRepo{d: d}
	sr := &stubStepRepo{d: d}
	locks := NewKeyedMutex()
	es := NewEquipmentService(er, sr, &stubAuditRepo{d: d}, &stubAllocator{d: d}, locks, discardLogger)
	cs := NewChecklistService(sr, es, locks, discardLogger)
	return &fixture{data: d, equipRepo: er, stepRepo: sr, equipment: es, checklist: cs}
}

func createInput() ports.CreateEquipmentInput {
	return ports.CreateEquipmentInput{Name: "X-Ray Unit", ClientID: 1}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestEquipmentService_Create_Success(t *testing.T) {
	f := newFixture()

	e, err := f.equipment.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.ID != 1 {
		t.Errorf("expected id 1, got %d", e.ID)
	}
	if e.Code != "EQ-0001" {
		t.Errorf("expected code EQ-0001, got %q", e.Code)
	}
	if e.Status != domain.StatusReceived {
		t.Errorf("expected status %q, got %q", domain.StatusReceived, e.Status)
	}
	if e.ReceivedAt.IsZero() {
		t.Error("receivedAt must be set")
	}
	if e.CleaningStartedAt != nil || e.CleaningFinishedAt != nil || e.ReturnedAt != nil || e.ReturnedBy != nil {
		t.Error("phase timestamps must start nil")
	}
}

func TestEquipmentService_Create_SeedsSixSteps(t *testing.T) {
	f := newFixture()

	e, err := f.equipment.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	steps, err := f.checklist.ListSteps(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("list steps: %v", err)
	}
	want := domain.DefaultStepNames()
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i, st := range steps {
		if st.Step != want[i] {
			t.Errorf("step[%d]: expected %q, got %q", i, want[i], st.Step)
		}
		if st.Completed {
			t.Errorf("step %q must start incomplete", st.Step)
		}
		if st.CompletedAt != nil {
			t.Errorf("step %q must start with nil completedAt", st.Step)
		}
		if st.EquipmentID != e.ID {
			t.Errorf("step %q owned by %d, expected %d", st.Step, st.EquipmentID, e.ID)
		}
	}
}

func TestEquipmentService_Create_IdsNeverReused(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		e, err := f.equipment.Create(ctx, createInput())
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[e.ID] {
			t.Fatalf("id %d issued twice", e.ID)
		}
		seen[e.ID] = true
		// Simulate a deletion between creations; the counter must not rewind.
		delete(f.data.equipments, e.ID)
	}
}

func TestEquipmentService_Create_RepoError(t *testing.T) {
	f := newFixture()
	f.equipRepo.createErr = errors.New("store unavailable")

	if _, err := f.equipment.Create(context.Background(), createInput()); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// TransitionStatus tests
// ---------------------------------------------------------------------------

func TestEquipmentService_TransitionStatus_SetsCleaningStartedOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, _ := f.equipment.Create(ctx, createInput())

	first, err := f.equipment.TransitionStatus(ctx, e.ID, domain.StatusCleaning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != domain.StatusCleaning {
		t.Errorf("expected status CLEANING, got %q", first.Status)
	}
	if first.CleaningStartedAt == nil {
		t.Fatal("cleaningStartedAt must be set")
	}
	started := *first.CleaningStartedAt

	// Leaving and re-entering CLEANING must not move the timestamp.
	if _, err := f.equipment.TransitionStatus(ctx, e.ID, domain.StatusReceived); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := f.equipment.TransitionStatus(ctx, e.ID, domain.StatusCleaning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.CleaningStartedAt == nil || !again.CleaningStartedAt.Equal(started) {
		t.Errorf("cleaningStartedAt changed on re-entry: %v vs %v", again.CleaningStartedAt, started)
	}
}

func TestEquipmentService_TransitionStatus_ReapplySameStatusNoTimestamp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, _ := f.equipment.Create(ctx, createInput())

	one, _ := f.equipment.TransitionStatus(ctx, e.ID, domain.StatusFinished)
	if one.CleaningFinishedAt == nil {
		t.Fatal("cleaningFinishedAt must be set")
	}
	finished := *one.CleaningFinishedAt

	two, err := f.equipment.TransitionStatus(ctx, e.ID, domain.StatusFinished)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !two.CleaningFinishedAt.Equal(finished) {
		t.Error("re-applying FINISHED must not move cleaningFinishedAt")
	}
	if two.Status != domain.StatusFinished {
		t.Errorf("status must remain FINISHED, got %q", two.Status)
	}
}

func TestEquipmentService_TransitionStatus_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.equipment.TransitionStatus(context.Background(), 42, domain.StatusCleaning)
	if !errors.Is(err, domain.ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// MarkReturned tests
// ---------------------------------------------------------------------------

func TestEquipmentService_MarkReturned(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, _ := f.equipment.Create(ctx, createInput())

	returned, err := f.equipment.MarkReturned(ctx, ports.ReturnEquipmentInput{
		EquipmentID: e.ID,
		ReturnedBy:  7,
		Comments:    "picked up at front desk",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if returned.Status != domain.StatusReturned {
		t.Errorf("expected status RETURNED, got %q", returned.Status)
	}
	if returned.ReturnedAt == nil {
		t.Error("returnedAt must be set")
	}
	if returned.ReturnedBy == nil || *returned.ReturnedBy != 7 {
		t.Errorf("expected returnedBy 7, got %v", returned.ReturnedBy)
	}

	// Comments land on the audit trail, not the record.
	changes := f.data.audit
	if len(changes) == 0 {
		t.Fatal("expected an audit entry")
	}
	last := changes[len(changes)-1]
	if last.Notes != "picked up at front desk" {
		t.Errorf("expected comments on audit entry, got %q", last.Notes)
	}
}

func TestEquipmentService_MarkReturned_UnknownID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, _ := f.equipment.Create(ctx, createInput())

	_, err := f.equipment.MarkReturned(ctx, ports.ReturnEquipmentInput{EquipmentID: 99, ReturnedBy: 1})
	if !errors.Is(err, domain.ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}

	// No state mutated elsewhere.
	stored := f.data.equipments[e.ID]
	if stored.Status != domain.StatusReceived || stored.ReturnedAt != nil {
		t.Error("unrelated equipment must not be mutated")
	}
}

// TestEquipmentService_MutationsSerializedPerEquipment parks a transition
// inside its read-modify-write and asserts a concurrent return on the same
// unit cannot interleave. Without the shared per-equipment lock the
// transition's stale clone would overwrite the completed return and erase
// returnedAt/returnedBy.
func TestEquipmentService_MutationsSerializedPerEquipment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, _ := f.equipment.Create(ctx, createInput())

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.equipRepo.findHook = func(int64) {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	transitionDone := make(chan struct{})
	go func() {
		defer close(transitionDone)
		if _, err := f.equipment.TransitionStatus(ctx, e.ID, domain.StatusCleaning); err != nil {
			t.Errorf("transition: %v", err)
		}
	}()
	<-entered

	returnDone := make(chan struct{})
	go func() {
		defer close(returnDone)
		if _, err := f.equipment.MarkReturned(ctx, ports.ReturnEquipmentInput{EquipmentID: e.ID, ReturnedBy: 7}); err != nil {
			t.Errorf("return: %v", err)
		}
	}()

	select {
	case <-returnDone:
		t.Fatal("return ran inside the transition's critical section")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-transitionDone
	<-returnDone

	got := f.data.equipments[e.ID]
	if got.Status != domain.StatusReturned {
		t.Fatalf("expected final status RETURNED, got %q", got.Status)
	}
	if got.ReturnedAt == nil || got.ReturnedBy == nil || *got.ReturnedBy != 7 {
		t.Fatalf("return result lost: returnedAt=%v returnedBy=%v", got.ReturnedAt, got.ReturnedBy)
	}
}

// ---------------------------------------------------------------------------
// Listing and sequence tests
// ---------------------------------------------------------------------------

func TestEquipmentService_ListByStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.equipment.Create(ctx, createInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := f.equipment.Create(ctx, createInput())
	if _, err := f.equipment.TransitionStatus(ctx, b.ID, domain.StatusFinished); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	finished, err := f.equipment.ListByStatus(ctx, domain.StatusFinished)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(finished) != 1 || finished[0].ID != b.ID {
		t.Fatalf("expected only equipment %d, got %v", b.ID, finished)
	}

	returned, err := f.equipment.ListByStatus(ctx, domain.StatusReturned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(returned) != 0 {
		t.Fatalf("expected empty slice, got %d items", len(returned))
	}
}

func TestEquipmentService_History(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, _ := f.equipment.Create(ctx, createInput())

	if _, err := f.equipment.TransitionStatus(ctx, e.ID, domain.StatusCleaning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.equipment.MarkReturned(ctx, ports.ReturnEquipmentInput{EquipmentID: e.ID, ReturnedBy: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, err := f.equipment.History(ctx, e.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Status != domain.StatusCleaning || history[1].Status != domain.StatusReturned {
		t.Errorf("history out of order: %+v", history)
	}

	if _, err := f.equipment.History(ctx, 99); !errors.Is(err, domain.ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}
}

func TestEquipmentService_NextSequenceValue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	next, err := f.equipment.NextSequenceValue(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 1 {
		t.Errorf("expected next value 1, got %d", next)
	}

	e, _ := f.equipment.Create(ctx, createInput())
	if e.ID != next {
		t.Errorf("peeked value %d must match assigned id %d", next, e.ID)
	}

	next, _ = f.equipment.NextSequenceValue(ctx)
	if next != 2 {
		t.Errorf("expected next value 2, got %d", next)
	}
	// Peek must not consume.
	again, _ := f.equipment.NextSequenceValue(ctx)
	if again != 2 {
		t.Errorf("peek consumed the sequence: got %d", again)
	}
}

func TestEquipmentService_WithClock(t *testing.T) {
	f := newFixture()
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	f.equipment.WithClock(func() time.Time { return fixed })

	e, err := f.equipment.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.ReceivedAt.Equal(fixed) {
		t.Errorf("expected receivedAt %v, got %v", fixed, e.ReceivedAt)
	}
}
