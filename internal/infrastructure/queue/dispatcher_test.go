package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/api/metrics"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

type recordingEventService struct {
	mu     sync.Mutex
	events []ports.StepEventInput
	done   chan struct{}
	want   int
}

func newRecordingEventService(want int) *recordingEventService {
	return &recordingEventService{done: make(chan struct{}), want: want}
}

func (s *recordingEventService) Process(_ context.Context, in ports.StepEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, in)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingEventService) wait(t *testing.T) []ports.StepEventInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.StepEventInput, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := newRecordingEventService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueueBatch([]ports.StepEventInput{
		{EquipmentID: 1, StepID: 10, Completed: true},
		{EquipmentID: 2, StepID: 20, Completed: true},
		{EquipmentID: 3, StepID: 30, Completed: true},
	})

	got := svc.wait(t)
	seen := make(map[int64]bool)
	for _, ev := range got {
		seen[ev.StepID] = true
	}
	if !seen[10] || !seen[20] || !seen[30] {
		t.Fatalf("missing events, got %v", got)
	}
}

func TestDispatcher_PerEquipmentOrderPreserved(t *testing.T) {
	const n = 50
	svc := newRecordingEventService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All events target one equipment, so one worker must apply them in
	// the enqueue order.
	for i := 0; i < n; i++ {
		d.Enqueue(ports.StepEventInput{EquipmentID: 9, StepID: int64(i)})
	}

	got := svc.wait(t)
	for i, ev := range got {
		if ev.StepID != int64(i) {
			t.Fatalf("event %d out of order: step %d", i, ev.StepID)
		}
	}
}

func TestDispatcher_QueueDepthTracksEnqueues(t *testing.T) {
	// Workers deliberately not started: the gauge must grow on enqueue, not
	// only when a worker drains the channel.
	d := NewDispatcher(3, newRecordingEventService(0), zerolog.Nop())

	for i := 0; i < 3; i++ {
		d.Enqueue(ports.StepEventInput{EquipmentID: 2, StepID: int64(i)})
	}

	depth := testutil.ToFloat64(metrics.StepEventsQueueDepth.WithLabelValues("2"))
	if depth != 3 {
		t.Fatalf("expected queue depth 3, got %v", depth)
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newRecordingEventService(0), zerolog.Nop())

	for _, id := range []int64{1, 7, 1000, 12345} {
		a := d.shardIndex(id)
		b := d.shardIndex(id)
		if a != b {
			t.Fatalf("shard for %d not stable: %d vs %d", id, a, b)
		}
		if a < 0 || a >= 4 {
			t.Fatalf("shard for %d out of range: %d", id, a)
		}
	}
}
