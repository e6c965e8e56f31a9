package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/api/metrics"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes step events to a fixed set of workers sharded on the
// equipment id. All events for one equipment land on the same worker, which
// serializes the checklist's read-modify-write per equipment and keeps event
// order per unit.
type Dispatcher struct {
	workers []chan ports.StepEventInput
	service ports.EventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.StepEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.StepEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its equipment.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.StepEventInput) {
	idx := d.shardIndex(event.EquipmentID)
	d.workers[idx] <- event
	metrics.StepEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple events preserving per-equipment ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.StepEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps an equipment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(equipmentID int64) int {
	return int(uint64(equipmentID) % uint64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.StepEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.StepEventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				metrics.StepEventsErrorsTotal.WithLabelValues("process_failed").Inc()
				d.log.Error().Err(err).
					Int64("equipment_id", event.EquipmentID).
					Int64("step_id", event.StepID).
					Int("worker_id", id).
					Msg("step event processing failed")
				continue
			}
			metrics.StepEventsProcessedTotal.WithLabelValues(event.Source).Inc()
		}
	}
}
