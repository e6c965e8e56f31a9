// Package metrics defines and registers all custom Prometheus metrics for the
// equipment tracking API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "steriltrack"

// EquipmentsCreatedTotal counts equipment units registered for processing.
var EquipmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "equipments_created_total",
		Help:      "Total number of equipment units received into the workflow.",
	},
)

// StatusTransitionsTotal counts status writes on equipment.
// Label:
//   - status: the status applied (RECEIVED, CLEANING, FINISHED, RETURNED)
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of equipment status transitions, by resulting status.",
	},
	[]string{"status"},
)

// StepsCompletedTotal counts checklist steps marked complete.
// Label:
//   - step: the step name (e.g. "Receiving", "Sterilization")
var StepsCompletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "steps_completed_total",
		Help:      "Total number of cleaning steps marked complete, by step name.",
	},
	[]string{"step"},
)

// ReturnsTotal counts equipment units handed back to a client.
var ReturnsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "returns_total",
		Help:      "Total number of equipment units marked returned.",
	},
)

// StepEventsProcessedTotal counts async step events that completed processing.
// Label:
//   - source: the event source reported by the sender (e.g. "scan_station")
var StepEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "step_events_processed_total",
		Help:      "Total number of step events successfully processed.",
	},
	[]string{"source"},
)

// StepEventsErrorsTotal counts async step events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "process_failed")
var StepEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "step_events_errors_total",
		Help:      "Total number of step events that failed processing.",
	},
	[]string{"reason"},
)

// StepEventsQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var StepEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "step_events_queue_depth",
		Help:      "Current number of step events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
