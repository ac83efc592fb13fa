// Package metrics defines and registers all custom Prometheus metrics for
// the records API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto; HTTP-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "records"

// MutationsTotal counts successful record mutations.
// Labels:
//   - resource: singular resource name (e.g. "contact")
//   - action: "created", "updated", or "deleted"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful record mutations, by resource and action.",
	},
	[]string{"resource", "action"},
)

// CacheTotal counts record-cache lookups, labelled by result (hit/miss).
var CacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_total",
		Help:      "Total number of record cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the number of activity entries waiting in each
// dispatcher worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityErrorsTotal counts activity entries that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity entries that failed to persist.",
	},
)
