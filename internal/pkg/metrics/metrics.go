// Package metrics defines the Prometheus instruments exposed by the service
// on its /metrics endpoint. Counters are registered with the default registry
// via promauto, so importing packages can increment them directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchesTotal counts work order batch dispatch attempts by outcome.
	DispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workplans_dispatches_total",
		Help: "Work order dispatch attempts, partitioned by outcome.",
	}, []string{"outcome"})

	// SubmissionsTotal counts work order submissions to the execution
	// system by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workplans_submissions_total",
		Help: "Work order submissions to the LIMS, partitioned by outcome.",
	}, []string{"outcome"})

	// ExportFailuresTotal counts submission document builds that aborted.
	ExportFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workplans_export_failures_total",
		Help: "Submission document builds that aborted before producing a document.",
	})

	// LifecycleEventsTotal counts published work order lifecycle events
	// by terminal status.
	LifecycleEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workplans_lifecycle_events_total",
		Help: "Published work order lifecycle events, partitioned by status.",
	}, []string{"status"})
)

// Outcome label values.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)
