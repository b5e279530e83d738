// Package metrics registers the prometheus counters/histograms shared across
// timevault, mirroring the teacher's internal/security/metrics.go
// sync.Once-guarded promauto registration but without its gin middleware —
// there is no HTTP server in this domain, only library call sites that
// increment/observe directly.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	RetryAttempts *prometheus.CounterVec
	BeaconLatency *prometheus.HistogramVec
	IndexErrors   *prometheus.CounterVec
)

// Init registers all metrics against reg exactly once per process. Safe to
// call from multiple packages' init()-adjacent setup paths; subsequent calls
// are no-ops.
func Init(reg prometheus.Registerer) {
	initOnce.Do(func() {
		factory := promauto.With(reg)

		RetryAttempts = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timevault",
			Subsystem: "retry",
			Name:      "attempts_total",
			Help:      "Count of retry attempts by outcome kind.",
		}, []string{"kind", "outcome"})

		BeaconLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "timevault",
			Subsystem: "beacon",
			Name:      "request_duration_seconds",
			Help:      "Latency of beacon client calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"})

		IndexErrors = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timevault",
			Subsystem: "localindex",
			Name:      "errors_total",
			Help:      "Count of local-index operation failures.",
		}, []string{"operation"})
	})
}
