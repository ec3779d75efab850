// Package observability exposes engine metrics through prometheus.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements the engine's metrics sink on prometheus primitives.
// Register it with a prometheus.Registerer and attach it to the engine via
// plainspeak.WithMetrics.
type Collector struct {
	runs           *prometheus.CounterVec
	dispatchMisses *prometheus.CounterVec
	runDuration    prometheus.Histogram
}

// NewCollector creates the collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plainspeak",
			Name:      "sentence_runs_total",
			Help:      "Sentences run, partitioned by validation outcome.",
		}, []string{"outcome"}),
		dispatchMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plainspeak",
			Name:      "dispatch_misses_total",
			Help:      "Clauses for which no usage candidate matched.",
		}, []string{"verb"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plainspeak",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full Run call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.runs, c.dispatchMisses, c.runDuration)
	return c
}

// ObserveRun records one Run call.
func (c *Collector) ObserveRun(d time.Duration, valid bool) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	c.runs.WithLabelValues(outcome).Inc()
	c.runDuration.Observe(d.Seconds())
}

// ObserveDispatchMiss records a clause no candidate matched.
func (c *Collector) ObserveDispatchMiss(verb string) {
	c.dispatchMisses.WithLabelValues(verb).Inc()
}
