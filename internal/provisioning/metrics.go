package provisioning

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the measurements of a single run. The registry is
// private to the run and written out as a node-exporter textfile.
//
// All methods are safe on a nil receiver, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	phaseDuration   *prometheus.HistogramVec
	stepDuration    *prometheus.HistogramVec
	resourceActions *prometheus.CounterVec
	runs            *prometheus.CounterVec
}

// NewMetrics creates the run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "acadeploy",
				Subsystem: "run",
				Name:      "phase_duration_seconds",
				Help:      "Duration of deploy phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12), // 500ms to ~17min
			},
			[]string{"phase", "result"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "acadeploy",
				Subsystem: "resource",
				Name:      "step_duration_seconds",
				Help:      "Duration of a single resource step in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14), // 100ms to ~27min
			},
			[]string{"kind", "result"},
		),
		resourceActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "acadeploy",
				Subsystem: "resource",
				Name:      "actions_total",
				Help:      "Resource actions by kind and action (created, reused, updated, deleted, skipped)",
			},
			[]string{"kind", "action"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "acadeploy",
				Subsystem: "run",
				Name:      "outcome_total",
				Help:      "Runs by outcome",
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(m.phaseDuration, m.stepDuration, m.resourceActions, m.runs)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObservePhase records how long a phase ran.
func (m *Metrics) ObservePhase(phase string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase, result(err)).Observe(d.Seconds())
}

// ObserveStep records how long a resource step ran.
func (m *Metrics) ObserveStep(kind Kind, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(string(kind), result(err)).Observe(d.Seconds())
}

// RecordAction counts an action taken on a resource.
func (m *Metrics) RecordAction(kind Kind, action string) {
	if m == nil {
		return
	}
	m.resourceActions.WithLabelValues(string(kind), action).Inc()
}

// RecordOutcome counts the final outcome of a run.
func (m *Metrics) RecordOutcome(o Outcome) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(o)).Inc()
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
