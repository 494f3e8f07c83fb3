// Package metrics exposes Prometheus instrumentation for inference runs.
//
// All metric operations are thread-safe via Prometheus's internal locking.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "diagnoser"

// InferenceMetrics holds the counters and histograms recorded per run.
type InferenceMetrics struct {
	// RunsTotal counts inference runs. Labels: status (success, error)
	RunsTotal *prometheus.CounterVec

	// RuleFiringsTotal counts committed firings. Labels: rule
	RuleFiringsTotal *prometheus.CounterVec

	// Passes observes the number of rule passes a run needed.
	Passes prometheus.Histogram

	// DurationSeconds observes inference wall time.
	DurationSeconds prometheus.Histogram
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *InferenceMetrics {
	m := &InferenceMetrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "inference_runs_total",
				Help:      "Total number of inference runs by status",
			},
			[]string{"status"},
		),
		RuleFiringsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "rule_firings_total",
				Help:      "Total number of committed rule firings by rule id",
			},
			[]string{"rule"},
		),
		Passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "inference_passes",
			Help:      "Rule passes needed to reach a fixed point",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 50, 100},
		}),
		DurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "inference_duration_seconds",
			Help:      "Inference wall time",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	reg.MustRegister(m.RunsTotal, m.RuleFiringsTotal, m.Passes, m.DurationSeconds)
	return m
}

// ObserveRun records a finished run. firedRules lists the rule id of every
// trace entry, so a rule that fired twice is counted twice.
func (m *InferenceMetrics) ObserveRun(seconds float64, passes int, firedRules []string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.RunsTotal.WithLabelValues("error").Inc()
		return
	}
	m.RunsTotal.WithLabelValues("success").Inc()
	m.Passes.Observe(float64(passes))
	m.DurationSeconds.Observe(seconds)
	for _, id := range firedRules {
		m.RuleFiringsTotal.WithLabelValues(id).Inc()
	}
}

// RegisterKnowledgeBase exposes the rule count of the current knowledge base,
// read at scrape time so reloads are reflected.
func RegisterKnowledgeBase(reg prometheus.Registerer, ruleCount func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "knowledge_base_rules",
		Help:      "Number of rules in the loaded knowledge base",
	}, func() float64 { return float64(ruleCount()) }))
}
