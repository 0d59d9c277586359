// Package metrics exposes the Prometheus gauges and histograms the
// solving pipeline reports through, grounded on the teacher's deleted
// metrics_service.go: same registration-at-construction pattern, same
// metric-name vocabulary (renamed from http-request metrics to the
// solver's own, since this process has no request-serving hot path to
// instrument beyond the HTTP surface's own latency).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Solver bundles every metric the engine reports during one Run.
type Solver struct {
	Duration           prometheus.Histogram
	ConstraintsApplied *prometheus.CounterVec
	SolutionQuality    prometheus.Gauge
	MemoryUsageBytes   prometheus.Gauge
	ClustersSolved     *prometheus.CounterVec
}

// NewSolver registers and returns the solver metric set against reg.
// Callers that don't need a custom registry pass prometheus.DefaultRegisterer.
func NewSolver(reg prometheus.Registerer) *Solver {
	s := &Solver{
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solver_duration_seconds",
			Help:    "Wall-clock time spent inside one engine.Run invocation.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		ConstraintsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solver_constraints_applied_total",
			Help: "Count of constraint plugin evaluations.",
		}, []string{"constraint_type", "stage"}),
		SolutionQuality: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solver_solution_quality_score",
			Help: "Quality score (0-100) of the most recently produced solution.",
		}),
		MemoryUsageBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solver_memory_usage_bytes",
			Help: "Resident memory sampled at the end of the most recent run.",
		}),
		ClustersSolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solver_clusters_solved_total",
			Help: "Count of cluster/grade sub-problems solved across all decomposed runs.",
		}, []string{"status"}),
	}

	reg.MustRegister(s.Duration, s.ConstraintsApplied, s.SolutionQuality, s.MemoryUsageBytes, s.ClustersSolved)
	return s
}
