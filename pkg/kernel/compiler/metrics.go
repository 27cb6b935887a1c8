package compiler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

// Metrics exposes counters/histograms for kernelc invocations, registered
// against a caller-supplied registry so a long-running build service
// embedding this package can expose them on its own /metrics endpoint
// (the ambient-observability convention this corpus's service-shaped repos
// follow — prometheus/client_golang rather than hand-rolled counters).
type Metrics struct {
	Compiles       prometheus.Counter
	CompileErrors  *prometheus.CounterVec
	CompileSeconds prometheus.Histogram
	CacheHits      prometheus.Counter
}

// NewMetrics constructs and registers a Metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Compiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kernelc",
			Name:      "compiles_total",
			Help:      "Total number of kernel module compile attempts.",
		}),
		CompileErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kernelc",
			Name:      "compile_errors_total",
			Help:      "Total number of compile failures, labelled by diagnostic kind.",
		}, []string{"kind"}),
		CompileSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kernelc",
			Name:      "compile_seconds",
			Help:      "Wall-clock time spent compiling one kernel module.",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kernelc",
			Name:      "cache_hits_total",
			Help:      "Total number of compiles skipped because the source hash was unchanged.",
		}),
	}
	reg.MustRegister(m.Compiles, m.CompileErrors, m.CompileSeconds, m.CacheHits)
	return m
}

// RecordError increments CompileErrors under err's diagnostic kind when err
// is one of this package's typed diagnostics, and under "unknown" otherwise
// (a parse error from participle, for instance).
func (m *Metrics) RecordError(err error) {
	if d, ok := err.(diag.Diagnostic); ok {
		m.CompileErrors.WithLabelValues(d.Kind()).Inc()
		return
	}
	m.CompileErrors.WithLabelValues("unknown").Inc()
}
