package observability

import (
	"context"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records synthesis activity as Prometheus collectors.
type Metrics struct {
	Chains     *prometheus.CounterVec
	Primitives *prometheus.CounterVec
	Branches   prometheus.Histogram
	Vertices   prometheus.Histogram
	Duration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Chains: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "montage_chains_total",
				Help: "Trace chains analysed, by collapse outcome",
			},
			[]string{"outcome"},
		),
		Primitives: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "montage_primitives_total",
				Help: "Transition primitives synthesized, by primitive and trace operator",
			},
			[]string{"primitive", "operator"},
		),
		Branches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "montage_chain_branches",
			Help:    "Root-to-leaf branches per non-identity trace chain",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		Vertices: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "montage_transition_vertices",
			Help:    "Vertices per assembled transition graph",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "montage_transition_duration",
			Help:    "Logical duration of assembled transition graphs",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Chains, m.Primitives, m.Branches, m.Vertices, m.Duration)
	}
	return m
}

// Hooks returns synthesis hooks that update the collectors.
func (m *Metrics) Hooks() domain.SynthesisHooks {
	return domain.SynthesisHooks{
		OnChainTraced: func(_ context.Context, e *domain.ChainEvent) {
			m.Chains.WithLabelValues(string(e.Outcome)).Inc()
			if e.Outcome != domain.OutcomeIdentity {
				m.Branches.Observe(float64(e.Branches))
			}
		},
		OnPrimitiveCreated: func(_ context.Context, e *domain.PrimitiveEvent) {
			m.Primitives.WithLabelValues(e.Primitive, e.Operator).Inc()
		},
		OnGraphAssembled: func(_ context.Context, e *domain.GraphEvent) {
			m.Vertices.Observe(float64(e.Vertices))
			m.Duration.Observe(e.Duration)
		},
	}
}
