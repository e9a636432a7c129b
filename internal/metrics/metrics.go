// Package metrics exposes analysis results as Prometheus gauges so corpus
// health can be tracked across runs on a dashboard.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/intentgraph/internal/report"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// Metrics holds the gauge set for one registry.
type Metrics struct {
	registry *prometheus.Registry

	intents     prometheus.Gauge
	entryPoints prometheus.Gauge
	deadEnds    prometheus.Gauge
	external    prometheus.Gauge
	cycles      prometheus.Gauge
	riskScore   prometheus.Gauge

	transitions *prometheus.GaugeVec
	findings    *prometheus.GaugeVec
}

// New builds the metric set on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		intents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "intents_total",
			Help: "Number of intents in the last analyzed corpus.",
		}),
		entryPoints: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "entry_points_total",
			Help: "Number of conversation entry points.",
		}),
		deadEnds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "dead_ends_total",
			Help: "Number of intents without outgoing transitions.",
		}),
		external: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "external_targets_total",
			Help: "Number of distinct unresolved transition targets.",
		}),
		cycles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "redirect_cycles_total",
			Help: "Number of distinct redirect loops.",
		}),
		riskScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "risk_score",
			Help: "Corpus health score, 0 to 100.",
		}),
		transitions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "transitions_total",
			Help: "Extracted transitions by mechanism.",
		}, []string{"type"}),
		findings: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "intentgraph", Name: "risk_findings_total",
			Help: "Risk findings by severity.",
		}, []string{"severity"}),
	}
}

// Observe records one report's numbers.
func (m *Metrics) Observe(r *report.Report) {
	m.intents.Set(float64(r.TotalIntents))
	m.entryPoints.Set(float64(len(r.Graph.EntryPoints)))
	m.deadEnds.Set(float64(len(r.Graph.DeadEnds)))
	m.external.Set(float64(len(r.Graph.ExternalTargets)))
	m.cycles.Set(float64(len(r.Graph.Cycles)))
	m.riskScore.Set(r.RiskStats.Score)

	for _, t := range domain.TransitionTypes() {
		m.transitions.WithLabelValues(string(t)).Set(float64(r.TypeCounts[t]))
	}
	for _, s := range domain.Severities() {
		m.findings.WithLabelValues(string(s)).Set(float64(r.RiskStats.BySeverity[s]))
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
