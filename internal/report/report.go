// Package report assembles the outcome of a full analysis run into one
// serializable document and renders its human-readable summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/intentgraph/internal/analysis"
	"github.com/aretw0/intentgraph/internal/graph"
	"github.com/aretw0/intentgraph/internal/loader"
	"github.com/aretw0/intentgraph/internal/quality"
	"github.com/aretw0/intentgraph/internal/risk"
	"github.com/aretw0/intentgraph/internal/validate"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// GraphSummary is the graph section of a report: the structure numbers plus
// the full node and edge data for downstream consumers.
type GraphSummary struct {
	Nodes           int              `json:"node_count"`
	Edges           int              `json:"edge_count"`
	EntryPoints     []string         `json:"entry_points"`
	DeadEnds        []string         `json:"dead_ends"`
	ExternalTargets []string         `json:"external_targets"`
	Depths          graph.DepthStats `json:"depths"`
	Components      int              `json:"components"`
	Isolated        [][]string       `json:"isolated_subgraphs,omitempty"`
	Cycles          [][]string       `json:"cycles,omitempty"`
}

// QualitySection groups the soft health metrics.
type QualitySection struct {
	Regex       quality.RegexReport        `json:"regex"`
	EntryPoints quality.EntryPointReport   `json:"entry_points"`
	Freshness   quality.FreshnessReport    `json:"freshness"`
	Updates     quality.UpdateDistribution `json:"update_distribution"`
}

// Report is the full result of analyzing one corpus.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	SourceFile  string    `json:"source_file,omitempty"`

	TotalIntents int                              `json:"total_intents"`
	LoadStats    *loader.Stats                    `json:"load_stats,omitempty"`
	Transitions  []domain.Transition              `json:"transitions"`
	TypeCounts   map[domain.TransitionType]int    `json:"transition_type_counts"`
	Classes      map[string]domain.Classification `json:"classifications"`

	Graph      GraphSummary                  `json:"graph"`
	Validation *validate.Result              `json:"validation"`
	Risks      map[string]*domain.IntentRisk `json:"risks"`
	RiskStats  risk.Summary                  `json:"risk_summary"`
	Quality    QualitySection                `json:"quality"`
}

// New assembles a report from the individual analysis results and stamps it
// with a fresh run id.
func New(g *graph.Graph, agg analysis.Aggregation, val *validate.Result, risks map[string]*domain.IntentRisk, riskStats risk.Summary, q QualitySection) *Report {
	return &Report{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		TotalIntents: len(g.Nodes),
		Transitions:  agg.Transitions,
		TypeCounts:   agg.TypeCounts,
		Classes:      agg.Classifications,
		Graph: GraphSummary{
			Nodes:           len(g.Nodes),
			Edges:           len(g.Edges),
			EntryPoints:     g.EntryPoints,
			DeadEnds:        g.DeadEnds,
			ExternalTargets: g.ExternalTargets(),
			Depths:          g.Depths(),
			Components:      len(g.Components()),
			Isolated:        g.IsolatedSubgraphs(),
			Cycles:          g.Cycles(),
		},
		Validation: val,
		Risks:      risks,
		RiskStats:  riskStats,
		Quality:    q,
	}
}

// JSON serializes the report, indented.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteJSON writes the serialized report to path.
func (r *Report) WriteJSON(path string) error {
	data, err := r.JSON()
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
