// Package risk folds validation findings and graph structure into a
// per-intent risk profile and a single corpus health score.
package risk

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/aretw0/intentgraph/internal/graph"
	"github.com/aretw0/intentgraph/internal/validate"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// Weights control how hard the worst severities pull the health score down.
type Weights struct {
	Critical float64 `json:"critical" yaml:"critical"`
	High     float64 `json:"high" yaml:"high"`
}

// DefaultWeights returns the scoring defaults.
func DefaultWeights() Weights {
	return Weights{Critical: 25, High: 10}
}

// Summary condenses the risk landscape of one corpus.
type Summary struct {
	TotalIntents int                         `json:"total_intents"`
	AtRisk       int                         `json:"at_risk"`
	Score        float64                     `json:"risk_score"`
	BySeverity   map[domain.RiskSeverity]int `json:"by_severity"`
	ByType       map[domain.RiskType]int     `json:"by_type"`
	Critical     []string                    `json:"critical_intents"`
	High         []string                    `json:"high_intents"`
}

// Analyze builds the per-intent risk map from the validation result and the
// graph's structural findings, then scores the corpus. Extra findings from
// other analyzers (regex complexity, for one) can be passed through.
func Analyze(logger *slog.Logger, intents []domain.Intent, val *validate.Result, g *graph.Graph, w Weights, extra []validate.Issue) (map[string]*domain.IntentRisk, Summary) {
	if w.Critical == 0 && w.High == 0 {
		w = DefaultWeights()
	}

	risks := make(map[string]*domain.IntentRisk)
	record := func(intentID string, t domain.RiskType, detail string) {
		r, ok := risks[intentID]
		if !ok {
			r = domain.NewIntentRisk(intentID)
			risks[intentID] = r
		}
		r.Add(t, detail)
	}

	for _, issue := range val.Issues {
		record(issue.IntentID, issue.Type, issue.Detail)
	}
	for _, issue := range extra {
		record(issue.IntentID, issue.Type, issue.Detail)
	}
	for _, id := range g.DeadEnds {
		record(id, domain.RiskDeadEnd, "no outgoing transitions")
	}
	for _, component := range g.IsolatedSubgraphs() {
		for _, id := range component {
			record(id, domain.RiskIsolatedSubgraph,
				fmt.Sprintf("member of an unreachable cluster of %d intents", len(component)))
		}
	}

	summary := summarize(intents, risks, w)

	logger.Info("risk analysis finished",
		"at_risk", summary.AtRisk,
		"critical", len(summary.Critical),
		"high", len(summary.High),
		"score", summary.Score)

	return risks, summary
}

func summarize(intents []domain.Intent, risks map[string]*domain.IntentRisk, w Weights) Summary {
	s := Summary{
		TotalIntents: len(intents),
		AtRisk:       len(risks),
		BySeverity:   make(map[domain.RiskSeverity]int),
		ByType:       make(map[domain.RiskType]int),
	}

	for id, r := range risks {
		s.BySeverity[r.Severity]++
		for _, f := range r.Findings {
			s.ByType[f.Type]++
		}
		switch r.Severity {
		case domain.SeverityCritical:
			s.Critical = append(s.Critical, id)
		case domain.SeverityHigh:
			s.High = append(s.High, id)
		}
	}
	sort.Strings(s.Critical)
	sort.Strings(s.High)

	s.Score = score(len(s.Critical), len(s.High), s.TotalIntents, w)
	return s
}

// score maps severity counts onto a 0..100 health figure. An empty corpus
// scores a clean 100.
func score(critical, high, total int, w Weights) float64 {
	if total == 0 {
		return 100
	}
	penalty := (float64(critical)*w.Critical + float64(high)*w.High) * 100 / float64(total)
	return math.Round(math.Max(0, 100-penalty)*100) / 100
}
