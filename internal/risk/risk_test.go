package risk

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/intentgraph/internal/analysis"
	"github.com/aretw0/intentgraph/internal/graph"
	"github.com/aretw0/intentgraph/internal/validate"
	"github.com/aretw0/intentgraph/pkg/domain"
)

func analyzeCorpus(t *testing.T, intents []domain.Intent, transitions []domain.Transition, extra []validate.Issue) (map[string]*domain.IntentRisk, Summary) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := graph.Build(logger, intents, transitions, analysis.NewResolver(intents), graph.DefaultOptions())
	val := validate.Run(logger, intents, transitions, g)
	return Analyze(logger, intents, val, g, DefaultWeights(), extra)
}

func TestAnalyze_SeverityEscalation(t *testing.T) {
	// "a" redirects into thin air (critical) and is also a dead end after
	// resolution (medium); the profile keeps the worst severity.
	intents := []domain.Intent{
		{IntentID: "a", RecordType: "cc_dialog", Answers: []domain.Answer{{Answer: "x"}}},
	}
	transitions := []domain.Transition{
		{SourceID: "a", TargetID: "ghost", Type: domain.TransitionDirectRedirect},
	}

	risks, summary := analyzeCorpus(t, intents, transitions, nil)

	r, ok := risks["a"]
	require.True(t, ok)
	assert.Equal(t, domain.SeverityCritical, r.Severity)
	assert.Equal(t, "#FF4444", r.Color())

	types := make([]domain.RiskType, 0, len(r.Findings))
	for _, f := range r.Findings {
		types = append(types, f.Type)
	}
	assert.Contains(t, types, domain.RiskBrokenRedirect)
	assert.Contains(t, types, domain.RiskDeadEnd)

	assert.Equal(t, []string{"a"}, summary.Critical)
}

func TestAnalyze_IsolatedSubgraphFindings(t *testing.T) {
	intents := []domain.Intent{
		{IntentID: "o1", RecordType: "cc_dialog", Answers: []domain.Answer{{Answer: "x"}}},
		{IntentID: "o2", RecordType: "cc_dialog", Answers: []domain.Answer{{Answer: "x"}}},
	}
	transitions := []domain.Transition{
		{SourceID: "o1", TargetID: "o2", Type: domain.TransitionDirectRedirect},
		{SourceID: "o2", TargetID: "o1", Type: domain.TransitionDirectRedirect},
	}

	risks, summary := analyzeCorpus(t, intents, transitions, nil)

	require.Contains(t, risks, "o1")
	require.Contains(t, risks, "o2")
	assert.Equal(t, 2, summary.ByType[domain.RiskIsolatedSubgraph])
	assert.Equal(t, 1, summary.ByType[domain.RiskCircularRedirect])
}

func TestAnalyze_ExtraFindingsFoldedIn(t *testing.T) {
	intents := []domain.Intent{
		{IntentID: "rx", RecordType: "cc_dialog", Answers: []domain.Answer{{Answer: "x"}},
			Inputs: []domain.Input{{}}},
	}
	extra := []validate.Issue{{
		IntentID: "rx",
		Type:     domain.RiskComplexRegex,
		Severity: domain.RiskComplexRegex.Severity(),
		Detail:   "pattern score 120",
	}}

	risks, _ := analyzeCorpus(t, intents, nil, extra)

	r := risks["rx"]
	require.NotNil(t, r)
	found := false
	for _, f := range r.Findings {
		if f.Type == domain.RiskComplexRegex {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScore(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		name           string
		critical, high int
		total          int
		want           float64
	}{
		{"empty corpus is clean", 0, 0, 0, 100},
		{"no findings", 0, 0, 50, 100},
		{"one critical in a hundred", 1, 0, 100, 75},
		{"one high in a hundred", 0, 1, 100, 90},
		{"floors at zero", 10, 10, 10, 0},
		{"rounds to cents", 1, 0, 3, 0 /* 100 - 25*100/3 < 0 */},
		{"fractional", 1, 1, 200, 82.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, score(tt.critical, tt.high, tt.total, w))
		})
	}
}
