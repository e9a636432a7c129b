package intentgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/intentgraph/internal/risk"
	"github.com/aretw0/intentgraph/pkg/domain"
)

const sampleCorpus = `[
  {
    "intent_id": "start",
    "record_type": "cc_regexp_main",
    "title": "Главное меню",
    "inputs": [{"questions": [{"sentence": "/привет|здравствуйте/i"}]}],
    "answers": [{"answer": "Добро пожаловать! [Оплата](type:action action:pay)"}]
  },
  {
    "intent_id": "pay",
    "record_type": "cc_regexp",
    "title": "Оплата полиса",
    "inputs": [{"questions": [{"sentence": "оплатить"}]}],
    "answers": [{"answer": "REDIRECT_TO_INTENT billing_service"}]
  },
  {
    "intent_id": "orphan",
    "record_type": "cc_regexp",
    "title": "Отдельный",
    "answers": []
  }
]`

func TestEngine_AnalyzeData(t *testing.T) {
	eng := New()
	rep, err := eng.AnalyzeData(context.Background(), []byte(sampleCorpus))
	require.NoError(t, err)

	assert.Equal(t, 3, rep.TotalIntents)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, []string{"start"}, rep.Graph.EntryPoints)

	// start -> pay resolves internally, pay -> billing_service does not.
	assert.Len(t, rep.Graph.ExternalTargets, 1)
	assert.Contains(t, rep.Graph.ExternalTargets, "billing_service")

	// orphan has no answers, so validation flags it.
	require.NotNil(t, rep.Validation)
	var found bool
	for _, issue := range rep.Validation.Issues {
		if issue.IntentID == "orphan" && issue.Type == domain.RiskEmptyAnswers {
			found = true
		}
	}
	assert.True(t, found, "expected an empty block finding for orphan")
}

func TestEngine_AnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCorpus), 0o644))

	eng := New()
	rep, err := eng.AnalyzeFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "corpus.json", rep.SourceFile)
	require.NotNil(t, rep.LoadStats)
	assert.Equal(t, 3, rep.LoadStats.FinalCount)
}

func TestEngine_AnalyzeFile_Missing(t *testing.T) {
	eng := New()
	_, err := eng.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestEngine_AnalyzeRecords(t *testing.T) {
	records := []map[string]any{
		{"intent_id": "a", "record_type": "cc_regexp_main", "inputs": []any{map[string]any{"questions": []any{map[string]any{"sentence": "hi"}}}}},
		{"intent_id": "b", "record_type": "cc_regexp"},
	}

	eng := New(WithRiskWeights(risk.Weights{Critical: 50, High: 10}))
	rep, err := eng.AnalyzeRecords(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.TotalIntents)
	assert.LessOrEqual(t, rep.RiskStats.Score, 100.0)
}

func TestEngine_NilCorpus(t *testing.T) {
	eng := New()

	_, err := eng.AnalyzeRecords(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNilCorpus)

	_, err = eng.AnalyzeIntents(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNilCorpus)

	// Empty is not nil: an empty corpus analyzes to an empty report.
	rep, err := eng.AnalyzeRecords(context.Background(), []map[string]any{})
	require.NoError(t, err)
	assert.Zero(t, rep.TotalIntents)
}

func TestEngine_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New()
	_, err := eng.AnalyzeRecords(ctx, []map[string]any{{"intent_id": "a", "record_type": "cc_regexp"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_WithoutQualityAnalysis(t *testing.T) {
	eng := New(WithoutQualityAnalysis(), WithClock(func() time.Time { return time.Unix(0, 0) }))
	rep, err := eng.AnalyzeData(context.Background(), []byte(sampleCorpus))
	require.NoError(t, err)
	assert.Zero(t, rep.Quality.Regex.TotalPatterns)
}
