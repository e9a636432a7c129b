package quality

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/intentgraph/pkg/domain"
)

func TestAnalyzePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    Complexity
	}{
		{"empty", "", ComplexitySimple},
		{"short literal", "привет", ComplexitySimple},
		{"three alternatives", "да|нет|може", ComplexityModerate},
		{"long pattern", strings.Repeat("a", 120), ComplexityComplex},
		{"six alternatives", "a|b|c|d|e|f", ComplexityComplex},
		{"eleven alternatives", "a|b|c|d|e|f|g|h|i|j|k", ComplexityVeryComplex},
		{"very long", strings.Repeat("x", 201), ComplexityVeryComplex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzePattern(tt.pattern).Complexity)
		})
	}
}

func TestAnalyzePattern_ScoreAndIssues(t *testing.T) {
	// A lookahead plus eleven alternatives flags two issues on top of the
	// length and alternation contributions.
	pa := AnalyzePattern("(?=x)a|b|c|d|e|f|g|h|i|j|k")
	assert.Equal(t, 11, pa.Alternatives)
	require.Len(t, pa.Issues, 2)
	assert.Equal(t, pa.Length+11*10+2*20, pa.Score)
	assert.Equal(t, ComplexityVeryComplex, pa.Complexity)
	assert.Equal(t, domain.SeverityHigh, pa.Complexity.RiskSeverity())
}

func TestAnalyzeRegexPatterns(t *testing.T) {
	intents := []domain.Intent{
		{IntentID: "simple", Inputs: []domain.Input{{Questions: []domain.Question{
			{Sentence: "hi"},
		}}}},
		{IntentID: "heavy", Inputs: []domain.Input{{Questions: []domain.Question{
			{Sentence: strings.Repeat("a", 150)},
			{Sentence: ""},
		}}}},
	}

	report := AnalyzeRegexPatterns(intents)
	assert.Equal(t, 2, report.TotalPatterns)
	assert.Equal(t, 1, report.ComplexCount)
	assert.Equal(t, 50.0, report.ComplexPercentage)
	require.Len(t, report.TopComplex, 1)
	assert.Equal(t, "heavy", report.TopComplex[0].IntentID)
	// Long patterns are clipped for the report.
	assert.Len(t, report.TopComplex[0].Pattern, 103)
}

func TestClassifyEntryPoint(t *testing.T) {
	tests := []struct {
		name   string
		intent domain.Intent
		want   EntryPointType
	}{
		{"main", domain.Intent{RecordType: "cc_regexp_main"}, EntryMain},
		{"match", domain.Intent{RecordType: "cc_match"}, EntryMatch},
		{"messenger by id", domain.Intent{IntentID: "viber_start"}, EntryMessenger},
		{"system by symbol", domain.Intent{SymbolCode: "SYSTEM_X"}, EntrySystem},
		{"fallback", domain.Intent{IntentID: "catch_all_handler"}, EntryFallback},
		{"custom", domain.Intent{RecordType: "cc_dialog"}, EntryCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEntryPoint(tt.intent))
		})
	}
}

func TestAnalyzeEntryPoints(t *testing.T) {
	inputs := []domain.Input{{Questions: []domain.Question{{Sentence: "x"}}}}
	intents := []domain.Intent{
		{IntentID: "m1", RecordType: "cc_regexp_main", Inputs: inputs},
		{IntentID: "m2", RecordType: "cc_regexp_main", Inputs: inputs},
		{IntentID: "match1", RecordType: "cc_match", Inputs: inputs},
		{IntentID: "no_inputs", RecordType: "cc_regexp_main"},
		{IntentID: "not_entry", RecordType: "cc_dialog", Inputs: inputs},
	}

	report := AnalyzeEntryPoints(intents)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.UniqueTypes)
	assert.Equal(t, 50, report.DiversityScore)
	assert.True(t, report.HasMultipleChannels)
	assert.Equal(t, 2, report.TypeDistribution[EntryMain])
	assert.Equal(t, 1, report.TypeDistribution[EntryMatch])
}

func TestTicksToTime(t *testing.T) {
	// 2024-01-01T00:00:00Z in .NET ticks.
	const jan2024 = ticksToUnixEpoch + 1704067200*ticksPerSecond

	dt, ok := TicksToTime(jan2024)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), dt)

	_, ok = TicksToTime(0)
	assert.False(t, ok)
	_, ok = TicksToTime(-5)
	assert.False(t, ok)
	// Predates the unix epoch.
	_, ok = TicksToTime(1)
	assert.False(t, ok)
}

func TestAnalyzeFreshness(t *testing.T) {
	reference := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ticksAt := func(t time.Time) int64 {
		return ticksToUnixEpoch + t.Unix()*ticksPerSecond
	}

	intents := []domain.Intent{
		{IntentID: "today", Version: ticksAt(reference.Add(-2 * time.Hour))},
		{IntentID: "this_week", Version: ticksAt(reference.AddDate(0, 0, -3))},
		{IntentID: "this_month", Version: ticksAt(reference.AddDate(0, 0, -20))},
		{IntentID: "ancient", Version: ticksAt(reference.AddDate(-2, 0, 0))},
		{IntentID: "unversioned"},
		{IntentID: "garbage", Version: 7},
	}

	report := AnalyzeFreshness(intents, reference)
	require.True(t, report.HasVersionData)
	assert.Equal(t, 1, report.SkippedInvalid)
	assert.Equal(t, 4, report.TotalVersioned)
	assert.Equal(t, 1, report.UpdatedLastDay)
	assert.Equal(t, 2, report.UpdatedLastWeek)
	assert.Equal(t, 3, report.UpdatedLastMonth)
	assert.Equal(t, 75, report.ActivityScore)
	assert.Equal(t, FreshnessFresh, report.Freshness)
}

func TestAnalyzeFreshness_NoData(t *testing.T) {
	report := AnalyzeFreshness([]domain.Intent{{IntentID: "a"}}, time.Time{})
	assert.False(t, report.HasVersionData)
}

func TestAnalyzeUpdateDistribution(t *testing.T) {
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ticksAt := func(t time.Time) int64 {
		return ticksToUnixEpoch + t.Unix()*ticksPerSecond
	}

	intents := []domain.Intent{
		{Version: ticksAt(day)},
		{Version: ticksAt(day.Add(3 * time.Hour))},
		{Version: ticksAt(day.AddDate(0, 0, 1))},
	}

	dist := AnalyzeUpdateDistribution(intents)
	assert.Equal(t, 2, dist.UniqueDays)
	assert.Equal(t, "2024-03-10", dist.PeakDay)
	assert.Equal(t, 2, dist.PeakCount)
}
