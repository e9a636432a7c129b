// Package quality measures soft health signals of the corpus: trigger
// pattern complexity, entry point diversity, and data freshness. Nothing
// here fails a run; the numbers feed the report and the risk analyzer.
package quality

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// Complexity buckets a trigger pattern by length and alternation count.
type Complexity string

const (
	ComplexitySimple      Complexity = "simple"
	ComplexityModerate    Complexity = "moderate"
	ComplexityComplex     Complexity = "complex"
	ComplexityVeryComplex Complexity = "very_complex"
)

// RiskSeverity maps the complexity bucket onto the risk vocabulary.
func (c Complexity) RiskSeverity() domain.RiskSeverity {
	switch c {
	case ComplexityVeryComplex:
		return domain.SeverityHigh
	case ComplexityComplex:
		return domain.SeverityMedium
	case ComplexityModerate:
		return domain.SeverityLow
	default:
		return domain.SeverityInfo
	}
}

var (
	patternFlags = regexp.MustCompile(`/[gimsuyx]*$`)
	lookaheads   = regexp.MustCompile(`\(\?[=!]`)
	lookbehinds  = regexp.MustCompile(`\(\?<[=!]`)
)

// PatternAnalysis is the complexity breakdown of one trigger pattern.
type PatternAnalysis struct {
	Length       int        `json:"length"`
	Alternatives int        `json:"alternatives"`
	Complexity   Complexity `json:"complexity"`
	Issues       []string   `json:"issues,omitempty"`
	Score        int        `json:"score"`
}

// AnalyzePattern scores a single regex trigger. The score grows with
// length, alternation count and the number of structural issues.
func AnalyzePattern(pattern string) PatternAnalysis {
	if pattern == "" {
		return PatternAnalysis{Complexity: ComplexitySimple}
	}

	clean := strings.Trim(patternFlags.ReplaceAllString(pattern, ""), "/")
	length := len(clean)
	alternatives := strings.Count(clean, "|") + 1

	var issues []string
	if n := len(lookaheads.FindAllString(clean, -1)); n > 0 {
		issues = append(issues, fmt.Sprintf("contains %d lookahead(s)", n))
	}
	if n := len(lookbehinds.FindAllString(clean, -1)); n > 0 {
		issues = append(issues, fmt.Sprintf("contains %d lookbehind(s)", n))
	}
	if n := strings.Count(clean, "(("); n > 2 {
		issues = append(issues, fmt.Sprintf("deep nesting (%d levels)", n))
	}
	if n := strings.Count(clean, "["); n > 5 {
		issues = append(issues, fmt.Sprintf("many character classes (%d)", n))
	}
	if alternatives > 10 {
		issues = append(issues, fmt.Sprintf("too many alternatives (%d)", alternatives))
	}

	var complexity Complexity
	switch {
	case length > 200 || alternatives > 10:
		complexity = ComplexityVeryComplex
	case length > 100 || alternatives > 5:
		complexity = ComplexityComplex
	case length > 30 || alternatives > 2:
		complexity = ComplexityModerate
	default:
		complexity = ComplexitySimple
	}

	return PatternAnalysis{
		Length:       length,
		Alternatives: alternatives,
		Complexity:   complexity,
		Issues:       issues,
		Score:        length + alternatives*10 + len(issues)*20,
	}
}

// ComplexPattern is a flagged trigger, attributed to its intent.
type ComplexPattern struct {
	IntentID string `json:"intent_id"`
	Pattern  string `json:"pattern"`
	PatternAnalysis
}

// RegexReport summarizes pattern complexity across the corpus.
type RegexReport struct {
	TotalPatterns     int                `json:"total_patterns"`
	Distribution      map[Complexity]int `json:"complexity_distribution"`
	ComplexCount      int                `json:"complex_count"`
	ComplexPercentage float64            `json:"complex_percentage"`
	TopComplex        []ComplexPattern   `json:"top_complex_patterns,omitempty"`
}

const (
	topComplexLimit  = 10
	patternClipBytes = 100
)

// AnalyzeRegexPatterns walks every trigger sentence in the corpus and
// aggregates the complexity distribution. The worst offenders are kept,
// highest score first, clipped to a preview length.
func AnalyzeRegexPatterns(intents []domain.Intent) RegexReport {
	report := RegexReport{Distribution: make(map[Complexity]int)}

	var flagged []ComplexPattern
	for _, intent := range intents {
		for _, input := range intent.Inputs {
			for _, q := range input.Questions {
				if q.Sentence == "" {
					continue
				}
				report.TotalPatterns++
				pa := AnalyzePattern(q.Sentence)
				report.Distribution[pa.Complexity]++
				if pa.Complexity == ComplexityComplex || pa.Complexity == ComplexityVeryComplex {
					flagged = append(flagged, ComplexPattern{
						IntentID:        domain.CleanTarget(intent.IntentID),
						Pattern:         clip(q.Sentence, patternClipBytes),
						PatternAnalysis: pa,
					})
				}
			}
		}
	}

	sort.SliceStable(flagged, func(i, j int) bool { return flagged[i].Score > flagged[j].Score })
	report.ComplexCount = len(flagged)
	if report.TotalPatterns > 0 {
		report.ComplexPercentage = round1(float64(report.ComplexCount) / float64(report.TotalPatterns) * 100)
	}
	if len(flagged) > topComplexLimit {
		flagged = flagged[:topComplexLimit]
	}
	report.TopComplex = flagged
	return report
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
