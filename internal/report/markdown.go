package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// Markdown renders the executive summary of the report.
func (r *Report) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Intent Graph Report\n\n")
	fmt.Fprintf(&b, "Run `%s`, generated %s.\n\n", r.RunID, r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	if r.SourceFile != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", r.SourceFile)
	}

	b.WriteString("## Corpus\n\n")
	fmt.Fprintf(&b, "- Intents: **%d**\n", r.TotalIntents)
	fmt.Fprintf(&b, "- Transitions: **%d**\n", len(r.Transitions))
	fmt.Fprintf(&b, "- Entry points: **%d**\n", len(r.Graph.EntryPoints))
	fmt.Fprintf(&b, "- Dead ends: **%d**\n", len(r.Graph.DeadEnds))
	fmt.Fprintf(&b, "- External targets: **%d**\n\n", len(r.Graph.ExternalTargets))

	b.WriteString("## Transition mechanisms\n\n")
	b.WriteString("| Type | Count |\n|---|---|\n")
	for _, t := range domain.TransitionTypes() {
		if n := r.TypeCounts[t]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", t, n)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Graph structure\n\n")
	fmt.Fprintf(&b, "- Components: %d (isolated: %d)\n", r.Graph.Components, len(r.Graph.Isolated))
	fmt.Fprintf(&b, "- Max depth: %d, min depth: %d, avg depth: %.2f\n", r.Graph.Depths.Max, r.Graph.Depths.Min, r.Graph.Depths.Avg)
	fmt.Fprintf(&b, "- Redirect loops: %d\n\n", len(r.Graph.Cycles))

	if r.Validation != nil {
		b.WriteString("## Validation\n\n")
		fmt.Fprintf(&b, "- Errors: **%d**, warnings: **%d**\n", r.Validation.Errors, r.Validation.Warnings)
		fmt.Fprintf(&b, "- Broken redirects: %d\n", len(r.Validation.BrokenRedirects))
		fmt.Fprintf(&b, "- Duplicate ids: %d\n\n", len(r.Validation.DuplicateIDs))
	}

	b.WriteString("## Risk\n\n")
	fmt.Fprintf(&b, "- Health score: **%.2f / 100**\n", r.RiskStats.Score)
	fmt.Fprintf(&b, "- Intents at risk: %d of %d\n", r.RiskStats.AtRisk, r.RiskStats.TotalIntents)
	for _, s := range domain.Severities() {
		if n := r.RiskStats.BySeverity[s]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", s, n)
		}
	}
	if len(r.RiskStats.Critical) > 0 {
		b.WriteString("\nCritical intents:\n\n")
		for _, id := range clipList(r.RiskStats.Critical, 10) {
			fmt.Fprintf(&b, "- `%s`\n", id)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Quality\n\n")
	fmt.Fprintf(&b, "- Trigger patterns: %d (%0.1f%% complex)\n", r.Quality.Regex.TotalPatterns, r.Quality.Regex.ComplexPercentage)
	fmt.Fprintf(&b, "- Entry point diversity: %d/100 across %d channel types\n", r.Quality.EntryPoints.DiversityScore, r.Quality.EntryPoints.UniqueTypes)
	if r.Quality.Freshness.HasVersionData {
		fmt.Fprintf(&b, "- Update activity: %d/100 (%s)\n", r.Quality.Freshness.ActivityScore, r.Quality.Freshness.Freshness)
	} else {
		b.WriteString("- Update activity: no version data\n")
	}

	return b.String()
}

// RenderTerminal renders the markdown summary for ANSI terminals.
func (r *Report) RenderTerminal() (string, error) {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("init renderer: %w", err)
	}
	return renderer.Render(r.Markdown())
}

func clipList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
