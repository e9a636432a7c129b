package export

import (
	"fmt"
	"strings"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// MermaidOptions tunes the flowchart output.
type MermaidOptions struct {
	IncludeLegend bool
	// InternalOnly drops edges into external targets; the default mirrors
	// the other formats and keeps them.
	InternalOnly bool
}

// Mermaid renders the graph as a flowchart with risk-colored nodes.
func Mermaid(in Input, opts MermaidOptions) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	nodes := in.nodes()
	for _, n := range nodes {
		if n.External && opts.InternalOnly {
			continue
		}
		label := n.ID
		if n.Title != "" && n.Title != n.ID {
			label = n.ID + "\\n" + truncate(n.Title, 40)
		}
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", mermaidNodeID(n.ID), label)
	}

	for _, e := range in.Graph.Edges {
		fmt.Fprintf(&b, "  %s --> %s\n", mermaidNodeID(e.Source), mermaidNodeID(e.Target))
	}
	if !opts.InternalOnly {
		for _, t := range in.Graph.External {
			fmt.Fprintf(&b, "  %s --> %s\n", mermaidNodeID(t.SourceID), mermaidNodeID(t.TargetID))
		}
	}

	for _, n := range nodes {
		if n.External {
			continue
		}
		fmt.Fprintf(&b, "  style %s %s\n", mermaidNodeID(n.ID), MermaidRiskStyle(in.severityOf(n.ID)))
	}

	if opts.IncludeLegend {
		b.WriteString("\n")
		writeMermaidLegend(&b)
	}
	return b.String()
}

func writeMermaidLegend(b *strings.Builder) {
	b.WriteString("  subgraph Legend\n")
	for _, s := range domain.Severities() {
		fmt.Fprintf(b, "    L%s[\"%s\"]\n", s, strings.ToUpper(string(s)))
	}
	b.WriteString("  end\n\n")
	for _, s := range domain.Severities() {
		fmt.Fprintf(b, "  style L%s %s\n", s, MermaidRiskStyle(s))
	}
}

// mermaidNodeID strips the characters Mermaid chokes on.
func mermaidNodeID(id string) string {
	return safeNodeID(id)
}
