package export

import (
	"fmt"
	"strings"
)

// DOTOptions tunes the Graphviz output.
type DOTOptions struct {
	GraphName     string
	RankDir       string
	MaxLabelLen   int
	ClusterByType bool
}

func (o DOTOptions) withDefaults() DOTOptions {
	if o.GraphName == "" {
		o.GraphName = "IntentGraph"
	}
	if o.RankDir == "" {
		o.RankDir = "TB"
	}
	if o.MaxLabelLen <= 0 {
		o.MaxLabelLen = 40
	}
	return o
}

// DOT renders the graph for Graphviz. Corpus nodes are boxes colored by
// record_type, optionally grouped into per-type clusters; external targets
// are ellipses.
func DOT(in Input, opts DOTOptions) string {
	opts = opts.withDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", opts.GraphName)
	fmt.Fprintf(&b, "    rankdir=%s;\n", opts.RankDir)
	b.WriteString("    node [shape=box, style=\"rounded,filled\", fontname=\"Arial\", fontsize=10];\n")
	b.WriteString("    edge [fontname=\"Arial\", fontsize=8];\n")
	b.WriteString("    graph [fontname=\"Arial\", splines=true, overlap=false];\n\n")

	nodes := in.nodes()
	if opts.ClusterByType {
		writeDOTClusters(&b, nodes, opts)
	} else {
		for _, n := range nodes {
			if !n.External {
				writeDOTNode(&b, "    ", n, opts)
			}
		}
		b.WriteString("\n")
	}

	var externals []node
	for _, n := range nodes {
		if n.External {
			externals = append(externals, n)
		}
	}
	if len(externals) > 0 {
		b.WriteString("    // External targets\n")
		for _, n := range externals {
			colors := ExternalColors()
			fmt.Fprintf(&b, "    %s [\n", safeNodeID(n.ID))
			fmt.Fprintf(&b, "        label=\"%s\"\n", escapeDOT(truncate(n.ID, opts.MaxLabelLen)))
			fmt.Fprintf(&b, "        fillcolor=\"%s\"\n", colors.Fill)
			fmt.Fprintf(&b, "        color=\"%s\"\n", colors.Border)
			b.WriteString("        shape=ellipse\n")
			fmt.Fprintf(&b, "        tooltip=\"%s\"\n", escapeDOT(n.ID))
			b.WriteString("    ];\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("    // Edges\n")
	for _, e := range in.edges() {
		style := StyleForTransition(e.Type)
		attrs := []string{fmt.Sprintf("color=%q", style.Color)}
		switch style.Line {
		case "dashed":
			attrs = append(attrs, "style=dashed")
		case "dotted":
			attrs = append(attrs, "style=dotted")
		case "bold":
			attrs = append(attrs, "penwidth=2")
		}
		if e.Condition != "" {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", escapeDOT(truncate(e.Condition, 25))))
		}
		fmt.Fprintf(&b, "    %s -> %s [%s];\n", safeNodeID(e.Source), safeNodeID(e.Target), strings.Join(attrs, ", "))
	}

	b.WriteString("\n    // Legend\n")
	b.WriteString("    subgraph cluster_legend {\n")
	b.WriteString("        label=\"Legend\";\n")
	b.WriteString("        style=rounded;\n")
	fmt.Fprintf(&b, "        legend_main [label=\"Main Intent\" fillcolor=%q color=%q];\n", colorsMain.Fill, colorsMain.Border)
	fmt.Fprintf(&b, "        legend_match [label=\"Match Intent\" fillcolor=%q color=%q];\n", colorsMatch.Fill, colorsMatch.Border)
	fmt.Fprintf(&b, "        legend_external [label=\"External Target\" fillcolor=%q color=%q shape=ellipse];\n", colorsExternal.Fill, colorsExternal.Border)
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

func writeDOTClusters(b *strings.Builder, nodes []node, opts DOTOptions) {
	grouped := make(map[string][]node)
	var order []string
	for _, n := range nodes {
		if n.External {
			continue
		}
		kind := n.RecordType
		if kind == "" {
			kind = "other"
		}
		if _, seen := grouped[kind]; !seen {
			order = append(order, kind)
		}
		grouped[kind] = append(grouped[kind], n)
	}

	for i, kind := range order {
		fmt.Fprintf(b, "    subgraph cluster_%d {\n", i)
		fmt.Fprintf(b, "        label=\"%s\";\n", escapeDOT(kind))
		b.WriteString("        style=rounded;\n")
		b.WriteString("        color=\"#BDBDBD\";\n\n")
		for _, n := range grouped[kind] {
			writeDOTNode(b, "        ", n, opts)
		}
		b.WriteString("    }\n\n")
	}
}

func writeDOTNode(b *strings.Builder, indent string, n node, opts DOTOptions) {
	colors := ColorsForRecordType(n.RecordType)
	fmt.Fprintf(b, "%s%s [\n", indent, safeNodeID(n.ID))
	fmt.Fprintf(b, "%s    label=\"%s\"\n", indent, escapeDOT(truncate(n.Title, opts.MaxLabelLen)))
	fmt.Fprintf(b, "%s    fillcolor=\"%s\"\n", indent, colors.Fill)
	fmt.Fprintf(b, "%s    color=\"%s\"\n", indent, colors.Border)
	fmt.Fprintf(b, "%s    tooltip=\"%s\"\n", indent, escapeDOT(n.ID))
	fmt.Fprintf(b, "%s];\n", indent)
}
