package export

import (
	"fmt"
	"strings"
)

// GEXF renders the graph for Gephi, the tool of choice once corpora reach
// thousands of nodes. Built by hand because the viz color extension uses a
// second namespace that encoding/xml handles poorly.
func GEXF(in Input) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gexf xmlns="http://www.gexf.net/1.2draft" version="1.2">` + "\n")
	b.WriteString("  <meta>\n")
	b.WriteString("    <creator>intentgraph</creator>\n")
	b.WriteString("    <description>Dialog Intent Graph</description>\n")
	b.WriteString("  </meta>\n")
	b.WriteString(`  <graph mode="static" defaultedgetype="directed">` + "\n")

	b.WriteString(`    <attributes class="node">` + "\n")
	b.WriteString(`      <attribute id="0" title="record_type" type="string"/>` + "\n")
	b.WriteString(`      <attribute id="1" title="is_external" type="boolean"/>` + "\n")
	b.WriteString("    </attributes>\n")
	b.WriteString(`    <attributes class="edge">` + "\n")
	b.WriteString(`      <attribute id="0" title="transition_type" type="string"/>` + "\n")
	b.WriteString(`      <attribute id="1" title="condition" type="string"/>` + "\n")
	b.WriteString("    </attributes>\n")

	b.WriteString("    <nodes>\n")
	for _, n := range in.nodes() {
		colors := ColorsForRecordType(n.RecordType)
		recordType, external := n.RecordType, "false"
		if n.External {
			colors = ExternalColors()
			recordType, external = "external", "true"
		}
		r, g, bl := hexRGB(colors.Fill)
		fmt.Fprintf(&b, "      <node id=\"%s\" label=\"%s\">\n", escapeXML(n.ID), escapeXML(truncate(n.Title, 50)))
		b.WriteString("        <attvalues>\n")
		fmt.Fprintf(&b, "          <attvalue for=\"0\" value=\"%s\"/>\n", escapeXML(recordType))
		fmt.Fprintf(&b, "          <attvalue for=\"1\" value=\"%s\"/>\n", external)
		b.WriteString("        </attvalues>\n")
		fmt.Fprintf(&b, "        <viz:color r=\"%d\" g=\"%d\" b=\"%d\" xmlns:viz=\"http://www.gexf.net/1.2draft/viz\"/>\n", r, g, bl)
		b.WriteString("      </node>\n")
	}
	b.WriteString("    </nodes>\n")

	b.WriteString("    <edges>\n")
	for i, e := range in.edges() {
		fmt.Fprintf(&b, "      <edge id=\"%d\" source=\"%s\" target=\"%s\">\n", i, escapeXML(e.Source), escapeXML(e.Target))
		b.WriteString("        <attvalues>\n")
		fmt.Fprintf(&b, "          <attvalue for=\"0\" value=\"%s\"/>\n", escapeXML(string(e.Type)))
		if e.Condition != "" {
			fmt.Fprintf(&b, "          <attvalue for=\"1\" value=\"%s\"/>\n", escapeXML(e.Condition))
		}
		b.WriteString("        </attvalues>\n")
		b.WriteString("      </edge>\n")
	}
	b.WriteString("    </edges>\n")

	b.WriteString("  </graph>\n")
	b.WriteString("</gexf>\n")
	return b.String()
}

// hexRGB splits a "#RRGGBB" color into components.
func hexRGB(hex string) (int, int, int) {
	var r, g, b int
	fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
