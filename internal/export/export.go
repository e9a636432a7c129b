package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/aretw0/intentgraph/internal/graph"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// Input carries everything an exporter needs: the corpus for node labels,
// the resolved graph, and optionally the per-intent risk profiles for
// risk-aware styling.
type Input struct {
	Intents []domain.Intent
	Graph   *graph.Graph
	Risks   map[string]*domain.IntentRisk
}

// node is one renderable node with its display metadata.
type node struct {
	ID         string
	Title      string
	RecordType string
	External   bool
}

// nodes lists corpus nodes first, then the distinct external targets, both
// in a stable order.
func (in Input) nodes() []node {
	byID := make(map[string]domain.Intent, len(in.Intents))
	for _, intent := range in.Intents {
		id := domain.CleanTarget(intent.IntentID)
		if id == "" {
			continue
		}
		byID[id] = intent
	}

	out := make([]node, 0, len(in.Graph.Nodes))
	for _, id := range in.Graph.Nodes {
		intent := byID[id]
		title := strings.TrimSpace(intent.Title)
		if title == "" {
			title = id
		}
		out = append(out, node{ID: id, Title: title, RecordType: intent.RecordType})
	}
	for _, ext := range in.Graph.ExternalTargets() {
		out = append(out, node{ID: ext, Title: ext, RecordType: "external", External: true})
	}
	return out
}

// edges returns the resolved edges followed by the unresolved transitions,
// so diagrams show redirects into external systems too.
func (in Input) edges() []graph.Edge {
	out := make([]graph.Edge, 0, len(in.Graph.Edges)+len(in.Graph.External))
	out = append(out, in.Graph.Edges...)
	for _, t := range in.Graph.External {
		out = append(out, graph.Edge{
			Source:    t.SourceID,
			Target:    t.TargetID,
			Type:      t.Type,
			Condition: t.Condition,
		})
	}
	return out
}

// severityOf looks up the risk severity for a node, defaulting to info.
func (in Input) severityOf(id string) domain.RiskSeverity {
	if r, ok := in.Risks[id]; ok {
		return r.Severity
	}
	return domain.SeverityInfo
}

// Format names one supported output format.
type Format string

const (
	FormatMermaid   Format = "mermaid"
	FormatDOT       Format = "dot"
	FormatGraphML   Format = "graphml"
	FormatGEXF      Format = "gexf"
	FormatCytoscape Format = "cytoscape"
	FormatD3        Format = "d3"
	FormatVisJS     Format = "visjs"
)

// Formats returns every supported format in stable order.
func Formats() []Format {
	return []Format{FormatMermaid, FormatDOT, FormatGraphML, FormatGEXF, FormatCytoscape, FormatD3, FormatVisJS}
}

// Render produces one format as a byte slice.
func Render(in Input, format Format) ([]byte, error) {
	switch format {
	case FormatMermaid:
		return []byte(Mermaid(in, MermaidOptions{IncludeLegend: true})), nil
	case FormatDOT:
		return []byte(DOT(in, DOTOptions{ClusterByType: true})), nil
	case FormatGraphML:
		return GraphML(in)
	case FormatGEXF:
		return []byte(GEXF(in)), nil
	case FormatCytoscape, FormatD3, FormatVisJS:
		return JSONGraph(in, format)
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// fileNames by format; JSON flavors get a suffix so they can coexist.
var fileExtensions = map[Format]string{
	FormatMermaid:   ".mmd",
	FormatDOT:       ".dot",
	FormatGraphML:   ".graphml",
	FormatGEXF:      ".gexf",
	FormatCytoscape: "_cytoscape.json",
	FormatD3:        "_d3.json",
	FormatVisJS:     "_visjs.json",
}

// WriteAll renders every format into dir using baseName and returns the
// written paths keyed by format.
func WriteAll(in Input, dir, baseName string) (map[Format]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	paths := make(map[Format]string, len(fileExtensions))
	for _, format := range Formats() {
		data, err := Render(in, format)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, baseName+fileExtensions[format])
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", format, err)
		}
		paths[format] = path
	}
	return paths, nil
}

// safeNodeID rewrites an identifier into something DOT accepts: word
// characters only, never starting with a digit.
func safeNodeID(id string) string {
	if id == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return "unknown"
	}
	if r := rune(out[0]); r >= '0' && r <= '9' {
		out = "n_" + out
	}
	return out
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string { return xmlReplacer.Replace(s) }

var dotReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", "",
)

func escapeDOT(s string) string { return dotReplacer.Replace(s) }
