package export

import (
	"encoding/json"
	"fmt"
)

// JSONGraph renders the graph in one of the web viewer shapes: Cytoscape.js
// elements, a D3 force-directed nodes/links pair, or a vis.js network.
func JSONGraph(in Input, format Format) ([]byte, error) {
	var doc any
	switch format {
	case FormatCytoscape:
		doc = cytoscapeDoc(in)
	case FormatD3:
		doc = d3Doc(in)
	case FormatVisJS:
		doc = visjsDoc(in)
	default:
		return nil, fmt.Errorf("not a JSON graph format: %q", format)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func cytoscapeDoc(in Input) map[string]any {
	var elements []map[string]any
	for _, n := range in.nodes() {
		colors := ColorsForRecordType(n.RecordType)
		labelLen := 40
		if n.External {
			colors = ExternalColors()
			labelLen = 30
		}
		elements = append(elements, map[string]any{
			"data": map[string]any{
				"id":          n.ID,
				"label":       truncate(n.Title, labelLen),
				"title":       n.Title,
				"record_type": n.RecordType,
				"is_external": n.External,
				"color":       colors.Fill,
				"borderColor": colors.Border,
			},
		})
	}
	for i, e := range in.edges() {
		elements = append(elements, map[string]any{
			"data": map[string]any{
				"id":              fmt.Sprintf("e%d", i),
				"source":          e.Source,
				"target":          e.Target,
				"transition_type": string(e.Type),
				"condition":       e.Condition,
				"color":           StyleForTransition(e.Type).Color,
			},
		})
	}
	return map[string]any{"elements": elements}
}

func d3Doc(in Input) map[string]any {
	known := make(map[string]struct{})
	var nodes []map[string]any
	for _, n := range in.nodes() {
		colors := ColorsForRecordType(n.RecordType)
		group, labelLen := n.RecordType, 40
		if n.External {
			colors = ExternalColors()
			group, labelLen = "external", 30
		}
		known[n.ID] = struct{}{}
		nodes = append(nodes, map[string]any{
			"id":          n.ID,
			"label":       truncate(n.Title, labelLen),
			"group":       group,
			"color":       colors.Fill,
			"is_external": n.External,
		})
	}

	var links []map[string]any
	for _, e := range in.edges() {
		if _, ok := known[e.Source]; !ok {
			continue
		}
		if _, ok := known[e.Target]; !ok {
			continue
		}
		links = append(links, map[string]any{
			"source": e.Source,
			"target": e.Target,
			"type":   string(e.Type),
			"color":  StyleForTransition(e.Type).Color,
		})
	}
	return map[string]any{"nodes": nodes, "links": links}
}

func visjsDoc(in Input) map[string]any {
	var nodes []map[string]any
	for _, n := range in.nodes() {
		colors := ColorsForRecordType(n.RecordType)
		entry := map[string]any{
			"id":    n.ID,
			"title": n.Title,
			"group": n.RecordType,
		}
		if n.External {
			colors = ExternalColors()
			entry["group"] = "external"
			entry["shape"] = "ellipse"
			entry["label"] = truncate(n.Title, 30)
		} else {
			entry["label"] = truncate(n.Title, 40)
		}
		entry["color"] = map[string]any{
			"background": colors.Fill,
			"border":     colors.Border,
		}
		nodes = append(nodes, entry)
	}

	var edges []map[string]any
	for i, e := range in.edges() {
		edges = append(edges, map[string]any{
			"id":     fmt.Sprintf("e%d", i),
			"from":   e.Source,
			"to":     e.Target,
			"label":  truncate(e.Condition, 20),
			"color":  StyleForTransition(e.Type).Color,
			"arrows": "to",
		})
	}
	return map[string]any{"nodes": nodes, "edges": edges}
}
