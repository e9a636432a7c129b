package export

import (
	"encoding/xml"
	"fmt"
)

// GraphML document structure, kept minimal: yEd, Gephi and NetworkX all
// read this subset.
type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	ID     string        `xml:"id,attr"`
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// GraphML renders the graph in GraphML with title, record_type and color
// attributes on nodes and transition metadata on edges.
func GraphML(in Input) ([]byte, error) {
	doc := graphmlDoc{
		XMLNS: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: "d0", For: "node", AttrName: "title", AttrType: "string"},
			{ID: "d1", For: "node", AttrName: "record_type", AttrType: "string"},
			{ID: "d2", For: "node", AttrName: "is_external", AttrType: "boolean"},
			{ID: "d3", For: "node", AttrName: "color", AttrType: "string"},
			{ID: "d4", For: "edge", AttrName: "transition_type", AttrType: "string"},
			{ID: "d5", For: "edge", AttrName: "condition", AttrType: "string"},
			{ID: "d6", For: "edge", AttrName: "color", AttrType: "string"},
		},
		Graph: graphmlGraph{ID: "G", EdgeDefault: "directed"},
	}

	for _, n := range in.nodes() {
		colors := ColorsForRecordType(n.RecordType)
		external := "false"
		if n.External {
			colors = ExternalColors()
			external = "true"
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
			ID: n.ID,
			Data: []graphmlData{
				{Key: "d0", Value: n.Title},
				{Key: "d1", Value: n.RecordType},
				{Key: "d2", Value: external},
				{Key: "d3", Value: colors.Fill},
			},
		})
	}

	for i, e := range in.edges() {
		data := []graphmlData{{Key: "d4", Value: string(e.Type)}}
		if e.Condition != "" {
			data = append(data, graphmlData{Key: "d5", Value: e.Condition})
		}
		data = append(data, graphmlData{Key: "d6", Value: StyleForTransition(e.Type).Color})
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			ID:     fmt.Sprintf("e%d", i),
			Source: e.Source,
			Target: e.Target,
			Data:   data,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal graphml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
