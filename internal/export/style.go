// Package export renders the intent graph into interchange formats:
// Mermaid flowcharts with risk styling, Graphviz DOT, GraphML, GEXF, and
// the JSON shapes the common web graph viewers consume.
package export

import (
	"fmt"
	"strings"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// NodeColors is a fill and border pair for one node.
type NodeColors struct {
	Fill   string
	Border string
}

// nodeColorsByKind styles nodes by the role their record_type implies.
var (
	colorsMain     = NodeColors{Fill: "#4CAF50", Border: "#2E7D32"}
	colorsMatch    = NodeColors{Fill: "#2196F3", Border: "#1565C0"}
	colorsFallback = NodeColors{Fill: "#F44336", Border: "#C62828"}
	colorsOther    = NodeColors{Fill: "#9E9E9E", Border: "#616161"}
	colorsExternal = NodeColors{Fill: "#FFC107", Border: "#F57C00"}
)

// ColorsForRecordType picks node colors from the record_type vocabulary.
func ColorsForRecordType(recordType string) NodeColors {
	lower := strings.ToLower(recordType)
	switch {
	case strings.Contains(lower, "main"), strings.Contains(lower, "regexp"):
		return colorsMain
	case strings.Contains(lower, "match"):
		return colorsMatch
	case strings.Contains(lower, "fallback"), strings.Contains(lower, "error"):
		return colorsFallback
	default:
		return colorsOther
	}
}

// ExternalColors returns the style for targets outside the corpus.
func ExternalColors() NodeColors { return colorsExternal }

// EdgeStyle is line style plus color for one transition mechanism.
type EdgeStyle struct {
	Line  string
	Color string
}

var edgeStyles = map[domain.TransitionType]EdgeStyle{
	domain.TransitionButtonRedirect:      {Line: "solid", Color: "#1976D2"},
	domain.TransitionButtonAction:        {Line: "solid", Color: "#1976D2"},
	domain.TransitionActionRedirect:      {Line: "solid", Color: "#1976D2"},
	domain.TransitionDirectRedirect:      {Line: "bold", Color: "#4CAF50"},
	domain.TransitionTextRedirect:        {Line: "bold", Color: "#4CAF50"},
	domain.TransitionConditionalRedirect: {Line: "dashed", Color: "#FF9800"},
	domain.TransitionFallback:            {Line: "dotted", Color: "#F44336"},
	domain.TransitionAnswerRedirect:      {Line: "solid", Color: "#9C27B0"},
	domain.TransitionIntentMatch:         {Line: "solid", Color: "#607D8B"},
}

// StyleForTransition picks the edge style for a transition mechanism.
func StyleForTransition(t domain.TransitionType) EdgeStyle {
	if s, ok := edgeStyles[t]; ok {
		return s
	}
	return EdgeStyle{Line: "solid", Color: "#757575"}
}

// mermaidRiskStyles color nodes by their accumulated risk severity.
var mermaidRiskStyles = map[domain.RiskSeverity]string{
	domain.SeverityCritical: fmt.Sprintf("fill:%s,stroke:#AA0000,stroke-width:3px,color:#fff", domain.SeverityColors[domain.SeverityCritical]),
	domain.SeverityHigh:     fmt.Sprintf("fill:%s,stroke:#CC4400,stroke-width:2px", domain.SeverityColors[domain.SeverityHigh]),
	domain.SeverityMedium:   fmt.Sprintf("fill:%s,stroke:#886600,stroke-width:1px", domain.SeverityColors[domain.SeverityMedium]),
	domain.SeverityLow:      fmt.Sprintf("fill:%s,stroke:#0066AA,stroke-width:1px,stroke-dasharray:5", domain.SeverityColors[domain.SeverityLow]),
	domain.SeverityInfo:     fmt.Sprintf("fill:%s,stroke:#666666,stroke-width:1px,stroke-dasharray:2", domain.SeverityColors[domain.SeverityInfo]),
}

// MermaidRiskStyle returns the style clause for a risk severity.
func MermaidRiskStyle(s domain.RiskSeverity) string {
	if style, ok := mermaidRiskStyles[s]; ok {
		return style
	}
	return mermaidRiskStyles[domain.SeverityInfo]
}

// truncate clips text for diagram labels.
func truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max-3]) + "..."
}
