package domain

// RiskSeverity grades how badly a finding affects a dialog scenario.
type RiskSeverity string

const (
	SeverityCritical RiskSeverity = "critical"
	SeverityHigh     RiskSeverity = "high"
	SeverityMedium   RiskSeverity = "medium"
	SeverityLow      RiskSeverity = "low"
	SeverityInfo     RiskSeverity = "info"
)

// Severities returns all levels ordered from most to least severe.
func Severities() []RiskSeverity {
	return []RiskSeverity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Rank returns a comparable weight: higher means more severe.
func (s RiskSeverity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// RiskType identifies a kind of structural or data problem.
type RiskType string

const (
	RiskNaNValue          RiskType = "nan_value"
	RiskEmptyAnswers      RiskType = "empty_answers"
	RiskEmptyInputs       RiskType = "empty_inputs"
	RiskBrokenRedirect    RiskType = "broken_redirect"
	RiskCircularRedirect  RiskType = "circular_redirect"
	RiskDuplicateID       RiskType = "duplicate_id"
	RiskDuplicateTitle    RiskType = "duplicate_title"
	RiskIsolatedSubgraph  RiskType = "isolated_subgraph"
	RiskDeadEnd           RiskType = "dead_end"
	RiskComplexRegex      RiskType = "complex_regex"
	RiskMissingRecordType RiskType = "missing_record_type"
)

// riskSeverities maps each risk type to its fixed severity.
var riskSeverities = map[RiskType]RiskSeverity{
	RiskDuplicateID:       SeverityCritical,
	RiskBrokenRedirect:    SeverityCritical,
	RiskEmptyAnswers:      SeverityCritical,
	RiskCircularRedirect:  SeverityHigh,
	RiskNaNValue:          SeverityHigh,
	RiskMissingRecordType: SeverityHigh,
	RiskEmptyInputs:       SeverityMedium,
	RiskDeadEnd:           SeverityMedium,
	RiskDuplicateTitle:    SeverityLow,
	RiskComplexRegex:      SeverityLow,
	RiskIsolatedSubgraph:  SeverityInfo,
}

// Severity returns the fixed severity of the risk type.
func (t RiskType) Severity() RiskSeverity {
	if s, ok := riskSeverities[t]; ok {
		return s
	}
	return SeverityInfo
}

// SeverityColors maps severities to the hex colors used by the exporters.
var SeverityColors = map[RiskSeverity]string{
	SeverityCritical: "#FF4444",
	SeverityHigh:     "#FF8844",
	SeverityMedium:   "#FFCC44",
	SeverityLow:      "#88CCFF",
	SeverityInfo:     "#CCCCCC",
}

// RiskFinding is one concrete problem attached to an intent.
type RiskFinding struct {
	Type        RiskType `json:"type"`
	Description string   `json:"description"`
}

// IntentRisk accumulates findings for a single intent. Severity always
// reflects the worst finding added so far.
type IntentRisk struct {
	IntentID string        `json:"intent_id"`
	Severity RiskSeverity  `json:"severity"`
	Findings []RiskFinding `json:"risks"`
}

// NewIntentRisk initializes an empty risk record at info severity.
func NewIntentRisk(intentID string) *IntentRisk {
	return &IntentRisk{IntentID: intentID, Severity: SeverityInfo}
}

// Add records a finding and raises the severity if needed.
func (r *IntentRisk) Add(t RiskType, description string) {
	r.Findings = append(r.Findings, RiskFinding{Type: t, Description: description})
	if s := t.Severity(); s.Rank() > r.Severity.Rank() {
		r.Severity = s
	}
}

// Color returns the visualization color for the accumulated severity.
func (r *IntentRisk) Color() string {
	if c, ok := SeverityColors[r.Severity]; ok {
		return c
	}
	return "#FFFFFF"
}
