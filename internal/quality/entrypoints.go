package quality

import (
	"sort"
	"strings"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// EntryPointType classifies the channel an entry point serves.
type EntryPointType string

const (
	EntryMain      EntryPointType = "cc_regexp_main"
	EntryMatch     EntryPointType = "cc_match"
	EntryMessenger EntryPointType = "cc_viber_telegram"
	EntrySystem    EntryPointType = "system"
	EntryFallback  EntryPointType = "fallback"
	EntryCustom    EntryPointType = "custom"
)

// entryPointPatterns are matched, in order, against the lowercased
// record_type, symbol_code and intent_id of an entry candidate.
var entryPointPatterns = []struct {
	kind     EntryPointType
	keywords []string
}{
	{EntryMain, []string{"cc_regexp_main", "main_intent", "entry_main"}},
	{EntryMatch, []string{"cc_match", "match_intent"}},
	{EntryMessenger, []string{"viber", "telegram", "whatsapp", "messenger"}},
	{EntrySystem, []string{"system_", "internal_"}},
	{EntryFallback, []string{"fallback", "error_", "catch_all"}},
}

// ClassifyEntryPoint derives the channel type from the intent's
// identifying fields.
func ClassifyEntryPoint(intent domain.Intent) EntryPointType {
	combined := strings.ToLower(intent.RecordType + " " + intent.SymbolCode + " " + intent.IntentID)
	for _, p := range entryPointPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(combined, kw) {
				return p.kind
			}
		}
	}
	return EntryCustom
}

// EntryPoint is one classified conversation entry.
type EntryPoint struct {
	IntentID   string         `json:"intent_id"`
	Type       EntryPointType `json:"type"`
	RecordType string         `json:"record_type"`
	Title      string         `json:"title"`
}

// EntryPointReport summarizes how many distinct channels can start a
// conversation.
type EntryPointReport struct {
	Total               int                    `json:"total_entry_points"`
	TypeDistribution    map[EntryPointType]int `json:"type_distribution"`
	UniqueTypes         int                    `json:"unique_types"`
	DiversityScore      int                    `json:"diversity_score"`
	EntryPoints         []EntryPoint           `json:"entry_points"`
	HasMultipleChannels bool                   `json:"has_multiple_channels"`
}

const titleClipRunes = 50

// AnalyzeEntryPoints finds every intent that can start a conversation and
// scores channel diversity. Four or more distinct channel types score the
// full 100.
func AnalyzeEntryPoints(intents []domain.Intent) EntryPointReport {
	report := EntryPointReport{TypeDistribution: make(map[EntryPointType]int)}

	for _, intent := range intents {
		if !intent.HasInputs() || !isEntryRecord(intent.RecordType) {
			continue
		}
		ep := EntryPoint{
			IntentID:   domain.CleanTarget(intent.IntentID),
			Type:       ClassifyEntryPoint(intent),
			RecordType: intent.RecordType,
			Title:      clip(intent.Title, titleClipRunes),
		}
		report.EntryPoints = append(report.EntryPoints, ep)
		report.TypeDistribution[ep.Type]++
	}

	sort.Slice(report.EntryPoints, func(i, j int) bool {
		return report.EntryPoints[i].IntentID < report.EntryPoints[j].IntentID
	})

	report.Total = len(report.EntryPoints)
	report.UniqueTypes = len(report.TypeDistribution)
	report.DiversityScore = min(100, report.UniqueTypes*25)
	report.HasMultipleChannels = report.UniqueTypes > 1
	return report
}

func isEntryRecord(recordType string) bool {
	lower := strings.ToLower(recordType)
	return strings.Contains(lower, "main") ||
		recordType == "cc_match" ||
		recordType == "cc_viber_telegram"
}
