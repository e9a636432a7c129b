package analysis

import (
	"log/slog"
	"strings"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// SubtypeRule assigns a domain subtype when any of its keywords occurs in an
// intent's title or topics. Rules are evaluated in order; the first match
// wins.
type SubtypeRule struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultSubtypeRules returns the corpus's built-in subtype vocabulary.
func DefaultSubtypeRules() []SubtypeRule {
	return []SubtypeRule{
		{Name: "insurance", Keywords: []string{"осаго", "каско", "дмс", "полис", "страх"}},
		{Name: "loyalty", Keywords: []string{"бонус", "скидка", "программа лояльности"}},
		{Name: "personal_cabinet", Keywords: []string{"личный кабинет", "lk", "профиль"}},
		{Name: "mobile_app", Keywords: []string{"приложение", "app", "мобильн"}},
		{Name: "payment", Keywords: []string{"оплат", "платеж", "payment"}},
	}
}

// Aggregation is the corpus-wide result of running the extractor over every
// intent: the deduplicated transition list plus the classification pass.
type Aggregation struct {
	// Transitions is deduplicated by (source, target, type); the first
	// occurrence wins and input order is otherwise preserved.
	Transitions []domain.Transition `json:"transitions"`

	// Classifications maps intent id to its coarse type and subtype.
	Classifications map[string]domain.Classification `json:"classifications"`

	// TypeCounts reports how many deduplicated transitions each mechanism
	// produced.
	TypeCounts map[domain.TransitionType]int `json:"transition_type_counts"`
}

// Aggregate extracts transitions from every intent, deduplicates them, and
// classifies each intent. Every record is processed independently; one bad
// record never aborts the pass.
func Aggregate(logger *slog.Logger, intents []domain.Intent, subtypes []SubtypeRule) Aggregation {
	agg := Aggregation{
		Classifications: make(map[string]domain.Classification, len(intents)),
		TypeCounts:      make(map[domain.TransitionType]int),
	}

	seen := make(map[domain.TransitionKey]struct{})
	for _, intent := range intents {
		for _, t := range ExtractTransitions(intent) {
			key := t.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			agg.Transitions = append(agg.Transitions, t)
			agg.TypeCounts[t.Type]++
		}

		id := domain.CleanTarget(intent.IntentID)
		if id == "" {
			continue
		}
		agg.Classifications[id] = domain.Classification{
			IntentID: id,
			Type:     classifyIntent(intent),
			Subtype:  classifySubtype(intent, subtypes),
		}
	}

	logger.Info("aggregated transitions",
		"intents", len(intents),
		"transitions", len(agg.Transitions),
		"classified", len(agg.Classifications))

	return agg
}

// Dedup collapses a transition list by (source, target, type), keeping the
// first occurrence. It is idempotent.
func Dedup(transitions []domain.Transition) []domain.Transition {
	seen := make(map[domain.TransitionKey]struct{}, len(transitions))
	out := make([]domain.Transition, 0, len(transitions))
	for _, t := range transitions {
		key := t.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// classifyIntent derives the coarse intent type from record_type and title
// keywords. Rule priority: main, match, messenger, fallback, then the
// dialog default.
func classifyIntent(intent domain.Intent) domain.IntentType {
	recordType := strings.ToLower(intent.RecordType)
	title := strings.ToLower(intent.Title)

	switch {
	case strings.Contains(recordType, "main"):
		return domain.IntentTypeMain
	case strings.Contains(recordType, "match"):
		return domain.IntentTypeMatch
	case strings.Contains(recordType, "viber"), strings.Contains(recordType, "telegram"):
		return domain.IntentTypeMessenger
	case strings.Contains(title, "fallback"), strings.Contains(title, "error"):
		return domain.IntentTypeFallback
	default:
		return domain.IntentTypeDialog
	}
}

// classifySubtype matches the intent's title and topics against the subtype
// rules. Returns "" when nothing matches.
func classifySubtype(intent domain.Intent, rules []SubtypeRule) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(intent.Title))
	for _, topic := range intent.Topics {
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(topic))
	}
	combined := sb.String()

	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if keyword != "" && strings.Contains(combined, keyword) {
				return rule.Name
			}
		}
	}
	return ""
}
