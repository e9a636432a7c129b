package domain

// IntentType is the coarse role of an intent, derived from record_type and
// title keywords.
type IntentType string

const (
	IntentTypeMain      IntentType = "main_intent"
	IntentTypeMatch     IntentType = "match_intent"
	IntentTypeMessenger IntentType = "messenger_intent"
	IntentTypeFallback  IntentType = "fallback_intent"
	IntentTypeDialog    IntentType = "dialog_intent"
)

// Classification is the result of the lightweight classification pass.
type Classification struct {
	IntentID string     `json:"intent_id"`
	Type     IntentType `json:"intent_type"`
	Subtype  string     `json:"subtype,omitempty"`
}
