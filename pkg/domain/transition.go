package domain

// TransitionType classifies the mechanism that produced a transition. The
// string values are a stable vocabulary consumed by the diagram exporters
// for styling; do not rename them.
type TransitionType string

const (
	TransitionDirectRedirect      TransitionType = "direct_redirect"
	TransitionFallback            TransitionType = "fallback"
	TransitionAnswerRedirect      TransitionType = "answer_redirect"
	TransitionTextRedirect        TransitionType = "text_redirect"
	TransitionButtonRedirect      TransitionType = "button_redirect"
	TransitionButtonAction        TransitionType = "button_action"
	TransitionActionRedirect      TransitionType = "action_redirect"
	TransitionConditionalRedirect TransitionType = "conditional_redirect"
	TransitionIntentMatch         TransitionType = "intent_match"
)

// TransitionTypes returns the full vocabulary in stable order.
func TransitionTypes() []TransitionType {
	return []TransitionType{
		TransitionDirectRedirect,
		TransitionFallback,
		TransitionAnswerRedirect,
		TransitionTextRedirect,
		TransitionButtonRedirect,
		TransitionButtonAction,
		TransitionActionRedirect,
		TransitionConditionalRedirect,
		TransitionIntentMatch,
	}
}

// Valid reports whether t belongs to the known vocabulary.
func (t TransitionType) Valid() bool {
	switch t {
	case TransitionDirectRedirect, TransitionFallback, TransitionAnswerRedirect,
		TransitionTextRedirect, TransitionButtonRedirect, TransitionButtonAction,
		TransitionActionRedirect, TransitionConditionalRedirect, TransitionIntentMatch:
		return true
	}
	return false
}

// Transition is a directed, typed relationship between two intents. It is an
// immutable value; Condition is informational text (a formatted slot
// predicate or a button label), never evaluated.
type Transition struct {
	SourceID  string         `json:"source_id"`
	TargetID  string         `json:"target_id"`
	Type      TransitionType `json:"transition_type"`
	Condition string         `json:"condition,omitempty"`
}

// TransitionKey is the identity of a transition for deduplication purposes.
// Condition is deliberately excluded.
type TransitionKey struct {
	SourceID string
	TargetID string
	Type     TransitionType
}

// Key returns the deduplication identity of the transition.
func (t Transition) Key() TransitionKey {
	return TransitionKey{SourceID: t.SourceID, TargetID: t.TargetID, Type: t.Type}
}
