package domain

import (
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Intent represents a single unit of dialog logic. All fields are optional in
// the source data: a zero value always means "absent", never "invalid".
type Intent struct {
	IntentID        string `json:"intent_id" mapstructure:"intent_id"`
	RecordType      string `json:"record_type" mapstructure:"record_type"`
	Title           string `json:"title" mapstructure:"title"`
	SymbolCode      string `json:"symbol_code" mapstructure:"symbol_code"`
	RedirectTo      string `json:"redirect_to" mapstructure:"redirect_to"`
	FallbackIntent  string `json:"fallback_intent" mapstructure:"fallback_intent"`
	MatchedIntentID string `json:"matched_intent_id" mapstructure:"matched_intent_id"`

	Topics  []string `json:"topics" mapstructure:"topics"`
	SlotIDs []string `json:"slot_ids" mapstructure:"slot_ids"`

	Inputs      []Input      `json:"inputs" mapstructure:"inputs"`
	Answers     []Answer     `json:"answers" mapstructure:"answers"`
	SlotFillers []SlotFiller `json:"slot_fillers" mapstructure:"slot_fillers"`

	// Version is a .NET tick timestamp of the last edit, 0 when unknown.
	Version int64 `json:"version" mapstructure:"version"`
	// ExpireAt is kept untyped: the corpus mixes ISO strings, plain dates
	// and unix seconds. The loader interprets it.
	ExpireAt any `json:"expire_at,omitempty" mapstructure:"expire_at"`

	// Raw is the original record. Validators inspect it for malformed
	// placeholders (explicit NaN floats etc.) that typed decoding erases.
	Raw map[string]any `json:"-" mapstructure:"-"`
}

// Input is a trigger block: one or more regex questions that start the intent.
type Input struct {
	Questions []Question `json:"questions" mapstructure:"questions"`
}

// Question holds a single trigger pattern.
type Question struct {
	Sentence string `json:"sentence" mapstructure:"sentence"`
}

// Answer is one response option of an intent. The free text may embed
// redirect commands and markdown-style buttons.
type Answer struct {
	Answer     string   `json:"answer" mapstructure:"answer"`
	RedirectTo string   `json:"redirect_to" mapstructure:"redirect_to"`
	Slots      []Slot   `json:"slots" mapstructure:"slots"`
	Buttons    []Button `json:"buttons" mapstructure:"buttons"`
	Actions    []Action `json:"actions" mapstructure:"actions"`
}

// Slot is a condition attached to an answer: the answer applies when the slot
// holds one of the listed values. Used as a human-readable label only.
type Slot struct {
	SlotID string   `json:"slot_id" mapstructure:"slot_id"`
	Values []string `json:"values" mapstructure:"values"`
}

// Button is a structured UI button.
type Button struct {
	Action ButtonAction `json:"action" mapstructure:"action"`
}

// ButtonAction describes what a button does. Only REDIRECT_TO_INTENT actions
// produce transitions.
type ButtonAction struct {
	Type     string `json:"type" mapstructure:"type"`
	IntentID string `json:"intent_id" mapstructure:"intent_id"`
}

// ActionTypeRedirect is the button action type that targets another intent.
const ActionTypeRedirect = "REDIRECT_TO_INTENT"

// Action is an entry of an answer's actions array. ActionID references a
// target by an alternate identifier namespace.
type Action struct {
	ActionID   string `json:"action_id" mapstructure:"action_id"`
	ActionText string `json:"action_text" mapstructure:"action_text"`
}

// SlotFiller models slot-driven branching: a list of if/else conditions.
type SlotFiller struct {
	Conditions []SlotCondition `json:"conditions" mapstructure:"conditions"`
}

// SlotCondition is one branch of a slot filler.
type SlotCondition struct {
	ThenRedirect string `json:"then_redirect" mapstructure:"then_redirect"`
	ElseRedirect string `json:"else_redirect" mapstructure:"else_redirect"`
}

// HasInputs reports whether the intent carries any trigger data.
func (i Intent) HasInputs() bool { return len(i.Inputs) > 0 }

// HasAnswers reports whether the intent carries any response data.
func (i Intent) HasAnswers() bool { return len(i.Answers) > 0 }

// DecodeIntent converts a raw record into a typed Intent. It never fails:
// fields that cannot be decoded (wrong type, null, NaN) stay at their zero
// value, which every consumer treats as "absent". The raw map is retained
// on the result for validators that audit the original shapes.
func DecodeIntent(raw map[string]any) Intent {
	var intent Intent
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &intent,
		WeaklyTypedInput: true,
		DecodeHook:       normalizeShapeHook,
	})
	if err == nil {
		// A returned error only carries per-field failures; decoded
		// fields are already populated and failed ones stay zero.
		_ = dec.Decode(raw)
	}
	intent.Raw = raw
	return intent
}

// normalizeShapeHook enforces the malformed-value policy during decoding:
// NaN floats become the target's zero value before weak typing can stringify
// them into a literal "NaN", and values whose shape does not match the
// target (a scalar where a list belongs, a list where a struct belongs)
// collapse to zero instead of being wrapped or coerced.
func normalizeShapeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch v := data.(type) {
	case float64:
		if math.IsNaN(v) {
			return reflect.Zero(to).Interface(), nil
		}
	case float32:
		if math.IsNaN(float64(v)) {
			return reflect.Zero(to).Interface(), nil
		}
	}

	switch to.Kind() {
	case reflect.Slice:
		if k := from.Kind(); k != reflect.Slice && k != reflect.Array {
			return reflect.Zero(to).Interface(), nil
		}
	case reflect.Struct:
		if from.Kind() != reflect.Map {
			return reflect.Zero(to).Interface(), nil
		}
	}
	return data, nil
}
