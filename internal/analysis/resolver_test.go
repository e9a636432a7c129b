package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/intentgraph/pkg/domain"
)

func TestResolver_Namespaces(t *testing.T) {
	intents := []domain.Intent{
		{IntentID: "intent_a", SymbolCode: "SYM_A"},
		{IntentID: "intent_b", SymbolCode: "SYM_B", Answers: []domain.Answer{{
			Actions: []domain.Action{{ActionID: "SYM_A"}},
		}}},
		{IntentID: "intent_c"},
	}
	r := NewResolver(intents)

	// Canonical ids resolve to themselves, even when they shadow nothing.
	assert.Equal(t, "intent_a", r.Resolve("intent_a"))
	assert.Equal(t, "intent_c", r.Resolve("intent_c"))

	// Symbol codes map to their owning intent.
	assert.Equal(t, "intent_a", r.Resolve("SYM_A"))
	assert.Equal(t, "intent_b", r.Resolve("SYM_B"))

	// Unknown targets pass through unchanged.
	assert.Equal(t, "elsewhere", r.Resolve("elsewhere"))

	assert.True(t, r.Known("intent_a"))
	assert.False(t, r.Known("SYM_A"))
	assert.False(t, r.Known("elsewhere"))
}

func TestResolver_IntentIDShadowsSymbolCode(t *testing.T) {
	// A target that is both someone's intent_id and someone else's
	// symbol_code resolves as the intent_id.
	r := NewResolver([]domain.Intent{
		{IntentID: "shared"},
		{IntentID: "other", SymbolCode: "shared"},
	})
	assert.Equal(t, "shared", r.Resolve("shared"))
}

func TestResolver_DuplicateSymbolCodeLastWins(t *testing.T) {
	r := NewResolver([]domain.Intent{
		{IntentID: "first", SymbolCode: "DUP"},
		{IntentID: "second", SymbolCode: "DUP"},
	})
	assert.Equal(t, "second", r.Resolve("DUP"))
}

func TestResolver_ActionIDOnlyLinksMatchingSymbolCode(t *testing.T) {
	r := NewResolver([]domain.Intent{
		{IntentID: "a", SymbolCode: "CODE_A"},
		{IntentID: "b", Answers: []domain.Answer{{
			Actions: []domain.Action{
				{ActionID: "CODE_A"},
				{ActionID: "EXTERNAL_SERVICE"},
			},
		}}},
	})

	assert.Equal(t, "a", r.Resolve("CODE_A"))
	// An action id with no symbol_code counterpart stays external.
	assert.Equal(t, "EXTERNAL_SERVICE", r.Resolve("EXTERNAL_SERVICE"))
}

func TestResolver_SkipsBlankIdentifiers(t *testing.T) {
	r := NewResolver([]domain.Intent{
		{IntentID: "", SymbolCode: "ORPHAN"},
		{IntentID: "NaN", SymbolCode: "ALSO_ORPHAN"},
	})
	assert.Equal(t, "ORPHAN", r.Resolve("ORPHAN"))
	assert.Equal(t, "ALSO_ORPHAN", r.Resolve("ALSO_ORPHAN"))
	assert.False(t, r.Known("NaN"))
}
