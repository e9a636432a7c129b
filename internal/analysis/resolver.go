// Package analysis implements the transition-extraction core: identifier
// resolution across the intent_id / symbol_code / action_id namespaces,
// per-intent transition extraction, and corpus-wide aggregation with
// lightweight classification.
package analysis

import (
	"github.com/aretw0/intentgraph/pkg/domain"
)

// Resolver maps transition targets expressed in alternate identifier
// namespaces back to canonical intent ids. Lookups are O(1) after one pass
// over the corpus.
type Resolver struct {
	intentIDs   map[string]struct{}
	symbolCodes map[string]string // symbol_code -> intent_id
	actionIDs   map[string]string // action_id -> intent_id
}

// NewResolver builds the lookup tables from the full intent collection.
// Duplicate symbol codes resolve last-write-wins; there is no documented
// tie-break in the corpus convention.
func NewResolver(intents []domain.Intent) *Resolver {
	r := &Resolver{
		intentIDs:   make(map[string]struct{}, len(intents)),
		symbolCodes: make(map[string]string),
		actionIDs:   make(map[string]string),
	}

	for _, intent := range intents {
		id := domain.CleanTarget(intent.IntentID)
		if id == "" {
			continue
		}
		r.intentIDs[id] = struct{}{}
		if code := domain.CleanTarget(intent.SymbolCode); code != "" {
			r.symbolCodes[code] = id
		}
	}

	// Heuristic cross-link: an action_id that textually equals some
	// intent's symbol_code is assumed to target that intent. Best effort
	// only; anything else stays an external reference.
	for _, intent := range intents {
		for _, answer := range intent.Answers {
			for _, action := range answer.Actions {
				actionID := domain.CleanTarget(action.ActionID)
				if actionID == "" {
					continue
				}
				if target, ok := r.symbolCodes[actionID]; ok {
					r.actionIDs[actionID] = target
				}
			}
		}
	}

	return r
}

// Resolve normalizes a raw target to a canonical intent id when possible.
// Unknown targets come back unchanged and are treated as external.
func (r *Resolver) Resolve(target string) string {
	if _, ok := r.intentIDs[target]; ok {
		return target
	}
	if id, ok := r.symbolCodes[target]; ok {
		return id
	}
	if id, ok := r.actionIDs[target]; ok {
		return id
	}
	return target
}

// Known reports whether id is a canonical intent id of the corpus.
func (r *Resolver) Known(id string) bool {
	_, ok := r.intentIDs[id]
	return ok
}
