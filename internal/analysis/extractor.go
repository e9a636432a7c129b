package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// textRedirectPattern matches embedded redirect commands in answer text.
// Longer tokens come first so REDIRECT_TO_INTENT is not clipped by GOTO-style
// alternatives. The target is the next non-whitespace run.
var textRedirectPattern = regexp.MustCompile(`(?i)(?:REDIRECT_TO_INTENT|CALL_INTENT|JUMP_TO|/goto|GOTO)\s+(\S+)`)

// markdownButtonPattern matches inline buttons of the form
// [label](type:action action:target).
var markdownButtonPattern = regexp.MustCompile(`\[([^\]]+)\]\(type:action\s+action:([^)]+)\)`)

// maxConditionSlots limits how many slot predicates go into a condition
// label; longer chains add noise without adding meaning.
const maxConditionSlots = 2

// ExtractTransitions returns every outbound transition a single intent can
// trigger, in rule order. It never resolves targets against the rest of the
// corpus and never fails: malformed fields simply contribute nothing.
func ExtractTransitions(intent domain.Intent) []domain.Transition {
	sourceID := domain.CleanTarget(intent.IntentID)
	if sourceID == "" {
		return nil
	}

	var out []domain.Transition
	add := func(target string, t domain.TransitionType, condition string) {
		target = domain.CleanTarget(target)
		if target == "" {
			return
		}
		out = append(out, domain.Transition{
			SourceID:  sourceID,
			TargetID:  target,
			Type:      t,
			Condition: condition,
		})
	}

	// 1. Intent-level direct redirect.
	add(intent.RedirectTo, domain.TransitionDirectRedirect, "")

	// 2. Fallback intent.
	add(intent.FallbackIntent, domain.TransitionFallback, "")

	// 3. Answers: direct redirects, embedded text commands, markdown
	// buttons, structured buttons, action arrays.
	for _, answer := range intent.Answers {
		slotCondition := formatSlotCondition(answer.Slots)

		add(answer.RedirectTo, domain.TransitionAnswerRedirect, slotCondition)

		for _, match := range textRedirectPattern.FindAllStringSubmatch(answer.Answer, -1) {
			add(match[1], domain.TransitionTextRedirect, slotCondition)
		}

		for _, match := range markdownButtonPattern.FindAllStringSubmatch(answer.Answer, -1) {
			label, target := match[1], match[2]
			add(target, domain.TransitionButtonAction, "button: "+label)
		}

		for _, button := range answer.Buttons {
			if button.Action.Type == domain.ActionTypeRedirect {
				add(button.Action.IntentID, domain.TransitionButtonRedirect, "")
			}
		}

		for _, action := range answer.Actions {
			condition := ""
			if text := strings.TrimSpace(action.ActionText); text != "" {
				condition = "action: " + text
			}
			add(action.ActionID, domain.TransitionActionRedirect, condition)
		}
	}

	// 4. Slot fillers: then/else branches.
	for _, filler := range intent.SlotFillers {
		for _, cond := range filler.Conditions {
			add(cond.ThenRedirect, domain.TransitionConditionalRedirect, "")
			add(cond.ElseRedirect, domain.TransitionConditionalRedirect, "")
		}
	}

	// 5. Matched intent link.
	add(intent.MatchedIntentID, domain.TransitionIntentMatch, "")

	return out
}

// formatSlotCondition renders an answer's slot predicates as a short
// human-readable label, e.g. "city=moscow & product=osago".
func formatSlotCondition(slots []domain.Slot) string {
	var parts []string
	for _, slot := range slots {
		if len(parts) == maxConditionSlots {
			break
		}
		if slot.SlotID == "" || len(slot.Values) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", slot.SlotID, slot.Values[0]))
	}
	return strings.Join(parts, " & ")
}
