// Package validate audits the intent corpus for data defects: duplicate
// identifiers, malformed placeholder values, empty trigger and answer
// blocks, redirects to nowhere, and redirect loops. Findings never abort
// the run; everything is collected and reported.
package validate

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/intentgraph/internal/graph"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// requiredFields must carry a real value on every record.
var requiredFields = []string{"record_type"}

// optionalFields may be null, but an explicit NaN marker in them is still a
// defect left behind by the export pipeline.
var optionalFields = []string{"intent_settings", "routing_params", "topics"}

// Issue is a single validation finding attached to one intent.
type Issue struct {
	IntentID string              `json:"intent_id"`
	Type     domain.RiskType     `json:"type"`
	Severity domain.RiskSeverity `json:"severity"`
	Detail   string              `json:"detail"`
}

// BrokenRedirect records a transition whose target resolves to no intent in
// the corpus.
type BrokenRedirect struct {
	SourceID string                `json:"source_id"`
	Target   string                `json:"target"`
	Type     domain.TransitionType `json:"transition_type"`
}

// Result is the full outcome of a validation pass.
type Result struct {
	Issues          []Issue             `json:"issues"`
	DuplicateIDs    map[string]int      `json:"duplicate_ids,omitempty"`
	DuplicateTitles map[string][]string `json:"duplicate_titles,omitempty"`
	BrokenRedirects []BrokenRedirect    `json:"broken_redirects,omitempty"`
	Cycles          [][]string          `json:"cycles,omitempty"`

	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Run validates the corpus against the already extracted transitions and the
// resolved graph.
func Run(logger *slog.Logger, intents []domain.Intent, transitions []domain.Transition, g *graph.Graph) *Result {
	res := &Result{
		DuplicateIDs:    map[string]int{},
		DuplicateTitles: map[string][]string{},
	}

	res.checkDuplicates(intents)
	res.checkMalformedFields(intents)
	res.checkEmptyBlocks(intents, g)
	res.checkBrokenRedirects(g)
	res.checkCycles(g)

	for _, issue := range res.Issues {
		switch issue.Severity {
		case domain.SeverityCritical, domain.SeverityHigh:
			res.Errors++
		case domain.SeverityMedium, domain.SeverityLow:
			res.Warnings++
		}
	}

	logger.Info("validation finished",
		"issues", len(res.Issues),
		"errors", res.Errors,
		"warnings", res.Warnings)

	return res
}

func (r *Result) add(intentID string, t domain.RiskType, detail string) {
	r.Issues = append(r.Issues, Issue{
		IntentID: intentID,
		Type:     t,
		Severity: t.Severity(),
		Detail:   detail,
	})
}

func (r *Result) checkDuplicates(intents []domain.Intent) {
	idCount := map[string]int{}
	titleOwners := map[string][]string{}
	for _, intent := range intents {
		id := domain.CleanTarget(intent.IntentID)
		if id == "" {
			continue
		}
		idCount[id]++
		if title := domain.CleanTarget(intent.Title); title != "" {
			titleOwners[title] = append(titleOwners[title], id)
		}
	}

	for _, id := range sortedIntKeys(idCount) {
		if n := idCount[id]; n > 1 {
			r.DuplicateIDs[id] = n
			r.add(id, domain.RiskDuplicateID, fmt.Sprintf("intent_id appears %d times", n))
		}
	}
	titles := make([]string, 0, len(titleOwners))
	for title := range titleOwners {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		owners := titleOwners[title]
		if len(owners) < 2 {
			continue
		}
		sort.Strings(owners)
		r.DuplicateTitles[title] = owners
		for _, id := range owners {
			r.add(id, domain.RiskDuplicateTitle, fmt.Sprintf("title %q shared by %d intents", title, len(owners)))
		}
	}
}

func (r *Result) checkMalformedFields(intents []domain.Intent) {
	for _, intent := range intents {
		id := domain.CleanTarget(intent.IntentID)
		if id == "" || intent.Raw == nil {
			continue
		}
		for _, field := range requiredFields {
			if domain.IsMissing(intent.Raw[field]) {
				r.add(id, domain.RiskNaNValue, "required field "+field+" is missing or NaN")
			}
		}
		for _, field := range optionalFields {
			if domain.IsExplicitNaN(intent.Raw[field]) {
				r.add(id, domain.RiskNaNValue, "optional field "+field+" holds an explicit NaN")
			}
		}
		if _, ok := intent.Raw["record_type"]; !ok {
			r.add(id, domain.RiskMissingRecordType, "record has no record_type field")
		}
	}
}

func (r *Result) checkEmptyBlocks(intents []domain.Intent, g *graph.Graph) {
	for _, intent := range intents {
		id := domain.CleanTarget(intent.IntentID)
		if id == "" {
			continue
		}
		if !intent.HasAnswers() {
			r.add(id, domain.RiskEmptyAnswers, "intent has no answers")
		}
		if g.IsEntryRecordType(intent.RecordType) && !intent.HasInputs() {
			r.add(id, domain.RiskEmptyInputs, "entry record has no trigger inputs")
		}
	}
}

func (r *Result) checkBrokenRedirects(g *graph.Graph) {
	for _, t := range g.External {
		r.BrokenRedirects = append(r.BrokenRedirects, BrokenRedirect{
			SourceID: t.SourceID,
			Target:   t.TargetID,
			Type:     t.Type,
		})
		// Action ids routinely point at backend services, which is not a
		// data defect of the dialog graph.
		if t.Type == domain.TransitionActionRedirect {
			continue
		}
		r.add(t.SourceID, domain.RiskBrokenRedirect,
			fmt.Sprintf("%s target %q does not resolve", t.Type, t.TargetID))
	}
}

func (r *Result) checkCycles(g *graph.Graph) {
	r.Cycles = g.Cycles()
	for _, cycle := range r.Cycles {
		r.add(cycle[0], domain.RiskCircularRedirect,
			fmt.Sprintf("redirect loop of %d intents", len(cycle)-1))
	}
}

func sortedIntKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
