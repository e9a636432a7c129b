// Package graph materializes the intent corpus and its extracted transitions
// as a directed graph, and provides the structural analytics on top of it:
// reachability depth, connected components, and cycle detection.
package graph

import (
	"log/slog"
	"sort"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// Resolver normalizes transition targets to canonical intent ids. Satisfied
// by analysis.Resolver.
type Resolver interface {
	Resolve(target string) string
	Known(id string) bool
}

// Edge is a resolved transition between two nodes of the graph.
type Edge struct {
	Source    string                `json:"source"`
	Target    string                `json:"target"`
	Type      domain.TransitionType `json:"transition_type"`
	Condition string                `json:"condition,omitempty"`
}

// Graph is the resolved intent graph. Node, entry point and dead end lists
// are sorted so output is deterministic run to run.
type Graph struct {
	Nodes       []string `json:"nodes"`
	Edges       []Edge   `json:"edges"`
	EntryPoints []string `json:"entry_points"`
	DeadEnds    []string `json:"dead_ends"`

	// External holds transitions whose target did not resolve to any
	// intent in the corpus. They never become edges but are kept for
	// diagnostics: a typo'd redirect shows up here, not in the graph.
	External []domain.Transition `json:"external"`

	adjacency  map[string][]string
	entrySet   map[string]struct{}
	entryTypes map[string]struct{}
}

// Options tunes graph construction.
type Options struct {
	// EntryRecordTypes are the record_type values that mark an intent as
	// a conversation entry point, provided it also has trigger inputs.
	EntryRecordTypes []string
}

// DefaultOptions returns the construction defaults.
func DefaultOptions() Options {
	return Options{EntryRecordTypes: []string{"cc_regexp_main"}}
}

// Build constructs the graph from the full intent set and the deduplicated
// transition list. Edges have set semantics: multiple transitions between
// the same pair collapse to one edge carrying the first mechanism's type,
// so the graph answers reachability while the transition list keeps the
// mechanisms. Node-level collections are sorted.
func Build(logger *slog.Logger, intents []domain.Intent, transitions []domain.Transition, r Resolver, opts Options) *Graph {
	if len(opts.EntryRecordTypes) == 0 {
		opts = DefaultOptions()
	}
	entryTypes := make(map[string]struct{}, len(opts.EntryRecordTypes))
	for _, rt := range opts.EntryRecordTypes {
		entryTypes[rt] = struct{}{}
	}

	g := &Graph{
		adjacency:  make(map[string][]string),
		entrySet:   make(map[string]struct{}),
		entryTypes: entryTypes,
	}

	nodeSet := make(map[string]struct{}, len(intents))
	for _, intent := range intents {
		id := domain.CleanTarget(intent.IntentID)
		if id == "" {
			continue
		}
		nodeSet[id] = struct{}{}
		if _, ok := entryTypes[intent.RecordType]; ok && intent.HasInputs() {
			g.entrySet[id] = struct{}{}
		}
	}
	g.Nodes = sortedKeys(nodeSet)
	g.EntryPoints = sortedKeys(g.entrySet)

	seen := make(map[[2]string]struct{}, len(transitions))
	for _, t := range transitions {
		target := r.Resolve(t.TargetID)
		if !r.Known(target) {
			g.External = append(g.External, t)
			continue
		}
		pair := [2]string{t.SourceID, target}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		g.Edges = append(g.Edges, Edge{
			Source:    t.SourceID,
			Target:    target,
			Type:      t.Type,
			Condition: t.Condition,
		})
		g.adjacency[t.SourceID] = append(g.adjacency[t.SourceID], target)
	}

	for _, id := range g.Nodes {
		if len(g.adjacency[id]) == 0 {
			g.DeadEnds = append(g.DeadEnds, id)
		}
	}

	logger.Info("graph built",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"entry_points", len(g.EntryPoints),
		"dead_ends", len(g.DeadEnds),
		"external", len(g.External))

	return g
}

// Adjacency exposes the out-neighbor lists keyed by node id. The returned
// map is shared, not copied; callers must not mutate it.
func (g *Graph) Adjacency() map[string][]string { return g.adjacency }

// IsEntryPoint reports whether id is one of the graph's entry points.
func (g *Graph) IsEntryPoint(id string) bool {
	_, ok := g.entrySet[id]
	return ok
}

// IsEntryRecordType reports whether recordType is one of the configured
// entry-marking record types this graph was built with.
func (g *Graph) IsEntryRecordType(recordType string) bool {
	_, ok := g.entryTypes[recordType]
	return ok
}

// ExternalTargets returns the distinct unresolved target identifiers,
// sorted.
func (g *Graph) ExternalTargets() []string {
	set := make(map[string]struct{}, len(g.External))
	for _, t := range g.External {
		set[t.TargetID] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
