package graph

import (
	"sort"
	"strings"
)

// Cycles returns every distinct redirect loop in the graph. Two cycles over
// the same node set are the same loop regardless of where traversal entered
// it, so each node set is reported once, as the path found first. Cycles are
// ordered by their starting node for stable output.
func (g *Graph) Cycles() [][]string {
	return DetectCycles(g.adjacency)
}

// DetectCycles finds cycles in an adjacency map by running a DFS from every
// node with a fresh visited set, recording the loop portion of the path
// whenever the walk returns to a node already on it.
func DetectCycles(adjacency map[string][]string) [][]string {
	starts := make([]string, 0, len(adjacency))
	for id := range adjacency {
		starts = append(starts, id)
	}
	sort.Strings(starts)

	seen := make(map[string]struct{})
	var cycles [][]string

	var walk func(node string, path []string, visited map[string]struct{})
	walk = func(node string, path []string, visited map[string]struct{}) {
		for i, onPath := range path {
			if onPath == node {
				cycle := append(append([]string{}, path[i:]...), node)
				sig := cycleSignature(cycle)
				if _, dup := seen[sig]; !dup {
					seen[sig] = struct{}{}
					cycles = append(cycles, cycle)
				}
				return
			}
		}
		if _, ok := visited[node]; ok {
			return
		}
		visited[node] = struct{}{}
		path = append(path, node)
		for _, next := range adjacency[node] {
			walk(next, path, visited)
		}
	}

	for _, start := range starts {
		walk(start, nil, make(map[string]struct{}))
	}
	return cycles
}

// cycleSignature identifies a cycle by its node set, ignoring rotation and
// the duplicated closing node.
func cycleSignature(cycle []string) string {
	nodes := append([]string{}, cycle[:len(cycle)-1]...)
	sort.Strings(nodes)
	return strings.Join(nodes, "\x00")
}
