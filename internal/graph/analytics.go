package graph

import (
	"math"
	"sort"
)

// DepthStats summarizes how deep the graph reaches from its entry points.
// Depth is the longest shortest-path distance BFS finds from one entry.
type DepthStats struct {
	Max      int            `json:"max_depth"`
	Min      int            `json:"min_depth"`
	Avg      float64        `json:"avg_depth"`
	PerEntry map[string]int `json:"per_entry"`
}

// Depths runs a BFS from every entry point and aggregates the reached
// depths. A graph without entry points yields the zero stats.
func (g *Graph) Depths() DepthStats {
	stats := DepthStats{PerEntry: make(map[string]int, len(g.EntryPoints))}
	if len(g.EntryPoints) == 0 {
		return stats
	}

	stats.Min = math.MaxInt
	total := 0
	for _, entry := range g.EntryPoints {
		d := g.bfsDepth(entry)
		stats.PerEntry[entry] = d
		total += d
		if d > stats.Max {
			stats.Max = d
		}
		if d < stats.Min {
			stats.Min = d
		}
	}
	stats.Avg = math.Round(float64(total)/float64(len(g.EntryPoints))*100) / 100
	return stats
}

func (g *Graph) bfsDepth(start string) int {
	type item struct {
		id    string
		depth int
	}
	visited := map[string]struct{}{start: {}}
	queue := []item{{id: start}}
	max := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth > max {
			max = cur.depth
		}
		for _, next := range g.adjacency[cur.id] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, item{id: next, depth: cur.depth + 1})
		}
	}
	return max
}

// Components partitions the nodes into weakly connected components,
// treating every edge as undirected. Each component's node list is sorted,
// and components are ordered by their first node.
func (g *Graph) Components() [][]string {
	undirected := make(map[string][]string, len(g.Nodes))
	for src, targets := range g.adjacency {
		for _, dst := range targets {
			undirected[src] = append(undirected[src], dst)
			undirected[dst] = append(undirected[dst], src)
		}
	}

	visited := make(map[string]struct{}, len(g.Nodes))
	var components [][]string
	for _, start := range g.Nodes {
		if _, seen := visited[start]; seen {
			continue
		}
		var component []string
		stack := []string{start}
		visited[start] = struct{}{}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, node)
			for _, next := range undirected[node] {
				if _, seen := visited[next]; seen {
					continue
				}
				visited[next] = struct{}{}
				stack = append(stack, next)
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

// IsolatedSubgraphs returns the components that contain more than one node
// but no entry point: clusters of dialog logic nothing can start. Single
// orphan nodes are not reported; they are usually utility records.
func (g *Graph) IsolatedSubgraphs() [][]string {
	var isolated [][]string
	for _, component := range g.Components() {
		if len(component) < 2 {
			continue
		}
		reachable := false
		for _, id := range component {
			if g.IsEntryPoint(id) {
				reachable = true
				break
			}
		}
		if !reachable {
			isolated = append(isolated, component)
		}
	}
	return isolated
}
