package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCycles_SelfLoop(t *testing.T) {
	cycles := DetectCycles(map[string][]string{"a": {"a"}})
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "a"}, cycles[0])
}

func TestDetectCycles_ThreeNodeLoopReportedOnce(t *testing.T) {
	adjacency := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}
	// The loop is discoverable from all three starts but it is one loop.
	cycles := DetectCycles(adjacency)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycles[0])
}

func TestDetectCycles_DisjointLoops(t *testing.T) {
	adjacency := map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"x": {"y"},
		"y": {"x"},
		"m": {"n"},
	}
	cycles := DetectCycles(adjacency)
	require.Len(t, cycles, 2)
	assert.Equal(t, []string{"a", "b", "a"}, cycles[0])
	assert.Equal(t, []string{"x", "y", "x"}, cycles[1])
}

func TestDetectCycles_SharedNodeDistinctSets(t *testing.T) {
	// Two loops through the same hub node have different node sets and
	// are both reported.
	adjacency := map[string][]string{
		"hub": {"a", "b"},
		"a":   {"hub"},
		"b":   {"hub"},
	}
	cycles := DetectCycles(adjacency)
	assert.Len(t, cycles, 2)
}

func TestDetectCycles_AcyclicGraph(t *testing.T) {
	adjacency := map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": nil,
	}
	assert.Empty(t, DetectCycles(adjacency))
}
