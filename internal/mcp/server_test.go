package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/intentgraph"
	"github.com/aretw0/intentgraph/internal/logging"
	"github.com/aretw0/intentgraph/internal/store"
)

const testCorpus = `[
  {"intent_id": "start", "record_type": "cc_regexp_main",
   "inputs": [{"questions": [{"sentence": "hi"}]}],
   "answers": [{"answer": "REDIRECT_TO_INTENT pay"}]},
  {"intent_id": "pay", "record_type": "cc_regexp", "answers": [{"answer": "ok"}]}
]`

func newTestMCP(t *testing.T) *Server {
	t.Helper()
	return NewServer(intentgraph.New(), store.NewMemoryStore(), logging.NewNop())
}

func callWith(runID string) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"run_id": runID}
	return req
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestMCP(t)

	summary, err := s.handleAnalyze(context.Background(), mcp.CallToolRequest{}, map[string]any{"data": testCorpus})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.TotalIntents)
	assert.Equal(t, []string{"start"}, summary.EntryPoints)

	// The report must be retrievable afterwards.
	result, err := s.handleGetReport(context.Background(), callWith(summary.RunID))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestHandleAnalyze_Empty(t *testing.T) {
	s := newTestMCP(t)
	_, err := s.handleAnalyze(context.Background(), mcp.CallToolRequest{}, map[string]any{"data": "  "})
	require.Error(t, err)
}

func TestHandleExport(t *testing.T) {
	s := newTestMCP(t)
	summary, err := s.handleAnalyze(context.Background(), mcp.CallToolRequest{}, map[string]any{"data": testCorpus})
	require.NoError(t, err)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"run_id": summary.RunID, "format": "mermaid"}
	result, err := s.handleExport(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)

	req.Params.Arguments = map[string]any{"run_id": "missing", "format": "mermaid"}
	result, err = s.handleExport(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetReport_Unknown(t *testing.T) {
	s := newTestMCP(t)
	result, err := s.handleGetReport(context.Background(), callWith("nope"))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
