package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/intentgraph"
	"github.com/aretw0/intentgraph/internal/logging"
	"github.com/aretw0/intentgraph/internal/metrics"
	"github.com/aretw0/intentgraph/internal/store"
)

const testCorpus = `[
  {
    "intent_id": "start",
    "record_type": "cc_regexp_main",
    "title": "Старт",
    "inputs": [{"questions": [{"sentence": "привет"}]}],
    "answers": [{"answer": "REDIRECT_TO_INTENT pay"}]
  },
  {
    "intent_id": "pay",
    "record_type": "cc_regexp",
    "title": "Оплата",
    "answers": [{"answer": "готово"}]
  }
]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(intentgraph.New(), store.NewMemoryStore(), metrics.New(), logging.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func analyzeCorpus(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/analyze", "application/json", strings.NewReader(testCorpus))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.RunID)
	return body.RunID
}

func TestAnalyzeAndFetchReport(t *testing.T) {
	ts := newTestServer(t)
	runID := analyzeCorpus(t, ts)

	resp, err := http.Get(ts.URL + "/api/reports/" + runID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep struct {
		TotalIntents int `json:"total_intents"`
		Graph        struct {
			EntryPoints []string `json:"entry_points"`
		} `json:"graph"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, 2, rep.TotalIntents)
	assert.Equal(t, []string{"start"}, rep.Graph.EntryPoints)
}

func TestAnalyze_BadCorpus(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/analyze", "application/json", strings.NewReader("not json at all"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/analyze", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAndDeleteReports(t *testing.T) {
	ts := newTestServer(t)
	runID := analyzeCorpus(t, ts)

	resp, err := http.Get(ts.URL + "/api/reports")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list struct {
		RunIDs []string `json:"run_ids"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Contains(t, list.RunIDs, runID)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/reports/"+runID, nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	after, err := http.Get(ts.URL + "/api/reports/" + runID)
	require.NoError(t, err)
	after.Body.Close()
	assert.Equal(t, http.StatusNotFound, after.StatusCode)
}

func TestSubresources(t *testing.T) {
	ts := newTestServer(t)
	runID := analyzeCorpus(t, ts)

	for _, path := range []string{"graph", "risks", "cycles", "transitions", "validation"} {
		resp, err := http.Get(ts.URL + "/api/reports/" + runID + "/" + path)
		require.NoError(t, err, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"), path)
		resp.Body.Close()
	}
}

func TestMarkdownEndpoint(t *testing.T) {
	ts := newTestServer(t)
	runID := analyzeCorpus(t, ts)

	resp, err := http.Get(ts.URL + "/api/reports/" + runID + "/markdown")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
}

func TestExportEndpoint(t *testing.T) {
	ts := newTestServer(t)
	runID := analyzeCorpus(t, ts)

	resp, err := http.Get(ts.URL + "/api/reports/" + runID + "/export/mermaid")
	require.NoError(t, err)
	body := make([]byte, 1<<16)
	n, _ := resp.Body.Read(body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body[:n]), "flowchart TD")

	bad, err := http.Get(ts.URL + "/api/reports/" + runID + "/export/nonsense")
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	gone, err := http.Get(ts.URL + "/api/reports/unknown-run/export/mermaid")
	require.NoError(t, err)
	gone.Body.Close()
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)
}

func TestHealthInfoMetrics(t *testing.T) {
	ts := newTestServer(t)
	analyzeCorpus(t, ts)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	info, err := http.Get(ts.URL + "/info")
	require.NoError(t, err)
	defer info.Body.Close()
	var meta map[string]string
	require.NoError(t, json.NewDecoder(info.Body).Decode(&meta))
	assert.Equal(t, "intentgraph-http", meta["app"])

	m, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	m.Body.Close()
	assert.Equal(t, http.StatusOK, m.StatusCode)
}

func TestUnknownReport(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/reports/does-not-exist")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
