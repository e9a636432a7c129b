// Package mcp exposes the analysis engine as an MCP server so agent
// tooling can analyze corpora and query stored reports.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/intentgraph"
	"github.com/aretw0/intentgraph/internal/export"
	"github.com/aretw0/intentgraph/internal/report"
	"github.com/aretw0/intentgraph/internal/store"
)

// Analyzer runs the extraction pipeline over a raw corpus document.
type Analyzer interface {
	RunData(ctx context.Context, data []byte) (*intentgraph.Result, error)
}

// AnalyzeSummary is the structured result of the analyze_corpus tool. The
// full report stays in the store; the summary keeps tool output small.
type AnalyzeSummary struct {
	RunID        string   `json:"run_id" jsonschema_description:"Identifier for fetching the stored report"`
	TotalIntents int      `json:"total_intents" jsonschema_description:"Number of intents in the graph"`
	Edges        int      `json:"edges" jsonschema_description:"Number of resolved transitions"`
	EntryPoints  []string `json:"entry_points" jsonschema_description:"Graph entry point intent ids"`
	RiskScore    float64  `json:"risk_score" jsonschema_description:"Corpus health score, 0-100"`
	Errors       int      `json:"errors" jsonschema_description:"Critical and high severity findings"`
	Warnings     int      `json:"warnings" jsonschema_description:"Medium and low severity findings"`
}

// Server wraps the engine and a report store as an MCP server.
type Server struct {
	analyzer  Analyzer
	reports   store.ReportStore
	logger    *slog.Logger
	mcpServer *server.MCPServer

	mu      sync.RWMutex
	exports map[string]export.Input
}

// NewServer creates a new MCP server instance.
func NewServer(analyzer Analyzer, reports store.ReportStore, logger *slog.Logger) *Server {
	s := &Server{
		analyzer:  analyzer,
		reports:   reports,
		logger:    logger,
		mcpServer: server.NewMCPServer("intentgraph-mcp", strings.TrimSpace(intentgraph.Version)),
		exports:   make(map[string]export.Input),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	analyzeTool := mcp.NewTool("analyze_corpus",
		mcp.WithDescription("Analyze a dialog intent corpus (JSON array, wrapped document or JSONL) and store the resulting report."),
		mcp.WithString("data", mcp.Required(), mcp.Description("The corpus document as a string")),
		mcp.WithOutputSchema[AnalyzeSummary](),
	)
	s.mcpServer.AddTool(analyzeTool, mcp.NewStructuredToolHandler(s.handleAnalyze))

	s.mcpServer.AddTool(mcp.NewTool("list_reports",
		mcp.WithDescription("List the run ids of all stored analysis reports."),
	), s.handleListReports)

	s.mcpServer.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Get the full analysis report for a run."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run id returned by analyze_corpus")),
	), s.handleGetReport)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the graph section of a report: entry points, dead ends, depths, components and cycles."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run id returned by analyze_corpus")),
	), s.handleGetGraph)

	s.mcpServer.AddTool(mcp.NewTool("get_risks",
		mcp.WithDescription("Get per-intent risk profiles and the corpus health score for a run."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run id returned by analyze_corpus")),
	), s.handleGetRisks)

	s.mcpServer.AddTool(mcp.NewTool("get_cycles",
		mcp.WithDescription("Get the redirect cycles detected in a run."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run id returned by analyze_corpus")),
	), s.handleGetCycles)

	s.mcpServer.AddTool(mcp.NewTool("export_graph",
		mcp.WithDescription("Render the graph of a run in one diagram format: mermaid, dot, graphml, gexf, cytoscape, d3 or visjs."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run id returned by analyze_corpus")),
		mcp.WithString("format", mcp.Required(), mcp.Description("Diagram format name")),
	), s.handleExport)
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (AnalyzeSummary, error) {
	data, _ := args["data"].(string)
	if strings.TrimSpace(data) == "" {
		return AnalyzeSummary{}, fmt.Errorf("data must not be empty")
	}

	res, err := s.analyzer.RunData(ctx, []byte(data))
	if err != nil {
		return AnalyzeSummary{}, fmt.Errorf("analysis failed: %w", err)
	}
	if err := s.reports.Save(ctx, res.Report); err != nil {
		return AnalyzeSummary{}, fmt.Errorf("failed to persist report: %w", err)
	}
	s.mu.Lock()
	s.exports[res.Report.RunID] = res.Export
	s.mu.Unlock()

	s.logger.Info("corpus analyzed via MCP",
		"run_id", res.Report.RunID,
		"intents", res.Report.TotalIntents)

	return AnalyzeSummary{
		RunID:        res.Report.RunID,
		TotalIntents: res.Report.TotalIntents,
		Edges:        res.Report.Graph.Edges,
		EntryPoints:  res.Report.Graph.EntryPoints,
		RiskScore:    res.Report.RiskStats.Score,
		Errors:       res.Report.Validation.Errors,
		Warnings:     res.Report.Validation.Warnings,
	}, nil
}

func (s *Server) handleListReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.reports.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(map[string]any{"run_ids": ids})
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, errResult := s.load(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	jsonBytes, err := rep.JSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, errResult := s.load(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	jsonBytes, _ := json.Marshal(rep.Graph)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetRisks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, errResult := s.load(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	jsonBytes, _ := json.Marshal(map[string]any{
		"summary": rep.RiskStats,
		"intents": rep.Risks,
	})
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetCycles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, errResult := s.load(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	jsonBytes, _ := json.Marshal(map[string]any{"cycles": rep.Graph.Cycles})
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := request.GetString("run_id", "")
	format := request.GetString("format", "")

	s.mu.RLock()
	in, ok := s.exports[runID]
	s.mu.RUnlock()
	if !ok {
		return mcp.NewToolResultError("export data not available for this run; re-run analyze_corpus"), nil
	}

	data, err := export.Render(in, export.Format(format))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) load(ctx context.Context, request mcp.CallToolRequest) (*report.Report, *mcp.CallToolResult) {
	runID := request.GetString("run_id", "")
	if runID == "" {
		return nil, mcp.NewToolResultError("run_id is required")
	}
	loaded, err := s.reports.Load(ctx, runID)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err))
	}
	return loaded, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("intentgraph://formats", "Supported Export Formats",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(export.Formats())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "intentgraph://formats",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
