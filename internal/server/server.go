// Package server exposes analysis runs over HTTP. Reports persist through a
// store.ReportStore; the renderable graph data of runs analyzed by this
// process is kept in memory for the export endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/intentgraph"
	"github.com/aretw0/intentgraph/internal/export"
	"github.com/aretw0/intentgraph/internal/metrics"
	"github.com/aretw0/intentgraph/internal/report"
	"github.com/aretw0/intentgraph/internal/store"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// maxCorpusBytes bounds the analyze request body.
const maxCorpusBytes = 256 << 20

// Analyzer runs the extraction pipeline over a raw corpus document.
type Analyzer interface {
	RunData(ctx context.Context, data []byte) (*intentgraph.Result, error)
}

// Server routes analysis requests to the engine and serves stored reports.
type Server struct {
	analyzer Analyzer
	reports  store.ReportStore
	metrics  *metrics.Metrics
	logger   *slog.Logger

	mu      sync.RWMutex
	exports map[string]export.Input
}

// New assembles the HTTP surface. The metrics argument may be nil, in which
// case /metrics is not mounted.
func New(analyzer Analyzer, reports store.ReportStore, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		analyzer: analyzer,
		reports:  reports,
		metrics:  m,
		logger:   logger,
		exports:  make(map[string]export.Input),
	}
}

// Handler builds the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/info", s.handleInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/reports", s.handleListReports)
		r.Route("/reports/{runID}", func(r chi.Router) {
			r.Get("/", s.handleGetReport)
			r.Delete("/", s.handleDeleteReport)
			r.Get("/graph", s.handleGraph)
			r.Get("/risks", s.handleRisks)
			r.Get("/cycles", s.handleCycles)
			r.Get("/transitions", s.handleTransitions)
			r.Get("/validation", s.handleValidation)
			r.Get("/markdown", s.handleMarkdown)
			r.Get("/export/{format}", s.handleExport)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleAnalyze accepts a corpus document (JSON array, wrapped document or
// JSONL), runs the pipeline and persists the resulting report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxCorpusBytes))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, "empty corpus", http.StatusBadRequest)
		return
	}

	res, err := s.analyzer.RunData(r.Context(), data)
	if err != nil {
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusUnprocessableEntity)
		s.logger.Warn("analysis failed", "err", err)
		return
	}

	if err := s.reports.Save(r.Context(), res.Report); err != nil {
		http.Error(w, fmt.Sprintf("failed to persist report: %v", err), http.StatusInternalServerError)
		s.logger.Error("report save failed", "err", err, "run_id", res.Report.RunID)
		return
	}
	s.mu.Lock()
	s.exports[res.Report.RunID] = res.Export
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.Observe(res.Report)
	}

	s.logger.Info("corpus analyzed",
		"run_id", res.Report.RunID,
		"intents", res.Report.TotalIntents,
		"risk_score", res.Report.RiskStats.Score)
	s.writeJSON(w, http.StatusCreated, res.Report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.reports.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("list failed: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"run_ids": ids})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if err := s.reports.Delete(r.Context(), runID); err != nil {
		http.Error(w, fmt.Sprintf("delete failed: %v", err), http.StatusInternalServerError)
		return
	}
	s.mu.Lock()
	delete(s.exports, runID)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, rep.Graph)
}

func (s *Server) handleRisks(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"summary": rep.RiskStats,
		"intents": rep.Risks,
	})
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"cycles": rep.Graph.Cycles})
}

func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"transitions": rep.Transitions,
		"type_counts": rep.TypeCounts,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, rep.Validation)
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, rep.Markdown())
}

// handleExport renders one diagram format for a run analyzed by this
// process. Export data is not persisted, so runs from previous processes
// return 404 even when their report is still stored.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	format := export.Format(chi.URLParam(r, "format"))

	s.mu.RLock()
	in, ok := s.exports[runID]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "export data not available for this run", http.StatusNotFound)
		return
	}

	data, err := export.Render(in, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "intentgraph-http",
		"version": intentgraph.Version,
	})
}

func (s *Server) loadReport(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	runID := chi.URLParam(r, "runID")
	rep, err := s.reports.Load(r.Context(), runID)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("load failed: %v", err), http.StatusInternalServerError)
			s.logger.Error("report load failed", "err", err, "run_id", runID)
		}
		return nil, false
	}
	return rep, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func contentTypeFor(format export.Format) string {
	switch format {
	case export.FormatMermaid, export.FormatDOT:
		return "text/plain; charset=utf-8"
	case export.FormatGraphML, export.FormatGEXF:
		return "application/xml"
	default:
		return "application/json"
	}
}
