package intentgraph

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/intentgraph/internal/analysis"
	"github.com/aretw0/intentgraph/internal/export"
	"github.com/aretw0/intentgraph/internal/graph"
	"github.com/aretw0/intentgraph/internal/loader"
	"github.com/aretw0/intentgraph/internal/logging"
	"github.com/aretw0/intentgraph/internal/quality"
	"github.com/aretw0/intentgraph/internal/report"
	"github.com/aretw0/intentgraph/internal/risk"
	"github.com/aretw0/intentgraph/internal/validate"
	"github.com/aretw0/intentgraph/pkg/domain"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Engine is the high-level entry point for the intentgraph library.
// It wires the loader, the transition extractor, the graph builder and the
// validation, risk and quality analyzers into a single pipeline.
type Engine struct {
	logger      *slog.Logger
	loaderOpts  loader.Options
	graphOpts   graph.Options
	subtypes    []analysis.SubtypeRule
	weights     risk.Weights
	clock       func() time.Time
	skipQuality bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLoaderOptions overrides the corpus loading limits and expiry filtering.
func WithLoaderOptions(opts loader.Options) Option {
	return func(e *Engine) {
		e.loaderOpts = opts
	}
}

// WithEntryRecordTypes configures which record types mark graph entry points.
func WithEntryRecordTypes(types ...string) Option {
	return func(e *Engine) {
		e.graphOpts.EntryRecordTypes = types
	}
}

// WithSubtypeRules replaces the built-in business subtype keyword rules.
func WithSubtypeRules(rules []analysis.SubtypeRule) Option {
	return func(e *Engine) {
		e.subtypes = rules
	}
}

// WithRiskWeights sets the penalty weights used for the health score.
func WithRiskWeights(w risk.Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithClock overrides the reference time used for freshness scoring.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// WithoutQualityAnalysis skips the regex, entry point and freshness passes.
// Useful when only the structural graph is needed.
func WithoutQualityAnalysis() Option {
	return func(e *Engine) {
		e.skipQuality = true
	}
}

// New initializes an Engine with the default pipeline configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		loaderOpts: loader.Options{FilterExpired: true},
		graphOpts:  graph.DefaultOptions(),
		subtypes:   analysis.DefaultSubtypeRules(),
		weights:    risk.DefaultWeights(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Result is one complete analysis run. Export carries the resolved graph
// and corpus data the diagram exporters consume, which the serialized
// report alone does not retain.
type Result struct {
	Report *report.Report
	Export export.Input
}

// RunFile loads a corpus from disk and runs the full pipeline.
// The path may point at a JSON array, a wrapped {"intents": [...]} document
// or a JSONL dump with one record per line.
func (e *Engine) RunFile(ctx context.Context, path string) (*Result, error) {
	intents, stats, err := loader.LoadFile(e.logger, path, e.loaderOpts)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	res, err := e.analyze(ctx, intents)
	if err != nil {
		return nil, err
	}
	res.Report.SourceFile = filepath.Base(path)
	res.Report.LoadStats = stats
	return res, nil
}

// RunData runs the full pipeline over an in-memory corpus document using
// the same format detection as RunFile.
func (e *Engine) RunData(ctx context.Context, data []byte) (*Result, error) {
	intents, stats, err := loader.Load(e.logger, data, e.loaderOpts)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	res, err := e.analyze(ctx, intents)
	if err != nil {
		return nil, err
	}
	res.Report.LoadStats = stats
	return res, nil
}

// RunRecords runs the full pipeline over already decoded records.
// Each map is one raw intent document. A nil collection is a caller bug
// and returns ErrNilCorpus; an empty one analyzes to an empty report.
func (e *Engine) RunRecords(ctx context.Context, records []map[string]any) (*Result, error) {
	if records == nil {
		return nil, domain.ErrNilCorpus
	}
	intents := make([]domain.Intent, 0, len(records))
	for _, raw := range records {
		intents = append(intents, domain.DecodeIntent(raw))
	}
	return e.analyze(ctx, intents)
}

// AnalyzeFile is RunFile without the export data.
func (e *Engine) AnalyzeFile(ctx context.Context, path string) (*report.Report, error) {
	res, err := e.RunFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// AnalyzeData is RunData without the export data.
func (e *Engine) AnalyzeData(ctx context.Context, data []byte) (*report.Report, error) {
	res, err := e.RunData(ctx, data)
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// AnalyzeRecords is RunRecords without the export data.
func (e *Engine) AnalyzeRecords(ctx context.Context, records []map[string]any) (*report.Report, error) {
	res, err := e.RunRecords(ctx, records)
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// AnalyzeIntents runs the pipeline over decoded intents directly.
func (e *Engine) AnalyzeIntents(ctx context.Context, intents []domain.Intent) (*Result, error) {
	return e.analyze(ctx, intents)
}

func (e *Engine) analyze(ctx context.Context, intents []domain.Intent) (*Result, error) {
	if intents == nil {
		return nil, domain.ErrNilCorpus
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agg := analysis.Aggregate(e.logger, intents, e.subtypes)
	resolver := analysis.NewResolver(intents)
	g := graph.Build(e.logger, intents, agg.Transitions, resolver, e.graphOpts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val := validate.Run(e.logger, intents, agg.Transitions, g)

	var q report.QualitySection
	var extra []validate.Issue
	if !e.skipQuality {
		q = report.QualitySection{
			Regex:       quality.AnalyzeRegexPatterns(intents),
			EntryPoints: quality.AnalyzeEntryPoints(intents),
			Freshness:   quality.AnalyzeFreshness(intents, e.clock()),
			Updates:     quality.AnalyzeUpdateDistribution(intents),
		}
		for _, p := range q.Regex.TopComplex {
			extra = append(extra, validate.Issue{
				IntentID: p.IntentID,
				Type:     domain.RiskComplexRegex,
				Severity: p.Complexity.RiskSeverity(),
				Detail:   fmt.Sprintf("trigger pattern scored %d (%s)", p.Score, p.Complexity),
			})
		}
	}

	risks, riskStats := risk.Analyze(e.logger, intents, val, g, e.weights, extra)
	return &Result{
		Report: report.New(g, agg, val, risks, riskStats, q),
		Export: export.Input{Intents: intents, Graph: g, Risks: risks},
	}, nil
}
