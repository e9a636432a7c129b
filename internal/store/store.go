// Package store persists analysis reports so the HTTP and MCP surfaces can
// serve past runs. Two backends exist: an in-process map and Redis.
package store

import (
	"context"

	"github.com/aretw0/intentgraph/internal/report"
)

// ReportStore saves and retrieves analysis reports keyed by run id.
type ReportStore interface {
	Save(ctx context.Context, r *report.Report) error
	Load(ctx context.Context, runID string) (*report.Report, error)
	Delete(ctx context.Context, runID string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}
