// Package pipeline runs the four-step galaxy clustering analysis:
// query the catalog, clean the table, cluster the unit-sphere
// embedding, and summarize the result. There is no recovery policy —
// the first failing step aborts the run and its error propagates to
// the caller.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skyclust/internal/catalog"
	"skyclust/internal/cluster"
	"skyclust/internal/galaxy"
	"skyclust/internal/report"
)

// Querier is the acquisition capability: one region query against a
// catalog service. *catalog.Client implements it; tests substitute
// their own.
type Querier interface {
	QueryRegion(ctx context.Context, region catalog.Region, opts catalog.QueryOptions) (*galaxy.RawTable, error)
}

// Params are the per-run inputs.
type Params struct {
	Region     catalog.Region
	Query      catalog.QueryOptions
	Eps        float64
	MinSamples int
}

// Result is the labeled table plus its per-cluster summaries.
type Result struct {
	Table       *galaxy.Table
	Summaries   []report.ClusterSummary
	Fetched     int
	Dropped     int
	NumClusters int
	Noise       int
	Elapsed     time.Duration
}

// Runner executes the pipeline against one catalog client.
type Runner struct {
	querier Querier
	logger  *slog.Logger
}

// NewRunner creates a pipeline runner. A nil logger falls back to
// slog.Default.
func NewRunner(querier Querier, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{querier: querier, logger: logger}
}

// Run executes one analysis.
func (r *Runner) Run(ctx context.Context, params Params) (*Result, error) {
	start := time.Now()

	raw, err := r.querier.QueryRegion(ctx, params.Region, params.Query)
	if err != nil {
		return nil, fmt.Errorf("acquisition failed: %w", err)
	}
	fetched := len(raw.Rows)
	r.logger.InfoContext(ctx, "fetched galaxy records", slog.Int("rows", fetched))

	table, err := galaxy.Select(raw)
	if err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}
	dropped := table.DropIncomplete()
	r.logger.InfoContext(ctx, "cleaned galaxy table",
		slog.Int("rows", table.Len()),
		slog.Int("dropped", dropped))

	labels, err := cluster.NewDBSCAN(params.Eps, params.MinSamples).Fit(table.CartesianPoints())
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	if err := table.Label(labels); err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	noise := 0
	for _, l := range labels {
		if l == cluster.Noise {
			noise++
		}
	}
	numClusters := cluster.NumClusters(labels)
	r.logger.InfoContext(ctx, "clustering complete",
		slog.Int("clusters", numClusters),
		slog.Int("noise", noise),
		slog.Float64("eps", params.Eps),
		slog.Int("min_samples", params.MinSamples))

	return &Result{
		Table:       table,
		Summaries:   report.Summarize(table),
		Fetched:     fetched,
		Dropped:     dropped,
		NumClusters: numClusters,
		Noise:       noise,
		Elapsed:     time.Since(start),
	}, nil
}
