// Command skyclust runs the galaxy clustering pipeline end to end:
// fetch a sky region from the catalog, clean the table, cluster the
// unit-sphere embedding with DBSCAN, then print the per-cluster
// summary and write the CSV, workbook and chart artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"skyclust/internal/catalog"
	"skyclust/internal/config"
	"skyclust/internal/infrastructure"
	"skyclust/internal/pipeline"
	"skyclust/internal/report"
)

func main() {
	configPath := flag.String("config", "skyclust.yaml", "path to YAML config file")
	ra := flag.String("ra", "", "region center right ascension, e.g. 12h30m00s (defaults from config)")
	dec := flag.String("dec", "", "region center declination, e.g. +12d00m00s (defaults from config)")
	radius := flag.Float64("radius", 0, "search radius in degrees (defaults from config)")
	eps := flag.Float64("eps", 0, "DBSCAN neighborhood radius in the Cartesian embedding (defaults from config)")
	minSamples := flag.Int("min-samples", 0, "DBSCAN minimum neighborhood size (defaults from config)")
	maxResults := flag.Int("max-results", 0, "result cap for the catalog query (defaults from config)")
	outputDir := flag.String("out", "", "output directory for reports (defaults from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *ra, *dec, *radius, *eps, *minSamples, *maxResults, *outputDir)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	client := catalog.NewClient(catalog.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
		Burst:     cfg.Catalog.Burst,
	}, logger)

	runner := pipeline.NewRunner(client, logger)
	result, err := runner.Run(ctx, pipeline.Params{
		Region: catalog.Region{
			RA:        cfg.Region.RA,
			Dec:       cfg.Region.Dec,
			RadiusDeg: cfg.Region.RadiusDeg,
		},
		Query: catalog.QueryOptions{
			Equinox:    cfg.Region.Equinox,
			Table:      cfg.Region.Table,
			MaxResults: cfg.Region.MaxResults,
		},
		Eps:        cfg.Cluster.Eps,
		MinSamples: cfg.Cluster.MinSamples,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Fetched %d galaxy records, dropped %d incomplete.\n", result.Fetched, result.Dropped)
	fmt.Printf("Number of clusters found: %d (%d noise points)\n\n", result.NumClusters, result.Noise)
	fmt.Print(report.FormatTable(result.Summaries))

	exporter := report.NewExporter(cfg.Report.OutputDir, logger)
	if _, err := exporter.WriteSummaryCSV(cfg.Report.SummaryCSV, result.Summaries); err != nil {
		logger.ErrorContext(ctx, "Failed to write summary CSV", "error", err)
		os.Exit(1)
	}
	if _, err := exporter.WriteWorkbook(cfg.Report.Workbook, result.Summaries, result.Table); err != nil {
		logger.ErrorContext(ctx, "Failed to write workbook", "error", err)
		os.Exit(1)
	}

	charts := report.NewCharts(cfg.Report.OutputDir, logger)
	scatterPath, err := charts.ScatterPNG(cfg.Report.ScatterPNG, result.Table)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to render scatter chart", "error", err)
		os.Exit(1)
	}
	histPath, err := charts.HistogramPNG(cfg.Report.HistogramPNG, result.Table)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to render histogram chart", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nSaved charts to %s and %s\n", scatterPath, histPath)
	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("clusters", result.NumClusters),
		slog.Duration("elapsed", result.Elapsed))
}

// applyFlagOverrides lets command-line flags win over config values.
func applyFlagOverrides(cfg *config.Config, ra, dec string, radius, eps float64, minSamples, maxResults int, outputDir string) {
	if ra != "" {
		cfg.Region.RA = ra
	}
	if dec != "" {
		cfg.Region.Dec = dec
	}
	if radius > 0 {
		cfg.Region.RadiusDeg = radius
	}
	if eps > 0 {
		cfg.Cluster.Eps = eps
	}
	if minSamples > 0 {
		cfg.Cluster.MinSamples = minSamples
	}
	if maxResults > 0 {
		cfg.Region.MaxResults = maxResults
	}
	if outputDir != "" {
		cfg.Report.OutputDir = outputDir
	}
}
