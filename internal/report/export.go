package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"skyclust/internal/galaxy"
)

// Exporter writes cluster summaries and labeled galaxy tables to disk.
type Exporter struct {
	outputDir string
	logger    *slog.Logger
}

// NewExporter creates an exporter rooted at outputDir. A nil logger
// falls back to slog.Default.
func NewExporter(outputDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{outputDir: outputDir, logger: logger}
}

var summaryHeaders = []string{"Cluster", "Galaxies", "AvgRedshift", "MinRA", "MaxRA", "MinDec", "MaxDec"}

// WriteSummaryCSV writes one row per cluster summary and returns the
// full path of the written file.
func (e *Exporter) WriteSummaryCSV(filename string, summaries []ClusterSummary) (string, error) {
	fullPath := filepath.Join(e.outputDir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", fullPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(summaryHeaders); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	for _, s := range summaries {
		record := []string{
			strconv.Itoa(s.Cluster),
			strconv.Itoa(s.Galaxies),
			strconv.FormatFloat(s.MeanRedshift, 'f', 6, 64),
			strconv.FormatFloat(s.MinRA, 'f', 5, 64),
			strconv.FormatFloat(s.MaxRA, 'f', 5, 64),
			strconv.FormatFloat(s.MinDec, 'f', 5, 64),
			strconv.FormatFloat(s.MaxDec, 'f', 5, 64),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	e.logger.Info("wrote cluster summary CSV",
		slog.String("path", fullPath),
		slog.Int("clusters", len(summaries)))
	return fullPath, nil
}

// WriteWorkbook writes an Excel workbook with a Clusters sheet of
// summaries and a Galaxies sheet of the full labeled table, and
// returns the full path of the written file.
func (e *Exporter) WriteWorkbook(filename string, summaries []ClusterSummary, table *galaxy.Table) (string, error) {
	fullPath := filepath.Join(e.outputDir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const clustersSheet = "Clusters"
	if err := f.SetSheetName("Sheet1", clustersSheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]any, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(clustersSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}
	for i, s := range summaries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{s.Cluster, s.Galaxies, s.MeanRedshift, s.MinRA, s.MaxRA, s.MinDec, s.MaxDec}
		if err := f.SetSheetRow(clustersSheet, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write summary row %d: %w", i, err)
		}
	}

	const galaxiesSheet = "Galaxies"
	if _, err := f.NewSheet(galaxiesSheet); err != nil {
		return "", fmt.Errorf("failed to add sheet: %w", err)
	}
	galaxyHeader := []any{"Index", galaxy.ColRA, galaxy.ColDec, galaxy.ColRedshift, "Cluster"}
	if err := f.SetSheetRow(galaxiesSheet, "A1", &galaxyHeader); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}
	for i, r := range table.Records {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{r.Index, r.RA, r.Dec, r.Redshift, r.Cluster}
		if err := f.SetSheetRow(galaxiesSheet, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write galaxy row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("wrote cluster workbook",
		slog.String("path", fullPath),
		slog.Int("clusters", len(summaries)),
		slog.Int("galaxies", table.Len()))
	return fullPath, nil
}
