package report

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"skyclust/internal/cluster"
	"skyclust/internal/galaxy"
)

// histogramBins is the number of redshift bins in the stacked
// histogram.
const histogramBins = 12

var noiseColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}

// Charts renders the two pipeline plots as PNG files.
type Charts struct {
	outputDir string
	logger    *slog.Logger
}

// NewCharts creates a chart renderer writing into outputDir. A nil
// logger falls back to slog.Default.
func NewCharts(outputDir string, logger *slog.Logger) *Charts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Charts{outputDir: outputDir, logger: logger}
}

// ScatterPNG renders the RA/Dec scatter colored by cluster label and
// returns the full path of the written file. Noise points are drawn in
// gray without a legend entry.
func (c *Charts) ScatterPNG(filename string, table *galaxy.Table) (string, error) {
	p := plot.New()
	p.Title.Text = "Galaxy Cluster Identification (DBSCAN)"
	p.X.Label.Text = "Right Ascension (deg)"
	p.Y.Label.Text = "Declination (deg)"

	for _, label := range sortedLabels(table, true) {
		pts := make(plotter.XYs, 0)
		for _, r := range table.Records {
			if r.Cluster != label {
				continue
			}
			pts = append(pts, plotter.XY{X: r.RA, Y: r.Dec})
		}

		s, err := plotter.NewScatter(pts)
		if err != nil {
			return "", fmt.Errorf("failed to build scatter for cluster %d: %w", label, err)
		}
		s.GlyphStyle.Radius = vg.Points(2)
		if label == cluster.Noise {
			s.GlyphStyle.Color = noiseColor
			p.Add(s)
			continue
		}
		s.GlyphStyle.Color = plotutil.Color(label)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("cluster %d", label), s)
	}
	p.Legend.Top = true

	return c.save(p, filename, 8*vg.Inch, 6*vg.Inch)
}

// HistogramPNG renders the stacked redshift histogram of the non-noise
// clusters and returns the full path of the written file.
func (c *Charts) HistogramPNG(filename string, table *galaxy.Table) (string, error) {
	p := plot.New()
	p.Title.Text = "Redshift Distribution by Cluster"
	p.X.Label.Text = "Redshift"
	p.Y.Label.Text = "Number of Galaxies"

	labels := sortedLabels(table, false)
	if len(labels) > 0 {
		lo, hi := redshiftRange(table)
		width := (hi - lo) / histogramBins

		var prev *plotter.BarChart
		for _, label := range labels {
			counts := make(plotter.Values, histogramBins)
			for _, r := range table.Records {
				if r.Cluster != label {
					continue
				}
				counts[binFor(r.Redshift, lo, width)]++
			}

			bars, err := plotter.NewBarChart(counts, vg.Points(18))
			if err != nil {
				return "", fmt.Errorf("failed to build bars for cluster %d: %w", label, err)
			}
			bars.Color = plotutil.Color(label)
			bars.LineStyle.Width = 0
			if prev != nil {
				bars.StackOn(prev)
			}
			p.Add(bars)
			p.Legend.Add(fmt.Sprintf("cluster %d", label), bars)
			prev = bars
		}

		names := make([]string, histogramBins)
		for i := range names {
			names[i] = fmt.Sprintf("%.4f", lo+(float64(i)+0.5)*width)
		}
		p.NominalX(names...)
	}
	p.Legend.Top = true

	return c.save(p, filename, 8*vg.Inch, 5*vg.Inch)
}

func (c *Charts) save(p *plot.Plot, filename string, w, h vg.Length) (string, error) {
	fullPath := filepath.Join(c.outputDir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := p.Save(w, h, fullPath); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}
	c.logger.Info("wrote chart", slog.String("path", fullPath))
	return fullPath, nil
}

// sortedLabels returns the distinct labels in the table in ascending
// order, noise first when included.
func sortedLabels(table *galaxy.Table, includeNoise bool) []int {
	seen := make(map[int]bool)
	for _, r := range table.Records {
		if r.Cluster == cluster.Noise && !includeNoise {
			continue
		}
		seen[r.Cluster] = true
	}
	labels := make([]int, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Ints(labels)
	return labels
}

func redshiftRange(table *galaxy.Table) (lo, hi float64) {
	first := true
	for _, r := range table.Records {
		if r.Cluster == cluster.Noise {
			continue
		}
		if first {
			lo, hi = r.Redshift, r.Redshift
			first = false
			continue
		}
		if r.Redshift < lo {
			lo = r.Redshift
		}
		if r.Redshift > hi {
			hi = r.Redshift
		}
	}
	if hi == lo {
		// Degenerate range: widen so every value lands in one bin.
		hi = lo + 1e-6
	}
	return lo, hi
}

func binFor(z, lo, width float64) int {
	bin := int((z - lo) / width)
	if bin < 0 {
		return 0
	}
	if bin >= histogramBins {
		return histogramBins - 1
	}
	return bin
}
