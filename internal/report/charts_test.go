package report

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyclust/internal/galaxy"
)

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8], "PNG signature")
}

func TestScatterPNG(t *testing.T) {
	dir := t.TempDir()
	path, err := NewCharts(dir, nil).ScatterPNG("clusters_scatter.png", labeledFixture())
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestHistogramPNG(t *testing.T) {
	dir := t.TempDir()
	path, err := NewCharts(dir, nil).HistogramPNG("redshift_histogram.png", labeledFixture())
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestChartsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	charts := NewCharts(dir, nil)

	path, err := charts.ScatterPNG("scatter.png", &galaxy.Table{})
	require.NoError(t, err)
	assertPNG(t, path)

	path, err = charts.HistogramPNG("hist.png", &galaxy.Table{})
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestChartsSingleRedshift(t *testing.T) {
	// All members at one redshift: the degenerate bin range must not
	// divide by zero.
	table := &galaxy.Table{Records: []galaxy.Record{
		{RA: 1, Dec: 1, Redshift: 0.01, Cluster: 0},
		{RA: 1.1, Dec: 1.1, Redshift: 0.01, Cluster: 0},
	}}

	path, err := NewCharts(t.TempDir(), nil).HistogramPNG("hist.png", table)
	require.NoError(t, err)
	assertPNG(t, path)
}
