package cluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denseBlob lays n points on a tight ring of the given radius around a
// center, so every point sits within 2*radius of every other.
func denseBlob(cx, cy float64, radius float64, n int) [][]float64 {
	pts := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, []float64{
			cx + radius*math.Cos(theta),
			cy + radius*math.Sin(theta),
		})
	}
	return pts
}

func TestFitTwoSeparatedGroups(t *testing.T) {
	// Two dense groups of 12 points each, far apart relative to eps,
	// and no stray points: exactly two clusters, zero noise.
	points := append(
		denseBlob(0, 0, 0.005, 12),
		denseBlob(1, 1, 0.005, 12)...,
	)

	labels, err := NewDBSCAN(0.02, 10).Fit(points)
	require.NoError(t, err)
	require.Len(t, labels, len(points))

	assert.Equal(t, 2, NumClusters(labels))
	for i, l := range labels {
		assert.NotEqual(t, Noise, l, "point %d marked noise", i)
	}
	// Discovery order: the first group scanned gets label 0.
	assert.Equal(t, 0, labels[0])
	assert.Equal(t, 1, labels[12])
}

func TestFitAllNoise(t *testing.T) {
	points := [][]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}}

	labels, err := NewDBSCAN(0.5, 3).Fit(points)
	require.NoError(t, err)
	for _, l := range labels {
		assert.Equal(t, Noise, l)
	}
	assert.Equal(t, 0, NumClusters(labels))
}

func TestFitBorderPointJoinsCluster(t *testing.T) {
	// A tight core of 5 points plus one point reachable from the core
	// but without enough neighbors of its own.
	points := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1}, {0.1, 0.1}, {0.05, 0.05},
		{0.3, 0}, // border: within eps of {0.1, 0} only
	}

	labels, err := NewDBSCAN(0.25, 5).Fit(points)
	require.NoError(t, err)
	assert.Equal(t, 1, NumClusters(labels))
	assert.Equal(t, 0, labels[5], "border point should adopt the core's label")
}

func TestFitThreeDimensional(t *testing.T) {
	points := [][]float64{
		{1, 0, 0}, {1.001, 0, 0}, {1, 0.001, 0}, {1, 0, 0.001},
		{-1, 0, 0}, {-1.001, 0, 0}, {-1, 0.001, 0}, {-1, 0, 0.001},
	}

	labels, err := NewDBSCAN(0.01, 4).Fit(points)
	require.NoError(t, err)
	assert.Equal(t, 2, NumClusters(labels))
	assert.Equal(t, labels[0], labels[3])
	assert.Equal(t, labels[4], labels[7])
	assert.NotEqual(t, labels[0], labels[4])
}

func TestFitParameterValidation(t *testing.T) {
	points := [][]float64{{0, 0}}

	_, err := NewDBSCAN(0, 5).Fit(points)
	assert.Error(t, err)

	_, err = NewDBSCAN(0.1, 0).Fit(points)
	assert.Error(t, err)

	_, err = NewDBSCAN(0.1, 1).Fit([][]float64{{0, 0}, {1, 2, 3}})
	assert.Error(t, err)
}

func TestFitEmptyInput(t *testing.T) {
	labels, err := NewDBSCAN(0.1, 2).Fit(nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance([]float64{0, 0}, []float64{3, 4}), 1e-12)
}
