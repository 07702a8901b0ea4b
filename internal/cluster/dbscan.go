// Package cluster implements density-based spatial clustering (DBSCAN)
// over points in Euclidean space.
package cluster

import (
	"errors"
	"math"
)

// Noise is the label assigned to points that do not belong to any
// dense region.
const Noise = -1

// DBSCAN groups points by density reachability. A point with at least
// MinSamples neighbors within Eps (itself included) is a core point;
// clusters grow outward from core points, and everything unreachable
// is labeled Noise.
type DBSCAN struct {
	// Eps is the neighborhood radius, in the same units as the input
	// coordinates.
	Eps float64
	// MinSamples is the number of points, the point itself included,
	// required inside an Eps-neighborhood for a core point.
	MinSamples int
}

// NewDBSCAN creates a DBSCAN clusterer with the given neighborhood
// radius and minimum neighborhood size.
func NewDBSCAN(eps float64, minSamples int) *DBSCAN {
	return &DBSCAN{Eps: eps, MinSamples: minSamples}
}

// Fit assigns a cluster label to every point. Labels are non-negative
// integers numbered from 0 in discovery order; unclustered points get
// Noise. The result is deterministic for a fixed input order.
func (d *DBSCAN) Fit(points [][]float64) ([]int, error) {
	if d.Eps <= 0 {
		return nil, errors.New("eps must be positive")
	}
	if d.MinSamples < 1 {
		return nil, errors.New("min samples must be at least 1")
	}
	if len(points) == 0 {
		return []int{}, nil
	}

	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim {
			return nil, errors.New("points must share one dimensionality")
		}
	}

	const unvisited = -2
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = unvisited
	}

	epsSq := d.Eps * d.Eps
	next := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}

		neighbors := d.regionQuery(points, i, epsSq)
		if len(neighbors) < d.MinSamples {
			labels[i] = Noise
			continue
		}

		// i is a core point: seed a new cluster and expand it.
		label := next
		next++
		labels[i] = label

		// neighbors acts as a work queue; it grows while core points
		// keep pulling their own neighborhoods in.
		for at := 0; at < len(neighbors); at++ {
			j := neighbors[at]
			if labels[j] == Noise {
				labels[j] = label // border point, previously rejected
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = label

			reach := d.regionQuery(points, j, epsSq)
			if len(reach) >= d.MinSamples {
				neighbors = append(neighbors, reach...)
			}
		}
	}

	return labels, nil
}

// NumClusters counts the distinct non-noise labels in a labeling.
func NumClusters(labels []int) int {
	max := Noise
	for _, l := range labels {
		if l > max {
			max = l
		}
	}
	return max + 1
}

// regionQuery returns the indices of every point within Eps of point i,
// i itself included.
func (d *DBSCAN) regionQuery(points [][]float64, i int, epsSq float64) []int {
	var neighbors []int
	for j := range points {
		if sqDist(points[i], points[j]) <= epsSq {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for k := range a {
		diff := a[k] - b[k]
		sum += diff * diff
	}
	return sum
}

// Distance returns the Euclidean distance between two points, provided
// for callers that want to sanity-check an eps choice.
func Distance(a, b []float64) float64 {
	return math.Sqrt(sqDist(a, b))
}
