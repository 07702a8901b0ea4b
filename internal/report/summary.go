// Package report turns a labeled galaxy table into its terminal
// outputs: per-cluster summary statistics, CSV and Excel exports, and
// the two rendered charts.
package report

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"skyclust/internal/cluster"
	"skyclust/internal/galaxy"
)

// ClusterSummary aggregates one non-noise cluster.
type ClusterSummary struct {
	Cluster      int     `json:"cluster"`
	Galaxies     int     `json:"galaxies"`
	MeanRedshift float64 `json:"mean_redshift"`
	MinRA        float64 `json:"min_ra"`
	MaxRA        float64 `json:"max_ra"`
	MinDec       float64 `json:"min_dec"`
	MaxDec       float64 `json:"max_dec"`
}

// Summarize computes one summary per non-noise cluster, ordered by
// label. Noise records are excluded entirely.
func Summarize(t *galaxy.Table) []ClusterSummary {
	byLabel := make(map[int][]galaxy.Record)
	for _, r := range t.Records {
		if r.Cluster == cluster.Noise {
			continue
		}
		byLabel[r.Cluster] = append(byLabel[r.Cluster], r)
	}

	labels := make([]int, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	summaries := make([]ClusterSummary, 0, len(labels))
	for _, l := range labels {
		members := byLabel[l]
		redshifts := make([]float64, 0, len(members))
		s := ClusterSummary{
			Cluster:  l,
			Galaxies: len(members),
			MinRA:    members[0].RA,
			MaxRA:    members[0].RA,
			MinDec:   members[0].Dec,
			MaxDec:   members[0].Dec,
		}
		for _, m := range members {
			redshifts = append(redshifts, m.Redshift)
			if m.RA < s.MinRA {
				s.MinRA = m.RA
			}
			if m.RA > s.MaxRA {
				s.MaxRA = m.RA
			}
			if m.Dec < s.MinDec {
				s.MinDec = m.Dec
			}
			if m.Dec > s.MaxDec {
				s.MaxDec = m.Dec
			}
		}
		s.MeanRedshift = stat.Mean(redshifts, nil)
		summaries = append(summaries, s)
	}
	return summaries
}

// FormatTable renders the summaries as an aligned text table for
// terminal output.
func FormatTable(summaries []ClusterSummary) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Cluster\tGalaxies\tAvgRedshift\tMinRA\tMaxRA\tMinDec\tMaxDec")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%d\t%.5f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.Cluster, s.Galaxies, s.MeanRedshift, s.MinRA, s.MaxRA, s.MinDec, s.MaxDec)
	}
	w.Flush()
	return b.String()
}
