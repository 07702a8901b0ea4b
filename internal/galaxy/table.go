// Package galaxy models the tabular galaxy record set that flows
// through the clustering pipeline: built by acquisition, reduced by
// cleaning, extended with labels by clustering, and read by reporting.
package galaxy

import (
	"fmt"
	"math"

	"skyclust/internal/astro"
)

// Column names as served by the catalog's result schema. These are the
// catalog's names, not ours; a different catalog service needs a remap
// and a mismatch surfaces as a Select error.
const (
	ColRA       = "RA(deg)"
	ColDec      = "DEC(deg)"
	ColRedshift = "Redshift"
)

// RawTable is a catalog query result before cleaning: a declared
// column list and one value map per row. A key absent from a row's map
// is a missing value.
type RawTable struct {
	Columns []string
	Rows    []map[string]float64
}

// HasColumn reports whether the table declares the named column.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Record is one galaxy. Cluster is meaningful only after Label has
// been applied; -1 marks noise.
type Record struct {
	Index    int
	RA       float64
	Dec      float64
	Redshift float64
	Cluster  int
}

// Table is the cleaned, indexed record set.
type Table struct {
	Records []Record
}

// Select projects a raw catalog table down to the RA, Dec and redshift
// columns. A column the catalog did not declare is an error, matching
// the original lookup-failure behavior. Missing values survive the
// projection as NaN; DropIncomplete removes them.
func Select(raw *RawTable) (*Table, error) {
	for _, col := range []string{ColRA, ColDec, ColRedshift} {
		if !raw.HasColumn(col) {
			return nil, fmt.Errorf("catalog result has no column %q", col)
		}
	}

	t := &Table{Records: make([]Record, 0, len(raw.Rows))}
	for i, row := range raw.Rows {
		t.Records = append(t.Records, Record{
			Index:    i,
			RA:       cell(row, ColRA),
			Dec:      cell(row, ColDec),
			Redshift: cell(row, ColRedshift),
		})
	}
	return t, nil
}

// DropIncomplete removes every record missing a coordinate or a
// redshift and renumbers the survivors from 0. It returns the number
// of records dropped.
func (t *Table) DropIncomplete() int {
	kept := t.Records[:0]
	for _, r := range t.Records {
		if math.IsNaN(r.RA) || math.IsNaN(r.Dec) || math.IsNaN(r.Redshift) {
			continue
		}
		r.Index = len(kept)
		kept = append(kept, r)
	}
	dropped := len(t.Records) - len(kept)
	t.Records = kept
	return dropped
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// CartesianPoints embeds every record's sky position on the unit
// sphere, one 3-vector per record, in record order.
func (t *Table) CartesianPoints() [][]float64 {
	points := make([][]float64, 0, len(t.Records))
	for _, r := range t.Records {
		v := astro.Cartesian(r.RA, r.Dec)
		points = append(points, []float64{v.X, v.Y, v.Z})
	}
	return points
}

// Label attaches one cluster label per record, in record order.
func (t *Table) Label(labels []int) error {
	if len(labels) != len(t.Records) {
		return fmt.Errorf("got %d labels for %d records", len(labels), len(t.Records))
	}
	for i := range t.Records {
		t.Records[i].Cluster = labels[i]
	}
	return nil
}

// Labels returns the cluster label column in record order.
func (t *Table) Labels() []int {
	labels := make([]int, 0, len(t.Records))
	for _, r := range t.Records {
		labels = append(labels, r.Cluster)
	}
	return labels
}

func cell(row map[string]float64, col string) float64 {
	v, ok := row[col]
	if !ok {
		return math.NaN()
	}
	return v
}
