package timeseries

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyTable is returned when a table has no rows or no nodes.
	ErrEmptyTable = errors.New("table must have at least one row and one node")
	// ErrUnorderedIndex is returned when the time index is not strictly increasing.
	ErrUnorderedIndex = errors.New("time index must be strictly increasing")
)

// Table holds readings of several spatial nodes over a shared time index.
// Row i of Values is the reading of every node at Index[i]; column j is
// the node named Nodes[j].
type Table struct {
	Index  []time.Time
	Nodes  []string
	Values *mat.Dense
}

// NewTable builds a table from row-major readings. rows[i] must hold one
// value per node.
func NewTable(index []time.Time, nodes []string, rows [][]float64) (*Table, error) {
	if len(index) == 0 || len(nodes) == 0 {
		return nil, ErrEmptyTable
	}
	if len(rows) != len(index) {
		return nil, fmt.Errorf("got %d rows for %d timestamps", len(rows), len(index))
	}
	for i := 1; i < len(index); i++ {
		if !index[i].After(index[i-1]) {
			return nil, fmt.Errorf("%w: row %d (%s) is not after row %d (%s)",
				ErrUnorderedIndex, i, index[i].Format(time.RFC3339), i-1, index[i-1].Format(time.RFC3339))
		}
	}

	data := make([]float64, 0, len(rows)*len(nodes))
	for i, row := range rows {
		if len(row) != len(nodes) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(nodes))
		}
		data = append(data, row...)
	}

	return &Table{
		Index:  index,
		Nodes:  nodes,
		Values: mat.NewDense(len(index), len(nodes), data),
	}, nil
}

// Rows returns the number of timesteps.
func (t *Table) Rows() int {
	r, _ := t.Values.Dims()
	return r
}

// NumNodes returns the number of spatial nodes.
func (t *Table) NumNodes() int {
	_, c := t.Values.Dims()
	return c
}

// At returns the reading of node j at row i.
func (t *Table) At(i, j int) float64 {
	return t.Values.At(i, j)
}

// Node returns the series of node j.
func (t *Table) Node(j int) *Series {
	values := mat.Col(nil, j, t.Values)
	timestamps := make([]time.Time, len(t.Index))
	copy(timestamps, t.Index)
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       t.Nodes[j],
	}
}
