// Package window turns a feature-augmented time series into supervised
// (input window, target window) samples.
//
// For every reference step t from |min(x)| up to rows-|max(y)| (exclusive)
// the input sample is data[t+x] and the target sample is data[t+y], with x
// and y the input and output offset sets. Samples are stacked along a new
// leading axis, giving (sample, position, node, channel) arrays.
//
// Everything is held in memory. Each of the two results takes
// 8*samples*positions*nodes*channels bytes; see EstimateBytes.
package window

import (
	"errors"
	"fmt"

	"github.com/lucy-seohyun/D2STGNN/features"
	"github.com/lucy-seohyun/D2STGNN/tensor"
	"github.com/lucy-seohyun/D2STGNN/timeseries"
)

var (
	// ErrInsufficientRows is returned when the table is too short to hold
	// a single sample for the requested offsets.
	ErrInsufficientRows = errors.New("insufficient rows for requested windows")
	// ErrOffsetRange is returned when some valid reference step would read
	// outside the table.
	ErrOffsetRange = errors.New("offsets reach outside the table")
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SampleCount returns the number of valid reference steps,
// max(0, rows - |min(x)| - |max(y)|).
func SampleCount(rows int, x, y Offsets) int {
	if len(x) == 0 || len(y) == 0 {
		return 0
	}
	n := rows - abs(x.Min()) - abs(y.Max())
	if n < 0 {
		return 0
	}
	return n
}

// CheckRows returns ErrInsufficientRows, with the required row count, when
// rows cannot hold a single sample.
func CheckRows(rows int, x, y Offsets) error {
	if err := x.Validate(); err != nil {
		return fmt.Errorf("input %w", err)
	}
	if err := y.Validate(); err != nil {
		return fmt.Errorf("output %w", err)
	}
	if SampleCount(rows, x, y) == 0 {
		need := abs(x.Min()) + abs(y.Max()) + 1
		return fmt.Errorf("%w: table has %d rows, input offsets %v and output offsets %v need at least %d",
			ErrInsufficientRows, rows, x, y, need)
	}
	return nil
}

// EstimateBytes returns the memory taken by the input and target sample
// collections together.
func EstimateBytes(samples, inputLen, outputLen, nodes, channels int) int64 {
	return 8 * int64(samples) * int64(inputLen+outputLen) * int64(nodes) * int64(channels)
}

// Windows gathers input and target windows from data, a (time, node,
// channel) array. When no reference step is valid both results have zero
// samples.
func Windows(data *tensor.Dense, x, y Offsets) (inputs, targets *tensor.Dense, err error) {
	if data.Dims() != 3 {
		return nil, nil, fmt.Errorf("%w: expected (time, node, channel) data, got shape %v", tensor.ErrShape, data.Shape())
	}
	if err := x.Validate(); err != nil {
		return nil, nil, fmt.Errorf("input %w", err)
	}
	if err := y.Validate(); err != nil {
		return nil, nil, fmt.Errorf("output %w", err)
	}

	shape := data.Shape()
	rows, nodes, channels := shape[0], shape[1], shape[2]

	minT := abs(x.Min())
	n := SampleCount(rows, x, y)

	inputs = tensor.New(n, len(x), nodes, channels)
	targets = tensor.New(n, len(y), nodes, channels)
	if n == 0 {
		return inputs, targets, nil
	}

	lo, hi := x.Min(), x.Max()
	if y.Min() < lo {
		lo = y.Min()
	}
	if y.Max() > hi {
		hi = y.Max()
	}
	if minT+lo < 0 || minT+n-1+hi >= rows {
		return nil, nil, fmt.Errorf("%w: steps %d..%d with offsets in [%d,%d] on %d rows",
			ErrOffsetRange, minT, minT+n-1, lo, hi, rows)
	}

	for s := 0; s < n; s++ {
		t := minT + s
		gather(inputs.Row(s), data, t, x)
		gather(targets.Row(s), data, t, y)
	}

	return inputs, targets, nil
}

func gather(dst []float64, data *tensor.Dense, t int, offsets Offsets) {
	step := len(dst) / len(offsets)
	for p, o := range offsets {
		copy(dst[p*step:(p+1)*step], data.Row(t+o))
	}
}

// Build augments table with the calendar channels selected by opts and
// slices it into input and target windows.
func Build(table *timeseries.Table, x, y Offsets, opts features.Options) (inputs, targets *tensor.Dense, err error) {
	data, err := features.Augment(table, opts)
	if err != nil {
		return nil, nil, err
	}
	return Windows(data, x, y)
}
