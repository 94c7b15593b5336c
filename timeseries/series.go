package timeseries

import (
	"math"
	"time"
)

// Series is the sequence of readings of a single node.
// Missing readings are stored as NaN.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// Len returns the length of the series, missing readings included.
func (s *Series) Len() int {
	return len(s.Values)
}

// Missing returns the number of NaN readings.
func (s *Series) Missing() int {
	n := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// FillForward returns a copy with every missing reading replaced by the
// previous observed one. Leading gaps take the first observed value.
func (s *Series) FillForward() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	first := math.NaN()
	for _, v := range values {
		if !math.IsNaN(v) {
			first = v
			break
		}
	}
	last := first
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = last
			continue
		}
		last = v
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}
