package window

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOffsets is returned for empty or unsorted offset sets.
var ErrInvalidOffsets = errors.New("invalid offsets")

// Offsets lists timesteps relative to a reference step, sorted ascending.
type Offsets []int

// InputOffsets returns the seqLen trailing steps ending at the reference
// step: -(seqLen-1), ..., -1, 0.
func InputOffsets(seqLen int) Offsets {
	if seqLen <= 0 {
		return Offsets{}
	}
	out := make(Offsets, seqLen)
	for i := range out {
		out[i] = i - (seqLen - 1)
	}
	return out
}

// OutputOffsets returns the future steps start, start+1, ..., end. The
// range is inclusive, so start > 1 skips ahead and shortens the window.
func OutputOffsets(start, end int) Offsets {
	if end < start {
		return Offsets{}
	}
	out := make(Offsets, 0, end-start+1)
	for o := start; o <= end; o++ {
		out = append(out, o)
	}
	return out
}

// Validate checks that o is non-empty and sorted ascending.
func (o Offsets) Validate() error {
	if len(o) == 0 {
		return fmt.Errorf("%w: empty offset set", ErrInvalidOffsets)
	}
	for i := 1; i < len(o); i++ {
		if o[i] < o[i-1] {
			return fmt.Errorf("%w: %v is not sorted ascending", ErrInvalidOffsets, o)
		}
	}
	return nil
}

// Min returns the first offset. o must be valid.
func (o Offsets) Min() int {
	return o[0]
}

// Max returns the last offset. o must be valid.
func (o Offsets) Max() int {
	return o[len(o)-1]
}

// Column returns the offsets as an (n, 1) column, the layout stored in
// bundles.
func (o Offsets) Column() (values []int64, shape []int) {
	values = make([]int64, len(o))
	for i, v := range o {
		values[i] = int64(v)
	}
	return values, []int{len(o), 1}
}

func (o Offsets) String() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
