package dataset

import (
	"fmt"
	"math"

	"github.com/lucy-seohyun/D2STGNN/tensor"
)

// Split names one partition of the sample axis.
type Split string

const (
	Train Split = "train"
	Val   Split = "val"
	Test  Split = "test"
)

// Splits lists the partitions in the order they are written.
var Splits = []Split{Train, Val, Test}

// Split proportions. Val takes what train and test leave.
const (
	TrainRatio = 0.7
	TestRatio  = 0.2
)

// Pair is the input and target samples of one split.
type Pair struct {
	X, Y *tensor.Dense
}

// Range is a half-open interval [Start, End) of sample indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns End - Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// Sizes returns the number of train, val and test samples out of n.
// Train and test are rounded half to even and val absorbs the remainder,
// so the three always sum to n.
func Sizes(n int) (train, val, test int) {
	test = int(math.RoundToEven(float64(n) * TestRatio))
	train = int(math.RoundToEven(float64(n) * TrainRatio))
	val = n - test - train
	return train, val, test
}

// Ranges returns the sample index ranges of each split: train is the
// head, val follows it and test is the tail.
func Ranges(n int) map[Split]Range {
	train, val, test := Sizes(n)
	return map[Split]Range{
		Train: {0, train},
		Val:   {train, train + val},
		Test:  {n - test, n},
	}
}

// SplitSamples partitions inputs and targets along the sample axis. Each
// split gets its own copy of the data.
func SplitSamples(inputs, targets *tensor.Dense) (map[Split]Pair, error) {
	if inputs.Len() != targets.Len() {
		return nil, fmt.Errorf("%w: %d input samples, %d target samples", tensor.ErrShape, inputs.Len(), targets.Len())
	}
	out := make(map[Split]Pair, len(Splits))
	for name, r := range Ranges(inputs.Len()) {
		out[name] = Pair{
			X: inputs.Slice(r.Start, r.End),
			Y: targets.Slice(r.Start, r.End),
		}
	}
	return out, nil
}
