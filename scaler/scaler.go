// Package scaler provides fitted normalizers for the primary signal.
//
// A Scaler is fitted once on the training inputs and then applied, never
// refitted, to every split. Its fitted state is saved next to the bundles
// so an inference process can apply the identical transform.
package scaler

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrNotFitted     = errors.New("scaler is not fitted")
	ErrAlreadyFitted = errors.New("scaler is already fitted")
	ErrEmptyInput    = errors.New("no observed values to fit")
	ErrUnknownKind   = errors.New("unknown scaler kind")
)

// Scaler kinds accepted by New.
const (
	KindMinMax   = "minmax"
	KindStandard = "standard"
	KindNone     = "none"
)

// Scaler is a fitted per-value transform.
type Scaler interface {
	// Kind names the transform, e.g. "minmax".
	Kind() string
	// Fit learns the transform parameters from data. NaN values are
	// ignored. A scaler can be fitted only once.
	Fit(data []float64) error
	// Transform returns the scaled copy of data. NaN stays NaN.
	Transform(data []float64) ([]float64, error)
	// InverseTransform undoes Transform.
	InverseTransform(data []float64) ([]float64, error)
	// Fitted reports whether Fit has succeeded.
	Fitted() bool
	// Params returns the fitted state.
	Params() map[string]float64
}

type factory func(params map[string]float64) (Scaler, error)

var registry = map[string]factory{
	KindMinMax:   restoreMinMax,
	KindStandard: restoreStandard,
}

// New returns an unfitted scaler of the given kind. KindNone returns a nil
// Scaler and no error: the primary channel is left as is.
func New(kind string) (Scaler, error) {
	switch kind {
	case KindMinMax:
		return NewMinMax(0, 1)
	case KindStandard:
		return &Standard{}, nil
	case KindNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("%w %q, known kinds: %v", ErrUnknownKind, kind, Kinds())
}

// Kinds returns the accepted kind names.
func Kinds() []string {
	kinds := []string{KindNone}
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func observed(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// apply computes v*scale + shift over data, keeping NaN.
func apply(data []float64, scale, shift float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v*scale + shift
	}
	return out
}
