package scaler

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Standard maps values to standard scores using the fitted mean and
// population standard deviation. A constant input gets scale 1.
type Standard struct {
	mean, std float64
	fitted    bool
}

func (s *Standard) Kind() string {
	return KindStandard
}

func (s *Standard) Fit(data []float64) error {
	if s.fitted {
		return ErrAlreadyFitted
	}
	values := observed(data)
	if len(values) == 0 {
		return ErrEmptyInput
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return err
	}
	std, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return err
	}

	s.mean, s.std = mean, std
	s.fitted = true
	return nil
}

func (s *Standard) divisor() float64 {
	if s.std == 0 {
		return 1
	}
	return s.std
}

func (s *Standard) Transform(data []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	d := s.divisor()
	return apply(data, 1/d, -s.mean/d), nil
}

func (s *Standard) InverseTransform(data []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	return apply(data, s.divisor(), s.mean), nil
}

func (s *Standard) Fitted() bool {
	return s.fitted
}

func (s *Standard) Params() map[string]float64 {
	return map[string]float64{
		"mean":  s.mean,
		"scale": s.divisor(),
	}
}

func restoreStandard(params map[string]float64) (Scaler, error) {
	mean, ok1 := params["mean"]
	scale, ok2 := params["scale"]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("standard params need mean and scale")
	}
	return &Standard{mean: mean, std: scale, fitted: true}, nil
}
