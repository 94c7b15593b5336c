package stats

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary describes the observed values of a signal.
type Summary struct {
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Median  float64 `json:"median"`
}

// Summarize computes a Summary of values, skipping NaN. When nothing is
// observed only Count and Missing are set.
func Summarize(values []float64) (Summary, error) {
	observed := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	s := Summary{Count: len(observed), Missing: len(values) - len(observed)}
	if len(observed) == 0 {
		return s, nil
	}

	var err error
	if s.Min, err = stats.Min(observed); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(observed); err != nil {
		return s, err
	}
	if s.Mean, err = stats.Mean(observed); err != nil {
		return s, err
	}
	if s.Std, err = stats.StandardDeviationPopulation(observed); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(observed); err != nil {
		return s, err
	}
	return s, nil
}
