package scaler

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// MinMax maps the fitted [min, max] onto [Low, High]. Values outside the
// fitted range map outside [Low, High]. A constant input gets scale 1.
type MinMax struct {
	Low, High float64

	dataMin, dataMax float64
	scale, shift     float64
	fitted           bool
}

// NewMinMax returns an unfitted MinMax scaler for the target range.
func NewMinMax(low, high float64) (*MinMax, error) {
	if low >= high {
		return nil, fmt.Errorf("minimum of desired feature range must be smaller than maximum, got (%g, %g)", low, high)
	}
	return &MinMax{Low: low, High: high}, nil
}

func (m *MinMax) Kind() string {
	return KindMinMax
}

func (m *MinMax) Fit(data []float64) error {
	if m.fitted {
		return ErrAlreadyFitted
	}
	values := observed(data)
	if len(values) == 0 {
		return ErrEmptyInput
	}
	min, err := stats.Min(values)
	if err != nil {
		return err
	}
	max, err := stats.Max(values)
	if err != nil {
		return err
	}

	m.dataMin, m.dataMax = min, max
	m.setScale()
	m.fitted = true
	return nil
}

func (m *MinMax) setScale() {
	dataRange := m.dataMax - m.dataMin
	if dataRange == 0 {
		dataRange = 1
	}
	m.scale = (m.High - m.Low) / dataRange
	m.shift = m.Low - m.dataMin*m.scale
}

func (m *MinMax) Transform(data []float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return apply(data, m.scale, m.shift), nil
}

func (m *MinMax) InverseTransform(data []float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return apply(data, 1/m.scale, -m.shift/m.scale), nil
}

func (m *MinMax) Fitted() bool {
	return m.fitted
}

func (m *MinMax) Params() map[string]float64 {
	return map[string]float64{
		"feature_range_min": m.Low,
		"feature_range_max": m.High,
		"data_min":          m.dataMin,
		"data_max":          m.dataMax,
		"scale":             m.scale,
		"min":               m.shift,
	}
}

func restoreMinMax(params map[string]float64) (Scaler, error) {
	m, err := NewMinMax(params["feature_range_min"], params["feature_range_max"])
	if err != nil {
		return nil, err
	}
	dataMin, ok1 := params["data_min"]
	dataMax, ok2 := params["data_max"]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("minmax params need data_min and data_max")
	}
	m.dataMin, m.dataMax = dataMin, dataMax
	m.setScale()
	m.fitted = true
	return m, nil
}
