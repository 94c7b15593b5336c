package stats

import (
	"math"

	"github.com/lucy-seohyun/D2STGNN/timeseries"
)

// ACF calculates the autocorrelation of the series for lags 0 to maxLag.
// Missing readings are filled forward first. Returns nil for constant or
// too short series.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	values := series.FillForward().Values
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 || (n > 0 && math.IsNaN(values[0])) {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// ACFResult represents the result of ACF analysis.
type ACFResult struct {
	Lags       []int
	Values     []float64
	ConfBounds float64 // 95% confidence bounds (±1.96/sqrt(n))
}

// ACFWithConfidence calculates ACF with confidence bounds.
func ACFWithConfidence(series *timeseries.Series, maxLag int) *ACFResult {
	acf := ACF(series, maxLag)
	if acf == nil {
		return nil
	}

	lags := make([]int, len(acf))
	for i := range lags {
		lags[i] = i
	}

	return &ACFResult{
		Lags:       lags,
		Values:     acf,
		ConfBounds: 1.96 / math.Sqrt(float64(series.Len())),
	}
}

// At returns the autocorrelation at lag, or NaN when lag was not computed.
func (r *ACFResult) At(lag int) float64 {
	if r == nil || lag < 0 || lag >= len(r.Values) {
		return math.NaN()
	}
	return r.Values[lag]
}

// SignificantLags returns the lags where ACF values exceed confidence bounds.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ { // Skip lag 0
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}
