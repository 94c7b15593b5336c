package dataset

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

var splitColors = map[Split]string{
	Train: "#5470c6",
	Val:   "#fac858",
	Test:  "#ee6666",
}

// ReferenceMean returns, for each sample, the mean over nodes of the
// primary channel at the last input position. Samples with no observed
// reading get NaN.
func ReferenceMean(pair Pair) []float64 {
	shape := pair.X.Shape()
	if len(shape) != 4 {
		return nil
	}
	n, last, nodes := shape[0], shape[1]-1, shape[2]
	out := make([]float64, n)
	for s := 0; s < n; s++ {
		sum, cnt := 0.0, 0
		for j := 0; j < nodes; j++ {
			v := pair.X.At(s, last, j, 0)
			if math.IsNaN(v) {
				continue
			}
			sum += v
			cnt++
		}
		if cnt == 0 {
			out[s] = math.NaN()
			continue
		}
		out[s] = sum / float64(cnt)
	}
	return out
}

// PlotSplits renders an HTML line chart of every sample's reference
// reading, one series per split. labels names each sample of the full
// collection, in order.
func PlotSplits(w io.Writer, title string, labels []string, pairs map[Split]Pair) error {
	n := len(labels)
	total := 0
	for _, p := range pairs {
		total += p.X.Len()
	}
	if total != n {
		return fmt.Errorf("%d labels for %d samples", n, total)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1600px", Theme: types.ThemeRoma}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "node mean of the primary channel at the reference step"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)
	line.SetXAxis(labels)

	ranges := Ranges(n)
	for _, name := range Splits {
		pair, ok := pairs[name]
		if !ok {
			continue
		}
		r := ranges[name]
		values := ReferenceMean(pair)
		data := make([]opts.LineData, n)
		for i := range data {
			data[i] = opts.LineData{Value: nil, Symbol: "none"}
		}
		for i, v := range values {
			if !math.IsNaN(v) {
				data[r.Start+i] = opts.LineData{Value: v, Symbol: "none"}
			}
		}
		line.AddSeries(string(name), data, charts.WithLineStyleOpts(opts.LineStyle{Color: splitColors[name]}))
	}

	return line.Render(w)
}
