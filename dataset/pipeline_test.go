package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucy-seohyun/D2STGNN/npz"
	"github.com/lucy-seohyun/D2STGNN/scaler"
	"github.com/lucy-seohyun/D2STGNN/tensor"
	"github.com/lucy-seohyun/D2STGNN/window"
)

// rising returns n samples whose primary channel grows with the sample
// index, so val and test exceed the train range. Channel 1 holds a marker
// that must survive normalization.
func rising(n int) (*tensor.Dense, *tensor.Dense) {
	x := tensor.New(n, 3, 2, 2)
	y := tensor.New(n, 2, 2, 2)
	for s := 0; s < n; s++ {
		for p := 0; p < 3; p++ {
			for j := 0; j < 2; j++ {
				x.Set(float64(s+p), s, p, j, 0)
				x.Set(0.25, s, p, j, 1)
			}
		}
		for p := 0; p < 2; p++ {
			for j := 0; j < 2; j++ {
				y.Set(float64(s+3+p), s, p, j, 0)
				y.Set(3, s, p, j, 1)
			}
		}
	}
	return x, y
}

func readBundle(t *testing.T, path string) map[string]npz.Array {
	r, err := npz.Open(path)
	require.NoError(t, err)
	defer r.Close()

	out := map[string]npz.Array{}
	for _, k := range r.Keys() {
		a, err := r.Read(k)
		require.NoError(t, err)
		out[k] = a
	}
	return out
}

func TestPipelineRunWithScaler(t *testing.T) {
	dir := t.TempDir()
	x, y := rising(100)
	xOff, yOff := window.Offsets{-2, -1, 0}, window.Offsets{1, 2}

	s, err := scaler.New(scaler.KindMinMax)
	require.NoError(t, err)

	p := &Pipeline{OutputDir: dir, Scaler: s, Compress: true}
	res, err := p.Run(x, y, xOff, yOff)
	require.NoError(t, err)

	require.Len(t, res.Splits, 3)
	assert.Equal(t, Train, res.Splits[0].Name)
	assert.Equal(t, []int{70, 3, 2, 2}, res.Splits[0].XShape)
	assert.Equal(t, []int{10, 2, 2, 2}, res.Splits[1].YShape)
	assert.Equal(t, Range{80, 100}, res.Splits[2].Range)
	assert.Equal(t, scaler.KindMinMax, res.ScalerKind)

	// Train inputs span 0..71, so they map onto [0, 1] exactly.
	train := readBundle(t, filepath.Join(dir, "train.npz"))
	assert.Equal(t, []string{KeyX, KeyXOffsets, KeyY, KeyYOffsets}, sortedKeys(train))
	xs, err := tensor.FromData(train[KeyX].Floats, train[KeyX].Shape...)
	require.NoError(t, err)
	primary := xs.Channel(0)
	assert.InDelta(t, 0.0, minOf(primary), 1e-12)
	assert.InDelta(t, 1.0, maxOf(primary), 1e-12)
	for _, v := range xs.Channel(1) {
		assert.Equal(t, 0.25, v)
	}

	// Test values exceed the train range and are kept above 1.
	test := readBundle(t, filepath.Join(dir, "test.npz"))
	ts, err := tensor.FromData(test[KeyY].Floats, test[KeyY].Shape...)
	require.NoError(t, err)
	assert.Greater(t, maxOf(ts.Channel(0)), 1.0)
	for _, v := range ts.Channel(1) {
		assert.Equal(t, 3.0, v)
	}

	assert.Equal(t, []int{3, 1}, test[KeyXOffsets].Shape)
	assert.Equal(t, []int64{-2, -1, 0}, test[KeyXOffsets].Ints)
	assert.Equal(t, []int{2, 1}, test[KeyYOffsets].Shape)
	assert.Equal(t, []int64{1, 2}, test[KeyYOffsets].Ints)

	loaded, err := scaler.Load(filepath.Join(dir, DefaultScalerFile))
	require.NoError(t, err)
	out, err := loaded.Transform([]float64{0, 71})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1}, out, 1e-12)
}

func TestPipelineRunWithoutScaler(t *testing.T) {
	dir := t.TempDir()
	x, y := rising(20)

	p := &Pipeline{OutputDir: dir}
	res, err := p.Run(x, y, window.Offsets{-2, -1, 0}, window.Offsets{1, 2})
	require.NoError(t, err)
	assert.Empty(t, res.ScalerKind)

	_, err = os.Stat(filepath.Join(dir, DefaultScalerFile))
	assert.True(t, os.IsNotExist(err))

	val := readBundle(t, filepath.Join(dir, "val.npz"))
	train, nVal, _ := Sizes(20)
	require.Equal(t, []int{nVal, 3, 2, 2}, val[KeyX].Shape)
	assert.Equal(t, float64(train), val[KeyX].Floats[0], "val starts right after train, unscaled")
}

func TestPipelineCustomScalerFile(t *testing.T) {
	dir := t.TempDir()
	x, y := rising(10)

	p := &Pipeline{OutputDir: dir, Scaler: &scaler.Standard{}, ScalerFile: "norm.json"}
	res, err := p.Run(x, y, window.Offsets{-2, -1, 0}, window.Offsets{1, 2})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "norm.json"), res.ScalerPath)

	_, err = scaler.Load(res.ScalerPath)
	assert.NoError(t, err)
}

func TestPipelineNoTrainingSamples(t *testing.T) {
	dir := t.TempDir()
	x, y := rising(0)

	s, err := scaler.New(scaler.KindMinMax)
	require.NoError(t, err)

	p := &Pipeline{OutputDir: dir, Scaler: s}
	_, err = p.Run(x, y, window.Offsets{0}, window.Offsets{1})
	assert.True(t, errors.Is(err, ErrNoTrainingSamples))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is written when fitting fails")
}

func TestPipelineMissingOutputDir(t *testing.T) {
	x, y := rising(10)
	p := &Pipeline{OutputDir: filepath.Join(t.TempDir(), "missing")}
	_, err := p.Run(x, y, window.Offsets{-2, -1, 0}, window.Offsets{1, 2})
	assert.Error(t, err)
}

func TestWriteBundle(t *testing.T) {
	x, y := rising(4)
	dir := t.TempDir()
	path := filepath.Join(dir, "val.npz")

	require.NoError(t, WriteBundle(path, Pair{X: x, Y: y}, window.Offsets{-2, -1, 0}, window.Offsets{1, 2}, false))
	got := readBundle(t, path)
	assert.Equal(t, []int{4, 3, 2, 2}, got[KeyX].Shape)
	assert.Equal(t, x.Data(), got[KeyX].Floats)
	assert.Equal(t, []int64{1, 2}, got[KeyYOffsets].Ints)

	err := WriteBundle(filepath.Join(dir, "missing", "test.npz"), Pair{X: x, Y: y}, window.Offsets{0}, window.Offsets{1}, true)
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNormalizeFitsOnTrainOnly(t *testing.T) {
	x, y := rising(100)
	pairs, err := SplitSamples(x, y)
	require.NoError(t, err)

	s, err := scaler.NewMinMax(0, 1)
	require.NoError(t, err)
	require.NoError(t, Normalize(s, pairs))

	params := s.Params()
	assert.Equal(t, 0.0, params["data_min"])
	assert.Equal(t, 71.0, params["data_max"])

	// A second fit is rejected.
	assert.True(t, errors.Is(Normalize(s, pairs), scaler.ErrAlreadyFitted))
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	x, y := rising(30)
	xOff, yOff := window.Offsets{-2, -1, 0}, window.Offsets{1, 2}

	p := &Pipeline{OutputDir: dir, Compress: true}
	res, err := p.Run(x, y, xOff, yOff)
	require.NoError(t, err)

	m := NewManifest("readings.csv", 34, []string{"a", "b"}, []string{"value", "time_of_day"}, xOff, yOff)
	m.Record(res)
	path, err := m.Write(dir)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, m.RunID, got.RunID)
	assert.Len(t, got.RunID, 36)
	assert.Equal(t, 30, got.Samples)
	assert.Equal(t, xOff, got.XOffsets)
	require.Len(t, got.Splits, 3)
	assert.Equal(t, Val, got.Splits[1].Name)
}

func TestPlotSplits(t *testing.T) {
	x, y := rising(20)
	x.Set(math.NaN(), 0, 2, 0, 0)
	x.Set(math.NaN(), 0, 2, 1, 0)
	pairs, err := SplitSamples(x, y)
	require.NoError(t, err)

	means := ReferenceMean(pairs[Train])
	assert.True(t, math.IsNaN(means[0]))
	assert.Equal(t, 3.0, means[1])

	labels := make([]string, 20)
	for i := range labels {
		labels[i] = string(rune('A' + i))
	}

	var buf bytes.Buffer
	require.NoError(t, PlotSplits(&buf, "CHUNGNAM", labels, pairs))
	html := buf.String()
	assert.True(t, strings.Contains(html, "CHUNGNAM"))
	for _, name := range Splits {
		assert.Contains(t, html, string(name))
	}

	assert.Error(t, PlotSplits(&buf, "short", labels[:3], pairs))
}

func sortedKeys(m map[string]npz.Array) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func minOf(v []float64) float64 {
	m := math.Inf(1)
	for _, x := range v {
		m = math.Min(m, x)
	}
	return m
}

func maxOf(v []float64) float64 {
	m := math.Inf(-1)
	for _, x := range v {
		m = math.Max(m, x)
	}
	return m
}
