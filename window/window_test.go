package window

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucy-seohyun/D2STGNN/features"
	"github.com/lucy-seohyun/D2STGNN/tensor"
	"github.com/lucy-seohyun/D2STGNN/timeseries"
)

func makeTable(t *testing.T, rows, nodes int) *timeseries.Table {
	base := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	index := make([]time.Time, rows)
	values := make([][]float64, rows)
	names := make([]string, nodes)
	for j := range names {
		names[j] = string(rune('a' + j))
	}
	for i := range index {
		index[i] = base.Add(time.Duration(i) * time.Hour)
		values[i] = make([]float64, nodes)
		for j := range values[i] {
			values[i][j] = float64(10*i + j)
		}
	}
	table, err := timeseries.NewTable(index, names, values)
	require.NoError(t, err)
	return table
}

func TestInputOffsets(t *testing.T) {
	assert.Equal(t, Offsets{-5, -4, -3, -2, -1, 0}, InputOffsets(6))
	assert.Equal(t, Offsets{0}, InputOffsets(1))
	assert.Empty(t, InputOffsets(0))
}

func TestOutputOffsets(t *testing.T) {
	assert.Equal(t, Offsets{1, 2, 3, 4, 5, 6}, OutputOffsets(1, 6))
	assert.Equal(t, Offsets{3, 4, 5, 6}, OutputOffsets(3, 6))
	assert.Empty(t, OutputOffsets(7, 6))
}

func TestOffsetsValidate(t *testing.T) {
	assert.NoError(t, Offsets{-2, -1, 0}.Validate())
	assert.NoError(t, Offsets{4}.Validate())
	assert.True(t, errors.Is(Offsets{}.Validate(), ErrInvalidOffsets))
	assert.True(t, errors.Is(Offsets{0, -1}.Validate(), ErrInvalidOffsets))
}

func TestOffsetsColumn(t *testing.T) {
	values, shape := Offsets{-2, -1, 0}.Column()
	assert.Equal(t, []int64{-2, -1, 0}, values)
	assert.Equal(t, []int{3, 1}, shape)
	assert.Equal(t, "[-2 -1 0]", Offsets{-2, -1, 0}.String())
}

func TestSampleCount(t *testing.T) {
	tests := []struct {
		rows     int
		x, y     Offsets
		expected int
	}{
		{20, Offsets{-2, -1, 0}, Offsets{1, 2}, 16},
		{100, InputOffsets(6), OutputOffsets(1, 6), 89},
		{7, Offsets{-2, -1, 0}, Offsets{1, 2}, 3},
		{4, Offsets{-2, -1, 0}, Offsets{1, 2}, 0},
		{3, Offsets{-2, -1, 0}, Offsets{1, 2}, 0},
		{0, Offsets{0}, Offsets{1}, 0},
		{5, Offsets{}, Offsets{1}, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SampleCount(tt.rows, tt.x, tt.y), "rows=%d x=%v y=%v", tt.rows, tt.x, tt.y)
	}
}

func TestCheckRows(t *testing.T) {
	x, y := InputOffsets(6), OutputOffsets(1, 6)

	assert.NoError(t, CheckRows(12, x, y))

	err := CheckRows(11, x, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientRows))
	assert.Contains(t, err.Error(), "at least 12")

	assert.True(t, errors.Is(CheckRows(100, Offsets{}, y), ErrInvalidOffsets))
	assert.True(t, errors.Is(CheckRows(100, x, Offsets{2, 1}), ErrInvalidOffsets))
}

func TestBuildScenario(t *testing.T) {
	table := makeTable(t, 20, 3)
	x, y := Offsets{-2, -1, 0}, Offsets{1, 2}

	inputs, targets, err := Build(table, x, y, features.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{16, 3, 3, 3}, inputs.Shape())
	assert.Equal(t, []int{16, 2, 3, 3}, targets.Shape())

	// First sample is anchored at t=2, last at t=17.
	for s := 0; s < 16; s++ {
		ref := s + 2
		for p, o := range x {
			for j := 0; j < 3; j++ {
				assert.Equal(t, float64(10*(ref+o)+j), inputs.At(s, p, j, 0))
			}
		}
		for p, o := range y {
			for j := 0; j < 3; j++ {
				assert.Equal(t, float64(10*(ref+o)+j), targets.At(s, p, j, 0))
			}
		}
	}
	assert.Equal(t, 190.0, targets.At(15, 1, 0, 0))
}

func TestBuildCalendarChannelsFollowRows(t *testing.T) {
	table := makeTable(t, 30, 2)
	x, y := Offsets{-1, 0}, Offsets{1}

	inputs, targets, err := Build(table, x, y, features.DefaultOptions())
	require.NoError(t, err)

	for s := 0; s < inputs.Len(); s++ {
		ref := table.Index[s+1]
		assert.InDelta(t, features.TimeOfDay(ref), inputs.At(s, 1, 1, 1), 1e-12)
		assert.Equal(t, float64(features.DayOfWeek(ref)), inputs.At(s, 1, 0, 2))

		next := table.Index[s+2]
		assert.InDelta(t, features.TimeOfDay(next), targets.At(s, 0, 0, 1), 1e-12)
	}
}

func TestBuildChannelCount(t *testing.T) {
	table := makeTable(t, 10, 2)
	x, y := Offsets{-1, 0}, Offsets{1}

	for _, opts := range []features.Options{
		{},
		{TimeOfDay: true},
		{DayOfWeek: true},
		{TimeOfDay: true, DayOfWeek: true},
	} {
		inputs, targets, err := Build(table, x, y, opts)
		require.NoError(t, err)
		expected := len(opts.Channels())
		assert.Equal(t, expected, inputs.Channels())
		assert.Equal(t, expected, targets.Channels())
	}
}

func TestBuildSkipAhead(t *testing.T) {
	table := makeTable(t, 20, 1)
	x, y := InputOffsets(3), OutputOffsets(3, 4)

	inputs, targets, err := Build(table, x, y, features.Options{})
	require.NoError(t, err)

	assert.Equal(t, 14, inputs.Len())
	assert.Equal(t, []int{14, 2, 1, 1}, targets.Shape())
	assert.Equal(t, 50.0, targets.At(0, 0, 0, 0))
	assert.Equal(t, 60.0, targets.At(0, 1, 0, 0))
}

func TestBuildEmpty(t *testing.T) {
	table := makeTable(t, 4, 3)
	x, y := Offsets{-2, -1, 0}, Offsets{1, 2}

	inputs, targets, err := Build(table, x, y, features.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3, 3, 3}, inputs.Shape())
	assert.Equal(t, []int{0, 2, 3, 3}, targets.Shape())
}

func TestWindowsErrors(t *testing.T) {
	data := tensor.New(10, 2, 1)

	_, _, err := Windows(tensor.New(10, 2), Offsets{0}, Offsets{1})
	assert.True(t, errors.Is(err, tensor.ErrShape))

	_, _, err = Windows(data, Offsets{0, -1}, Offsets{1})
	assert.True(t, errors.Is(err, ErrInvalidOffsets))

	_, _, err = Windows(data, Offsets{0}, Offsets{})
	assert.True(t, errors.Is(err, ErrInvalidOffsets))

	// Targets reaching further back than the inputs leave the table.
	_, _, err = Windows(data, Offsets{-1, 0}, Offsets{-3, 1})
	assert.True(t, errors.Is(err, ErrOffsetRange))
}

func TestSampleCountMatchesWindows(t *testing.T) {
	for rows := 1; rows < 15; rows++ {
		data := tensor.New(rows, 2, 1)
		x, y := InputOffsets(3), OutputOffsets(1, 2)
		inputs, targets, err := Windows(data, x, y)
		require.NoError(t, err)
		assert.Equal(t, SampleCount(rows, x, y), inputs.Len())
		assert.Equal(t, inputs.Len(), targets.Len())
	}
}

func TestEstimateBytes(t *testing.T) {
	assert.Equal(t, int64(8*16*5*3*3), EstimateBytes(16, 3, 2, 3, 3))
}
