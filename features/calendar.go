// Package features derives calendar channels from the time index of a
// reading table and stacks them next to the raw readings.
package features

import (
	"fmt"
	"math"
	"time"

	"github.com/lucy-seohyun/D2STGNN/tensor"
	"github.com/lucy-seohyun/D2STGNN/timeseries"
)

const secondsPerDay = 24 * 60 * 60

// Channel names, in the order they are stacked.
const (
	ChannelValue     = "value"
	ChannelTimeOfDay = "time_of_day"
	ChannelTimeSlot  = "time_slot"
	ChannelDayOfWeek = "day_of_week"
)

// Options selects the channels appended after the raw value.
type Options struct {
	// TimeOfDay appends the fractional position within the calendar day.
	TimeOfDay bool
	// TimeSlotsPerDay appends the index of the time slot the reading falls
	// in, when greater than zero.
	TimeSlotsPerDay int
	// DayOfWeek appends the weekday index, Monday = 0.
	DayOfWeek bool
}

// DefaultOptions returns the channel set used for training data: value,
// time of day and day of week.
func DefaultOptions() Options {
	return Options{TimeOfDay: true, DayOfWeek: true}
}

// Channels returns the channel names produced by o, in order.
func (o Options) Channels() []string {
	names := []string{ChannelValue}
	if o.TimeOfDay {
		names = append(names, ChannelTimeOfDay)
	}
	if o.TimeSlotsPerDay > 0 {
		names = append(names, ChannelTimeSlot)
	}
	if o.DayOfWeek {
		names = append(names, ChannelDayOfWeek)
	}
	return names
}

// TimeOfDay returns the elapsed fraction of t's calendar day in [0, 1),
// measured on the wall clock of t's location.
func TimeOfDay(t time.Time) float64 {
	h, m, s := t.Clock()
	secs := float64(h*3600+m*60+s) + float64(t.Nanosecond())/1e9
	return secs / secondsPerDay
}

// TimeSlot returns the index of the slot t falls in when the day is cut
// into slotsPerDay equal slots. The slot comes from t's wall clock, so gaps
// in the index or a table starting mid-day do not shift it.
func TimeSlot(t time.Time, slotsPerDay int) int {
	slot := int(math.Floor(TimeOfDay(t) * float64(slotsPerDay)))
	if slot >= slotsPerDay {
		slot = slotsPerDay - 1
	}
	return slot
}

// DayOfWeek returns the weekday index of t with Monday = 0 and Sunday = 6.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Augment reshapes the table into (time, node, channel) and fills the
// calendar channels selected by opts. Calendar values are broadcast to
// every node.
func Augment(table *timeseries.Table, opts Options) (*tensor.Dense, error) {
	if table == nil {
		return nil, fmt.Errorf("nil table")
	}
	if opts.TimeSlotsPerDay < 0 {
		return nil, fmt.Errorf("time slots per day must not be negative, got %d", opts.TimeSlotsPerDay)
	}

	rows, nodes := table.Rows(), table.NumNodes()
	nc := len(opts.Channels())
	out := tensor.New(rows, nodes, nc)
	data := out.Data()

	calendar := make([]float64, 0, nc-1)
	for i := 0; i < rows; i++ {
		ts := table.Index[i]
		calendar = calendar[:0]
		if opts.TimeOfDay {
			calendar = append(calendar, TimeOfDay(ts))
		}
		if opts.TimeSlotsPerDay > 0 {
			calendar = append(calendar, float64(TimeSlot(ts, opts.TimeSlotsPerDay)))
		}
		if opts.DayOfWeek {
			calendar = append(calendar, float64(DayOfWeek(ts)))
		}

		base := i * nodes * nc
		for j := 0; j < nodes; j++ {
			cell := data[base+j*nc : base+(j+1)*nc]
			cell[0] = table.At(i, j)
			copy(cell[1:], calendar)
		}
	}

	return out, nil
}
