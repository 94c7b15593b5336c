// Package tensor provides a dense row-major N-dimensional float64 array.
//
// Dense holds the windowed sample collections: (time, node, channel) after
// feature augmentation and (sample, position, node, channel) after windowing.
// Axis 0 can be sliced, and the trailing axis is addressed as channels.
package tensor

import (
	"errors"
	"fmt"
)

// ErrShape is returned when an operation gets data of the wrong size.
var ErrShape = errors.New("shape mismatch")

// Dense is a row-major N-dimensional array.
type Dense struct {
	shape   []int
	strides []int
	data    []float64
}

// New allocates a zeroed array of the given shape.
func New(shape ...int) *Dense {
	d, err := FromData(make([]float64, size(shape)), shape...)
	if err != nil {
		panic(err)
	}
	return d
}

// FromData wraps data with the given shape without copying.
func FromData(data []float64, shape ...int) (*Dense, error) {
	for _, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative dimension in %v", ErrShape, shape)
		}
	}
	if len(data) != size(shape) {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShape, len(data), shape)
	}
	s := append([]int(nil), shape...)
	return &Dense{shape: s, strides: strides(s), data: data}, nil
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

// Shape returns a copy of the array shape.
func (d *Dense) Shape() []int {
	return append([]int(nil), d.shape...)
}

// Dims returns the number of axes.
func (d *Dense) Dims() int {
	return len(d.shape)
}

// Len returns the size of axis 0.
func (d *Dense) Len() int {
	if len(d.shape) == 0 {
		return 0
	}
	return d.shape[0]
}

// Size returns the total number of elements.
func (d *Dense) Size() int {
	return len(d.data)
}

// Data returns the backing slice in row-major order.
func (d *Dense) Data() []float64 {
	return d.data
}

func (d *Dense) offset(idx []int) int {
	if len(idx) != len(d.shape) {
		panic(fmt.Sprintf("tensor: %d indices for %d axes", len(idx), len(d.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= d.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d of size %d", v, i, d.shape[i]))
		}
		off += v * d.strides[i]
	}
	return off
}

// At returns the element at idx.
func (d *Dense) At(idx ...int) float64 {
	return d.data[d.offset(idx)]
}

// Set stores v at idx.
func (d *Dense) Set(v float64, idx ...int) {
	d.data[d.offset(idx)] = v
}

// Row returns the contiguous block of sub-array i along axis 0. The result
// aliases the array.
func (d *Dense) Row(i int) []float64 {
	if i < 0 || i >= d.Len() {
		panic(fmt.Sprintf("tensor: row %d out of range for axis 0 of size %d", i, d.Len()))
	}
	st := d.strides[0]
	return d.data[i*st : (i+1)*st]
}

// Slice returns a copy of rows [start, end) along axis 0.
func (d *Dense) Slice(start, end int) *Dense {
	if start < 0 || end > d.Len() || start > end {
		panic(fmt.Sprintf("tensor: invalid slice [%d:%d] of axis 0 with size %d", start, end, d.Len()))
	}
	shape := d.Shape()
	shape[0] = end - start
	st := d.strides[0]
	data := make([]float64, (end-start)*st)
	copy(data, d.data[start*st:end*st])
	return &Dense{shape: shape, strides: strides(shape), data: data}
}

// Channels returns the size of the trailing axis.
func (d *Dense) Channels() int {
	if len(d.shape) == 0 {
		return 0
	}
	return d.shape[len(d.shape)-1]
}

// Channel returns channel c of every element, flattened in row-major order
// of the leading axes.
func (d *Dense) Channel(c int) []float64 {
	nc := d.Channels()
	if c < 0 || c >= nc {
		panic(fmt.Sprintf("tensor: channel %d out of range [0,%d)", c, nc))
	}
	out := make([]float64, len(d.data)/nc)
	for i := range out {
		out[i] = d.data[i*nc+c]
	}
	return out
}

// SetChannel overwrites channel c with values laid out as returned by Channel.
func (d *Dense) SetChannel(c int, values []float64) error {
	nc := d.Channels()
	if c < 0 || c >= nc {
		return fmt.Errorf("%w: channel %d out of range [0,%d)", ErrShape, c, nc)
	}
	if len(values)*nc != len(d.data) {
		return fmt.Errorf("%w: %d values for channel of %v", ErrShape, len(values), d.shape)
	}
	for i, v := range values {
		d.data[i*nc+c] = v
	}
	return nil
}
