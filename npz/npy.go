// Package npz reads and writes NumPy .npz bundles.
//
// Bundles are read with github.com/sbinet/npyio. Entries are written here
// because their shape comes from the sample tensor, not from the Go type of
// the backing slice: a flat []float64 holds a (sample, position, node,
// channel) array. Only little-endian float64 ('<f8') and int64 ('<i8')
// arrays in C order are supported.
package npz

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Supported dtype descriptors.
const (
	Float64 = "<f8"
	Int64   = "<i8"
)

var (
	magic = []byte("\x93NUMPY")

	// ErrFormat is returned for arrays that are not supported.
	ErrFormat = errors.New("unsupported npy format")
)

// Array is an n-dimensional array in C order. Exactly one of Floats and
// Ints is used, according to Descr.
type Array struct {
	Descr  string
	Shape  []int
	Floats []float64
	Ints   []int64
}

// NewFloat64 wraps float64 data with a shape.
func NewFloat64(shape []int, data []float64) Array {
	return Array{Descr: Float64, Shape: shape, Floats: data}
}

// NewInt64 wraps int64 data with a shape.
func NewInt64(shape []int, data []int64) Array {
	return Array{Descr: Int64, Shape: shape, Ints: data}
}

// Len returns the number of elements implied by the shape.
func (a Array) Len() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

func (a Array) validate() error {
	var n int
	switch a.Descr {
	case Float64:
		n = len(a.Floats)
	case Int64:
		n = len(a.Ints)
	default:
		return fmt.Errorf("%w: dtype %q", ErrFormat, a.Descr)
	}
	if n != a.Len() {
		return fmt.Errorf("%w: %d elements for shape %v", ErrFormat, n, a.Shape)
	}
	return nil
}

func shapeTuple(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", shape[0])
	}
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// header returns the version 1.0 header: magic, version, length and the
// dict padded with spaces so the payload starts on a 64 byte boundary.
func header(a Array) []byte {
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", a.Descr, shapeTuple(a.Shape))
	const preamble = 10 // magic(6) + version(2) + header length(2)
	total := preamble + len(dict) + 1
	if rem := total % 64; rem != 0 {
		dict += strings.Repeat(" ", 64-rem)
	}
	dict += "\n"

	var buf bytes.Buffer
	buf.Write(magic)
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(dict)))
	buf.WriteString(dict)
	return buf.Bytes()
}

// WriteArray encodes a as a .npy stream.
func WriteArray(w io.Writer, a Array) error {
	if err := a.validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header(a)); err != nil {
		return err
	}

	var word [8]byte
	switch a.Descr {
	case Float64:
		for _, v := range a.Floats {
			binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
			if _, err := bw.Write(word[:]); err != nil {
				return err
			}
		}
	case Int64:
		for _, v := range a.Ints {
			binary.LittleEndian.PutUint64(word[:], uint64(v))
			if _, err := bw.Write(word[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
