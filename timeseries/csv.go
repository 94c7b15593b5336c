package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when a CSV source holds a header but no readings.
var ErrNoData = errors.New("no readings found in CSV")

// CSVOptions holds options for loading a reading table from CSV.
//
// The file must have a header row. One column holds the timestamp, every
// other column (or the ones listed in Nodes) holds the readings of one node.
type CSVOptions struct {
	DateColumn string         // Timestamp column name (default: first column)
	DateFormat string         // Preferred layout, tried before the built-in ones
	Location   *time.Location // Location for layouts without zone (default: UTC)
	Nodes      []string       // Node columns to keep, in this order (default: all)
	Delimiter  rune           // Field delimiter (default: ',')
	SkipRows   int            // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02 15:04:05",
		Location:   time.UTC,
		Delimiter:  ',',
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
	"2006/01/02",
}

var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

// LoadTable loads a reading table from a CSV file.
func LoadTable(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, err := LoadTableFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// LoadTableFromReader loads a reading table from an io.Reader.
// Missing cells become NaN; any other unparsable cell is an error.
func LoadTableFromReader(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	// Skipped preamble lines may have any width; rows are checked against
	// the header below.
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = clean(header[i])
	}

	dateIdx := 0
	if opts.DateColumn != "" {
		dateIdx = indexOf(header, opts.DateColumn)
		if dateIdx == -1 {
			return nil, fmt.Errorf("date column %q not found", opts.DateColumn)
		}
	}

	var nodes []string
	var nodeIdx []int
	if len(opts.Nodes) > 0 {
		for _, name := range opts.Nodes {
			idx := indexOf(header, name)
			if idx == -1 || idx == dateIdx {
				return nil, fmt.Errorf("node column %q not found", name)
			}
			nodes = append(nodes, name)
			nodeIdx = append(nodeIdx, idx)
		}
	} else {
		for i, h := range header {
			if i == dateIdx {
				continue
			}
			nodes = append(nodes, h)
			nodeIdx = append(nodeIdx, i)
		}
	}
	if len(nodes) == 0 {
		return nil, ErrEmptyTable
	}

	var index []time.Time
	var rows [][]float64
	line := opts.SkipRows + 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d: got %d fields, header has %d", line, len(record), len(header))
		}

		ts, err := parseTime(clean(record[dateIdx]), opts.DateFormat, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make([]float64, len(nodeIdx))
		for k, idx := range nodeIdx {
			cell := clean(record[idx])
			if missingTokens[cell] {
				row[k] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, node %q: %w", line, nodes[k], err)
			}
			row[k] = v
		}

		index = append(index, ts)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	return NewTable(index, nodes, rows)
}

func parseTime(s, preferred string, loc *time.Location) (time.Time, error) {
	if preferred != "" {
		if ts, err := time.ParseInLocation(preferred, s, loc); err == nil {
			return ts, nil
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
