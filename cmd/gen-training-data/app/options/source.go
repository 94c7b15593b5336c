package options

import (
	"fmt"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/lucy-seohyun/D2STGNN/timeseries"
)

// SourceOptions hold the command-line options about the reading table.
type SourceOptions struct {
	// TrafficDFFilename is the CSV file holding the reading table.
	TrafficDFFilename string
	// DateColumn is the timestamp column; the first column when empty.
	DateColumn string
	// DateFormat is the preferred Go time layout of the timestamp column.
	DateFormat string
	// Timezone is the IANA location of timestamps written without offset.
	Timezone string
	// Nodes restricts and orders the node columns.
	Nodes []string
	// Delimiter is the field separator, a single character.
	Delimiter string
	// SkipRows is the number of lines before the header.
	SkipRows int

	location *time.Location
}

// AddFlags adds flags to the specified FlagSet.
func (o *SourceOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.TrafficDFFilename, "traffic-df-filename", "datasets/raw_data/CHUNGNAM/chungnam_population.csv", "Raw readings, one timestamp column and one column per node.")
	flags.StringVar(&o.DateColumn, "date-column", "", "Timestamp column name, the first column if empty.")
	flags.StringVar(&o.DateFormat, "date-format", "2006-01-02 15:04:05", "Preferred Go layout of the timestamp column.")
	flags.StringVar(&o.Timezone, "timezone", "UTC", "Location of timestamps written without an offset.")
	flags.StringSliceVar(&o.Nodes, "nodes", nil, "Node columns to keep, in order. All columns if empty.")
	flags.StringVar(&o.Delimiter, "delimiter", ",", "Field separator of the source file, a single character.")
	flags.IntVar(&o.SkipRows, "skip-rows", 0, "Number of lines to skip before the header.")
}

// Complete resolves the timezone.
func (o *SourceOptions) Complete() error {
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", o.Timezone, err)
	}
	o.location = loc
	return nil
}

// Validate checks the source options.
func (o *SourceOptions) Validate() []error {
	var errs []error
	if o.TrafficDFFilename == "" {
		errs = append(errs, fmt.Errorf("--traffic-df-filename is required"))
	}
	if utf8.RuneCountInString(o.Delimiter) != 1 || o.Delimiter == "\n" || o.Delimiter == "\r" || o.Delimiter == "\"" {
		errs = append(errs, fmt.Errorf("--delimiter must be a single character other than a quote or line break, got %q", o.Delimiter))
	}
	if o.SkipRows < 0 {
		errs = append(errs, fmt.Errorf("--skip-rows must not be negative, got %d", o.SkipRows))
	}
	return errs
}

// CSVOptions returns the loader options for the reading table.
func (o *SourceOptions) CSVOptions() *timeseries.CSVOptions {
	opts := timeseries.DefaultCSVOptions()
	opts.DateColumn = o.DateColumn
	opts.DateFormat = o.DateFormat
	opts.Nodes = o.Nodes
	opts.SkipRows = o.SkipRows
	if r, _ := utf8.DecodeRuneInString(o.Delimiter); r != utf8.RuneError {
		opts.Delimiter = r
	}
	if o.location != nil {
		opts.Location = o.location
	}
	return opts
}
