package options

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/lucy-seohyun/D2STGNN/dataset"
	"github.com/lucy-seohyun/D2STGNN/features"
	"github.com/lucy-seohyun/D2STGNN/scaler"
	"github.com/lucy-seohyun/D2STGNN/window"
)

// Options hold the command-line options about training data generation.
type Options struct {
	SourceOptions

	// ConfigFile is a YAML file of flag values. Flags given on the command
	// line take precedence.
	ConfigFile string
	// OutputDir receives the bundles.
	OutputDir string
	// SeqLengthX is the number of input steps, the reference step included.
	SeqLengthX int
	// SeqLengthY is the last future step to predict.
	SeqLengthY int
	// YStart is the first future step to predict.
	YStart int
	// DayOfWeek adds the day-of-week channel.
	DayOfWeek bool
	// TimeSlotsPerDay adds a time slot index channel when positive.
	TimeSlotsPerDay int
	// Scaler is the normalizer kind for the primary channel.
	Scaler string
	// ScalerFile is the scaler file name inside OutputDir.
	ScalerFile string
	// Compress deflates bundle entries.
	Compress bool
	// AssumeYes overwrites an existing output directory without asking.
	AssumeYes bool
	// PlotFile, when set, receives an HTML chart of the splits.
	PlotFile string
}

// NewOptions builds an empty options.
func NewOptions() *Options {
	return &Options{}
}

// AddFlags adds flags to the specified FlagSet.
func (o *Options) AddFlags(flags *pflag.FlagSet) {
	o.SourceOptions.AddFlags(flags)
	flags.StringVar(&o.ConfigFile, "config", "", "YAML file of flag values; explicit flags override it.")
	flags.StringVar(&o.OutputDir, "output-dir", "datasets/CHUNGNAM", "Output directory.")
	flags.IntVar(&o.SeqLengthX, "seq-length-x", 6, "Input sequence length, the reference step included.")
	flags.IntVar(&o.SeqLengthY, "seq-length-y", 6, "Output sequence length.")
	flags.IntVar(&o.YStart, "y-start", 1, "First future step to predict.")
	flags.BoolVar(&o.DayOfWeek, "dow", true, "Add feature day_of_week.")
	flags.IntVar(&o.TimeSlotsPerDay, "time-slots", 0, "Add a time slot index channel with this many slots a day, taken from the wall clock of each timestamp rather than the row position; 0 disables it.")
	flags.StringVar(&o.Scaler, "scaler", scaler.KindMinMax, fmt.Sprintf("Normalizer of the primary channel, one of %v.", scaler.Kinds()))
	flags.StringVar(&o.ScalerFile, "scaler-file", dataset.DefaultScalerFile, "Scaler file name inside the output directory. The scaler is stored as JSON ({kind, params}), not as a Python scaler.pkl.")
	flags.BoolVar(&o.Compress, "compress", true, "Deflate bundle entries.")
	flags.BoolVarP(&o.AssumeYes, "yes", "y", false, "Overwrite an existing output directory without asking.")
	flags.StringVar(&o.PlotFile, "plot-file", "", "Write an HTML chart of the splits to this file.")
}

// Complete applies the config file to every flag not set on the command
// line, then completes the source options.
func (o *Options) Complete(flags *pflag.FlagSet) error {
	if o.ConfigFile != "" {
		if err := applyConfigFile(o.ConfigFile, flags); err != nil {
			return err
		}
	}
	return o.SourceOptions.Complete()
}

func applyConfigFile(path string, flags *pflag.FlagSet) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	values := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for name, v := range values {
		f := flags.Lookup(name)
		if f == nil || name == "config" {
			return fmt.Errorf("%s: unknown option %q", path, name)
		}
		if f.Changed {
			continue
		}
		if err := setFlag(flags, name, v); err != nil {
			return fmt.Errorf("%s: option %q: %w", path, name, err)
		}
	}
	return nil
}

func setFlag(flags *pflag.FlagSet, name string, v interface{}) error {
	list, ok := v.([]interface{})
	if !ok {
		return flags.Set(name, fmt.Sprint(v))
	}
	for _, item := range list {
		if err := flags.Set(name, fmt.Sprint(item)); err != nil {
			return err
		}
	}
	return nil
}

// Validate all required options.
func (o *Options) Validate() []error {
	errs := o.SourceOptions.Validate()
	if o.OutputDir == "" {
		errs = append(errs, fmt.Errorf("--output-dir is required"))
	}
	if o.SeqLengthX < 1 {
		errs = append(errs, fmt.Errorf("--seq-length-x must be at least 1, got %d", o.SeqLengthX))
	}
	if o.YStart < 1 {
		errs = append(errs, fmt.Errorf("--y-start must be at least 1, got %d", o.YStart))
	}
	if o.SeqLengthY < o.YStart {
		errs = append(errs, fmt.Errorf("--seq-length-y (%d) must not be smaller than --y-start (%d)", o.SeqLengthY, o.YStart))
	}
	if o.TimeSlotsPerDay < 0 {
		errs = append(errs, fmt.Errorf("--time-slots must not be negative, got %d", o.TimeSlotsPerDay))
	}
	if _, err := scaler.New(o.Scaler); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// Offsets returns the input and output offset sets.
func (o *Options) Offsets() (x, y window.Offsets) {
	return window.InputOffsets(o.SeqLengthX), window.OutputOffsets(o.YStart, o.SeqLengthY)
}

// FeatureOptions returns the calendar channels to add. Time of day is
// always added.
func (o *Options) FeatureOptions() features.Options {
	return features.Options{
		TimeOfDay:       true,
		TimeSlotsPerDay: o.TimeSlotsPerDay,
		DayOfWeek:       o.DayOfWeek,
	}
}
