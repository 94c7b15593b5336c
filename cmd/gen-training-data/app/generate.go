package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/lucy-seohyun/D2STGNN/cmd/gen-training-data/app/options"
	"github.com/lucy-seohyun/D2STGNN/dataset"
	"github.com/lucy-seohyun/D2STGNN/scaler"
	"github.com/lucy-seohyun/D2STGNN/timeseries"
	"github.com/lucy-seohyun/D2STGNN/window"
)

// NewGenerateCommand creates a *cobra.Command object with default parameters
func NewGenerateCommand() *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "gen-training-data",
		Short: "Generate seq2seq training data from node readings",
		Long: `gen-training-data slices a table of per-node readings into input and
target windows, splits them into train, val and test, normalizes the
primary channel and writes train.npz, val.npz, test.npz and the scaler.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			if errs := opts.Validate(); len(errs) != 0 {
				return errors.Join(errs...)
			}
			return Run(opts, cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().AddGoFlagSet(flag.CommandLine)
	opts.AddFlags(cmd.Flags())

	return cmd
}

// Run generates the training data described by opts. in and out serve the
// overwrite prompt. The output directory is only touched once the source
// table is loaded and long enough.
func Run(opts *options.Options, in io.Reader, out io.Writer) error {
	table, err := timeseries.LoadTable(opts.TrafficDFFilename, opts.CSVOptions())
	if err != nil {
		return fmt.Errorf("load readings: %w", err)
	}
	missing := 0
	for j := 0; j < table.NumNodes(); j++ {
		missing += table.Node(j).Missing()
	}
	klog.InfoS("Loaded readings", "file", opts.TrafficDFFilename, "rows", table.Rows(), "nodes", table.NumNodes(), "missing", missing)

	x, y := opts.Offsets()
	if err := window.CheckRows(table.Rows(), x, y); err != nil {
		return err
	}

	if err := prepareOutputDir(opts.OutputDir, opts.AssumeYes, in, out); err != nil {
		return err
	}

	featureOpts := opts.FeatureOptions()
	channels := featureOpts.Channels()
	samples := window.SampleCount(table.Rows(), x, y)
	klog.InfoS("Building windows", "xOffsets", x, "yOffsets", y, "channels", channels,
		"samples", samples, "bytes", window.EstimateBytes(samples, len(x), len(y), table.NumNodes(), len(channels)))

	inputs, targets, err := window.Build(table, x, y, featureOpts)
	if err != nil {
		return err
	}
	klog.InfoS("Windowed samples", "x", inputs.Shape(), "y", targets.Shape())

	s, err := scaler.New(opts.Scaler)
	if err != nil {
		return err
	}
	p := &dataset.Pipeline{
		OutputDir:  opts.OutputDir,
		Scaler:     s,
		ScalerFile: opts.ScalerFile,
		Compress:   opts.Compress,
	}
	res, err := p.Run(inputs, targets, x, y)
	if err != nil {
		return err
	}

	manifest := dataset.NewManifest(opts.TrafficDFFilename, table.Rows(), table.Nodes, channels, x, y)
	manifest.Record(res)
	path, err := manifest.Write(opts.OutputDir)
	if err != nil {
		return err
	}
	klog.InfoS("Wrote manifest", "path", path, "runID", manifest.RunID)

	if opts.PlotFile != "" {
		labels := make([]string, inputs.Len())
		first := x.Min()
		if first < 0 {
			first = -first
		}
		for i := range labels {
			labels[i] = table.Index[first+i].Format(time.RFC3339)
		}
		if err := writePlot(opts.PlotFile, opts.OutputDir, labels, res.Pairs); err != nil {
			return fmt.Errorf("plot splits: %w", err)
		}
		klog.InfoS("Wrote split plot", "path", opts.PlotFile)
	}

	return nil
}

func writePlot(path, title string, labels []string, pairs map[dataset.Split]dataset.Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.PlotSplits(f, title, labels, pairs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
