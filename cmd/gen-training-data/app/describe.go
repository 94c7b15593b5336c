package app

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lucy-seohyun/D2STGNN/cmd/gen-training-data/app/options"
	"github.com/lucy-seohyun/D2STGNN/stats"
	"github.com/lucy-seohyun/D2STGNN/timeseries"
)

// NewCmdDescribe creates the command printing per-node statistics of the
// reading table.
func NewCmdDescribe() *cobra.Command {
	var (
		src         options.SourceOptions
		slotsPerDay int
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print per-node statistics of the reading table",
		Long: `
Print count, missing readings, min, max, mean, std and median of every node,
with the autocorrelation at lag 1 and at one day, and the lags up to one day
whose autocorrelation is significant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := src.Complete(); err != nil {
				return err
			}
			if errs := src.Validate(); len(errs) != 0 {
				return errors.Join(errs...)
			}
			if slotsPerDay < 1 {
				return fmt.Errorf("--slots-per-day must be at least 1, got %d", slotsPerDay)
			}
			table, err := timeseries.LoadTable(src.TrafficDFFilename, src.CSVOptions())
			if err != nil {
				return err
			}
			return describe(cmd.OutOrStdout(), table, slotsPerDay)
		},
	}

	src.AddFlags(cmd.Flags())
	cmd.Flags().IntVar(&slotsPerDay, "slots-per-day", 4, "Readings per day, the lag of the daily autocorrelation.")

	return cmd
}

func describe(w io.Writer, table *timeseries.Table, slotsPerDay int) error {
	fmt.Fprintf(w, "rows: %d, nodes: %d, from %s to %s\n\n", table.Rows(), table.NumNodes(),
		table.Index[0].Format("2006-01-02 15:04:05"), table.Index[table.Rows()-1].Format("2006-01-02 15:04:05"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tCOUNT\tMISSING\tMIN\tMAX\tMEAN\tSTD\tMEDIAN\tACF(1)\tACF(DAY)\tSIGNIFICANT LAGS")
	for j := 0; j < table.NumNodes(); j++ {
		series := table.Node(j)
		s, err := stats.Summarize(series.Values)
		if err != nil {
			return fmt.Errorf("node %s: %w", series.Name, err)
		}
		acf := stats.ACFWithConfidence(series, slotsPerDay)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.3f\t%.3f\t%s\n",
			series.Name, s.Count, s.Missing, s.Min, s.Max, s.Mean, s.Std, s.Median, acf.At(1), acf.At(slotsPerDay), significantLags(acf))
	}
	return tw.Flush()
}

// significantLags lists the lags up to one day whose autocorrelation is
// outside the 95% bound.
func significantLags(acf *stats.ACFResult) string {
	if acf == nil {
		return "-"
	}
	lags := stats.SignificantLags(acf.Values, acf.ConfBounds)
	if len(lags) == 0 {
		return "-"
	}
	parts := make([]string, len(lags))
	for i, l := range lags {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}
