package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lucy-seohyun/D2STGNN/npz"
)

// NewCmdInspect creates the command listing the arrays of bundles.
func NewCmdInspect() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect BUNDLE...",
		Short: "List the arrays stored in .npz bundles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := inspect(cmd.OutOrStdout(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func inspect(w io.Writer, path string) error {
	r, err := npz.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Fprintf(w, "%s\n", path)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range r.Keys() {
		a, err := r.Read(key)
		if err != nil {
			return err
		}
		if a.Descr == npz.Int64 {
			fmt.Fprintf(tw, "  %s\t%s\t%v\t%v\n", key, a.Descr, a.Shape, a.Ints)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t%v\t\n", key, a.Descr, a.Shape)
	}
	return tw.Flush()
}
