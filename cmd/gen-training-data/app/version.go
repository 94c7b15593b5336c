package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucy-seohyun/D2STGNN/version"
)

// NewCmdVersion creates the command printing the build of the binary.
func NewCmdVersion() *cobra.Command {
	// flags
	var (
		fFull bool
	)
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print gen-training-data version",
		Long: `
Print version information and related build info`,
		Run: func(cmd *cobra.Command, args []string) {
			if fFull {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get().JSON())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Get())
		},
	}

	versionCmd.PersistentFlags().BoolVar(&fFull, "full", false, "print full version information")

	return versionCmd
}
