// Command labcalc prepares standard solutions with significant-figure bookkeeping
// and keeps the results in a lab notebook.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type globalOpts struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &globalOpts{}

	cmd := &cobra.Command{
		Use:           "labcalc",
		Short:         "Quantity arithmetic for the wet lab",
		Long:          "labcalc carries out standard solution preparations and serial dilutions,\ntracking units and significant figures, and records them in a notebook.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a config.toml (default: ./config.toml or /etc/labbench/config.toml)")

	cmd.AddCommand(
		newServeCommand(opts),
		newDiluteCommand(opts),
		newNotebookCommand(opts),
		newConvertCommand(),
		newUnitsCommand(),
	)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
