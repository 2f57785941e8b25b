package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/labbench/backend/internal/application/dilution"
	"github.com/spf13/cobra"
)

type convertOpts struct {
	digits int
	asJSON bool
}

// newConvertCommand needs neither the notebook nor the catalog, so it never opens the bench.
func newConvertCommand() *cobra.Command {
	opts := &convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Re-express a reading in another unit",
		Example: `  labcalc convert 250 mL L --digits 3
  labcalc convert 2.562e-4 M uM -d 4`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}

			svc := dilution.NewService(nil, nil)
			resp, err := svc.Convert(dilution.ConvertRequest{
				Value: dilution.MeasuredValue{Value: value, Digits: opts.digits},
				From:  args[1],
				To:    args[2],
			})
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", args[0], resp.From, trimUnit(resp.Target), resp.To)
			return err
		},
	}
	cmd.Flags().IntVarP(&opts.digits, "digits", "d", 0, "Significant digits of the reading (0 = exact)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the conversion as JSON")
	return cmd
}

func newUnitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the unit codes convert accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tUNIT")
			for _, u := range dilution.NewService(nil, nil).Units() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Code, u.Name, u.Unit)
			}
			return tw.Flush()
		},
	}
}

// trimUnit drops the bracketed unit from a rendered quantity
func trimUnit(display string) string {
	magnitude, _, _ := strings.Cut(display, " ")
	return magnitude
}
