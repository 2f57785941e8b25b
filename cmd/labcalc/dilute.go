package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/labbench/backend/internal/application/dilution"
	"github.com/spf13/cobra"
)

type diluteOpts struct {
	file   string
	asJSON bool
}

func newDiluteCommand(global *globalOpts) *cobra.Command {
	opts := &diluteOpts{}

	cmd := &cobra.Command{
		Use:   "dilute -f procedure.json",
		Short: "Carry out a preparation and record it in the notebook",
		Long: `Carry out a standard solution preparation described in a JSON file
("-" reads standard input) and record it in the notebook. Example:

  {
    "title": "Mohr salt standard",
    "solute": {"name": "Mohr", "molar_mass": {"value": 392.1, "digits": 4}},
    "mass": {"value": 0.4019, "digits": 4},
    "beaker": {"capacity": 100, "fill_to": {"value": 20, "digits": 2}},
    "flask": 100,
    "stages": [{"pipette": 5, "flask": 200}]
  }

Volumes are in mL, masses in g and molar masses in g/mol. "digits" is the
number of significant digits of the reading; leave it out for exact values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readProcedure(cmd.InOrStdin(), opts.file)
			if err != nil {
				return err
			}

			b, err := openBench(cmd.Context(), global, true)
			if err != nil {
				return err
			}
			defer b.Close(cmd.Context())

			entry, err := b.service.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			return writeEntry(cmd.OutOrStdout(), entry)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Procedure file, \"-\" for standard input")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the notebook entry as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readProcedure(stdin io.Reader, path string) (dilution.ProcedureRequest, error) {
	var req dilution.ProcedureRequest

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("failed to open procedure: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to parse procedure %s: %w", path, err)
	}
	return req, nil
}
