package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/labbench/backend/internal/application/dilution"
	"github.com/labbench/backend/internal/domain/shared"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeEntry(w io.Writer, e *dilution.EntryResponse) error {
	fmt.Fprintf(w, "%s\n", e.Title)
	fmt.Fprintf(w, "  id:         %s\n", e.ID)
	fmt.Fprintf(w, "  recorded:   %s\n", e.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "  solute:     %s (M = %s)\n", e.Solute, e.MolarMass.Display)
	fmt.Fprintf(w, "  weighed:    %s\n", e.Mass.Display)

	fmt.Fprintln(w, "\nSteps")
	for i, step := range e.Steps {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}

	fmt.Fprintln(w, "\nStages")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  VESSEL\tVOLUME\tCONCENTRATION")
	for _, s := range e.Stages {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.Label, s.Volume.Display, s.Concentration.Display)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nFinal concentration: %s\n", e.FinalConcentration.Display)
	return err
}

func writeEntryList(w io.Writer, page *shared.Paginated[dilution.EntryListResponse]) error {
	if len(page.Items) == 0 {
		_, err := fmt.Fprintln(w, "No notebook entries.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECORDED\tTITLE\tSOLUTE\tFINAL CONCENTRATION")
	for _, e := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.CreatedAt.Local().Format(time.DateTime), e.Title, e.Solute, e.FinalConcentration.Display)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\npage %d of %d (%d entries)\n", page.Page, page.TotalPages, page.Total)
	return err
}
