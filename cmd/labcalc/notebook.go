package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labbench/backend/internal/application/dilution"
	"github.com/spf13/cobra"
)

func newNotebookCommand(global *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebook",
		Short: "Browse recorded preparations",
	}
	cmd.AddCommand(
		newNotebookListCommand(global),
		newNotebookShowCommand(global),
	)
	return cmd
}

func newNotebookListCommand(global *globalOpts) *cobra.Command {
	var req dilution.ListEntriesRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notebook entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBench(cmd.Context(), global, true)
			if err != nil {
				return err
			}
			defer b.Close(cmd.Context())

			page, err := b.service.List(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeEntryList(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().StringVarP(&req.Search, "search", "s", "", "Only entries whose title or solute contains this text")
	cmd.Flags().IntVar(&req.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&req.PageSize, "page-size", 20, "Entries per page (max 100)")
	return cmd
}

func newNotebookShowCommand(global *globalOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one notebook entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid notebook entry ID %q: %w", args[0], err)
			}

			b, err := openBench(cmd.Context(), global, true)
			if err != nil {
				return err
			}
			defer b.Close(cmd.Context())

			entry, err := b.service.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			return writeEntry(cmd.OutOrStdout(), entry)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the notebook entry as JSON")
	return cmd
}
