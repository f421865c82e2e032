package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import schedule or textbook workbooks",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "schedule <file.xlsx>",
			Short: "Upsert class sessions from a schedule workbook",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read workbook: %w", err)
				}
				svcs, err := rt.services(cmd.Context())
				if err != nil {
					return err
				}
				summary, err := svcs.ScheduleImport.Import(cmd.Context(), data)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			},
		},
		&cobra.Command{
			Use:   "textbook <file.xlsx>",
			Short: "Create or replace a textbook from a five sheet workbook",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read workbook: %w", err)
				}
				svcs, err := rt.services(cmd.Context())
				if err != nil {
					return err
				}
				summary, err := svcs.TextbookImport.Import(cmd.Context(), data)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			},
		},
	)
	return cmd
}
