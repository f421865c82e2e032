package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/export"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/storage"
)

func newExportCmd(rt *runtime) *cobra.Command {
	var (
		format string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every session with its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := rt.services(cmd.Context())
			if err != nil {
				return err
			}

			if strings.EqualFold(format, "json") {
				rows, err := svcs.Export.Rows(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rows)
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			file, err := svcs.Export.Render(cmd.Context(), f)
			if err != nil {
				return err
			}
			store, err := storage.NewLocalStorage(outDir)
			if err != nil {
				return err
			}
			path, err := store.Save(file.Filename, file.Data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatXLSX), "xlsx, csv, pdf or json (printed to stdout)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory receiving the export file")
	return cmd
}
