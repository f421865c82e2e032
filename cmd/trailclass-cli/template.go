package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/service"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/storage"
)

func newTemplateCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the blank schedule and textbook workbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := service.NewTemplateService()
			store, err := storage.NewLocalStorage(outDir)
			if err != nil {
				return err
			}
			for _, build := range []func() (*service.TemplateFile, error){templates.ScheduleTemplate, templates.TextbookTemplate} {
				file, err := build()
				if err != nil {
					return err
				}
				path, err := store.Save(file.Filename, file.Data)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory receiving the workbooks")
	return cmd
}
