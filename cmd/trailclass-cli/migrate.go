package main

import (
	"github.com/spf13/cobra"

	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/database"
)

func newMigrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version|redo|reset]",
		Short:     "Apply the embedded database schema",
		Args:      cobra.RangeArgs(0, 2),
		ValidArgs: []string{"up", "down", "status", "version", "redo", "reset", "up-to", "down-to"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command = args[0]
			}
			db, err := rt.database(cmd.Context())
			if err != nil {
				return err
			}
			return database.Migrate(db.DB, rt.logger.Named("migrate"), command, args[min(1, len(args)):]...)
		},
	}
}
