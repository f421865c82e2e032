package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/app"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/config"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/database"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/logger"
)

// runtime is the lazily opened process state shared by subcommands.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}
	cmd := &cobra.Command{
		Use:           "trailclass-cli",
		Short:         "Operate the Trailclass report backend from the shell",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rt.close()
		},
	}
	cmd.AddCommand(
		newImportCmd(rt),
		newTemplateCmd(),
		newExportCmd(rt),
		newMigrateCmd(rt),
	)
	return cmd
}

func (rt *runtime) init() error {
	if rt.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	rt.cfg = cfg
	rt.logger = logr
	return nil
}

func (rt *runtime) database(ctx context.Context) (*sqlx.DB, error) {
	if err := rt.init(); err != nil {
		return nil, err
	}
	if rt.db != nil {
		return rt.db, nil
	}
	db, err := database.NewPostgres(ctx, rt.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	rt.db = db
	return db, nil
}

// services wires the domain services without redis; cache invalidation is
// left to the server's TTL.
func (rt *runtime) services(ctx context.Context) (*app.Services, error) {
	db, err := rt.database(ctx)
	if err != nil {
		return nil, err
	}
	return app.NewServices(rt.cfg, db, nil, rt.logger), nil
}

func (rt *runtime) close() {
	if rt.db != nil {
		_ = rt.db.Close()
	}
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
