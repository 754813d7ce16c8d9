package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/diagnosis/local-hotel/pkg/config"
	"github.com/diagnosis/local-hotel/pkg/database"
	"github.com/diagnosis/local-hotel/pkg/logger"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "version"},
		RunE:      runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	m, err := database.NewMigrator(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("Failed to close migrator", "error", err)
		}
	}()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
	case "down":
		if err := m.Down(); err != nil {
			return err
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		cmd.Printf("version %d (dirty: %t)\n", v, dirty)
		return nil
	default:
		return oops.Code("INVALID_ARGUMENT").Errorf("unknown migrate direction %q", args[0])
	}

	cmd.Printf("migrate %s completed\n", args[0])
	return nil
}

// migrateUp applies pending migrations at server start.
func migrateUp(databaseURL string) error {
	m, err := database.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		return err
	}
	v, _, _ := m.Version()
	logger.Info("Database migrations applied", "version", v)
	return nil
}
