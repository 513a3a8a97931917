package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/courseapi/internal/app/repositories"
	"github.com/yigit/courseapi/internal/bootstrap"
	"github.com/yigit/courseapi/internal/config"
	"github.com/yigit/courseapi/internal/seed"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations to the configured PostgreSQL store",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "Insert the default courses after migrating")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requires storage driver %q, got %q", config.DriverPostgres, cfg.Storage.Driver)
	}

	ctx := cmd.Context()
	database, err := bootstrap.ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := bootstrap.RunMigrations(ctx, cfg, database, lgr); err != nil {
		return err
	}

	if migrateSeed {
		repos := repositories.NewRepositories(database)
		return seed.CreateDefaultData(ctx, repos.CourseRepository, lgr)
	}
	return nil
}
