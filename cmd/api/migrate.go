package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtracker/internal/database"
	"jobtracker/internal/database/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema if it does not exist",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log := bootstrap()
	defer log.Sync()

	db, err := database.NewPostgres(cmd.Context(), cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	return migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host)
}
