package main

import (
	"context"
	"errors"
	"time"

	"invoice-service/internal/config"
	"invoice-service/internal/database/postgres"
	"invoice-service/internal/logger"

	"github.com/spf13/cobra"
)

var errMissingDatabase = errors.New("DATABASE_URL or POSTGRES_HOST is required")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema and exit",
	Example: `  # Apply the schema against DATABASE_URL
  invoice-service migrate`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Duration("timeout", 30*time.Second, "Give up if the database does not answer in time")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("migrate")

	cfg := config.New()
	if cfg.PostgresCfg.DatabaseURL == "" && cfg.PostgresCfg.Host == "" {
		return errMissingDatabase
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("schema is up to date")
	return nil
}
