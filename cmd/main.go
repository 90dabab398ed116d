package main

import (
	"fmt"
	"os"

	"invoice-service/internal/config"
	"invoice-service/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoice-service",
	Short: "Invoice management REST API",
	Long: `invoice-service manages clients, issuer company and bank details, the
global invoicing settings and invoices. Each invoice is numbered from the
configured suffix, rendered to PDF and can be emailed to the client.

Running without a subcommand starts the HTTP server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	RunE: runServe,
}

var logFile *os.File

func setupLogging() error {
	cfg := config.New()
	file, err := logger.Setup(logger.LogConfig{
		Level:  cfg.LogCfg.Level,
		Format: cfg.LogCfg.Format,
		Dir:    cfg.LogCfg.Dir,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logFile = file
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
