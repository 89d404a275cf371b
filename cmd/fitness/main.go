package main

import (
	"fmt"
	"os"

	"github.com/Ujjwal3492/Fitness/pkg/config"
	"github.com/Ujjwal3492/Fitness/pkg/database"
	"github.com/Ujjwal3492/Fitness/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fitness",
		Short:        "Fitness studio site backend",
		Long:         "Serves the trainer and testimonial admin API and the WhatsApp lead webhook.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	})

	return rootCmd
}

// bootstrap loads configuration and initializes the logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.InitLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Configuration loaded", cfg.LogFields()...)
	for _, warning := range cfg.Warnings() {
		log.Warn(warning)
	}

	return cfg, log, nil
}

func runMigrate() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return err
	}

	return database.Migrate(db, log)
}
