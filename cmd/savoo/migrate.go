package main

import (
	"fmt"

	"github.com/Aquaier/Savoo/internal/platform/config"
	"github.com/Aquaier/Savoo/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return database.RunMigrations(cfg.DatabaseURL, newLogger(cfg.LogLevel))
	},
}
