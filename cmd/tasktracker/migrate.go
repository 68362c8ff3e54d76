package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/internal/repository"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the categories and tasks tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := repository.NewDB(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("db: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready in %s\n", cfg.DatabasePath)
			return nil
		},
	}
}
