package main

import (
	"fmt"

	"rental-backend/internal/adapter/repository/mysql"
	"rental-backend/internal/config"
	"rental-backend/internal/infrastructure/db"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			gdb, err := db.OpenGorm(cfg.MySQLDSN(), cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("mysql: %w", err)
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := mysql.AutoMigrate(gdb); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			cmd.Println("schema up to date")
			return nil
		},
	}
}
