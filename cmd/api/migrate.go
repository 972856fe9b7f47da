// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/taibuivan/studydeck/internal/platform/config"
	"github.com/taibuivan/studydeck/internal/platform/constants"
	"github.com/taibuivan/studydeck/internal/platform/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the storage schema",
	Long:  `Applies or reverts the SQL migrations under MIGRATION_PATH. On MongoDB, "up" creates the indexes.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		if cfg.StorageDriver == config.DriverPostgres {
			return migration.Run(cfg.DatabaseURL, cfg.MigrationPath, migration.Up, log)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), constants.StartupTimeout)
		defer cancel()

		store, err := openBackend(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer store.close()

		return store.prepare(ctx)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations (drops every table)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		if cfg.StorageDriver != config.DriverPostgres {
			return errors.New("migrate down is only supported with STORAGE_DRIVER=postgres")
		}

		return migration.Run(cfg.DatabaseURL, cfg.MigrationPath, migration.Down, log)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
