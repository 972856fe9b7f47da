// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Studydeck HTTP API server and its
// operator tasks.
//
// # Commands
//
//   - serve: run the HTTP API with graceful shutdown.
//   - migrate up|down: apply or revert the PostgreSQL schema (indexes on MongoDB).
//   - sweep: replay dependent deletes of partially deleted groups once.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/studydeck/internal/platform/config"
	"github.com/taibuivan/studydeck/internal/platform/constants"
)

var rootCmd = &cobra.Command{
	Use:           "studydeck",
	Short:         "Flashcard study service: groups, cards, tags and a random quiz.",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	// Without a subcommand the binary serves the API.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of studydeck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), constants.AppVersion)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, sweepCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// bootstrap initializes the structured logger and loads configuration.
//
// The logger is created first so that configuration errors are structured JSON.
func bootstrap() (*config.Config, *slog.Logger, error) {
	log := newLogger(false)

	cfg, err := config.Load()
	if err != nil {
		return nil, log, fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		log = newLogger(true)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.Bool("orphan_ledger", cfg.HasRedis()),
	)

	return cfg, log, nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}
