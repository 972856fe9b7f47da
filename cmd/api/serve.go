// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/studydeck/internal/api"
	"github.com/taibuivan/studydeck/internal/core/card"
	"github.com/taibuivan/studydeck/internal/core/cleanup"
	"github.com/taibuivan/studydeck/internal/core/group"
	"github.com/taibuivan/studydeck/internal/core/tag"
	"github.com/taibuivan/studydeck/internal/platform/config"
	"github.com/taibuivan/studydeck/internal/platform/constants"
	"github.com/taibuivan/studydeck/internal/platform/sec"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Connects the configured storage backend, applies migrations (PostgreSQL) or
indexes (MongoDB), and serves the API until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply schema migrations at startup")
}

// serve runs the startup sequence and blocks until shutdown.
//
// # Startup Sequence
//
//  1. Connect to the storage backend (pgxpool or MongoDB).
//  2. Apply migrations or ensure indexes (idempotent).
//  3. Connect to the Redis orphan ledger if configured.
//  4. Wire domain services and HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
func serve(parent context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Startup gets a fixed deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	// ── 1. Storage ────────────────────────────────────────────────────────
	store, err := openBackend(startupCtx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	// ── 2. Schema ─────────────────────────────────────────────────────────
	if !skipMigrations {
		if err := store.prepare(startupCtx); err != nil {
			return err
		}
	}

	// ── 3. Orphan ledger ──────────────────────────────────────────────────
	ledger, err := openLedger(startupCtx, cfg, log)
	if err != nil {
		return err
	}
	defer ledger.close()

	// ── 4. Identity ───────────────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("initialize token verifier: %w", err)
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	groupService := group.NewService(store.groups, store.dependents(), ledger.ledger, log)
	cardService := card.NewService(store.cards, groupService, nil, log)
	tagService := tag.NewService(store.tags, groupService, log)
	sweeper := cleanup.NewSweeper(ledger.ledger, store.dependents(), log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		DatabaseName:  store.name,
		CheckDatabase: store.ping,
		CheckLedger:   ledger.ping,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Group:     group.NewHandler(groupService),
		Card:      card.NewHandler(cardService),
		Tag:       tag.NewHandler(tagService),
		Cleanup:   cleanup.NewHandler(sweeper),
	}

	if cfg.SweepInterval > 0 {
		log.Info("orphan_sweeper_scheduled", slog.Duration("interval", cfg.SweepInterval))
		go sweeper.RunEvery(ctx, cfg.SweepInterval)
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(ctx, cfg, log, verifier, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("server startup: %w", err)
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped_cleanly")
	return nil
}
