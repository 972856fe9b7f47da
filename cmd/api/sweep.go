// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/taibuivan/studydeck/internal/core/cleanup"
	"github.com/taibuivan/studydeck/internal/platform/constants"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Finish the dependent deletes of partially deleted groups",
	Long: `Reads the orphan ledger in Redis, re-runs the card and tag deletes of every
recorded group and prints the sweep report as JSON. Requires REDIS_URL.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), constants.SweepTimeout)
		defer cancel()

		store, err := openBackend(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer store.close()

		ledger, err := openLedger(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer ledger.close()

		report, err := cleanup.NewSweeper(ledger.ledger, store.dependents(), log).Sweep(ctx)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	},
}
