// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/studydeck/internal/core/content"
)

// SweepReport summarizes one sweep run.
type SweepReport struct {
	Scanned   int           `json:"scanned"`
	Resolved  int           `json:"resolved"`
	Remaining int           `json:"remaining"`
	Groups    []GroupReport `json:"groups"`
}

// GroupReport is the outcome of replaying one orphan.
type GroupReport struct {
	GroupID string               `json:"group_id"`
	Steps   []content.StepResult `json:"steps"`
}

// Sweeper replays pending dependent deletes recorded in a [Ledger].
type Sweeper struct {
	ledger     Ledger
	dependents []Dependent
	logger     *slog.Logger
}

// NewSweeper constructs a [Sweeper].
func NewSweeper(ledger Ledger, dependents []Dependent, logger *slog.Logger) *Sweeper {
	return &Sweeper{ledger: ledger, dependents: dependents, logger: logger}
}

/*
Sweep replays the pending steps of every orphan.

Orphans whose steps all succeed are resolved; the rest are re-recorded with
only the steps that still failed.

Returns:
  - SweepReport: per-group outcomes
  - error: ledger failures (step failures stay in the report)
*/
func (sweeper *Sweeper) Sweep(ctx context.Context) (SweepReport, error) {
	orphans, err := sweeper.ledger.Pending(ctx)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Scanned: len(orphans), Groups: []GroupReport{}}

	for _, orphan := range orphans {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		steps := Steps(orphan.GroupID, sweeper.dependents, orphan.Steps...)

		result, _ := content.NewCascade(steps...).Run(ctx, func(context.Context) error { return nil })
		report.Groups = append(report.Groups, GroupReport{GroupID: orphan.GroupID, Steps: result.Steps})

		if result.Complete() {
			if err := sweeper.ledger.Resolve(ctx, orphan.GroupID); err != nil {
				return report, err
			}
			report.Resolved++
			sweeper.logger.InfoContext(ctx, "orphan_resolved", slog.String("group_id", orphan.GroupID))
			continue
		}

		report.Remaining++
		retry := NewOrphan(orphan.GroupID, orphan.Owner, result)
		retry.RecordedAt = orphan.RecordedAt

		if err := sweeper.ledger.Record(ctx, retry); err != nil {
			return report, err
		}

		sweeper.logger.WarnContext(ctx, "orphan_still_pending",
			slog.String("group_id", orphan.GroupID),
			slog.Any("steps", retry.Steps),
			slog.Any("error", result.Err()),
		)
	}

	sweeper.logger.InfoContext(ctx, "orphan_sweep_finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("resolved", report.Resolved),
		slog.Int("remaining", report.Remaining),
	)

	return report, nil
}

// RunEvery sweeps on a fixed interval until ctx is cancelled.
func (sweeper *Sweeper) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := sweeper.Sweep(ctx); err != nil {
				sweeper.logger.ErrorContext(ctx, "orphan_sweep_failed", slog.Any("error", err))
			}
		case <-ctx.Done():
			return
		}
	}
}
