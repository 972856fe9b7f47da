// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cleanup tracks groups whose cascade delete left dependents behind.

The cascade coordinator never retries. When a dependent step fails after the
group itself is gone, the group id and the failed step names are parked in a
[Ledger]. An operator later runs a [Sweeper], which repeats the dependent
deletes and clears the entries that completed.

# Core Responsibility

  - Ledger: Redis-backed (or log-only) record of orphaned dependents.
  - Sweeper: Idempotent re-run of the pending steps.
  - Handler: Admin endpoint that triggers a sweep.
*/
package cleanup

import (
	"context"
	"slices"
	"time"

	"github.com/taibuivan/studydeck/internal/core/content"
)

// # Dependent Steps

// Step names shared by the cascade report, the ledger and the sweeper.
const (
	StepCards = "cards"
	StepTags  = "tags"
)

// Purger removes every entity that references a group. Calling it again after
// success removes nothing and reports zero.
type Purger interface {
	DeleteByGroup(ctx context.Context, groupID string) (int64, error)
}

// Dependent names a purger so its outcome can be reported and replayed.
type Dependent struct {
	Name   string
	Purger Purger
}

// Dependents returns the standard dependent set of a group in report order.
func Dependents(cards, tags Purger) []Dependent {
	return []Dependent{
		{Name: StepCards, Purger: cards},
		{Name: StepTags, Purger: tags},
	}
}

// Steps binds dependents to one group. When only is non-empty, dependents not
// named in it are skipped.
func Steps(groupID string, dependents []Dependent, only ...string) []content.Step {
	steps := make([]content.Step, 0, len(dependents))
	for _, dependent := range dependents {
		if len(only) > 0 && !slices.Contains(only, dependent.Name) {
			continue
		}
		steps = append(steps, content.Step{
			Name: dependent.Name,
			Run: func(ctx context.Context) (int64, error) {
				return dependent.Purger.DeleteByGroup(ctx, groupID)
			},
		})
	}
	return steps
}

// # Orphans

// Orphan is a deleted group with dependent steps still pending.
type Orphan struct {
	GroupID    string    `json:"group_id"`
	Owner      string    `json:"owner,omitempty"`
	Steps      []string  `json:"steps"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewOrphan builds the ledger entry for the pending steps of a cascade report.
func NewOrphan(groupID, owner string, report content.Report) Orphan {
	orphan := Orphan{GroupID: groupID, Owner: owner, RecordedAt: time.Now().UTC()}
	for _, step := range report.Failed() {
		orphan.Steps = append(orphan.Steps, step.Name)
	}
	return orphan
}

// Ledger persists orphans until a sweep resolves them.
type Ledger interface {
	Record(ctx context.Context, orphan Orphan) error
	Pending(ctx context.Context) ([]Orphan, error)
	Resolve(ctx context.Context, groupID string) error
}
