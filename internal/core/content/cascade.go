// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/studydeck/internal/platform/constants"
)

// # Cascade Steps

// Step is one dependent delete of a cascade. Run returns the number of
// entities removed and must be safe to repeat.
type Step struct {
	Name string
	Run  func(ctx context.Context) (int64, error)
}

// StepResult is the outcome of one dependent step.
type StepResult struct {
	Name    string `json:"name"`
	Deleted int64  `json:"deleted"`
	Pending bool   `json:"pending,omitempty"`
	Err     error  `json:"-"`
}

// Report lists the outcome of every dependent step in declaration order.
type Report struct {
	Steps []StepResult `json:"steps"`
}

// Complete reports whether every dependent step succeeded.
func (r Report) Complete() bool {
	return len(r.Failed()) == 0
}

// Failed returns the steps that left dependents behind.
func (r Report) Failed() []StepResult {
	var failed []StepResult
	for _, step := range r.Steps {
		if step.Pending {
			failed = append(failed, step)
		}
	}
	return failed
}

// Err joins the errors of the failed steps, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, step := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", step.Name, step.Err))
	}
	return errors.Join(errs...)
}

// # Coordinator

// Cascade deletes a root entity and then its dependents.
//
// There are no compensations: once the root is gone it stays gone, and a failed
// dependent step is reported as pending rather than rolled back.
type Cascade struct {
	dependents  []Step
	stepTimeout time.Duration
}

// NewCascade returns a coordinator for the given dependent steps.
func NewCascade(dependents ...Step) *Cascade {
	return &Cascade{dependents: dependents, stepTimeout: constants.CascadeStepTimeout}
}

// WithStepTimeout overrides the per-step budget.
func (c *Cascade) WithStepTimeout(timeout time.Duration) *Cascade {
	c.stepTimeout = timeout
	return c
}

/*
Run executes root and, only if it succeeds, every dependent step concurrently.

Dependent steps are detached from ctx cancellation: a client that disconnects
after the root delete must not strand the dependents. Each step gets its own
timeout, and every step is attempted even when a sibling fails.

Returns:
  - Report: one entry per dependent step
  - error: the root error only; dependent failures live in the report
*/
func (c *Cascade) Run(ctx context.Context, root func(ctx context.Context) error) (Report, error) {
	if err := root(ctx); err != nil {
		return Report{}, err
	}

	detached := context.WithoutCancel(ctx)
	results := make([]StepResult, len(c.dependents))

	var group errgroup.Group
	for i, step := range c.dependents {
		group.Go(func() error {
			stepCtx, cancel := context.WithTimeout(detached, c.stepTimeout)
			defer cancel()

			deleted, err := step.Run(stepCtx)
			results[i] = StepResult{Name: step.Name, Deleted: deleted, Pending: err != nil, Err: err}
			return nil
		})
	}

	// Step errors are carried in results so one failure never cancels its siblings.
	// Wait therefore always returns nil.
	_ = group.Wait()

	return Report{Steps: results}, nil
}
