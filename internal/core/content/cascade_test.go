// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/studydeck/internal/core/content"
)

func countingStep(name string, deleted int64, err error, calls *atomic.Int32) content.Step {
	return content.Step{Name: name, Run: func(context.Context) (int64, error) {
		calls.Add(1)
		return deleted, err
	}}
}

/*
TestCascade_RootFailureStops leaves dependents untouched when the root delete fails.
*/
func TestCascade_RootFailureStops(t *testing.T) {
	var calls atomic.Int32
	rootErr := errors.New("group not found")

	cascade := content.NewCascade(countingStep("cards", 3, nil, &calls), countingStep("tags", 2, nil, &calls))

	report, err := cascade.Run(context.Background(), func(context.Context) error { return rootErr })

	assert.ErrorIs(t, err, rootErr)
	assert.Empty(t, report.Steps)
	assert.Zero(t, calls.Load())
}

/*
TestCascade_AllStepsAttempted runs every dependent even when one fails.
*/
func TestCascade_AllStepsAttempted(t *testing.T) {
	var calls atomic.Int32
	stepErr := errors.New("storage unavailable")

	cascade := content.NewCascade(countingStep("cards", 0, stepErr, &calls), countingStep("tags", 2, nil, &calls))

	report, err := cascade.Run(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load())
	require.Len(t, report.Steps, 2)

	assert.Equal(t, "cards", report.Steps[0].Name)
	assert.True(t, report.Steps[0].Pending)
	assert.Equal(t, "tags", report.Steps[1].Name)
	assert.False(t, report.Steps[1].Pending)
	assert.EqualValues(t, 2, report.Steps[1].Deleted)

	assert.False(t, report.Complete())
	assert.Len(t, report.Failed(), 1)
	assert.ErrorIs(t, report.Err(), stepErr)
}

/*
TestCascade_DetachedFromCancellation keeps dependents alive after the caller goes away.
*/
func TestCascade_DetachedFromCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	observed := make(chan error, 1)
	cascade := content.NewCascade(content.Step{Name: "cards", Run: func(stepCtx context.Context) (int64, error) {
		observed <- stepCtx.Err()
		_, hasDeadline := stepCtx.Deadline()
		assert.True(t, hasDeadline)
		return 1, nil
	}})

	report, err := cascade.Run(ctx, func(context.Context) error {
		cancel()
		return nil
	})
	require.NoError(t, err)

	assert.NoError(t, <-observed)
	assert.True(t, report.Complete())
	assert.NoError(t, report.Err())
}

/*
TestCascade_StepTimeout bounds a hung dependent.
*/
func TestCascade_StepTimeout(t *testing.T) {
	cascade := content.NewCascade(content.Step{Name: "tags", Run: func(stepCtx context.Context) (int64, error) {
		<-stepCtx.Done()
		return 0, stepCtx.Err()
	}}).WithStepTimeout(10 * time.Millisecond)

	report, err := cascade.Run(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)

	require.Len(t, report.Failed(), 1)
	assert.ErrorIs(t, report.Failed()[0].Err, context.DeadlineExceeded)
}
