// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/studydeck/internal/core/cleanup"
	"github.com/taibuivan/studydeck/internal/core/group"
	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/pkg/pagination"
	"github.com/taibuivan/studydeck/pkg/pointer"
)

/*
TestDeleteGroup_Cascade removes the group and every dependent card and tag.
*/
func TestDeleteGroup_Cascade(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	deleted, report, err := f.service.DeleteGroup(ctx, groupID, ownerID)
	require.NoError(t, err)

	assert.Equal(t, "Biology", deleted.Name)
	assert.True(t, report.Complete())
	require.Len(t, report.Steps, 2)
	assert.EqualValues(t, 3, report.Steps[0].Deleted)
	assert.EqualValues(t, 2, report.Steps[1].Deleted)

	assert.Zero(t, f.cards.remaining(groupID))
	assert.Zero(t, f.tags.remaining(groupID))
	assert.Equal(t, 2, f.cards.remaining("other"))

	_, err = f.service.GetGroup(ctx, groupID)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
	assert.Empty(t, f.ledger.orphans)
}

/*
TestDeleteGroup_Missing reports NotFound and leaves dependents intact.
*/
func TestDeleteGroup_Missing(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		owner string
	}{
		{"nonexistent_id", missingID, ownerID},
		{"foreign_owner", groupID, strangerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, _, err := f.service.DeleteGroup(context.Background(), tt.id, tt.owner)

			assert.ErrorIs(t, err, group.ErrGroupNotFound)
			assert.Zero(t, f.cards.calls)
			assert.Zero(t, f.tags.calls)
			assert.Equal(t, 3, f.cards.remaining(groupID))
			assert.Equal(t, 2, f.tags.remaining(groupID))
		})
	}
}

/*
TestDeleteGroup_PartialFailure keeps the group deleted and parks the failed step.
*/
func TestDeleteGroup_PartialFailure(t *testing.T) {
	f := newFixture()
	f.cards.err = errors.New("connection reset")

	deleted, report, err := f.service.DeleteGroup(context.Background(), groupID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	assert.False(t, report.Complete())
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, cleanup.StepCards, failed[0].Name)

	// The sibling step still ran.
	assert.Equal(t, 1, f.tags.calls)
	assert.Zero(t, f.tags.remaining(groupID))

	orphan, ok := f.ledger.orphans[groupID]
	require.True(t, ok)
	assert.Equal(t, []string{cleanup.StepCards}, orphan.Steps)
	assert.Equal(t, ownerID, orphan.Owner)

	_, err = f.service.GetGroup(context.Background(), groupID)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}

/*
TestDeleteGroup_ConcurrentRace lets exactly one of two deletes win.
*/
func TestDeleteGroup_ConcurrentRace(t *testing.T) {
	f := newFixture()

	results := make(chan error, 2)
	for range 2 {
		go func() {
			_, _, err := f.service.DeleteGroup(context.Background(), groupID, ownerID)
			results <- err
		}()
	}

	var succeeded, notFound int
	for range 2 {
		err := <-results
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, group.ErrGroupNotFound):
			notFound++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, notFound)
}

/*
TestCreateGroup_Validation enforces required and length rules.
*/
func TestCreateGroup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   group.Group
		wantErr bool
	}{
		{"valid", group.Group{Name: "Chemistry"}, false},
		{"blank_name", group.Group{Name: "   "}, true},
		{"long_name", group.Group{Name: strings.Repeat("a", group.MaxNameLength+1)}, true},
		{"long_description", group.Group{Name: "ok", Description: strings.Repeat("d", group.MaxDescriptionLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			input := tt.input

			err := f.service.CreateGroup(context.Background(), &input, ownerID)
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}

			require.NoError(t, err)
			assert.Len(t, input.ID, 36)
			assert.Equal(t, ownerID, input.Owner)
			assert.False(t, input.CreatedAt.IsZero())
		})
	}
}

/*
TestUpdateGroup_Patch keeps omitted fields and hides foreign groups.
*/
func TestUpdateGroup_Patch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	updated, err := f.service.UpdateGroup(ctx, groupID, ownerID, group.Patch{Description: pointer.To("Cells and genes")})
	require.NoError(t, err)
	assert.Equal(t, "Biology", updated.Name)
	assert.Equal(t, "Cells and genes", updated.Description)

	_, err = f.service.UpdateGroup(ctx, groupID, strangerID, group.Patch{Name: pointer.To("Mine now")})
	assert.ErrorIs(t, err, group.ErrGroupNotFound)

	_, err = f.service.UpdateGroup(ctx, groupID, ownerID, group.Patch{Name: pointer.To("")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestEnsureOwned distinguishes owners from strangers.
*/
func TestEnsureOwned(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.NoError(t, f.service.EnsureOwned(ctx, groupID, ownerID))
	assert.ErrorIs(t, f.service.EnsureOwned(ctx, groupID, strangerID), group.ErrGroupNotFound)
	assert.ErrorIs(t, f.service.EnsureOwned(ctx, missingID, ownerID), group.ErrGroupNotFound)
}

/*
TestListGroups_OwnerScope only pages through the caller's groups.
*/
func TestListGroups_OwnerScope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, name := range []string{"Physics", "History"} {
		require.NoError(t, f.service.CreateGroup(ctx, &group.Group{Name: name}, ownerID))
	}
	require.NoError(t, f.service.CreateGroup(ctx, &group.Group{Name: "Secret"}, strangerID))

	page, err := f.service.ListGroups(ctx, ownerID, pagination.Params{Page: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 2)

	for _, g := range page.Items {
		assert.Equal(t, ownerID, g.Owner)
	}
}
