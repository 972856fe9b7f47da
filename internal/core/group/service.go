// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/studydeck/internal/core/cleanup"
	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
	"github.com/taibuivan/studydeck/internal/platform/validate"
	"github.com/taibuivan/studydeck/pkg/pagination"
	"github.com/taibuivan/studydeck/pkg/pointer"
	"github.com/taibuivan/studydeck/pkg/uuid"
)

// ErrGroupNotFound hides both absence and foreign ownership.
var ErrGroupNotFound = apperr.NotFound("Group")

// # Service Layer

// Service orchestrates business rules for study groups.
type Service struct {
	repo       Repository
	dependents []cleanup.Dependent
	ledger     cleanup.Ledger
	logger     *slog.Logger
}

// NewService constructs a new group [Service].
//
// dependents are deleted after the group itself; ledger records those that fail.
func NewService(repo Repository, dependents []cleanup.Dependent, ledger cleanup.Ledger, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		dependents: dependents,
		ledger:     ledger,
		logger:     logger,
	}
}

// # Group Queries

/*
ListGroups returns one page of the groups owned by owner.

Parameters:
  - context: context.Context
  - owner: string (principal id)
  - params: pagination.Params

Returns:
  - content.Page[*Group]: Items in creation order plus total
  - error: Retrieval errors
*/
func (service *Service) ListGroups(context context.Context, owner string, params pagination.Params) (content.Page[*Group], error) {
	return content.Paginate[*Group](context, service.repo, content.OwnedBy(owner), params)
}

/*
GetGroup retrieves a group by its UUID.

Returns:
  - *Group: Hydrated group entity
  - error: ErrGroupNotFound if missing
*/
func (service *Service) GetGroup(context context.Context, id string) (*Group, error) {
	group, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notFoundAsGroup(err)
	}
	return group, nil
}

/*
EnsureOwned verifies that the group exists and belongs to owner.

Card and tag services call it before attaching content to a group.

Returns:
  - error: ErrGroupNotFound for a missing or foreign group
*/
func (service *Service) EnsureOwned(context context.Context, groupID, owner string) error {
	group, err := service.GetGroup(context, groupID)
	if err != nil {
		return err
	}

	if group.Owner != owner {
		return ErrGroupNotFound
	}
	return nil
}

// # Group Mutation

/*
CreateGroup validates and stores a new group owned by owner.

Parameters:
  - context: context.Context
  - group: *Group (Name and Description from the client)
  - owner: string

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) CreateGroup(context context.Context, group *Group, owner string) error {
	group.Name = strings.TrimSpace(group.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, group.Name).
		MaxLen(FieldName, group.Name, MaxNameLength).
		MaxLen(FieldDescription, group.Description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		return err
	}

	now := time.Now().UTC()
	group.ID = uuid.New()
	group.Owner = owner
	group.CreatedAt = now
	group.UpdatedAt = now

	if err := service.repo.Create(context, group); err != nil {
		return err
	}

	service.logger.InfoContext(context, "group_created",
		slog.String("group_id", group.ID),
		slog.String("owner", owner),
	)

	return nil
}

/*
UpdateGroup applies a partial update to an owned group.

Returns:
  - *Group: The updated entity
  - error: Validation failures, ErrGroupNotFound
*/
func (service *Service) UpdateGroup(context context.Context, id, owner string, patch Patch) (*Group, error) {
	current, err := service.GetGroup(context, id)
	if err != nil {
		return nil, err
	}

	if current.Owner != owner {
		return nil, ErrGroupNotFound
	}

	current.Name = strings.TrimSpace(pointer.Fallback(patch.Name, current.Name))
	current.Description = pointer.Fallback(patch.Description, current.Description)

	validator := &validate.Validator{}
	validator.Required(FieldName, current.Name).
		MaxLen(FieldName, current.Name, MaxNameLength).
		MaxLen(FieldDescription, current.Description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, current); err != nil {
		return nil, notFoundAsGroup(err)
	}

	service.logger.InfoContext(context, "group_updated", slog.String("group_id", id))

	return current, nil
}

/*
DeleteGroup removes an owned group and then all of its cards and tags.

The group delete commits first. Dependent deletes run concurrently afterwards
and never undo it: when one fails, the group is still reported as deleted, the
failure is logged and the pending step is parked in the orphan ledger.

Parameters:
  - context: context.Context
  - id: string
  - owner: string

Returns:
  - *Group: The group as it was before deletion
  - content.Report: Outcome of every dependent step
  - error: ErrGroupNotFound, or a storage error from the group delete
*/
func (service *Service) DeleteGroup(ctx context.Context, id, owner string) (*Group, content.Report, error) {
	var deleted *Group

	cascade := content.NewCascade(cleanup.Steps(id, service.dependents)...)

	report, err := cascade.Run(ctx, func(rootCtx context.Context) error {
		group, err := service.repo.DeleteOwned(rootCtx, id, owner)
		if err != nil {
			return notFoundAsGroup(err)
		}
		deleted = group
		return nil
	})
	if err != nil {
		return nil, content.Report{}, err
	}

	if !report.Complete() {
		service.recordOrphan(ctx, deleted, report)
	}

	service.logger.InfoContext(ctx, "group_deleted",
		slog.String("group_id", id),
		slog.Bool("cascade_complete", report.Complete()),
	)

	return deleted, report, nil
}

// recordOrphan logs every failed step and parks the group in the ledger.
func (service *Service) recordOrphan(ctx context.Context, group *Group, report content.Report) {
	for _, step := range report.Failed() {
		service.logger.ErrorContext(ctx, "cascade_step_failed",
			slog.String("group_id", group.ID),
			slog.String("step", step.Name),
			slog.Any("error", step.Err),
		)
	}

	orphan := cleanup.NewOrphan(group.ID, group.Owner, report)
	if err := service.ledger.Record(context.WithoutCancel(ctx), orphan); err != nil {
		service.logger.ErrorContext(ctx, "orphan_record_failed",
			slog.String("group_id", group.ID),
			slog.Any("steps", orphan.Steps),
			slog.Any("error", err),
		)
	}
}

// notFoundAsGroup re-issues the generic storage NotFound with the resource name.
func notFoundAsGroup(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return ErrGroupNotFound
	}
	return err
}
