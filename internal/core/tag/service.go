// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
	"github.com/taibuivan/studydeck/internal/platform/validate"
	"github.com/taibuivan/studydeck/pkg/pagination"
	"github.com/taibuivan/studydeck/pkg/uuid"
)

var ErrTagNotFound = apperr.NotFound("Tag")

// GroupGuard checks that a group exists and belongs to a principal.
type GroupGuard interface {
	EnsureOwned(ctx context.Context, groupID, owner string) error
}

type Service struct {
	repo   Repository
	groups GroupGuard
	logger *slog.Logger
}

func NewService(repo Repository, groups GroupGuard, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		groups: groups,
		logger: logger,
	}
}

func (service *Service) ListTags(context context.Context, groupID string, names []string, params pagination.Params) (content.Page[*Tag], error) {
	return content.Paginate[*Tag](context, service.repo, content.NewFilter(groupID, names...), params)
}

func (service *Service) GetTag(context context.Context, id string) (*Tag, error) {
	tag, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notFoundAsTag(err)
	}
	return tag, nil
}

/*
CreateTag registers a tag in a group owned by owner.

The name is stored normalized so that it matches the card tag filter.
*/
func (service *Service) CreateTag(context context.Context, tag *Tag, owner string) error {
	tag.Name = content.NormalizeTagName(tag.Name)
	tag.Description = strings.TrimSpace(tag.Description)

	validator := &validate.Validator{}
	validator.Required(FieldGroupID, tag.GroupID).
		Required(FieldName, tag.Name).
		MaxLen(FieldName, tag.Name, MaxNameLength).
		MaxLen(FieldDescription, tag.Description, MaxDescriptionLength)
	if tag.GroupID != "" {
		validator.UUID(FieldGroupID, tag.GroupID)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.groups.EnsureOwned(context, tag.GroupID, owner); err != nil {
		return err
	}

	tag.ID = uuid.New()
	tag.CreatedAt = time.Now().UTC()

	if err := service.repo.Create(context, tag); err != nil {
		return err
	}

	service.logger.InfoContext(context, "tag_created",
		slog.String("tag_id", tag.ID),
		slog.String("group_id", tag.GroupID),
	)
	return nil
}

// DeleteTag removes a tag of an owned group. Cards keep their embedded copies.
func (service *Service) DeleteTag(context context.Context, id, owner string) error {
	tag, err := service.GetTag(context, id)
	if err != nil {
		return err
	}

	if err := service.groups.EnsureOwned(context, tag.GroupID, owner); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return notFoundAsTag(err)
	}

	service.logger.InfoContext(context, "tag_deleted", slog.String("tag_id", id))
	return nil
}

func notFoundAsTag(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return ErrTagNotFound
	}
	return err
}
