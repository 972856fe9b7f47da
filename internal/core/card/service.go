// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
	"github.com/taibuivan/studydeck/internal/platform/validate"
	"github.com/taibuivan/studydeck/pkg/pagination"
	"github.com/taibuivan/studydeck/pkg/pointer"
	"github.com/taibuivan/studydeck/pkg/slice"
	"github.com/taibuivan/studydeck/pkg/uuid"
)

// ErrCardNotFound is returned for missing cards and cards of foreign groups.
var ErrCardNotFound = apperr.NotFound("Card")

// GroupGuard checks that a group exists and belongs to a principal.
type GroupGuard interface {
	EnsureOwned(ctx context.Context, groupID, owner string) error
}

// # Service Layer

// Service orchestrates business rules for cards and the quiz.
type Service struct {
	repo     Repository
	groups   GroupGuard
	selector *content.Selector[*Card]
	logger   *slog.Logger
}

// NewService constructs a new card [Service]. A nil source draws from math/rand/v2.
func NewService(repo Repository, groups GroupGuard, source content.Source, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		groups:   groups,
		selector: content.NewSelector[*Card](source),
		logger:   logger,
	}
}

// # Card Queries

/*
ListCards returns one page of a group's cards, optionally restricted by tag.

Parameters:
  - context: context.Context
  - groupID: string
  - tagNames: []string (empty means every card)
  - params: pagination.Params

Returns:
  - content.Page[*Card]: Items in creation order plus total
  - error: Retrieval errors
*/
func (service *Service) ListCards(context context.Context, groupID string, tagNames []string, params pagination.Params) (content.Page[*Card], error) {
	return content.Paginate[*Card](context, service.repo, content.NewFilter(groupID, tagNames...), params)
}

/*
Quiz draws one uniformly random card of a group.

Returns:
  - *Card: The drawn card, nil when nothing matched
  - int: Number of matching cards observed
  - error: Storage failures only
*/
func (service *Service) Quiz(context context.Context, groupID string, tagNames []string) (*Card, int, error) {
	card, total, err := service.selector.Pick(context, service.repo, content.NewFilter(groupID, tagNames...))
	if errors.Is(err, content.ErrNoMatch) {
		return nil, total, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return card, total, nil
}

/*
GetCard retrieves a card by its UUID.
*/
func (service *Service) GetCard(context context.Context, id string) (*Card, error) {
	card, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notFoundAsCard(err)
	}
	return card, nil
}

// # Card Mutation

/*
CreateCard validates a card and attaches it to an owned group.

Parameters:
  - context: context.Context
  - card: *Card (GroupID, Question, Answer, References and Tags from the client)
  - owner: string

Returns:
  - error: Validation failures, group.ErrGroupNotFound, persistence failures
*/
func (service *Service) CreateCard(context context.Context, card *Card, owner string) error {
	validator := &validate.Validator{}
	validator.Required(FieldGroupID, card.GroupID)
	if card.GroupID != "" {
		validator.UUID(FieldGroupID, card.GroupID)
	}

	card.Tags = prepareContent(card, validator)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.groups.EnsureOwned(context, card.GroupID, owner); err != nil {
		return err
	}

	now := time.Now().UTC()
	card.ID = uuid.New()
	card.CreatedAt = now
	card.UpdatedAt = now

	if err := service.repo.Create(context, card); err != nil {
		return err
	}

	service.logger.InfoContext(context, "card_created",
		slog.String("card_id", card.ID),
		slog.String("group_id", card.GroupID),
		slog.Int("tags", len(card.Tags)),
	)

	return nil
}

/*
UpdateCard applies a partial update to a card of an owned group.

Returns:
  - *Card: The updated entity
  - error: Validation failures, ErrCardNotFound
*/
func (service *Service) UpdateCard(context context.Context, id, owner string, patch Patch) (*Card, error) {
	current, err := service.ownedCard(context, id, owner)
	if err != nil {
		return nil, err
	}

	current.Question = pointer.Fallback(patch.Question, current.Question)
	current.Answer = pointer.Fallback(patch.Answer, current.Answer)
	current.References = pointer.Fallback(patch.References, current.References)
	current.Tags = pointer.Fallback(patch.Tags, current.Tags)

	validator := &validate.Validator{}
	current.Tags = prepareContent(current, validator)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, current); err != nil {
		return nil, notFoundAsCard(err)
	}

	service.logger.InfoContext(context, "card_updated", slog.String("card_id", id))

	return current, nil
}

/*
DeleteCard removes a card of an owned group.
*/
func (service *Service) DeleteCard(context context.Context, id, owner string) error {
	if _, err := service.ownedCard(context, id, owner); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return notFoundAsCard(err)
	}

	service.logger.InfoContext(context, "card_deleted", slog.String("card_id", id))

	return nil
}

// ownedCard loads a card and hides it when its group belongs to someone else.
func (service *Service) ownedCard(context context.Context, id, owner string) (*Card, error) {
	card, err := service.GetCard(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.groups.EnsureOwned(context, card.GroupID, owner); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// # Helpers

/*
prepareContent trims and validates the client-supplied content of a card.

Returns the tag set normalized and collapsed by name; the first occurrence of a
name wins. Blank names are reported on the validator as tags[i].name.
*/
func prepareContent(card *Card, validator *validate.Validator) []Tag {
	card.Question = strings.TrimSpace(card.Question)
	card.Answer = strings.TrimSpace(card.Answer)

	validator.Required(FieldQuestion, card.Question).
		MaxLen(FieldQuestion, card.Question, MaxQuestionLength).
		Required(FieldAnswer, card.Answer).
		MaxLen(FieldAnswer, card.Answer, MaxAnswerLength)

	if card.References == nil {
		card.References = References{}
	}
	card.References.Validate(validator)

	validator.Custom(FieldTags, len(card.Tags) > MaxTagCount, fmt.Sprintf("At most %d tags", MaxTagCount))

	tags := slice.Map(card.Tags, func(tag Tag) Tag {
		tag.Name = content.NormalizeTagName(tag.Name)
		tag.Description = strings.TrimSpace(tag.Description)
		return tag
	})
	for i, tag := range tags {
		field := fmt.Sprintf("%s[%d].name", FieldTags, i)
		validator.Required(field, tag.Name).MaxLen(field, tag.Name, MaxTagNameLength)
	}

	if tags == nil {
		return []Tag{}
	}
	return slice.UniqueBy(tags, func(tag Tag) string { return tag.Name })
}

// notFoundAsCard re-issues the generic storage NotFound with the resource name.
func notFoundAsCard(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return ErrCardNotFound
	}
	return err
}
