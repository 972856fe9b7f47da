// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"context"

	"github.com/taibuivan/studydeck/internal/core/content"
)

// # Card Data Access

// Repository defines the data access contract for cards.
//
// Count and Find honour [content.Filter.GroupID] and [content.Filter.TagNames]
// and order by id ascending. DeleteByGroup makes every repository a
// cleanup.Purger for the group cascade.
type Repository interface {
	content.Collection[*Card]

	/*
		FindByID retrieves a card by its UUID.

		Returns:
		  - *Card: Hydrated entity with references and tags
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Card, error)

	// Create persists a new card. ID and timestamps are already set.
	Create(context context.Context, card *Card) error

	/*
		Update replaces the content of an existing card.

		Returns:
		  - error: dberr.ErrNotFound if the card vanished
	*/
	Update(context context.Context, card *Card) error

	// Delete removes one card. Absence yields dberr.ErrNotFound.
	Delete(context context.Context, id string) error

	/*
		DeleteByGroup removes every card of a group.

		Parameters:
		  - context: context.Context
		  - groupID: string

		Returns:
		  - int64: Number of cards removed (zero is not an error)
		  - error: Storage failures
	*/
	DeleteByGroup(context context.Context, groupID string) (int64, error)
}
