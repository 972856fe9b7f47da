// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

import (
	"context"

	"github.com/taibuivan/studydeck/internal/core/content"
)

// # Group Data Access

// Repository defines the data access contract for groups.
//
// Count and Find honour [content.Filter.Owner] and order by id ascending.
type Repository interface {
	content.Collection[*Group]

	/*
		FindByID retrieves a group by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Group: Hydrated entity
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Group, error)

	/*
		Create persists a new group.

		Parameters:
		  - context: context.Context
		  - group: *Group (ID and timestamps already set)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, group *Group) error

	/*
		Update writes name and description of a group owned by group.Owner.

		Returns:
		  - error: dberr.ErrNotFound if no owned group matched
	*/
	Update(context context.Context, group *Group) error

	/*
		DeleteOwned removes the group if it belongs to owner and returns its last state.

		Storage delete-by-id is atomic: of two concurrent calls, one gets the group
		and the other dberr.ErrNotFound.

		Parameters:
		  - context: context.Context
		  - id: string
		  - owner: string

		Returns:
		  - *Group: The deleted entity
		  - error: dberr.ErrNotFound if missing or owned by someone else
	*/
	DeleteOwned(context context.Context, id, owner string) (*Group, error)
}
