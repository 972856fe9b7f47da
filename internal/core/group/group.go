// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package group manages study groups, the owned top-level collections of cards and tags.

# Core Responsibility

  - Ownership: Every [Group] belongs to the principal that created it.
  - Lifecycle: Create, rename and describe groups.
  - Integrity: Deleting a group cascades to its cards and tags; storage does not
    enforce the relation, this package does.
*/
package group

import "time"

// # Core Entities

// Group is an owned collection of study content.
type Group struct {
	ID          string    `json:"id" bson:"_id"` // UUIDv7
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Owner       string    `json:"owner" bson:"owner"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Patch carries the mutable fields of a partial update. Nil fields are kept.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// # Validation Limits

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
)

// # Field Identifiers

const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldGroupID     = "groupID"
)
