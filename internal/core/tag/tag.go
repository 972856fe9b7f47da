// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag manages the standalone tag catalogue of a group.
package tag

import "time"

// Tag is a named label registered in a group.
type Tag struct {
	ID          string    `json:"id"` // UUIDv7
	GroupID     string    `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

const (
	FieldTagID       = "tagID"
	FieldGroupParam  = "groupID"
	FieldGroupID     = "group_id"
	FieldName        = "name"
	FieldDescription = "description"
)
