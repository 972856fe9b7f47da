// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package card manages question/answer cards and the quiz that draws them.

# Core Responsibility

  - Content: Defines the [Card] entity with its embedded tags and references.
  - Integrity: A card can only be attached to a group the caller owns.
  - Quiz: Draws one uniformly random card of a group, optionally by tag.
*/
package card

import "time"

// # Core Entities

// Card is a question/answer unit belonging to exactly one group.
type Card struct {
	ID         string     `json:"id"` // UUIDv7
	GroupID    string     `json:"group_id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	References References `json:"references"`
	Tags       []Tag      `json:"tags"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Tag is a label embedded in a card. Names are unique per card after normalization.
type Tag struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Patch carries the mutable fields of a partial update. Nil fields are kept.
type Patch struct {
	Question   *string     `json:"question"`
	Answer     *string     `json:"answer"`
	References *References `json:"references"`
	Tags       *[]Tag      `json:"tags"`
}

// # Validation Limits

const (
	MaxQuestionLength  = 2000
	MaxAnswerLength    = 5000
	MaxTagNameLength   = 100
	MaxReferenceCount  = 20
	MaxTagCount        = 50
	MaxReferenceLength = 2000
)

// # Field Identifiers

const (
	FieldID         = "id"
	FieldCardID     = "cardID"
	FieldGroupID    = "group_id"
	FieldGroupParam = "groupID"
	FieldQuestion   = "question"
	FieldAnswer     = "answer"
	FieldReferences = "references"
	FieldTags       = "tags"
)
