// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"

	"github.com/taibuivan/studydeck/internal/core/content"
)

// Repository defines the data access contract for tags.
//
// Count and Find honour the group scope and, when present, restrict to the
// given names. DeleteByGroup serves the group cascade.
type Repository interface {
	content.Collection[*Tag]
	FindByID(context context.Context, id string) (*Tag, error)
	Create(context context.Context, tag *Tag) error
	Delete(context context.Context, id string) error
	DeleteByGroup(context context.Context, groupID string) (int64, error)
}
