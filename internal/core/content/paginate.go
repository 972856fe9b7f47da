// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"

	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/pkg/pagination"
)

// Page is one window of a filtered collection.
type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}

// Meta returns the response metadata of the page.
func (p Page[T]) Meta() pagination.Meta {
	return pagination.NewMeta(p.Page, p.Limit, p.Total)
}

/*
Paginate returns the items of the requested page and the total match count.

Items hold at most params.Limit entities starting at params.Offset(). A page at
or past the end is an empty success; the window query is skipped.

Parameters:
  - ctx: context.Context
  - collection: Collection[T]
  - filter: Filter
  - params: pagination.Params (already validated at the boundary)

Returns:
  - Page[T]: Items is never nil
  - error: storage failures, or ValidationError for a window with limit < 1 or page < 0
*/
func Paginate[T any](ctx context.Context, collection Collection[T], filter Filter, params pagination.Params) (Page[T], error) {
	if !params.Valid() {
		return Page[T]{}, apperr.ValidationError("Invalid pagination window")
	}

	total, err := collection.Count(ctx, filter)
	if err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{Items: []T{}, Page: params.Page, Limit: params.Limit, Total: total}

	offset := params.Offset()
	if offset >= total {
		return page, nil
	}

	items, err := collection.Find(ctx, filter, Window{Offset: offset, Limit: params.Limit})
	if err != nil {
		return Page[T]{}, err
	}

	if len(items) > params.Limit {
		items = items[:params.Limit]
	}
	if items != nil {
		page.Items = items
	}

	return page, nil
}
