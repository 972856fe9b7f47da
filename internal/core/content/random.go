// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"math/rand/v2"

	"github.com/taibuivan/studydeck/internal/platform/apperr"
)

// ErrNoMatch is returned by [Selector.Pick] when the filter matches nothing.
var ErrNoMatch = apperr.NotFound("Matching item")

// Source produces uniform integers in [0, n). Implementations must be safe for
// concurrent use when a Selector is shared between requests.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the runtime's concurrency-safe generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Selector picks one uniformly random entity from a filtered collection
// without enumerating it.
type Selector[T any] struct {
	source Source
}

// NewSelector returns a selector drawing from source, or from math/rand/v2 when nil.
func NewSelector[T any](source Source) *Selector[T] {
	if source == nil {
		source = globalSource{}
	}
	return &Selector[T]{source: source}
}

/*
Pick counts the matches, draws k uniformly from [0, total) and fetches the
single entity at offset k.

Returns:
  - T: the chosen entity
  - int: the match count observed by the count query
  - error: ErrNoMatch when nothing matched, or when the collection shrank between
    count and fetch; storage failures otherwise
*/
func (selector *Selector[T]) Pick(ctx context.Context, collection Collection[T], filter Filter) (T, int, error) {
	var zero T

	total, err := collection.Count(ctx, filter)
	if err != nil {
		return zero, 0, err
	}

	if total <= 0 {
		return zero, 0, ErrNoMatch
	}

	k := selector.source.IntN(total)

	items, err := collection.Find(ctx, filter, Window{Offset: k, Limit: 1})
	if err != nil {
		return zero, total, err
	}

	if len(items) == 0 {
		return zero, total, ErrNoMatch
	}

	return items[0], total, nil
}
