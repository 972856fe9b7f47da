// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content implements the selection and integrity core shared by the
group, card and tag domains.

It is storage-agnostic: repositories satisfy [Collection] and translate a
[Filter] into their own query language (SQL predicates or BSON documents).

Components:

  - Filter: group scope with an optional tag-name-membership clause.
  - Paginate: a bounded, stably ordered window plus the total match count.
  - Selector: one uniformly random match via count-then-skip.
  - Cascade: a root delete followed by independent dependent deletes.
*/
package content

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/studydeck/pkg/slice"
)

// # Filter

// Filter is a conjunction of equality and set-membership clauses.
//
// Empty fields contribute no clause. In particular an empty TagNames never
// means "match nothing".
type Filter struct {
	// GroupID scopes cards and tags to one group.
	GroupID string

	// Owner scopes groups to the principal that created them.
	Owner string

	// TagNames matches entities carrying at least one of the names.
	TagNames []string
}

// NewFilter builds a group-scoped filter. Tag names are normalized; blanks are
// dropped and duplicates collapsed, so an all-blank list yields no tag clause.
func NewFilter(groupID string, tagNames ...string) Filter {
	names := slice.Filter(slice.Map(tagNames, NormalizeTagName), func(name string) bool {
		return name != ""
	})

	filter := Filter{GroupID: groupID}
	if len(names) > 0 {
		filter.TagNames = slice.UniqueBy(names, func(name string) string { return name })
	}

	return filter
}

// OwnedBy builds a filter over the groups of one principal.
func OwnedBy(owner string) Filter {
	return Filter{Owner: owner}
}

// HasTagClause reports whether the filter restricts by tag membership.
func (f Filter) HasTagClause() bool {
	return len(f.TagNames) > 0
}

// NormalizeTagName trims surrounding space and applies Unicode NFC so that
// visually identical names compare equal. Matching stays case-sensitive.
func NormalizeTagName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// # Collection

// Window is a skip-and-take slice of an ordered result set.
type Window struct {
	Offset int
	Limit  int
}

// Collection is the read capability the core needs from a repository.
//
// Implementations must order Find results by a stable key (UUIDv7 id ascending)
// so that offsets computed from Count address the same sequence.
type Collection[T any] interface {
	Count(ctx context.Context, filter Filter) (int, error)
	Find(ctx context.Context, filter Filter, window Window) ([]T, error)
}
