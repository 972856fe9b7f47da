// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"slices"

	"github.com/taibuivan/studydeck/internal/core/content"
)

// item is the minimal shape the core needs: an id, a group and tag names.
type item struct {
	ID      string
	GroupID string
	Tags    []string
}

// memoryCollection applies Filter semantics over an in-memory slice kept in id order.
type memoryCollection struct {
	items []item

	countErr error
	findErr  error

	// shrink makes Find observe an empty collection after Count.
	shrink bool

	countCalls int
	findCalls  int
}

func (collection *memoryCollection) matching(filter content.Filter) []item {
	var matches []item
	for _, candidate := range collection.items {
		if filter.GroupID != "" && candidate.GroupID != filter.GroupID {
			continue
		}
		if filter.HasTagClause() && !slices.ContainsFunc(candidate.Tags, func(tag string) bool {
			return slices.Contains(filter.TagNames, tag)
		}) {
			continue
		}
		matches = append(matches, candidate)
	}
	return matches
}

func (collection *memoryCollection) Count(_ context.Context, filter content.Filter) (int, error) {
	collection.countCalls++
	if collection.countErr != nil {
		return 0, collection.countErr
	}
	return len(collection.matching(filter)), nil
}

func (collection *memoryCollection) Find(_ context.Context, filter content.Filter, window content.Window) ([]item, error) {
	collection.findCalls++
	if collection.findErr != nil {
		return nil, collection.findErr
	}
	if collection.shrink {
		return nil, nil
	}

	matches := collection.matching(filter)
	if window.Offset >= len(matches) {
		return nil, nil
	}

	end := min(window.Offset+window.Limit, len(matches))
	return matches[window.Offset:end], nil
}

// fixedSource always draws the same offset.
type fixedSource int

func (s fixedSource) IntN(n int) int { return min(int(s), n-1) }

// scenarioCollection is group G1 with c1..c3 where only c2 is tagged "math",
// plus an unrelated group.
func scenarioCollection() *memoryCollection {
	return &memoryCollection{items: []item{
		{ID: "c1", GroupID: "G1"},
		{ID: "c2", GroupID: "G1", Tags: []string{"math"}},
		{ID: "c3", GroupID: "G1", Tags: []string{"history"}},
		{ID: "x1", GroupID: "G2", Tags: []string{"math"}},
	}}
}
