// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/taibuivan/studydeck/internal/core/card"
	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
)

// memoryRepository is an in-memory [card.Repository] honouring group and tag clauses.
type memoryRepository struct {
	mu    sync.Mutex
	cards map[string]*card.Card
}

func newMemoryRepository(cards ...*card.Card) *memoryRepository {
	repository := &memoryRepository{cards: map[string]*card.Card{}}
	for _, c := range cards {
		repository.cards[c.ID] = c
	}
	return repository
}

func matches(c *card.Card, filter content.Filter) bool {
	if c.GroupID != filter.GroupID {
		return false
	}
	if !filter.HasTagClause() {
		return true
	}
	return slices.ContainsFunc(c.Tags, func(tag card.Tag) bool {
		return slices.Contains(filter.TagNames, tag.Name)
	})
}

func (repository *memoryRepository) matching(filter content.Filter) []*card.Card {
	var out []*card.Card
	for _, c := range repository.cards {
		if matches(c, filter) {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (repository *memoryRepository) Count(_ context.Context, filter content.Filter) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.matching(filter)), nil
}

func (repository *memoryRepository) Find(_ context.Context, filter content.Filter, window content.Window) ([]*card.Card, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	all := repository.matching(filter)
	if window.Offset >= len(all) {
		return nil, nil
	}
	return all[window.Offset:min(window.Offset+window.Limit, len(all))], nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*card.Card, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	c, ok := repository.cards[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (repository *memoryRepository) Create(_ context.Context, c *card.Card) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	copied := *c
	repository.cards[c.ID] = &copied
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, c *card.Card) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.cards[c.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *c
	repository.cards[c.ID] = &copied
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.cards[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.cards, id)
	return nil
}

func (repository *memoryRepository) DeleteByGroup(_ context.Context, groupID string) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	var deleted int64
	for id, c := range repository.cards {
		if c.GroupID == groupID {
			delete(repository.cards, id)
			deleted++
		}
	}
	return deleted, nil
}

func (repository *memoryRepository) size() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.cards)
}

// ownerGuard knows the owner of each group.
type ownerGuard map[string]string

func (guard ownerGuard) EnsureOwned(_ context.Context, groupID, owner string) error {
	if guard[groupID] != owner {
		return apperr.NotFound("Group")
	}
	return nil
}

// fixedSource always draws the same index.
type fixedSource int

func (source fixedSource) IntN(n int) int { return min(int(source), n-1) }

const (
	ownerID    = "user-1"
	strangerID = "user-2"
	groupOne   = "0190a5b2-7c4e-7d3a-9f10-000000000001"
	groupTwo   = "0190a5b2-7c4e-7d3a-9f10-000000000002"
	missingID  = "0190a5b2-7c4e-7d3a-9f10-ffffffffffff"
	cardOne    = "0190a5b2-7c4e-7d3a-9f10-0000000000c1"
	cardTwo    = "0190a5b2-7c4e-7d3a-9f10-0000000000c2"
	cardThree  = "0190a5b2-7c4e-7d3a-9f10-0000000000c3"
	cardOther  = "0190a5b2-7c4e-7d3a-9f10-0000000000f1"
)

type fixture struct {
	repository *memoryRepository
	service    *card.Service
}

// newFixture seeds G1 with c1 and c2 tagged "math", c3 tagged "history", and one card in G2.
func newFixture(source content.Source) *fixture {
	repository := newMemoryRepository(
		&card.Card{ID: cardOne, GroupID: groupOne, Question: "2+2", Answer: "4", References: card.References{}, Tags: []card.Tag{{Name: "math"}}},
		&card.Card{ID: cardTwo, GroupID: groupOne, Question: "3*3", Answer: "9", References: card.References{}, Tags: []card.Tag{{Name: "math"}}},
		&card.Card{ID: cardThree, GroupID: groupOne, Question: "1066", Answer: "Hastings", References: card.References{}, Tags: []card.Tag{{Name: "history"}}},
		&card.Card{ID: cardOther, GroupID: groupTwo, Question: "x", Answer: "y", References: card.References{}, Tags: []card.Tag{{Name: "math"}}},
	)

	guard := ownerGuard{groupOne: ownerID, groupTwo: strangerID}

	return &fixture{
		repository: repository,
		service:    card.NewService(repository, guard, source, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}
