// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/taibuivan/studydeck/internal/core/cleanup"
	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/core/group"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
)

// memoryRepository is an in-memory [group.Repository].
type memoryRepository struct {
	mu     sync.Mutex
	groups map[string]*group.Group
}

func newMemoryRepository(groups ...*group.Group) *memoryRepository {
	repository := &memoryRepository{groups: map[string]*group.Group{}}
	for _, g := range groups {
		repository.groups[g.ID] = g
	}
	return repository
}

func (repository *memoryRepository) matching(filter content.Filter) []*group.Group {
	var out []*group.Group
	for _, g := range repository.groups {
		if filter.Owner == "" || g.Owner == filter.Owner {
			copied := *g
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

func (repository *memoryRepository) Find(_ context.Context, filter content.Filter, window content.Window) ([]*group.Group, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	all := repository.matching(filter)
	if window.Offset >= len(all) {
		return nil, nil
	}
	return all[window.Offset:min(window.Offset+window.Limit, len(all))], nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*group.Group, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	g, ok := repository.groups[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (repository *memoryRepository) Create(_ context.Context, g *group.Group) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	copied := *g
	repository.groups[g.ID] = &copied
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, g *group.Group) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	current, ok := repository.groups[g.ID]
	if !ok || current.Owner != g.Owner {
		return dberr.ErrNotFound
	}
	copied := *g
	repository.groups[g.ID] = &copied
	return nil
}

func (repository *memoryRepository) DeleteOwned(_ context.Context, id, owner string) (*group.Group, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	g, ok := repository.groups[id]
	if !ok || g.Owner != owner {
		return nil, dberr.ErrNotFound
	}
	delete(repository.groups, id)
	return g, nil
}

// childStore counts dependents per group and deletes them on demand.
type childStore struct {
	mu      sync.Mutex
	byGroup map[string]int
	err     error
	calls   int
}

func (store *childStore) DeleteByGroup(_ context.Context, groupID string) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.calls++
	if store.err != nil {
		return 0, store.err
	}
	deleted := store.byGroup[groupID]
	delete(store.byGroup, groupID)
	return int64(deleted), nil
}

func (store *childStore) remaining(groupID string) int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.byGroup[groupID]
}

// memoryLedger records orphans in a map.
type memoryLedger struct {
	mu      sync.Mutex
	orphans map[string]cleanup.Orphan
}

func (ledger *memoryLedger) Record(_ context.Context, orphan cleanup.Orphan) error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	if ledger.orphans == nil {
		ledger.orphans = map[string]cleanup.Orphan{}
	}
	ledger.orphans[orphan.GroupID] = orphan
	return nil
}

func (ledger *memoryLedger) Pending(context.Context) ([]cleanup.Orphan, error) { return nil, nil }

func (ledger *memoryLedger) Resolve(context.Context, string) error { return nil }

type fixture struct {
	repository *memoryRepository
	cards      *childStore
	tags       *childStore
	ledger     *memoryLedger
	service    *group.Service
}

const (
	ownerID    = "user-1"
	strangerID = "user-2"
	groupID    = "0190a5b2-7c4e-7d3a-9f10-1234567890ab"
	missingID  = "0190a5b2-7c4e-7d3a-9f10-ffffffffffff"
)

func newFixture() *fixture {
	f := &fixture{
		repository: newMemoryRepository(&group.Group{ID: groupID, Name: "Biology", Owner: ownerID}),
		cards:      &childStore{byGroup: map[string]int{groupID: 3, missingID: 0, "other": 2}},
		tags:       &childStore{byGroup: map[string]int{groupID: 2, "other": 1}},
		ledger:     &memoryLedger{},
	}
	f.service = group.NewService(
		f.repository,
		cleanup.Dependents(f.cards, f.tags),
		f.ledger,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}
