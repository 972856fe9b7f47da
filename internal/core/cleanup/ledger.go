// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cleanup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/studydeck/internal/platform/constants"
)

// # Redis Ledger

// RedisLedger stores orphans in one hash keyed by group id.
type RedisLedger struct {
	client redis.Cmdable
	key    string
}

// NewRedisLedger returns a ledger on the default orphan hash.
func NewRedisLedger(client redis.Cmdable) *RedisLedger {
	return &RedisLedger{client: client, key: constants.RedisKeyOrphanedGroups}
}

// Record upserts the orphan entry for its group.
func (ledger *RedisLedger) Record(ctx context.Context, orphan Orphan) error {
	payload, err := json.Marshal(orphan)
	if err != nil {
		return fmt.Errorf("cleanup: encode orphan: %w", err)
	}

	if err := ledger.client.HSet(ctx, ledger.key, orphan.GroupID, payload).Err(); err != nil {
		return fmt.Errorf("cleanup: record orphan %s: %w", orphan.GroupID, err)
	}

	return nil
}

// Pending lists every recorded orphan, oldest first.
func (ledger *RedisLedger) Pending(ctx context.Context) ([]Orphan, error) {
	entries, err := ledger.client.HGetAll(ctx, ledger.key).Result()
	if err != nil {
		return nil, fmt.Errorf("cleanup: list orphans: %w", err)
	}

	return decodeOrphans(entries)
}

// Resolve removes the entry for groupID. Missing entries are ignored.
func (ledger *RedisLedger) Resolve(ctx context.Context, groupID string) error {
	if err := ledger.client.HDel(ctx, ledger.key, groupID).Err(); err != nil {
		return fmt.Errorf("cleanup: resolve orphan %s: %w", groupID, err)
	}
	return nil
}

func decodeOrphans(entries map[string]string) ([]Orphan, error) {
	orphans := make([]Orphan, 0, len(entries))
	for groupID, payload := range entries {
		var orphan Orphan
		if err := json.Unmarshal([]byte(payload), &orphan); err != nil {
			return nil, fmt.Errorf("cleanup: decode orphan %s: %w", groupID, err)
		}
		orphan.GroupID = groupID
		orphans = append(orphans, orphan)
	}

	sort.Slice(orphans, func(i, j int) bool {
		return orphans[i].RecordedAt.Before(orphans[j].RecordedAt)
	})

	return orphans, nil
}

// # Log Ledger

// LogLedger is used when Redis is not configured. Orphans are only logged, so
// an operator has to find them in the logs; Pending is always empty.
type LogLedger struct {
	logger *slog.Logger
}

// NewLogLedger returns a ledger that writes orphans to logger.
func NewLogLedger(logger *slog.Logger) *LogLedger {
	return &LogLedger{logger: logger}
}

func (ledger *LogLedger) Record(ctx context.Context, orphan Orphan) error {
	ledger.logger.ErrorContext(ctx, "orphaned_dependents_unrecorded",
		slog.String("group_id", orphan.GroupID),
		slog.Any("steps", orphan.Steps),
	)
	return nil
}

func (ledger *LogLedger) Pending(context.Context) ([]Orphan, error) { return nil, nil }

func (ledger *LogLedger) Resolve(context.Context, string) error { return nil }
