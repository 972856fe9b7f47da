// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/studydeck/internal/core/card"
	"github.com/taibuivan/studydeck/internal/core/cleanup"
	"github.com/taibuivan/studydeck/internal/core/group"
	"github.com/taibuivan/studydeck/internal/core/tag"
	"github.com/taibuivan/studydeck/internal/platform/config"
	"github.com/taibuivan/studydeck/internal/platform/migration"
	mongostore "github.com/taibuivan/studydeck/internal/platform/mongo"
	pgstore "github.com/taibuivan/studydeck/internal/platform/postgres"
	redisstore "github.com/taibuivan/studydeck/internal/platform/redis"
)

// backend holds the repositories of the selected storage driver.
type backend struct {
	name   string
	groups group.Repository
	cards  card.Repository
	tags   tag.Repository
	ping   func(ctx context.Context) error
	close  func()

	// prepare applies migrations (PostgreSQL) or creates indexes (MongoDB).
	prepare func(ctx context.Context) error
}

// dependents returns the cascade children in deletion report order.
func (b *backend) dependents() []cleanup.Dependent {
	return cleanup.Dependents(b.cards, b.tags)
}

// openBackend connects the storage driver named by cfg.StorageDriver.
func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		return &backend{
			name:   config.DriverPostgres,
			groups: group.NewPostgresRepository(pool),
			cards:  card.NewPostgresRepository(pool),
			tags:   tag.NewPostgresRepository(pool),
			ping: func(ctx context.Context) error {
				return pgstore.Ping(ctx, pool)
			},
			prepare: func(context.Context) error {
				return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
			},
			close: func() {
				log.Info("closing_postgres_pool")
				pool.Close()
			},
		}, nil

	case config.DriverMongo:
		client, database, err := mongostore.NewClient(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}

		return &backend{
			name:   config.DriverMongo,
			groups: group.NewMongoRepository(database),
			cards:  card.NewMongoRepository(database),
			tags:   tag.NewMongoRepository(database),
			ping: func(ctx context.Context) error {
				return mongostore.Ping(ctx, client)
			},
			prepare: func(ctx context.Context) error {
				return mongostore.EnsureIndexes(ctx, database, log)
			},
			close: func() {
				log.Info("closing_mongo_client")
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error("mongo_disconnect_failed", slog.Any("error", err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

// ledgerHandle is the orphan ledger plus its optional health probe.
type ledgerHandle struct {
	ledger cleanup.Ledger
	ping   func(ctx context.Context) error
	close  func()
}

// openLedger returns a Redis ledger when REDIS_URL is set and a log-only ledger otherwise.
func openLedger(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ledgerHandle, error) {
	if !cfg.HasRedis() {
		log.Warn("orphan_ledger_log_only", slog.String("reason", "REDIS_URL not set"))
		return &ledgerHandle{ledger: cleanup.NewLogLedger(log), close: func() {}}, nil
	}

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &ledgerHandle{
		ledger: cleanup.NewRedisLedger(rdb),
		ping: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
		close: func() {
			log.Info("closing_redis_client")
			if err := rdb.Close(); err != nil {
				log.Error("redis_close_failed", slog.Any("error", err))
			}
		},
	}, nil
}
