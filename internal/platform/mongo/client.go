// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mongo provides a managed MongoDB client for the document storage backend.

Collections hold the same entities as the PostgreSQL tables; ids are UUIDv7
strings stored in "_id" so both backends agree on ordering and format.

Core Responsibilities:

  - Connectivity: Connects and pings at startup, disconnects on shutdown.
  - Bootstrap: Creates the secondary indexes the list and quiz queries rely on.
*/
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// # Collection Names

const (
	CollectionGroups = "groups"
	CollectionCards  = "cards"
	CollectionTags   = "tags"
)

const (
	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
	maxPoolSize    = 20
)

// NewClient connects to MongoDB and returns a handle on the named database.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - uri: A mongodb:// or mongodb+srv:// connection string.
//   - database: Database holding the study collections.
//   - logger: Structured logger for connection events.
func NewClient(ctx context.Context, uri, database string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: failed to connect: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, err
	}

	logger.Info("mongo_client_connected", slog.String("database", database))

	return client, client.Database(database), nil
}

// Ping verifies that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}

	return nil
}

// EnsureIndexes creates the secondary indexes used by scoped listing,
// tag-filtered quiz selection and cascade deletes. It is idempotent.
func EnsureIndexes(ctx context.Context, database *mongo.Database, logger *slog.Logger) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionGroups: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("owner_id")},
		},
		CollectionCards: {
			{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("group_id_id")},
			{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "tags.name", Value: 1}}, Options: options.Index().SetName("group_id_tags_name")},
		},
		CollectionTags: {
			{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("group_id_id")},
		},
	}

	for collection, models := range indexes {
		names, err := database.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("mongo: create indexes on %s: %w", collection, err)
		}
		logger.Info("mongo_indexes_ensured",
			slog.String("collection", collection),
			slog.Any("indexes", names),
		)
	}

	return nil
}
