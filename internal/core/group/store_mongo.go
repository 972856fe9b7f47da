// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
	mongostore "github.com/taibuivan/studydeck/internal/platform/mongo"
)

// MongoRepository implements [Repository] on a MongoDB collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository constructs a MongoDB backed group store.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(mongostore.CollectionGroups)}
}

func filterDocument(filter content.Filter) bson.D {
	document := bson.D{}
	if filter.Owner != "" {
		document = append(document, bson.E{Key: "owner", Value: filter.Owner})
	}
	return document
}

func (repository *MongoRepository) Count(ctx context.Context, filter content.Filter) (int, error) {
	total, err := repository.collection.CountDocuments(ctx, filterDocument(filter))
	if err != nil {
		return 0, dberr.Wrap(err, "count_groups")
	}
	return int(total), nil
}

func (repository *MongoRepository) Find(ctx context.Context, filter content.Filter, window content.Window) ([]*Group, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(window.Offset)).
		SetLimit(int64(window.Limit))

	cursor, err := repository.collection.Find(ctx, filterDocument(filter), findOptions)
	if err != nil {
		return nil, dberr.Wrap(err, "list_groups")
	}

	groups := make([]*Group, 0, window.Limit)
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, dberr.Wrap(err, "decode_groups")
	}
	return groups, nil
}

func (repository *MongoRepository) FindByID(ctx context.Context, id string) (*Group, error) {
	group := &Group{}
	if err := repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(group); err != nil {
		return nil, dberr.Wrap(err, "get_group_by_id")
	}
	return group, nil
}

func (repository *MongoRepository) Create(ctx context.Context, group *Group) error {
	if _, err := repository.collection.InsertOne(ctx, group); err != nil {
		return dberr.Wrap(err, "create_group")
	}
	return nil
}

func (repository *MongoRepository) Update(ctx context.Context, group *Group) error {
	result, err := repository.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: group.ID}, {Key: "owner", Value: group.Owner}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: group.Name},
			{Key: "description", Value: group.Description},
			{Key: "updated_at", Value: group.UpdatedAt},
		}}},
	)
	if err != nil {
		return dberr.Wrap(err, "update_group")
	}

	if result.MatchedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *MongoRepository) DeleteOwned(ctx context.Context, id, owner string) (*Group, error) {
	group := &Group{}
	err := repository.collection.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}, {Key: "owner", Value: owner}}).Decode(group)
	if err != nil {
		return nil, dberr.Wrap(err, "delete_group")
	}
	return group, nil
}

var _ Repository = (*MongoRepository)(nil)
