// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
	mongostore "github.com/taibuivan/studydeck/internal/platform/mongo"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(mongostore.CollectionTags)}
}

type document struct {
	ID          string    `bson:"_id"`
	GroupID     string    `bson:"group_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d document) tag() *Tag {
	return &Tag{ID: d.ID, GroupID: d.GroupID, Name: d.Name, Description: d.Description, CreatedAt: d.CreatedAt.UTC()}
}

func filterDocument(filter content.Filter) bson.D {
	query := bson.D{{Key: "group_id", Value: filter.GroupID}}
	if filter.HasTagClause() {
		query = append(query, bson.E{Key: "name", Value: bson.D{{Key: "$in", Value: filter.TagNames}}})
	}
	return query
}

func (repository *MongoRepository) Count(ctx context.Context, filter content.Filter) (int, error) {
	total, err := repository.collection.CountDocuments(ctx, filterDocument(filter))
	if err != nil {
		return 0, dberr.Wrap(err, "count_tags")
	}
	return int(total), nil
}

func (repository *MongoRepository) Find(ctx context.Context, filter content.Filter, window content.Window) ([]*Tag, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(window.Offset)).
		SetLimit(int64(window.Limit))

	cursor, err := repository.collection.Find(ctx, filterDocument(filter), findOptions)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}

	var documents []document
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, dberr.Wrap(err, "decode_tags")
	}

	tags := make([]*Tag, 0, len(documents))
	for _, stored := range documents {
		tags = append(tags, stored.tag())
	}
	return tags, nil
}

func (repository *MongoRepository) FindByID(ctx context.Context, id string) (*Tag, error) {
	var stored document
	if err := repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&stored); err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_id")
	}
	return stored.tag(), nil
}

func (repository *MongoRepository) Create(ctx context.Context, tag *Tag) error {
	stored := document{ID: tag.ID, GroupID: tag.GroupID, Name: tag.Name, Description: tag.Description, CreatedAt: tag.CreatedAt}
	if _, err := repository.collection.InsertOne(ctx, stored); err != nil {
		return dberr.Wrap(err, "create_tag")
	}
	return nil
}

func (repository *MongoRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}

	if result.DeletedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *MongoRepository) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	result, err := repository.collection.DeleteMany(ctx, bson.D{{Key: "group_id", Value: groupID}})
	if err != nil {
		return 0, dberr.Wrap(err, "delete_tags_by_group")
	}
	return result.DeletedCount, nil
}

var _ Repository = (*MongoRepository)(nil)
