// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

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

// MongoRepository implements [Repository] on a MongoDB collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository constructs a MongoDB backed card store.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(mongostore.CollectionCards)}
}

// document is the stored shape of a card. References are flattened so the
// driver never sees the interface values.
type document struct {
	ID         string              `bson:"_id"`
	GroupID    string              `bson:"group_id"`
	Question   string              `bson:"question"`
	Answer     string              `bson:"answer"`
	References []ReferenceDocument `bson:"references"`
	Tags       []Tag               `bson:"tags"`
	CreatedAt  time.Time           `bson:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at"`
}

func toDocument(card *Card) document {
	tags := card.Tags
	if tags == nil {
		tags = []Tag{}
	}

	return document{
		ID:         card.ID,
		GroupID:    card.GroupID,
		Question:   card.Question,
		Answer:     card.Answer,
		References: card.References.Documents(),
		Tags:       tags,
		CreatedAt:  card.CreatedAt,
		UpdatedAt:  card.UpdatedAt,
	}
}

func (d document) card() (*Card, error) {
	refs, err := FromDocuments(d.References)
	if err != nil {
		return nil, err
	}

	tags := d.Tags
	if tags == nil {
		tags = []Tag{}
	}

	return &Card{
		ID:         d.ID,
		GroupID:    d.GroupID,
		Question:   d.Question,
		Answer:     d.Answer,
		References: refs,
		Tags:       tags,
		// The driver decodes datetimes in local time.
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

// filterDocument translates a filter: {group_id: G, "tags.name": {$in: [...]}}.
func filterDocument(filter content.Filter) bson.D {
	query := bson.D{{Key: "group_id", Value: filter.GroupID}}
	if filter.HasTagClause() {
		query = append(query, bson.E{Key: "tags.name", Value: bson.D{{Key: "$in", Value: filter.TagNames}}})
	}
	return query
}

func (repository *MongoRepository) Count(ctx context.Context, filter content.Filter) (int, error) {
	total, err := repository.collection.CountDocuments(ctx, filterDocument(filter))
	if err != nil {
		return 0, dberr.Wrap(err, "count_cards")
	}
	return int(total), nil
}

func (repository *MongoRepository) Find(ctx context.Context, filter content.Filter, window content.Window) ([]*Card, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(window.Offset)).
		SetLimit(int64(window.Limit))

	cursor, err := repository.collection.Find(ctx, filterDocument(filter), findOptions)
	if err != nil {
		return nil, dberr.Wrap(err, "list_cards")
	}

	var documents []document
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, dberr.Wrap(err, "decode_cards")
	}

	cards := make([]*Card, 0, len(documents))
	for _, stored := range documents {
		card, err := stored.card()
		if err != nil {
			return nil, dberr.Wrap(err, "decode_card")
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (repository *MongoRepository) FindByID(ctx context.Context, id string) (*Card, error) {
	var stored document
	if err := repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&stored); err != nil {
		return nil, dberr.Wrap(err, "get_card_by_id")
	}

	card, err := stored.card()
	if err != nil {
		return nil, dberr.Wrap(err, "decode_card")
	}
	return card, nil
}

func (repository *MongoRepository) Create(ctx context.Context, card *Card) error {
	if _, err := repository.collection.InsertOne(ctx, toDocument(card)); err != nil {
		return dberr.Wrap(err, "create_card")
	}
	return nil
}

func (repository *MongoRepository) Update(ctx context.Context, card *Card) error {
	stored := toDocument(card)

	result, err := repository.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: card.ID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "question", Value: stored.Question},
			{Key: "answer", Value: stored.Answer},
			{Key: "references", Value: stored.References},
			{Key: "tags", Value: stored.Tags},
			{Key: "updated_at", Value: stored.UpdatedAt},
		}}},
	)
	if err != nil {
		return dberr.Wrap(err, "update_card")
	}

	if result.MatchedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *MongoRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return dberr.Wrap(err, "delete_card")
	}

	if result.DeletedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *MongoRepository) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	result, err := repository.collection.DeleteMany(ctx, bson.D{{Key: "group_id", Value: groupID}})
	if err != nil {
		return 0, dberr.Wrap(err, "delete_cards_by_group")
	}
	return result.DeletedCount, nil
}

var _ Repository = (*MongoRepository)(nil)
