// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/database/schema"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx. References and tags
// live in JSONB columns.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed card store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var cardColumns = strings.Join(schema.CoreCard.Columns(), ", ")

/*
whereClause translates a filter into SQL predicates.

The group clause is always present. A tag clause matches when any embedded tag
name is in the requested set:

	EXISTS (SELECT 1 FROM jsonb_array_elements(tags) t WHERE t->>'name' = ANY($2))
*/
func whereClause(filter content.Filter) (string, []any) {
	where := []string{fmt.Sprintf("%s = $1", schema.CoreCard.GroupID)}
	args := []any{filter.GroupID}

	if filter.HasTagClause() {
		args = append(args, filter.TagNames)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(%s) t WHERE t->>'name' = ANY($%d))",
			schema.CoreCard.Tags, len(args),
		))
	}

	return " WHERE " + strings.Join(where, " AND "), args
}

func scanCard(row pgx.Row) (*Card, error) {
	card := &Card{}
	var refs, tags []byte

	err := row.Scan(&card.ID, &card.GroupID, &card.Question, &card.Answer, &refs, &tags, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(refs, &card.References); err != nil {
		return nil, fmt.Errorf("decode references: %w", err)
	}
	if err := json.Unmarshal(tags, &card.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	return card, nil
}

// encodeContent serializes the JSONB columns of a card.
func encodeContent(card *Card) ([]byte, []byte, error) {
	refs, err := json.Marshal(card.References)
	if err != nil {
		return nil, nil, err
	}

	tags := card.Tags
	if tags == nil {
		tags = []Tag{}
	}

	encodedTags, err := json.Marshal(tags)
	if err != nil {
		return nil, nil, err
	}
	return refs, encodedTags, nil
}

// # Card Retrieval

/*
Count returns the number of cards matching the filter.

Parameters:
  - context: context.Context
  - filter: content.Filter

Returns:
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Count(context context.Context, filter content.Filter) (int, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.CoreCard.Table, where)

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_cards")
	}
	return total, nil
}

/*
Find returns one window of matching cards ordered by id.
*/
func (repository *PostgresRepository) Find(context context.Context, filter content.Filter, window content.Window) ([]*Card, error) {
	where, args := whereClause(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		cardColumns, schema.CoreCard.Table, where, schema.CoreCard.ID, argID, argID+1)
	args = append(args, window.Limit, window.Offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_cards")
	}
	defer rows.Close()

	cards := make([]*Card, 0, window.Limit)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_card")
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_cards")
	}

	return cards, nil
}

/*
FindByID retrieves a single card by its primary key.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Card, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		cardColumns, schema.CoreCard.Table, schema.CoreCard.ID)

	card, err := scanCard(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_card_by_id")
	}
	return card, nil
}

// # Card Mutation

/*
Create inserts a new card record.
*/
func (repository *PostgresRepository) Create(context context.Context, card *Card) error {
	refs, tags, err := encodeContent(card)
	if err != nil {
		return dberr.Wrap(err, "encode_card")
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.CoreCard.Table, cardColumns)

	_, err = repository.db.Exec(context, query,
		card.ID, card.GroupID, card.Question, card.Answer, refs, tags, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_card")
	}
	return nil
}

/*
Update rewrites the content columns of a card.
*/
func (repository *PostgresRepository) Update(context context.Context, card *Card) error {
	refs, tags, err := encodeContent(card)
	if err != nil {
		return dberr.Wrap(err, "encode_card")
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1`,
		schema.CoreCard.Table,
		schema.CoreCard.Question, schema.CoreCard.Answer, schema.CoreCard.References,
		schema.CoreCard.Tags, schema.CoreCard.UpdatedAt, schema.CoreCard.ID,
	)

	tag, err := repository.db.Exec(context, query, card.ID, card.Question, card.Answer, refs, tags, card.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_card")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Delete removes one card by id.
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreCard.Table, schema.CoreCard.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_card")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
DeleteByGroup removes every card of a group in one statement.
*/
func (repository *PostgresRepository) DeleteByGroup(context context.Context, groupID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreCard.Table, schema.CoreCard.GroupID)

	tag, err := repository.db.Exec(context, query, groupID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_cards_by_group")
	}
	return tag.RowsAffected(), nil
}

var _ Repository = (*PostgresRepository)(nil)
