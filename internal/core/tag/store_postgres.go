// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/studydeck/internal/core/content"
	"github.com/taibuivan/studydeck/internal/platform/database/schema"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var tagColumns = strings.Join(schema.CoreTag.Columns(), ", ")

func whereClause(filter content.Filter) (string, []any) {
	where := []string{fmt.Sprintf("%s = $1", schema.CoreTag.GroupID)}
	args := []any{filter.GroupID}

	if filter.HasTagClause() {
		args = append(args, filter.TagNames)
		where = append(where, fmt.Sprintf("%s = ANY($%d)", schema.CoreTag.Name, len(args)))
	}

	return " WHERE " + strings.Join(where, " AND "), args
}

func scanTag(row pgx.Row) (*Tag, error) {
	tag := &Tag{}
	err := row.Scan(&tag.ID, &tag.GroupID, &tag.Name, &tag.Description, &tag.CreatedAt)
	return tag, err
}

func (repository *PostgresRepository) Count(context context.Context, filter content.Filter) (int, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.CoreTag.Table, where)

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_tags")
	}
	return total, nil
}

func (repository *PostgresRepository) Find(context context.Context, filter content.Filter, window content.Window) ([]*Tag, error) {
	where, args := whereClause(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		tagColumns, schema.CoreTag.Table, where, schema.CoreTag.ID, argID, argID+1)
	args = append(args, window.Limit, window.Offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0, window.Limit)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	return tags, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, tagColumns, schema.CoreTag.Table, schema.CoreTag.ID)

	tag, err := scanTag(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_id")
	}
	return tag, nil
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`, schema.CoreTag.Table, tagColumns)

	_, err := repository.db.Exec(context, query, tag.ID, tag.GroupID, tag.Name, tag.Description, tag.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_tag")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTag.Table, schema.CoreTag.ID)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteByGroup(context context.Context, groupID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTag.Table, schema.CoreTag.GroupID)

	result, err := repository.db.Exec(context, query, groupID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_tags_by_group")
	}
	return result.RowsAffected(), nil
}

var _ Repository = (*PostgresRepository)(nil)
