// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

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

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed group store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var groupColumns = strings.Join(schema.CoreStudyGroup.Columns(), ", ")

// whereClause translates the owner scope of a filter.
func whereClause(filter content.Filter) (string, []any) {
	if filter.Owner == "" {
		return "", nil
	}
	return fmt.Sprintf(" WHERE %s = $1", schema.CoreStudyGroup.Owner), []any{filter.Owner}
}

func scanGroup(row pgx.Row) (*Group, error) {
	group := &Group{}
	err := row.Scan(&group.ID, &group.Name, &group.Description, &group.Owner, &group.CreatedAt, &group.UpdatedAt)
	return group, err
}

// # Group Retrieval

/*
Count returns the number of groups matching the filter.

Parameters:
  - context: context.Context
  - filter: content.Filter (only Owner applies)

Returns:
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Count(context context.Context, filter content.Filter) (int, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.CoreStudyGroup.Table, where)

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_groups")
	}
	return total, nil
}

/*
Find returns one window of matching groups in creation order.

Parameters:
  - context: context.Context
  - filter: content.Filter
  - window: content.Window

Returns:
  - []*Group: Matching groups
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Find(context context.Context, filter content.Filter, window content.Window) ([]*Group, error) {
	where, args := whereClause(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		groupColumns, schema.CoreStudyGroup.Table, where, schema.CoreStudyGroup.ID, argID, argID+1)
	args = append(args, window.Limit, window.Offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_groups")
	}
	defer rows.Close()

	groups := make([]*Group, 0, window.Limit)
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_group")
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_groups")
	}

	return groups, nil
}

/*
FindByID retrieves a single group record by its primary key.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Group, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		groupColumns, schema.CoreStudyGroup.Table, schema.CoreStudyGroup.ID)

	group, err := scanGroup(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_group_by_id")
	}
	return group, nil
}

// # Group Mutation

/*
Create inserts a new group record.
*/
func (repository *PostgresRepository) Create(context context.Context, group *Group) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.CoreStudyGroup.Table, groupColumns)

	_, err := repository.db.Exec(context, query,
		group.ID, group.Name, group.Description, group.Owner, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_group")
	}
	return nil
}

/*
Update writes the mutable fields of an owned group.
*/
func (repository *PostgresRepository) Update(context context.Context, group *Group) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4, %s = $5 WHERE %s = $1 AND %s = $2`,
		schema.CoreStudyGroup.Table,
		schema.CoreStudyGroup.Name, schema.CoreStudyGroup.Description, schema.CoreStudyGroup.UpdatedAt,
		schema.CoreStudyGroup.ID, schema.CoreStudyGroup.Owner,
	)

	tag, err := repository.db.Exec(context, query, group.ID, group.Owner, group.Name, group.Description, group.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_group")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
DeleteOwned removes an owned group and returns the deleted row.
*/
func (repository *PostgresRepository) DeleteOwned(context context.Context, id, owner string) (*Group, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		schema.CoreStudyGroup.Table, schema.CoreStudyGroup.ID, schema.CoreStudyGroup.Owner, groupColumns)

	group, err := scanGroup(repository.db.QueryRow(context, query, id, owner))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_group")
	}
	return group, nil
}

var _ Repository = (*PostgresRepository)(nil)
