// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/taibuivan/studydeck/internal/core/content"
)

func TestWhereClause(t *testing.T) {
	where, args := whereClause(content.NewFilter("g1"))
	assert.Equal(t, " WHERE groupid = $1", where)
	assert.Equal(t, []any{"g1"}, args)

	where, args = whereClause(content.NewFilter("g1", "math"))
	assert.Equal(t, " WHERE groupid = $1 AND name = ANY($2)", where)
	assert.Equal(t, []any{"g1", []string{"math"}}, args)
}

func TestFilterDocument(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "group_id", Value: "g1"},
		{Key: "name", Value: bson.D{{Key: "$in", Value: []string{"math"}}}},
	}, filterDocument(content.NewFilter("g1", "math")))
}
