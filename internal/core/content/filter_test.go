// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/studydeck/internal/core/content"
)

/*
TestNewFilter_TagClause checks normalization of the tag-name list.
*/
func TestNewFilter_TagClause(t *testing.T) {
	tests := []struct {
		name      string
		tags      []string
		wantTags  []string
		hasClause bool
	}{
		{"no_tags", nil, nil, false},
		{"empty_list", []string{}, nil, false},
		{"only_blanks", []string{"", "  ", "\t"}, nil, false},
		{"trimmed", []string{" math "}, []string{"math"}, true},
		{"deduplicated", []string{"math", "math ", "physics"}, []string{"math", "physics"}, true},
		{"nfc_equivalent", []string{"café", "café"}, []string{"café"}, true},
		{"case_sensitive", []string{"Math", "math"}, []string{"Math", "math"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := content.NewFilter("G1", tt.tags...)

			assert.Equal(t, "G1", filter.GroupID)
			assert.Equal(t, tt.hasClause, filter.HasTagClause())
			assert.Equal(t, tt.wantTags, filter.TagNames)
		})
	}
}

/*
TestEmptyTagFilter_EqualsNoFilter ensures an empty tag list never narrows the candidate set.
*/
func TestEmptyTagFilter_EqualsNoFilter(t *testing.T) {
	ctx := context.Background()
	collection := scenarioCollection()

	plain := content.NewFilter("G1")
	blank := content.NewFilter("G1", "", " ")

	plainTotal, err := collection.Count(ctx, plain)
	require.NoError(t, err)
	blankTotal, err := collection.Count(ctx, blank)
	require.NoError(t, err)
	assert.Equal(t, plainTotal, blankTotal)

	plainItems, err := collection.Find(ctx, plain, content.Window{Limit: 10})
	require.NoError(t, err)
	blankItems, err := collection.Find(ctx, blank, content.Window{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, plainItems, blankItems)
	assert.Len(t, plainItems, 3)
}

func TestNormalizeTagName(t *testing.T) {
	assert.Equal(t, "café", content.NormalizeTagName("  café "))
	assert.Equal(t, "", content.NormalizeTagName("   "))
}
