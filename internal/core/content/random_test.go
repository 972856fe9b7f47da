// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/studydeck/internal/core/content"
)

/*
TestPick_NotFoundIffEmpty ties NotFound to a zero count.
*/
func TestPick_NotFoundIffEmpty(t *testing.T) {
	ctx := context.Background()
	selector := content.NewSelector[item](rand.New(rand.NewPCG(1, 2)))

	tests := []struct {
		name   string
		filter content.Filter
		empty  bool
	}{
		{"whole_group", content.NewFilter("G1"), false},
		{"tagged_subset", content.NewFilter("G1", "math"), false},
		{"unknown_tag", content.NewFilter("G1", "biology"), true},
		{"unknown_group", content.NewFilter("G9"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection := scenarioCollection()

			count, err := collection.Count(ctx, tt.filter)
			require.NoError(t, err)

			_, total, err := selector.Pick(ctx, collection, tt.filter)
			assert.Equal(t, count, total)

			if tt.empty {
				assert.ErrorIs(t, err, content.ErrNoMatch)
				assert.Equal(t, 0, collection.findCalls)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestPick_Uniformity draws many times over M entities and checks each share.
*/
func TestPick_Uniformity(t *testing.T) {
	const (
		size   = 5
		trials = 20000
	)

	ctx := context.Background()
	collection := groupOf(size)
	selector := content.NewSelector[item](rand.New(rand.NewPCG(42, 7)))

	counts := make(map[string]int, size)
	for range trials {
		picked, _, err := selector.Pick(ctx, collection, content.NewFilter("G1"))
		require.NoError(t, err)
		counts[picked.ID]++
	}

	require.Len(t, counts, size)

	expected := float64(trials) / size
	chiSquare := 0.0
	for id, observed := range counts {
		assert.InDelta(t, expected, float64(observed), expected*0.1, "entity %s", id)
		diff := float64(observed) - expected
		chiSquare += diff * diff / expected
	}

	// 99.9th percentile of chi-square with 4 degrees of freedom.
	assert.Less(t, chiSquare, 18.47)
}

/*
TestPick_Scenario is the three-card group where only c2 carries "math".
*/
func TestPick_Scenario(t *testing.T) {
	ctx := context.Background()
	collection := scenarioCollection()
	selector := content.NewSelector[item](rand.New(rand.NewPCG(3, 4)))

	for range 200 {
		picked, total, err := selector.Pick(ctx, collection, content.NewFilter("G1", "math"))
		require.NoError(t, err)
		assert.Equal(t, "c2", picked.ID)
		assert.Equal(t, 1, total)
	}

	const trials = 6000
	counts := map[string]int{}
	for range trials {
		picked, total, err := selector.Pick(ctx, collection, content.NewFilter("G1"))
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		counts[picked.ID]++
	}

	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, keys(counts))
	for id, observed := range counts {
		assert.InDelta(t, trials/3, observed, trials*0.05, "card %s", id)
	}
}

/*
TestPick_OffsetAndRace covers the fetch offset and a collection that shrank after counting.
*/
func TestPick_OffsetAndRace(t *testing.T) {
	ctx := context.Background()

	picked, _, err := content.NewSelector[item](fixedSource(2)).Pick(ctx, scenarioCollection(), content.NewFilter("G1"))
	require.NoError(t, err)
	assert.Equal(t, "c3", picked.ID)

	shrinking := scenarioCollection()
	shrinking.shrink = true
	_, total, err := content.NewSelector[item](nil).Pick(ctx, shrinking, content.NewFilter("G1"))
	assert.ErrorIs(t, err, content.ErrNoMatch)
	assert.Equal(t, 3, total)

	storageDown := errors.New("i/o timeout")
	_, _, err = content.NewSelector[item](nil).Pick(ctx, &memoryCollection{countErr: storageDown}, content.NewFilter("G1"))
	assert.ErrorIs(t, err, storageDown)
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
