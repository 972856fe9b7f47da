// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/studydeck/pkg/uuid"
)

func TestNew_IsValidAndOrdered(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.True(t, uuid.Valid(second))
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:13], second[:13], "v7 ids share a millisecond-ordered prefix")
}

func TestValid(t *testing.T) {
	assert.False(t, uuid.Valid("ayy_lmao"))
	assert.False(t, uuid.Valid(""))
	assert.False(t, uuid.Valid("0190a0b4c5d67e8f9a0b1c2d3e4f5a6b"))
	assert.True(t, uuid.Valid("0190a0b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"))
}
