// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/dberr"
)

/*
TestWrap_Classification verifies that driver errors map onto the application taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"pgx_no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"mongo_no_documents", mongo.ErrNoDocuments, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique_violation", &pgconn.PgError{Code: "23505"}, apperr.CodeConflict},
		{"invalid_uuid_text", &pgconn.PgError{Code: "22P02"}, apperr.CodeValidation},
		{"query_canceled", &pgconn.PgError{Code: "57014"}, apperr.CodeServiceUnavailable},
		{"deadline_exceeded", context.DeadlineExceeded, apperr.CodeServiceUnavailable},
		{"unknown", errors.New("boom"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			require.Error(t, wrapped)

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
		})
	}
}

/*
TestWrap_NotFoundSentinel ensures services can detect absence with errors.Is.
*/
func TestWrap_NotFoundSentinel(t *testing.T) {
	assert.ErrorIs(t, dberr.Wrap(pgx.ErrNoRows, "find"), dberr.ErrNotFound)
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrap_PassThrough keeps already-classified errors intact.
*/
func TestWrap_PassThrough(t *testing.T) {
	original := apperr.Forbidden("nope")
	assert.Same(t, original, dberr.Wrap(original, "noop"))
}
