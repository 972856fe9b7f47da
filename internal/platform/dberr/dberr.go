// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Both storage backends (pgx and the MongoDB driver) funnel their failures
// through [Wrap] so that services only ever see [apperr.AppError] values.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taibuivan/studydeck/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes we classify explicitly.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateInvalidTextRepr     = "22P02"
	sqlStateQueryCanceled       = "57014"
	sqlStateCannotConnectNow    = "57P03"
	sqlStateConnectionException = "08006"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	//
	// Services compare against it with [errors.Is] and re-issue a resource-specific
	// [apperr.NotFound].
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action names the failed operation (e.g. "delete_cards_by_group") and is kept
// on the cause for server-side logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 0. Already classified upstream
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 2. Transient I/O: the caller may retry later
	if isUnavailable(err) {
		return apperr.StorageUnavailable(cause)
	}

	// 3. Constraint and input classes
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case sqlStateUniqueViolation:
			return apperr.Conflict("Resource already exists")
		case sqlStateInvalidTextRepr:
			return apperr.MalformedID("id")
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Resource already exists")
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(cause)
}

// isUnavailable reports whether err is a connectivity or deadline failure.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectError *pgconn.ConnectError
	if errors.As(err, &connectError) || pgconn.Timeout(err) {
		return true
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case sqlStateQueryCanceled, sqlStateCannotConnectNow, sqlStateConnectionException:
			return true
		}
	}

	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}
