// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
)

// Postgres SQLSTATE codes the API distinguishes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// action names the attempted operation for the conflict message, e.g.
// "create edition".
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations carry a SQLSTATE worth distinguishing
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.Conflict(fmt.Sprintf("Cannot %s: a record with the same unique value already exists", action))
		case codeForeignKeyViolation:
			return apperr.Conflict(fmt.Sprintf("Cannot %s: a referenced record does not exist", action))
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
