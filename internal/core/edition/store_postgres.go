// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package edition provides the PostgreSQL implementation for edition data access.

It keeps the resolution engine's hot queries cheap and index-friendly:
  - Date lookups: Equality on the 'publicationdate' DATE column backed by a
    composite (status, publicationdate, createdat) index.
  - Latest lookup: A single LIMIT 1 ordered scan on the same index.
  - Window Functions: Calculates total result counts for the admin listing
    without requiring a separate 'COUNT' query.

The repository follows the platform convention of building statements from
schema column constants rather than embedding raw identifiers.
*/
package edition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/database/schema"
	"github.com/gazetapress/gazeta/internal/platform/dberr"
)

// # PostgreSQL Repository

// editionRepository implements the [Repository] interface using pgx.
type editionRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed edition store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &editionRepository{pool: pool}
}

// selectColumns is the shared projection for single-edition queries.
func selectColumns() string {
	t := schema.NewsEdition
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Title, t.Slug, t.PublicationDate, t.PDFPath, t.OGImagePath,
		t.Status, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	)
}

// scanEdition hydrates one [Edition] from a pgx row.
func scanEdition(row pgx.Row) (*Edition, error) {
	var e Edition
	var ogImagePath *string

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Slug,
		&e.PublicationDate,
		&e.PDFPath,
		&ogImagePath,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if ogImagePath != nil {
		e.OGImagePath = *ogImagePath
	}

	return &e, nil
}

// # Reader Queries

/*
FindPublishedByID returns the published edition with the given ID.

Description: Drafts, archived issues, and soft-deleted rows are invisible
to this query by construction — the reader core can only ever observe
published editions.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Edition: Hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *editionRepository) FindPublishedByID(context context.Context, id string) (*Edition, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
	`,
		selectColumns(),
		schema.NewsEdition.Table,
		schema.NewsEdition.ID, schema.NewsEdition.Status, schema.NewsEdition.DeletedAt,
	)

	e, err := scanEdition(repository.pool.QueryRow(context, query, id, StatusPublished))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Edition")
		}
		return nil, fmt.Errorf("postgres: failed to find edition by id: %w", err)
	}

	return e, nil
}

/*
FindPublishedByDate returns the single published edition for a calendar date.

Description: When multiple rows share a date (the disambiguation case is
handled upstream via CountPublishedByDate), the most-recently-created row
wins so a re-upload supersedes its predecessor.

Parameters:
  - context: context.Context
  - date: time.Time (date component only)

Returns:
  - *Edition: Hydrated entity
  - error: apperr.NotFound if no edition exists for the date
*/
func (repository *editionRepository) FindPublishedByDate(context context.Context, date time.Time) (*Edition, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		ORDER BY %s DESC
		LIMIT 1
	`,
		selectColumns(),
		schema.NewsEdition.Table,
		schema.NewsEdition.PublicationDate, schema.NewsEdition.Status, schema.NewsEdition.DeletedAt,
		schema.NewsEdition.CreatedAt,
	)

	e, err := scanEdition(repository.pool.QueryRow(context, query, date, StatusPublished))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Edition")
		}
		return nil, fmt.Errorf("postgres: failed to find edition by date: %w", err)
	}

	return e, nil
}

/*
CountPublishedByDate counts published editions on a calendar date.

Parameters:
  - context: context.Context
  - date: time.Time

Returns:
  - int: Number of matching rows
  - error: Storage execution failures
*/
func (repository *editionRepository) CountPublishedByDate(context context.Context, date time.Time) (int, error) {

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
	`,
		schema.NewsEdition.Table,
		schema.NewsEdition.PublicationDate, schema.NewsEdition.Status, schema.NewsEdition.DeletedAt,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, date, StatusPublished).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count editions by date: %w", err)
	}

	return count, nil
}

/*
ListPublishedByDate returns all published editions for one calendar date.

Description: Feeds the disambiguation picker reached via the redirect
signal; ordered newest-first to match FindPublishedByDate's tie-break.

Parameters:
  - context: context.Context
  - date: time.Time

Returns:
  - []*Edition: Matching editions
  - error: Storage execution failures
*/
func (repository *editionRepository) ListPublishedByDate(context context.Context, date time.Time) ([]*Edition, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		ORDER BY %s DESC
	`,
		selectColumns(),
		schema.NewsEdition.Table,
		schema.NewsEdition.PublicationDate, schema.NewsEdition.Status, schema.NewsEdition.DeletedAt,
		schema.NewsEdition.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, date, StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list editions by date: %w", err)
	}
	defer rows.Close()

	var editions []*Edition
	for rows.Next() {
		e, err := scanEdition(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan edition: %w", err)
		}
		editions = append(editions, e)
	}

	return editions, nil
}

/*
FindLatestPublished returns the globally newest published edition.

Parameters:
  - context: context.Context

Returns:
  - *Edition: Hydrated entity
  - error: apperr.NotFound when no edition has ever been published
*/
func (repository *editionRepository) FindLatestPublished(context context.Context) (*Edition, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s DESC, %s DESC
		LIMIT 1
	`,
		selectColumns(),
		schema.NewsEdition.Table,
		schema.NewsEdition.Status, schema.NewsEdition.DeletedAt,
		schema.NewsEdition.PublicationDate, schema.NewsEdition.CreatedAt,
	)

	e, err := scanEdition(repository.pool.QueryRow(context, query, StatusPublished))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Edition")
		}
		return nil, fmt.Errorf("postgres: failed to find latest edition: %w", err)
	}

	return e, nil
}

// # Admin Queries

/*
List returns editions for the admin area, all statuses included.

Description: Uses a COUNT(*) window function so the total row count arrives
with the page itself, avoiding a second round-trip.

Parameters:
  - context: context.Context
  - filter: Filter (status restriction, sort direction)
  - limit: int
  - offset: int

Returns:
  - []*Edition: Page of editions
  - int: Total matching editions
  - error: Storage execution failures
*/
func (repository *editionRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Edition, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s IS NULL
	`,
		selectColumns(),
		schema.NewsEdition.Table,
		schema.NewsEdition.DeletedAt,
	))

	// Status filter injection
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.NewsEdition.Status, argID))
		args = append(args, filter.Status)
		argID++
	}

	// Ordering and pagination limits
	sortDir := "DESC"
	if strings.ToLower(filter.SortDir) == "asc" {
		sortDir = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, %s DESC", schema.NewsEdition.PublicationDate, sortDir, schema.NewsEdition.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list editions: %w", err)
	}
	defer rows.Close()

	var editions []*Edition
	var totalCount int

	for rows.Next() {
		var e Edition
		var ogImagePath *string

		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Slug,
			&e.PublicationDate,
			&e.PDFPath,
			&ogImagePath,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.DeletedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan edition: %w", err)
		}

		if ogImagePath != nil {
			e.OGImagePath = *ogImagePath
		}
		editions = append(editions, &e)
	}

	return editions, totalCount, nil
}

/*
Create persists a new edition record.

Parameters:
  - context: context.Context
  - e: *Edition

Returns:
  - error: Storage execution failures
*/
func (repository *editionRepository) Create(context context.Context, e *Edition) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`,
		schema.NewsEdition.Table,
		schema.NewsEdition.ID,
		schema.NewsEdition.Title,
		schema.NewsEdition.Slug,
		schema.NewsEdition.PublicationDate,
		schema.NewsEdition.PDFPath,
		schema.NewsEdition.OGImagePath,
		schema.NewsEdition.Status,
	)

	_, err := repository.pool.Exec(context, query,
		e.ID,
		e.Title,
		e.Slug,
		e.PublicationDate,
		e.PDFPath,
		e.OGImagePath,
		e.Status,
	)
	if err != nil {
		// Duplicate slugs surface as a client-facing conflict.
		return dberr.Wrap(err, "create edition")
	}

	return nil
}

/*
Update overwrites existing edition metadata.

Parameters:
  - context: context.Context
  - e: *Edition

Returns:
  - error: apperr.NotFound if targeting a missing row
*/
func (repository *editionRepository) Update(context context.Context, e *Edition) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NULLIF($5, ''), %s = $6, %s = NOW()
		WHERE %s = $7 AND %s IS NULL
	`,
		schema.NewsEdition.Table,
		schema.NewsEdition.Title, schema.NewsEdition.Slug, schema.NewsEdition.PublicationDate,
		schema.NewsEdition.PDFPath, schema.NewsEdition.OGImagePath, schema.NewsEdition.Status,
		schema.NewsEdition.UpdatedAt,
		schema.NewsEdition.ID, schema.NewsEdition.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query,
		e.Title,
		e.Slug,
		e.PublicationDate,
		e.PDFPath,
		e.OGImagePath,
		e.Status,
		e.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update edition")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Edition")
	}

	return nil
}

/*
SoftDelete hides an edition record.
*/
func (repository *editionRepository) SoftDelete(context context.Context, id string) error {

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.NewsEdition.Table, schema.NewsEdition.DeletedAt, schema.NewsEdition.ID, schema.NewsEdition.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete edition: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Edition")
	}

	return nil
}
