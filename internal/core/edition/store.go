// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package edition

import (
	"context"
	"time"
)

// # Edition Data Access

// Repository defines the data access contract for editions.
//
// All "Published" queries implicitly filter on status = published and
// exclude soft-deleted rows: the reader-facing core never sees drafts.
type Repository interface {

	/*
		FindPublishedByID returns the published edition with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Edition: Hydrated metadata
		  - error: apperr.NotFound if missing, draft, or deleted
	*/
	FindPublishedByID(context context.Context, id string) (*Edition, error)

	/*
		FindPublishedByDate returns the single published edition for a
		calendar date, ties broken by most-recently-created.

		Parameters:
		  - context: context.Context
		  - date: time.Time (date component only)

		Returns:
		  - *Edition: Hydrated metadata
		  - error: apperr.NotFound if no edition exists for the date
	*/
	FindPublishedByDate(context context.Context, date time.Time) (*Edition, error)

	/*
		CountPublishedByDate counts published editions on a calendar date.

		Parameters:
		  - context: context.Context
		  - date: time.Time

		Returns:
		  - int: Number of matching rows
		  - error: Storage failures
	*/
	CountPublishedByDate(context context.Context, date time.Time) (int, error)

	/*
		ListPublishedByDate returns all published editions for one calendar
		date, newest first. Used by the disambiguation picker.

		Parameters:
		  - context: context.Context
		  - date: time.Time

		Returns:
		  - []*Edition: Matching editions
		  - error: Storage failures
	*/
	ListPublishedByDate(context context.Context, date time.Time) ([]*Edition, error)

	/*
		FindLatestPublished returns the globally newest published edition,
		ordered by publication date desc then creation time desc.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Edition: Hydrated metadata
		  - error: apperr.NotFound when no edition has ever been published
	*/
	FindLatestPublished(context context.Context) (*Edition, error)

	/*
		List returns editions for the admin area, all statuses included.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Edition: Page of editions
		  - int: Total matching editions
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Edition, int, error)

	/*
		Create persists a new edition to the store.

		Parameters:
		  - context: context.Context
		  - e: *Edition

		Returns:
		  - error: Storage failure
	*/
	Create(context context.Context, e *Edition) error

	/*
		Update persists changes to existing edition metadata.

		Parameters:
		  - context: context.Context
		  - e: *Edition

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	Update(context context.Context, e *Edition) error

	/*
		SoftDelete marks an edition as deleted without physical row removal.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	SoftDelete(context context.Context, id string) error
}
