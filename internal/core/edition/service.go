// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package edition

import (
	"context"
	"log/slog"
	"time"

	"github.com/gazetapress/gazeta/internal/platform/validate"
	"github.com/gazetapress/gazeta/pkg/slug"
	"github.com/gazetapress/gazeta/pkg/uuid"
)

const (
	FieldTitle           = "title"
	FieldPublicationDate = "publication_date"
	FieldPDFPath         = "pdf_path"
	FieldStatus          = "status"
)

// # Service Layer

// Service orchestrates the business logic for editions.
type Service struct {
	editionRepo Repository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(editionRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		editionRepo: editionRepo,
		logger:      logger,
	}
}

// # Edition Operations

/*
GetEdition retrieves metadata for a single published edition by its ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Edition: The hydrated domain entity
  - error: apperr.NotFound if missing or unpublished
*/
func (service *Service) GetEdition(context context.Context, id string) (*Edition, error) {
	return service.editionRepo.FindPublishedByID(context, id)
}

/*
ListEditionsForDate retrieves every published edition for one calendar date.

Description: Backs the disambiguation picker readers are redirected to when
a date carries multiple editions.

Parameters:
  - context: context.Context
  - date: time.Time

Returns:
  - []*Edition: Matching editions, newest first
  - error: Storage failures
*/
func (service *Service) ListEditionsForDate(context context.Context, date time.Time) ([]*Edition, error) {
	return service.editionRepo.ListPublishedByDate(context, date)
}

/*
ListEditions retrieves the paginated admin roster across all statuses.

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
func (service *Service) ListEditions(context context.Context, filter Filter, limit, offset int) ([]*Edition, int, error) {
	return service.editionRepo.List(context, filter, limit, offset)
}

/*
CreateEdition registers a new edition.

Description: Generates identity and slug, applies sanity checks on the
required metadata, and persists the record. The PDF itself and its derived
page images are written by the upload pipeline; this service only records
the stored path.

Parameters:
  - context: context.Context
  - e: *Edition (The new edition data)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateEdition(context context.Context, e *Edition) error {

	// Identity & Mandatory field generation
	if e.ID == "" {
		e.ID = uuid.New()
	}
	if e.Slug == "" {
		e.Slug = slug.From(e.Title)
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, e.Title)
	validator.Required(FieldPDFPath, e.PDFPath)
	validator.Custom(FieldPublicationDate, e.PublicationDate.IsZero(), "Publication date is required")
	validator.Custom(FieldStatus, !e.Status.IsValid(), "Unknown edition status")

	if err := validator.Err(); err != nil {
		return err
	}

	// Storage persistence
	if err := service.editionRepo.Create(context, e); err != nil {
		return err
	}

	service.logger.Info("edition_created",
		slog.String("edition_id", e.ID),
		slog.String("title", e.Title),
		slog.String("publication_date", e.PublicationDate.Format("2006-01-02")),
	)

	return nil
}

/*
UpdateEdition overwrites existing edition metadata.

Parameters:
  - context: context.Context
  - e: *Edition

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) UpdateEdition(context context.Context, e *Edition) error {

	if e.Slug == "" {
		e.Slug = slug.From(e.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, e.Title)
	validator.Required(FieldPDFPath, e.PDFPath)
	validator.Custom(FieldPublicationDate, e.PublicationDate.IsZero(), "Publication date is required")
	validator.Custom(FieldStatus, !e.Status.IsValid(), "Unknown edition status")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.editionRepo.Update(context, e); err != nil {
		return err
	}

	service.logger.Info("edition_updated", slog.String("edition_id", e.ID))

	return nil
}

/*
DeleteEdition soft-deletes an edition, removing it from every reader query.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: apperr.NotFound if targeting a missing row
*/
func (service *Service) DeleteEdition(context context.Context, id string) error {
	if err := service.editionRepo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("edition_deleted", slog.String("edition_id", id))

	return nil
}
