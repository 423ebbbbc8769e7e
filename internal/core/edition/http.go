// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package edition

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/constants"
	"github.com/gazetapress/gazeta/internal/platform/middleware"
	requestutil "github.com/gazetapress/gazeta/internal/platform/request"
	"github.com/gazetapress/gazeta/internal/platform/respond"
	"github.com/gazetapress/gazeta/internal/platform/sec"
	"github.com/gazetapress/gazeta/pkg/pagination"
)

// # Handler Implementation

// Handler implements the admin HTTP layer for edition management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new edition [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches edition management endpoints to the API router.
// The upload pipeline itself lives elsewhere; these endpoints manage
// metadata rows only.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Editorial staff endpoints
	api.Group(func(editorial chi.Router) {
		editorial.Use(middleware.RequireRole(sec.RoleEditor))
		editorial.Get("/editions", handler.ListEditions)
		editorial.Post("/editions", handler.CreateEdition)
		editorial.Put("/editions/{id}", handler.UpdateEdition)
		editorial.Delete("/editions/{id}", handler.DeleteEdition)
	})
}

// # Edition Roster

/*
GET /api/v1/editions.

Description: Returns the paginated edition roster across all statuses.

Request:
  - status: string (Filter by lifecycle status)
  - dir: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []Edition: Paginated list
  - 403: 403: ErrForbidden: Editorial role required
*/
func (handler *Handler) ListEditions(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Status:  Status(request.URL.Query().Get("status")),
		SortDir: request.URL.Query().Get("dir"),
	}

	editions, total, err := handler.service.ListEditions(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, editions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Edition Creation

// editionRequest defines the inbound JSON schema for edition metadata.
type editionRequest struct {
	Title           string `json:"title"`
	PublicationDate string `json:"publication_date"` // YYYY-MM-DD
	PDFPath         string `json:"pdf_path"`
	OGImagePath     string `json:"og_image_path"`
	Status          string `json:"status"`
}

// toEdition converts the request body into a domain entity.
func (input editionRequest) toEdition() (*Edition, error) {
	publicationDate, err := time.Parse(constants.DateFormatISO, input.PublicationDate)
	if err != nil {
		return nil, apperr.ValidationError("Publication date must be formatted YYYY-MM-DD")
	}

	return &Edition{
		Title:           input.Title,
		PublicationDate: publicationDate,
		PDFPath:         input.PDFPath,
		OGImagePath:     input.OGImagePath,
		Status:          Status(input.Status),
	}, nil
}

/*
POST /api/v1/editions.

Description: Registers a new edition row. The referenced PDF and its page
images must already exist under the storage root.

Request:
  - body: editionRequest

Response:
  - 201: Edition: Created edition object
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 403: 403: ErrForbidden: Editorial role required
*/
func (handler *Handler) CreateEdition(writer http.ResponseWriter, request *http.Request) {
	var input editionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	e, err := input.toEdition()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateEdition(request.Context(), e); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, e)
}

// # Edition Update

/*
PUT /api/v1/editions/{id}.

Description: Overwrites an edition's metadata. Publishing is a status flip
through this endpoint.

Request:
  - id: string (UUID)
  - body: editionRequest

Response:
  - 200: Edition: Updated edition object
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 404: 404: ErrNotFound: Edition not found
*/
func (handler *Handler) UpdateEdition(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input editionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	e, err := input.toEdition()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	e.ID = id

	if err := handler.service.UpdateEdition(request.Context(), e); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, e)
}

// # Edition Removal

/*
DELETE /api/v1/editions/{id}.

Description: Soft-deletes an edition, removing it from every reader query.

Request:
  - id: string (UUID)

Response:
  - 204: No content
  - 404: 404: ErrNotFound: Edition not found
*/
func (handler *Handler) DeleteEdition(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteEdition(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
