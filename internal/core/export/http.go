// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package export

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gazetapress/gazeta/internal/platform/request"
	"github.com/gazetapress/gazeta/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for crop export and page sharing.
type Handler struct {
	service *Service
}

// NewHandler constructs a new export [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches export endpoints to the API router. Both hang
// off the viewer session resource: the session carries all the state
// (edition, page, crop rectangle) the export needs.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Post("/viewer/sessions/{id}/export", handler.Export)
	api.Post("/viewer/sessions/{id}/share", handler.Share)
}

// # Crop Export

/*
POST /api/v1/viewer/sessions/{id}/export.

Description: Composes the branded artifact for the session's active crop
and streams it as a PNG attachment.

Request:
  - id: string (Session UUID)

Response:
  - 200: image/png attachment
  - 404: 404: ErrNotFound: Session, edition, or page image gone
  - 422: 422: ErrUnprocessable: Crop mode not active
*/
func (handler *Handler) Export(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	artifact, err := handler.service.Export(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "image/png")
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	writer.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.PNG)))
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(artifact.PNG)
}

// # Page Sharing

/*
POST /api/v1/viewer/sessions/{id}/share.

Description: Returns the canonical share link for the session's current
page. No image is composed; the recipient's client resolves the edition
by its pinned ID.

Request:
  - id: string (Session UUID)

Response:
  - 200: ShareLink
  - 404: 404: ErrNotFound: Session or edition gone
  - 422: 422: ErrUnprocessable: Session is disabled
*/
func (handler *Handler) Share(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	link, err := handler.service.Share(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, link)
}
