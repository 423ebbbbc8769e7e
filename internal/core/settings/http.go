// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gazetapress/gazeta/internal/platform/middleware"
	requestutil "github.com/gazetapress/gazeta/internal/platform/request"
	"github.com/gazetapress/gazeta/internal/platform/respond"
	"github.com/gazetapress/gazeta/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for site settings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new settings [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches settings endpoints to the API router.
//
// # Routing Strategy
//
//   - Public: The theme view, consulted by every page render.
//   - Admin: Raw key access, gated on [sec.RoleAdmin].
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/settings/theme", handler.Theme)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/settings/{key}", handler.Get)
		admin.Put("/settings/{key}", handler.Update)
	})
}

// # Public Theme

/*
GET /api/v1/settings/theme.

Description: Returns the complete typed theme, defaults applied for any
key never written.

Response:
  - 200: ThemeSettings
*/
func (handler *Handler) Theme(writer http.ResponseWriter, request *http.Request) {
	theme, err := handler.service.Theme(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, theme)
}

// # Admin Key Access

/*
GET /api/v1/settings/{key}.

Description: Returns one raw stored setting with its update timestamp.

Request:
  - key: string (Setting key)

Response:
  - 200: Setting
  - 400: 400: ErrValidation: Unknown key
  - 404: 404: ErrNotFound: Key never written
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	key := requestutil.ID(request, "key")

	setting, err := handler.service.GetSetting(request.Context(), key)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, setting)
}

// updateSettingRequest defines the inbound JSON schema for setting writes.
type updateSettingRequest struct {
	Value string `json:"value"`
}

/*
PUT /api/v1/settings/{key}.

Description: Writes one setting value, creating the row when absent.

Request:
  - key: string (Setting key)
  - body: updateSettingRequest

Response:
  - 204: No content
  - 400: 400: ErrValidation: Unknown key or oversized value
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	key := requestutil.ID(request, "key")

	var input updateSettingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateSetting(request.Context(), key, input.Value); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
