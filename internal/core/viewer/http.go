// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package viewer provides the HTTP interface for reader session management.

It exposes endpoints for starting a session over an edition, fetching its
current state, and delivering interaction events to the state machine.

# Routing Strategy

  - Public: Sessions are anonymous; the session ID (UUIDv7, unguessable)
    is the only capability required.

The handler translates between the web/JSON layer and the internal domain
[Service]; transitions themselves live in machine.go.
*/
package viewer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gazetapress/gazeta/internal/platform/request"
	"github.com/gazetapress/gazeta/internal/platform/respond"
	"github.com/gazetapress/gazeta/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for viewer sessions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new viewer [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches viewer session endpoints to the API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Post("/viewer/sessions", handler.StartSession)
	api.Get("/viewer/sessions/{id}", handler.GetSession)
	api.Post("/viewer/sessions/{id}/events", handler.ApplyEvent)
}

// # Session Creation

// startSessionRequest defines the inbound JSON schema for session creation.
type startSessionRequest struct {
	EditionID string `json:"edition_id"`
	Viewport  Size   `json:"viewport"`
}

/*
POST /api/v1/viewer/sessions.

Description: Starts a reader session over one published edition. The
response carries the full session state including the frozen page list.

Request:
  - body: startSessionRequest

Response:
  - 201: Session: The created session
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 404: 404: ErrNotFound: Edition not found or unpublished
*/
func (handler *Handler) StartSession(writer http.ResponseWriter, request *http.Request) {
	var input startSessionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("edition_id", input.EditionID)
	v.Custom("viewport", input.Viewport.W <= 0 || input.Viewport.H <= 0, "Viewport dimensions must be positive")

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.StartSession(request.Context(), input.EditionID, input.Viewport)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

// # Session Retrieval

/*
GET /api/v1/viewer/sessions/{id}.

Description: Returns the current state of a reader session.

Request:
  - id: string (Session UUID)

Response:
  - 200: Session
  - 404: 404: ErrNotFound: Session absent or expired
*/
func (handler *Handler) GetSession(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	session, err := handler.service.GetSession(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// # Event Delivery

// eventResponse pairs the updated session with the transition outcome.
type eventResponse struct {
	Session *Session `json:"session"`
	Notice  *Notice  `json:"notice,omitempty"`
	Cue     Cue      `json:"cue,omitempty"`
}

/*
POST /api/v1/viewer/sessions/{id}/events.

Description: Applies one interaction event (navigation, zoom, pinch, crop,
resize, ...) to the session's state machine and returns the updated state
plus any transient notice and UI cue.

Request:
  - id: string (Session UUID)
  - body: Event

Response:
  - 200: eventResponse
  - 400: 400: ErrInvalidJSON/Validation: Unknown event type
  - 404: 404: ErrNotFound: Session absent or expired
*/
func (handler *Handler) ApplyEvent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var event Event
	if err := requestutil.DecodeJSON(request, &event); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, result, err := handler.service.ApplyEvent(request.Context(), id, event)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, eventResponse{
		Session: session,
		Notice:  result.Notice,
		Cue:     result.Cue,
	})
}
