// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package viewer

import (
	"context"
	"log/slog"
	"time"

	"github.com/gazetapress/gazeta/internal/core/edition"
	"github.com/gazetapress/gazeta/internal/core/pageimage"
	"github.com/gazetapress/gazeta/pkg/uuid"
)

// # Service Layer

// Service orchestrates viewer session lifecycle and event application.
type Service struct {
	sessions Store
	editions *edition.Service
	images   *pageimage.Resolver
	logger   *slog.Logger
}

// NewService constructs a new viewer [Service].
func NewService(sessions Store, editions *edition.Service, images *pageimage.Resolver, logger *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		editions: editions,
		images:   images,
		logger:   logger,
	}
}

// # Session Lifecycle

/*
StartSession creates a viewer session over one published edition.

Description: Resolves the edition's page-image set once at session start;
the ordered URL list is frozen into the session. An edition without page
images yields a Disabled session — the reader page renders its metadata
and PDF link, with all viewer controls inert.

Parameters:
  - context: context.Context
  - editionID: string (UUID)
  - viewport: Size (the reader's initial viewport in CSS pixels)

Returns:
  - *Session: The persisted session
  - error: apperr.NotFound for unknown editions; storage failures
*/
func (service *Service) StartSession(context context.Context, editionID string, viewport Size) (*Session, error) {

	e, err := service.editions.GetEdition(context, editionID)
	if err != nil {
		return nil, err
	}

	pages, err := service.images.Resolve(e.PDFPath)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &Session{
		ID:           uuid.New(),
		EditionID:    e.ID,
		Pages:        pageimage.URLs(pages),
		Phase:        PhaseLoading,
		Viewport:     viewport,
		NaturalSizes: make([]*Size, len(pages)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if len(pages) == 0 {
		session.Phase = PhaseDisabled
	}

	if err := service.sessions.Save(context, session); err != nil {
		return nil, err
	}

	service.logger.Info("viewer_session_started",
		slog.String("session_id", session.ID),
		slog.String("edition_id", e.ID),
		slog.Int("pages", len(pages)),
	)

	return session, nil
}

/*
GetSession retrieves a session by ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Session: Hydrated session state
  - error: apperr.NotFound when absent or expired
*/
func (service *Service) GetSession(context context.Context, id string) (*Session, error) {
	return service.sessions.Find(context, id)
}

// # Event Application

/*
ApplyEvent loads a session, applies one interaction, and persists the
updated state.

Parameters:
  - context: context.Context
  - sessionID: string (UUID)
  - event: Event

Returns:
  - *Session: The updated session
  - Result: Notice and UI cue produced by the transition
  - error: apperr.NotFound for unknown sessions; validation errors for
    unknown event types; storage failures
*/
func (service *Service) ApplyEvent(context context.Context, sessionID string, event Event) (*Session, Result, error) {

	session, err := service.sessions.Find(context, sessionID)
	if err != nil {
		return nil, Result{}, err
	}

	result, err := Apply(session, event)
	if err != nil {
		return nil, Result{}, err
	}

	session.UpdatedAt = time.Now().UTC()
	if err := service.sessions.Save(context, session); err != nil {
		return nil, Result{}, err
	}

	return session, result, nil
}
