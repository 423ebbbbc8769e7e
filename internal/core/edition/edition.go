// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package edition defines the core domain entities of the Gazeta e-paper.

It manages the lifecycle of published newspaper issues: metadata, the
publication calendar, and the request-time resolution of "which edition does
this reader see".

Core Responsibility:

  - Catalogue: Defines edition statuses (Draft, Published, Archived).
  - Resolution: Maps an incoming (date?, edition id?) request onto exactly
    one edition, a disambiguation redirect, or an empty state.
  - Presentation: Derives display titles, fallback notifications, and
    Open Graph metadata for the reader page.

This package acts as the source of truth for all edition-related data models.
*/
package edition

import "time"

// # Domain Enums

// Status represents the publication status of an edition.
type Status string

const (
	// StatusDraft indicates the edition is still being prepared and is
	// invisible to readers.
	StatusDraft Status = "draft"

	// StatusPublished indicates the edition is publicly viewable.
	StatusPublished Status = "published"

	// StatusArchived indicates the edition has been withdrawn from the
	// public calendar but is retained for the record.
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// # Edition Aggregate

// Edition represents one published issue of the newspaper.
// It ties a publication date to an uploaded PDF and its derived page images.
type Edition struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	PublicationDate time.Time  `json:"publication_date"` // calendar date; time component is always midnight UTC
	PDFPath         string     `json:"-"`                // raw stored path; sanitized before any filesystem use
	OGImagePath     string     `json:"og_image_path,omitempty"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"` // soft-delete tracker
}

// # Resolution Output

// Resolution is the complete outcome of the edition resolution engine.
//
// Callers must check RedirectTo first: when set, the request must be
// answered with an HTTP redirect and no edition body is rendered.
type Resolution struct {
	// Edition is the issue to display, or nil for the empty state.
	Edition *Edition

	// SelectedDate is the calendar date the viewer should treat as active.
	SelectedDate time.Time

	// DisplayTitle is the annotated, human-facing title
	// (e.g. `Morning Edition (12-05-2024)`).
	DisplayTitle string

	// Notification describes any fallback that occurred, empty when the
	// request resolved directly.
	Notification string

	// RedirectTo carries the disambiguation URL when the requested date
	// maps to more than one published edition.
	RedirectTo string
}

// # Filter Criteria

// Filter holds parameters for the admin edition listing.
type Filter struct {
	Status  Status // optional status restriction; empty means all
	SortDir string // direction of sorting ("asc" or "desc") by publication date
}
