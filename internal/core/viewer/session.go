// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package viewer implements the e-paper reader's interactive state machine.

One [Session] exists per reader page load. The server owns every transition
(page navigation, zoom, pan, pinch, crop mode); the UI layer purely reflects
the state it gets back, never deciding transitions itself.

# State Machine

	Loading → Ready(pageIndex, zoom) ⇄ Cropping(pageIndex, rect)

Ready is re-entered with a recomputed fit-to-width baseline zoom on
page-change, viewport-resize, and fullscreen-toggle. A session over an
edition without page images is permanently Disabled: all controls are
inert and the UI shows the "no edition found" state.

# Concurrency

Sessions are persisted in Redis between events; a single reader tab issues
events sequentially, so no locking is required beyond the store's own
read-modify-write cycle.
*/
package viewer

import "time"

// # Phases

// Phase is the coarse state of a viewer session.
type Phase string

const (
	// PhaseLoading waits for the current page's natural dimensions before
	// the fit-to-width baseline can be computed.
	PhaseLoading Phase = "loading"

	// PhaseReady accepts navigation, zoom, pan, and crop-entry events.
	PhaseReady Phase = "ready"

	// PhaseCropping disables navigation/zoom/pan until the crop is
	// cancelled or exported.
	PhaseCropping Phase = "cropping"

	// PhaseDisabled is the inert state of a session without page images.
	PhaseDisabled Phase = "disabled"
)

// # Geometry

// Size is a width/height pair in CSS pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Offset is a scroll position in content pixels.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a crop rectangle in the natural pixel space of the page image.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// # Session

// Session is the full server-side state of one reader page load.
type Session struct {
	ID        string `json:"id"`
	EditionID string `json:"edition_id"`

	// Pages is the ordered page-image URL list the session navigates.
	Pages []string `json:"pages"`

	Phase     Phase `json:"phase"`
	PageIndex int   `json:"page_index"`

	// Zoom is the current scale factor relative to the image's natural
	// pixel size. BaselineZoom is the fit-to-width factor for the current
	// page and viewport; Zoom never goes below it.
	Zoom         float64 `json:"zoom"`
	BaselineZoom float64 `json:"baseline_zoom"`

	Viewport Size   `json:"viewport"`
	Scroll   Offset `json:"scroll"`

	// NaturalSizes holds the decoded pixel dimensions per page index, nil
	// until the client reports the image as loaded.
	NaturalSizes []*Size `json:"natural_sizes"`

	// Crop is the in-progress crop rectangle, nil outside crop mode.
	Crop *Rect `json:"crop,omitempty"`

	// Pinch gesture bookkeeping: the zoom captured at gesture start, and
	// whether a pinch occurred anywhere in the current touch sequence
	// (which suppresses swipe navigation for that sequence).
	PinchStartZoom float64 `json:"pinch_start_zoom,omitempty"`
	PinchSeen      bool    `json:"pinch_seen,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageCount returns the number of pages in the session's edition.
func (session *Session) PageCount() int {
	return len(session.Pages)
}

// naturalSize returns the reported dimensions of a page, or nil.
func (session *Session) naturalSize(pageIndex int) *Size {
	if pageIndex < 0 || pageIndex >= len(session.NaturalSizes) {
		return nil
	}
	return session.NaturalSizes[pageIndex]
}

// # Notices

// NoticeKind classifies a transient user-facing message.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient message the UI shows and auto-dismisses.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// # Event Results

// Cue names a side-effect the UI should perform after an event.
type Cue string

const (
	// CuePageTurn asks the UI for the short audio + haptic page-turn
	// feedback (a no-op on platforms without support).
	CuePageTurn Cue = "page-turn"
)

// Result is the outcome of applying one event to a session.
type Result struct {
	// Notice is the transient message to show, nil when silent.
	Notice *Notice `json:"notice,omitempty"`

	// Cue is the UI side-effect to trigger, empty when none.
	Cue Cue `json:"cue,omitempty"`
}
