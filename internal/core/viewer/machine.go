// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package viewer

import (
	"math"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
)

// # Interaction Constants

const (
	// MaxZoom is the fixed upper zoom bound relative to natural size.
	MaxZoom = 4.0

	// DoubleTapZoom is the target factor of a double-tap from baseline
	// (0.4× natural size), unless the baseline itself is larger.
	DoubleTapZoom = 0.4

	// zoomStep is the multiplicative step of the +/- zoom buttons.
	zoomStep = 1.25

	// SwipeMinDistance is the minimum horizontal displacement (px) for a
	// swipe to count as page navigation.
	SwipeMinDistance = 60.0

	// SwipeMaxDeviation is the maximum vertical displacement (px) a swipe
	// may drift before it is ignored as a scroll gesture.
	SwipeMaxDeviation = 50.0

	// zoomEpsilon absorbs floating point noise when comparing zoom levels.
	zoomEpsilon = 1e-9
)

// # Events

// EventType identifies a viewer interaction.
type EventType string

const (
	EventImageLoaded EventType = "image_loaded"
	EventNavigate    EventType = "navigate"
	EventZoomIn      EventType = "zoom_in"
	EventZoomOut     EventType = "zoom_out"
	EventPan         EventType = "pan"
	EventPinchStart  EventType = "pinch_start"
	EventPinchMove   EventType = "pinch_move"
	EventDoubleTap   EventType = "double_tap"
	EventSwipeEnd    EventType = "swipe_end"
	EventEnterCrop   EventType = "enter_crop"
	EventCropAdjust  EventType = "crop_adjust"
	EventExitCrop    EventType = "exit_crop"
	EventResize      EventType = "resize"
	EventFullscreen  EventType = "fullscreen"
)

// Event is one reader interaction delivered to the state machine. Only the
// fields relevant to its Type are read.
type Event struct {
	Type EventType `json:"type"`

	// Navigate: "next" or "prev".
	Direction string `json:"direction,omitempty"`

	// ImageLoaded: which page finished decoding and its natural size.
	Page int     `json:"page,omitempty"`
	W    float64 `json:"w,omitempty"`
	H    float64 `json:"h,omitempty"`

	// Pan / SwipeEnd: displacement. DoubleTap / PinchMove: focal point.
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`
	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`

	// PinchMove: current/initial inter-pointer distance ratio.
	Ratio float64 `json:"ratio,omitempty"`

	// CropAdjust: the requested crop rectangle in natural pixels.
	Rect *Rect `json:"rect,omitempty"`
}

// # Transition Entry Point

/*
Apply mutates the session according to one event and reports the outcome.

Description: This is the single transition function of the state machine.
Apply is total over well-formed events: invalid interactions (navigating
while cropping, zooming a disabled session) produce a [Notice], not an
error. An error is returned only for structurally unknown event types.

Parameters:
  - session: *Session (mutated in place)
  - event: Event

Returns:
  - Result: Notice and UI cue for the interaction
  - error: apperr.ValidationError for unknown event types
*/
func Apply(session *Session, event Event) (Result, error) {

	// A pageless session is permanently inert.
	if session.Phase == PhaseDisabled && event.Type != EventResize && event.Type != EventFullscreen {
		return noticeResult(NoticeInfo, "No edition found."), nil
	}

	switch event.Type {
	case EventImageLoaded:
		return applyImageLoaded(session, event), nil
	case EventNavigate:
		return applyNavigate(session, event.Direction), nil
	case EventZoomIn:
		return applyZoomStep(session, zoomStep), nil
	case EventZoomOut:
		return applyZoomStep(session, 1/zoomStep), nil
	case EventPan:
		return applyPan(session, event), nil
	case EventPinchStart:
		return applyPinchStart(session), nil
	case EventPinchMove:
		return applyPinchMove(session, event), nil
	case EventDoubleTap:
		return applyDoubleTap(session, event), nil
	case EventSwipeEnd:
		return applySwipeEnd(session, event), nil
	case EventEnterCrop:
		return applyEnterCrop(session), nil
	case EventCropAdjust:
		return applyCropAdjust(session, event), nil
	case EventExitCrop:
		return applyExitCrop(session), nil
	case EventResize, EventFullscreen:
		return applyResize(session, event), nil
	default:
		return Result{}, apperr.ValidationError("Unknown viewer event type")
	}
}

// # Image Decode Completion

// applyImageLoaded records a page's natural dimensions. When the current
// page was waiting on them, the session leaves Loading with a freshly
// computed fit-to-width baseline.
func applyImageLoaded(session *Session, event Event) Result {
	if event.Page < 0 || event.Page >= session.PageCount() || event.W <= 0 || event.H <= 0 {
		return Result{}
	}

	for len(session.NaturalSizes) < session.PageCount() {
		session.NaturalSizes = append(session.NaturalSizes, nil)
	}
	session.NaturalSizes[event.Page] = &Size{W: event.W, H: event.H}

	if session.Phase == PhaseLoading && event.Page == session.PageIndex {
		session.Phase = PhaseReady
		resetToBaseline(session)
	}

	return Result{}
}

// # Page Navigation

// applyNavigate moves to the adjacent page, clamped to [0, N-1].
func applyNavigate(session *Session, direction string) Result {
	if session.Phase == PhaseCropping {
		return noticeResult(NoticeInfo, "Finish or cancel the crop to turn pages.")
	}
	if session.Phase != PhaseReady {
		return Result{}
	}

	delta := 1
	if direction == "prev" {
		delta = -1
	}

	target := session.PageIndex + delta
	if target < 0 {
		return noticeResult(NoticeInfo, "You are already on the first page.")
	}
	if target >= session.PageCount() {
		return noticeResult(NoticeInfo, "You are already on the last page.")
	}

	session.PageIndex = target
	enterPage(session)

	return Result{Cue: CuePageTurn}
}

// enterPage re-establishes Ready (or Loading) for the current page. Pages
// are visibility-toggled, not reloaded, so a previously reported natural
// size stays valid.
func enterPage(session *Session) {
	if session.naturalSize(session.PageIndex) == nil {
		session.Phase = PhaseLoading
		session.Zoom = 0
		session.BaselineZoom = 0
		session.Scroll = Offset{}
		return
	}
	session.Phase = PhaseReady
	resetToBaseline(session)
}

// # Zoom

// applyZoomStep multiplies the zoom level, clamped to [baseline, MaxZoom].
// Zooming out below baseline snaps to baseline (reset to fit width).
func applyZoomStep(session *Session, factor float64) Result {
	if session.Phase == PhaseCropping {
		return noticeResult(NoticeInfo, "Zoom is disabled during crop.")
	}
	if session.Phase != PhaseReady {
		return Result{}
	}

	setZoom(session, session.Zoom*factor)
	clampScroll(session)

	return Result{}
}

// setZoom applies the [baseline, MaxZoom] clamp.
func setZoom(session *Session, zoom float64) {
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	if zoom < session.BaselineZoom {
		zoom = session.BaselineZoom
	}
	session.Zoom = zoom
}

// # Pan

// applyPan shifts the scroll position by the event's displacement, clamped
// so content never scrolls past its own edges.
func applyPan(session *Session, event Event) Result {
	if session.Phase != PhaseReady {
		return Result{}
	}

	session.Scroll.X += event.DX
	session.Scroll.Y += event.DY
	clampScroll(session)

	return Result{}
}

// clampScroll keeps the scroll offset within [0, content-viewport] per
// axis. When content is smaller than the viewport on an axis, the offset is
// forced to 0 and the UI centers the image on that axis.
func clampScroll(session *Session) {
	natural := session.naturalSize(session.PageIndex)
	if natural == nil {
		session.Scroll = Offset{}
		return
	}

	maxX := natural.W*session.Zoom - session.Viewport.W
	maxY := natural.H*session.Zoom - session.Viewport.H

	session.Scroll.X = clamp(session.Scroll.X, 0, math.Max(0, maxX))
	session.Scroll.Y = clamp(session.Scroll.Y, 0, math.Max(0, maxY))
}

// # Pinch Gesture

// applyPinchStart captures the zoom level the gesture scales against and
// marks the touch sequence as a pinch, suppressing swipe navigation.
func applyPinchStart(session *Session) Result {
	if session.Phase != PhaseReady {
		return Result{}
	}
	session.PinchStartZoom = session.Zoom
	session.PinchSeen = true
	return Result{}
}

// applyPinchMove scales the gesture-start zoom by the inter-pointer
// distance ratio and re-anchors the scroll on the pinch midpoint, so the
// zoom appears pinned under the fingers.
func applyPinchMove(session *Session, event Event) Result {
	if session.Phase != PhaseReady || session.PinchStartZoom <= 0 || event.Ratio <= 0 {
		return Result{}
	}

	oldZoom := session.Zoom
	setZoom(session, session.PinchStartZoom*event.Ratio)

	if oldZoom > 0 {
		scale := session.Zoom / oldZoom
		session.Scroll.X = (session.Scroll.X+event.X)*scale - event.X
		session.Scroll.Y = (session.Scroll.Y+event.Y)*scale - event.Y
	}
	clampScroll(session)

	return Result{}
}

// # Double Tap

// applyDoubleTap toggles between baseline and a fixed magnification,
// centered on the tap point.
func applyDoubleTap(session *Session, event Event) Result {
	if session.Phase != PhaseReady {
		return Result{}
	}

	if session.Zoom > session.BaselineZoom+zoomEpsilon {
		resetToBaseline(session)
		return Result{}
	}

	target := math.Max(DoubleTapZoom, session.BaselineZoom)
	oldZoom := session.Zoom
	setZoom(session, target)

	if oldZoom > 0 {
		scale := session.Zoom / oldZoom
		session.Scroll.X = (session.Scroll.X+event.X)*scale - event.X
		session.Scroll.Y = (session.Scroll.Y+event.Y)*scale - event.Y
	}
	clampScroll(session)

	return Result{}
}

// # Swipe Navigation

// applySwipeEnd turns a horizontal swipe into page navigation. Swipes are
// suppressed while zoomed past baseline and for any touch sequence that
// contained a pinch.
func applySwipeEnd(session *Session, event Event) Result {
	pinchSeen := session.PinchSeen
	session.PinchSeen = false
	session.PinchStartZoom = 0

	if session.Phase != PhaseReady || pinchSeen {
		return Result{}
	}
	if session.Zoom > session.BaselineZoom+zoomEpsilon {
		return Result{}
	}
	if math.Abs(event.DX) < SwipeMinDistance || math.Abs(event.DY) > SwipeMaxDeviation {
		return Result{}
	}

	if event.DX < 0 {
		return applyNavigate(session, "next")
	}
	return applyNavigate(session, "prev")
}

// # Crop Mode

// applyEnterCrop switches to Cropping with a default rectangle covering
// the middle half of the page. Navigation, zoom, pan, fullscreen, and
// date-change controls are disabled by phase until exit.
func applyEnterCrop(session *Session) Result {
	if session.Phase == PhaseCropping {
		return Result{}
	}
	if session.Phase != PhaseReady {
		return noticeResult(NoticeInfo, "The page is still loading.")
	}

	natural := session.naturalSize(session.PageIndex)
	if natural == nil {
		return noticeResult(NoticeInfo, "The page is still loading.")
	}

	session.Phase = PhaseCropping
	session.Crop = &Rect{
		X: natural.W * 0.25,
		Y: natural.H * 0.25,
		W: natural.W * 0.5,
		H: natural.H * 0.5,
	}

	return Result{}
}

// applyCropAdjust replaces the crop rectangle, clamped to image bounds.
func applyCropAdjust(session *Session, event Event) Result {
	if session.Phase != PhaseCropping || event.Rect == nil {
		return Result{}
	}

	natural := session.naturalSize(session.PageIndex)
	if natural == nil {
		return Result{}
	}

	rect := *event.Rect
	rect.W = clamp(rect.W, 1, natural.W)
	rect.H = clamp(rect.H, 1, natural.H)
	rect.X = clamp(rect.X, 0, natural.W-rect.W)
	rect.Y = clamp(rect.Y, 0, natural.H-rect.H)
	session.Crop = &rect

	return Result{}
}

// applyExitCrop discards the in-progress rectangle and restores every
// disabled control. Cancel and Escape both land here.
func applyExitCrop(session *Session) Result {
	if session.Phase != PhaseCropping {
		return Result{}
	}
	session.Phase = PhaseReady
	session.Crop = nil
	return Result{}
}

// # Viewport Changes

// applyResize handles window-resize and fullscreen-toggle: both cancel any
// in-progress crop, recompute the baseline, and re-render the current page
// at fit-to-width. The computation depends only on the new viewport and
// the stable natural width, so a racing page-change converges to the same
// zoom regardless of interleaving.
func applyResize(session *Session, event Event) Result {
	if event.W > 0 && event.H > 0 {
		session.Viewport = Size{W: event.W, H: event.H}
	}

	if session.Phase == PhaseDisabled {
		return Result{}
	}

	session.Crop = nil

	if session.naturalSize(session.PageIndex) == nil {
		session.Phase = PhaseLoading
		return Result{}
	}

	session.Phase = PhaseReady
	resetToBaseline(session)

	return Result{}
}

// # Shared Math

// resetToBaseline recomputes the fit-to-width zoom for the current page
// and re-centers the scroll position.
func resetToBaseline(session *Session) {
	natural := session.naturalSize(session.PageIndex)
	if natural == nil || natural.W <= 0 || session.Viewport.W <= 0 {
		session.Zoom = 0
		session.BaselineZoom = 0
		session.Scroll = Offset{}
		return
	}

	session.BaselineZoom = session.Viewport.W / natural.W
	session.Zoom = session.BaselineZoom
	session.Scroll = Offset{}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// noticeResult wraps a transient message into a [Result].
func noticeResult(kind NoticeKind, message string) Result {
	return Result{Notice: &Notice{Kind: kind, Message: message}}
}
