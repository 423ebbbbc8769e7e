// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package viewer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetapress/gazeta/internal/core/viewer"
)

// readySession builds a three-page session on page 0 with a 800×600
// viewport and a 1600×2400 natural page size (baseline zoom 0.5).
func readySession() *viewer.Session {
	session := &viewer.Session{
		ID:        "test-session",
		EditionID: "test-edition",
		Pages: []string{
			"/uploads/e/images/page-1.jpg",
			"/uploads/e/images/page-2.jpg",
			"/uploads/e/images/page-3.jpg",
		},
		Phase:        viewer.PhaseLoading,
		Viewport:     viewer.Size{W: 800, H: 600},
		NaturalSizes: make([]*viewer.Size, 3),
	}
	mustApply(session, viewer.Event{Type: viewer.EventImageLoaded, Page: 0, W: 1600, H: 2400})
	return session
}

func mustApply(session *viewer.Session, event viewer.Event) viewer.Result {
	result, err := viewer.Apply(session, event)
	if err != nil {
		panic(err)
	}
	return result
}

/*
TestApply_ImageLoadedComputesBaseline verifies the Loading→Ready transition
establishes the fit-to-width zoom.
*/
func TestApply_ImageLoadedComputesBaseline(t *testing.T) {
	session := readySession()

	assert.Equal(t, viewer.PhaseReady, session.Phase)
	assert.InDelta(t, 0.5, session.BaselineZoom, 1e-9)
	assert.InDelta(t, 0.5, session.Zoom, 1e-9)
	assert.Equal(t, viewer.Offset{}, session.Scroll)
}

/*
TestApply_NavigateBoundaries verifies first/last page navigation is a
notice-carrying no-op, and interior navigation fires the page-turn cue.
*/
func TestApply_NavigateBoundaries(t *testing.T) {
	session := readySession()

	result := mustApply(session, viewer.Event{Type: viewer.EventNavigate, Direction: "prev"})
	require.NotNil(t, result.Notice)
	assert.Equal(t, "You are already on the first page.", result.Notice.Message)
	assert.Equal(t, 0, session.PageIndex)

	result = mustApply(session, viewer.Event{Type: viewer.EventNavigate, Direction: "next"})
	assert.Nil(t, result.Notice)
	assert.Equal(t, viewer.CuePageTurn, result.Cue)
	assert.Equal(t, 1, session.PageIndex)

	// Page 1 has no reported natural size yet, so the session waits.
	assert.Equal(t, viewer.PhaseLoading, session.Phase)

	mustApply(session, viewer.Event{Type: viewer.EventImageLoaded, Page: 1, W: 1600, H: 2400})
	mustApply(session, viewer.Event{Type: viewer.EventImageLoaded, Page: 2, W: 1600, H: 2400})
	mustApply(session, viewer.Event{Type: viewer.EventNavigate, Direction: "next"})

	result = mustApply(session, viewer.Event{Type: viewer.EventNavigate, Direction: "next"})
	require.NotNil(t, result.Notice)
	assert.Equal(t, "You are already on the last page.", result.Notice.Message)
	assert.Equal(t, 2, session.PageIndex)
}

/*
TestApply_NavigateResetsZoom verifies a page change re-enters the new page
at its baseline zoom with scroll cleared.
*/
func TestApply_NavigateResetsZoom(t *testing.T) {
	session := readySession()
	mustApply(session, viewer.Event{Type: viewer.EventImageLoaded, Page: 1, W: 800, H: 1200})

	mustApply(session, viewer.Event{Type: viewer.EventZoomIn})
	mustApply(session, viewer.Event{Type: viewer.EventPan, DX: 100, DY: 150})
	require.Greater(t, session.Zoom, session.BaselineZoom)

	mustApply(session, viewer.Event{Type: viewer.EventNavigate, Direction: "next"})

	assert.Equal(t, viewer.PhaseReady, session.Phase)
	assert.InDelta(t, 1.0, session.Zoom, 1e-9) // 800 viewport / 800 natural
	assert.Equal(t, viewer.Offset{}, session.Scroll)
}

/*
TestApply_ZoomClamps verifies zoom never exceeds 4× natural size nor drops
below the fit-to-width baseline.
*/
func TestApply_ZoomClamps(t *testing.T) {
	session := readySession()

	for i := 0; i < 20; i++ {
		mustApply(session, viewer.Event{Type: viewer.EventZoomIn})
	}
	assert.InDelta(t, viewer.MaxZoom, session.Zoom, 1e-9)

	for i := 0; i < 30; i++ {
		mustApply(session, viewer.Event{Type: viewer.EventZoomOut})
	}
	assert.InDelta(t, session.BaselineZoom, session.Zoom, 1e-9)
}

/*
TestApply_PanClamped verifies scroll is bounded by content minus viewport
per axis and pinned to zero when content fits.
*/
func TestApply_PanClamped(t *testing.T) {
	session := readySession()

	// At baseline the content width exactly fits the viewport: X stays 0.
	mustApply(session, viewer.Event{Type: viewer.EventPan, DX: 500, DY: 500})
	assert.Equal(t, 0.0, session.Scroll.X)
	// Content height at baseline is 1200 against a 600 viewport, so the
	// pan lands within the 600px travel range.
	assert.Equal(t, 500.0, session.Scroll.Y)

	mustApply(session, viewer.Event{Type: viewer.EventPan, DX: 0, DY: 500})
	assert.Equal(t, 600.0, session.Scroll.Y)

	mustApply(session, viewer.Event{Type: viewer.EventPan, DX: -50, DY: -10000})
	assert.Equal(t, 0.0, session.Scroll.X)
	assert.Equal(t, 0.0, session.Scroll.Y)
}

/*
TestApply_DoubleTapToggles verifies the double-tap magnify/restore cycle.
*/
func TestApply_DoubleTapToggles(t *testing.T) {
	session := readySession()

	mustApply(session, viewer.Event{Type: viewer.EventDoubleTap, X: 400, Y: 300})
	// Baseline 0.5 exceeds the 0.4 target, so the tap magnifies to... the
	// larger of the two: max(0.4, 0.5) = 0.5 is not above baseline, hence
	// nothing changes visually but the zoom stays at baseline.
	assert.InDelta(t, 0.5, session.Zoom, 1e-9)

	// With a wider viewport the baseline drops below the tap target.
	mustApply(session, viewer.Event{Type: viewer.EventResize, W: 320, H: 600})
	assert.InDelta(t, 0.2, session.BaselineZoom, 1e-9)

	mustApply(session, viewer.Event{Type: viewer.EventDoubleTap, X: 160, Y: 300})
	assert.InDelta(t, 0.4, session.Zoom, 1e-9)

	// Second tap restores baseline.
	mustApply(session, viewer.Event{Type: viewer.EventDoubleTap, X: 160, Y: 300})
	assert.InDelta(t, session.BaselineZoom, session.Zoom, 1e-9)
	assert.Equal(t, viewer.Offset{}, session.Scroll)
}

/*
TestApply_PinchScalesFromGestureStart verifies pinch zoom multiplies the
gesture-start zoom by the distance ratio, clamped to the usual bounds.
*/
func TestApply_PinchScalesFromGestureStart(t *testing.T) {
	session := readySession()

	mustApply(session, viewer.Event{Type: viewer.EventPinchStart})
	mustApply(session, viewer.Event{Type: viewer.EventPinchMove, Ratio: 2.0, X: 400, Y: 300})
	assert.InDelta(t, 1.0, session.Zoom, 1e-9)

	// The ratio is relative to gesture start, not the previous move.
	mustApply(session, viewer.Event{Type: viewer.EventPinchMove, Ratio: 3.0, X: 400, Y: 300})
	assert.InDelta(t, 1.5, session.Zoom, 1e-9)

	// Collapsing below baseline snaps to baseline.
	mustApply(session, viewer.Event{Type: viewer.EventPinchMove, Ratio: 0.1, X: 400, Y: 300})
	assert.InDelta(t, session.BaselineZoom, session.Zoom, 1e-9)
}

/*
TestApply_SwipeSuppression verifies swipes are ignored after a pinch in the
same touch sequence and while zoomed past baseline.
*/
func TestApply_SwipeSuppression(t *testing.T) {
	session := readySession()

	// Pinch, then swipe in the same sequence: no navigation.
	mustApply(session, viewer.Event{Type: viewer.EventPinchStart})
	result := mustApply(session, viewer.Event{Type: viewer.EventSwipeEnd, DX: -200, DY: 0})
	assert.Empty(t, result.Cue)
	assert.Equal(t, 0, session.PageIndex)

	// The suppression flag resets with the sequence: a fresh swipe works.
	result = mustApply(session, viewer.Event{Type: viewer.EventSwipeEnd, DX: -200, DY: 0})
	assert.Equal(t, viewer.CuePageTurn, result.Cue)
	assert.Equal(t, 1, session.PageIndex)
}

/*
TestApply_SwipeThresholds verifies the distance and deviation gates.
*/
func TestApply_SwipeThresholds(t *testing.T) {
	tests := []struct {
		name      string
		dx, dy    float64
		turnsPage bool
	}{
		{"long_horizontal_left", -120, 10, true},
		{"too_short", -30, 0, false},
		{"too_diagonal", -120, 80, false},
		{"rightward_on_first_page", 120, 0, true}, // navigates prev → boundary notice
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := readySession()
			mustApply(session, viewer.Event{Type: viewer.EventImageLoaded, Page: 1, W: 1600, H: 2400})

			result := mustApply(session, viewer.Event{Type: viewer.EventSwipeEnd, DX: tt.dx, DY: tt.dy})
			if tt.turnsPage {
				// Either an actual turn or the boundary notice; both prove
				// the swipe was recognized as navigation.
				assert.True(t, result.Cue == viewer.CuePageTurn || result.Notice != nil)
			} else {
				assert.Empty(t, result.Cue)
				assert.Nil(t, result.Notice)
				assert.Equal(t, 0, session.PageIndex)
			}
		})
	}
}

/*
TestApply_CropLifecycle verifies enter/adjust/exit crop, including the
default centered rectangle and the controls disabled during crop.
*/
func TestApply_CropLifecycle(t *testing.T) {
	session := readySession()

	mustApply(session, viewer.Event{Type: viewer.EventEnterCrop})
	assert.Equal(t, viewer.PhaseCropping, session.Phase)
	require.NotNil(t, session.Crop)
	assert.Equal(t, viewer.Rect{X: 400, Y: 600, W: 800, H: 1200}, *session.Crop)

	// Navigation and zoom are inert while cropping.
	result := mustApply(session, viewer.Event{Type: viewer.EventNavigate, Direction: "next"})
	require.NotNil(t, result.Notice)
	assert.Equal(t, 0, session.PageIndex)
	result = mustApply(session, viewer.Event{Type: viewer.EventZoomIn})
	require.NotNil(t, result.Notice)
	assert.InDelta(t, session.BaselineZoom, session.Zoom, 1e-9)

	// A rectangle dragged past the edge is clamped to image bounds.
	mustApply(session, viewer.Event{Type: viewer.EventCropAdjust, Rect: &viewer.Rect{X: 1500, Y: -50, W: 400, H: 400}})
	assert.Equal(t, viewer.Rect{X: 1200, Y: 0, W: 400, H: 400}, *session.Crop)

	mustApply(session, viewer.Event{Type: viewer.EventExitCrop})
	assert.Equal(t, viewer.PhaseReady, session.Phase)
	assert.Nil(t, session.Crop)
}

/*
TestApply_ResizeCancelsCropAndRefits verifies a viewport change cancels an
in-progress crop and recomputes the baseline from the new width.
*/
func TestApply_ResizeCancelsCropAndRefits(t *testing.T) {
	session := readySession()
	mustApply(session, viewer.Event{Type: viewer.EventEnterCrop})

	mustApply(session, viewer.Event{Type: viewer.EventResize, W: 1600, H: 900})

	assert.Equal(t, viewer.PhaseReady, session.Phase)
	assert.Nil(t, session.Crop)
	assert.InDelta(t, 1.0, session.BaselineZoom, 1e-9)
	assert.InDelta(t, 1.0, session.Zoom, 1e-9)
}

/*
TestApply_ResizeConvergence verifies the resize outcome is independent of
interleaving with page changes: the final zoom depends only on the final
viewport and the current page's natural width.
*/
func TestApply_ResizeConvergence(t *testing.T) {
	buildSession := func() *viewer.Session {
		session := readySession()
		mustApply(session, viewer.Event{Type: viewer.EventImageLoaded, Page: 1, W: 1000, H: 1500})
		return session
	}

	a := buildSession()
	mustApply(a, viewer.Event{Type: viewer.EventResize, W: 500, H: 400})
	mustApply(a, viewer.Event{Type: viewer.EventNavigate, Direction: "next"})

	b := buildSession()
	mustApply(b, viewer.Event{Type: viewer.EventNavigate, Direction: "next"})
	mustApply(b, viewer.Event{Type: viewer.EventResize, W: 500, H: 400})

	assert.InDelta(t, a.Zoom, b.Zoom, 1e-9)
	assert.InDelta(t, 0.5, a.Zoom, 1e-9) // 500 viewport / 1000 natural
}

/*
TestApply_DisabledSessionIsInert verifies a pageless session answers every
interaction with the no-edition notice and never changes state.
*/
func TestApply_DisabledSessionIsInert(t *testing.T) {
	session := &viewer.Session{
		ID:       "empty",
		Phase:    viewer.PhaseDisabled,
		Viewport: viewer.Size{W: 800, H: 600},
	}

	for _, eventType := range []viewer.EventType{
		viewer.EventNavigate, viewer.EventZoomIn, viewer.EventEnterCrop, viewer.EventDoubleTap,
	} {
		result := mustApply(session, viewer.Event{Type: eventType, Direction: "next"})
		require.NotNil(t, result.Notice, string(eventType))
		assert.Equal(t, "No edition found.", result.Notice.Message)
		assert.Equal(t, viewer.PhaseDisabled, session.Phase)
	}

	// Resize passes through so the empty state still re-renders.
	result := mustApply(session, viewer.Event{Type: viewer.EventResize, W: 1024, H: 768})
	assert.Nil(t, result.Notice)
	assert.Equal(t, viewer.Size{W: 1024, H: 768}, session.Viewport)
	assert.Equal(t, viewer.PhaseDisabled, session.Phase)
}

/*
TestApply_UnknownEventType verifies structurally invalid events error out
instead of silently mutating the session.
*/
func TestApply_UnknownEventType(t *testing.T) {
	session := readySession()

	_, err := viewer.Apply(session, viewer.Event{Type: "teleport"})
	assert.Error(t, err)
}
