// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package edition

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/constants"
)

// # Resolution Engine

// emptyStateTitle is shown when no edition has ever been published.
const emptyStateTitle = "No Editions Available"

// storeFailureNotice is the only message a reader sees when the datastore
// misbehaves; the real cause goes to the operator log.
const storeFailureNotice = "Editions are temporarily unavailable. Please try again later."

// ResolveRequest carries the optional reader inputs of a viewer request.
type ResolveRequest struct {
	// Date is the explicitly requested calendar date, nil on initial load.
	Date *time.Time

	// EditionID is the explicitly requested edition, empty when absent.
	EditionID string
}

/*
Resolve deterministically maps (date?, edition id?) onto a [Resolution].

Description: Implements the priority chain of the reader page. First match
wins:

 1. Explicit edition id → that edition; an unknown id degrades to the
    initial-load path with a "not found" notification.
 2. Neither date nor id → today's edition, else the globally latest.
 3. Explicit date → the single edition for it; multiple editions signal a
    disambiguation redirect; zero editions fall back to the latest.

Every datastore failure is absorbed here: the reader receives the empty
state with a generic notice and the cause is logged for operators. Callers
never see a raw storage error from this method.

Parameters:
  - context: context.Context
  - request: ResolveRequest
  - now: time.Time (the reader's "today"; injected for testability)

Returns:
  - *Resolution: Always non-nil; check RedirectTo before rendering.
*/
func (service *Service) Resolve(context context.Context, request ResolveRequest, now time.Time) *Resolution {

	today := midnightUTC(now)

	// ── 1. Explicit edition id ────────────────────────────────────────────
	if request.EditionID != "" {
		e, err := service.editionRepo.FindPublishedByID(context, request.EditionID)
		switch {
		case err == nil:
			return &Resolution{
				Edition:      e,
				SelectedDate: midnightUTC(e.PublicationDate),
				DisplayTitle: fmt.Sprintf("%s (%s)", e.Title, formatDisplayDate(e.PublicationDate)),
			}
		case isNotFound(err):
			// Unknown id: continue as if it had not been supplied.
			resolution := service.resolveWithoutID(context, request.Date, today)
			resolution.Notification = joinNotices("The requested edition was not found.", resolution.Notification)
			return resolution
		default:
			return service.storeFailure(context, err, today)
		}
	}

	return service.resolveWithoutID(context, request.Date, today)
}

// resolveWithoutID handles steps 2 and 3 of the priority chain.
func (service *Service) resolveWithoutID(context context.Context, date *time.Time, today time.Time) *Resolution {

	// ── 2. Initial load: no date requested ────────────────────────────────
	if date == nil {
		e, err := service.editionRepo.FindPublishedByDate(context, today)
		if err == nil {
			return &Resolution{
				Edition:      e,
				SelectedDate: today,
				DisplayTitle: e.Title,
			}
		}
		if !isNotFound(err) {
			return service.storeFailure(context, err, today)
		}

		return service.fallbackToLatest(context, today,
			"No edition for today. Showing the latest edition (%s).")
	}

	// ── 3. Explicit date requested ────────────────────────────────────────
	requested := midnightUTC(*date)

	count, err := service.editionRepo.CountPublishedByDate(context, requested)
	if err != nil {
		return service.storeFailure(context, err, requested)
	}

	switch {
	case count == 1:
		e, err := service.editionRepo.FindPublishedByDate(context, requested)
		if err != nil {
			// Benign race: the row vanished between count and fetch. A
			// refresh re-resolves cleanly, so degrade like an empty date.
			if isNotFound(err) {
				return service.fallbackForDate(context, requested)
			}
			return service.storeFailure(context, err, requested)
		}
		return &Resolution{
			Edition:      e,
			SelectedDate: requested,
			DisplayTitle: fmt.Sprintf("%s (for %s)", e.Title, formatDisplayDate(requested)),
		}

	case count > 1:
		// Deliberate redirect, not an error: let the reader pick.
		return &Resolution{
			SelectedDate: requested,
			RedirectTo:   DateEditionsPath(requested),
		}

	default:
		return service.fallbackForDate(context, requested)
	}
}

// fallbackForDate is step 3d: no edition for the requested date.
func (service *Service) fallbackForDate(context context.Context, requested time.Time) *Resolution {
	resolution := service.fallbackToLatest(context, requested,
		"No edition for "+formatDisplayDate(requested)+". Showing the latest edition (%s).")
	resolution.SelectedDate = requested
	if resolution.Edition != nil {
		resolution.SelectedDate = midnightUTC(resolution.Edition.PublicationDate)
	}
	return resolution
}

// fallbackToLatest resolves the globally latest published edition, or the
// empty state when none exists. noticeFormat receives the latest edition's
// display date.
func (service *Service) fallbackToLatest(context context.Context, selectedDate time.Time, noticeFormat string) *Resolution {
	latest, err := service.editionRepo.FindLatestPublished(context)
	if err != nil {
		if isNotFound(err) {
			return &Resolution{
				SelectedDate: selectedDate,
				DisplayTitle: emptyStateTitle,
			}
		}
		return service.storeFailure(context, err, selectedDate)
	}

	return &Resolution{
		Edition:      latest,
		SelectedDate: midnightUTC(latest.PublicationDate),
		DisplayTitle: fmt.Sprintf("%s (%s)", latest.Title, formatDisplayDate(latest.PublicationDate)),
		Notification: fmt.Sprintf(noticeFormat, formatDisplayDate(latest.PublicationDate)),
	}
}

// storeFailure logs the cause and converts it into the generic empty state.
func (service *Service) storeFailure(context context.Context, err error, selectedDate time.Time) *Resolution {
	service.logger.ErrorContext(context, "edition_resolution_store_failure",
		slog.Any("error", err),
	)

	return &Resolution{
		SelectedDate: selectedDate,
		DisplayTitle: emptyStateTitle,
		Notification: storeFailureNotice,
	}
}

// # Helpers

// DateEditionsPath builds the disambiguation URL for a calendar date.
func DateEditionsPath(date time.Time) string {
	return "/editions/date/" + date.Format(constants.DateFormatISO)
}

// midnightUTC truncates a timestamp to its calendar date.
func midnightUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// formatDisplayDate renders a date in the human-facing DD-MM-YYYY format.
func formatDisplayDate(t time.Time) string {
	return t.UTC().Format(constants.DateFormatDisplay)
}

// isNotFound reports whether err is a 404-class [apperr.AppError].
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == 404
}

// joinNotices concatenates two notification strings, skipping empties.
func joinNotices(first, second string) string {
	if second == "" {
		return first
	}
	return first + " " + second
}
