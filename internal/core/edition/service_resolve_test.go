// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package edition_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetapress/gazeta/internal/core/edition"
	"github.com/gazetapress/gazeta/internal/platform/apperr"
)

// stubRepository implements edition.Repository with injectable behavior.
type stubRepository struct {
	byID    map[string]*edition.Edition
	byDate  map[string][]*edition.Edition
	latest  *edition.Edition
	failAll bool
}

var errStore = errors.New("connection refused")

func dateKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

func (r *stubRepository) FindPublishedByID(_ context.Context, id string) (*edition.Edition, error) {
	if r.failAll {
		return nil, errStore
	}
	if e, ok := r.byID[id]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("Edition")
}

func (r *stubRepository) FindPublishedByDate(_ context.Context, date time.Time) (*edition.Edition, error) {
	if r.failAll {
		return nil, errStore
	}
	matches := r.byDate[dateKey(date)]
	if len(matches) == 0 {
		return nil, apperr.NotFound("Edition")
	}
	return matches[0], nil
}

func (r *stubRepository) CountPublishedByDate(_ context.Context, date time.Time) (int, error) {
	if r.failAll {
		return 0, errStore
	}
	return len(r.byDate[dateKey(date)]), nil
}

func (r *stubRepository) ListPublishedByDate(_ context.Context, date time.Time) ([]*edition.Edition, error) {
	if r.failAll {
		return nil, errStore
	}
	return r.byDate[dateKey(date)], nil
}

func (r *stubRepository) FindLatestPublished(_ context.Context) (*edition.Edition, error) {
	if r.failAll {
		return nil, errStore
	}
	if r.latest == nil {
		return nil, apperr.NotFound("Edition")
	}
	return r.latest, nil
}

func (r *stubRepository) List(_ context.Context, _ edition.Filter, _, _ int) ([]*edition.Edition, int, error) {
	return nil, 0, nil
}
func (r *stubRepository) Create(_ context.Context, _ *edition.Edition) error { return nil }
func (r *stubRepository) Update(_ context.Context, _ *edition.Edition) error { return nil }
func (r *stubRepository) SoftDelete(_ context.Context, _ string) error       { return nil }

// newResolveService builds a Service over a stub repository.
func newResolveService(repo *stubRepository) *edition.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return edition.NewService(repo, logger)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func publishedEdition(id, title, date string) *edition.Edition {
	parsed, _ := time.Parse("2006-01-02", date)
	return &edition.Edition{
		ID:              id,
		Title:           title,
		PublicationDate: parsed,
		Status:          edition.StatusPublished,
	}
}

/*
TestResolve_ExplicitID verifies an explicit edition id wins over any date
and gets the date-annotated display title.
*/
func TestResolve_ExplicitID(t *testing.T) {
	wanted := publishedEdition("id-1", "Morning Herald", "2024-05-01")
	other := publishedEdition("id-2", "Evening Post", "2024-05-02")
	repo := &stubRepository{
		byID:   map[string]*edition.Edition{"id-1": wanted},
		byDate: map[string][]*edition.Edition{"2024-05-02": {other}},
	}
	service := newResolveService(repo)

	date := mustDate(t, "2024-05-02")
	resolution := service.Resolve(context.Background(), edition.ResolveRequest{
		EditionID: "id-1",
		Date:      &date,
	}, mustDate(t, "2024-05-10"))

	require.NotNil(t, resolution.Edition)
	assert.Equal(t, "id-1", resolution.Edition.ID)
	assert.Equal(t, "Morning Herald (01-05-2024)", resolution.DisplayTitle)
	assert.Empty(t, resolution.Notification)
	assert.Empty(t, resolution.RedirectTo)
}

/*
TestResolve_UnknownID verifies an unknown id degrades to the dateless path
and prepends the not-found notice to any fallback notice.
*/
func TestResolve_UnknownID(t *testing.T) {
	latest := publishedEdition("id-9", "Sunday Extra", "2024-04-28")
	repo := &stubRepository{latest: latest}
	service := newResolveService(repo)

	resolution := service.Resolve(context.Background(), edition.ResolveRequest{
		EditionID: "missing",
	}, mustDate(t, "2024-05-10"))

	require.NotNil(t, resolution.Edition)
	assert.Equal(t, "id-9", resolution.Edition.ID)
	assert.Contains(t, resolution.Notification, "The requested edition was not found.")
	assert.Contains(t, resolution.Notification, "Showing the latest edition (28-04-2024).")
}

/*
TestResolve_InitialLoadToday verifies the dateless request resolves today's
edition without any notification.
*/
func TestResolve_InitialLoadToday(t *testing.T) {
	today := publishedEdition("id-3", "Daily", "2024-05-10")
	repo := &stubRepository{
		byDate: map[string][]*edition.Edition{"2024-05-10": {today}},
	}
	service := newResolveService(repo)

	resolution := service.Resolve(context.Background(), edition.ResolveRequest{}, mustDate(t, "2024-05-10"))

	require.NotNil(t, resolution.Edition)
	assert.Equal(t, "id-3", resolution.Edition.ID)
	assert.Equal(t, "Daily", resolution.DisplayTitle)
	assert.Empty(t, resolution.Notification)
}

/*
TestResolve_InitialLoadFallsBack verifies a dateless request without a
today edition shows the latest with the explanatory notice.
*/
func TestResolve_InitialLoadFallsBack(t *testing.T) {
	latest := publishedEdition("id-4", "Weekend", "2024-05-04")
	repo := &stubRepository{latest: latest}
	service := newResolveService(repo)

	resolution := service.Resolve(context.Background(), edition.ResolveRequest{}, mustDate(t, "2024-05-10"))

	require.NotNil(t, resolution.Edition)
	assert.Equal(t, "No edition for today. Showing the latest edition (04-05-2024).", resolution.Notification)
	assert.Equal(t, mustDate(t, "2024-05-04"), resolution.SelectedDate)
}

/*
TestResolve_DateSingleMatch verifies the "(for DATE)" display title on an
exact single-edition date hit.
*/
func TestResolve_DateSingleMatch(t *testing.T) {
	e := publishedEdition("id-5", "Midweek", "2024-05-08")
	repo := &stubRepository{
		byDate: map[string][]*edition.Edition{"2024-05-08": {e}},
	}
	service := newResolveService(repo)

	date := mustDate(t, "2024-05-08")
	resolution := service.Resolve(context.Background(), edition.ResolveRequest{Date: &date}, mustDate(t, "2024-05-10"))

	require.NotNil(t, resolution.Edition)
	assert.Equal(t, "Midweek (for 08-05-2024)", resolution.DisplayTitle)
	assert.Empty(t, resolution.Notification)
}

/*
TestResolve_DateMultipleMatches verifies a multi-edition date yields the
disambiguation redirect instead of an arbitrary pick.
*/
func TestResolve_DateMultipleMatches(t *testing.T) {
	repo := &stubRepository{
		byDate: map[string][]*edition.Edition{"2024-05-08": {
			publishedEdition("id-5", "City", "2024-05-08"),
			publishedEdition("id-6", "Regional", "2024-05-08"),
		}},
	}
	service := newResolveService(repo)

	date := mustDate(t, "2024-05-08")
	resolution := service.Resolve(context.Background(), edition.ResolveRequest{Date: &date}, mustDate(t, "2024-05-10"))

	assert.Nil(t, resolution.Edition)
	assert.Equal(t, "/editions/date/2024-05-08", resolution.RedirectTo)
}

/*
TestResolve_DateWithoutEdition verifies the dated fallback notice names
both the requested date and the substitute edition's date.
*/
func TestResolve_DateWithoutEdition(t *testing.T) {
	latest := publishedEdition("id-7", "Latest", "2024-05-06")
	repo := &stubRepository{latest: latest}
	service := newResolveService(repo)

	date := mustDate(t, "2024-05-08")
	resolution := service.Resolve(context.Background(), edition.ResolveRequest{Date: &date}, mustDate(t, "2024-05-10"))

	require.NotNil(t, resolution.Edition)
	assert.Equal(t, "No edition for 08-05-2024. Showing the latest edition (06-05-2024).", resolution.Notification)
}

/*
TestResolve_EmptyCalendar verifies the empty state when nothing has ever
been published.
*/
func TestResolve_EmptyCalendar(t *testing.T) {
	service := newResolveService(&stubRepository{})

	resolution := service.Resolve(context.Background(), edition.ResolveRequest{}, mustDate(t, "2024-05-10"))

	assert.Nil(t, resolution.Edition)
	assert.Equal(t, "No Editions Available", resolution.DisplayTitle)
	assert.Empty(t, resolution.RedirectTo)
}

/*
TestResolve_StoreFailureAbsorbed verifies datastore errors never escape:
the reader gets the empty state plus the generic notice.
*/
func TestResolve_StoreFailureAbsorbed(t *testing.T) {
	service := newResolveService(&stubRepository{failAll: true})

	resolution := service.Resolve(context.Background(), edition.ResolveRequest{}, mustDate(t, "2024-05-10"))

	assert.Nil(t, resolution.Edition)
	assert.Equal(t, "No Editions Available", resolution.DisplayTitle)
	assert.Equal(t, "Editions are temporarily unavailable. Please try again later.", resolution.Notification)
}
