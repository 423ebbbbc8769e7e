// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package settings_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetapress/gazeta/internal/core/settings"
	"github.com/gazetapress/gazeta/internal/platform/apperr"
)

// memoryStore implements settings.Store in memory for service tests.
type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (*settings.Setting, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, apperr.NotFound("Setting")
	}
	return &settings.Setting{Key: key, Value: value}, nil
}

func (s *memoryStore) All(_ context.Context) (map[string]string, error) {
	return s.values, nil
}

func (s *memoryStore) Upsert(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func newTestService(store settings.Store) *settings.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return settings.NewService(store, logger)
}

/*
TestTheme_DefaultsWhenEmpty verifies a fresh store yields the complete
stock theme rather than zero values.
*/
func TestTheme_DefaultsWhenEmpty(t *testing.T) {
	service := newTestService(newMemoryStore())

	theme, err := service.Theme(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Gazeta", theme.SiteTitle)
	assert.NotEmpty(t, theme.PrimaryColor)
	assert.NotEmpty(t, theme.LogoURL)
	assert.True(t, theme.PageTurnSoundEnabled)
}

/*
TestTheme_OverlaysStoredValues verifies stored values win over defaults
while untouched keys keep theirs.
*/
func TestTheme_OverlaysStoredValues(t *testing.T) {
	store := newMemoryStore()
	store.values[settings.KeySiteTitle] = "The Harbor Gazette"
	store.values[settings.KeyPageTurnSoundEnabled] = "false"

	service := newTestService(store)

	theme, err := service.Theme(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "The Harbor Gazette", theme.SiteTitle)
	assert.False(t, theme.PageTurnSoundEnabled)
	assert.Equal(t, "#c8102e", theme.AccentColor) // untouched default
}

/*
TestUpdateSetting_RejectsUnknownKey verifies the write allowlist.
*/
func TestUpdateSetting_RejectsUnknownKey(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)

	err := service.UpdateSetting(context.Background(), "favorite_color", "teal")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, store.values)
}

/*
TestUpdateSetting_RoundTrip verifies a write is visible through both the
raw getter and the theme view.
*/
func TestUpdateSetting_RoundTrip(t *testing.T) {
	service := newTestService(newMemoryStore())

	require.NoError(t, service.UpdateSetting(context.Background(), settings.KeyTagline, "All the news that fits"))

	setting, err := service.GetSetting(context.Background(), settings.KeyTagline)
	require.NoError(t, err)
	assert.Equal(t, "All the news that fits", setting.Value)

	theme, err := service.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "All the news that fits", theme.Tagline)
}

/*
TestGetSetting_UnknownKey verifies raw reads share the allowlist.
*/
func TestGetSetting_UnknownKey(t *testing.T) {
	service := newTestService(newMemoryStore())

	_, err := service.GetSetting(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
