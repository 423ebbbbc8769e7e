// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/validate"
)

// # Service Implementation

// Service implements settings business logic over a [Store].
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a settings [Service].
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

/*
Theme returns the typed theme view for public rendering.

Description: Overlays every stored value onto the stock defaults, so a
fresh database (or a partially configured one) always yields a complete,
renderable theme.

Parameters:
  - context: context.Context

Returns:
  - *ThemeSettings: Never nil on success.
  - error: Database errors only.
*/
func (service *Service) Theme(context context.Context) (*ThemeSettings, error) {
	values, err := service.store.All(context)
	if err != nil {
		return nil, err
	}
	return themeFromValues(values), nil
}

/*
GetSetting returns one stored setting row.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - *Setting: The authoritative row with its timestamp.
  - error: apperr.NotFound when never written, validation error for
    unknown keys.
*/
func (service *Service) GetSetting(context context.Context, key string) (*Setting, error) {
	if !IsKnownKey(key) {
		return nil, apperr.ValidationError(fmt.Sprintf("Unknown setting key %q", key))
	}
	return service.store.Get(context, key)
}

/*
UpdateSetting writes one setting value.

Description: Only keys in the settings schema are writable. Values are
stored as strings; boolean keys accept "true"/"false"/"1"/"0".

Parameters:
  - context: context.Context
  - key: string
  - value: string

Returns:
  - error: Validation or database errors.
*/
func (service *Service) UpdateSetting(context context.Context, key, value string) error {
	v := &validate.Validator{}
	v.Custom("key", !IsKnownKey(key), fmt.Sprintf("Unknown setting key %q", key))
	v.MaxLen("value", value, 2048)

	if err := v.Err(); err != nil {
		return err
	}

	if err := service.store.Upsert(context, key, value); err != nil {
		return err
	}

	service.logger.Info("setting_updated", slog.String("key", key))
	return nil
}
