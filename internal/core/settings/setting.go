// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package settings manages site-wide key/value configuration editable at
runtime: masthead text, theme colors, and reader behavior toggles.

Values live in Postgres as plain strings; a Redis read-through cache sits
in front because every public page render consults the theme. The typed
[ThemeSettings] view applies defaults for absent keys, so a fresh database
renders with the stock look instead of failing.
*/
package settings

import "time"

// # Keys

// Known setting keys. Writes to keys outside this set are rejected so a
// typo in an admin tool cannot silently create a dead row.
const (
	KeySiteTitle            = "site_title"
	KeyTagline              = "tagline"
	KeyPrimaryColor         = "theme_primary_color"
	KeyAccentColor          = "theme_accent_color"
	KeyBackgroundColor      = "theme_background_color"
	KeyLogoURL              = "brand_logo_url"
	KeyPageTurnSoundEnabled = "page_turn_sound_enabled"
	KeyContactEmail         = "contact_email"
)

// knownKeys is the write-allowlist.
var knownKeys = map[string]struct{}{
	KeySiteTitle:            {},
	KeyTagline:              {},
	KeyPrimaryColor:         {},
	KeyAccentColor:          {},
	KeyBackgroundColor:      {},
	KeyLogoURL:              {},
	KeyPageTurnSoundEnabled: {},
	KeyContactEmail:         {},
}

// IsKnownKey reports whether a key belongs to the settings schema.
func IsKnownKey(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

// # Entities

// Setting is one stored key/value row.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ThemeSettings is the typed view the public site renders from.
type ThemeSettings struct {
	SiteTitle            string `json:"site_title"`
	Tagline              string `json:"tagline"`
	PrimaryColor         string `json:"primary_color"`
	AccentColor          string `json:"accent_color"`
	BackgroundColor      string `json:"background_color"`
	LogoURL              string `json:"logo_url"`
	PageTurnSoundEnabled bool   `json:"page_turn_sound_enabled"`
	ContactEmail         string `json:"contact_email"`
}

// defaultTheme is the stock look used for any key absent from storage.
var defaultTheme = ThemeSettings{
	SiteTitle:            "Gazeta",
	Tagline:              "The daily edition, page by page",
	PrimaryColor:         "#1a1a2e",
	AccentColor:          "#c8102e",
	BackgroundColor:      "#f4f1ea",
	LogoURL:              "/assets/logo.png",
	PageTurnSoundEnabled: true,
	ContactEmail:         "desk@gazeta.news",
}

// themeFromValues overlays stored values onto the defaults.
func themeFromValues(values map[string]string) *ThemeSettings {
	theme := defaultTheme

	if v, ok := values[KeySiteTitle]; ok && v != "" {
		theme.SiteTitle = v
	}
	if v, ok := values[KeyTagline]; ok && v != "" {
		theme.Tagline = v
	}
	if v, ok := values[KeyPrimaryColor]; ok && v != "" {
		theme.PrimaryColor = v
	}
	if v, ok := values[KeyAccentColor]; ok && v != "" {
		theme.AccentColor = v
	}
	if v, ok := values[KeyBackgroundColor]; ok && v != "" {
		theme.BackgroundColor = v
	}
	if v, ok := values[KeyLogoURL]; ok && v != "" {
		theme.LogoURL = v
	}
	if v, ok := values[KeyPageTurnSoundEnabled]; ok {
		theme.PageTurnSoundEnabled = v == "1" || v == "true"
	}
	if v, ok := values[KeyContactEmail]; ok && v != "" {
		theme.ContactEmail = v
	}

	return &theme
}
