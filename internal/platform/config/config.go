// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Storage) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Gazeta API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) — viewer sessions and the settings read cache
	RedisURL string `env:"REDIS_URL,required"`

	// StorageRoot is the filesystem directory that holds uploaded edition
	// PDFs and their derived page images. It is served at /uploads.
	StorageRoot string `env:"STORAGE_ROOT" envDefault:"./data/uploads"`

	// SiteURL is the canonical public URL of the reader, used for share
	// links and the branding footer of exported crops.
	SiteURL string `env:"SITE_URL" envDefault:"https://gazeta.news"`

	// BrandLogoPath is the filesystem path to the logo composited into the
	// header band of exported crops. Optional; exports render without a
	// logo when empty.
	BrandLogoPath string `env:"BRAND_LOGO_PATH"`

	// PageTurnSoundPath is the web path of the page-flip audio cue the
	// viewer plays on navigation.
	PageTurnSoundPath string `env:"PAGE_TURN_SOUND_PATH" envDefault:"/assets/page-turn.mp3"`

	// Identity token verification (display-only session boundary).
	// Optional; when empty every request is treated as anonymous.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
