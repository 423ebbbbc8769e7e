// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

// Command api is the entry point for the Gazeta HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gazetapress/gazeta/internal/api"
	"github.com/gazetapress/gazeta/internal/core/edition"
	"github.com/gazetapress/gazeta/internal/core/export"
	"github.com/gazetapress/gazeta/internal/core/pageimage"
	"github.com/gazetapress/gazeta/internal/core/settings"
	"github.com/gazetapress/gazeta/internal/core/viewer"
	"github.com/gazetapress/gazeta/internal/platform/config"
	"github.com/gazetapress/gazeta/internal/platform/constants"
	"github.com/gazetapress/gazeta/internal/platform/middleware"
	"github.com/gazetapress/gazeta/internal/platform/migration"
	pgstore "github.com/gazetapress/gazeta/internal/platform/postgres"
	redisstore "github.com/gazetapress/gazeta/internal/platform/redis"
	"github.com/gazetapress/gazeta/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Verification ─────────────────────────────────────────────
	// Tokens are minted by the newsroom identity service; the API only
	// verifies. Without a public key the server runs fully anonymous and
	// every staff endpoint answers 401.
	var verifier middleware.TokenVerifier
	if cfg.JWTPubKeyPath != "" {
		jwtSvc, err := sec.NewTokenService(cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(log, err, "initialize jwt verification")
		verifier = jwtSvc
	} else {
		log.Warn("jwt_verification_disabled", slog.String("reason", "no public key configured"))
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	imageResolver := pageimage.NewResolver(cfg.StorageRoot, log)

	editionRepository := edition.NewRepository(pool)
	editionService := edition.NewService(editionRepository, log)
	editionViewHandler := edition.NewViewHandler(editionService, imageResolver, cfg.SiteURL, cfg.PageTurnSoundPath)
	editionHandler := edition.NewHandler(editionService)

	viewerStore := viewer.NewRedisStore(rdb)
	viewerService := viewer.NewService(viewerStore, editionService, imageResolver, log)
	viewerHandler := viewer.NewHandler(viewerService)

	exportService := export.NewService(viewerService, editionService, imageResolver, cfg.SiteURL, cfg.BrandLogoPath, log)
	exportHandler := export.NewHandler(exportService)

	settingStore := settings.NewCachedStore(settings.NewStore(pool), rdb, log)
	settingService := settings.NewService(settingStore, log)
	settingHandler := settings.NewHandler(settingService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		EditionView: editionViewHandler,
		Edition:     editionHandler,
		Viewer:      viewerHandler,
		Export:      exportHandler,
		Settings:    settingHandler,
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
