// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gazetapress/gazeta/internal/core/edition"
	"github.com/gazetapress/gazeta/internal/core/export"
	"github.com/gazetapress/gazeta/internal/core/settings"
	"github.com/gazetapress/gazeta/internal/core/viewer"
	"github.com/gazetapress/gazeta/internal/platform/config"
	"github.com/gazetapress/gazeta/internal/platform/constants"
	"github.com/gazetapress/gazeta/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// EditionView serves the public reader: edition resolution at the site
	// root plus the same-date disambiguation listing.
	EditionView *edition.ViewHandler

	// Edition handles the editorial-staff edition roster.
	Edition *edition.Handler

	// Viewer manages reader sessions and their interaction events.
	Viewer *viewer.Handler

	// Export composes crop artifacts and share links from viewer sessions.
	Export *export.Handler

	// Settings serves the public theme and the admin key/value surface.
	Settings *settings.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg, splitOrigins(cfg.ExtraOrigins)))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Public Reader
	// The resolution entry point lives at the site root because legacy
	// share links carry bare "/?date=..." and "/?edition_id=..." URLs.
	h.EditionView.RegisterRoutes(r)

	// # Uploaded Assets
	// Page images and source PDFs are served straight off the storage
	// root under the same mount the resolver builds URLs against.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.StorageRoot)))
	r.Get("/uploads/*", func(writer http.ResponseWriter, request *http.Request) {
		fileServer.ServeHTTP(writer, request)
	})

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		h.Edition.RegisterRoutes(api)
		h.Viewer.RegisterRoutes(api)
		h.Export.RegisterRoutes(api)
		h.Settings.RegisterRoutes(api)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// splitOrigins parses the comma-separated EXTRA_ORIGINS value.
func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
