// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

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
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/numaochi/medialib/internal/catalog/chapter"
	"github.com/numaochi/medialib/internal/catalog/collection"
	"github.com/numaochi/medialib/internal/catalog/series"
	"github.com/numaochi/medialib/internal/catalog/volume"
	"github.com/numaochi/medialib/internal/platform/config"
	"github.com/numaochi/medialib/internal/platform/constants"
	"github.com/numaochi/medialib/internal/platform/middleware"
	"github.com/numaochi/medialib/internal/users/auth"
)

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

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

	// Auth handles account routes (register, login, logout).
	Auth *auth.Handler

	// Series handles the series catalog and full-text search.
	Series *series.Handler

	// Volume handles bound volumes and their chapter membership.
	Volume *volume.Handler

	// Chapter handles individual readable files.
	Chapter *chapter.Handler

	// Collection handles user-curated series groupings.
	Collection *collection.Handler
}

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Account routes mount at the /api root so registration keeps its
	// /api/register path. The catalog requires an authenticated session.
	r.Route("/api", func(api chi.Router) {
		api.Mount("/", h.Auth.Routes())

		api.Group(func(catalog chi.Router) {
			catalog.Use(middleware.RequireAuth)
			catalog.Mount("/series", h.Series.Routes())
			catalog.Mount("/volumes", h.Volume.Routes())
			catalog.Mount("/chapters", h.Chapter.Routes())
			catalog.Mount("/collections", h.Collection.Routes())
		})
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
