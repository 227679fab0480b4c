// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

It is the composition root of the transport layer: only this package and
cmd/api construct servers.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/ibis/internal/core/alias"
	"github.com/taibuivan/ibis/internal/core/fact"
	"github.com/taibuivan/ibis/internal/core/period"
	"github.com/taibuivan/ibis/internal/core/source"
	"github.com/taibuivan/ibis/internal/core/tag"
	"github.com/taibuivan/ibis/internal/core/tagtype"
	"github.com/taibuivan/ibis/internal/platform/config"
	"github.com/taibuivan/ibis/internal/platform/constants"
	"github.com/taibuivan/ibis/internal/platform/middleware"
	"github.com/taibuivan/ibis/internal/users/account"
	"github.com/taibuivan/ibis/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Account *account.Handler

	Sources  *source.Handler
	Periods  *period.Handler
	TagTypes *tagtype.Handler
	Tags     *tag.Handler
	Aliases  *alias.Handler
	Facts    *fact.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

Every knowledge-base collection is private: requests without a valid bearer
token get 401 before reaching a handler.
*/
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimitWith(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(private chi.Router) {
			private.Use(middleware.RequireAuth)

			private.Mount("/account", h.Account.Routes())
			private.Mount("/sources", h.Sources.Routes())
			private.Mount("/periods", h.Periods.Routes())
			private.Mount("/tag_types", h.TagTypes.Routes())
			private.Mount("/tags", h.Tags.Routes())
			private.Mount("/aliases", h.Aliases.Routes())
			private.Mount("/facts", h.Facts.Routes())
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

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is closed.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
