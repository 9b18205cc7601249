// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package server exposes a graph data source over a REST API, together with
// the Linked Data proxy used for dereferencing.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// Version is reported in the OpenAPI document.
const Version = "0.1.0"

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr   string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Services, when set, registers the graph API routes.
	Services *Services
	// Proxy, when set, is mounted under /lod-proxy/.
	Proxy  *LODProxy
	Logger *slog.Logger
}

// Server wraps a chi router with huma API and HTTP server.
type Server struct {
	router   chi.Router
	api      huma.API
	cfg      Config
	services *Services
	logger   *slog.Logger
}

// New creates a Server with chi router, huma API, health endpoint, and CORS.
func New(cfg Config) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, ontoerr.New(ontoerr.CodeServerConfigInvalid, "listen address is required")
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 60 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware(cfg.CORSOrigins))

	// Huma API with OpenAPI spec
	humaConfig := huma.DefaultConfig("Ontodia Graph API", Version)
	humaConfig.Info.Description = "Federated access to knowledge graph data sources"
	api := humachi.New(r, humaConfig)

	srv := &Server{
		router: r,
		api:    api,
		cfg:    cfg,
		logger: cfg.Logger,
	}

	srv.registerHealthRoute()

	if cfg.Proxy != nil {
		r.Get(ProxyPath+"*", cfg.Proxy.ServeHTTP)
	}
	if cfg.Services != nil {
		srv.RegisterServices(cfg.Services)
	}

	return srv, nil
}

// Handler returns the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// API returns the huma API for registering additional operations.
func (s *Server) API() huma.API {
	return s.api
}

// Start runs the HTTP server and blocks until the context is cancelled,
// then performs graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return ontoerr.Errorf(ontoerr.CodeServerStartFailure, "listening on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if err != nil {
			return ontoerr.Errorf(ontoerr.CodeServerStartFailure, "serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return ontoerr.Errorf(ontoerr.CodeServerShutdownFailure, "shutting down: %w", err)
	}

	return <-errCh
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
