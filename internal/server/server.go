// Package server provides the HTTP API for driftlens.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/driftlens/driftlens/internal/config"
	"github.com/driftlens/driftlens/internal/extract"
	"github.com/driftlens/driftlens/internal/scanner"
	"github.com/driftlens/driftlens/internal/state"
)

// Server is the HTTP server for the driftlens API.
type Server struct {
	scanner  *scanner.Scanner
	store    state.Store
	registry *extract.Registry
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	sc *scanner.Scanner,
	store state.Store,
	registry *extract.Registry,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		scanner:  sc,
		store:    store,
		registry: registry,
		config:   cfg,
		logger:   logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/scan", s.handleScan)
	r.Get("/api/v1/pairs", s.handleListPairs)
	r.Post("/api/v1/pairs/{id}/review", s.handleMarkReviewed)
	r.Delete("/api/v1/pairs/{id}/review", s.handleUnmarkReviewed)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
