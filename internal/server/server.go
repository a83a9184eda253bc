// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes,
// and it owns the startup sequence:
//
//	open database → reset schema and seed → build router → listen
//
// If any step before listening fails, New returns an error and nothing is served.
//
// DEPENDENCY INJECTION FLOW:
//
//	sqldb.DB (one connection) → service.FlavorService → handler.FlavorHandler
//
// Everything is built once in New; no package-level state is shared between requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/acme-ice-cream/internal/config"
	"github.com/sakif/acme-ice-cream/internal/handler"
	"github.com/sakif/acme-ice-cream/internal/middleware"
	"github.com/sakif/acme-ice-cream/internal/repository/sqldb"
	"github.com/sakif/acme-ice-cream/internal/service"
	"github.com/sakif/acme-ice-cream/web"
)

// shutdownTimeout is how long in-flight requests get to finish after a stop signal.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection. Start closes it once the HTTP
// server has stopped; callers that never call Start must call Close.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqldb.DB
}

// New runs the startup routine and returns a Server ready to Start.
//
// The schema reset happens here, before any listener exists, so a failed
// connection or a failed seed means the process never serves traffic.
// There is no retry.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqldb.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Reset(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}
	logger.Info("DB has been seeded", slog.String("dialect", db.Dialect()))

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                  → landing page (HTML)
// GET    /api/flavors       → list flavors (JSON)
// POST   /api/flavors       → create flavor (JSON)
// PUT    /api/flavors/{id}  → rename flavor (JSON)
// DELETE /api/flavors/{id}  → delete flavor
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID — assigns an id to each request (for log correlation)
// 2. RealIP    — extracts real client IP from proxy headers
// 3. Recoverer — turns a panic into a 500 instead of killing the connection
// 4. Logger    — one structured line per request
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	landingFS, landingFile := s.landingPage()
	landingHandler := handler.NewLandingHandler(landingFS, landingFile, s.logger)
	s.router.Get("/", landingHandler.HandleIndex)

	flavorService := service.NewFlavorService(s.db, s.logger)
	flavorHandler := handler.NewFlavorHandler(flavorService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/flavors", flavorHandler.HandleList)
		r.Post("/flavors", flavorHandler.HandleCreate)
		r.Put("/flavors/{id}", flavorHandler.HandleUpdate)
		r.Delete("/flavors/{id}", flavorHandler.HandleDelete)
	})
}

// landingPage picks where "/" is read from: a file on disk when configured,
// the embedded copy otherwise.
func (s *Server) landingPage() (fs.FS, string) {
	if s.config.IndexPath == "" {
		return web.FS, web.IndexFile
	}
	return os.DirFS(filepath.Dir(s.config.IndexPath)), filepath.Base(s.config.IndexPath)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections
// 2. Wait up to 30s for in-flight requests
// 3. Close the database connection
func (s *Server) Start(ctx context.Context) error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("App listening",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
