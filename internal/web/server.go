// Package web exposes the inventory service over HTTP and serves the
// embedded single-page frontend.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"stocktrack/internal/config"
	"stocktrack/internal/core"
	"stocktrack/internal/web/middleware"
)

//go:embed static
var staticFS embed.FS

// Server is the HTTP front end for the inventory service.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  chi.Router
	http    *http.Server
}

// NewServer builds the router and the underlying http.Server from config.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{service: service, cfg: cfg}
	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(s.cfg.Server.RequestTimeout))
	r.Use(middleware.SecurityHeaders)
	if s.cfg.Rate.Enabled {
		r.Use(middleware.NewRateLimiter(s.cfg.Rate.RequestsPerMinute).Handler)
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/categories", s.handleCategories)
		r.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/history", s.handleHistory)
	})

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/*", http.FileServerFS(static))

	return r
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
