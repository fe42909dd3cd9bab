// Package server implements the GoFlow HTTP API.
//
// The API exposes the pipeline over JSON: clients POST a call graph plus a
// layout strategy and receive positioned layouts or rendered artifacts.
// Computed layouts can be saved to a store and retrieved later.
//
// # Endpoints
//
//	GET    /health                  liveness probe
//	POST   /api/v1/layout           compute a layout for a posted graph
//	POST   /api/v1/render           render a posted graph to dot or svg
//	GET    /api/v1/layouts          list saved layouts
//	POST   /api/v1/layouts          save a computed layout
//	GET    /api/v1/layouts/{id}     fetch a saved layout
//	DELETE /api/v1/layouts/{id}     delete a saved layout
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/pipeline"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/store"
)

// Server wires the pipeline runner and layout store behind an HTTP router.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	version string
}

// New creates a server. A nil store disables the /api/v1/layouts endpoints
// (they respond 503); a nil logger falls back to log.Default().
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, version string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:  runner,
		store:   st,
		logger:  logger,
		version: version,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/layouts", func(r chi.Router) {
			r.Get("/", s.handleListLayouts)
			r.Post("/", s.handleSaveLayout)
			r.Get("/{id}", s.handleGetLayout)
			r.Delete("/{id}", s.handleDeleteLayout)
		})
	})

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
