// Package server implements the tilegrid HTTP API.
//
// The API exposes the layout pipeline over HTTP:
//
//	GET  /healthz                     - liveness probe with build info
//	POST /v1/analyze                  - adjacency report for a layout
//	POST /v1/render                   - rendered artifacts for a layout
//	POST /v1/snapshots                - store a shareable layout snapshot
//	GET  /v1/snapshots                - list snapshots
//	GET  /v1/snapshots/{id}           - fetch one snapshot
//	DELETE /v1/snapshots/{id}         - delete a snapshot
//	GET  /v1/snapshots/{id}/render    - render a stored snapshot
//
// Handlers return structured errors as JSON with machine-readable codes,
// mapped onto HTTP status codes by category.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/snapshot"
)

// Server holds the shared dependencies of all handlers.
type Server struct {
	runner *pipeline.Runner
	store  snapshot.Store
	logger *log.Logger
}

// New creates a server. If logger is nil, the default logger is used.
func New(runner *pipeline.Runner, store snapshot.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  store,
		logger: logger,
	}
}

// Routes builds the chi router with all endpoints and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/render", s.handleRender)

		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/", s.handleSnapshotCreate)
			r.Get("/", s.handleSnapshotList)
			r.Get("/{id}", s.handleSnapshotGet)
			r.Delete("/{id}", s.handleSnapshotDelete)
			r.Get("/{id}/render", s.handleSnapshotRender)
		})
	})

	return r
}

// logRequests emits one structured log line per request and feeds the
// HTTP observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond))
	})
}
