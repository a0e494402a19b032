// Package api serves the grid engine over HTTP.
//
// Geometry endpoints are stateless and take everything they need in the
// request body. Project endpoints persist documents through a store.Store and
// are disabled (501) when the server has none.
//
//	POST   /v1/tracks                   grid.Spec -> tracks
//	POST   /v1/locate                   {spec, x, y} -> nearest grid lines
//	POST   /v1/snap                     {start, end, maxLines} -> snapped span
//	POST   /v1/gesture                  replay a drag/resize gesture
//	POST   /v1/generate?format=css      project -> generated code
//	GET    /v1/projects                 list stored projects
//	POST   /v1/projects                 create a project
//	GET    /v1/projects/{id}            fetch a project
//	PUT    /v1/projects/{id}            replace a project
//	DELETE /v1/projects/{id}            delete a project
//	GET    /v1/projects/{id}/generate   generate code for a stored project
//	GET    /healthz                     liveness and build info
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridsmith/pkg/observability"
	"github.com/matzehuels/gridsmith/pkg/pipeline"
	"github.com/matzehuels/gridsmith/pkg/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server is the HTTP API. It is an http.Handler.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the project endpoints.
func WithStore(s store.Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithLogger sets the request logger. The runner's logger is used otherwise.
func WithLogger(l *log.Logger) Option {
	return func(srv *Server) { srv.logger = l }
}

// WithTimeout bounds the time spent on one request. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(srv *Server) { srv.timeout = d }
}

// New creates a server around runner. A nil runner gets an uncached one.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, nil)
	}
	s := &Server{runner: runner, timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = runner.Logger
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/tracks", s.handleTracks)
		r.Post("/locate", s.handleLocate)
		r.Post("/snap", s.handleSnap)
		r.Post("/gesture", s.handleGesture)
		r.Post("/generate", s.handleGenerate)

		r.Route("/projects", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)
			r.Get("/{id}", s.handleGetProject)
			r.Put("/{id}", s.handlePutProject)
			r.Delete("/{id}", s.handleDeleteProject)
			r.Get("/{id}/generate", s.handleGenerateProject)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, errNotFound(r))
	})
	r.MethodNotAllowed(writeMethodNotAllowed)
	return r
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))

		level := log.InfoLevel
		if status >= 500 {
			level = log.ErrorLevel
		}
		s.logger.Log(level, "request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, r, s.logger, errNoStore)
			return
		}
		next.ServeHTTP(w, r)
	})
}
