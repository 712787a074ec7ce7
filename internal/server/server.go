// Package server exposes the solver and workspace store over HTTP.
//
// Routes:
//
//	POST   /v1/solve                  solve an input, returns the plan
//	POST   /v1/whatif                 solve an input once per analysis date
//	GET    /v1/workspaces             list saved workspaces
//	POST   /v1/workspaces             save a state as a new workspace
//	GET    /v1/workspaces/{id}        fetch a workspace
//	POST   /v1/workspaces/{id}/solve  solve a workspace and store its plan
//	DELETE /v1/workspaces/{id}        delete a workspace
//	GET    /healthz                   build information
//	GET    /metrics                   Prometheus metrics
//
// Errors are JSON bodies with a machine-readable code; see httputil.WriteError.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/dutyflow/pkg/httputil"
	"github.com/matzehuels/dutyflow/pkg/pipeline"
	"github.com/matzehuels/dutyflow/pkg/session"
)

// Server handles API requests. Runner and Store are required.
type Server struct {
	Runner *pipeline.Runner
	Store  session.Store
	Logger *log.Logger

	// Defaults supplies Weights and MaxIterations to solves whose request
	// body left them unset.
	Defaults pipeline.Options

	// Gatherer serves /metrics; the /metrics route is omitted when nil.
	Gatherer prometheus.Gatherer

	// WorkspaceTTL is the lifetime of new workspaces; session.DefaultTTL
	// when zero.
	WorkspaceTTL time.Duration

	// RequestTimeout bounds each request; unbounded when zero.
	RequestTimeout time.Duration

	// MaxWhatIfDates caps the dates of one what-if request;
	// DefaultMaxWhatIfDates when zero.
	MaxWhatIfDates int
}

// DefaultMaxWhatIfDates is the what-if date cap used when none is set.
const DefaultMaxWhatIfDates = 64

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}

	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe)
	r.Use(s.logRequests)
	if s.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.RequestTimeout))
	}

	r.Get("/healthz", s.health)
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.solve)
		r.Post("/whatif", s.whatIf)
		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", s.listWorkspaces)
			r.Post("/", s.createWorkspace)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getWorkspace)
				r.Delete("/", s.deleteWorkspace)
				r.Post("/solve", s.solveWorkspace)
			})
		})
	})
	return r
}

// ListenAndServe serves the API on addr until ctx is done, then shuts down,
// giving in-flight requests up to ten seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Logger.Info("api shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", httputil.RequestIDFrom(r.Context()))
	})
}
