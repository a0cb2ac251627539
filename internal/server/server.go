// Package server exposes the thumbnail pipeline over HTTP.
//
// Routes:
//
//	POST /api/v1/thumbnails?format=svg|json|png|pdf&scale=2&refresh=true
//	POST /api/v1/layouts
//	GET  /api/v1/presets
//	GET  /healthz
//	GET  /metrics            (when a metrics handler is configured)
//
// Request bodies are JSON by default; TOML and YAML are accepted when the
// Content-Type says so. Errors are returned as {"code", "message"}.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/thumbkit/pkg/measure"
	"github.com/matzehuels/thumbkit/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes bounds request bodies, which may carry an inline
	// background image.
	DefaultMaxBodyBytes = 16 << 20

	// DefaultRenderTimeout bounds one pipeline run.
	DefaultRenderTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server serves thumbnails.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	measurer measure.Measurer
	metrics  http.Handler

	addr          string
	maxBodyBytes  int64
	renderTimeout time.Duration

	router chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option { return func(s *Server) { s.addr = addr } }

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

// WithMeasurer sets the text measurer used for composition.
func WithMeasurer(m measure.Measurer) Option { return func(s *Server) { s.measurer = m } }

// WithMaxBodyBytes bounds request body size.
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBodyBytes = n } }

// WithRenderTimeout bounds each pipeline run.
func WithRenderTimeout(d time.Duration) Option { return func(s *Server) { s.renderTimeout = d } }

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:        runner,
		logger:        logger,
		addr:          DefaultAddr,
		maxBodyBytes:  DefaultMaxBodyBytes,
		renderTimeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/thumbnails", s.handleThumbnail)
		r.Post("/layouts", s.handleLayout)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
