// Package server exposes a loaded site configuration over HTTP so that
// rendering workers in other processes, and people, can read exactly what the
// build will use.
package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/siteconf/assets"
)

// Server is the read-only inspection server. It wires together the
// snapshot, metrics, middleware and routes.
type Server struct {
	Echo     *echo.Echo
	Snapshot *Snapshot
	Metrics  *Metrics

	addr    string
	source  string
	profile string
	assets  *assets.Root
}

// Option configures additional Server behavior.
type Option func(*Server)

// WithAddr sets the listen address (default ":3001").
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithSource records where the configuration came from, for display.
func WithSource(path, profile string) Option {
	return func(s *Server) {
		s.source = path
		s.profile = profile
	}
}

// WithAssets serves root under /public and reports the OG image size.
func WithAssets(root *assets.Root) Option {
	return func(s *Server) {
		s.assets = root
	}
}

// WithMetrics replaces the default metrics registry.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// New creates a Server for snapshot.
func New(snapshot *Snapshot, opts ...Option) *Server {
	s := &Server{
		Echo:     echo.New(),
		Snapshot: snapshot,
		addr:     ":3001",
		source:   "built-in",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Metrics == nil {
		s.Metrics = NewMetrics(nil)
	}
	s.Echo.HideBanner = true
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	e := s.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/_siteconf/style.css", echo.WrapHandler(http.StripPrefix("/_siteconf/", embeddedHandler)))

	if s.assets != nil {
		e.StaticFS("/public", s.assets.FileSystem())
	}

	e.GET("/", s.handleSummary)
	e.GET("/config.json", s.handleConfigJSON)
	e.GET("/config.yaml", s.handleConfigYAML)
	e.GET("/healthz", handleHealth)
	e.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	if err := s.Echo.Start(s.addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
