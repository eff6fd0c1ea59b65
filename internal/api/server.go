// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api exposes the skill over HTTP: the event endpoint, signed media
// delivery, health probes and metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/metronome/internal/api/middleware"
	"github.com/ManuGH/metronome/internal/audio/objectstore"
	"github.com/ManuGH/metronome/internal/health"
	"github.com/ManuGH/metronome/internal/log"
	"github.com/ManuGH/metronome/internal/skill"
)

// Dispatcher handles one skill event.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev skill.Event) (skill.Response, error)
}

// Config holds the HTTP server settings.
type Config struct {
	ListenAddr         string
	RateLimitPerMinute int
	// TracingService names server spans; empty disables HTTP tracing.
	TracingService  string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Deps are the collaborators behind the routes. Media and Health are
// optional.
type Deps struct {
	Dispatcher Dispatcher
	Media      http.Handler
	Health     *health.Manager
}

// Server is the HTTP front of the skill.
type Server struct {
	cfg    Config
	deps   Deps
	router chi.Router
	logger zerolog.Logger
}

// New builds the router. Nothing listens until Run.
func New(cfg Config, deps Deps) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 64 << 10
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{cfg: cfg, deps: deps, logger: log.WithComponent("api")}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		TracingService:        s.cfg.TracingService,
		EnableLogging:         true,
		RateLimitPerMinute:    s.cfg.RateLimitPerMinute,
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { writeNotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { writeMethodNotAllowed(w) })

	r.Post("/api/v1/events", s.handleEvent)

	if s.deps.Media != nil {
		r.Method(http.MethodGet, objectstore.MediaPrefix+"*", http.StripPrefix(objectstore.MediaPrefix, s.deps.Media))
		r.Method(http.MethodHead, objectstore.MediaPrefix+"*", http.StripPrefix(objectstore.MediaPrefix, s.deps.Media))
	}
	if s.deps.Health != nil {
		r.Get("/healthz", s.deps.Health.ServeHealth)
		r.Get("/readyz", s.deps.Health.ServeReady)
	}
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Run serves on the configured address until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str(log.FieldEvent, "api.listen").Str("addr", ln.Addr().String()).Msg("http server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info().Str(log.FieldEvent, "api.shutdown").Msg("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	<-errCh
	return nil
}
