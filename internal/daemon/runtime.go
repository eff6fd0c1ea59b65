// SPDX-License-Identifier: MIT

// Package daemon wires the service together and owns its lifecycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/metronome/internal/api"
	"github.com/ManuGH/metronome/internal/audio"
	"github.com/ManuGH/metronome/internal/audio/generator"
	"github.com/ManuGH/metronome/internal/audio/objectstore"
	"github.com/ManuGH/metronome/internal/cache"
	"github.com/ManuGH/metronome/internal/config"
	"github.com/ManuGH/metronome/internal/domain/metronome/editor"
	"github.com/ManuGH/metronome/internal/health"
	"github.com/ManuGH/metronome/internal/log"
	"github.com/ManuGH/metronome/internal/platform/httpx"
	"github.com/ManuGH/metronome/internal/profile"
	"github.com/ManuGH/metronome/internal/resilience"
	"github.com/ManuGH/metronome/internal/sequence"
	"github.com/ManuGH/metronome/internal/session"
	"github.com/ManuGH/metronome/internal/skill"
	"github.com/ManuGH/metronome/internal/telemetry"
	"github.com/ManuGH/metronome/internal/tempo"
)

// ServiceName identifies the process in logs and traces.
const ServiceName = "metronome"

// ShutdownHook performs cleanup during graceful shutdown. Hooks run in
// reverse registration order.
type ShutdownHook func(ctx context.Context) error

type namedHook struct {
	name string
	hook ShutdownHook
}

// Runtime is the wired service. Config is the configuration it was built
// from; live changes go through Apply.
type Runtime struct {
	Config config.AppConfig
	Tempo  *tempo.Resolver
	Router *skill.Router
	Server *api.Server
	Health *health.Manager

	logger zerolog.Logger
	hooks  []namedHook
}

// Options replace collaborators, mostly for tests.
type Options struct {
	// HTTPClient is used for generation calls. Defaults to a traced httpx
	// client with the configured timeout.
	HTTPClient *http.Client
	// Entitlements overrides the static entitlement from configuration.
	Entitlements skill.Entitlements
}

// RegisterShutdownHook registers cleanup to run on Close.
func (rt *Runtime) RegisterShutdownHook(name string, hook ShutdownHook) {
	rt.hooks = append(rt.hooks, namedHook{name: name, hook: hook})
}

func closerHook(c interface{ Close() error }) ShutdownHook {
	return func(context.Context) error { return c.Close() }
}

// Build wires every component from cfg. On error everything opened so far
// is closed again.
func Build(ctx context.Context, cfg config.AppConfig, opts Options) (_ *Runtime, err error) {
	rt := &Runtime{
		Config: cfg,
		Health: health.NewManager(cfg.Version),
		logger: log.WithComponent("daemon"),
	}
	defer func() {
		if err != nil {
			_ = rt.Close(context.Background())
		}
	}()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    ServiceName,
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	rt.RegisterShutdownHook("telemetry", tp.Shutdown)

	profiles, err := profile.OpenStore(ctx, cfg.Profiles.Backend, cfg.Profiles.Path)
	if err != nil {
		return nil, fmt.Errorf("profile store: %w", err)
	}
	rt.RegisterShutdownHook("profiles", closerHook(profiles))
	rt.Health.RegisterChecker(health.NewPingChecker("profiles", profiles.Ping))

	backend, err := openObjects(cfg.Objects)
	if err != nil {
		return nil, err
	}
	rt.Health.RegisterChecker(health.NewPingChecker("objects", backend.Ping))
	signer := objectstore.NewSigner(cfg.Objects.SigningSecret, cfg.API.PublicBaseURL)
	objects := objectstore.New(backend, signer)

	links, err := rt.openCache(ctx, cfg, cfg.LinkCache.Backend, "metronome:links:", "link_cache")
	if err != nil {
		return nil, err
	}
	sessionCache, err := rt.openCache(ctx, cfg, cfg.Sessions.Backend, "metronome:", "session_cache")
	if err != nil {
		return nil, err
	}

	hc := opts.HTTPClient
	if hc == nil {
		// Rendering happens before the first response byte.
		hc = httpx.New(httpx.Options{
			Timeout:               cfg.Generator.Timeout,
			ResponseHeaderTimeout: cfg.Generator.Timeout,
			Traced:                true,
		})
	}
	gen := generator.New(hc, generator.Config{
		URL:       cfg.Generator.URL,
		RateLimit: cfg.Generator.RateLimit,
		Burst:     cfg.Generator.RateBurst,
	})
	breaker := resilience.NewCircuitBreaker("generator", cfg.Generator.BreakerThreshold, cfg.Generator.BreakerReset)
	rt.Health.RegisterChecker(health.NewBreakerChecker(breaker))

	resolver := audio.NewResolver(gen, objects, links, audio.Config{
		CachedLinkTTL: cfg.Objects.CachedLinkTTL,
		FreshLinkTTL:  cfg.Objects.FreshLinkTTL,
	}, audio.WithBreaker(breaker))

	rt.Tempo = tempo.NewResolver(cfg.Metronome.Limits())

	ent := opts.Entitlements
	if ent == nil {
		ent = skill.StaticEntitlements(cfg.Entitlements.CustomSequences)
	}
	rt.Router = skill.NewRouter(skill.Deps{
		Tempo:        rt.Tempo,
		Editor:       editor.New(cfg.Metronome.MaxCustomSequenceLength),
		Builder:      sequence.NewBuilder(resolver, cfg.Generator.MaxConcurrent),
		Profiles:     profiles,
		Sessions:     session.NewStore(sessionCache, cfg.Sessions.TTL),
		Entitlements: ent,
	}, skill.Config{
		WelcomeReminderAfter: cfg.Metronome.WelcomeReminderAfter,
		ProductID:            cfg.Entitlements.ProductID,
	})

	tracing := ""
	if cfg.Telemetry.Enabled {
		tracing = ServiceName
	}
	rt.Server = api.New(api.Config{
		ListenAddr:         cfg.API.ListenAddr,
		RateLimitPerMinute: cfg.API.RateLimitPerMinute,
		TracingService:     tracing,
		ShutdownTimeout:    cfg.API.ShutdownTimeout,
	}, api.Deps{
		Dispatcher: rt.Router,
		Media:      objectstore.NewHandler(backend, signer),
		Health:     rt.Health,
	})

	rt.logger.Info().
		Str(log.FieldEvent, "daemon.wired").
		Str("profiles", cfg.Profiles.Backend).
		Str("objects", cfg.Objects.Backend).
		Str("link_cache", cfg.LinkCache.Backend).
		Str("sessions", cfg.Sessions.Backend).
		Bool("tracing", cfg.Telemetry.Enabled).
		Msg("runtime wired")
	return rt, nil
}

func openObjects(cfg config.ObjectsConfig) (objectstore.Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return objectstore.NewMemoryStore(), nil
	default:
		fs, err := objectstore.NewFSStore(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("object store: %w", err)
		}
		return fs, nil
	}
}

// openCache returns the cache for one role and registers its health check
// and shutdown.
func (rt *Runtime) openCache(ctx context.Context, cfg config.AppConfig, backend, prefix, name string) (cache.Cache, error) {
	var c cache.Cache
	switch backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   prefix,
		}, log.WithComponent(name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rt.Health.RegisterChecker(health.NewPingChecker(name, rc.HealthCheck))
		c = rc
	case config.BackendNone:
		c = cache.NewNoOpCache()
	default:
		c = cache.NewMemoryCache(time.Minute)
	}
	rt.RegisterShutdownHook(name, closerHook(c))
	return c, nil
}

// Apply takes over the settings that change without a restart.
func (rt *Runtime) Apply(cfg config.AppConfig) {
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		rt.logger.Warn().Err(err).Str("level", cfg.LogLevel).Msg("unknown log level, using info")
	}
	rt.Tempo.SetLimits(cfg.Metronome.Limits())

	rt.logger.Info().
		Str(log.FieldEvent, "daemon.config_applied").
		Int("min_bpm", cfg.Metronome.MinBPM).
		Int("max_bpm", cfg.Metronome.MaxBPM).
		Str("log_level", cfg.LogLevel).
		Msg("applied reloaded configuration")
}

// Close runs the shutdown hooks in reverse order and joins their errors.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(rt.hooks) - 1; i >= 0; i-- {
		h := rt.hooks[i]
		start := time.Now()
		if err := h.hook(ctx); err != nil {
			rt.logger.Error().Err(err).Str("hook", h.name).Dur("duration", time.Since(start)).Msg("shutdown hook failed")
			errs = append(errs, fmt.Errorf("hook %s: %w", h.name, err))
			continue
		}
		rt.logger.Debug().Str("hook", h.name).Dur("duration", time.Since(start)).Msg("shutdown hook completed")
	}
	rt.hooks = nil
	return errors.Join(errs...)
}
