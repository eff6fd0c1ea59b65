// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package audio maps a tempo to a playable link, generating and storing the
// clip on first use.
package audio

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/ManuGH/metronome/internal/cache"
	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	xglog "github.com/ManuGH/metronome/internal/log"
	"github.com/ManuGH/metronome/internal/metrics"
	"github.com/ManuGH/metronome/internal/resilience"
	"github.com/ManuGH/metronome/internal/telemetry"
)

// ContentType of generated clips.
const ContentType = "audio/wav"

// Generator renders a single clip.
type Generator interface {
	Generate(ctx context.Context, bpm model.BPM) ([]byte, error)
}

// ObjectStore holds generated clips and signs links to them.
type ObjectStore interface {
	SignedURLIfExists(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Config holds link lifetimes.
type Config struct {
	// CachedLinkTTL is the validity of links signed for an existing object.
	CachedLinkTTL time.Duration
	// FreshLinkTTL is the validity of links signed right after generation.
	FreshLinkTTL time.Duration
}

func DefaultConfig() Config {
	return Config{CachedLinkTTL: 15 * time.Minute, FreshLinkTTL: 2 * time.Hour}
}

// Key returns the content store key of the clip for bpm.
func Key(bpm model.BPM) string {
	return "sequences/" + bpm.String() + " BPM"
}

// Resolver is safe for concurrent use. Concurrent requests for the same
// tempo within one process share a single resolution.
type Resolver struct {
	gen     Generator
	store   ObjectStore
	links   cache.Cache
	breaker *resilience.CircuitBreaker
	cfg     Config
	group   singleflight.Group
	logger  zerolog.Logger
	tracer  trace.Tracer
}

type Option func(*Resolver)

func WithBreaker(cb *resilience.CircuitBreaker) Option {
	return func(r *Resolver) { r.breaker = cb }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

func NewResolver(gen Generator, store ObjectStore, links cache.Cache, cfg Config, opts ...Option) *Resolver {
	def := DefaultConfig()
	if cfg.CachedLinkTTL <= 0 {
		cfg.CachedLinkTTL = def.CachedLinkTTL
	}
	if cfg.FreshLinkTTL <= 0 {
		cfg.FreshLinkTTL = def.FreshLinkTTL
	}
	if links == nil {
		links = cache.NewNoOpCache()
	}

	r := &Resolver{
		gen:    gen,
		store:  store,
		links:  links,
		cfg:    cfg,
		logger: xglog.WithComponent("audio"),
		tracer: telemetry.Tracer("metronome/audio"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.breaker == nil {
		r.breaker = resilience.NewCircuitBreaker("generator", 3, 30*time.Second)
	}
	return r
}

type resolution struct {
	link    string
	outcome string
}

// ResolveLink returns a playable link for bpm. The caller's cancellation
// only abandons its own wait; a resolution already shared with other
// callers runs to completion.
func (r *Resolver) ResolveLink(ctx context.Context, bpm model.BPM) (string, error) {
	key := Key(bpm)
	ctx, span := r.tracer.Start(ctx, "audio.ResolveLink", trace.WithAttributes(telemetry.LinkAttributes(int(bpm), key)...))
	defer span.End()

	detached := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		return r.resolve(detached, bpm, key)
	})

	select {
	case <-ctx.Done():
		span.SetStatus(codes.Error, "canceled")
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			metrics.RecordLinkResolution(metrics.LinkError)
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, "resolve failed")
			return "", res.Err
		}
		out := res.Val.(resolution)
		outcome := out.outcome
		if res.Shared {
			outcome = metrics.LinkShared
		}
		metrics.RecordLinkResolution(outcome)
		span.SetAttributes(attribute.String(telemetry.LinkOutcomeKey, outcome))
		return out.link, nil
	}
}

func (r *Resolver) resolve(ctx context.Context, bpm model.BPM, key string) (resolution, error) {
	logger := xglog.WithContext(ctx, r.logger).With().Int(xglog.FieldBPM, int(bpm)).Logger()

	if v, ok, err := r.links.Get(ctx, key); err != nil {
		logger.Warn().Err(err).Msg("link cache read failed")
	} else if ok {
		return resolution{link: string(v), outcome: metrics.LinkCacheHit}, nil
	}

	link, found, err := r.store.SignedURLIfExists(ctx, key, r.cfg.CachedLinkTTL)
	if err != nil {
		return resolution{}, &StorageError{Op: "stat", Key: key, Err: err}
	}
	if found {
		r.remember(ctx, logger, key, link, r.cfg.CachedLinkTTL)
		return resolution{link: link, outcome: metrics.LinkStoreHit}, nil
	}

	data, err := r.generate(ctx, bpm)
	if err != nil {
		return resolution{}, &GenerationServiceError{BPM: bpm, Err: err}
	}
	if err := r.store.Put(ctx, key, data, ContentType); err != nil {
		return resolution{}, &StorageError{Op: "put", Key: key, Err: err}
	}
	link, err = r.store.SignedURL(ctx, key, r.cfg.FreshLinkTTL)
	if err != nil {
		return resolution{}, &StorageError{Op: "sign", Key: key, Err: err}
	}

	logger.Info().Str(xglog.FieldEvent, "audio.generated").Int("bytes", len(data)).Msg("generated and stored clip")
	r.remember(ctx, logger, key, link, r.cfg.FreshLinkTTL)
	return resolution{link: link, outcome: metrics.LinkGenerated}, nil
}

func (r *Resolver) generate(ctx context.Context, bpm model.BPM) ([]byte, error) {
	ctx, span := r.tracer.Start(ctx, "audio.Generate")
	defer span.End()

	var data []byte
	start := time.Now()
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		data, err = r.gen.Generate(ctx, bpm)
		return err
	})
	metrics.ObserveGeneration(time.Since(start), len(data), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
	}
	return data, err
}

// remember caches link for half its validity so a cached link always has
// time left when handed to the player.
func (r *Resolver) remember(ctx context.Context, logger zerolog.Logger, key, link string, validity time.Duration) {
	if err := r.links.Set(ctx, key, []byte(link), validity/2); err != nil {
		logger.Warn().Err(err).Msg("link cache write failed")
	}
}
