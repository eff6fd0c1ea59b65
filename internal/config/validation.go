// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"github.com/ManuGH/metronome/internal/validate"
)

// MinSigningSecretLength is the shortest accepted link signing secret.
const MinSigningSecretLength = 16

// Validate checks the configuration and reports every problem at once.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.LogLevel("logLevel", cfg.LogLevel)

	v.ListenAddr("api.listenAddr", cfg.API.ListenAddr)
	v.URL("api.publicBaseURL", cfg.API.PublicBaseURL, []string{"http", "https"})
	v.NonNegative("api.rateLimitPerMinute", cfg.API.RateLimitPerMinute)
	v.PositiveDuration("api.shutdownTimeout", cfg.API.ShutdownTimeout)

	m := cfg.Metronome
	v.Range("metronome.minBPM", m.MinBPM, 1, 1000)
	v.Range("metronome.maxBPM", m.MaxBPM, 1, 1000)
	v.Ordered("metronome.minBPM", m.MinBPM, m.MaxBPM)
	v.PositiveDuration("metronome.minDuration", m.MinDuration)
	v.PositiveDuration("metronome.maxDuration", m.MaxDuration)
	v.OrderedDuration("metronome.minDuration", m.MinDuration, m.MaxDuration)
	v.Positive("metronome.bpmStep", m.BPMStep)
	v.Range("metronome.maxCustomSequenceLength", m.MaxCustomSequenceLength, 1, 20)
	v.PositiveDuration("metronome.welcomeReminderAfter", m.WelcomeReminderAfter)

	g := cfg.Generator
	v.URL("generator.url", g.URL, []string{"http", "https"})
	v.PositiveDuration("generator.timeout", g.Timeout)
	if g.RateLimit < 0 {
		v.AddError("generator.rateLimit", "must not be negative", g.RateLimit)
	}
	v.NonNegative("generator.rateBurst", g.RateBurst)
	v.Positive("generator.breakerThreshold", g.BreakerThreshold)
	v.PositiveDuration("generator.breakerReset", g.BreakerReset)
	v.Positive("generator.maxConcurrent", g.MaxConcurrent)

	o := cfg.Objects
	v.OneOf("objects.backend", o.Backend, []string{BackendFS, BackendMemory})
	if o.Backend == BackendFS {
		v.Path("objects.root", o.Root)
	}
	v.MinLength("objects.signingSecret", o.SigningSecret, MinSigningSecretLength)
	v.PositiveDuration("objects.cachedLinkTTL", o.CachedLinkTTL)
	v.PositiveDuration("objects.freshLinkTTL", o.FreshLinkTTL)

	v.OneOf("linkCache.backend", cfg.LinkCache.Backend, []string{BackendMemory, BackendRedis, BackendNone})
	v.OneOf("sessions.backend", cfg.Sessions.Backend, []string{BackendMemory, BackendRedis})
	v.PositiveDuration("sessions.ttl", cfg.Sessions.TTL)
	if cfg.NeedsRedis() {
		v.NotEmpty("redis.addr", cfg.Redis.Addr)
		v.NonNegative("redis.db", cfg.Redis.DB)
	}

	v.OneOf("profiles.backend", cfg.Profiles.Backend, []string{BackendMemory, BackendBadger, BackendSqlite})
	if cfg.Profiles.Backend != BackendMemory {
		v.Path("profiles.path", cfg.Profiles.Path)
	}

	v.NotEmpty("entitlements.productId", cfg.Entitlements.ProductID)

	if t := cfg.Telemetry; t.Enabled {
		v.OneOf("telemetry.exporter", t.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", t.Endpoint)
		v.FloatRange("telemetry.samplingRate", t.SamplingRate, 0, 1)
	}

	return v.Err()
}
