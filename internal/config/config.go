// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the service configuration with the precedence
// ENV > file > defaults, validates it and watches the file for changes.
package config

import (
	"time"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	"github.com/ManuGH/metronome/internal/tempo"
)

// AppConfig is the whole service configuration. The YAML layout mirrors the
// struct; every field can also be set through a METRONOME_* variable.
type AppConfig struct {
	Version  string `yaml:"-"`
	LogLevel string `yaml:"logLevel"`

	API          APIConfig          `yaml:"api"`
	Metronome    MetronomeConfig    `yaml:"metronome"`
	Generator    GeneratorConfig    `yaml:"generator"`
	Objects      ObjectsConfig      `yaml:"objects"`
	LinkCache    LinkCacheConfig    `yaml:"linkCache"`
	Redis        RedisConfig        `yaml:"redis"`
	Profiles     ProfilesConfig     `yaml:"profiles"`
	Sessions     SessionsConfig     `yaml:"sessions"`
	Entitlements EntitlementsConfig `yaml:"entitlements"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

type APIConfig struct {
	ListenAddr         string        `yaml:"listenAddr"`
	PublicBaseURL      string        `yaml:"publicBaseURL"`
	RateLimitPerMinute int           `yaml:"rateLimitPerMinute"`
	ShutdownTimeout    time.Duration `yaml:"shutdownTimeout"`
}

// MetronomeConfig holds the domain bounds. These are the only settings
// applied on reload without a restart, together with LogLevel.
type MetronomeConfig struct {
	MinBPM                  int           `yaml:"minBPM"`
	MaxBPM                  int           `yaml:"maxBPM"`
	MinDuration             time.Duration `yaml:"minDuration"`
	MaxDuration             time.Duration `yaml:"maxDuration"`
	BPMStep                 int           `yaml:"bpmStep"`
	MaxCustomSequenceLength int           `yaml:"maxCustomSequenceLength"`
	WelcomeReminderAfter    time.Duration `yaml:"welcomeReminderAfter"`
}

// Limits converts the bounds for the tempo resolver.
func (m MetronomeConfig) Limits() tempo.Limits {
	return tempo.Limits{
		MinBPM:      model.BPM(m.MinBPM),
		MaxBPM:      model.BPM(m.MaxBPM),
		Step:        m.BPMStep,
		MinDuration: m.MinDuration,
		MaxDuration: m.MaxDuration,
	}
}

type GeneratorConfig struct {
	URL              string        `yaml:"url"`
	Timeout          time.Duration `yaml:"timeout"`
	RateLimit        float64       `yaml:"rateLimit"`
	RateBurst        int           `yaml:"rateBurst"`
	BreakerThreshold int           `yaml:"breakerThreshold"`
	BreakerReset     time.Duration `yaml:"breakerReset"`
	MaxConcurrent    int           `yaml:"maxConcurrent"`
}

type ObjectsConfig struct {
	Backend       string        `yaml:"backend"`
	Root          string        `yaml:"root"`
	SigningSecret string        `yaml:"signingSecret"`
	CachedLinkTTL time.Duration `yaml:"cachedLinkTTL"`
	FreshLinkTTL  time.Duration `yaml:"freshLinkTTL"`
}

type LinkCacheConfig struct {
	Backend string `yaml:"backend"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ProfilesConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type SessionsConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
}

type EntitlementsConfig struct {
	CustomSequences bool   `yaml:"customSequences"`
	ProductID       string `yaml:"productId"`
}

type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}

// Backend names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFS     = "fs"
	BackendBadger = "badger"
	BackendSqlite = "sqlite"
	BackendNone   = "none"
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() AppConfig {
	lim := tempo.DefaultLimits()
	return AppConfig{
		LogLevel: "info",
		API: APIConfig{
			ListenAddr:         ":8080",
			PublicBaseURL:      "http://localhost:8080",
			RateLimitPerMinute: 600,
			ShutdownTimeout:    10 * time.Second,
		},
		Metronome: MetronomeConfig{
			MinBPM:                  int(lim.MinBPM),
			MaxBPM:                  int(lim.MaxBPM),
			MinDuration:             lim.MinDuration,
			MaxDuration:             lim.MaxDuration,
			BPMStep:                 lim.Step,
			MaxCustomSequenceLength: 5,
			WelcomeReminderAfter:    72 * time.Hour,
		},
		Generator: GeneratorConfig{
			Timeout:          30 * time.Second,
			RateBurst:        1,
			BreakerThreshold: 3,
			BreakerReset:     30 * time.Second,
			MaxConcurrent:    4,
		},
		Objects: ObjectsConfig{
			Backend:       BackendFS,
			Root:          "./data/objects",
			CachedLinkTTL: 15 * time.Minute,
			FreshLinkTTL:  2 * time.Hour,
		},
		LinkCache: LinkCacheConfig{Backend: BackendMemory},
		Redis:     RedisConfig{Addr: "localhost:6379"},
		Profiles:  ProfilesConfig{Backend: BackendSqlite, Path: "./data/profiles.db"},
		Sessions:  SessionsConfig{Backend: BackendMemory, TTL: time.Hour},
		Entitlements: EntitlementsConfig{
			CustomSequences: true,
			ProductID:       "custom-sequences",
		},
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}

// Redacted returns a copy safe to print.
func (c AppConfig) Redacted() AppConfig {
	if c.Objects.SigningSecret != "" {
		c.Objects.SigningSecret = "***"
	}
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	return c
}

// NeedsRedis reports whether any cache is configured on redis.
func (c AppConfig) NeedsRedis() bool {
	return c.LinkCache.Backend == BackendRedis || c.Sessions.Backend == BackendRedis
}
