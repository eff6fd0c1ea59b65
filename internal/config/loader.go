// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/metronome/internal/log"
)

// EnvPrefix marks the variables the loader owns.
const EnvPrefix = "METRONOME_"

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader. configPath may be empty to
// configure from the environment only.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Path returns the configuration file, or "".
func (l *Loader) Path() string { return l.configPath }

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// The file is parsed strictly, the environment applied on top and the
// result validated as a whole.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)
	l.warnUnknownEnv()
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ValidateFile checks a configuration file on its own: defaults plus the
// file, without the environment.
func ValidateFile(path string) (AppConfig, error) {
	cfg := Defaults()
	if err := loadFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, Validate(cfg)
}

// loadFile decodes path over cfg. Unknown keys and trailing documents are
// errors.
func loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

// mergeEnv overlays METRONOME_* variables.
func (l *Loader) mergeEnv(cfg *AppConfig) {
	cfg.LogLevel = l.envString("METRONOME_LOG_LEVEL", cfg.LogLevel)

	cfg.API.ListenAddr = l.envString("METRONOME_LISTEN", cfg.API.ListenAddr)
	cfg.API.PublicBaseURL = l.envString("METRONOME_PUBLIC_URL", cfg.API.PublicBaseURL)
	cfg.API.RateLimitPerMinute = l.envInt("METRONOME_RATE_LIMIT", cfg.API.RateLimitPerMinute)
	cfg.API.ShutdownTimeout = l.envDuration("METRONOME_SHUTDOWN_TIMEOUT", cfg.API.ShutdownTimeout)

	m := &cfg.Metronome
	m.MinBPM = l.envInt("METRONOME_MIN_BPM", m.MinBPM)
	m.MaxBPM = l.envInt("METRONOME_MAX_BPM", m.MaxBPM)
	m.MinDuration = l.envDuration("METRONOME_MIN_DURATION", m.MinDuration)
	m.MaxDuration = l.envDuration("METRONOME_MAX_DURATION", m.MaxDuration)
	m.BPMStep = l.envInt("METRONOME_BPM_STEP", m.BPMStep)
	m.MaxCustomSequenceLength = l.envInt("METRONOME_MAX_SEQUENCE_PARTS", m.MaxCustomSequenceLength)
	m.WelcomeReminderAfter = l.envDuration("METRONOME_WELCOME_REMINDER", m.WelcomeReminderAfter)

	g := &cfg.Generator
	g.URL = l.envString("METRONOME_GENERATOR_URL", g.URL)
	g.Timeout = l.envDuration("METRONOME_GENERATOR_TIMEOUT", g.Timeout)
	g.RateLimit = l.envFloat("METRONOME_GENERATOR_RPS", g.RateLimit)
	g.RateBurst = l.envInt("METRONOME_GENERATOR_BURST", g.RateBurst)
	g.BreakerThreshold = l.envInt("METRONOME_GENERATOR_BREAKER_THRESHOLD", g.BreakerThreshold)
	g.BreakerReset = l.envDuration("METRONOME_GENERATOR_BREAKER_RESET", g.BreakerReset)
	g.MaxConcurrent = l.envInt("METRONOME_MAX_CONCURRENT_RESOLUTIONS", g.MaxConcurrent)

	o := &cfg.Objects
	o.Backend = l.envString("METRONOME_OBJECTS_BACKEND", o.Backend)
	o.Root = l.envString("METRONOME_OBJECTS_ROOT", o.Root)
	o.SigningSecret = l.envString("METRONOME_SIGNING_SECRET", o.SigningSecret)
	o.CachedLinkTTL = l.envDuration("METRONOME_CACHED_LINK_TTL", o.CachedLinkTTL)
	o.FreshLinkTTL = l.envDuration("METRONOME_FRESH_LINK_TTL", o.FreshLinkTTL)

	cfg.LinkCache.Backend = l.envString("METRONOME_LINK_CACHE", cfg.LinkCache.Backend)
	cfg.Redis.Addr = l.envString("METRONOME_REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = l.envString("METRONOME_REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = l.envInt("METRONOME_REDIS_DB", cfg.Redis.DB)

	cfg.Profiles.Backend = l.envString("METRONOME_PROFILE_BACKEND", cfg.Profiles.Backend)
	cfg.Profiles.Path = l.envString("METRONOME_PROFILE_PATH", cfg.Profiles.Path)
	cfg.Sessions.Backend = l.envString("METRONOME_SESSION_BACKEND", cfg.Sessions.Backend)
	cfg.Sessions.TTL = l.envDuration("METRONOME_SESSION_TTL", cfg.Sessions.TTL)

	cfg.Entitlements.CustomSequences = l.envBool("METRONOME_CUSTOM_SEQUENCES", cfg.Entitlements.CustomSequences)
	cfg.Entitlements.ProductID = l.envString("METRONOME_PRODUCT_ID", cfg.Entitlements.ProductID)

	t := &cfg.Telemetry
	t.Enabled = l.envBool("METRONOME_OTEL_ENABLED", t.Enabled)
	t.Exporter = l.envString("METRONOME_OTEL_EXPORTER", t.Exporter)
	t.Endpoint = l.envString("METRONOME_OTEL_ENDPOINT", t.Endpoint)
	t.SamplingRate = l.envFloat("METRONOME_OTEL_SAMPLING_RATE", t.SamplingRate)
}

// UnknownEnvKeys lists METRONOME_* variables the loader never read,
// typically typos.
func (l *Loader) UnknownEnvKeys() []string {
	var out []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if _, ok := l.ConsumedEnvKeys[key]; !ok {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}

func (l *Loader) warnUnknownEnv() {
	unknown := l.UnknownEnvKeys()
	if len(unknown) == 0 {
		return
	}
	logger := log.WithComponent("config")
	logger.Warn().
		Str(log.FieldEvent, "config.unknown_env").
		Strs("keys", unknown).
		Msg("ignoring unknown environment variables")
}
