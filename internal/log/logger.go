// Package log wires zerolog for the whole service.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stdout)
	Service string    // optional service name attached to every entry
	Version string    // optional build version attached to every entry
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure initialises the global logger. Only the first call has effect;
// use SetLevel to change verbosity later.
func Configure(cfg Config) {
	once.Do(func() {
		level := cfg.Level
		if level == "" {
			level = os.Getenv("METRONOME_LOG_LEVEL")
		}
		_ = SetLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			writer = os.Stdout
		}
		service := cfg.Service
		if service == "" {
			service = "metronome"
		}

		base = zerolog.New(writer).With().
			Timestamp().
			Str("service", service).
			Str("version", cfg.Version).
			Logger()
	})
}

// SetLevel changes the global level. Empty or unknown values select info;
// the returned error reports an unknown value.
func SetLevel(level string) error {
	parsed := zerolog.InfoLevel
	var err error
	if level != "" {
		var p zerolog.Level
		if p, err = zerolog.ParseLevel(level); err == nil {
			parsed = p
		}
	}
	zerolog.SetGlobalLevel(parsed)
	return err
}

func logger() zerolog.Logger {
	Configure(Config{})
	return base
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str(FieldComponent, component).Logger()
}

// Derive attaches arbitrary fields to a child logger.
func Derive(build func(*zerolog.Context)) zerolog.Logger {
	ctx := logger().With()
	if build != nil {
		build(&ctx)
	}
	return ctx.Logger()
}
