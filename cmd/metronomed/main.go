// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Command metronomed serves the metronome voice skill.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/metronome/internal/config"
	"github.com/ManuGH/metronome/internal/daemon"
	xglog "github.com/ManuGH/metronome/internal/log"
	"github.com/ManuGH/metronome/internal/version"
)

// maskURL removes user info from a URL string for safe logging.
func maskURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url-redacted"
	}
	parsedURL.User = nil
	return parsedURL.String()
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:]))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:]))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}
	os.Exit(run(strings.TrimSpace(*configPath)))
}

func run(configPath string) int {
	// Safe defaults until the config is loaded.
	xglog.Configure(xglog.Config{Level: "info", Service: daemon.ServiceName, Version: version.Version})
	logger := xglog.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(configPath, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", configPath).
			Msg("failed to load configuration")
		return 1
	}

	xglog.Configure(xglog.Config{Level: cfg.LogLevel, Service: daemon.ServiceName, Version: cfg.Version})

	source := "env+defaults"
	if configPath != "" {
		source = "file"
	}
	logger.Info().
		Str("event", "config.loaded").
		Str("source", source).
		Str("path", configPath).
		Str("generator", maskURL(cfg.Generator.URL)).
		Str("public_url", cfg.API.PublicBaseURL).
		Msg("configuration loaded")

	rt, err := daemon.Build(ctx, cfg, daemon.Options{})
	if err != nil {
		logger.Error().Err(err).Str("event", "startup.failed").Msg("failed to start")
		return 1
	}

	app := daemon.NewApp(rt, config.NewConfigHolder(cfg, loader))
	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Str("event", "daemon.failed").Msg("daemon exited with error")
		return 1
	}
	return 0
}
