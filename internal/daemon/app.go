// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/metronome/internal/config"
	"github.com/ManuGH/metronome/internal/log"
)

// ErrNoRuntime is returned by Run on an App without a runtime.
var ErrNoRuntime = errors.New("daemon: runtime is nil")

// App runs a Runtime until its context ends.
type App struct {
	rt     *Runtime
	holder *config.ConfigHolder

	// hup delivers reload requests. Nil disables signal handling.
	hup <-chan os.Signal
	// closeTimeout bounds the shutdown hooks.
	closeTimeout time.Duration
}

// NewApp returns an App that reloads on SIGHUP and on file changes.
func NewApp(rt *Runtime, holder *config.ConfigHolder) *App {
	return &App{rt: rt, holder: holder, closeTimeout: 10 * time.Second}
}

// Run serves until ctx is cancelled or a component fails, then closes the
// runtime. A cancelled context is a clean exit.
func (a *App) Run(ctx context.Context) error {
	if a.rt == nil {
		return ErrNoRuntime
	}
	logger := log.WithComponent("daemon")

	hup := a.hup
	if hup == nil && a.holder != nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGHUP)
		defer signal.Stop(ch)
		hup = ch
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.rt.Server.Run(gctx) })

	if a.holder != nil {
		updates := make(chan config.AppConfig, 1)
		a.holder.RegisterListener(updates)

		g.Go(func() error { return a.holder.Watch(gctx) })
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case cfg := <-updates:
					a.rt.Apply(cfg)
				case <-hup:
					logger.Info().Str(log.FieldEvent, "config.sighup").Msg("received SIGHUP, reloading configuration")
					_ = a.holder.Reload(gctx)
				}
			}
		})
	}

	logger.Info().
		Str(log.FieldEvent, "daemon.started").
		Str("listen", a.rt.Config.API.ListenAddr).
		Str("version", a.rt.Config.Version).
		Msg("metronome started")

	runErr := g.Wait()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.closeTimeout)
	defer cancel()
	closeErr := a.rt.Close(closeCtx)

	logger.Info().Str(log.FieldEvent, "daemon.stopped").Msg("metronome stopped")
	return errors.Join(runErr, closeErr)
}
