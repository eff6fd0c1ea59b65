// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newHolder(t *testing.T, body string) (*ConfigHolder, string) {
	t.Helper()
	path := writeConfig(t, body)
	loader := NewLoader(path, "test")
	cfg, err := loader.Load()
	require.NoError(t, err)
	return NewConfigHolder(cfg, loader), path
}

func TestReload_SwapsAndNotifies(t *testing.T) {
	h, path := newHolder(t, minimalYAML)
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte(minimalYAML+"metronome:\n  maxBPM: 250\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))

	assert.Equal(t, 250, h.Get().Metronome.MaxBPM)
	select {
	case got := <-ch:
		assert.Equal(t, 250, got.Metronome.MaxBPM)
	default:
		t.Fatal("listener not notified")
	}
}

func TestReload_InvalidKeepsPrevious(t *testing.T) {
	h, path := newHolder(t, minimalYAML)
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte(minimalYAML+"metronome:\n  minBPM: 500\n"), 0o600))
	assert.Error(t, h.Reload(context.Background()))
	assert.Equal(t, 20, h.Get().Metronome.MinBPM)
	assert.Empty(t, ch)
}

func TestReload_FullListenerIsSkipped(t *testing.T) {
	h, _ := newHolder(t, minimalYAML)
	ch := make(chan AppConfig) // unbuffered, nobody reading
	h.RegisterListener(ch)
	assert.NoError(t, h.Reload(context.Background()))
}

func TestRestartRequired(t *testing.T) {
	old := Defaults()
	next := old
	next.LogLevel = "debug"
	next.Metronome.MaxBPM = 220
	assert.Empty(t, RestartRequired(old, next))

	next.API.ListenAddr = ":9090"
	next.Profiles.Backend = BackendBadger
	assert.Equal(t, []string{"api", "profiles"}, RestartRequired(old, next))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h, path := newHolder(t, minimalYAML)
	h.debounce = 20 * time.Millisecond
	ch := make(chan AppConfig, 4)
	h.RegisterListener(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx) }()

	// Rewrite until the watcher is registered and picks the change up.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case got := <-ch:
			assert.Equal(t, 150, got.Metronome.MaxBPM)
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte(minimalYAML+"metronome:\n  maxBPM: 150\n"), 0o600))
		case <-deadline:
			t.Fatal("watcher did not reload")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_NoFileReturnsImmediately(t *testing.T) {
	t.Setenv("METRONOME_GENERATOR_URL", "https://gen.test")
	t.Setenv("METRONOME_SIGNING_SECRET", "0123456789abcdef")
	loader := NewLoader("", "")
	cfg, err := loader.Load()
	require.NoError(t, err)

	h := NewConfigHolder(cfg, loader)
	assert.NoError(t, h.Watch(context.Background()))
}
