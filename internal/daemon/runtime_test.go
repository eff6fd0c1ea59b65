// SPDX-License-Identifier: MIT

package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/metronome/internal/config"
	"github.com/ManuGH/metronome/internal/log"
	"github.com/ManuGH/metronome/internal/skill"
)

const publicURL = "http://skill.test"

type fakeGenerator struct {
	*httptest.Server
	calls atomic.Int32
}

func newFakeGenerator(t *testing.T) *fakeGenerator {
	t.Helper()
	g := &fakeGenerator{}
	g.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.calls.Add(1)
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write([]byte("RIFF0000WAVE"))
	}))
	t.Cleanup(g.Close)
	return g
}

func testConfig(genURL string) config.AppConfig {
	cfg := config.Defaults()
	cfg.Version = "test"
	cfg.API.ListenAddr = "127.0.0.1:0"
	cfg.API.PublicBaseURL = publicURL
	cfg.API.RateLimitPerMinute = 0
	cfg.Generator.URL = genURL
	cfg.Generator.RateLimit = 0
	cfg.Objects.Backend = config.BackendMemory
	cfg.Objects.SigningSecret = "0123456789abcdef"
	cfg.Profiles.Backend = config.BackendMemory
	cfg.LinkCache.Backend = config.BackendMemory
	cfg.Sessions.Backend = config.BackendMemory
	cfg.Telemetry.Enabled = false
	return cfg
}

func build(t *testing.T, cfg config.AppConfig) *Runtime {
	t.Helper()
	rt, err := Build(context.Background(), cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(context.Background()) })
	return rt
}

func postEvent(t *testing.T, h http.Handler, ev skill.Event) skill.Response {
	t.Helper()
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp skill.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestBuild_PlayServesSignedMedia(t *testing.T) {
	gen := newFakeGenerator(t)
	rt := build(t, testConfig(gen.URL))
	h := rt.Server.Handler()

	resp := postEvent(t, h, skill.Event{
		Kind:   skill.KindPlay,
		UserID: "user-1",
		Play:   &skill.PlayInput{BPM: "120", Duration: "PT20S"},
	})
	var play *skill.PlayDirective
	for _, d := range resp.Directives {
		if d.Play != nil {
			play = d.Play
		}
	}
	require.NotNil(t, play)
	require.True(t, strings.HasPrefix(play.URL, publicURL+"/media/"), play.URL)
	assert.EqualValues(t, 1, gen.calls.Load())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, strings.TrimPrefix(play.URL, publicURL), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "RIFF0000WAVE", rec.Body.String())

	// Same tempo again comes from the link cache.
	postEvent(t, h, skill.Event{
		Kind:   skill.KindPlay,
		UserID: "user-2",
		Play:   &skill.PlayInput{BPM: "120", Duration: "PT20S"},
	})
	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestBuild_HealthReportsComponents(t *testing.T) {
	gen := newFakeGenerator(t)
	rt := build(t, testConfig(gen.URL))

	res := rt.Health.Health(context.Background(), true)
	assert.Equal(t, "healthy", string(res.Status))
	for _, name := range []string{"profiles", "objects", "breaker_generator"} {
		assert.Contains(t, res.Checks, name)
	}
	assert.True(t, rt.Health.Ready(context.Background()).Ready)
}

func TestBuild_FailsOnBadObjectRoot(t *testing.T) {
	cfg := testConfig("http://gen.test")
	cfg.Objects.Backend = config.BackendFS
	cfg.Objects.Root = "\x00bad"

	_, err := Build(context.Background(), cfg, Options{})
	assert.Error(t, err)
}

func TestApply_ChangesLimitsLive(t *testing.T) {
	gen := newFakeGenerator(t)
	rt := build(t, testConfig(gen.URL))

	next := rt.Config
	next.Metronome.MaxBPM = 150
	rt.Apply(next)

	assert.EqualValues(t, 150, rt.Tempo.Limits().MaxBPM)
}

func TestClose_RunsHooksInReverse(t *testing.T) {
	rt := &Runtime{logger: log.WithComponent("test")}
	var order []string
	rt.RegisterShutdownHook("first", func(context.Context) error { order = append(order, "first"); return nil })
	rt.RegisterShutdownHook("second", func(context.Context) error { order = append(order, "second"); return assert.AnError })

	err := rt.Close(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.NoError(t, rt.Close(context.Background()))
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rt, err := Build(context.Background(), testConfig("http://gen.test"), Options{})
	require.NoError(t, err)

	app := NewApp(rt, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_NilRuntime(t *testing.T) {
	assert.ErrorIs(t, NewApp(nil, nil).Run(context.Background()), ErrNoRuntime)
}
