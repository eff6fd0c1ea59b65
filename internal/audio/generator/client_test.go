// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ManuGH/metronome/internal/platform/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SendsClipRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "audio/wav", r.Header.Get("Accept"))

		var body []map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []map[string]int{{"bpm": 90, "duration": 10}}, body)

		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write([]byte("RIFF...."))
	}))
	defer srv.Close()

	c := New(httpx.NewClient(time.Second), Config{URL: srv.URL})
	data, err := c.Generate(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, "RIFF....", string(data))
}

func TestGenerate_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "renderer busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(httpx.NewClient(time.Second), Config{URL: srv.URL})
	_, err := c.Generate(context.Background(), 90)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "renderer busy", statusErr.Body)
}

func TestGenerate_BoundedRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	c := New(httpx.NewClient(time.Second), Config{URL: srv.URL, MaxBytes: 32})
	_, err := c.Generate(context.Background(), 90)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestGenerate_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	c := New(httpx.NewClient(time.Second), Config{URL: srv.URL, RateLimit: 0.001, Burst: 1})
	_, err := c.Generate(context.Background(), 90)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Generate(ctx, 90)
	assert.Error(t, err)
}
