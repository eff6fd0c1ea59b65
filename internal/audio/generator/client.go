// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package generator talks to the service that renders metronome clips.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// DefaultMaxBytes bounds the size of a generated clip.
const DefaultMaxBytes = 32 << 20

// ErrTooLarge is returned when the clip exceeds the configured size.
var ErrTooLarge = errors.New("generated audio exceeds size limit")

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation service returned %d: %s", e.StatusCode, e.Body)
}

// Config configures a Client.
type Config struct {
	URL      string
	MaxBytes int64
	// RateLimit caps requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
}

type clipRequest struct {
	BPM      model.BPM `json:"bpm"`
	Duration int       `json:"duration"`
}

// Client renders one clip per call.
type Client struct {
	http     *http.Client
	url      string
	maxBytes int64
	limiter  *rate.Limiter
}

func New(hc *http.Client, cfg Config) *Client {
	c := &Client{http: hc, url: cfg.URL, maxBytes: cfg.MaxBytes}
	if c.maxBytes <= 0 {
		c.maxBytes = DefaultMaxBytes
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// Generate returns the WAV bytes of a single clip at bpm.
func (c *Client) Generate(ctx context.Context, bpm model.BPM) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for generation slot: %w", err)
		}
	}

	body, err := json.Marshal([]clipRequest{{BPM: bpm, Duration: model.ClipSeconds}})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generation service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read generated audio: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, errors.New("generation service returned an empty body")
	}
	return data, nil
}
