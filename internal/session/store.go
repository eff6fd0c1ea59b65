// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package session keeps state that lives only as long as one conversation:
// the sequence being edited and the cached entitlement.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ManuGH/metronome/internal/cache"
	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	"github.com/ManuGH/metronome/internal/metrics"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = time.Hour

// Entitlement is the cached answer of the purchase check.
type Entitlement struct {
	Entitled  bool      `json:"entitled"`
	CheckedAt time.Time `json:"checkedAt"`
}

// State is the session-scoped data. The zero value is a fresh session.
type State struct {
	Edit        *model.InProgressEdit `json:"edit,omitempty"`
	Entitlement *Entitlement          `json:"entitlement,omitempty"`
}

// Store keeps session state in a cache.Cache, encoded as JSON.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: c, ttl: ttl}
}

func key(sessionID string) string { return "session:" + sessionID }

// Load returns the stored state, or the zero State for an unknown session.
func (s *Store) Load(ctx context.Context, sessionID string) (State, error) {
	data, ok, err := s.cache.Get(ctx, key(sessionID))
	metrics.RecordStoreOperation("session", "load", err)
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return State{}, nil
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode session: %w", err)
	}
	return st, nil
}

// Save stores st and restarts the expiry clock.
func (s *Store) Save(ctx context.Context, sessionID string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	err = s.cache.Set(ctx, key(sessionID), data, s.ttl)
	metrics.RecordStoreOperation("session", "save", err)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete drops the session, e.g. when the conversation ends.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, key(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
