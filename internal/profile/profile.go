// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package profile persists per-user state across sessions: the playback
// cursor, the library of named sequences and the last visit.
package profile

import (
	"context"
	"errors"
	"time"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// Profile is everything kept for a user between sessions. The zero value is
// a first-time user.
type Profile struct {
	Playback *model.PlaybackState `json:"playback,omitempty"`
	Library  model.Library        `json:"library,omitempty"`
	LastUsed time.Time            `json:"lastUsed,omitempty"`
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	out := Profile{Playback: p.Playback.Clone(), LastUsed: p.LastUsed}
	if p.Library != nil {
		out.Library = make(model.Library, len(p.Library))
		for i, s := range p.Library {
			parts := make([]model.SegmentRequest, len(s.Parts))
			copy(parts, s.Parts)
			out.Library[i] = model.NamedSequence{Name: s.Name, Parts: parts}
		}
	}
	return out
}

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("profile store closed")

// Store loads and saves profiles by user ID. A missing profile loads as the
// zero Profile.
type Store interface {
	Load(ctx context.Context, userID string) (Profile, error)
	Save(ctx context.Context, userID string, p Profile) error
	Ping(ctx context.Context) error
	Close() error
}
