// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

// PlaybackState is the active playlist and the index of the segment playing.
// A nil *PlaybackState means nothing is playing.
type PlaybackState struct {
	Segments Sequence `json:"sequence_links"`
	Cursor   int      `json:"current_sequence"`
}

// Clone returns an independent copy. Clone of nil is nil.
func (p *PlaybackState) Clone() *PlaybackState {
	if p == nil {
		return nil
	}
	return &PlaybackState{Segments: p.Segments.Clone(), Cursor: p.Cursor}
}

// Valid reports whether the cursor indexes the segments.
func (p *PlaybackState) Valid() bool {
	return p != nil && p.Cursor >= 0 && p.Cursor < len(p.Segments)
}

// Current returns the segment under the cursor.
func (p *PlaybackState) Current() (ResolvedSegment, bool) {
	if !p.Valid() {
		return ResolvedSegment{}, false
	}
	return p.Segments[p.Cursor], true
}

// IsLast reports whether the cursor is on the final segment.
func (p *PlaybackState) IsLast() bool {
	return p.Valid() && p.Cursor == len(p.Segments)-1
}
