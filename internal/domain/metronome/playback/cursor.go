// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package playback advances a PlaybackState on player lifecycle events.
//
// All functions are pure: they never modify the state passed in and return a
// fresh value instead. A nil *model.PlaybackState is the idle cursor.
package playback

import (
	"context"
	"fmt"

	"github.com/ManuGH/metronome/internal/domain/metronome/lifecycle"
	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// Advance is the outcome of NearlyDone. Next is nil when nothing should be
// queued after the current clip.
type Advance struct {
	State *model.PlaybackState
	Next  *model.ResolvedSegment
}

// Adjuster clamps a tempo change.
type Adjuster interface {
	Adjust(current model.BPM, delta int) model.BPM
}

// SegmentRebuilder resolves a segment at a new tempo.
type SegmentRebuilder interface {
	RebuildPreservingRepeats(ctx context.Context, seg model.ResolvedSegment, bpm model.BPM) (model.ResolvedSegment, error)
}

func guard(st *model.PlaybackState, ev lifecycle.EventKind) error {
	d, _ := lifecycle.DecisionFor(lifecycle.PlaybackPhase(st), ev)
	if !d.Allowed {
		return fmt.Errorf("%w (%s)", ErrNotPlaying, d.Reason)
	}
	return nil
}

// Start begins playing seq from its first segment. Any previous state is
// discarded.
func Start(seq model.Sequence) (*model.PlaybackState, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	return &model.PlaybackState{Segments: seq.Clone(), Cursor: 0}, nil
}

// NearlyDone is called shortly before the current clip ends and decides
// what to queue next.
func NearlyDone(st *model.PlaybackState) (Advance, error) {
	if err := guard(st, lifecycle.EvNearlyDone); err != nil {
		return Advance{}, err
	}

	next := st.Clone()
	cur := &next.Segments[next.Cursor]

	if cur.Repeats.IsInfinite() {
		seg := *cur
		return Advance{State: next, Next: &seg}, nil
	}

	cur.Repeats = cur.Repeats.Decrement()
	if !cur.Repeats.Exhausted() {
		seg := *cur
		return Advance{State: next, Next: &seg}, nil
	}

	switch {
	case next.Cursor+1 < len(next.Segments):
		next.Cursor++
	case len(next.Segments) > 1:
		next.Segments = next.Segments.WithRepeatsReset()
		next.Cursor = 0
	default:
		return Advance{State: next}, nil
	}

	seg := next.Segments[next.Cursor]
	return Advance{State: next, Next: &seg}, nil
}

// Finished is called when a clip has ended. Playback ends only when the
// current segment has no repeats left and is the last one; otherwise the
// state is returned unchanged.
func Finished(st *model.PlaybackState) (*model.PlaybackState, bool, error) {
	if err := guard(st, lifecycle.EvFinished); err != nil {
		return nil, false, err
	}
	cur, _ := st.Current()
	if cur.Repeats.Exhausted() && st.IsLast() {
		return nil, true, nil
	}
	return st.Clone(), false, nil
}

// SkipForward moves to the following segment without wrapping.
func SkipForward(st *model.PlaybackState) (*model.PlaybackState, error) {
	if err := guard(st, lifecycle.EvSkipForward); err != nil {
		return nil, err
	}
	if st.IsLast() {
		return st.Clone(), &NoNextSegmentError{Cursor: st.Cursor, Len: len(st.Segments)}
	}
	return &model.PlaybackState{Segments: st.Segments.WithRepeatsReset(), Cursor: st.Cursor + 1}, nil
}

// SkipBack moves to the preceding segment without wrapping.
func SkipBack(st *model.PlaybackState) (*model.PlaybackState, error) {
	if err := guard(st, lifecycle.EvSkipBack); err != nil {
		return nil, err
	}
	if st.Cursor == 0 {
		return st.Clone(), &NoPreviousSegmentError{}
	}
	return &model.PlaybackState{Segments: st.Segments.WithRepeatsReset(), Cursor: st.Cursor - 1}, nil
}

// Restart returns to the first segment with every repeat count reset.
func Restart(st *model.PlaybackState) (*model.PlaybackState, error) {
	if err := guard(st, lifecycle.EvRestart); err != nil {
		return nil, err
	}
	return &model.PlaybackState{Segments: st.Segments.WithRepeatsReset(), Cursor: 0}, nil
}

// ReplaceCurrent returns a copy of st whose current segment is seg.
func ReplaceCurrent(st *model.PlaybackState, seg model.ResolvedSegment) (*model.PlaybackState, error) {
	if err := guard(st, lifecycle.EvChangeTempo); err != nil {
		return nil, err
	}
	next := st.Clone()
	next.Segments[next.Cursor] = seg
	return next, nil
}

// ChangeTempo shifts the current segment's tempo by delta, clamped by adj.
// Cursor and repeat counts are kept. When clamping leaves the tempo where it
// was, no new link is resolved.
func ChangeTempo(ctx context.Context, st *model.PlaybackState, delta int, adj Adjuster, rb SegmentRebuilder) (*model.PlaybackState, model.ResolvedSegment, error) {
	if err := guard(st, lifecycle.EvChangeTempo); err != nil {
		return nil, model.ResolvedSegment{}, err
	}
	cur, _ := st.Current()
	bpm := adj.Adjust(cur.BPM, delta)
	if bpm == cur.BPM {
		return st.Clone(), cur, nil
	}

	seg, err := rb.RebuildPreservingRepeats(ctx, cur, bpm)
	if err != nil {
		return nil, model.ResolvedSegment{}, fmt.Errorf("change tempo to %d: %w", bpm, err)
	}
	next, err := ReplaceCurrent(st, seg)
	if err != nil {
		return nil, model.ResolvedSegment{}, err
	}
	return next, seg, nil
}

// PlaybackFailed returns the segment to replay from the top. The cursor
// does not move.
func PlaybackFailed(st *model.PlaybackState) (model.ResolvedSegment, error) {
	if err := guard(st, lifecycle.EvPlaybackFailed); err != nil {
		return model.ResolvedSegment{}, err
	}
	cur, _ := st.Current()
	return cur, nil
}

// Current returns the segment under the cursor, used to resume.
func Current(st *model.PlaybackState) (model.ResolvedSegment, error) {
	if err := guard(st, lifecycle.EvResume); err != nil {
		return model.ResolvedSegment{}, err
	}
	cur, _ := st.Current()
	return cur, nil
}
