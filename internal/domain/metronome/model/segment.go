// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

// SegmentRequest asks for a stretch of audio at one tempo.
type SegmentRequest struct {
	BPM      BPM      `json:"bpm"`
	Duration Duration `json:"duration"`
}

// ResolvedSegment is a SegmentRequest with a playable link and its remaining
// repeat count.
type ResolvedSegment struct {
	BPM       BPM      `json:"bpm"`
	Duration  Duration `json:"duration"`
	AudioLink string   `json:"audioLink"`
	Repeats   Repeats  `json:"loop"`
}

// WithRepeatsReset returns a copy whose repeats are derived from the
// segment's duration again.
func (s ResolvedSegment) WithRepeatsReset() ResolvedSegment {
	s.Repeats = RepeatsFor(s.Duration)
	return s
}

// Request returns the request the segment was resolved from.
func (s ResolvedSegment) Request() SegmentRequest {
	return SegmentRequest{BPM: s.BPM, Duration: s.Duration}
}

// Sequence is an ordered playlist of resolved segments.
type Sequence []ResolvedSegment

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// WithRepeatsReset returns a copy with every segment's repeats reset.
func (s Sequence) WithRepeatsReset() Sequence {
	out := s.Clone()
	for i := range out {
		out[i] = out[i].WithRepeatsReset()
	}
	return out
}
