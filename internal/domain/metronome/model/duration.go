// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import (
	"encoding/json"
	"fmt"
)

// ClipSeconds is the length of one generated audio clip. Segments are built
// by looping this clip.
const ClipSeconds = 10

// wireForever is the stored representation of Forever (durations and repeat
// counts). It never leaves the JSON codecs.
const wireForever = -1

// Duration is how long a segment plays: either a number of seconds or
// Forever (until explicitly stopped).
type Duration struct {
	seconds int
	forever bool
}

// Forever plays until the user stops playback.
var Forever = Duration{forever: true}

// Seconds returns a finite duration.
func Seconds(n int) Duration {
	return Duration{seconds: n}
}

// DurationFromWire decodes the stored integer form, where any negative value
// means Forever.
func DurationFromWire(n int) Duration {
	if n < 0 {
		return Forever
	}
	return Seconds(n)
}

// IsForever reports whether the duration is unbounded.
func (d Duration) IsForever() bool { return d.forever }

// Seconds returns the finite length. It is 0 for Forever.
func (d Duration) Seconds() int {
	if d.forever {
		return 0
	}
	return d.seconds
}

// Wire returns the stored integer form.
func (d Duration) Wire() int {
	if d.forever {
		return wireForever
	}
	return d.seconds
}

func (d Duration) String() string {
	if d.forever {
		return "forever"
	}
	return fmt.Sprintf("%ds", d.seconds)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Wire())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = DurationFromWire(n)
	return nil
}

// Repeats is the number of clip plays left for a segment, or Infinite.
type Repeats struct {
	n        int
	infinite bool
}

// InfiniteRepeats never runs out.
var InfiniteRepeats = Repeats{infinite: true}

// RepeatCount returns a finite repeat count. Negative counts are treated as
// exhausted.
func RepeatCount(n int) Repeats {
	if n < 0 {
		n = 0
	}
	return Repeats{n: n}
}

// RepeatsFor derives the repeat count for a duration: ceil(d / ClipSeconds),
// or Infinite for Forever.
func RepeatsFor(d Duration) Repeats {
	if d.IsForever() {
		return InfiniteRepeats
	}
	s := d.Seconds()
	if s <= 0 {
		return RepeatCount(0)
	}
	return RepeatCount((s + ClipSeconds - 1) / ClipSeconds)
}

// IsInfinite reports whether the repeats never run out.
func (r Repeats) IsInfinite() bool { return r.infinite }

// Count returns the finite count; ok is false for Infinite.
func (r Repeats) Count() (n int, ok bool) {
	if r.infinite {
		return 0, false
	}
	return r.n, true
}

// Exhausted reports whether a finite count reached zero.
func (r Repeats) Exhausted() bool { return !r.infinite && r.n == 0 }

// Decrement consumes one play. Infinite and exhausted counts are unchanged.
func (r Repeats) Decrement() Repeats {
	if r.infinite || r.n == 0 {
		return r
	}
	return Repeats{n: r.n - 1}
}

func (r Repeats) String() string {
	if r.infinite {
		return "infinite"
	}
	return fmt.Sprintf("%d", r.n)
}

func (r Repeats) MarshalJSON() ([]byte, error) {
	if r.infinite {
		return json.Marshal(wireForever)
	}
	return json.Marshal(r.n)
}

func (r *Repeats) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("repeats: %w", err)
	}
	if n < 0 {
		*r = InfiniteRepeats
		return nil
	}
	*r = RepeatCount(n)
	return nil
}
