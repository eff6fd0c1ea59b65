// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatsFor(t *testing.T) {
	tests := []struct {
		name     string
		duration Duration
		want     int
	}{
		{"one clip", Seconds(10), 1},
		{"rounds up", Seconds(95), 10},
		{"partial clip", Seconds(11), 2},
		{"thirty minutes", Seconds(1800), 180},
		{"zero", Seconds(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := RepeatsFor(tt.duration).Count()
			require.True(t, ok)
			assert.Equal(t, tt.want, n)
		})
	}

	assert.True(t, RepeatsFor(Forever).IsInfinite())
	assert.True(t, RepeatsFor(DurationFromWire(-1)).IsInfinite())
}

func TestRepeats_Decrement(t *testing.T) {
	r := RepeatCount(2)
	r = r.Decrement()
	n, _ := r.Count()
	assert.Equal(t, 1, n)
	assert.False(t, r.Exhausted())

	r = r.Decrement().Decrement()
	assert.True(t, r.Exhausted(), "decrement must stop at zero")

	inf := InfiniteRepeats.Decrement()
	assert.True(t, inf.IsInfinite())
	assert.False(t, inf.Exhausted())
}

func TestResolvedSegment_WireFormat(t *testing.T) {
	seg := ResolvedSegment{BPM: 90, Duration: Forever, AudioLink: "https://x/90", Repeats: InfiniteRepeats}

	data, err := json.Marshal(seg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bpm":90,"duration":-1,"audioLink":"https://x/90","loop":-1}`, string(data))

	var back ResolvedSegment
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Duration.IsForever())
	assert.True(t, back.Repeats.IsInfinite())
}

func TestSequence_WithRepeatsResetDoesNotAlias(t *testing.T) {
	seq := Sequence{
		{BPM: 100, Duration: Seconds(20), Repeats: RepeatCount(0)},
		{BPM: 80, Duration: Seconds(10), Repeats: RepeatCount(0)},
	}
	reset := seq.WithRepeatsReset()

	n, _ := reset[0].Repeats.Count()
	assert.Equal(t, 2, n)
	assert.True(t, seq[0].Repeats.Exhausted(), "original must be untouched")
}
