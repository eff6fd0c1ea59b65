// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package tempo

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isType[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func TestResolve(t *testing.T) {
	r := NewResolver(DefaultLimits())

	tests := []struct {
		name string
		in   Input
		want model.BPM
		err  func(error) bool
	}{
		{name: "literal", in: Input{Literal: "120"}, want: 120},
		{name: "lower bound", in: Input{Literal: "20"}, want: 20},
		{name: "upper bound", in: Input{Literal: "200"}, want: 200},
		{name: "named", in: Input{Named: "Andante"}, want: 85},
		{name: "named multiword", in: Input{Named: "allegro  MODERATO"}, want: 120},
		{name: "named typo", in: Input{Named: "hrave"}, want: 30},
		{name: "named wins", in: Input{Literal: "100", Named: "presto"}, want: 180},
		{name: "named number", in: Input{Named: "96"}, want: 96},
		{name: "unknown name", in: Input{Named: "funky"}, err: isType[*UnknownTempoError]},
		{name: "nan", in: Input{Literal: "fast"}, err: isType[*NotANumberError]},
		{name: "too slow", in: Input{Literal: "19"}, err: isType[*OutOfRangeError]},
		{name: "too fast", in: Input{Literal: "201"}, err: isType[*OutOfRangeError]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.in)
			if tt.err == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.err(err), "unexpected error type %T", err)
			assert.ErrorIs(t, err, model.ErrInput)
		})
	}

	_, err := r.Resolve(Input{})
	assert.ErrorIs(t, err, ErrBPMRequired)
}

func TestResolve_OutOfRangeCarriesBounds(t *testing.T) {
	r := NewResolver(DefaultLimits())
	_, err := r.Resolve(Input{Literal: "250"})

	var rangeErr *OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, OutOfRangeError{Min: 20, Max: 200, Value: 250}, *rangeErr)
}

func TestAdjust_Clamps(t *testing.T) {
	r := NewResolver(DefaultLimits())
	assert.Equal(t, model.BPM(200), r.Adjust(195, 10))
	assert.Equal(t, model.BPM(20), r.Adjust(25, -10))
	assert.Equal(t, model.BPM(110), r.Adjust(100, 10))
}

func TestStep(t *testing.T) {
	r := NewResolver(DefaultLimits())
	assert.Equal(t, 10, r.Step(""))
	assert.Equal(t, 10, r.Step("lots"))
	assert.Equal(t, 5, r.Step("5"))
}

func TestValidateDuration(t *testing.T) {
	r := NewResolver(DefaultLimits())
	assert.NoError(t, r.ValidateDuration(model.Forever))
	assert.NoError(t, r.ValidateDuration(model.Seconds(10)))
	assert.NoError(t, r.ValidateDuration(model.Seconds(1800)))

	err := r.ValidateDuration(model.Seconds(5))
	var durErr *DurationOutOfRangeError
	require.ErrorAs(t, err, &durErr)
	assert.Equal(t, 5*time.Second, durErr.Value)
	assert.ErrorIs(t, r.ValidateDuration(model.Seconds(1801)), model.ErrInput)

	// Multiplying these by time.Second would wrap into the accepted range.
	for _, secs := range []int{36028797018964028, 18446744073709560, math.MaxInt} {
		err := r.ValidateDuration(model.Seconds(secs))
		require.ErrorAs(t, err, &durErr, secs)
		assert.Greater(t, durErr.Value, durErr.Max, secs)
	}
}

func TestSetLimits(t *testing.T) {
	r := NewResolver(DefaultLimits())
	l := DefaultLimits()
	l.MaxBPM = 300
	r.SetLimits(l)

	got, err := r.Resolve(Input{Literal: "250"})
	require.NoError(t, err)
	assert.Equal(t, model.BPM(250), got)
}
