// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package tempo turns spoken tempo values into a BPM and validates durations.
package tempo

import (
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// Limits bounds accepted tempos and durations.
type Limits struct {
	MinBPM      model.BPM
	MaxBPM      model.BPM
	Step        int
	MinDuration time.Duration
	MaxDuration time.Duration
}

// DefaultLimits returns the stock bounds.
func DefaultLimits() Limits {
	return Limits{
		MinBPM:      20,
		MaxBPM:      200,
		Step:        10,
		MinDuration: 10 * time.Second,
		MaxDuration: 30 * time.Minute,
	}
}

// Input is a tempo as heard: either a number or a named marking.
type Input struct {
	Literal string
	Named   string
}

// Resolver is safe for concurrent use. Limits can be swapped at runtime.
type Resolver struct {
	limits atomic.Pointer[Limits]
}

func NewResolver(l Limits) *Resolver {
	r := &Resolver{}
	r.SetLimits(l)
	return r
}

// SetLimits replaces the bounds, e.g. after a configuration reload.
func (r *Resolver) SetLimits(l Limits) {
	if l.Step <= 0 {
		l.Step = DefaultLimits().Step
	}
	r.limits.Store(&l)
}

func (r *Resolver) Limits() Limits { return *r.limits.Load() }

// Resolve converts in to a BPM. Out-of-range values are rejected, not clamped.
func (r *Resolver) Resolve(in Input) (model.BPM, error) {
	var bpm model.BPM
	switch {
	case strings.TrimSpace(in.Named) != "":
		named := strings.TrimSpace(in.Named)
		// the name slot sometimes carries a plain number
		if n, err := strconv.Atoi(named); err == nil {
			bpm = model.BPM(n)
			break
		}
		v, ok := Lookup(named)
		if !ok {
			return 0, &UnknownTempoError{Name: named}
		}
		bpm = v
	case strings.TrimSpace(in.Literal) != "":
		lit := strings.TrimSpace(in.Literal)
		n, err := strconv.Atoi(lit)
		if err != nil {
			return 0, &NotANumberError{Input: lit}
		}
		bpm = model.BPM(n)
	default:
		return 0, ErrBPMRequired
	}

	l := r.Limits()
	if bpm < l.MinBPM || bpm > l.MaxBPM {
		return 0, &OutOfRangeError{Min: l.MinBPM, Max: l.MaxBPM, Value: bpm}
	}
	return bpm, nil
}

// Adjust returns current+delta clamped to the accepted range.
func (r *Resolver) Adjust(current model.BPM, delta int) model.BPM {
	l := r.Limits()
	next := current + model.BPM(delta)
	if next < l.MinBPM {
		return l.MinBPM
	}
	if next > l.MaxBPM {
		return l.MaxBPM
	}
	return next
}

// Step returns the spoken delta, or the configured step when none was given
// or it does not parse.
func (r *Resolver) Step(explicit string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(explicit)); err == nil && n > 0 {
		return n
	}
	return r.Limits().Step
}

// ValidateDuration accepts Forever and finite durations within bounds.
func (r *Resolver) ValidateDuration(d model.Duration) error {
	if d.IsForever() {
		return nil
	}
	l := r.Limits()
	secs := d.Seconds()
	if secs >= int(l.MinDuration/time.Second) && secs <= int(l.MaxDuration/time.Second) {
		return nil
	}
	v := time.Duration(math.MaxInt64)
	if secs >= -maxSeconds && secs <= maxSeconds {
		v = time.Duration(secs) * time.Second
	}
	return &DurationOutOfRangeError{Min: l.MinDuration, Max: l.MaxDuration, Value: v}
}
