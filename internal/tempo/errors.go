// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package tempo

import (
	"fmt"
	"time"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// ErrBPMRequired is returned when neither a number nor a tempo name was given.
var ErrBPMRequired = fmt.Errorf("%w: a tempo is required", model.ErrInput)

type UnknownTempoError struct {
	Name string
}

func (e *UnknownTempoError) Error() string { return fmt.Sprintf("unknown tempo %q", e.Name) }

func (e *UnknownTempoError) Is(target error) bool { return target == model.ErrInput }

type NotANumberError struct {
	Input string
}

func (e *NotANumberError) Error() string { return fmt.Sprintf("%q is not a number", e.Input) }

func (e *NotANumberError) Is(target error) bool { return target == model.ErrInput }

// OutOfRangeError carries the accepted bounds so the reply can name them.
type OutOfRangeError struct {
	Min, Max, Value model.BPM
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bpm %d outside [%d, %d]", e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool { return target == model.ErrInput }

type DurationOutOfRangeError struct {
	Min, Max, Value time.Duration
}

func (e *DurationOutOfRangeError) Error() string {
	return fmt.Sprintf("duration %s outside [%s, %s]", e.Value, e.Min, e.Max)
}

func (e *DurationOutOfRangeError) Is(target error) bool { return target == model.ErrInput }
