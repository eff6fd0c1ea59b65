// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package playback

import (
	"errors"
	"fmt"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

var (
	// ErrNotPlaying is returned for any cursor operation other than Start
	// while nothing is playing.
	ErrNotPlaying = fmt.Errorf("%w: nothing is playing", model.ErrState)
	// ErrEmptySequence is returned by Start for a sequence without segments.
	ErrEmptySequence = fmt.Errorf("%w: sequence has no segments", model.ErrInput)
)

// NoNextSegmentError is returned by SkipForward on the last segment.
type NoNextSegmentError struct {
	Cursor int
	Len    int
}

func (e *NoNextSegmentError) Error() string {
	return fmt.Sprintf("no segment after %d of %d", e.Cursor+1, e.Len)
}

func (e *NoNextSegmentError) Is(target error) bool { return target == model.ErrNavigation }

// NoPreviousSegmentError is returned by SkipBack on the first segment.
type NoPreviousSegmentError struct{}

func (e *NoPreviousSegmentError) Error() string { return "no segment before the first" }

func (e *NoPreviousSegmentError) Is(target error) bool { return target == model.ErrNavigation }

// IsNotPlaying reports whether err came from an operation on an idle cursor.
func IsNotPlaying(err error) bool { return errors.Is(err, ErrNotPlaying) }
