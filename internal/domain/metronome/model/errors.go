// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import "errors"

// Error classes. Concrete domain errors match exactly one of these with
// errors.Is, which is how callers decide what to tell the user.
var (
	// ErrInput covers unparsable or out-of-range values and missing names.
	ErrInput = errors.New("invalid input")
	// ErrNavigation covers moves past either end of a sequence.
	ErrNavigation = errors.New("navigation not possible")
	// ErrUpstream covers generation service and storage failures.
	ErrUpstream = errors.New("upstream failure")
	// ErrDelivery is reported by the player when a clip failed to play.
	ErrDelivery = errors.New("playback delivery failed")
	// ErrState covers operations that do not apply in the current state,
	// such as skipping while nothing plays.
	ErrState = errors.New("operation not valid in current state")
)

// Class names an error class.
type Class string

const (
	ClassNone       Class = ""
	ClassInput      Class = "input"
	ClassNavigation Class = "navigation"
	ClassUpstream   Class = "upstream"
	ClassDelivery   Class = "delivery"
	ClassState      Class = "state"
	ClassUnknown    Class = "unknown"
)

// Classify maps an error onto its class.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrInput):
		return ClassInput
	case errors.Is(err, ErrNavigation):
		return ClassNavigation
	case errors.Is(err, ErrUpstream):
		return ClassUpstream
	case errors.Is(err, ErrDelivery):
		return ClassDelivery
	case errors.Is(err, ErrState):
		return ClassState
	default:
		return ClassUnknown
	}
}

// DuplicateNameError is returned when saving a sequence under a name that is
// already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "custom sequence " + e.Name + " already exists"
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrInput }

// UnknownSequenceError is returned when a named sequence does not exist.
type UnknownSequenceError struct {
	Name string
}

func (e *UnknownSequenceError) Error() string {
	return "unknown custom sequence " + e.Name
}

func (e *UnknownSequenceError) Is(target error) bool { return target == ErrInput }
