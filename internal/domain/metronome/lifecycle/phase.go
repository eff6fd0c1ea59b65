// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package lifecycle declares the allowed transitions of the playback cursor
// and the sequence editor.
package lifecycle

import "github.com/ManuGH/metronome/internal/domain/metronome/model"

// Phase is a coarse state of either machine.
type Phase string

const (
	PhaseIdle    Phase = "IDLE"
	PhasePlaying Phase = "PLAYING"

	PhaseNotEditing   Phase = "NOT_EDITING"
	PhaseEditing      Phase = "EDITING"
	PhaseAwaitingName Phase = "AWAITING_NAME"
)

// PlaybackPhase derives the cursor phase from stored state.
func PlaybackPhase(st *model.PlaybackState) Phase {
	if st.Valid() {
		return PhasePlaying
	}
	return PhaseIdle
}

// EditPhase derives the editor phase from stored state.
func EditPhase(e *model.InProgressEdit) Phase {
	switch {
	case e == nil:
		return PhaseNotEditing
	case e.AwaitingName:
		return PhaseAwaitingName
	default:
		return PhaseEditing
	}
}
