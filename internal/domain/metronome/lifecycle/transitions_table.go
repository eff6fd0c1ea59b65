// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "fmt"

// Transition is an allowed edge. To lists every phase the event can lead
// to; which one is taken depends on the state's contents (e.g. whether the
// finished segment was the last one).
type Transition struct {
	From  Phase
	Event EventKind
	To    []Phase
}

// Decision records whether an event is allowed in a phase and, if not, why.
type Decision struct {
	Allowed bool
	Reason  string
}

var transitionsTable = []Transition{
	// Playback cursor
	{From: PhaseIdle, Event: EvStart, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvStart, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvNearlyDone, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvFinished, To: []Phase{PhasePlaying, PhaseIdle}},
	{From: PhasePlaying, Event: EvSkipForward, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvSkipBack, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvRestart, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvChangeTempo, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvPlaybackFailed, To: []Phase{PhasePlaying}},
	{From: PhasePlaying, Event: EvResume, To: []Phase{PhasePlaying}},

	// Sequence editor
	{From: PhaseNotEditing, Event: EvBeginEdit, To: []Phase{PhaseEditing}},
	{From: PhaseEditing, Event: EvBeginEdit, To: []Phase{PhaseEditing}},
	{From: PhaseAwaitingName, Event: EvBeginEdit, To: []Phase{PhaseEditing}},
	{From: PhaseEditing, Event: EvAddPart, To: []Phase{PhaseEditing, PhaseAwaitingName}},
	{From: PhaseEditing, Event: EvFinishEdit, To: []Phase{PhaseAwaitingName, PhaseNotEditing}},
	{From: PhaseAwaitingName, Event: EvFinishEdit, To: []Phase{PhaseAwaitingName}},
	{From: PhaseAwaitingName, Event: EvNameEdit, To: []Phase{PhaseNotEditing}},
	{From: PhaseEditing, Event: EvCancelEdit, To: []Phase{PhaseNotEditing}},
	{From: PhaseAwaitingName, Event: EvCancelEdit, To: []Phase{PhaseNotEditing}},
}

var forbiddenReasons = map[Phase]string{
	PhaseIdle:         "nothing is playing",
	PhasePlaying:      "not an editor event",
	PhaseNotEditing:   "no sequence is being edited",
	PhaseEditing:      "sequence is still collecting parts",
	PhaseAwaitingName: "sequence is waiting for a name",
}

// TransitionFor returns the allowed transition for a phase and event.
func TransitionFor(from Phase, ev EventKind) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr, true
		}
	}
	return Transition{}, false
}

// DecisionFor reports whether ev is allowed in from. ok is false when the
// phase is not known to either machine.
func DecisionFor(from Phase, ev EventKind) (Decision, bool) {
	reason, known := forbiddenReasons[from]
	if !known {
		return Decision{}, false
	}
	if _, allowed := TransitionFor(from, ev); allowed {
		return Decision{Allowed: true}, true
	}
	return Decision{Allowed: false, Reason: fmt.Sprintf("%s: %s not allowed", reason, ev)}, true
}
