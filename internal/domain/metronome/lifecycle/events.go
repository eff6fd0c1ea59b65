// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

// EventKind identifies an input to one of the machines.
type EventKind string

const (
	// Playback cursor
	EvStart          EventKind = "start"
	EvNearlyDone     EventKind = "nearly_done"
	EvFinished       EventKind = "finished"
	EvSkipForward    EventKind = "skip_forward"
	EvSkipBack       EventKind = "skip_back"
	EvRestart        EventKind = "restart"
	EvChangeTempo    EventKind = "change_tempo"
	EvPlaybackFailed EventKind = "playback_failed"
	EvResume         EventKind = "resume"

	// Sequence editor
	EvBeginEdit  EventKind = "begin_edit"
	EvAddPart    EventKind = "add_part"
	EvFinishEdit EventKind = "finish_edit"
	EvNameEdit   EventKind = "name_edit"
	EvCancelEdit EventKind = "cancel_edit"
)

// PlaybackEvents lists the cursor events.
var PlaybackEvents = []EventKind{
	EvStart, EvNearlyDone, EvFinished, EvSkipForward, EvSkipBack,
	EvRestart, EvChangeTempo, EvPlaybackFailed, EvResume,
}

// EditEvents lists the editor events.
var EditEvents = []EventKind{
	EvBeginEdit, EvAddPart, EvFinishEdit, EvNameEdit, EvCancelEdit,
}
