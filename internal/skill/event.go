// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package skill turns voice platform events into responses. Each event kind
// maps to exactly one handler; the router loads and saves the user's state
// around it.
package skill

// EventKind names an inbound event.
type EventKind string

const (
	KindLaunch         EventKind = "launch"
	KindPlay           EventKind = "play"
	KindPlaySequence   EventKind = "play_sequence"
	KindListSequences  EventKind = "list_sequences"
	KindDeleteSequence EventKind = "delete_sequence"
	KindCreateSequence EventKind = "create_sequence"
	KindFinishSequence EventKind = "finish_sequence"
	KindNameSequence   EventKind = "name_sequence"
	KindCancel         EventKind = "cancel"

	KindNext      EventKind = "next"
	KindPrevious  EventKind = "previous"
	KindStartOver EventKind = "start_over"
	KindSpeedUp   EventKind = "speed_up"
	KindSlowDown  EventKind = "slow_down"
	KindResume    EventKind = "resume"
	KindPause     EventKind = "pause"

	KindPlaybackNearlyFinished EventKind = "playback_nearly_finished"
	KindPlaybackFinished       EventKind = "playback_finished"
	KindPlaybackFailed         EventKind = "playback_failed"
	KindPlaybackStarted        EventKind = "playback_started"
	KindPlaybackStopped        EventKind = "playback_stopped"

	KindHelp             EventKind = "help"
	KindFallback         EventKind = "fallback"
	KindNotApplicable    EventKind = "not_applicable"
	KindPurchaseResponse EventKind = "purchase_response"
	KindRefund           EventKind = "refund"
	KindWhatCanIBuy      EventKind = "what_can_i_buy"
	KindSessionEnded     EventKind = "session_ended"
)

// PlayerActivityPlaying is the player activity reported while a clip plays.
const PlayerActivityPlaying = "PLAYING"

// Event is one inbound request from the voice platform. Only the block
// matching Kind is read.
type Event struct {
	Kind      EventKind `json:"kind"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId,omitempty"`
	Locale    string    `json:"locale,omitempty"`
	Player    Player    `json:"player"`

	Play     *PlayInput     `json:"play,omitempty"`
	Tempo    *TempoInput    `json:"tempo,omitempty"`
	Sequence *SequenceInput `json:"sequence,omitempty"`
	Edit     *EditInput     `json:"edit,omitempty"`
	Purchase *PurchaseInput `json:"purchase,omitempty"`
}

// Player is the audio player context sent with every event.
type Player struct {
	Token    string `json:"token,omitempty"`
	Activity string `json:"activity,omitempty"`
	// Error is the player's description of a failed clip.
	Error string `json:"error,omitempty"`
}

// Playing reports whether one of our clips is currently playing.
func (p Player) Playing() bool {
	return p.Token != "" && p.Activity == PlayerActivityPlaying
}

// PlayInput carries the slots of a play request. Duration is an ISO 8601
// duration; empty plays until stopped.
type PlayInput struct {
	BPM      string `json:"bpm,omitempty"`
	Tempo    string `json:"tempo,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// TempoInput carries the optional amount for speed up and slow down.
type TempoInput struct {
	By string `json:"by,omitempty"`
}

// SequenceInput names a custom sequence.
type SequenceInput struct {
	Name string `json:"name,omitempty"`
}

// EditInput carries the name given to a new sequence.
type EditInput struct {
	Name string `json:"name,omitempty"`
}

// Purchase request names and results reported back by the platform.
const (
	PurchaseRequestCancel = "Cancel"

	PurchaseAccepted         = "ACCEPTED"
	PurchaseAlreadyPurchased = "ALREADY_PURCHASED"
	PurchaseDeclined         = "DECLINED"
	PurchaseError            = "ERROR"
)

// PurchaseInput is the outcome of an upsell, buy or cancel flow.
type PurchaseInput struct {
	Request string `json:"request,omitempty"`
	Result  string `json:"result,omitempty"`
}
