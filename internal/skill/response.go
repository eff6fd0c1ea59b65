// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import "github.com/ManuGH/metronome/internal/domain/metronome/model"

// Response is what the platform should say and do.
type Response struct {
	Speech     string      `json:"speech,omitempty"`
	Reprompt   string      `json:"reprompt,omitempty"`
	Card       *Card       `json:"card,omitempty"`
	EndSession bool        `json:"endSession"`
	Directives []Directive `json:"directives,omitempty"`
}

// Card is a simple title/text card shown on devices with a screen.
type Card struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type DirectiveType string

const (
	DirectivePlay                DirectiveType = "Play"
	DirectiveStop                DirectiveType = "Stop"
	DirectiveUpdateSequenceNames DirectiveType = "UpdateSequenceNames"
	DirectiveUpsell              DirectiveType = "Upsell"
	DirectiveCancelPurchase      DirectiveType = "CancelPurchase"
	DirectiveElicitName          DirectiveType = "ElicitName"
)

// PlayBehavior controls how a Play directive interacts with the queue.
type PlayBehavior string

const (
	ReplaceAll PlayBehavior = "REPLACE_ALL"
	Enqueue    PlayBehavior = "ENQUEUE"
)

// Directive is a tagged union; the fields that apply depend on Type.
type Directive struct {
	Type DirectiveType `json:"type"`

	Play  *PlayDirective       `json:"play,omitempty"`
	Names []model.SequenceName `json:"names,omitempty"`

	ProductID string `json:"productId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// PlayDirective starts or queues one clip.
type PlayDirective struct {
	Behavior              PlayBehavior `json:"behavior"`
	URL                   string       `json:"url"`
	Token                 string       `json:"token"`
	ExpectedPreviousToken string       `json:"expectedPreviousToken,omitempty"`
	OffsetMs              int          `json:"offsetMs"`
	Title                 string       `json:"title"`
}

func playDirective(behavior PlayBehavior, seg model.ResolvedSegment, previous string) Directive {
	return Directive{
		Type: DirectivePlay,
		Play: &PlayDirective{
			Behavior:              behavior,
			URL:                   seg.AudioLink,
			Token:                 seg.BPM.Token(),
			ExpectedPreviousToken: previous,
			Title:                 seg.BPM.Title(),
		},
	}
}

func stopDirective() Directive { return Directive{Type: DirectiveStop} }

func namesDirective(lib model.Library) Directive {
	return Directive{Type: DirectiveUpdateSequenceNames, Names: lib.Names()}
}

func upsellDirective(productID, message string) Directive {
	return Directive{Type: DirectiveUpsell, ProductID: productID, Message: message}
}

func cancelPurchaseDirective(productID string) Directive {
	return Directive{Type: DirectiveCancelPurchase, ProductID: productID}
}

func elicitNameDirective() Directive { return Directive{Type: DirectiveElicitName} }

// ask keeps the session open, repeating prompt when the user says nothing.
func ask(speech, reprompt string) Response {
	if reprompt == "" {
		reprompt = speech
	}
	return Response{Speech: speech, Reprompt: reprompt}
}

// tell speaks and keeps the session open without a reprompt.
func tell(speech string) Response {
	return Response{Speech: speech}
}

// playing starts seg from the top and ends the session.
func playing(speech string, seg model.ResolvedSegment) Response {
	return Response{
		Speech:     speech,
		EndSession: true,
		Directives: []Directive{playDirective(ReplaceAll, seg, "")},
	}
}

func (r Response) with(d ...Directive) Response {
	r.Directives = append(r.Directives, d...)
	return r
}
