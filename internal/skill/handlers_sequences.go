// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"context"
	"strings"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	"github.com/ManuGH/metronome/internal/domain/metronome/playback"
	"github.com/ManuGH/metronome/internal/session"
)

func sequenceName(ev Event) string {
	if ev.Sequence == nil {
		return ""
	}
	return strings.TrimSpace(ev.Sequence.Name)
}

// entitled reports whether the user owns custom sequences. The answer is
// cached in the session unless refresh is set.
func (r *Router) entitled(ctx context.Context, t *turn, refresh bool) (bool, error) {
	if !refresh && t.session.Entitlement != nil {
		return t.session.Entitlement.Entitled, nil
	}
	ok, err := r.entitlements.CustomSequences(ctx, t.ev.UserID)
	if err != nil {
		return false, &EntitlementError{UserID: t.ev.UserID, Err: err}
	}
	t.setEntitlement(&session.Entitlement{Entitled: ok, CheckedAt: r.now()})
	return ok, nil
}

// gate returns an upsell response when the user does not own custom
// sequences. ok is true when the caller may proceed.
func (r *Router) gate(ctx context.Context, t *turn) (resp Response, ok bool, err error) {
	ok, err = r.entitled(ctx, t, false)
	if err != nil || ok {
		return Response{}, ok, err
	}
	return Response{
		EndSession: true,
		Directives: []Directive{upsellDirective(r.cfg.ProductID, speechUpsell)},
	}, false, nil
}

func (r *Router) playSequence(ctx context.Context, t *turn) (Response, error) {
	if resp, ok, err := r.gate(ctx, t); !ok || err != nil {
		return resp, err
	}
	lib := t.profile.Library
	if len(lib) == 0 {
		return r.beginEdit(t, true), nil
	}

	name := sequenceName(t.ev)
	if name == "" {
		return tell(speechChooseSequence(len(lib))).with(namesDirective(lib)), nil
	}
	ns, ok := lib.Find(name)
	if !ok {
		return Response{}, &model.UnknownSequenceError{Name: name}
	}

	seq, err := r.builder.Build(ctx, ns.Parts)
	if err != nil {
		return Response{}, err
	}
	st, err := playback.Start(seq)
	if err != nil {
		return Response{}, err
	}
	t.setPlayback(st)
	return playing(speechPlayingSequence(ns.Name), seq[0]).with(namesDirective(lib)), nil
}

func (r *Router) listSequences(ctx context.Context, t *turn) (Response, error) {
	if resp, ok, err := r.gate(ctx, t); !ok || err != nil {
		return resp, err
	}
	lib := t.profile.Library
	if len(lib) == 0 {
		return r.beginEdit(t, true), nil
	}
	return tell(speechYourSequences(lib)).with(namesDirective(lib)), nil
}

// whatCanIBuy upsells to users without the product and points owners at
// their sequences.
func (r *Router) whatCanIBuy(ctx context.Context, t *turn) (Response, error) {
	if resp, ok, err := r.gate(ctx, t); !ok || err != nil {
		return resp, err
	}
	lib := t.profile.Library
	if len(lib) == 0 {
		return r.beginEdit(t, true), nil
	}
	return tell(speechAlreadyPurchased).with(namesDirective(lib)), nil
}

func (r *Router) deleteSequence(ctx context.Context, t *turn) (Response, error) {
	if resp, ok, err := r.gate(ctx, t); !ok || err != nil {
		return resp, err
	}
	lib := t.profile.Library

	name := sequenceName(t.ev)
	if name == "" {
		resp := tell(speechDidntUnderstand)
		if len(lib) > 0 {
			resp = resp.with(namesDirective(lib))
		}
		return resp, nil
	}
	ns, ok := lib.Find(name)
	if !ok {
		return Response{}, &model.UnknownSequenceError{Name: name}
	}
	next, err := lib.Delete(ns.Name)
	if err != nil {
		return Response{}, err
	}
	t.setLibrary(next)
	return tell(speechDeleted(ns.Name)).with(namesDirective(next)), nil
}

func (r *Router) createSequence(ctx context.Context, t *turn) (Response, error) {
	if resp, ok, err := r.gate(ctx, t); !ok || err != nil {
		return resp, err
	}
	return r.beginEdit(t, false), nil
}

func (r *Router) beginEdit(t *turn, firstSequence bool) Response {
	t.setEdit(r.editor.Begin())
	speech := speechNewSequence(r.editor.MaxParts())
	if firstSequence {
		speech = speechNoSequences(r.editor.MaxParts())
	}
	return ask(speech, speechNewSequenceReprompt)
}

func (r *Router) addPart(t *turn, req model.SegmentRequest) (Response, error) {
	next, err := r.editor.AddPart(t.session.Edit, req)
	if err != nil {
		return Response{}, err
	}
	t.setEdit(next)
	if next.AwaitingName {
		return nameRequest(len(next.Parts)), nil
	}
	speech := speechNextPart(len(next.Parts), req)
	return ask(speech, speech), nil
}

func nameRequest(parts int) Response {
	return tell(speechWhatToCall(parts)).with(elicitNameDirective())
}

func (r *Router) finishSequence(_ context.Context, t *turn) (Response, error) {
	next, err := r.editor.Finish(t.session.Edit)
	if err != nil {
		return Response{}, err
	}
	t.setEdit(next)
	if next == nil {
		return tell(speechCancelledEdit), nil
	}
	return nameRequest(len(next.Parts)), nil
}

func (r *Router) nameSequence(_ context.Context, t *turn) (Response, error) {
	var name string
	if t.ev.Edit != nil {
		name = t.ev.Edit.Name
	}
	ns, err := r.editor.NameAndSave(t.session.Edit, name)
	if err != nil {
		return Response{}, err
	}
	lib, err := t.profile.Library.Add(ns)
	if err != nil {
		return Response{}, err
	}
	t.setLibrary(lib)
	t.setEdit(nil)
	return tell(speechSaved(ns.Name)).with(namesDirective(lib)), nil
}

// cancel abandons a sequence being dictated, otherwise stops the player.
func (r *Router) cancel(ctx context.Context, t *turn) (Response, error) {
	if t.session.Edit != nil {
		t.setEdit(r.editor.Cancel(t.session.Edit))
		return tell(speechCancelledEdit), nil
	}
	if t.profile.Playback.Valid() {
		return r.pause(ctx, t)
	}
	return Response{Speech: speechGoodbye, EndSession: true}, nil
}
