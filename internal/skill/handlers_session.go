// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"context"

	xglog "github.com/ManuGH/metronome/internal/log"
)

// alreadyPlaying answers launch and help while one of our clips plays.
func alreadyPlaying(t *turn) (Response, bool) {
	if !t.ev.Player.Playing() {
		return Response{}, false
	}
	cur, ok := t.profile.Playback.Current()
	if !ok {
		return Response{}, false
	}
	return tell(speechAlreadyPlaying(cur.BPM)), true
}

func (r *Router) launch(ctx context.Context, t *turn) (Response, error) {
	if resp, ok := alreadyPlaying(t); ok {
		return resp, nil
	}

	if _, err := r.entitled(ctx, t, true); err != nil {
		logger := xglog.WithContext(ctx, r.logger)
		logger.Warn().Err(err).Msg("entitlement refresh failed")
	}

	now := r.now()
	speech := speechWelcomeQuick
	if last := t.profile.LastUsed; last.IsZero() || now.Sub(last) > r.cfg.WelcomeReminderAfter {
		speech = speechWelcomeLong
	}
	t.profile.LastUsed = now
	t.profileChanged = true

	resp := ask(speech, speechHelp)
	resp.Card = &Card{Title: cardWelcomeTitle, Text: speechWelcomeLong}
	if len(t.profile.Library) > 0 {
		resp = resp.with(namesDirective(t.profile.Library))
	}
	return resp, nil
}

func (r *Router) help(_ context.Context, t *turn) (Response, error) {
	if resp, ok := alreadyPlaying(t); ok {
		return resp, nil
	}
	resp := ask(speechHelp, speechHelp)
	resp.Card = &Card{Title: cardHelpTitle, Text: speechHelp}
	return resp, nil
}

func (r *Router) fallback(context.Context, *turn) (Response, error) {
	return tell(speechDidntUnderstand), nil
}

func (r *Router) notApplicable(context.Context, *turn) (Response, error) {
	return Response{Speech: speechNotApplicable}, nil
}

// purchaseResponse continues after an upsell or buy flow: a completed
// purchase goes straight to creating a sequence, anything else relaunches.
func (r *Router) purchaseResponse(ctx context.Context, t *turn) (Response, error) {
	if _, err := r.entitled(ctx, t, true); err != nil {
		return Response{}, err
	}
	p := t.ev.Purchase
	if p != nil && p.Request != PurchaseRequestCancel &&
		(p.Result == PurchaseAccepted || p.Result == PurchaseAlreadyPurchased) {
		return r.createSequence(ctx, t)
	}
	return r.launch(ctx, t)
}

func (r *Router) refund(ctx context.Context, t *turn) (Response, error) {
	if _, err := r.entitled(ctx, t, true); err != nil {
		return Response{}, err
	}
	return Response{Directives: []Directive{cancelPurchaseDirective(r.cfg.ProductID)}}, nil
}

func (r *Router) sessionEnded(_ context.Context, t *turn) (Response, error) {
	t.sessionEnded = true
	return Response{}, nil
}
