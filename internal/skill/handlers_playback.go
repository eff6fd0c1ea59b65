// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"context"
	"fmt"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	"github.com/ManuGH/metronome/internal/domain/metronome/playback"
	"github.com/ManuGH/metronome/internal/tempo"
)

// PlaybackFailedError is the player's report that a clip could not be
// played.
type PlaybackFailedError struct {
	Token  string
	Reason string
}

func (e *PlaybackFailedError) Error() string {
	return fmt.Sprintf("playback of %q failed: %s", e.Token, e.Reason)
}

func (e *PlaybackFailedError) Is(target error) bool { return target == model.ErrDelivery }

// play starts a single beat, or adds a part while a sequence is being
// dictated.
func (r *Router) play(ctx context.Context, t *turn) (Response, error) {
	var in PlayInput
	if t.ev.Play != nil {
		in = *t.ev.Play
	}

	bpm, err := r.tempo.Resolve(tempo.Input{Literal: in.BPM, Named: in.Tempo})
	if err != nil {
		return Response{}, err
	}
	dur, err := tempo.ParseDuration(in.Duration)
	if err != nil {
		return Response{}, err
	}
	if err := r.tempo.ValidateDuration(dur); err != nil {
		return Response{}, err
	}
	req := model.SegmentRequest{BPM: bpm, Duration: dur}

	if t.session.Edit != nil {
		return r.addPart(t, req)
	}

	seq, err := r.builder.Build(ctx, []model.SegmentRequest{req})
	if err != nil {
		return Response{}, err
	}
	st, err := playback.Start(seq)
	if err != nil {
		return Response{}, err
	}
	t.setPlayback(st)
	return playing(speechPlayingBeat(bpm, dur), seq[0]), nil
}

func (r *Router) next(_ context.Context, t *turn) (Response, error) {
	st, err := playback.SkipForward(t.profile.Playback)
	if err != nil {
		return Response{}, err
	}
	t.setPlayback(st)
	cur, _ := st.Current()
	return playing(speechNext(cur.BPM), cur), nil
}

func (r *Router) previous(_ context.Context, t *turn) (Response, error) {
	st, err := playback.SkipBack(t.profile.Playback)
	if err != nil {
		return Response{}, err
	}
	t.setPlayback(st)
	cur, _ := st.Current()
	return playing(speechPrevious(cur.BPM), cur), nil
}

func (r *Router) startOver(ctx context.Context, t *turn) (Response, error) {
	if !t.profile.Playback.Valid() {
		return r.launch(ctx, t)
	}
	st, err := playback.Restart(t.profile.Playback)
	if err != nil {
		return Response{}, err
	}
	t.setPlayback(st)
	cur, _ := st.Current()
	return playing(speechStartingOver(cur.BPM), cur), nil
}

func (r *Router) speedUp(ctx context.Context, t *turn) (Response, error) {
	return r.changeTempo(ctx, t, 1, speechSpeedingUp)
}

func (r *Router) slowDown(ctx context.Context, t *turn) (Response, error) {
	return r.changeTempo(ctx, t, -1, speechSlowingDown)
}

func (r *Router) changeTempo(ctx context.Context, t *turn, sign int, say func(model.BPM) string) (Response, error) {
	var by string
	if t.ev.Tempo != nil {
		by = t.ev.Tempo.By
	}
	delta := sign * r.tempo.Step(by)

	st, seg, err := playback.ChangeTempo(ctx, t.profile.Playback, delta, r.tempo, r.builder)
	if err != nil {
		return Response{}, err
	}
	t.setPlayback(st)
	return playing(say(seg.BPM), seg), nil
}

func (r *Router) resume(ctx context.Context, t *turn) (Response, error) {
	if !t.profile.Playback.Valid() {
		return r.launch(ctx, t)
	}
	cur, err := playback.Current(t.profile.Playback)
	if err != nil {
		return Response{}, err
	}
	return playing(speechResuming(cur.BPM), cur), nil
}

// pause stops the player. The cursor is kept so resume can pick it up.
func (r *Router) pause(context.Context, *turn) (Response, error) {
	return Response{EndSession: true, Directives: []Directive{stopDirective()}}, nil
}

func (r *Router) nearlyFinished(_ context.Context, t *turn) (Response, error) {
	if !t.profile.Playback.Valid() {
		return Response{}, nil
	}
	prev, _ := t.profile.Playback.Current()

	adv, err := playback.NearlyDone(t.profile.Playback)
	if err != nil {
		return Response{}, err
	}
	t.setPlayback(adv.State)
	if adv.Next == nil {
		return Response{}, nil
	}
	return Response{
		EndSession: true,
		Directives: []Directive{playDirective(Enqueue, *adv.Next, prev.BPM.Token())},
	}, nil
}

func (r *Router) finished(_ context.Context, t *turn) (Response, error) {
	if !t.profile.Playback.Valid() {
		return Response{}, nil
	}
	st, ended, err := playback.Finished(t.profile.Playback)
	if err != nil {
		return Response{}, err
	}
	if ended {
		t.setPlayback(st)
	}
	return Response{}, nil
}

// failed hands the report to the router, which replays the current clip.
func (r *Router) failed(_ context.Context, t *turn) (Response, error) {
	if !t.profile.Playback.Valid() {
		return Response{}, nil
	}
	return Response{}, &PlaybackFailedError{Token: t.ev.Player.Token, Reason: t.ev.Player.Error}
}

func silent(context.Context, *turn) (Response, error) {
	return Response{}, nil
}
