// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/metronome/internal/domain/metronome/editor"
	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	"github.com/ManuGH/metronome/internal/domain/metronome/playback"
	xglog "github.com/ManuGH/metronome/internal/log"
	"github.com/ManuGH/metronome/internal/metrics"
	"github.com/ManuGH/metronome/internal/profile"
	"github.com/ManuGH/metronome/internal/session"
	"github.com/ManuGH/metronome/internal/telemetry"
	"github.com/ManuGH/metronome/internal/tempo"
)

var (
	// ErrUnknownKind is returned by Dispatch for an event kind without a
	// handler.
	ErrUnknownKind = errors.New("unknown event kind")
	// ErrMissingUser is returned by Dispatch for an event without a user ID.
	ErrMissingUser = errors.New("event has no user id")
)

// SequenceBuilder resolves segment requests into playable segments.
type SequenceBuilder interface {
	Build(ctx context.Context, reqs []model.SegmentRequest) (model.Sequence, error)
	RebuildPreservingRepeats(ctx context.Context, seg model.ResolvedSegment, bpm model.BPM) (model.ResolvedSegment, error)
}

// SessionStore keeps conversation-scoped state.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (session.State, error)
	Save(ctx context.Context, sessionID string, st session.State) error
	Delete(ctx context.Context, sessionID string) error
}

// Config holds the router settings that are not owned by a collaborator.
type Config struct {
	// WelcomeReminderAfter is the absence after which launch plays the long
	// welcome again.
	WelcomeReminderAfter time.Duration
	// ProductID identifies the custom sequences product in purchase flows.
	ProductID string
}

func DefaultConfig() Config {
	return Config{WelcomeReminderAfter: 72 * time.Hour, ProductID: "custom-sequences"}
}

// Deps are the router's collaborators. All are required except
// Entitlements, which defaults to granting everything.
type Deps struct {
	Tempo        *tempo.Resolver
	Editor       *editor.Editor
	Builder      SequenceBuilder
	Profiles     profile.Store
	Sessions     SessionStore
	Entitlements Entitlements
}

type handler func(ctx context.Context, t *turn) (Response, error)

// Router dispatches events to their handler.
type Router struct {
	tempo        *tempo.Resolver
	editor       *editor.Editor
	builder      SequenceBuilder
	profiles     profile.Store
	sessions     SessionStore
	entitlements Entitlements
	cfg          Config

	handlers map[EventKind]handler
	now      func() time.Time
	logger   zerolog.Logger
	tracer   trace.Tracer
}

type Option func(*Router)

func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

func NewRouter(deps Deps, cfg Config, opts ...Option) *Router {
	def := DefaultConfig()
	if cfg.WelcomeReminderAfter <= 0 {
		cfg.WelcomeReminderAfter = def.WelcomeReminderAfter
	}
	if cfg.ProductID == "" {
		cfg.ProductID = def.ProductID
	}
	if deps.Entitlements == nil {
		deps.Entitlements = StaticEntitlements(true)
	}

	r := &Router{
		tempo:        deps.Tempo,
		editor:       deps.Editor,
		builder:      deps.Builder,
		profiles:     deps.Profiles,
		sessions:     deps.Sessions,
		entitlements: deps.Entitlements,
		cfg:          cfg,
		now:          time.Now,
		logger:       xglog.WithComponent("skill"),
		tracer:       telemetry.Tracer("metronome/skill"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.handlers = r.routes()
	return r
}

func (r *Router) routes() map[EventKind]handler {
	return map[EventKind]handler{
		KindLaunch:         r.launch,
		KindPlay:           r.play,
		KindPlaySequence:   r.playSequence,
		KindListSequences:  r.listSequences,
		KindDeleteSequence: r.deleteSequence,
		KindCreateSequence: r.createSequence,
		KindFinishSequence: r.finishSequence,
		KindNameSequence:   r.nameSequence,
		KindCancel:         r.cancel,

		KindNext:      r.next,
		KindPrevious:  r.previous,
		KindStartOver: r.startOver,
		KindSpeedUp:   r.speedUp,
		KindSlowDown:  r.slowDown,
		KindResume:    r.resume,
		KindPause:     r.pause,

		KindPlaybackNearlyFinished: r.nearlyFinished,
		KindPlaybackFinished:       r.finished,
		KindPlaybackFailed:         r.failed,
		KindPlaybackStarted:        silent,
		KindPlaybackStopped:        silent,

		KindHelp:             r.help,
		KindFallback:         r.fallback,
		KindNotApplicable:    r.notApplicable,
		KindPurchaseResponse: r.purchaseResponse,
		KindRefund:           r.refund,
		KindWhatCanIBuy:      r.whatCanIBuy,
		KindSessionEnded:     r.sessionEnded,
	}
}

// Handles reports whether kind has a handler.
func (r *Router) Handles(kind EventKind) bool {
	_, ok := r.handlers[kind]
	return ok
}

// turn is the state one event operates on. Handlers mutate the copies held
// here; nothing reaches the stores unless the handler succeeds.
type turn struct {
	ev      Event
	profile profile.Profile
	session session.State

	profileChanged bool
	sessionChanged bool
	sessionEnded   bool
}

func (t *turn) setPlayback(st *model.PlaybackState) {
	t.profile.Playback = st
	t.profileChanged = true
}

func (t *turn) setLibrary(lib model.Library) {
	t.profile.Library = lib
	t.profileChanged = true
}

func (t *turn) setEdit(e *model.InProgressEdit) {
	t.session.Edit = e
	t.sessionChanged = true
}

func (t *turn) setEntitlement(e *session.Entitlement) {
	t.session.Entitlement = e
	t.sessionChanged = true
}

func (t *turn) editParts() int {
	if t.session.Edit == nil {
		return 0
	}
	return len(t.session.Edit.Parts)
}

// StoreError wraps a profile or session store failure.
type StoreError struct {
	Store string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s store %s: %v", e.Store, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == model.ErrUpstream }

// Dispatch handles one event. The returned error is non-nil only for events
// that cannot be routed; every other failure is turned into speech.
func (r *Router) Dispatch(ctx context.Context, ev Event) (Response, error) {
	h, ok := r.handlers[ev.Kind]
	if !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownKind, ev.Kind)
	}
	if ev.UserID == "" {
		return Response{}, ErrMissingUser
	}

	start := time.Now()
	ctx = xglog.ContextWithUser(ctx, ev.UserID, ev.SessionID)
	ctx, span := r.tracer.Start(ctx, "skill.Dispatch", trace.WithAttributes(telemetry.EventAttributes(string(ev.Kind))...))
	defer span.End()

	logger := xglog.WithContext(ctx, r.logger).With().Str(xglog.FieldEventKind, string(ev.Kind)).Logger()

	t, err := r.load(ctx, ev)
	if err == nil {
		var resp Response
		resp, err = h(ctx, t)
		if err == nil {
			err = r.persist(ctx, t)
		}
		if err == nil {
			r.observe(span, ev.Kind, nil, start)
			if st := t.profile.Playback; st.Valid() {
				span.SetAttributes(telemetry.PlaybackAttributes(st.Cursor, len(st.Segments))...)
			}
			return resp, nil
		}
	}

	class := model.Classify(err)
	r.observe(span, ev.Kind, err, start)
	logFailure(logger, t, class, err)
	return r.errorResponse(t, err), nil
}

func (r *Router) observe(span trace.Span, kind EventKind, err error, start time.Time) {
	class := model.Classify(err)
	metrics.RecordSkillEvent(string(kind), string(class), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(telemetry.ErrorClassKey, string(class)))
		if class == model.ClassUpstream || class == model.ClassUnknown {
			span.SetStatus(codes.Error, string(class))
		}
	}
}

func (r *Router) load(ctx context.Context, ev Event) (*turn, error) {
	t := &turn{ev: ev}

	p, err := r.profiles.Load(ctx, ev.UserID)
	if err != nil {
		return t, &StoreError{Store: "profile", Op: "load", Err: err}
	}
	t.profile = p.Clone()

	if ev.SessionID != "" {
		st, err := r.sessions.Load(ctx, ev.SessionID)
		if err != nil {
			return t, &StoreError{Store: "session", Op: "load", Err: err}
		}
		t.session = st
	}
	return t, nil
}

func (r *Router) persist(ctx context.Context, t *turn) error {
	if t.profileChanged {
		if err := r.profiles.Save(ctx, t.ev.UserID, t.profile); err != nil {
			return &StoreError{Store: "profile", Op: "save", Err: err}
		}
	}
	if t.ev.SessionID == "" {
		return nil
	}
	switch {
	case t.sessionEnded:
		if err := r.sessions.Delete(ctx, t.ev.SessionID); err != nil {
			return &StoreError{Store: "session", Op: "delete", Err: err}
		}
	case t.sessionChanged:
		if err := r.sessions.Save(ctx, t.ev.SessionID, t.session); err != nil {
			return &StoreError{Store: "session", Op: "save", Err: err}
		}
	}
	return nil
}

func logFailure(logger zerolog.Logger, t *turn, class model.Class, err error) {
	evt := logger.Warn()
	if class == model.ClassUpstream || class == model.ClassUnknown {
		evt = logger.Error()
	}
	evt = evt.Err(err).Str(xglog.FieldErrClass, string(class))
	if t != nil {
		st := t.profile.Playback
		segments := 0
		if st != nil {
			segments = len(st.Segments)
			evt = evt.Int(xglog.FieldCursor, st.Cursor)
		}
		evt = evt.Int(xglog.FieldSegmentCount, segments).Int(xglog.FieldEditParts, t.editParts())
		if cur, ok := st.Current(); ok {
			evt = evt.Int(xglog.FieldBPM, int(cur.BPM))
		}
	}
	evt.Msg("skill event failed")
}

// errorResponse turns a handler failure into something to say. Input
// errors ask again, navigation errors explain, delivery errors replay the
// current clip and anything else apologises.
func (r *Router) errorResponse(t *turn, err error) Response {
	switch model.Classify(err) {
	case model.ClassInput:
		return r.inputResponse(err)
	case model.ClassNavigation:
		var noNext *playback.NoNextSegmentError
		if errors.As(err, &noNext) {
			return Response{Speech: speechNoNext, EndSession: true}
		}
		return Response{Speech: speechNoPrevious, EndSession: true}
	case model.ClassState:
		return stateResponse(t, err)
	case model.ClassDelivery:
		if t == nil {
			return Response{}
		}
		seg, perr := playback.PlaybackFailed(t.profile.Playback)
		if perr != nil {
			return Response{}
		}
		return Response{EndSession: true, Directives: []Directive{playDirective(ReplaceAll, seg, "")}}
	default:
		return ask(speechApology, speechApology)
	}
}

func (r *Router) inputResponse(err error) Response {
	var (
		unknownTempo *tempo.UnknownTempoError
		bpmRange     *tempo.OutOfRangeError
		durRange     *tempo.DurationOutOfRangeError
		duplicate    *model.DuplicateNameError
		unknownSeq   *model.UnknownSequenceError
	)
	var speech string
	switch {
	case errors.As(err, &unknownTempo):
		speech = speechUnknownTempo(unknownTempo.Name)
	case errors.Is(err, tempo.ErrBPMRequired):
		speech = speechChooseBPM
	case errors.As(err, &bpmRange):
		speech = speechBPMOutOfRange(bpmRange.Min, bpmRange.Max, bpmRange.Value)
	case errors.As(err, &durRange):
		speech = speechDurationOutOfRange(durRange.Min, durRange.Max, durRange.Value)
	case errors.Is(err, editor.ErrDurationRequired):
		speech = speechNoDuration
	case errors.Is(err, editor.ErrNameRequired):
		speech = speechChooseName
	case errors.As(err, &duplicate):
		speech = speechDuplicateSequence(duplicate.Name)
	case errors.As(err, &unknownSeq):
		speech = speechUnknownSequence(unknownSeq.Name)
	default:
		speech = speechDidntUnderstand
	}
	return ask(speech, speech)
}

func stateResponse(t *turn, err error) Response {
	switch {
	case errors.Is(err, playback.ErrNotPlaying):
		return ask(speechNotPlaying, speechHelp)
	case errors.Is(err, editor.ErrAwaitingName) && t != nil:
		return nameRequest(t.editParts())
	case errors.Is(err, editor.ErrNotEditing):
		return tell(speechNotEditing)
	default:
		return tell(speechDidntUnderstand)
	}
}
