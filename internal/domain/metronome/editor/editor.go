// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package editor builds a custom sequence part by part.
package editor

import (
	"fmt"
	"strings"

	"github.com/ManuGH/metronome/internal/domain/metronome/lifecycle"
	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

var (
	ErrNotEditing       = fmt.Errorf("%w: no sequence is being created", model.ErrState)
	ErrAwaitingName     = fmt.Errorf("%w: sequence is complete and needs a name", model.ErrState)
	ErrNotAwaitingName  = fmt.Errorf("%w: no sequence is waiting for a name", model.ErrState)
	ErrDurationRequired = fmt.Errorf("%w: each part needs a duration", model.ErrInput)
	ErrNameRequired     = fmt.Errorf("%w: sequence name is required", model.ErrInput)
)

// DefaultMaxParts is the sequence length at which AddPart finishes the edit.
const DefaultMaxParts = 5

// Editor applies editing events to an *model.InProgressEdit. A nil edit
// means nothing is being edited. Inputs are never modified.
type Editor struct {
	maxParts int
}

// New returns an Editor that auto-finishes at maxParts parts.
func New(maxParts int) *Editor {
	if maxParts <= 0 {
		maxParts = DefaultMaxParts
	}
	return &Editor{maxParts: maxParts}
}

// MaxParts returns the configured sequence length limit.
func (e *Editor) MaxParts() int { return e.maxParts }

// Begin starts a new, empty edit. An edit already in progress is dropped.
func (e *Editor) Begin() *model.InProgressEdit {
	return &model.InProgressEdit{Parts: []model.SegmentRequest{}}
}

// AddPart appends req. Reaching the part limit finishes the edit.
func (e *Editor) AddPart(edit *model.InProgressEdit, req model.SegmentRequest) (*model.InProgressEdit, error) {
	if err := check(edit, lifecycle.EvAddPart); err != nil {
		return nil, err
	}
	if req.Duration.IsForever() {
		return nil, ErrDurationRequired
	}

	next := edit.Clone()
	next.Parts = append(next.Parts, req)
	if len(next.Parts) >= e.maxParts {
		next.AwaitingName = true
	}
	return next, nil
}

// Finish closes the part list. Finishing without any part cancels the edit
// and returns nil.
func (e *Editor) Finish(edit *model.InProgressEdit) (*model.InProgressEdit, error) {
	if err := check(edit, lifecycle.EvFinishEdit); err != nil {
		return nil, err
	}
	if len(edit.Parts) == 0 {
		return nil, nil
	}
	next := edit.Clone()
	next.AwaitingName = true
	return next, nil
}

// NameAndSave turns a finished edit into a named sequence. The caller adds
// it to the library and clears the edit.
func (e *Editor) NameAndSave(edit *model.InProgressEdit, name string) (model.NamedSequence, error) {
	if lifecycle.EditPhase(edit) != lifecycle.PhaseAwaitingName {
		return model.NamedSequence{}, ErrNotAwaitingName
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.NamedSequence{}, ErrNameRequired
	}
	parts := make([]model.SegmentRequest, len(edit.Parts))
	copy(parts, edit.Parts)
	return model.NamedSequence{Name: name, Parts: parts}, nil
}

// Cancel discards the edit.
func (e *Editor) Cancel(*model.InProgressEdit) *model.InProgressEdit { return nil }

func check(edit *model.InProgressEdit, ev lifecycle.EventKind) error {
	phase := lifecycle.EditPhase(edit)
	if d, _ := lifecycle.DecisionFor(phase, ev); d.Allowed {
		return nil
	}
	if phase == lifecycle.PhaseAwaitingName {
		return ErrAwaitingName
	}
	return ErrNotEditing
}
