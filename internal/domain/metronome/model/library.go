// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import (
	"strconv"
	"strings"
)

// NamedSequence is a user-authored multi-part sequence. Only the requests
// are stored; links are resolved again on every play because they expire.
type NamedSequence struct {
	Name  string           `json:"name"`
	Parts []SegmentRequest `json:"sequence"`
}

// SequenceName is one entry of the slot-matching vocabulary sent to the
// platform.
type SequenceName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Library is the ordered collection of a user's named sequences.
type Library []NamedSequence

// Find looks a sequence up by name, ignoring case.
func (l Library) Find(name string) (NamedSequence, bool) {
	name = strings.TrimSpace(name)
	for _, s := range l {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return NamedSequence{}, false
}

// Add returns a new library with seq appended. Names are unique ignoring
// case.
func (l Library) Add(seq NamedSequence) (Library, error) {
	if _, exists := l.Find(seq.Name); exists {
		return l, &DuplicateNameError{Name: seq.Name}
	}
	out := make(Library, 0, len(l)+1)
	out = append(out, l...)
	return append(out, seq), nil
}

// Delete returns a new library without the named sequence.
func (l Library) Delete(name string) (Library, error) {
	out := make(Library, 0, len(l))
	found := false
	for _, s := range l {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		return l, &UnknownSequenceError{Name: name}
	}
	return out, nil
}

// Names lists the sequences as id/name pairs, ids numbered from 1.
func (l Library) Names() []SequenceName {
	out := make([]SequenceName, len(l))
	for i, s := range l {
		out[i] = SequenceName{ID: "sequenceName" + strconv.Itoa(i+1), Name: s.Name}
	}
	return out
}
