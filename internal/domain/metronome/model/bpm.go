// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package model holds the metronome domain types shared by the playback
// cursor, the sequence editor and the persistence layers.
package model

import "strconv"

// BPM is a tempo in beats per minute.
type BPM int

func (b BPM) String() string { return strconv.Itoa(int(b)) }

// Token is the player token used for a clip at this tempo, e.g. "100bpm".
func (b BPM) Token() string { return b.String() + "bpm" }

// Title is the display title attached to play directives.
func (b BPM) Title() string { return b.String() + " BPM - Metronome Pro" }
