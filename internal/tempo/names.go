// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package tempo

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

var namedTempos = map[string]model.BPM{
	"larghissimo":      24,
	"grave":            30,
	"hrave":            30,
	"largo":            50,
	"lento":            55,
	"larghetto":        63,
	"adagio":           70,
	"adagietto":        72,
	"andante":          85,
	"andantino":        90,
	"marcia moderato":  84,
	"andante moderato": 95,
	"moderato":         115,
	"allegretto":       115,
	"allegro moderato": 120,
	"allegro":          135,
	"vivace":           165,
	"vivacissimo":      175,
	"allegrissimo":     174,
	"presto":           180,
	"prestissimo":      200,
}

func normalizeName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Lookup returns the BPM for a classical tempo marking.
func Lookup(name string) (model.BPM, bool) {
	bpm, ok := namedTempos[normalizeName(name)]
	return bpm, ok
}
