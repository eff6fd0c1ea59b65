// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_AddRejectsDuplicateNames(t *testing.T) {
	var lib Library
	lib, err := lib.Add(NamedSequence{Name: "Guitar Practice", Parts: []SegmentRequest{{BPM: 60, Duration: Seconds(20)}}})
	require.NoError(t, err)

	_, err = lib.Add(NamedSequence{Name: "guitar practice"})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.True(t, errors.Is(err, ErrInput))
	assert.Len(t, lib, 1)
}

func TestLibrary_DeleteAndNames(t *testing.T) {
	lib := Library{{Name: "warmup"}, {Name: "drills"}, {Name: "cooldown"}}

	names := lib.Names()
	require.Len(t, names, 3)
	assert.Equal(t, SequenceName{ID: "sequenceName2", Name: "drills"}, names[1])

	next, err := lib.Delete("Drills")
	require.NoError(t, err)
	assert.Len(t, next, 2)
	assert.Len(t, lib, 3, "delete must not mutate the receiver")

	_, err = next.Delete("drills")
	assert.Equal(t, ClassInput, Classify(err))
}
