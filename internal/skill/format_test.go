// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpokenDuration(t *testing.T) {
	assert.Equal(t, "10 seconds", spokenDuration(10*time.Second))
	assert.Equal(t, "1 minute, 30 seconds", spokenDuration(90*time.Second))
	assert.Equal(t, "30 minutes", spokenDuration(30*time.Minute))
	assert.Equal(t, "1 hour, 1 second", spokenDuration(time.Hour+time.Second))
	assert.Equal(t, "0 seconds", spokenDuration(0))
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "first", ordinal(1))
	assert.Equal(t, "fifth", ordinal(5))
	assert.Equal(t, "twelfth", ordinal(12))
	assert.Equal(t, "twentieth", ordinal(20))
	assert.Equal(t, "twenty-first", ordinal(21))
	assert.Equal(t, "ninety-ninth", ordinal(99))
}

func TestSpokenList(t *testing.T) {
	assert.Equal(t, "", spokenList(nil))
	assert.Equal(t, "a", spokenList([]string{"a"}))
	assert.Equal(t, "a and b", spokenList([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", spokenList([]string{"a", "b", "c"}))
}
