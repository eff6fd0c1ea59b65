// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid http", "http://example.com", false},
		{"valid https", "https://example.com:8443/gen", false},
		{"empty url", "", true},
		{"no host", "http://", true},
		{"invalid scheme", "ftp://example.com", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.URL("generator.url", tt.value, []string{"http", "https"})
			assert.Equal(t, tt.wantErr, !v.IsValid(), "%v", v.Err())
		})
	}
}

func TestValidator_ListenAddr(t *testing.T) {
	for _, ok := range []string{":8080", "127.0.0.1:0", "[::1]:443"} {
		v := New()
		v.ListenAddr("api.listenAddr", ok)
		assert.True(t, v.IsValid(), ok)
	}
	for _, bad := range []string{"8080", ":http", "host:70000", ""} {
		v := New()
		v.ListenAddr("api.listenAddr", bad)
		assert.False(t, v.IsValid(), bad)
	}
}

func TestValidator_Numbers(t *testing.T) {
	v := New()
	v.Range("metronome.minBPM", 20, 1, 1000)
	v.Positive("metronome.bpmStep", 10)
	v.NonNegative("generator.rateBurst", 0)
	v.PositiveDuration("sessions.ttl", time.Hour)
	v.Ordered("metronome.bpm", 20, 200)
	v.OrderedDuration("metronome.duration", 10*time.Second, 30*time.Minute)
	v.FloatRange("telemetry.samplingRate", 0.5, 0, 1)
	assert.True(t, v.IsValid(), "%v", v.Err())

	v = New()
	v.Range("metronome.minBPM", 0, 1, 1000)
	v.Positive("metronome.bpmStep", 0)
	v.NonNegative("generator.rateBurst", -1)
	v.PositiveDuration("sessions.ttl", 0)
	v.Ordered("metronome.bpm", 200, 20)
	v.OrderedDuration("metronome.duration", time.Hour, time.Minute)
	v.FloatRange("telemetry.samplingRate", 1.5, 0, 1)
	assert.Len(t, v.Errors(), 7)
}

func TestValidator_Strings(t *testing.T) {
	v := New()
	v.NotEmpty("objects.signingSecret", "   ")
	v.MinLength("objects.signingSecret", "short", 16)
	v.OneOf("objects.backend", "s3", []string{"fs", "memory"})
	v.Path("objects.root", "../outside")
	v.LogLevel("logLevel", "chatty")
	assert.Len(t, v.Errors(), 5)

	v = New()
	v.OneOf("objects.backend", "fs", []string{"fs", "memory"})
	v.Path("objects.root", "./data/objects")
	v.LogLevel("logLevel", "debug")
	assert.True(t, v.IsValid())
}

func TestValidationError_CollectsAll(t *testing.T) {
	v := New()
	assert.NoError(t, v.Err())

	v.AddError("a", "first", 1)
	v.AddError("b", "second", 2)
	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "validation failed for a: first; validation failed for b: second", err.Error())

	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors(), 2)

	// The returned error is detached from later additions.
	v.AddError("c", "third", 3)
	assert.Len(t, ve.Errors(), 2)
}
