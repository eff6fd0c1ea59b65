// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package objectstore

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, link string) *url.URL {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u
}

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret", "https://metronome.test/")
	u := parse(t, s.Sign("sequences/90 BPM", time.Hour))

	assert.Equal(t, "/media/sequences/90 BPM", u.Path)
	assert.Equal(t, "/media/sequences/90%20BPM", u.EscapedPath())
	assert.NoError(t, s.Verify("sequences/90 BPM", u.Query()))
}

func TestSigner_RejectsTampering(t *testing.T) {
	s := NewSigner("secret", "https://metronome.test")
	q := parse(t, s.Sign("sequences/90 BPM", time.Hour)).Query()

	assert.ErrorIs(t, s.Verify("sequences/91 BPM", q), ErrBadSignature)

	moved := url.Values{"expires": {"99999999999"}, "sig": q["sig"]}
	assert.ErrorIs(t, s.Verify("sequences/90 BPM", moved), ErrBadSignature)

	other := NewSigner("other", "https://metronome.test")
	assert.ErrorIs(t, other.Verify("sequences/90 BPM", q), ErrBadSignature)

	assert.ErrorIs(t, s.Verify("sequences/90 BPM", url.Values{}), ErrBadSignature)
}

func TestSigner_Expiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := NewSigner("secret", "https://metronome.test")
	s.now = func() time.Time { return now }

	q := parse(t, s.Sign("k", time.Minute)).Query()
	require.NoError(t, s.Verify("k", q))

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, s.Verify("k", q), ErrLinkExpired)
}
