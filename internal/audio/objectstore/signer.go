// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package objectstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadSignature = errors.New("signature mismatch")
	ErrLinkExpired  = errors.New("link expired")
)

// Signer issues and verifies time-limited object links of the form
// {base}/media/{key}?expires={unix}&sig={hex}.
type Signer struct {
	secret  []byte
	baseURL string
	now     func() time.Time
}

func NewSigner(secret, publicBaseURL string) *Signer {
	return &Signer{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		now:     time.Now,
	}
}

func (s *Signer) mac(key string, expires int64) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(key))
	h.Write([]byte{'\n'})
	h.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

// Sign returns a link to key valid for ttl.
func (s *Signer) Sign(key string, ttl time.Duration) string {
	expires := s.now().Add(ttl).Unix()

	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", s.mac(key, expires))
	return s.baseURL + MediaPrefix + strings.Join(segments, "/") + "?" + q.Encode()
}

// Verify checks the query parameters of a link to key.
func (s *Signer) Verify(key string, q url.Values) error {
	expires, err := strconv.ParseInt(q.Get("expires"), 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	want := s.mac(key, expires)
	if !hmac.Equal([]byte(want), []byte(q.Get("sig"))) {
		return ErrBadSignature
	}
	if s.now().Unix() > expires {
		return ErrLinkExpired
	}
	return nil
}
