// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package objectstore keeps generated audio and hands out signed links to it.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// MediaPrefix is the URL path under which objects are served.
const MediaPrefix = "/media/"

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid object key")
)

// Object is a stored blob opened for reading.
type Object struct {
	Body        io.ReadSeekCloser
	ContentType string
	ModTime     time.Time
	Size        int64
}

// Backend persists blobs by key.
type Backend interface {
	Exists(ctx context.Context, key string) (bool, error)
	Write(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)
	Ping(ctx context.Context) error
}

// Store combines a backend with a signer.
type Store struct {
	backend Backend
	signer  *Signer
}

func New(backend Backend, signer *Signer) *Store {
	return &Store{backend: backend, signer: signer}
}

// SignedURLIfExists returns a link valid for ttl when key is stored.
func (s *Store) SignedURLIfExists(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	ok, err := s.backend.Exists(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	return s.signer.Sign(key, ttl), true, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.backend.Write(ctx, key, data, contentType)
}

// SignedURL returns a link to key valid for ttl without checking existence.
func (s *Store) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return s.signer.Sign(key, ttl), nil
}

func (s *Store) Ping(ctx context.Context) error { return s.backend.Ping(ctx) }

// ValidateKey rejects keys that could escape the store root.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
