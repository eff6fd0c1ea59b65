// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package objectstore

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"
)

type memObject struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// MemoryStore is a map-backed Backend.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memObject)}
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MemoryStore) Write(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: append([]byte(nil), data...), contentType: contentType, modTime: time.Now()}
	return nil
}

func (m *MemoryStore) Open(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		Body:        nopCloser{bytes.NewReader(obj.data)},
		ContentType: obj.contentType,
		ModTime:     obj.modTime,
		Size:        int64(len(obj.data)),
	}, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

type nopCloser struct{ io.ReadSeeker }

func (nopCloser) Close() error { return nil }
