// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package profile

import (
	"context"
	"fmt"

	"github.com/ManuGH/metronome/internal/metrics"
)

// Backends accepted by OpenStore.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendSqlite = "sqlite"
)

// OpenStore opens the configured backend. path is a database file for
// sqlite and a directory for badger; memory ignores it.
func OpenStore(ctx context.Context, backend, path string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendBadger:
		s, err = OpenBadgerStore(path)
	case BackendSqlite, "":
		s, err = OpenSqliteStore(ctx, path)
	default:
		return nil, fmt.Errorf("unknown profile store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return instrumented{Store: s}, nil
}

type instrumented struct {
	Store
}

func (i instrumented) Load(ctx context.Context, userID string) (Profile, error) {
	p, err := i.Store.Load(ctx, userID)
	metrics.RecordStoreOperation("profile", "load", err)
	return p, err
}

func (i instrumented) Save(ctx context.Context, userID string, p Profile) error {
	err := i.Store.Save(ctx, userID, p)
	metrics.RecordStoreOperation("profile", "save", err)
	return err
}
