// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package profile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

func sample() Profile {
	return Profile{
		Playback: &model.PlaybackState{
			Segments: model.Sequence{
				{BPM: 100, Duration: model.Seconds(20), AudioLink: "https://m/100", Repeats: model.RepeatCount(1)},
				{BPM: 80, Duration: model.Forever, AudioLink: "https://m/80", Repeats: model.InfiniteRepeats},
			},
			Cursor: 1,
		},
		Library: model.Library{
			{Name: "warmup", Parts: []model.SegmentRequest{{BPM: 60, Duration: model.Seconds(30)}}},
		},
		LastUsed: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	stores := map[string]Store{}
	for _, backend := range []string{BackendMemory, BackendBadger, BackendSqlite} {
		path := filepath.Join(dir, backend)
		if backend == BackendSqlite {
			path = filepath.Join(dir, "profiles.db")
		}
		s, err := OpenStore(ctx, backend, path)
		require.NoError(t, err, backend)
		t.Cleanup(func() { _ = s.Close() })
		stores[backend] = s
	}
	return stores
}

func TestStores_RoundTrip(t *testing.T) {
	opts := cmp.AllowUnexported(model.Duration{}, model.Repeats{})

	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := s.Load(ctx, "nobody")
			require.NoError(t, err)
			assert.Nil(t, empty.Playback)
			assert.Empty(t, empty.Library)
			assert.True(t, empty.LastUsed.IsZero())

			want := sample()
			require.NoError(t, s.Save(ctx, "user-1", want))

			got, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, opts); diff != "" {
				t.Fatalf("profile mismatch (-want +got):\n%s", diff)
			}

			want.Playback = nil
			require.NoError(t, s.Save(ctx, "user-1", want))
			got, err = s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.Nil(t, got.Playback, "cleared playback must stay cleared")

			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := sample()
	require.NoError(t, s.Save(ctx, "u", p))

	p.Library[0].Parts[0].BPM = 1
	p.Playback.Cursor = 0

	got, err := s.Load(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, model.BPM(60), got.Library[0].Parts[0].BPM)
	assert.Equal(t, 1, got.Playback.Cursor)

	require.NoError(t, s.Close())
	_, err = s.Load(ctx, "u")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), "bolt", "")
	assert.Error(t, err)
}
