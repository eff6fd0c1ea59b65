// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package sequence resolves segment requests into a playable sequence.
package sequence

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
	"github.com/ManuGH/metronome/internal/metrics"
)

// ErrEmptySequence is returned by Build for an empty request list.
var ErrEmptySequence = fmt.Errorf("%w: sequence has no parts", model.ErrInput)

// DefaultConcurrency bounds parallel link resolutions per Build.
const DefaultConcurrency = 4

// LinkResolver maps a tempo to a playable link.
type LinkResolver interface {
	ResolveLink(ctx context.Context, bpm model.BPM) (string, error)
}

type Builder struct {
	links       LinkResolver
	concurrency int
}

func NewBuilder(links LinkResolver, concurrency int) *Builder {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Builder{links: links, concurrency: concurrency}
}

// Build resolves every request concurrently. The result keeps the request
// order; any failure fails the whole build.
func (b *Builder) Build(ctx context.Context, reqs []model.SegmentRequest) (model.Sequence, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptySequence
	}

	start := time.Now()
	out := make(model.Sequence, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			link, err := b.links.ResolveLink(gctx, req.BPM)
			if err != nil {
				return fmt.Errorf("resolve part %d (%d bpm): %w", i+1, req.BPM, err)
			}
			out[i] = model.ResolvedSegment{
				BPM:       req.BPM,
				Duration:  req.Duration,
				AudioLink: link,
				Repeats:   model.RepeatsFor(req.Duration),
			}
			return nil
		})
	}

	err := g.Wait()
	metrics.ObserveSequenceBuild(time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RebuildPreservingRepeats returns a copy of seg at bpm with a fresh link.
// Duration and remaining repeats are kept.
func (b *Builder) RebuildPreservingRepeats(ctx context.Context, seg model.ResolvedSegment, bpm model.BPM) (model.ResolvedSegment, error) {
	link, err := b.links.ResolveLink(ctx, bpm)
	if err != nil {
		return model.ResolvedSegment{}, err
	}
	seg.BPM = bpm
	seg.AudioLink = link
	return seg, nil
}
