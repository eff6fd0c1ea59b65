// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Link resolution outcomes.
const (
	LinkCacheHit  = "cache_hit"
	LinkStoreHit  = "store_hit"
	LinkGenerated = "generated"
	LinkShared    = "shared"
	LinkError     = "error"
)

var (
	linkResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metronome_link_resolutions_total",
		Help: "Audio link resolutions by outcome",
	}, []string{"outcome"}) // outcome=cache_hit|store_hit|generated|shared|error

	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metronome_generation_duration_seconds",
		Help:    "Latency of calls to the audio generation service",
		Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 20, 30},
	}, []string{"result"})

	generatedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metronome_generated_bytes_total",
		Help: "Bytes of audio received from the generation service",
	})

	sequenceBuilds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metronome_sequence_build_duration_seconds",
		Help:    "Time to resolve every segment of a sequence",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
)

func RecordLinkResolution(outcome string) {
	switch outcome {
	case LinkCacheHit, LinkStoreHit, LinkGenerated, LinkShared, LinkError:
	default:
		outcome = LinkError
	}
	linkResolutions.WithLabelValues(outcome).Inc()
}

// ObserveGeneration records one call to the generation service.
func ObserveGeneration(d time.Duration, bytes int, err error) {
	result := resultLabel(err)
	generationDuration.WithLabelValues(result).Observe(d.Seconds())
	if err == nil && bytes > 0 {
		generatedBytes.Add(float64(bytes))
	}
}

func ObserveSequenceBuild(d time.Duration, err error) {
	sequenceBuilds.WithLabelValues(resultLabel(err)).Observe(d.Seconds())
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
