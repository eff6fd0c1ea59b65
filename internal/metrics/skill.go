// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	skillEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metronome_skill_events_total",
		Help: "Handled skill events by kind and error class (ok on success)",
	}, []string{"kind", "class"})

	skillEventDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metronome_skill_event_duration_seconds",
		Help:    "Time spent handling a skill event, including state persistence",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metronome_store_operations_total",
		Help: "Profile and session store operations by result",
	}, []string{"store", "op", "result"})

	configReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metronome_config_reloads_total",
		Help: "Configuration file reloads by result",
	}, []string{"result"})
)

// RecordSkillEvent counts one dispatched event. class is empty on success.
func RecordSkillEvent(kind, class string, d time.Duration) {
	if class == "" {
		class = "ok"
	}
	skillEvents.WithLabelValues(kind, class).Inc()
	skillEventDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func RecordStoreOperation(store, op string, err error) {
	storeOperations.WithLabelValues(store, op, resultLabel(err)).Inc()
}

func RecordConfigReload(err error) {
	configReloads.WithLabelValues(resultLabel(err)).Inc()
}
