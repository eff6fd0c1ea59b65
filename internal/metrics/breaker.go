// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Breaker states as reported on the breaker_state gauge.
const (
	BreakerClosed   = "closed"
	BreakerHalfOpen = "half-open"
	BreakerOpen     = "open"
)

var (
	// One series per state; the current one reads 1. An open generator
	// breaker means new tempos fail fast until the next trial render.
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "metronome_breaker_state",
		Help: "Current state of a breaker guarding clip generation (1 on the active state series)",
	}, []string{"breaker", "state"})

	breakerOpened = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metronome_breaker_opened_total",
		Help: "Times a breaker stopped sending clip renders, by cause",
	}, []string{"breaker", "cause"})
)

// SetBreakerState publishes state as the current state of the named breaker.
func SetBreakerState(breaker, state string) {
	for _, s := range [...]string{BreakerClosed, BreakerHalfOpen, BreakerOpen} {
		v := 0.0
		if s == state {
			v = 1
		}
		breakerState.WithLabelValues(breaker, s).Set(v)
	}
}

// RecordBreakerOpened counts a transition to open. cause is
// "threshold_exceeded" or "trial_failed".
func RecordBreakerOpened(breaker, cause string) {
	breakerOpened.WithLabelValues(breaker, cause).Inc()
}
