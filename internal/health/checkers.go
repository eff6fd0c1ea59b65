// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"time"

	"github.com/ManuGH/metronome/internal/resilience"
)

// DefaultCheckTimeout bounds a single ping.
const DefaultCheckTimeout = 2 * time.Second

// PingFunc probes a dependency.
type PingFunc func(ctx context.Context) error

// PingChecker reports a dependency as unhealthy when its ping fails, or as
// degraded when the dependency is optional.
type PingChecker struct {
	name     string
	ping     PingFunc
	optional bool
	timeout  time.Duration
}

// NewPingChecker creates a checker for a required dependency.
func NewPingChecker(name string, ping PingFunc) *PingChecker {
	return &PingChecker{name: name, ping: ping, timeout: DefaultCheckTimeout}
}

// Optional marks the dependency as non-critical: failures degrade instead
// of failing readiness.
func (c *PingChecker) Optional() *PingChecker {
	c.optional = true
	return c
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.ping(ctx); err != nil {
		status := StatusUnhealthy
		if c.optional {
			status = StatusDegraded
		}
		return CheckResult{Status: status, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy}
}

// BreakerChecker reports an open circuit breaker as degraded.
type BreakerChecker struct {
	cb *resilience.CircuitBreaker
}

func NewBreakerChecker(cb *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{cb: cb}
}

func (c *BreakerChecker) Name() string { return "breaker_" + c.cb.Name() }

func (c *BreakerChecker) Check(context.Context) CheckResult {
	st := c.cb.State()
	if st == resilience.StateOpen {
		return CheckResult{Status: StatusDegraded, Message: "circuit open"}
	}
	return CheckResult{Status: StatusHealthy, Message: string(st)}
}
