// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, vec.WithLabelValues(labels...).Write(m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, vec.WithLabelValues(labels...).Write(m))
	return m.GetGauge().GetValue()
}

func TestRecordLinkResolution_NormalizesOutcome(t *testing.T) {
	before := counterValue(t, linkResolutions, LinkError)
	RecordLinkResolution("something-else")
	assert.Equal(t, before+1, counterValue(t, linkResolutions, LinkError))

	hits := counterValue(t, linkResolutions, LinkCacheHit)
	RecordLinkResolution(LinkCacheHit)
	assert.Equal(t, hits+1, counterValue(t, linkResolutions, LinkCacheHit))
}

func TestRecordSkillEvent_EmptyClassIsOK(t *testing.T) {
	before := counterValue(t, skillEvents, "play", "ok")
	RecordSkillEvent("play", "", time.Millisecond)
	assert.Equal(t, before+1, counterValue(t, skillEvents, "play", "ok"))
}

func TestSetBreakerState_OneHot(t *testing.T) {
	SetBreakerState("generator-test", BreakerOpen)
	assert.Equal(t, 1.0, gaugeValue(t, breakerState, "generator-test", BreakerOpen))
	assert.Equal(t, 0.0, gaugeValue(t, breakerState, "generator-test", BreakerClosed))
	assert.Equal(t, 0.0, gaugeValue(t, breakerState, "generator-test", BreakerHalfOpen))

	SetBreakerState("generator-test", BreakerHalfOpen)
	assert.Equal(t, 0.0, gaugeValue(t, breakerState, "generator-test", BreakerOpen))
	assert.Equal(t, 1.0, gaugeValue(t, breakerState, "generator-test", BreakerHalfOpen))
}

func TestRecordBreakerOpened(t *testing.T) {
	before := counterValue(t, breakerOpened, "generator-test", "trial_failed")
	RecordBreakerOpened("generator-test", "trial_failed")
	assert.Equal(t, before+1, counterValue(t, breakerOpened, "generator-test", "trial_failed"))
}

func TestRecordStoreOperation(t *testing.T) {
	before := counterValue(t, storeOperations, "profile", "save", "error")
	RecordStoreOperation("profile", "save", errors.New("disk full"))
	assert.Equal(t, before+1, counterValue(t, storeOperations, "profile", "save", "error"))
}

func TestObserveHTTPRequest_UnmatchedRoute(t *testing.T) {
	before := counterValue(t, httpRequests, "GET", "unmatched", "404")
	ObserveHTTPRequest("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, counterValue(t, httpRequests, "GET", "unmatched", "404"))
}

func TestRecordConfigReload(t *testing.T) {
	ok := counterValue(t, configReloads, "success")
	failed := counterValue(t, configReloads, "error")
	RecordConfigReload(nil)
	RecordConfigReload(errors.New("bad yaml"))
	assert.Equal(t, ok+1, counterValue(t, configReloads, "success"))
	assert.Equal(t, failed+1, counterValue(t, configReloads, "error"))
}
