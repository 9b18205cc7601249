// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package federation

import (
	"sync"
	"time"

	"github.com/asanchez75/ontodia/pkg/health"
)

// HealthTracker records the outcome of every call made to one source.
// A source is available until a call fails and becomes available again
// after its next successful call.
type HealthTracker struct {
	mu           sync.RWMutex
	source       string
	calls        int64
	failureCount int64
	lastErr      string
	failedAt     time.Time
	succeededAt  time.Time
	lastCallOK   bool
	nowFunc      func() time.Time // for testing
}

// NewHealthTracker creates a tracker for the named source that starts
// available.
func NewHealthTracker(source string) *HealthTracker {
	return &HealthTracker{
		source:     source,
		lastCallOK: true,
		nowFunc:    time.Now,
	}
}

// RecordSuccess marks the source as available.
func (h *HealthTracker) RecordSuccess() {
	h.mu.Lock()
	h.calls++
	h.lastCallOK = true
	h.succeededAt = h.nowFunc()
	h.mu.Unlock()
}

// RecordFailure marks the source as unavailable and remembers err.
func (h *HealthTracker) RecordFailure(err error) {
	h.mu.Lock()
	h.calls++
	h.failureCount++
	h.lastCallOK = false
	h.failedAt = h.nowFunc()
	if err != nil {
		h.lastErr = err.Error()
	}
	h.mu.Unlock()
}

// IsHealthy reports whether the last call to the source succeeded.
func (h *HealthTracker) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastCallOK
}

// SetNowFunc overrides the time source (for testing).
func (h *HealthTracker) SetNowFunc(fn func() time.Time) {
	h.mu.Lock()
	h.nowFunc = fn
	h.mu.Unlock()
}

// HealthMetrics returns a point-in-time snapshot of the tracker's state. The
// returned struct holds no references to internal tracker state.
func (h *HealthTracker) HealthMetrics() health.Metrics {
	h.mu.RLock()
	defer h.mu.RUnlock()

	m := health.Metrics{
		Source:       h.source,
		Calls:        h.calls,
		FailureCount: h.failureCount,
		LastError:    h.lastErr,
		Available:    h.lastCallOK,
	}
	if h.failureCount > 0 {
		t := h.failedAt
		m.LastFailureAt = &t
	}
	if !h.succeededAt.IsZero() {
		t := h.succeededAt
		m.LastSuccessAt = &t
	}
	return m
}
