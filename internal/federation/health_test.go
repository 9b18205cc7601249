// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package federation_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asanchez75/ontodia/internal/federation"
)

func TestHealthTracker_StartsHealthy(t *testing.T) {
	h := federation.NewHealthTracker("wiki")
	assert.True(t, h.IsHealthy())

	m := h.HealthMetrics()
	assert.Equal(t, "wiki", m.Source)
	assert.True(t, m.Available)
	assert.Zero(t, m.Calls)
	assert.Nil(t, m.LastFailureAt)
	assert.Nil(t, m.LastSuccessAt)
}

func TestHealthTracker_FailureThenSuccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := federation.NewHealthTracker("wiki")
	h.SetNowFunc(func() time.Time { return now })

	h.RecordFailure(errors.New("timeout"))
	assert.False(t, h.IsHealthy())

	m := h.HealthMetrics()
	assert.Equal(t, int64(1), m.FailureCount)
	assert.Equal(t, "timeout", m.LastError)
	require.NotNil(t, m.LastFailureAt)
	assert.Equal(t, now, *m.LastFailureAt)

	h.SetNowFunc(func() time.Time { return now.Add(time.Minute) })
	h.RecordSuccess()
	assert.True(t, h.IsHealthy())

	m = h.HealthMetrics()
	assert.Equal(t, int64(2), m.Calls)
	assert.Equal(t, int64(1), m.FailureCount, "failures are cumulative")
	assert.Equal(t, "timeout", m.LastError)
	require.NotNil(t, m.LastSuccessAt)
	assert.Equal(t, now.Add(time.Minute), *m.LastSuccessAt)
}

func TestHealthTracker_SnapshotIsDetached(t *testing.T) {
	h := federation.NewHealthTracker("wiki")
	h.RecordFailure(errors.New("first"))
	snapshot := h.HealthMetrics()

	h.RecordFailure(errors.New("second"))
	assert.Equal(t, int64(1), snapshot.FailureCount)
	assert.Equal(t, "first", snapshot.LastError)
}

func TestHealthTracker_MetricsJSON(t *testing.T) {
	h := federation.NewHealthTracker("wiki")
	h.RecordSuccess()

	raw, err := json.Marshal(h.HealthMetrics())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "wiki", decoded["source"])
	assert.Equal(t, true, decoded["available"])
	assert.NotContains(t, decoded, "last_failure_at")
	assert.NotContains(t, decoded, "last_error")
}
