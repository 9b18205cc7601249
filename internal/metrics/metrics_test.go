// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asanchez75/ontodia/internal/cacheable"
	"github.com/asanchez75/ontodia/internal/federation"
	"github.com/asanchez75/ontodia/internal/metrics"
)

// Compile-time interface checks.
var (
	_ federation.Recorder = (*metrics.Metrics)(nil)
	_ cacheable.Recorder  = (*metrics.Metrics)(nil)
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveSourceCall("a", "classTree", time.Millisecond, nil)
		m.FetchAttempt("text/turtle", cacheable.FetchOK)
		m.ElementCheck(cacheable.CheckIndexed)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveSourceCall("wiki", federation.OpClassTree, 20*time.Millisecond, nil)
	m.ObserveSourceCall("wiki", federation.OpClassTree, 5*time.Millisecond, errors.New("down"))
	m.FetchAttempt("application/rdf+xml", cacheable.FetchFailed)
	m.FetchAttempt("text/turtle", cacheable.FetchOK)
	m.ElementCheck(cacheable.CheckDereferenced)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `ontodia_federation_source_calls_total{operation="classTree",source="wiki",status="ok"} 1`)
	assert.Contains(t, text, `ontodia_federation_source_calls_total{operation="classTree",source="wiki",status="error"} 1`)
	assert.Contains(t, text, `ontodia_dereference_fetch_attempts_total{mime="text/turtle",outcome="ok"} 1`)
	assert.Contains(t, text, "ontodia_dereference_element_checks_total")
	assert.Contains(t, text, "go_goroutines")
}

func TestMetrics_Counts(t *testing.T) {
	m := metrics.New()
	for range 3 {
		m.ElementCheck(cacheable.CheckIndexed)
	}

	count, err := testutil.GatherAndCount(m.Registry(), "ontodia_dereference_element_checks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one label combination")
}
