// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package metrics exposes Prometheus metrics for federated source calls and
// Linked Data dereferencing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ontodia"

// Metrics holds the collectors of one process. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	sourceCalls    *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	fetchAttempts  *prometheus.CounterVec
	elementChecks  *prometheus.CounterVec
}

// New creates the collectors and registers them, with the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sourceCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "federation",
				Name:      "source_calls_total",
				Help:      "Total number of calls made to federated data sources",
			},
			[]string{"source", "operation", "status"},
		),
		sourceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "federation",
				Name:      "source_call_duration_seconds",
				Help:      "Duration of calls made to federated data sources",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source", "operation"},
		),
		fetchAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dereference",
				Name:      "fetch_attempts_total",
				Help:      "Dereference fetch attempts by media type and outcome",
			},
			[]string{"mime", "outcome"},
		),
		elementChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dereference",
				Name:      "element_checks_total",
				Help:      "Element residency checks by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.sourceCalls,
		m.sourceDuration,
		m.fetchAttempts,
		m.elementChecks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveSourceCall records one call to a federated source.
func (m *Metrics) ObserveSourceCall(source, operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.sourceCalls.WithLabelValues(source, operation, status).Inc()
	m.sourceDuration.WithLabelValues(source, operation).Observe(elapsed.Seconds())
}

// FetchAttempt records one dereference attempt for a media type.
func (m *Metrics) FetchAttempt(mime, outcome string) {
	if m == nil {
		return
	}
	m.fetchAttempts.WithLabelValues(mime, outcome).Inc()
}

// ElementCheck records the outcome of one element residency check.
func (m *Metrics) ElementCheck(outcome string) {
	if m == nil {
		return
	}
	m.elementChecks.WithLabelValues(outcome).Inc()
}
