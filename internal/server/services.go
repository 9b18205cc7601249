// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package server

import (
	"net/http"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
	"github.com/asanchez75/ontodia/pkg/health"
)

// SourceReporter describes the sources behind the data source. A
// federation satisfies it.
type SourceReporter interface {
	Sources() []string
	Health() []health.Metrics
}

// Services holds dependencies injected into route handlers.
// Use NewServices constructor to ensure all required services are provided.
type Services struct {
	data    graph.DataSource
	sources SourceReporter // optional; nil = /api/v1/sources unavailable
	metrics http.Handler   // optional; nil = /metrics not mounted
}

// NewServices creates a Services instance with validation.
// Returns an error if the data source is nil.
func NewServices(data graph.DataSource, sources SourceReporter, metrics http.Handler) (*Services, error) {
	if data == nil {
		return nil, ontoerr.New(ontoerr.CodeServerConfigInvalid, "data source is required")
	}
	return &Services{
		data:    data,
		sources: sources,
		metrics: metrics,
	}, nil
}

// DataSource returns the data source answering graph queries.
func (s *Services) DataSource() graph.DataSource {
	return s.data
}
