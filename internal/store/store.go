// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package store

import (
	"context"

	"github.com/asanchez75/ontodia/internal/rdf"
)

// TripleStore persists triples grouped into named graphs. Queries run across
// every graph and return each distinct triple once, in insertion order.
type TripleStore interface {
	// Add inserts triples into graph and returns how many were not already
	// stored.
	Add(ctx context.Context, graph string, triples []rdf.Triple) (int, error)
	Match(ctx context.Context, pattern rdf.Pattern) ([]rdf.Triple, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
