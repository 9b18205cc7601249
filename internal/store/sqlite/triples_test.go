// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package sqlite_test

import (
	"context"
	"testing"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/internal/store"
	"github.com/asanchez75/ontodia/internal/store/sqlite"
	"github.com/asanchez75/ontodia/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = rdf.NewIRI("http://example.org/alice")
	bob   = rdf.NewIRI("http://example.org/bob")
	knows = rdf.NewIRI("http://example.org/knows")
	label = rdf.NewIRI(graph.RDFSLabel)
)

func TestTripleStore_RoundTripsTerms(t *testing.T) {
	ctx := context.Background()
	ts, err := sqlite.NewTripleStore(testDBPath(t, "triples"))
	require.NoError(t, err)
	defer func() { _ = ts.Close() }()

	in := []rdf.Triple{
		rdf.NewTriple(alice, label, rdf.NewLiteral("Alice", "en", "")),
		rdf.NewTriple(alice, label, rdf.NewLiteral("Alice", "", "")),
		rdf.NewTriple(alice, knows, bob),
		rdf.NewTriple(rdf.NewBlank("b0"), knows, alice),
	}
	added, err := ts.Add(ctx, "http://example.org/doc", in)
	require.NoError(t, err)
	assert.Equal(t, 4, added)

	got, err := ts.Match(ctx, rdf.Pattern{})
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestTripleStore_DeduplicatesAcrossGraphs(t *testing.T) {
	ctx := context.Background()
	ts, err := sqlite.NewTripleStore(testDBPath(t, "dedupe"))
	require.NoError(t, err)
	defer func() { _ = ts.Close() }()

	triple := rdf.NewTriple(alice, knows, bob)
	_, err = ts.Add(ctx, "g1", []rdf.Triple{triple})
	require.NoError(t, err)
	added, err := ts.Add(ctx, "g2", []rdf.Triple{triple})
	require.NoError(t, err)
	assert.Zero(t, added)

	count, err := ts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	graphs, err := ts.Graphs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, graphs)
}

func TestTripleStore_MatchFilters(t *testing.T) {
	ctx := context.Background()
	ts, err := sqlite.NewTripleStore(testDBPath(t, "match"))
	require.NoError(t, err)
	defer func() { _ = ts.Close() }()

	_, err = ts.Add(ctx, "g", []rdf.Triple{
		rdf.NewTriple(alice, knows, bob),
		rdf.NewTriple(bob, knows, alice),
		rdf.NewTriple(alice, label, rdf.NewLiteral("Alice", "", "")),
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		pattern rdf.Pattern
		want    int
	}{
		{"subject", rdf.Pattern{Subject: alice.Value}, 2},
		{"predicate", rdf.Pattern{Predicate: knows.Value}, 2},
		{"object", rdf.Pattern{Object: alice.Value}, 1},
		{"limit", rdf.Pattern{Predicate: knows.Value, Limit: 1}, 1},
		{"none", rdf.Pattern{Subject: "http://example.org/nobody"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ts.Match(ctx, tt.pattern)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestTripleStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := testDBPath(t, "reopen")

	ts, err := sqlite.NewTripleStore(path)
	require.NoError(t, err)
	_, err = ts.Add(ctx, "g", []rdf.Triple{rdf.NewTriple(alice, knows, bob)})
	require.NoError(t, err)
	require.NoError(t, ts.Close())

	ts, err = sqlite.NewTripleStore(path)
	require.NoError(t, err)
	defer func() { _ = ts.Close() }()
	count, err := ts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFactory_SQLiteBackend(t *testing.T) {
	ts, err := store.NewTripleStore(store.StorageConfig{Backend: "sqlite", Path: testDBPath(t, "factory")})
	require.NoError(t, err)
	defer func() { _ = ts.Close() }()
	assert.IsType(t, &sqlite.TripleStore{}, ts)

	_, err = store.NewTripleStore(store.StorageConfig{Backend: "sqlite"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}
