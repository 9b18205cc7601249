// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package memory_test

import (
	"context"
	"testing"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/internal/store"
	"github.com/asanchez75/ontodia/internal/store/memory"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice  = rdf.NewIRI("http://example.org/alice")
	bob    = rdf.NewIRI("http://example.org/bob")
	knows  = rdf.NewIRI("http://example.org/knows")
	typ    = rdf.NewIRI(graph.RDFType)
	person = rdf.NewIRI("http://example.org/Person")
)

func TestStore_AddAndMatch(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	added, err := s.Add(ctx, "doc1", []rdf.Triple{
		rdf.NewTriple(alice, typ, person),
		rdf.NewTriple(bob, typ, person),
		rdf.NewTriple(alice, knows, bob),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = s.Add(ctx, "doc2", []rdf.Triple{rdf.NewTriple(alice, knows, bob)})
	require.NoError(t, err)
	assert.Zero(t, added, "duplicate triples across graphs are stored once")

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := s.Match(ctx, rdf.Pattern{Predicate: graph.RDFType, Object: person.Value})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, alice, got[0].Subject, "results keep insertion order")
	assert.Equal(t, bob, got[1].Subject)

	got, err = s.Match(ctx, rdf.Pattern{Subject: alice.Value, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Match(ctx, rdf.Pattern{})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	graphName, ok := s.GraphOf(rdf.NewTriple(alice, knows, bob))
	assert.True(t, ok)
	assert.Equal(t, "doc1", graphName)
}

func TestStore_RejectsLiteralSubject(t *testing.T) {
	s := memory.New()
	_, err := s.Add(context.Background(), "", []rdf.Triple{
		rdf.NewTriple(rdf.NewLiteral("x", "", ""), knows, bob),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestStore_ClosedStore(t *testing.T) {
	s := memory.New()
	require.NoError(t, s.Close())

	_, err := s.Match(context.Background(), rdf.Pattern{})
	require.Error(t, err)
	assert.True(t, ontoerr.HasCode(err, ontoerr.CodeStoreClosed))
}

func TestFactory_DefaultBackendIsMemory(t *testing.T) {
	ts, err := store.NewTripleStore(store.StorageConfig{})
	require.NoError(t, err)
	defer func() { _ = ts.Close() }()
	assert.IsType(t, &memory.Store{}, ts)
}

func TestFactory_UnknownBackend(t *testing.T) {
	_, err := store.NewTripleStore(store.StorageConfig{Backend: "unknown"})
	require.Error(t, err)
	assert.True(t, ontoerr.HasCode(err, ontoerr.CodeStoreBackendUnsupported))
	assert.Equal(t, "unknown", ontoerr.FieldsOf(err)["backend"])
}
