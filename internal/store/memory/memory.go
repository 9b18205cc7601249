// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package memory provides an in-process triple store indexed by subject,
// predicate and object.
package memory

import (
	"context"
	"sync"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/internal/store"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// Compile-time interface check.
var _ store.TripleStore = (*Store)(nil)

func init() {
	store.RegisterBackend("memory", func(store.StorageConfig) (store.TripleStore, error) {
		return New(), nil
	})
}

type entry struct {
	triple rdf.Triple
	graph  string
}

// Store keeps every triple once, in insertion order, with position lists
// per subject, predicate and object value.
type Store struct {
	mu          sync.RWMutex
	entries     []entry
	seen        map[rdf.Triple]struct{}
	bySubject   map[string][]int
	byPredicate map[string][]int
	byObject    map[string][]int
	closed      bool
}

func New() *Store {
	return &Store{
		seen:        make(map[rdf.Triple]struct{}),
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		byObject:    make(map[string][]int),
	}
}

func (s *Store) Add(_ context.Context, graph string, triples []rdf.Triple) (int, error) {
	for _, t := range triples {
		if err := store.ValidateTriple(t); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ontoerr.Wrap(store.ErrClosed, ontoerr.CodeStoreClosed, "adding triples")
	}

	added := 0
	for _, t := range triples {
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		pos := len(s.entries)
		s.entries = append(s.entries, entry{triple: t, graph: graph})
		s.bySubject[t.Subject.Value] = append(s.bySubject[t.Subject.Value], pos)
		s.byPredicate[t.Predicate.Value] = append(s.byPredicate[t.Predicate.Value], pos)
		s.byObject[t.Object.Value] = append(s.byObject[t.Object.Value], pos)
		added++
	}
	return added, nil
}

func (s *Store) Match(_ context.Context, pattern rdf.Pattern) ([]rdf.Triple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ontoerr.Wrap(store.ErrClosed, ontoerr.CodeStoreClosed, "matching triples")
	}

	var out []rdf.Triple
	visit := func(pos int) bool {
		t := s.entries[pos].triple
		if !pattern.Matches(t) {
			return true
		}
		out = append(out, t)
		return pattern.Limit <= 0 || len(out) < pattern.Limit
	}

	candidates, indexed := s.candidates(pattern)
	if !indexed {
		for pos := range s.entries {
			if !visit(pos) {
				break
			}
		}
		return out, nil
	}
	for _, pos := range candidates {
		if !visit(pos) {
			break
		}
	}
	return out, nil
}

// candidates returns the shortest position list among the bound pattern
// terms. The boolean is false when no term is bound.
func (s *Store) candidates(p rdf.Pattern) ([]int, bool) {
	var (
		best  []int
		found bool
	)
	consider := func(value string, index map[string][]int) {
		if value == "" {
			return
		}
		list := index[value]
		if !found || len(list) < len(best) {
			best, found = list, true
		}
	}
	consider(p.Subject, s.bySubject)
	consider(p.Predicate, s.byPredicate)
	consider(p.Object, s.byObject)
	return best, found
}

// GraphOf reports the graph a triple was first added to.
func (s *Store) GraphOf(t rdf.Triple) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.seen[t]; !ok {
		return "", false
	}
	for _, pos := range s.bySubject[t.Subject.Value] {
		if s.entries[pos].triple == t {
			return s.entries[pos].graph, true
		}
	}
	return "", false
}

func (s *Store) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
