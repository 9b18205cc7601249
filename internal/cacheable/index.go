// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package cacheable

import (
	"sync"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/pkg/graph"
)

// index answers the label and type lookups without touching the backend.
type index struct {
	mu       sync.RWMutex
	seen     map[rdf.Triple]struct{}
	labelled map[string]struct{}
	labels   map[string][]rdf.Triple
	types    map[string][]rdf.Triple
	members  map[string]map[string]struct{}
}

func newIndex() *index {
	return &index{
		seen:     make(map[rdf.Triple]struct{}),
		labelled: make(map[string]struct{}),
		labels:   make(map[string][]rdf.Triple),
		types:    make(map[string][]rdf.Triple),
		members:  make(map[string]map[string]struct{}),
	}
}

// add records label and type triples. It must be called with the same
// triples that were written to the backend.
func (x *index) add(triples []rdf.Triple) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, t := range triples {
		switch t.Predicate.Value {
		case graph.RDFSLabel, graph.RDFType:
		default:
			continue
		}
		if _, ok := x.seen[t]; ok {
			continue
		}
		x.seen[t] = struct{}{}

		subject := t.Subject.Value
		if t.Predicate.Value == graph.RDFSLabel {
			x.labelled[subject] = struct{}{}
			if t.Object.IsLiteral() {
				x.labels[subject] = append(x.labels[subject], t)
			}
			continue
		}

		x.types[subject] = append(x.types[subject], t)
		set, ok := x.members[t.Object.Value]
		if !ok {
			set = make(map[string]struct{})
			x.members[t.Object.Value] = set
		}
		set[subject] = struct{}{}
	}
}

func (x *index) known(id string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if _, ok := x.labelled[id]; ok {
		return true
	}
	return len(x.types[id]) > 0
}

func (x *index) labelsOf(id string) []rdf.Triple {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]rdf.Triple(nil), x.labels[id]...)
}

func (x *index) typesOf(id string) []rdf.Triple {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]rdf.Triple(nil), x.types[id]...)
}

func (x *index) typeCount(id string) int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.members[id])
}
