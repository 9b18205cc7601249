// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package rdf

// Pattern selects triples by the value of their terms. An empty field matches
// anything. Limit caps the number of results when positive.
type Pattern struct {
	Subject   string
	Predicate string
	Object    string
	Limit     int
}

// Matches reports whether t satisfies p, ignoring Limit.
func (p Pattern) Matches(t Triple) bool {
	if p.Subject != "" && t.Subject.Value != p.Subject {
		return false
	}
	if p.Predicate != "" && t.Predicate.Value != p.Predicate {
		return false
	}
	if p.Object != "" && t.Object.Value != p.Object {
		return false
	}
	return true
}

// Graph is an insertion-ordered set of triples. It is not safe for
// concurrent mutation.
type Graph struct {
	triples []Triple
	seen    map[Triple]struct{}
}

func NewGraph(triples ...Triple) *Graph {
	g := &Graph{seen: make(map[Triple]struct{}, len(triples))}
	g.Add(triples...)
	return g
}

// Add inserts triples not already present and returns how many were new.
func (g *Graph) Add(triples ...Triple) int {
	added := 0
	for _, t := range triples {
		if _, ok := g.seen[t]; ok {
			continue
		}
		g.seen[t] = struct{}{}
		g.triples = append(g.triples, t)
		added++
	}
	return added
}

func (g *Graph) Has(t Triple) bool {
	_, ok := g.seen[t]
	return ok
}

func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of the triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Match returns the triples satisfying p in insertion order.
func (g *Graph) Match(p Pattern) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if !p.Matches(t) {
			continue
		}
		out = append(out, t)
		if p.Limit > 0 && len(out) >= p.Limit {
			break
		}
	}
	return out
}

// Equal reports whether both graphs hold the same set of triples.
func (g *Graph) Equal(other *Graph) bool {
	if g.Len() != other.Len() {
		return false
	}
	for t := range g.seen {
		if !other.Has(t) {
			return false
		}
	}
	return true
}
