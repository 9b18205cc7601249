// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package rdfsource

import (
	"context"
	"strings"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/pkg/graph"
)

// ClassTree builds the rdfs:subClassOf hierarchy of every known class.
// A class with several parents is nested under each of them; classes caught
// in a cycle with no root are promoted to the top level.
func (s *Source) ClassTree(ctx context.Context) ([]graph.ClassModel, error) {
	classes := newOrderedSet()
	for _, classType := range []string{graph.RDFSClass, graph.OWLClass} {
		triples, err := s.store.Match(ctx, rdf.Pattern{Predicate: graph.RDFType, Object: classType})
		if err != nil {
			return nil, err
		}
		for _, t := range triples {
			classes.add(t.Subject.Value)
		}
	}

	typed, err := s.store.Match(ctx, rdf.Pattern{Predicate: graph.RDFType})
	if err != nil {
		return nil, err
	}
	for _, t := range typed {
		if t.Object.IsResource() && !isVocabularyTerm(t.Object.Value) {
			classes.add(t.Object.Value)
		}
	}

	subClassOf, err := s.store.Match(ctx, rdf.Pattern{Predicate: graph.RDFSSubClassOf})
	if err != nil {
		return nil, err
	}
	children := make(map[string][]string)
	linked := make(map[[2]string]bool)
	for _, t := range subClassOf {
		if !t.Object.IsResource() {
			continue
		}
		child, parent := t.Subject.Value, t.Object.Value
		classes.add(child)
		classes.add(parent)
		if child == parent || linked[[2]string{parent, child}] {
			continue
		}
		linked[[2]string{parent, child}] = true
		children[parent] = append(children[parent], child)
	}

	nodes := make(map[string]graph.ClassModel, len(classes.items))
	for _, id := range classes.items {
		label, err := s.schemaLabel(ctx, id)
		if err != nil {
			return nil, err
		}
		nodes[id] = graph.ClassModel{ID: id, Label: label, Count: graph.IntPtr(s.store.TypeCount(id))}
	}
	return graph.BuildForest(classes.items, nodes, children), nil
}

// ClassInfo describes the requested classes without their children.
func (s *Source) ClassInfo(ctx context.Context, params graph.ClassInfoParams) ([]graph.ClassModel, error) {
	out := make([]graph.ClassModel, 0, len(params.ClassIDs))
	seen := newOrderedSet()
	for _, id := range params.ClassIDs {
		if !seen.add(id) {
			continue
		}
		label, err := s.schemaLabel(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, graph.ClassModel{
			ID:       id,
			Label:    label,
			Count:    graph.IntPtr(s.store.TypeCount(id)),
			Children: []graph.ClassModel{},
		})
	}
	return out, nil
}

// PropertyInfo labels the requested datatype properties.
func (s *Source) PropertyInfo(ctx context.Context, params graph.PropertyInfoParams) (map[string]graph.PropertyModel, error) {
	out := make(map[string]graph.PropertyModel, len(params.PropertyIDs))
	for _, id := range params.PropertyIDs {
		label, err := s.schemaLabel(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = graph.PropertyModel{ID: id, Label: label}
	}
	return out, nil
}

// LinkTypes lists declared object properties followed by every other
// predicate that links two resources. rdf:type is reported through element
// types instead.
func (s *Source) LinkTypes(ctx context.Context) ([]graph.LinkType, error) {
	ids := newOrderedSet()
	for _, propType := range []string{graph.RDFProperty, graph.OWLObjectProp} {
		declared, err := s.store.Match(ctx, rdf.Pattern{Predicate: graph.RDFType, Object: propType})
		if err != nil {
			return nil, err
		}
		for _, t := range declared {
			ids.add(t.Subject.Value)
		}
	}

	all, err := s.store.Match(ctx, rdf.Pattern{})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range all {
		if !isLink(t) {
			continue
		}
		ids.add(t.Predicate.Value)
		counts[t.Predicate.Value]++
	}

	out := make([]graph.LinkType, 0, len(ids.items))
	for _, id := range ids.items {
		label, err := s.schemaLabel(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, graph.LinkType{ID: id, Label: label, Count: counts[id]})
	}
	return out, nil
}

// LinkTypesInfo describes the requested link types with their usage count.
func (s *Source) LinkTypesInfo(ctx context.Context, params graph.LinkTypesInfoParams) ([]graph.LinkType, error) {
	out := make([]graph.LinkType, 0, len(params.LinkTypeIDs))
	seen := newOrderedSet()
	for _, id := range params.LinkTypeIDs {
		if !seen.add(id) {
			continue
		}
		label, err := s.schemaLabel(ctx, id)
		if err != nil {
			return nil, err
		}
		uses, err := s.store.Match(ctx, rdf.Pattern{Predicate: id})
		if err != nil {
			return nil, err
		}
		count := 0
		for _, t := range uses {
			if isLink(t) {
				count++
			}
		}
		out = append(out, graph.LinkType{ID: id, Label: label, Count: count})
	}
	return out, nil
}

// isVocabularyTerm reports whether id belongs to the RDF, RDFS or OWL
// vocabularies, whose terms describe schema rather than data classes.
func isVocabularyTerm(id string) bool {
	return strings.HasPrefix(id, graph.NSRDF) || strings.HasPrefix(id, graph.NSRDFS) || strings.HasPrefix(id, graph.NSOWL)
}

// isLink reports whether t connects two resources through a predicate other
// than rdf:type.
func isLink(t rdf.Triple) bool {
	return t.Object.IsResource() && t.Predicate.Value != graph.RDFType
}
