// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package rdfsource

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/pkg/graph"
)

var imagePredicates = []string{graph.FOAFImg, graph.FOAFDepiction, graph.SchemaImage}

// ElementInfo checks every requested element, dereferencing unknown ones
// when the store fetches, and describes those that are resident.
func (s *Source) ElementInfo(ctx context.Context, params graph.ElementInfoParams) (map[string]graph.ElementModel, error) {
	ids := newOrderedSet()
	for _, id := range params.ElementIDs {
		ids.add(id)
	}

	var (
		mu       sync.Mutex
		resident = make(map[string]bool, len(ids.items))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, id := range ids.items {
		g.Go(func() error {
			ok, err := s.store.CheckElement(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			resident[id] = ok
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]graph.ElementModel, len(ids.items))
	for _, id := range ids.items {
		if !resident[id] {
			s.logger.Debug("element not available", slog.String("id", id))
			continue
		}
		el, err := s.element(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = el
	}
	return out, nil
}

func (s *Source) element(ctx context.Context, id string) (graph.ElementModel, error) {
	el := graph.ElementModel{
		ID:         id,
		Types:      []string{},
		Properties: map[string]graph.Property{},
	}

	types, err := s.store.Match(ctx, rdf.Pattern{Subject: id, Predicate: graph.RDFType})
	if err != nil {
		return el, err
	}
	seenTypes := newOrderedSet()
	for _, t := range types {
		if t.Object.IsResource() && seenTypes.add(t.Object.Value) {
			el.Types = append(el.Types, t.Object.Value)
		}
	}

	if el.Label, err = s.labelOf(ctx, id); err != nil {
		return el, err
	}

	about, err := s.store.Match(ctx, rdf.Pattern{Subject: id})
	if err != nil {
		return el, err
	}
	for _, pred := range imagePredicates {
		for _, t := range about {
			if t.Predicate.Value == pred && t.Object.Kind != rdf.KindBlank {
				el.Image = t.Object.Value
				break
			}
		}
		if el.Image != "" {
			break
		}
	}
	for _, t := range about {
		if !t.Object.IsLiteral() || t.Predicate.Value == graph.RDFSLabel {
			continue
		}
		prop, ok := el.Properties[t.Predicate.Value]
		if !ok {
			prop = graph.Property{Type: t.Object.Datatype}
		}
		prop.Values = append(prop.Values, localized(t.Object))
		el.Properties[t.Predicate.Value] = prop
	}
	return el, nil
}

// LinksInfo returns the links whose two ends are both among ElementIDs,
// restricted to LinkTypeIDs when given.
func (s *Source) LinksInfo(ctx context.Context, params graph.LinksInfoParams) ([]graph.LinkModel, error) {
	ids := newOrderedSet()
	for _, id := range params.ElementIDs {
		ids.add(id)
	}
	var allowed *orderedSet
	if len(params.LinkTypeIDs) > 0 {
		allowed = newOrderedSet()
		for _, id := range params.LinkTypeIDs {
			allowed.add(id)
		}
	}

	out := []graph.LinkModel{}
	seen := make(map[[3]string]struct{})
	for _, source := range ids.items {
		triples, err := s.store.Match(ctx, rdf.Pattern{Subject: source})
		if err != nil {
			return nil, err
		}
		for _, t := range triples {
			if !isLink(t) || !ids.has(t.Object.Value) {
				continue
			}
			if allowed != nil && !allowed.has(t.Predicate.Value) {
				continue
			}
			link := graph.LinkModel{SourceID: source, TargetID: t.Object.Value, LinkTypeID: t.Predicate.Value}
			if _, dup := seen[link.Key()]; dup {
				continue
			}
			seen[link.Key()] = struct{}{}
			out = append(out, link)
		}
	}
	return out, nil
}

// LinkTypesOf counts, per link type, the links leaving and entering the
// element.
func (s *Source) LinkTypesOf(ctx context.Context, params graph.LinkTypesOfParams) ([]graph.LinkCount, error) {
	order := newOrderedSet()
	counts := make(map[string]*graph.LinkCount)
	bump := func(pred string, out bool) {
		c, ok := counts[pred]
		if !ok {
			order.add(pred)
			c = &graph.LinkCount{ID: pred}
			counts[pred] = c
		}
		if out {
			c.OutCount++
		} else {
			c.InCount++
		}
	}

	outgoing, err := s.store.Match(ctx, rdf.Pattern{Subject: params.ElementID})
	if err != nil {
		return nil, err
	}
	for _, t := range outgoing {
		if isLink(t) {
			bump(t.Predicate.Value, true)
		}
	}

	incoming, err := s.store.Match(ctx, rdf.Pattern{Object: params.ElementID})
	if err != nil {
		return nil, err
	}
	for _, t := range incoming {
		if isLink(t) {
			bump(t.Predicate.Value, false)
		}
	}

	out := make([]graph.LinkCount, 0, len(order.items))
	for _, id := range order.items {
		out = append(out, *counts[id])
	}
	return out, nil
}

// LinkElements lists the neighbours of an element across one link type.
func (s *Source) LinkElements(ctx context.Context, params graph.LinkElementsParams) (map[string]graph.ElementModel, error) {
	return s.Filter(ctx, params.AsFilter())
}

// Filter selects elements by type, by a reference element (optionally
// through one link type) or by label text, then pages the named resources
// that matched. Text also narrows the other modes.
func (s *Source) Filter(ctx context.Context, params graph.FilterParams) (map[string]graph.ElementModel, error) {
	candidates, err := s.filterCandidates(ctx, params)
	if err != nil {
		return nil, err
	}

	var page []string
	i := 0
	for _, id := range candidates {
		if params.Text != "" && params.Mode() != graph.FilterByText {
			ok, err := s.labelContains(ctx, id, params)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		if params.InPage(i) {
			page = append(page, id)
		}
		i++
	}
	if len(page) == 0 {
		return map[string]graph.ElementModel{}, nil
	}
	return s.ElementInfo(ctx, graph.ElementInfoParams{ElementIDs: page})
}

func (s *Source) filterCandidates(ctx context.Context, params graph.FilterParams) ([]string, error) {
	found := newOrderedSet()
	addIRI := func(t rdf.Term) {
		if t.IsIRI() {
			found.add(t.Value)
		}
	}

	switch params.Mode() {
	case graph.FilterByType:
		triples, err := s.store.Match(ctx, rdf.Pattern{Predicate: graph.RDFType, Object: params.ElementTypeID})
		if err != nil {
			return nil, err
		}
		for _, t := range triples {
			addIRI(t.Subject)
		}

	case graph.FilterByLink:
		if params.LinkDirection != graph.DirectionIn {
			triples, err := s.store.Match(ctx, rdf.Pattern{Subject: params.RefElementID, Predicate: params.RefElementLinkID})
			if err != nil {
				return nil, err
			}
			for _, t := range triples {
				addIRI(t.Object)
			}
		}
		if params.LinkDirection != graph.DirectionOut {
			triples, err := s.store.Match(ctx, rdf.Pattern{Predicate: params.RefElementLinkID, Object: params.RefElementID})
			if err != nil {
				return nil, err
			}
			for _, t := range triples {
				if t.Object.IsResource() {
					addIRI(t.Subject)
				}
			}
		}

	case graph.FilterByElement:
		found.add(params.RefElementID)
		outgoing, err := s.store.Match(ctx, rdf.Pattern{Subject: params.RefElementID})
		if err != nil {
			return nil, err
		}
		for _, t := range outgoing {
			if isLink(t) {
				addIRI(t.Object)
			}
		}
		incoming, err := s.store.Match(ctx, rdf.Pattern{Object: params.RefElementID})
		if err != nil {
			return nil, err
		}
		for _, t := range incoming {
			if isLink(t) {
				addIRI(t.Subject)
			}
		}

	case graph.FilterByText:
		labels, err := s.store.Match(ctx, rdf.Pattern{Predicate: graph.RDFSLabel})
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(params.Text)
		for _, t := range labels {
			if t.Object.IsLiteral() && langMatches(t.Object, params.LanguageCode) &&
				strings.Contains(strings.ToLower(t.Object.Value), needle) {
				addIRI(t.Subject)
			}
		}

	case graph.FilterEmpty:
	}
	return found.items, nil
}

func (s *Source) labelContains(ctx context.Context, id string, params graph.FilterParams) (bool, error) {
	labels, err := s.store.Match(ctx, rdf.Pattern{Subject: id, Predicate: graph.RDFSLabel})
	if err != nil {
		return false, err
	}
	needle := strings.ToLower(params.Text)
	for _, t := range labels {
		if langMatches(t.Object, params.LanguageCode) && strings.Contains(strings.ToLower(t.Object.Value), needle) {
			return true, nil
		}
	}
	return false, nil
}

func langMatches(t rdf.Term, lang string) bool {
	return lang == "" || strings.EqualFold(t.Lang, lang)
}
