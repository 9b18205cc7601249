// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package rdfsource implements graph.DataSource over a cacheable triple
// store.
package rdfsource

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/asanchez75/ontodia/internal/cacheable"
	"github.com/asanchez75/ontodia/internal/rdf"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
)

// Compile-time interface check.
var _ graph.DataSource = (*Source)(nil)

// Document is an RDF document loaded into the source at startup. An empty
// MIME lets the parser detect the serialization.
type Document struct {
	Content string
	MIME    string
	Graph   string
}

// Source answers graph queries from RDF data.
type Source struct {
	store       *cacheable.Store
	logger      *slog.Logger
	concurrency int
}

// Option configures a Source.
type Option func(*Source)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// WithCheckConcurrency bounds how many element checks run at once.
func WithCheckConcurrency(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func New(st *cacheable.Store, opts ...Option) *Source {
	s := &Source{
		store:       st,
		logger:      slog.Default(),
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying cacheable store.
func (s *Source) Store() *cacheable.Store {
	return s.store
}

// Load ingests docs. Documents that fail to parse are logged and skipped;
// Load fails only when every document failed.
func (s *Source) Load(ctx context.Context, docs ...Document) error {
	var (
		errs   []error
		loaded int
	)
	for i, doc := range docs {
		graphName := doc.Graph
		if graphName == "" {
			graphName = fmt.Sprintf("urn:ontodia:document:%d", i)
		}
		if err := s.store.ParseData(ctx, doc.Content, doc.MIME, graphName); err != nil {
			s.logger.Warn("skipping document",
				slog.String("graph", graphName),
				slog.String("mime", doc.MIME),
				slog.Any("error", err),
			)
			errs = append(errs, ontoerr.With(err, ontoerr.Field("graph", graphName)))
			continue
		}
		loaded++
	}
	if loaded == 0 && len(errs) > 0 {
		return ontoerr.Wrap(stderrors.Join(errs...), ontoerr.CodeSourceLoadFailure, "no document could be loaded")
	}
	return nil
}

// labelOf returns the rdfs:label literals of id, or nil when there are none.
func (s *Source) labelOf(ctx context.Context, id string) (graph.Label, error) {
	triples, err := s.store.Match(ctx, rdf.Pattern{Subject: id, Predicate: graph.RDFSLabel})
	if err != nil {
		return graph.Label{}, err
	}
	values := make([]graph.LocalizedString, 0, len(triples))
	for _, t := range triples {
		values = append(values, localized(t.Object))
	}
	return graph.NewLabel(values...), nil
}

// schemaLabel is labelOf with a fallback derived from the identifier, for
// classes and properties that often carry no label.
func (s *Source) schemaLabel(ctx context.Context, id string) (graph.Label, error) {
	label, err := s.labelOf(ctx, id)
	if err != nil || len(label.Values) > 0 {
		return label, err
	}
	return LabelFromID(id), nil
}

// LabelFromID uses the last path segment or fragment of id as its label.
func LabelFromID(id string) graph.Label {
	text := id
	if i := strings.LastIndex(text, "/"); i >= 0 {
		text = text[i+1:]
	}
	if i := strings.LastIndex(text, "#"); i >= 0 {
		text = text[i+1:]
	}
	return graph.Label{Values: []graph.LocalizedString{{Text: text}}}
}

func localized(t rdf.Term) graph.LocalizedString {
	return graph.LocalizedString{Text: t.Value, Lang: t.Lang}
}

// orderedSet keeps first-seen order of string keys.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (o *orderedSet) add(v string) bool {
	if _, ok := o.seen[v]; ok {
		return false
	}
	o.seen[v] = struct{}{}
	o.items = append(o.items, v)
	return true
}

func (o *orderedSet) has(v string) bool {
	_, ok := o.seen[v]
	return ok
}
