// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package cacheable wraps a triple store with label and type indexes and an
// on-demand Linked Data dereference cache.
package cacheable

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/internal/store"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
)

// Fetcher retrieves the document at url, asking for the accept media type.
type Fetcher interface {
	Fetch(ctx context.Context, url, accept string) (string, error)
}

// Recorder receives dereference and element-check outcomes.
type Recorder interface {
	FetchAttempt(mime, outcome string)
	ElementCheck(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) FetchAttempt(string, string) {}
func (nopRecorder) ElementCheck(string)         {}

// Element check outcomes.
const (
	CheckDisabled     = "disabled"
	CheckIndexed      = "indexed"
	CheckLocal        = "local"
	CheckDereferenced = "dereferenced"
	CheckMissing      = "missing"
)

// Fetch attempt outcomes.
const (
	FetchOK         = "ok"
	FetchFailed     = "fetch_error"
	FetchParseError = "parse_error"
	FetchStoreError = "store_error"
)

// Store is a triple store that knows which subjects it holds and can pull
// missing ones from the web. Without a Fetcher every element is reported as
// resident and no network access happens.
type Store struct {
	backend  store.TripleStore
	parser   *rdf.Parser
	fetcher  Fetcher
	logger   *slog.Logger
	recorder Recorder

	ingestMu sync.Mutex
	idx      *index

	checks *flight[bool]
	derefs *flight[bool]
}

// Option configures a Store.
type Option func(*Store)

// WithFetcher enables dereferencing through f.
func WithFetcher(f Fetcher) Option {
	return func(s *Store) {
		s.fetcher = f
	}
}

func WithParser(p *rdf.Parser) Option {
	return func(s *Store) {
		s.parser = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

func New(backend store.TripleStore, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		logger:   slog.Default(),
		recorder: nopRecorder{},
		idx:      newIndex(),
		checks:   newFlight[bool](),
		derefs:   newFlight[bool](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = rdf.NewParser(rdf.WithParserLogger(s.logger))
	}
	return s
}

// Open creates a Store over a backend that may already hold triples and
// loads their labels and types into the indexes.
func Open(ctx context.Context, backend store.TripleStore, opts ...Option) (*Store, error) {
	s := New(backend, opts...)
	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Rebuild indexes the label and type triples already held by the backend.
// Triples that are indexed already are skipped.
func (s *Store) Rebuild(ctx context.Context) error {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	for _, predicate := range []string{graph.RDFSLabel, graph.RDFType} {
		triples, err := s.backend.Match(ctx, rdf.Pattern{Predicate: predicate})
		if err != nil {
			return ontoerr.With(err, ontoerr.Field("predicate", predicate))
		}
		s.idx.add(triples)
	}
	return nil
}

// Fetching reports whether the store dereferences unknown elements.
func (s *Store) Fetching() bool {
	return s.fetcher != nil
}

// Parser returns the parser used for ingestion.
func (s *Store) Parser() *rdf.Parser {
	return s.parser
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// ParseData parses body and ingests it into graphName. An empty mime lets
// the parser detect the serialization. Blank nodes are scoped to the
// document, so ingesting the same body into the same graph twice is a no-op.
func (s *Store) ParseData(ctx context.Context, body, mime, graphName string) error {
	g, err := s.parser.Parse(body, mime)
	if err != nil {
		return err
	}
	scope := uuid.NewSHA1(uuid.NameSpaceURL, []byte(graphName+"\n"+body)).String()
	return s.ingest(ctx, graphName, g, scope)
}

// Ingest adds an already parsed graph. Its blank nodes get a fresh scope.
func (s *Store) Ingest(ctx context.Context, graphName string, g *rdf.Graph) error {
	return s.ingest(ctx, graphName, g, uuid.NewString())
}

func (s *Store) ingest(ctx context.Context, graphName string, g *rdf.Graph, scope string) error {
	triples := scopeBlankNodes(g.Triples(), scope)

	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()
	if _, err := s.backend.Add(ctx, graphName, triples); err != nil {
		return err
	}
	s.idx.add(triples)
	return nil
}

func scopeBlankNodes(triples []rdf.Triple, scope string) []rdf.Triple {
	rename := func(t rdf.Term) rdf.Term {
		if t.IsBlank() {
			t.Value = scope + "_" + t.Value
		}
		return t
	}
	for i, t := range triples {
		triples[i] = rdf.NewTriple(rename(t.Subject), t.Predicate, rename(t.Object))
	}
	return triples
}

// CheckElement reports whether triples about id are available, fetching the
// document that defines id when needed. Concurrent checks of one id share a
// single computation and the outcome is remembered. Fetch failures are
// logged and reported as false; only backend failures return an error.
func (s *Store) CheckElement(ctx context.Context, id string) (bool, error) {
	if s.fetcher == nil {
		s.recorder.ElementCheck(CheckDisabled)
		return true, nil
	}
	if s.idx.known(id) {
		s.recorder.ElementCheck(CheckIndexed)
		return true, nil
	}

	return s.checks.do(ctx, id, func(ctx context.Context) (bool, error) {
		local, err := s.backend.Match(ctx, rdf.Pattern{Subject: id, Limit: 1})
		if err != nil {
			return false, err
		}
		if len(local) > 0 {
			s.recorder.ElementCheck(CheckLocal)
			return true, nil
		}

		raw, ok := DocumentURL(id)
		if !ok {
			s.recorder.ElementCheck(CheckMissing)
			return false, nil
		}
		if _, err := s.derefs.do(ctx, raw, func(ctx context.Context) (bool, error) {
			return s.dereference(ctx, raw), nil
		}); err != nil {
			return false, err
		}

		fetched, err := s.backend.Match(ctx, rdf.Pattern{Subject: id, Limit: 1})
		if err != nil {
			return false, err
		}
		if len(fetched) == 0 {
			s.recorder.ElementCheck(CheckMissing)
			return false, nil
		}
		s.recorder.ElementCheck(CheckDereferenced)
		return true, nil
	})
}

// Match answers label and type lookups for a single subject from the
// indexes and sends every other pattern to the backend.
func (s *Store) Match(ctx context.Context, pattern rdf.Pattern) ([]rdf.Triple, error) {
	if pattern.Subject != "" && pattern.Object == "" {
		switch pattern.Predicate {
		case graph.RDFSLabel:
			return limit(s.idx.labelsOf(pattern.Subject), pattern.Limit), nil
		case graph.RDFType:
			return limit(s.idx.typesOf(pattern.Subject), pattern.Limit), nil
		}
	}
	triples, err := s.backend.Match(ctx, pattern)
	if err != nil {
		return nil, ontoerr.With(err, ontoerr.Field("pattern", pattern))
	}
	return triples, nil
}

func limit(triples []rdf.Triple, n int) []rdf.Triple {
	if n > 0 && len(triples) > n {
		return triples[:n]
	}
	return triples
}

// TypeCount returns the number of distinct subjects typed id.
func (s *Store) TypeCount(id string) int {
	return s.idx.typeCount(id)
}

// Stats describes the cache state.
type Stats struct {
	Triples      int `json:"triples"`
	CheckedIDs   int `json:"checkedIds"`
	Dereferenced int `json:"dereferencedDocuments"`
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	n, err := s.backend.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Triples: n, CheckedIDs: s.checks.len(), Dereferenced: s.derefs.len()}, nil
}
