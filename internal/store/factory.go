// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package store

import (
	"sort"
	"sync"

	"github.com/asanchez75/ontodia/internal/rdf"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// DefaultBackend is used when StorageConfig.Backend is empty.
const DefaultBackend = "memory"

// BackendFactory opens a triple store for the given configuration.
type BackendFactory func(cfg StorageConfig) (TripleStore, error)

var (
	factories   = map[string]BackendFactory{}
	factoriesMu sync.RWMutex
)

// RegisterBackend registers the factory for a named storage backend.
// Backend packages call this from init(). This function is goroutine-safe.
func RegisterBackend(name string, factory BackendFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveBackend returns the effective backend name, defaulting to "memory".
func resolveBackend(cfg StorageConfig) string {
	if cfg.Backend == "" {
		return DefaultBackend
	}
	return cfg.Backend
}

// NewTripleStore opens the configured backend.
func NewTripleStore(cfg StorageConfig) (TripleStore, error) {
	backend := resolveBackend(cfg)

	factoriesMu.RLock()
	factory, ok := factories[backend]
	factoriesMu.RUnlock()
	if !ok {
		return nil, ontoerr.New(ontoerr.CodeStoreBackendUnsupported, "unsupported storage backend",
			ontoerr.Field("backend", backend))
	}

	return factory(cfg)
}

// ValidateTriple rejects triples that no backend can store.
func ValidateTriple(t rdf.Triple) error {
	if !t.Subject.IsResource() {
		return ontoerr.Wrapf(ErrInvalidInput, ontoerr.CodeStoreInvalidInput, "subject %q is not a resource", t.Subject.Value)
	}
	if !t.Predicate.IsIRI() {
		return ontoerr.Wrapf(ErrInvalidInput, ontoerr.CodeStoreInvalidInput, "predicate %q is not an IRI", t.Predicate.Value)
	}
	if t.Object.Kind == 0 {
		return ontoerr.Wrapf(ErrInvalidInput, ontoerr.CodeStoreInvalidInput, "object of %q has no kind", t.Subject.Value)
	}
	return nil
}
