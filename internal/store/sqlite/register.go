// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package sqlite

import (
	"github.com/asanchez75/ontodia/internal/store"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

func init() {
	store.RegisterBackend("sqlite", newTripleStore)
}

func newTripleStore(cfg store.StorageConfig) (store.TripleStore, error) {
	if cfg.Path == "" {
		return nil, ontoerr.Wrap(store.ErrInvalidInput, ontoerr.CodeStoreInvalidInput, "sqlite backend requires a database path")
	}
	return NewTripleStore(cfg.Path)
}
