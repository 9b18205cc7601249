// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package store

// StorageConfig controls which backend the store factory uses.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "memory" (default) or "sqlite".
	Path    string `mapstructure:"path"`    // Database file for persistent backends.
}
