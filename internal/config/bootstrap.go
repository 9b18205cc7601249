// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package config

import (
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

//go:embed ontodia.yaml.default
var DefaultConfigYAML []byte

// DefaultConfigPath returns ~/.config/ontodia/ontodia.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ontoerr.Errorf(ontoerr.CodeConfigLoadReadFailure, "resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ontodia", "ontodia.yaml"), nil
}

// WriteDefault writes the default commented config to path unless a file
// already exists there. It reports whether the file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, ontoerr.Errorf(ontoerr.CodeConfigLoadReadFailure, "creating config directory: %w", err)
	}
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		return false, ontoerr.Errorf(ontoerr.CodeConfigLoadReadFailure, "writing config %s: %w", path, err)
	}

	slog.Info("created default config", "path", path)
	return true, nil
}
