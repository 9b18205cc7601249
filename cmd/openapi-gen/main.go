// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asanchez75/ontodia/internal/cacheable"
	"github.com/asanchez75/ontodia/internal/rdfsource"
	"github.com/asanchez75/ontodia/internal/server"
	"github.com/asanchez75/ontodia/internal/store/memory"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

func main() {
	spec, err := generateSpec()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	outPath := "api/openapi/spec.json"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output dir: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, spec, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing spec: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OpenAPI document written to %s\n", outPath)
}

// generateSpec creates a server with all routes registered and extracts the
// OpenAPI document that huma generates from the Go types. An empty
// in-memory source backs the routes; handlers are never invoked.
func generateSpec() ([]byte, error) {
	src := rdfsource.New(cacheable.New(memory.New()))
	svc, err := server.NewServices(src, nil, nil)
	if err != nil {
		return nil, err
	}

	srv, err := server.New(server.Config{
		ListenAddr: "127.0.0.1:0",
		Services:   svc,
		Proxy:      server.NewLODProxy(0),
	})
	if err != nil {
		return nil, ontoerr.Errorf(ontoerr.CodeCLISetupFailure, "creating server: %w", err)
	}

	return json.MarshalIndent(srv.API().OpenAPI(), "", "  ")
}
