// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asanchez75/ontodia/internal/rdf"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an RDF document and report its serialization",
		Long: "Parse an RDF document with the given media type, or detect it by trying " +
			"Turtle, RDF/XML and JSON-LD in turn, and print the media type and triple count.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args[0])
		},
	}

	cmd.Flags().String("type", "", "media type of the document (detected when empty)")
	cmd.Flags().Bool("ntriples", false, "print the parsed triples as N-Triples")

	return cmd
}

func (a *app) runParse(cmd *cobra.Command, path string) error {
	mime, _ := cmd.Flags().GetString("type")
	dump, _ := cmd.Flags().GetBool("ntriples")

	body, err := os.ReadFile(path)
	if err != nil {
		return ontoerr.Errorf(ontoerr.CodeCLIInputInvalid, "reading %s: %w", path, err)
	}

	parser := rdf.NewParser(rdf.WithParserLogger(a.logger))
	g, used, err := parser.ParseDetect(string(body), mime)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dump {
		for _, t := range g.Triples() {
			if _, err := fmt.Fprintln(out, t.String()); err != nil {
				return err
			}
		}
		return nil
	}
	_, err = fmt.Fprintf(out, "%s: %d triples (%s)\n", path, g.Len(), used)
	return err
}
