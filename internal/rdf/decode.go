// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package rdf

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	knakk "github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"
)

// Decoder turns a document body into triples.
type Decoder interface {
	Decode(body string) ([]Triple, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(body string) ([]Triple, error)

func (f DecoderFunc) Decode(body string) ([]Triple, error) {
	return f(body)
}

// TurtleDecoder reads Turtle and its N-Triples subset.
type TurtleDecoder struct{}

func (TurtleDecoder) Decode(body string) ([]Triple, error) {
	return decodeKnakk(body, knakk.Turtle)
}

// collectionPattern matches the container name the RDF/XML reader cannot
// handle. The rewrite is lossy and applies to the whole body, element names
// and character data alike.
var collectionPattern = regexp.MustCompile(`(?i)Collection`)

// RewriteCollections applies the RDF/XML pre-processing rewrite.
func RewriteCollections(body string) string {
	return collectionPattern.ReplaceAllLiteralString(body, "Collection1")
}

// RDFXMLDecoder reads RDF/XML after rewriting collection containers.
type RDFXMLDecoder struct{}

func (RDFXMLDecoder) Decode(body string) ([]Triple, error) {
	// The XML reader accepts documents without a root element as empty,
	// which would let any non-XML body pass as RDF/XML.
	if !strings.HasPrefix(strings.TrimLeft(body, " \t\r\n\uFEFF"), "<") {
		return nil, fmt.Errorf("rdf/xml: document does not start with an element")
	}
	return decodeKnakk(RewriteCollections(body), knakk.RDFXML)
}

func decodeKnakk(body string, format knakk.Format) (triples []Triple, err error) {
	defer func() {
		if r := recover(); r != nil {
			triples, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()

	dec := knakk.NewTripleDecoder(strings.NewReader(body), format)
	decoded, err := dec.DecodeAll()
	if err != nil {
		return nil, err
	}

	triples = make([]Triple, 0, len(decoded))
	for _, kt := range decoded {
		s, err := fromKnakk(kt.Subj)
		if err != nil {
			return nil, err
		}
		p, err := fromKnakk(kt.Pred)
		if err != nil {
			return nil, err
		}
		o, err := fromKnakk(kt.Obj)
		if err != nil {
			return nil, err
		}
		triples = append(triples, NewTriple(s, p, o))
	}
	return triples, nil
}

func fromKnakk(term knakk.Term) (Term, error) {
	switch v := term.(type) {
	case knakk.IRI:
		return NewIRI(v.String()), nil
	case knakk.Blank:
		return NewBlank(v.String()), nil
	case knakk.Literal:
		return NewLiteral(v.String(), v.Lang(), v.DataType.String()), nil
	default:
		return Term{}, fmt.Errorf("unsupported term %T", term)
	}
}

// JSONLDDecoder reads JSON-LD. Quads of named graphs are flattened into the
// result after those of the default graph.
type JSONLDDecoder struct {
	// Base resolves relative IRIs.
	Base string
}

func (d JSONLDDecoder) Decode(body string) ([]Triple, error) {
	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("json-ld: %w", err)
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions(d.Base)
	result, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("json-ld: %w", err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("json-ld: unexpected ToRDF result %T", result)
	}

	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != "@default" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{"@default"}, names...)

	var triples []Triple
	for _, name := range names {
		for _, quad := range dataset.Graphs[name] {
			if quad == nil {
				continue
			}
			s, err := fromLD(quad.Subject)
			if err != nil {
				return nil, err
			}
			p, err := fromLD(quad.Predicate)
			if err != nil {
				return nil, err
			}
			o, err := fromLD(quad.Object)
			if err != nil {
				return nil, err
			}
			triples = append(triples, NewTriple(s, p, o))
		}
	}
	return triples, nil
}

func fromLD(node ld.Node) (Term, error) {
	switch v := node.(type) {
	case ld.IRI:
		return NewIRI(v.Value), nil
	case ld.BlankNode:
		return NewBlank(v.Attribute), nil
	case ld.Literal:
		return NewLiteral(v.Value, v.Language, v.Datatype), nil
	default:
		return Term{}, fmt.Errorf("json-ld: unsupported node %T", node)
	}
}
