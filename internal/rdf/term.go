// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package rdf holds RDF terms, in-memory triple sets and the
// content-negotiating document parser.
package rdf

import (
	"strconv"
	"strings"

	"github.com/asanchez75/ontodia/pkg/graph"
)

// TermKind distinguishes IRIs, blank nodes and literals.
type TermKind uint8

const (
	KindIRI TermKind = iota + 1
	KindBlank
	KindLiteral
)

func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is an RDF node. Value is the IRI, the blank node label without the
// "_:" prefix, or the literal lexical form. Term is comparable and can be
// used as a map key.
type Term struct {
	Kind     TermKind
	Value    string
	Lang     string
	Datatype string
}

func NewIRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

func NewBlank(label string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// NewLiteral builds a literal, normalising the datatype so that plain and
// language-tagged literals compare equal across serializations.
func NewLiteral(value, lang, datatype string) Term {
	lang = strings.ToLower(lang)
	switch {
	case lang != "":
		datatype = graph.RDFLangString
	case datatype == "":
		datatype = graph.XSDString
	}
	return Term{Kind: KindLiteral, Value: value, Lang: lang, Datatype: datatype}
}

func (t Term) IsIRI() bool     { return t.Kind == KindIRI }
func (t Term) IsBlank() bool   { return t.Kind == KindBlank }
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsResource reports whether t can be the subject of a triple.
func (t Term) IsResource() bool {
	return t.Kind == KindIRI || t.Kind == KindBlank
}

// String renders t in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		lit := strconv.Quote(t.Value)
		if t.Lang != "" {
			return lit + "@" + t.Lang
		}
		if t.Datatype != "" && t.Datatype != graph.XSDString {
			return lit + "^^<" + t.Datatype + ">"
		}
		return lit
	default:
		return ""
	}
}

// Triple is a single statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewTriple(s, p, o Term) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// String renders t as an N-Triples line without the trailing newline.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}
