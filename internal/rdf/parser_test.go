// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package rdf_test

import (
	"testing"

	"github.com/asanchez75/ontodia/internal/rdf"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const turtleDoc = `@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:alice a ex:Person ;
    rdfs:label "Alice"@en .
`

const rdfxmlDoc = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
  <rdf:Description rdf:about="http://example.org/alice">
    <rdfs:label xml:lang="en">Alice</rdfs:label>
  </rdf:Description>
</rdf:RDF>
`

const jsonldDoc = `{
  "@id": "http://example.org/alice",
  "http://www.w3.org/2000/01/rdf-schema#label": {"@value": "Alice", "@language": "en"}
}`

var aliceLabel = rdf.NewTriple(
	rdf.NewIRI("http://example.org/alice"),
	rdf.NewIRI(graph.RDFSLabel),
	rdf.NewLiteral("Alice", "en", ""),
)

func TestParser_ExplicitTurtle(t *testing.T) {
	p := rdf.NewParser()

	g, err := p.Parse(turtleDoc, rdf.MIMETurtle)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has(aliceLabel))
	assert.True(t, g.Has(rdf.NewTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI(graph.RDFType),
		rdf.NewIRI("http://example.org/Person"),
	)))
}

func TestParser_ExplicitRDFXML(t *testing.T) {
	g, err := rdf.NewParser().Parse(rdfxmlDoc, rdf.MIMERDFXML)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(aliceLabel))
}

func TestParser_ExplicitJSONLD(t *testing.T) {
	g, err := rdf.NewParser().Parse(jsonldDoc, rdf.MIMEJSONLD)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(aliceLabel))
}

func TestParser_MIMEParametersAndAliases(t *testing.T) {
	p := rdf.NewParser()

	g, err := p.Parse(jsonldDoc, "application/json; charset=utf-8")
	require.NoError(t, err)
	assert.True(t, g.Has(aliceLabel))

	g, err = p.Parse(rdfxmlDoc, "Application/XML")
	require.NoError(t, err)
	assert.True(t, g.Has(aliceLabel))
}

func TestParser_UnknownHintFallsBackToTurtle(t *testing.T) {
	g, mime, err := rdf.NewParser().ParseDetect(turtleDoc, "application/x-unknown")
	require.NoError(t, err)
	assert.Equal(t, rdf.MIMETurtle, mime)
	assert.Equal(t, 2, g.Len())
}

func TestParser_ExplicitMismatchIsInvalidFormat(t *testing.T) {
	_, err := rdf.NewParser().Parse(jsonldDoc, rdf.MIMERDFXML)
	require.Error(t, err)
	assert.True(t, ontoerr.HasCode(err, ontoerr.CodeRDFParseInvalidFormat))
	assert.Equal(t, rdf.MIMERDFXML, ontoerr.FieldsOf(err)["mime"])
}

func TestParser_DetectionFallsThroughToJSONLD(t *testing.T) {
	p := rdf.NewParser()

	detected, mime, err := p.ParseDetect(jsonldDoc, "")
	require.NoError(t, err)
	assert.Equal(t, rdf.MIMEJSONLD, mime)

	direct, err := p.Parse(jsonldDoc, rdf.MIMEJSONLD)
	require.NoError(t, err)
	assert.True(t, detected.Equal(direct))
}

func TestParser_DetectionPrefersTurtle(t *testing.T) {
	_, mime, err := rdf.NewParser().ParseDetect(turtleDoc, "")
	require.NoError(t, err)
	assert.Equal(t, rdf.MIMETurtle, mime)
}

func TestParser_DetectionUnknownFormat(t *testing.T) {
	_, err := rdf.NewParser().Parse("{{{ definitely not rdf", "")
	require.Error(t, err)
	assert.True(t, ontoerr.HasCode(err, ontoerr.CodeRDFParseUnknownFormat))
	assert.True(t, ontoerr.IsInvalidInput(err))
}

func TestParser_DetectionOrderWithCustomDecoders(t *testing.T) {
	var calls []string
	failing := func(name string) rdf.Decoder {
		return rdf.DecoderFunc(func(string) ([]rdf.Triple, error) {
			calls = append(calls, name)
			return nil, assert.AnError
		})
	}
	p := rdf.NewParser(
		rdf.WithDecoder(rdf.MIMETurtle, failing("turtle")),
		rdf.WithDecoder(rdf.MIMERDFXML, failing("rdfxml")),
	)

	g, mime, err := p.ParseDetect(jsonldDoc, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"turtle", "rdfxml"}, calls)
	assert.Equal(t, rdf.MIMEJSONLD, mime)
	assert.True(t, g.Has(aliceLabel))
}

func TestRewriteCollections(t *testing.T) {
	in := `<ex:list rdf:parseType="Collection"/><!-- collection COLLECTION -->`
	want := `<ex:list rdf:parseType="Collection1"/><!-- Collection1 Collection1 -->`
	assert.Equal(t, want, rdf.RewriteCollections(in))
}

func TestNormalizeMIME(t *testing.T) {
	tests := map[string]string{
		"text/turtle":                   rdf.MIMETurtle,
		"TEXT/TURTLE; charset=utf-8":    rdf.MIMETurtle,
		"application/n-triples":         rdf.MIMETurtle,
		"text/xml":                      rdf.MIMERDFXML,
		"application/ld+json;profile=x": rdf.MIMEJSONLD,
		"image/png":                     "image/png",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, rdf.NormalizeMIME(in))
		})
	}
}

func TestMIMEFromPath(t *testing.T) {
	assert.Equal(t, rdf.MIMETurtle, rdf.MIMEFromPath("data/people.ttl"))
	assert.Equal(t, rdf.MIMERDFXML, rdf.MIMEFromPath("onto.OWL"))
	assert.Equal(t, rdf.MIMEJSONLD, rdf.MIMEFromPath("doc.jsonld"))
	assert.Equal(t, "", rdf.MIMEFromPath("README"))
}
