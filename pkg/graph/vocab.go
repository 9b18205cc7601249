// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package graph

const (
	NSRDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	NSOWL    = "http://www.w3.org/2002/07/owl#"
	NSXSD    = "http://www.w3.org/2001/XMLSchema#"
	NSFOAF   = "http://xmlns.com/foaf/0.1/"
	NSSchema = "http://schema.org/"

	RDFType        = NSRDF + "type"
	RDFProperty    = NSRDF + "Property"
	RDFLangString  = NSRDF + "langString"
	RDFSLabel      = NSRDFS + "label"
	RDFSClass      = NSRDFS + "Class"
	RDFSSubClassOf = NSRDFS + "subClassOf"
	OWLClass       = NSOWL + "Class"
	OWLObjectProp  = NSOWL + "ObjectProperty"
	XSDString      = NSXSD + "string"
	FOAFImg        = NSFOAF + "img"
	FOAFDepiction  = NSFOAF + "depiction"
	SchemaImage    = NSSchema + "image"

	// DataProviderProperty is the synthetic property recording which named
	// source contributed an element.
	DataProviderProperty = "DataProvider"
)
