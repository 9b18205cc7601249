// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package graph defines the data model exchanged by graph data sources and
// the DataSource contract every backend implements.
package graph

// LocalizedString is a literal text with an optional language tag. Two
// values are the same label entry when both Text and Lang are equal.
type LocalizedString struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Label is an ordered set of localized strings.
type Label struct {
	Values []LocalizedString `json:"values"`
}

// NewLabel builds a label from text/lang pairs, dropping duplicates.
func NewLabel(values ...LocalizedString) Label {
	out := Label{Values: make([]LocalizedString, 0, len(values))}
	seen := make(map[LocalizedString]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out.Values = append(out.Values, v)
	}
	return out
}

// ClassModel is a node of the class hierarchy.
type ClassModel struct {
	ID       string       `json:"id"`
	Label    Label        `json:"label"`
	Count    *int         `json:"count,omitempty"`
	Children []ClassModel `json:"children"`
}

// PropertyModel describes a datatype property.
type PropertyModel struct {
	ID    string `json:"id"`
	Label Label  `json:"label"`
}

// Property is the value set of one predicate on an element.
type Property struct {
	Type   string            `json:"type"`
	Values []LocalizedString `json:"values"`
}

// LinkType describes an object property and how often it is used.
type LinkType struct {
	ID    string `json:"id"`
	Label Label  `json:"label"`
	Count int    `json:"count"`
}

// LinkCount is the usage of one link type relative to a single element.
type LinkCount struct {
	ID       string `json:"id"`
	InCount  int    `json:"inCount"`
	OutCount int    `json:"outCount"`
}

// ElementModel is a resource with its types, label and literal properties.
// Sources lists the named backends that contributed to it.
type ElementModel struct {
	ID         string              `json:"id"`
	Types      []string            `json:"types"`
	Label      Label               `json:"label"`
	Image      string              `json:"image,omitempty"`
	Properties map[string]Property `json:"properties"`
	Sources    []string            `json:"sources,omitempty"`
}

// LinkModel is a directed, typed edge between two elements.
type LinkModel struct {
	SourceID   string `json:"sourceId"`
	TargetID   string `json:"targetId"`
	LinkTypeID string `json:"linkTypeId"`
}

// Key returns the identity used to deduplicate links.
func (l LinkModel) Key() [3]string {
	return [3]string{l.SourceID, l.TargetID, l.LinkTypeID}
}

// IntPtr returns a pointer to v, for optional counts.
func IntPtr(v int) *int {
	return &v
}
