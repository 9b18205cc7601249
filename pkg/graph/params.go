// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package graph

// Direction selects which side of a link the reference element sits on.
type Direction string

const (
	DirectionAny Direction = ""
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// DefaultPageSize is used when a filter asks for a limit of zero.
const DefaultPageSize = 100

type PropertyInfoParams struct {
	PropertyIDs []string `json:"propertyIds"`
}

type ClassInfoParams struct {
	ClassIDs []string `json:"classIds"`
}

type LinkTypesInfoParams struct {
	LinkTypeIDs []string `json:"linkTypeIds"`
}

type ElementInfoParams struct {
	ElementIDs []string `json:"elementIds"`
}

type LinksInfoParams struct {
	ElementIDs  []string `json:"elementIds"`
	LinkTypeIDs []string `json:"linkTypeIds,omitempty"`
}

type LinkTypesOfParams struct {
	ElementID string `json:"elementId"`
}

type LinkElementsParams struct {
	ElementID string    `json:"elementId"`
	LinkID    string    `json:"linkId"`
	Limit     int       `json:"limit,omitempty"`
	Offset    int       `json:"offset,omitempty"`
	Direction Direction `json:"direction,omitempty" enum:"in,out"`
}

// FilterParams selects one of the filter modes. Exactly which mode applies is
// decided by Mode.
type FilterParams struct {
	ElementTypeID    string    `json:"elementTypeId,omitempty"`
	Text             string    `json:"text,omitempty"`
	RefElementID     string    `json:"refElementId,omitempty"`
	RefElementLinkID string    `json:"refElementLinkId,omitempty"`
	LinkDirection    Direction `json:"linkDirection,omitempty" enum:"in,out"`
	LanguageCode     string    `json:"languageCode,omitempty"`
	Limit            int       `json:"limit,omitempty"`
	Offset           int       `json:"offset,omitempty"`
}

// FilterMode names the filter variant a FilterParams value selects.
type FilterMode int

const (
	FilterEmpty FilterMode = iota
	FilterByType
	FilterByLink
	FilterByElement
	FilterByText
)

// Mode reports which filter variant p selects. Type selection wins over a
// reference element, which wins over free text.
func (p FilterParams) Mode() FilterMode {
	switch {
	case p.ElementTypeID != "":
		return FilterByType
	case p.RefElementID != "" && p.RefElementLinkID != "":
		return FilterByLink
	case p.RefElementID != "":
		return FilterByElement
	case p.Text != "":
		return FilterByText
	default:
		return FilterEmpty
	}
}

// PageSize returns the effective limit, mapping zero and negatives to the
// default page size.
func (p FilterParams) PageSize() int {
	if p.Limit <= 0 {
		return DefaultPageSize
	}
	return p.Limit
}

// InPage reports whether the match at index i falls in the requested page.
func (p FilterParams) InPage(i int) bool {
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return i >= offset && i < offset+p.PageSize()
}

// AsFilter expresses a link traversal as the equivalent filter.
func (p LinkElementsParams) AsFilter() FilterParams {
	return FilterParams{
		RefElementID:     p.ElementID,
		RefElementLinkID: p.LinkID,
		LinkDirection:    p.Direction,
		Limit:            p.Limit,
		Offset:           p.Offset,
	}
}
