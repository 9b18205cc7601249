// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asanchez75/ontodia/pkg/graph"
)

func TestFilterParams_Mode(t *testing.T) {
	tests := []struct {
		name   string
		params graph.FilterParams
		want   graph.FilterMode
	}{
		{"empty", graph.FilterParams{}, graph.FilterEmpty},
		{"type", graph.FilterParams{ElementTypeID: "T", RefElementID: "e", Text: "x"}, graph.FilterByType},
		{"link", graph.FilterParams{RefElementID: "e", RefElementLinkID: "l", Text: "x"}, graph.FilterByLink},
		{"element", graph.FilterParams{RefElementID: "e", Text: "x"}, graph.FilterByElement},
		{"link without element", graph.FilterParams{RefElementLinkID: "l"}, graph.FilterEmpty},
		{"text", graph.FilterParams{Text: "x", LanguageCode: "en"}, graph.FilterByText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Mode())
		})
	}
}

func TestFilterParams_Paging(t *testing.T) {
	p := graph.FilterParams{}
	assert.Equal(t, graph.DefaultPageSize, p.PageSize())
	assert.True(t, p.InPage(0))
	assert.True(t, p.InPage(graph.DefaultPageSize-1))
	assert.False(t, p.InPage(graph.DefaultPageSize))

	p = graph.FilterParams{Limit: 2, Offset: 3}
	assert.Equal(t, 2, p.PageSize())
	assert.False(t, p.InPage(2))
	assert.True(t, p.InPage(3))
	assert.True(t, p.InPage(4))
	assert.False(t, p.InPage(5))

	p = graph.FilterParams{Limit: -1, Offset: -5}
	assert.Equal(t, graph.DefaultPageSize, p.PageSize())
	assert.True(t, p.InPage(0))
}

func TestLinkElementsParams_AsFilter(t *testing.T) {
	p := graph.LinkElementsParams{ElementID: "e", LinkID: "l", Direction: graph.DirectionIn, Limit: 5, Offset: 1}
	f := p.AsFilter()
	assert.Equal(t, graph.FilterParams{
		RefElementID:     "e",
		RefElementLinkID: "l",
		LinkDirection:    graph.DirectionIn,
		Limit:            5,
		Offset:           1,
	}, f)
	assert.Equal(t, graph.FilterByLink, f.Mode())
}

func TestLinkModel_Key(t *testing.T) {
	a := graph.LinkModel{SourceID: "s", TargetID: "t", LinkTypeID: "p"}
	b := graph.LinkModel{SourceID: "s", TargetID: "t", LinkTypeID: "q"}
	assert.Equal(t, a.Key(), graph.LinkModel{SourceID: "s", TargetID: "t", LinkTypeID: "p"}.Key())
	assert.NotEqual(t, a.Key(), b.Key())
}

func ids(classes []graph.ClassModel) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.ID
	}
	return out
}

func nodesOf(order ...string) map[string]graph.ClassModel {
	nodes := make(map[string]graph.ClassModel, len(order))
	for _, id := range order {
		nodes[id] = graph.ClassModel{ID: id, Count: graph.IntPtr(len(id))}
	}
	return nodes
}

func TestBuildForest(t *testing.T) {
	t.Run("hierarchy keeps order and counts", func(t *testing.T) {
		order := []string{"Thing", "Agent", "Person", "Place"}
		forest := graph.BuildForest(order, nodesOf(order...), map[string][]string{
			"Thing": {"Agent", "Place"},
			"Agent": {"Person"},
		})
		assert.Equal(t, []string{"Thing"}, ids(forest))
		assert.Equal(t, []string{"Agent", "Place"}, ids(forest[0].Children))
		assert.Equal(t, []string{"Person"}, ids(forest[0].Children[0].Children))
		assert.Equal(t, 6, *forest[0].Children[0].Children[0].Count)
		assert.NotNil(t, forest[0].Children[1].Children)
	})

	t.Run("several parents", func(t *testing.T) {
		order := []string{"A", "B", "C"}
		forest := graph.BuildForest(order, nodesOf(order...), map[string][]string{"A": {"C"}, "B": {"C"}})
		assert.Equal(t, []string{"A", "B"}, ids(forest))
		assert.Equal(t, []string{"C"}, ids(forest[0].Children))
		assert.Equal(t, []string{"C"}, ids(forest[1].Children))
	})

	t.Run("cycle is broken", func(t *testing.T) {
		order := []string{"A", "B"}
		forest := graph.BuildForest(order, nodesOf(order...), map[string][]string{"A": {"B"}, "B": {"A"}})
		assert.Equal(t, []string{"A"}, ids(forest))
		assert.Equal(t, []string{"B"}, ids(forest[0].Children))
		assert.Empty(t, forest[0].Children[0].Children)
	})

	t.Run("self loop", func(t *testing.T) {
		order := []string{"A"}
		forest := graph.BuildForest(order, nodesOf(order...), map[string][]string{"A": {"A"}})
		assert.Equal(t, []string{"A"}, ids(forest))
		assert.Empty(t, forest[0].Children)
	})

	t.Run("unknown child is skipped", func(t *testing.T) {
		order := []string{"A"}
		forest := graph.BuildForest(order, nodesOf(order...), map[string][]string{"A": {"Ghost"}})
		assert.Equal(t, []string{"A"}, ids(forest))
		assert.Empty(t, forest[0].Children)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, graph.BuildForest(nil, nil, nil))
	})
}
