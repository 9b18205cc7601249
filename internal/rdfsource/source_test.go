// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package rdfsource_test

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/asanchez75/ontodia/internal/cacheable"
	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/internal/rdfsource"
	"github.com/asanchez75/ontodia/internal/store/memory"
	"github.com/asanchez75/ontodia/internal/store/sqlite"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ex = "http://example.org/"

const dataset = `@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .

ex:Agent a owl:Class ; rdfs:label "Agent"@en .
ex:Person a owl:Class ; rdfs:subClassOf ex:Agent ; rdfs:label "Person"@en .
ex:Student rdfs:subClassOf ex:Person .
ex:knows a owl:ObjectProperty ; rdfs:label "knows" .

ex:alice a ex:Person ;
    rdfs:label "Alice"@en, "Alicia"@es ;
    ex:knows ex:bob ;
    ex:age "30"^^xsd:integer ;
    foaf:img <http://img.example.org/alice.png> .
ex:bob a ex:Person, ex:Student ; rdfs:label "Bob" ; ex:knows ex:alice .
ex:carol a ex:Student ; rdfs:label "Carol" ; ex:worksWith ex:alice .
`

func newSource(t *testing.T, opts ...cacheable.Option) *rdfsource.Source {
	t.Helper()
	st := cacheable.New(memory.New(), opts...)
	src := rdfsource.New(st)
	require.NoError(t, src.Load(context.Background(), rdfsource.Document{Content: dataset, MIME: rdf.MIMETurtle}))
	return src
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestSource_ClassTree(t *testing.T) {
	tree, err := newSource(t).ClassTree(context.Background())
	require.NoError(t, err)

	want := []graph.ClassModel{{
		ID:    ex + "Agent",
		Label: graph.Label{Values: []graph.LocalizedString{{Text: "Agent", Lang: "en"}}},
		Count: graph.IntPtr(0),
		Children: []graph.ClassModel{{
			ID:    ex + "Person",
			Label: graph.Label{Values: []graph.LocalizedString{{Text: "Person", Lang: "en"}}},
			Count: graph.IntPtr(2),
			Children: []graph.ClassModel{{
				ID:    ex + "Student",
				Label: graph.Label{Values: []graph.LocalizedString{{Text: "Student"}}},
				Count: graph.IntPtr(2),
			}},
		}},
	}}
	if diff := cmp.Diff(want, tree, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("class tree mismatch (-want +got):\n%s", diff)
	}
}

func TestSource_ClassTreeBreaksCycles(t *testing.T) {
	st := cacheable.New(memory.New())
	src := rdfsource.New(st)
	require.NoError(t, src.Load(context.Background(), rdfsource.Document{
		Content: `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
<http://example.org/A> rdfs:subClassOf <http://example.org/B> .
<http://example.org/B> rdfs:subClassOf <http://example.org/A> .`,
	}))

	tree, err := src.ClassTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, ex+"A", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, ex+"B", tree[0].Children[0].ID)
	assert.Empty(t, tree[0].Children[0].Children)
}

func TestSource_ClassInfoAndPropertyInfo(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)

	classes, err := src.ClassInfo(ctx, graph.ClassInfoParams{ClassIDs: []string{ex + "Student", ex + "Student"}})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 2, *classes[0].Count)

	props, err := src.PropertyInfo(ctx, graph.PropertyInfoParams{PropertyIDs: []string{ex + "age"}})
	require.NoError(t, err)
	assert.Equal(t, "age", props[ex+"age"].Label.Values[0].Text)
}

func TestSource_LinkTypes(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)

	types, err := src.LinkTypes(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, types)
	assert.Equal(t, ex+"knows", types[0].ID, "declared link types come first")

	counts := map[string]int{}
	for _, lt := range types {
		counts[lt.ID] = lt.Count
	}
	assert.Equal(t, 2, counts[ex+"knows"])
	assert.Equal(t, 1, counts[ex+"worksWith"])
	assert.NotContains(t, counts, graph.RDFType)

	info, err := src.LinkTypesInfo(ctx, graph.LinkTypesInfoParams{LinkTypeIDs: []string{ex + "knows"}})
	require.NoError(t, err)
	require.Len(t, info, 1)
	assert.Equal(t, 2, info[0].Count)
	assert.Equal(t, "knows", info[0].Label.Values[0].Text)
}

func TestSource_ElementInfo(t *testing.T) {
	elements, err := newSource(t).ElementInfo(context.Background(), graph.ElementInfoParams{
		ElementIDs: []string{ex + "alice"},
	})
	require.NoError(t, err)
	alice, ok := elements[ex+"alice"]
	require.True(t, ok)

	assert.Equal(t, []string{ex + "Person"}, alice.Types)
	assert.ElementsMatch(t, []graph.LocalizedString{{Text: "Alice", Lang: "en"}, {Text: "Alicia", Lang: "es"}}, alice.Label.Values)
	assert.Equal(t, "http://img.example.org/alice.png", alice.Image)
	require.Contains(t, alice.Properties, ex+"age")
	assert.Equal(t, graph.NSXSD+"integer", alice.Properties[ex+"age"].Type)
	assert.Equal(t, "30", alice.Properties[ex+"age"].Values[0].Text)
	assert.NotContains(t, alice.Properties, graph.RDFSLabel)
}

func TestSource_LinksInfo(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)
	ids := []string{ex + "alice", ex + "bob", ex + "carol"}

	links, err := src.LinksInfo(ctx, graph.LinksInfoParams{ElementIDs: ids})
	require.NoError(t, err)
	assert.ElementsMatch(t, []graph.LinkModel{
		{SourceID: ex + "alice", TargetID: ex + "bob", LinkTypeID: ex + "knows"},
		{SourceID: ex + "bob", TargetID: ex + "alice", LinkTypeID: ex + "knows"},
		{SourceID: ex + "carol", TargetID: ex + "alice", LinkTypeID: ex + "worksWith"},
	}, links)

	links, err = src.LinksInfo(ctx, graph.LinksInfoParams{ElementIDs: ids, LinkTypeIDs: []string{ex + "worksWith"}})
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestSource_LinkTypesOf(t *testing.T) {
	counts, err := newSource(t).LinkTypesOf(context.Background(), graph.LinkTypesOfParams{ElementID: ex + "alice"})
	require.NoError(t, err)

	byID := map[string]graph.LinkCount{}
	for _, c := range counts {
		byID[c.ID] = c
	}
	assert.Equal(t, graph.LinkCount{ID: ex + "knows", InCount: 1, OutCount: 1}, byID[ex+"knows"])
	assert.Equal(t, graph.LinkCount{ID: ex + "worksWith", InCount: 1}, byID[ex+"worksWith"])
}

func TestSource_Filter(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)

	tests := []struct {
		name   string
		params graph.FilterParams
		want   []string
	}{
		{
			name:   "by type with zero limit uses default page",
			params: graph.FilterParams{ElementTypeID: ex + "Person", Limit: 0},
			want:   []string{ex + "alice", ex + "bob"},
		},
		{
			name:   "by type paged",
			params: graph.FilterParams{ElementTypeID: ex + "Person", Limit: 1, Offset: 1},
			want:   []string{ex + "bob"},
		},
		{
			name:   "by type narrowed by text",
			params: graph.FilterParams{ElementTypeID: ex + "Student", Text: "CAR"},
			want:   []string{ex + "carol"},
		},
		{
			name:   "by link outgoing",
			params: graph.FilterParams{RefElementID: ex + "carol", RefElementLinkID: ex + "worksWith", LinkDirection: graph.DirectionOut},
			want:   []string{ex + "alice"},
		},
		{
			name:   "by link incoming",
			params: graph.FilterParams{RefElementID: ex + "alice", RefElementLinkID: ex + "worksWith", LinkDirection: graph.DirectionIn},
			want:   []string{ex + "carol"},
		},
		{
			name:   "by link outgoing has no incoming results",
			params: graph.FilterParams{RefElementID: ex + "alice", RefElementLinkID: ex + "worksWith", LinkDirection: graph.DirectionOut},
			want:   []string{},
		},
		{
			name:   "by element alone includes both directions",
			params: graph.FilterParams{RefElementID: ex + "carol"},
			want:   []string{ex + "alice", ex + "carol"},
		},
		{
			name:   "free text",
			params: graph.FilterParams{Text: "ali"},
			want:   []string{ex + "alice"},
		},
		{
			name:   "free text in language",
			params: graph.FilterParams{Text: "alicia", LanguageCode: "es"},
			want:   []string{ex + "alice"},
		},
		{
			name:   "free text wrong language",
			params: graph.FilterParams{Text: "bob", LanguageCode: "en"},
			want:   []string{},
		},
		{
			name:   "empty",
			params: graph.FilterParams{},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Filter(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestSource_LinkElementsIsFilterSugar(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)

	got, err := src.LinkElements(ctx, graph.LinkElementsParams{
		ElementID: ex + "alice",
		LinkID:    ex + "knows",
		Direction: graph.DirectionIn,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{ex + "bob"}, keys(got))
}

func TestSource_LoadSkipsBadDocuments(t *testing.T) {
	ctx := context.Background()
	src := rdfsource.New(cacheable.New(memory.New()))

	err := src.Load(ctx,
		rdfsource.Document{Content: "{{{ broken", MIME: ""},
		rdfsource.Document{Content: dataset, MIME: rdf.MIMETurtle},
	)
	require.NoError(t, err)

	err = rdfsource.New(cacheable.New(memory.New())).Load(ctx, rdfsource.Document{Content: "{{{ broken"})
	require.Error(t, err)
	assert.True(t, ontoerr.HasCode(err, ontoerr.CodeSourceLoadFailure) ||
		ontoerr.HasCode(err, ontoerr.CodeRDFParseUnknownFormat))
}

func TestSource_ReopenedSQLiteKeepsLabelsAndTypes(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "source.db")

	first, err := sqlite.NewTripleStore(path)
	require.NoError(t, err)
	require.NoError(t, rdfsource.New(cacheable.New(first)).Load(ctx,
		rdfsource.Document{Content: dataset, MIME: rdf.MIMETurtle}))
	require.NoError(t, first.Close())

	reopened, err := sqlite.NewTripleStore(path)
	require.NoError(t, err)
	st, err := cacheable.Open(ctx, reopened)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	src := rdfsource.New(st)

	elements, err := src.ElementInfo(ctx, graph.ElementInfoParams{ElementIDs: []string{ex + "alice"}})
	require.NoError(t, err)
	alice := elements[ex+"alice"]
	assert.Equal(t, []string{ex + "Person"}, alice.Types)
	assert.Len(t, alice.Label.Values, 2)

	classes, err := src.ClassInfo(ctx, graph.ClassInfoParams{ClassIDs: []string{ex + "Person"}})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 2, *classes[0].Count)
}

type staticFetcher map[string]string

func (f staticFetcher) Fetch(_ context.Context, url, accept string) (string, error) {
	if accept != rdf.MIMETurtle {
		return "", errors.New("not acceptable")
	}
	body, ok := f[url]
	if !ok {
		return "", errors.New("not found")
	}
	return body, nil
}

func TestSource_ElementInfoDereferencesUnknownElements(t *testing.T) {
	fetcher := staticFetcher{
		"http://remote.example.org/dave": `<http://remote.example.org/dave> <http://www.w3.org/2000/01/rdf-schema#label> "Dave" .`,
	}
	src := newSource(t, cacheable.WithFetcher(fetcher))

	elements, err := src.ElementInfo(context.Background(), graph.ElementInfoParams{ElementIDs: []string{
		ex + "alice",
		"http://remote.example.org/dave",
		"http://remote.example.org/nobody",
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{ex + "alice", "http://remote.example.org/dave"}, keys(elements))
	assert.Equal(t, "Dave", elements["http://remote.example.org/dave"].Label.Values[0].Text)
}

func TestLabelFromID(t *testing.T) {
	assert.Equal(t, "Person", rdfsource.LabelFromID("http://example.org/onto#Person").Values[0].Text)
	assert.Equal(t, "alice", rdfsource.LabelFromID("http://example.org/people/alice").Values[0].Text)
	assert.Equal(t, "plain", rdfsource.LabelFromID("plain").Values[0].Text)
}
