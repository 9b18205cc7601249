// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package federation_test

import (
	"context"
	"sync/atomic"

	"github.com/asanchez75/ontodia/pkg/graph"
)

// fakeSource returns canned answers and counts calls. When err is set every
// call fails with it.
type fakeSource struct {
	classes    []graph.ClassModel
	properties map[string]graph.PropertyModel
	linkTypes  []graph.LinkType
	elements   map[string]graph.ElementModel
	links      []graph.LinkModel
	counts     []graph.LinkCount
	err        error
	block      chan struct{}
	calls      atomic.Int32
}

func (f *fakeSource) wait(ctx context.Context) error {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func (f *fakeSource) ClassTree(ctx context.Context) ([]graph.ClassModel, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.classes, nil
}

func (f *fakeSource) PropertyInfo(ctx context.Context, _ graph.PropertyInfoParams) (map[string]graph.PropertyModel, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.properties, nil
}

func (f *fakeSource) ClassInfo(ctx context.Context, _ graph.ClassInfoParams) ([]graph.ClassModel, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.classes, nil
}

func (f *fakeSource) LinkTypesInfo(ctx context.Context, _ graph.LinkTypesInfoParams) ([]graph.LinkType, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.linkTypes, nil
}

func (f *fakeSource) LinkTypes(ctx context.Context) ([]graph.LinkType, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.linkTypes, nil
}

func (f *fakeSource) ElementInfo(ctx context.Context, _ graph.ElementInfoParams) (map[string]graph.ElementModel, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.elements, nil
}

func (f *fakeSource) LinksInfo(ctx context.Context, _ graph.LinksInfoParams) ([]graph.LinkModel, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.links, nil
}

func (f *fakeSource) LinkTypesOf(ctx context.Context, _ graph.LinkTypesOfParams) ([]graph.LinkCount, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.counts, nil
}

func (f *fakeSource) LinkElements(ctx context.Context, _ graph.LinkElementsParams) (map[string]graph.ElementModel, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.elements, nil
}

func (f *fakeSource) Filter(ctx context.Context, _ graph.FilterParams) (map[string]graph.ElementModel, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.elements, nil
}

func label(values ...string) graph.Label {
	out := graph.Label{Values: []graph.LocalizedString{}}
	for i := 0; i+1 < len(values); i += 2 {
		out.Values = append(out.Values, graph.LocalizedString{Text: values[i], Lang: values[i+1]})
	}
	return out
}

func literal(text string) graph.Property {
	return graph.Property{Type: graph.XSDString, Values: []graph.LocalizedString{{Text: text}}}
}

func provider(name string) graph.Property {
	return literal(name)
}
