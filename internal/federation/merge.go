// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package federation

import (
	"fmt"
	"sort"

	"github.com/asanchez75/ontodia/pkg/graph"
)

// MergeLabels returns the union of labels by (text, lang), keeping first-seen
// order.
func MergeLabels(labels ...graph.Label) graph.Label {
	var values []graph.LocalizedString
	for _, l := range labels {
		values = append(values, l.Values...)
	}
	return graph.NewLabel(values...)
}

func maxCount(a, b *int) *int {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return graph.IntPtr(*b)
	case b == nil || *a >= *b:
		return graph.IntPtr(*a)
	default:
		return graph.IntPtr(*b)
	}
}

// MergeClassTrees reconciles class forests. Each forest is flattened so a
// class found at different depths is merged once; children are then rebuilt
// from every parent/child pair seen in any source.
func MergeClassTrees(forests ...[]graph.ClassModel) []graph.ClassModel {
	var order []string
	nodes := make(map[string]graph.ClassModel)
	children := make(map[string][]string)
	linked := make(map[[2]string]bool)

	var flatten func(models []graph.ClassModel)
	flatten = func(models []graph.ClassModel) {
		for _, m := range models {
			if prev, ok := nodes[m.ID]; ok {
				nodes[m.ID] = mergeClassNode(prev, m)
			} else {
				order = append(order, m.ID)
				nodes[m.ID] = mergeClassNode(graph.ClassModel{ID: m.ID}, m)
			}
			for _, kid := range m.Children {
				edge := [2]string{m.ID, kid.ID}
				if !linked[edge] {
					linked[edge] = true
					children[m.ID] = append(children[m.ID], kid.ID)
				}
			}
			flatten(m.Children)
		}
	}
	for _, forest := range forests {
		flatten(forest)
	}
	return graph.BuildForest(order, nodes, children)
}

// mergeClassNode combines the label and count of two classes, ignoring
// children.
func mergeClassNode(a, b graph.ClassModel) graph.ClassModel {
	return graph.ClassModel{
		ID:    a.ID,
		Label: MergeLabels(a.Label, b.Label),
		Count: maxCount(a.Count, b.Count),
	}
}

// MergeClassLists merges flat class lists by id. Children of duplicates are
// merged the same way.
func MergeClassLists(lists ...[]graph.ClassModel) []graph.ClassModel {
	var order []string
	merged := make(map[string]graph.ClassModel)
	for _, list := range lists {
		for _, m := range list {
			prev, ok := merged[m.ID]
			if !ok {
				order = append(order, m.ID)
				prev = graph.ClassModel{ID: m.ID}
			}
			next := mergeClassNode(prev, m)
			next.Children = MergeClassLists(prev.Children, m.Children)
			merged[m.ID] = next
		}
	}
	out := make([]graph.ClassModel, 0, len(order))
	for _, id := range order {
		out = append(out, merged[id])
	}
	return out
}

// MergeProperty unions the labels of two descriptions of one property.
func MergeProperty(a, b graph.PropertyModel) graph.PropertyModel {
	return graph.PropertyModel{ID: a.ID, Label: MergeLabels(a.Label, b.Label)}
}

// MergeLinkTypes merges link types by id, keeping the highest count.
func MergeLinkTypes(lists ...[]graph.LinkType) []graph.LinkType {
	var order []string
	merged := make(map[string]graph.LinkType)
	for _, list := range lists {
		for _, lt := range list {
			prev, ok := merged[lt.ID]
			if !ok {
				order = append(order, lt.ID)
				merged[lt.ID] = graph.LinkType{ID: lt.ID, Label: MergeLabels(lt.Label), Count: lt.Count}
				continue
			}
			merged[lt.ID] = graph.LinkType{
				ID:    lt.ID,
				Label: MergeLabels(prev.Label, lt.Label),
				Count: max(prev.Count, lt.Count),
			}
		}
	}
	out := make([]graph.LinkType, 0, len(order))
	for _, id := range order {
		out = append(out, merged[id])
	}
	return out
}

// MergeLinks drops duplicate links, keeping first-seen order.
func MergeLinks(lists ...[]graph.LinkModel) []graph.LinkModel {
	out := []graph.LinkModel{}
	seen := make(map[[3]string]struct{})
	for _, list := range lists {
		for _, l := range list {
			if _, dup := seen[l.Key()]; dup {
				continue
			}
			seen[l.Key()] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// MergeLinkCounts merges link counts by id, keeping the highest count in
// each direction.
func MergeLinkCounts(lists ...[]graph.LinkCount) []graph.LinkCount {
	var order []string
	merged := make(map[string]graph.LinkCount)
	for _, list := range lists {
		for _, c := range list {
			prev, ok := merged[c.ID]
			if !ok {
				order = append(order, c.ID)
				merged[c.ID] = c
				continue
			}
			merged[c.ID] = graph.LinkCount{
				ID:       c.ID,
				InCount:  max(prev.InCount, c.InCount),
				OutCount: max(prev.OutCount, c.OutCount),
			}
		}
	}
	out := make([]graph.LinkCount, 0, len(order))
	for _, id := range order {
		out = append(out, merged[id])
	}
	return out
}

// MergeElementMaps stamps every element of incoming with source and merges
// it into dst.
func MergeElementMaps(dst map[string]graph.ElementModel, source string, incoming map[string]graph.ElementModel) {
	for id, el := range incoming {
		stamped := Stamp(el, source)
		if prev, ok := dst[id]; ok {
			dst[id] = MergeElements(prev, stamped)
		} else {
			dst[id] = stamped
		}
	}
}

// Stamp returns a copy of el that records source in Sources and in a
// DataProvider property.
func Stamp(el graph.ElementModel, source string) graph.ElementModel {
	out := copyElement(el)
	out.Sources = unionStrings(out.Sources, []string{source})
	addProperty(out.Properties, graph.DataProviderProperty, graph.Property{
		Type:   graph.XSDString,
		Values: []graph.LocalizedString{{Text: source}},
	})
	return out
}

// MergeElements combines two descriptions of one element. Types, labels and
// sources are unioned, the first image wins, and properties of b whose id
// is already used are kept under a renamed id.
func MergeElements(a, b graph.ElementModel) graph.ElementModel {
	out := copyElement(a)
	out.Types = unionStrings(out.Types, b.Types)
	out.Label = MergeLabels(a.Label, b.Label)
	if out.Image == "" {
		out.Image = b.Image
	}
	out.Sources = unionStrings(out.Sources, b.Sources)

	keys := make([]string, 0, len(b.Properties))
	for k := range b.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Free ids go first so a renamed property never takes an id that b
	// itself carries.
	var colliding []string
	for _, k := range keys {
		if _, taken := out.Properties[k]; taken {
			colliding = append(colliding, k)
			continue
		}
		out.Properties[k] = copyProperty(b.Properties[k])
	}
	for _, k := range colliding {
		addProperty(out.Properties, k, copyProperty(b.Properties[k]))
	}
	return out
}

// addProperty stores p under id, or under "<id>_<n>" with the smallest free
// n >= 1 when id is taken.
func addProperty(props map[string]graph.Property, id string, p graph.Property) {
	key := id
	for n := 1; ; n++ {
		if _, taken := props[key]; !taken {
			break
		}
		key = fmt.Sprintf("%s_%d", id, n)
	}
	props[key] = p
}

func copyElement(el graph.ElementModel) graph.ElementModel {
	out := graph.ElementModel{
		ID:         el.ID,
		Types:      unionStrings(nil, el.Types),
		Label:      MergeLabels(el.Label),
		Image:      el.Image,
		Properties: make(map[string]graph.Property, len(el.Properties)+1),
		Sources:    unionStrings(nil, el.Sources),
	}
	for k, p := range el.Properties {
		out.Properties[k] = copyProperty(p)
	}
	return out
}

func copyProperty(p graph.Property) graph.Property {
	return graph.Property{
		Type:   p.Type,
		Values: append([]graph.LocalizedString(nil), p.Values...),
	}
}

// unionStrings appends the members of b missing from a to a copy of a.
func unionStrings(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
