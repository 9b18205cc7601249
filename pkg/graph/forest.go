// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package graph

// BuildForest nests classes under their children lists. order fixes the
// output order, nodes holds each class without children and children maps a
// parent id to its child ids.
//
// Classes that are nobody's child become roots. Classes only reachable
// through a cycle are promoted to roots, and a promoted root that another
// root reaches is dropped again, so no id is both a root and nested. A class
// with several parents is nested under each of them.
func BuildForest(order []string, nodes map[string]ClassModel, children map[string][]string) []ClassModel {
	isChild := make(map[string]bool)
	for parent, kids := range children {
		for _, kid := range kids {
			if kid != parent {
				isChild[kid] = true
			}
		}
	}

	visited := make(map[string]bool, len(nodes))
	var build func(id string, path map[string]bool, nested map[string]bool) ClassModel
	build = func(id string, path map[string]bool, nested map[string]bool) ClassModel {
		visited[id] = true
		path[id] = true
		defer delete(path, id)

		node := nodes[id]
		node.ID = id
		node.Children = []ClassModel{}
		for _, kid := range children[id] {
			if path[kid] {
				continue
			}
			if _, ok := nodes[kid]; !ok {
				continue
			}
			nested[kid] = true
			node.Children = append(node.Children, build(kid, path, nested))
		}
		return node
	}

	type root struct {
		model  ClassModel
		nested map[string]bool
	}
	var roots []root
	for _, id := range order {
		if !isChild[id] {
			nested := map[string]bool{}
			roots = append(roots, root{model: build(id, map[string]bool{}, nested), nested: nested})
		}
	}
	for _, id := range order {
		if !visited[id] {
			nested := map[string]bool{}
			roots = append(roots, root{model: build(id, map[string]bool{}, nested), nested: nested})
		}
	}

	out := make([]ClassModel, 0, len(roots))
	for i, r := range roots {
		reached := false
		for j, other := range roots {
			if i != j && other.nested[r.model.ID] {
				reached = true
				break
			}
		}
		if !reached {
			out = append(out, r.model)
		}
	}
	return out
}
