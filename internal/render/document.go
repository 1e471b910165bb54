// Package render turns resolved type nodes into documents for people and
// tools: an indented tree, YAML, JSON and a debug dump.
package render

import (
	"maps"

	"fudge-schema/naming"
	"fudge-schema/typegraph"
)

// Document is the flattened, serializable form of a set of resolved graphs.
type Document struct {
	Convention string      `json:"convention" yaml:"convention"`
	Roots      []string    `json:"roots" yaml:"roots"`
	Types      []TypeEntry `json:"types" yaml:"types"`
}

// TypeEntry describes one list or object node. Primitive nodes are inlined
// in the members and lists that use them. Ref is unique within a document;
// Elem and member types point at it.
type TypeEntry struct {
	Ref        string            `json:"ref" yaml:"ref"`
	Type       string            `json:"type" yaml:"type"`
	Kind       string            `json:"kind" yaml:"kind"`
	Convention string            `json:"convention" yaml:"convention"`
	Elem       string            `json:"elem,omitempty" yaml:"elem,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Members    []MemberEntry     `json:"members,omitempty" yaml:"members,omitempty"`
}

// MemberEntry describes one member of an object node.
type MemberEntry struct {
	Name       string `json:"name" yaml:"name"`
	Serialized string `json:"serialized" yaml:"serialized"`
	Type       string `json:"type" yaml:"type"`
	ReadOnly   bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`
}

// Label names the type of n in documents: the field type for primitives,
// the type otherwise.
func Label(n *typegraph.Node) string {
	if n.Kind() == typegraph.KindPrimitive {
		return n.FieldType().Name()
	}

	return n.Type().String()
}

// Ref is Label qualified with the effective convention of n, as in
// "OrderLine@lower", when that differs from the document convention. The
// same type resolved under two conventions gets two refs.
func Ref(n *typegraph.Node, convention naming.Convention) string {
	label := Label(n)
	if n.Kind() == typegraph.KindPrimitive || n.Convention() == convention {
		return label
	}

	return label + "@" + n.Convention().String()
}

// Build flattens the graphs reachable from roots, breadth first, with one
// entry per ref. Nodes requested under different conventions that end up
// with the same effective convention share an entry.
func Build(convention naming.Convention, roots ...*typegraph.Node) *Document {
	doc := &Document{
		Convention: convention.String(),
		Roots:      make([]string, 0, len(roots)),
		Types:      []TypeEntry{},
	}

	ref := func(n *typegraph.Node) string { return Ref(n, convention) }

	seen := make(map[string]bool)
	queue := make([]*typegraph.Node, 0, len(roots))

	for _, r := range roots {
		doc.Roots = append(doc.Roots, ref(r))
		queue = append(queue, r)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.Kind() == typegraph.KindPrimitive || seen[ref(n)] {
			continue
		}
		seen[ref(n)] = true

		entry := TypeEntry{
			Ref:        ref(n),
			Type:       n.Type().String(),
			Kind:       n.Kind().String(),
			Convention: n.Convention().String(),
		}

		switch n.Kind() {
		case typegraph.KindList:
			entry.Elem = ref(n.Elem())
			queue = append(queue, n.Elem())

		case typegraph.KindObject:
			entry.Attributes = maps.Clone(n.Metadata().Attributes)

			for _, m := range n.Members() {
				entry.Members = append(entry.Members, MemberEntry{
					Name:       m.Name(),
					Serialized: m.SerializedName,
					Type:       ref(m.Node()),
					ReadOnly:   !m.Mutable(),
				})
				queue = append(queue, m.Node())
			}
		}

		doc.Types = append(doc.Types, entry)
	}

	return doc
}
