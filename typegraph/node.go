package typegraph

import (
	"fudge-schema/naming"
	"fudge-schema/primitive"
)

// Node is the resolved schema of one native type under one naming
// convention. Nodes are immutable once published, except for
// Member.SerializedName.
type Node struct {
	typ        Type
	convention naming.Convention
	kind       Kind
	elem       *Node
	fieldType  primitive.FieldType
	members    []*Member
	metadata   Metadata
	complete   bool
}

// Metadata carries structural facts the encoder needs beyond the member list.
type Metadata struct {
	// Factory returns a new zero value of the type (a pointer for reflect
	// types). Nil when the source cannot construct values.
	Factory func() any
	// Attributes are free-form facts recorded by the type source.
	Attributes map[string]string
}

// Type returns the canonical type described by n.
func (n *Node) Type() Type {
	return n.typ
}

// Kind returns the shape classification of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Convention returns the convention member names were derived with. It
// differs from the requested one when the type fixes its own convention.
func (n *Node) Convention() naming.Convention {
	return n.convention
}

// Elem returns the element node of a list, nil for other kinds.
func (n *Node) Elem() *Node {
	return n.elem
}

// FieldType returns the wire field type of a primitive, zero for other kinds.
func (n *Node) FieldType() primitive.FieldType {
	return n.fieldType
}

// Metadata returns the structural facts recorded for n.
func (n *Node) Metadata() Metadata {
	return n.metadata
}

// Complete reports whether n has been published. Pending nodes are only
// visible to the build that created them.
func (n *Node) Complete() bool {
	return n.complete
}

// Members returns the members of an object node in discovery order. The
// returned slice must not be modified.
//
// Members panics on a pending node: while a graph is being built, a node
// reached through a cycle may be used as a reference only.
func (n *Node) Members() []*Member {
	if !n.complete {
		panic("typegraph: members of " + n.String() + " read while under construction")
	}

	return n.members
}

// Member returns the member with the given declared name.
func (n *Node) Member(name string) (*Member, bool) {
	for _, m := range n.Members() {
		if m.name == name {
			return m, true
		}
	}

	return nil, false
}

// String returns e.g. "Person(object)".
func (n *Node) String() string {
	if n.typ == nil {
		return "<nil>(" + n.kind.String() + ")"
	}

	return n.typ.String() + "(" + n.kind.String() + ")"
}

// Member is one wire field of an object node.
type Member struct {
	// SerializedName is the wire name. Callers may overwrite it after
	// resolution for one-off remaps; the node does not synchronize it.
	SerializedName string

	name    string
	node    *Node
	mutable bool
	index   []int
}

// Name returns the declared member name.
func (m *Member) Name() string {
	return m.name
}

// Node returns the schema of the member's declared type. The node is shared
// with every other reference to the same type and convention.
func (m *Member) Node() *Node {
	return m.node
}

// Mutable reports whether the member can be assigned after the owning value
// has been default-constructed.
func (m *Member) Mutable() bool {
	return m.mutable
}

// Index returns the reflect field index path of the member, nil for types
// that are not backed by Go structs.
func (m *Member) Index() []int {
	return m.index
}
