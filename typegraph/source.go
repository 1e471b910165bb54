package typegraph

import (
	"fudge-schema/naming"
	"fudge-schema/primitive"
)

// Type identifies a native type. Types are used as map keys, so the dynamic
// type of every Type must be comparable and two values describing the same
// native type must be equal. reflect.Type satisfies it.
type Type interface {
	String() string
}

// Source describes native types to the resolver. A Source is consulted once
// per type and convention; it must be safe for concurrent use when the cache
// is shared between goroutines.
type Source interface {
	// Canonical returns the identity under which t is cached, e.g. with
	// pointer indirections removed.
	Canonical(t Type) Type
	// Primitive reports the wire field type of t when t is a known primitive.
	Primitive(t Type) (primitive.FieldType, bool)
	// Elem reports the element type when t has a single-parameter sequence
	// shape. It fails with ErrUnsupportedShape for sequence-like types that
	// cannot be encoded as lists, such as maps.
	Elem(t Type) (elem Type, ok bool, err error)
	// Describe returns the members and type-level overrides of an
	// object-shaped type.
	Describe(t Type) (*Description, error)
}

// ConventionSource is implemented by sources that know type-level convention
// overrides without describing the type. The override is looked up before
// classification, so it also reaches the element of a list type. A nil
// convention means no override.
type ConventionSource interface {
	Convention(t Type) (*naming.Convention, error)
}

// Description is the fixed description a Source gives for an object type.
type Description struct {
	// Convention overrides the caller convention for every member of the type.
	Convention *naming.Convention
	// Members in discovery order, transient ones included.
	Members []MemberSpec
	// Metadata is copied onto the resolved node.
	Metadata Metadata
}

// MemberSpec describes one member of an object type.
type MemberSpec struct {
	Name           string // declared name
	Type           Type   // declared type
	SerializedName string // explicit wire name, empty when none
	Transient      bool   // excluded from the wire format
	Mutable        bool   // assignable after default construction
	Index          []int  // reflect field index path, nil when not applicable
}
