// Package introspect describes Go types to the type-graph resolver through
// reflection.
//
// Struct types become objects whose members are the exported fields in
// declaration order, with the fields of embedded structs inlined at the
// embedding position. Slices and arrays become lists, as does any type
// implementing Sequence. Pointers share the node of their element type.
// Maps, channels, functions, interfaces and complex numbers cannot be
// encoded and fail with typegraph.ErrUnsupportedShape.
//
// Member names come from, in order of precedence:
//   - a registered override (Register, ApplyManifest)
//   - the `fudge` struct tag
//   - the naming convention of the type (ConventionProvider or override)
//   - the convention requested by the caller
//
// Struct tag format:
//
//	Name   string `fudge:"name"`            // explicit serialized name
//	Secret string `fudge:"-"`               // transient
//	Cache  []byte `fudge:",transient"`      // transient
//	ID     int64  `fudge:"id,readonly"`     // not assignable by the decoder
package introspect
