// Package typegraph resolves native types into the schema nodes used by the
// Fudge encoder and decoder.
//
// A Cache holds at most one Node per (type, naming convention) pair. Nodes
// are built in two phases: a pending node is registered before its element
// or members are resolved, so self-referential and mutually recursive types
// terminate by handing out the pending node, and the whole set of nodes built
// by one top-level Resolve is published only once every one of them is
// complete. A failed build publishes nothing.
//
// Key types:
//   - Type: comparable identity of a native type (reflect.Type satisfies it)
//   - Source: describes native types (primitive lookup, list shape, members)
//   - ConventionSource: optional type-level convention, applied before the
//     list check so that it also reaches list elements
//   - Node: kind (primitive/list/object), element node, field type, members
//   - Member: raw name, wire name, member node, mutability
package typegraph
