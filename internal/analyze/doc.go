// Package analyze loads Go packages with golang.org/x/tools/go/packages and
// describes their types to the schema resolver.
//
// Key types:
//   - TypeGraph: the named types of the loaded packages
//   - TypeInfo: one named type and its //fudge:convention directive
//   - Source: a typegraph.Source over go/types, the static counterpart of
//     the reflection-based introspect.Source
//
// A type doc comment may fix the naming convention of the type:
//
//	//fudge:convention camel
//	type Order struct { ... }
package analyze
