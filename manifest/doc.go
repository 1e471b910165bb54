// Package manifest provides the YAML schema, loading, and validation of
// type manifests, and a typegraph.Source over the types they declare.
//
// A manifest has two uses:
//
//   - Declared types: every member carries a type reference and the
//     manifest alone describes the type graph (ModeDeclared, NewSource).
//   - Overrides: entries name Go types and only adjust naming, transience
//     and mutability of their members (ModeOverrides, see package introspect).
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - name: Person
//	    convention: camel        # identity | lower | upper | camel | pascal
//	    attributes:
//	      owner: crm
//	    members:
//	      - name: UserId
//	        type: int64
//	        serialized: uid      # explicit wire name
//	      - name: Password
//	        type: string
//	        transient: true      # never written
//	      - name: CreatedAt
//	        type: time
//	        readonly: true       # set through construction only
//	      - name: Friends
//	        type: "[]Person"     # list of Person
//
// # Type references
//
//   - primitive names: bool, int, int8 .. int64, uint .. uint64, float32,
//     float64, string, bytes, time, duration, enum
//   - "[]T" and "[N]T": list of T
//   - "*T": same as T
//   - any other name: a type declared in the same manifest
//
// "map[K]V" references are rejected, maps have no list or object encoding.
package manifest
