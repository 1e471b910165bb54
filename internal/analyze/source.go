package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/tools/go/types/typeutil"

	"fudge-schema/introspect"
	"fudge-schema/naming"
	"fudge-schema/primitive"
	"fudge-schema/typegraph"
)

// sequenceMethod marks a generic type as a list of its type argument, the
// static form of introspect.Sequence.
const sequenceMethod = "FudgeElem"

// Type is a typegraph.Type over a go/types type. Identical types are
// interned by Source.Canonical, so canonical Types compare equal exactly
// when their types are identical.
type Type struct {
	T types.Type
}

// String returns the type qualified by package name, e.g. "[]shop.Order".
func (t Type) String() string {
	return types.TypeString(t.T, func(p *types.Package) string { return p.Name() })
}

// Source is a typegraph.Source over the types of a TypeGraph. It reads the
// same struct tags as introspect.Source and is safe for concurrent use.
type Source struct {
	graph *TypeGraph
	tag   string

	mu        sync.Mutex
	canonical typeutil.Map
	described map[types.Type]*typegraph.Description
}

func newSource(g *TypeGraph, tag string) *Source {
	return &Source{
		graph:     g,
		tag:       tag,
		described: make(map[types.Type]*typegraph.Description),
	}
}

// Canonical implements typegraph.Source. It accepts a Type or a bare
// types.Type and removes pointer indirections.
func (s *Source) Canonical(t typegraph.Type) typegraph.Type {
	var gt types.Type

	switch v := t.(type) {
	case Type:
		gt = v.T
	case types.Type:
		gt = v
	}

	if gt == nil {
		return nil
	}

	gt = types.Unalias(gt)
	for {
		p, ok := gt.(*types.Pointer)
		if !ok {
			break
		}
		gt = types.Unalias(p.Elem())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rep, ok := s.canonical.At(gt).(types.Type); ok {
		return Type{T: rep}
	}
	s.canonical.Set(gt, gt)

	return Type{T: gt}
}

// Primitive implements typegraph.Source.
func (s *Source) Primitive(t typegraph.Type) (primitive.FieldType, bool) {
	ft := primitive.FromGoType(t.(Type).T)

	return ft, ft != 0
}

// Elem implements typegraph.Source.
func (s *Source) Elem(t typegraph.Type) (typegraph.Type, bool, error) {
	gt := t.(Type).T

	switch u := gt.Underlying().(type) {
	case *types.Slice:
		return Type{T: u.Elem()}, true, nil
	case *types.Array:
		return Type{T: u.Elem()}, true, nil
	case *types.Map:
		return nil, false, fmt.Errorf("%w: map %s has two type parameters", typegraph.ErrUnsupportedShape, t)
	case *types.Basic, *types.Pointer, *types.Chan, *types.Signature, *types.Interface:
		return nil, false, fmt.Errorf("%w: %s has no encodable shape", typegraph.ErrUnsupportedShape, t)
	}

	named, ok := gt.(*types.Named)
	if !ok || !hasMethod(named, sequenceMethod) {
		return nil, false, nil
	}

	if args := named.TypeArgs(); args.Len() == 1 {
		return Type{T: args.At(0)}, true, nil
	}

	return nil, false, fmt.Errorf("%w: element type of %s is only known at run time", typegraph.ErrUnsupportedShape, t)
}

// Convention implements typegraph.ConventionSource with the convention
// directive of the type declaration.
func (s *Source) Convention(t typegraph.Type) (*naming.Convention, error) {
	named, ok := t.(Type).T.(*types.Named)
	if !ok {
		return nil, nil
	}

	info := s.graph.infoOf(named.Origin().Obj())
	if info == nil {
		return nil, nil
	}

	return info.Convention, info.conventionErr
}

// Describe implements typegraph.Source for struct types. Descriptions are
// memoized per canonical type.
func (s *Source) Describe(t typegraph.Type) (*typegraph.Description, error) {
	gt := t.(Type).T

	st, ok := gt.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%w: %s is neither primitive, list nor struct", typegraph.ErrUnsupportedShape, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if desc, ok := s.described[gt]; ok {
		return desc, nil
	}

	desc := &typegraph.Description{}

	if named, ok := gt.(*types.Named); ok {
		if pkg := named.Obj().Pkg(); pkg != nil {
			desc.Metadata.Attributes = map[string]string{"package": pkg.Path()}
		}
	}

	for _, f := range visibleFields(st) {
		if !f.v.Exported() {
			continue
		}

		tag := introspect.ParseTag(reflect.StructTag(f.tag), s.tag)

		desc.Members = append(desc.Members, typegraph.MemberSpec{
			Name:           f.v.Name(),
			Type:           Type{T: f.v.Type()},
			SerializedName: tag.Name,
			Transient:      tag.Transient,
			Mutable:        !tag.ReadOnly && !f.viaPointer,
			Index:          f.index,
		})
	}

	s.described[gt] = desc

	return desc, nil
}

// field is a struct field reachable from an outer struct.
type field struct {
	v          *types.Var
	tag        string
	index      []int
	viaPointer bool // promoted through an embedded pointer
}

// visibleFields returns the fields of st, promoted ones included, in
// declaration order. Embedded structs are replaced by their fields, a name
// promoted from deeper levels is shadowed by a shallower one, and names
// promoted twice at the same depth are dropped, as in Go selectors.
// Embedded primitives such as time.Time stay fields.
func visibleFields(st *types.Struct) []field {
	type candidate struct {
		field
		depth int
	}

	var all []candidate

	var walk func(st *types.Struct, index []int, viaPointer bool, visiting map[*types.Struct]bool)
	walk = func(st *types.Struct, index []int, viaPointer bool, visiting map[*types.Struct]bool) {
		visiting[st] = true
		defer delete(visiting, st)

		for i := range st.NumFields() {
			v := st.Field(i)
			idx := append(slices.Clone(index), i)

			if v.Embedded() {
				ft, ptr := types.Unalias(v.Type()), false
				if p, ok := ft.(*types.Pointer); ok {
					ft, ptr = types.Unalias(p.Elem()), true
				}

				if es, ok := ft.Underlying().(*types.Struct); ok && primitive.FromGoType(ft) == 0 {
					if !visiting[es] {
						walk(es, idx, viaPointer || ptr, visiting)
					}
					continue
				}
			}

			all = append(all, candidate{
				field: field{v: v, tag: st.Tag(i), index: idx, viaPointer: viaPointer},
				depth: len(index),
			})
		}
	}

	walk(st, nil, false, make(map[*types.Struct]bool))

	best := make(map[string]int)
	count := make(map[string]int)

	for _, c := range all {
		d, seen := best[c.v.Name()]
		switch {
		case !seen || c.depth < d:
			best[c.v.Name()] = c.depth
			count[c.v.Name()] = 1
		case c.depth == d:
			count[c.v.Name()]++
		}
	}

	out := make([]field, 0, len(all))
	for _, c := range all {
		if c.depth == best[c.v.Name()] && count[c.v.Name()] == 1 {
			out = append(out, c.field)
		}
	}

	return out
}

func hasMethod(named *types.Named, name string) bool {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(named), false, named.Obj().Pkg(), name)
	_, ok := obj.(*types.Func)

	return ok
}
