package manifest

import (
	"errors"
	"fmt"
	"maps"

	"fudge-schema/primitive"
	"fudge-schema/typegraph"
)

// ErrUndeclaredType is returned when a reference names no declared type.
var ErrUndeclaredType = errors.New("undeclared type")

// Source is a typegraph.Source over the types declared in a manifest.
// Descriptions are built once when the Source is created; a Source is
// read-only afterwards and safe for concurrent use.
type Source struct {
	descriptions map[Ref]*typegraph.Description
}

// NewSource validates f in ModeDeclared and indexes its types.
func NewSource(f *File) (*Source, error) {
	diags := Validate(f, ModeDeclared)
	if err := diags.Err(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	s := &Source{
		descriptions: make(map[Ref]*typegraph.Description, len(f.Types)),
	}

	for i := range f.Types {
		desc, err := describe(&f.Types[i])
		if err != nil {
			return nil, err
		}

		s.descriptions[Ref(f.Types[i].Name)] = desc
	}

	return s, nil
}

func describe(t *TypeSpec) (*typegraph.Description, error) {
	convention, err := t.ConventionOverride()
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", t.Name, err)
	}

	desc := &typegraph.Description{
		Convention: convention,
		Members:    make([]typegraph.MemberSpec, 0, len(t.Members)),
		Metadata: typegraph.Metadata{
			// declared types decode into generic maps
			Factory:    func() any { return make(map[string]any) },
			Attributes: maps.Clone(t.Attributes),
		},
	}

	for _, m := range t.Members {
		desc.Members = append(desc.Members, typegraph.MemberSpec{
			Name:           m.Name,
			Type:           Ref(m.Type),
			SerializedName: m.Serialized,
			Transient:      m.Transient,
			Mutable:        !m.ReadOnly,
		})
	}

	return desc, nil
}

// Types returns the refs of every declared type.
func (s *Source) Types() []Ref {
	out := make([]Ref, 0, len(s.descriptions))
	for r := range s.descriptions {
		out = append(out, r)
	}

	return out
}

// Canonical implements typegraph.Source. Types other than Ref have no
// canonical form in a manifest.
func (s *Source) Canonical(t typegraph.Type) typegraph.Type {
	r, ok := t.(Ref)
	if !ok {
		return nil
	}

	return r.Canonical()
}

// Primitive implements typegraph.Source.
func (s *Source) Primitive(t typegraph.Type) (primitive.FieldType, bool) {
	return t.(Ref).Primitive()
}

// Elem implements typegraph.Source.
func (s *Source) Elem(t typegraph.Type) (typegraph.Type, bool, error) {
	r := t.(Ref)

	if r.IsMap() {
		return nil, false, fmt.Errorf("%w: %s has two type parameters", typegraph.ErrUnsupportedShape, r)
	}

	elem, ok := r.Elem()
	if !ok {
		return nil, false, nil
	}

	return elem, true, nil
}

// Describe implements typegraph.Source.
func (s *Source) Describe(t typegraph.Type) (*typegraph.Description, error) {
	r := t.(Ref)

	desc, ok := s.descriptions[r]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUndeclaredType, string(r))
	}

	return desc, nil
}
