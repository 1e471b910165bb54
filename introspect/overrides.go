package introspect

import (
	"fmt"
	"maps"
	"reflect"

	"fudge-schema/internal/common"
	"fudge-schema/internal/diagnostic"
	"fudge-schema/manifest"
	"fudge-schema/naming"
)

// TypeOverrides replaces what reflection and struct tags say about a type.
type TypeOverrides struct {
	// Convention fixes the naming convention of every member of the type.
	Convention *naming.Convention
	// Members is keyed by Go field name.
	Members map[string]MemberOverrides
	// Attributes are copied onto the node metadata.
	Attributes map[string]string
}

// MemberOverrides replaces the struct tag of one field.
type MemberOverrides struct {
	Name      string // explicit serialized name, empty keeps the derived one
	Transient bool
	ReadOnly  bool
}

// TypeID identifies a named Go type independently of a loaded reflect.Type.
type TypeID struct {
	PkgPath string // e.g. "example.com/shop"
	Name    string // e.g. "Order" or "List[int]"
}

// TypeIDOf returns the identity of a named type; unnamed types have an
// empty Name.
func TypeIDOf(rt reflect.Type) TypeID {
	return TypeID{PkgPath: rt.PkgPath(), Name: rt.Name()}
}

// Short returns "alias.Name", the form reflect.Type.String uses.
func (id TypeID) Short() string {
	if id.PkgPath == "" {
		return id.Name
	}

	return common.PkgAlias(id.PkgPath) + "." + id.Name
}

// String returns "pkgpath.Name".
func (id TypeID) String() string {
	if id.PkgPath == "" {
		return id.Name
	}

	return id.PkgPath + "." + id.Name
}

// Register sets the overrides of rt. A pointer type registers its element.
// Registering a type that was already described has no effect on nodes a
// cache has already built.
func (s *Source) Register(rt reflect.Type, ov TypeOverrides) error {
	if rt == nil {
		return fmt.Errorf("introspect: cannot register overrides for nil type")
	}

	rt = deref(rt)
	if rt.Kind() != reflect.Struct {
		return fmt.Errorf("introspect: overrides for %s: only struct types have members", rt)
	}

	if ov.Convention != nil {
		if err := ov.Convention.Validate(); err != nil {
			return fmt.Errorf("introspect: overrides for %s: %w", rt, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides[rt] = ov
	delete(s.described, rt)

	return nil
}

// Override is Register for the type parameter.
func Override[T any](s *Source, ov TypeOverrides) error {
	return s.Register(reflect.TypeFor[T](), ov)
}

// ApplyManifest registers the overrides listed in f. Entries are matched by
// TypeID ("example.com/shop.Order") or by its short form ("shop.Order")
// when a type is first described.
func (s *Source) ApplyManifest(f *manifest.File) error {
	diags := manifest.Validate(f, manifest.ModeOverrides)
	if err := diags.Err(); err != nil {
		return fmt.Errorf("invalid override manifest: %w", err)
	}

	for _, d := range diags.Select(diagnostic.SeverityWarning) {
		s.logger.Warn("override manifest", zapDiagnostic(d)...)
	}

	named := make(map[string]TypeOverrides, len(f.Types))

	for i := range f.Types {
		t := &f.Types[i]

		convention, err := t.ConventionOverride()
		if err != nil {
			return fmt.Errorf("type %s: %w", t.Name, err)
		}

		ov := TypeOverrides{
			Convention: convention,
			Members:    make(map[string]MemberOverrides, len(t.Members)),
			Attributes: maps.Clone(t.Attributes),
		}

		for _, m := range t.Members {
			ov.Members[m.Name] = MemberOverrides{
				Name:      m.Serialized,
				Transient: m.Transient,
				ReadOnly:  m.ReadOnly,
			}
		}

		named[t.Name] = ov
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.named, named)
	clear(s.described)

	return nil
}

// overridesFor returns the overrides of rt; s.mu must be held.
func (s *Source) overridesFor(rt reflect.Type) (TypeOverrides, bool) {
	if ov, ok := s.overrides[rt]; ok {
		return ov, true
	}

	if rt.Name() == "" {
		return TypeOverrides{}, false
	}

	id := TypeIDOf(rt)
	if ov, ok := s.named[id.String()]; ok {
		return ov, true
	}

	ov, ok := s.named[id.Short()]

	return ov, ok
}
