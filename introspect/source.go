package introspect

import (
	"fmt"
	"maps"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"fudge-schema/internal/diagnostic"
	"fudge-schema/naming"
	"fudge-schema/primitive"
	"fudge-schema/typegraph"
)

// Sequence is implemented by types that encode as a list of FudgeElem
// values even though they are not slices, e.g. a generic collection.
// FudgeElem is called on the zero value.
type Sequence interface {
	FudgeElem() reflect.Type
}

// ConventionProvider is implemented by types that fix the naming convention
// of their own members. FudgeConvention is called on the zero value.
type ConventionProvider interface {
	FudgeConvention() naming.Convention
}

var (
	sequenceType           = reflect.TypeFor[Sequence]()
	conventionProviderType = reflect.TypeFor[ConventionProvider]()
)

// Source is a typegraph.Source over reflect.Type values. It is safe for
// concurrent use.
type Source struct {
	registry *primitive.Registry
	tag      string
	logger   *zap.Logger

	mu        sync.RWMutex
	overrides map[reflect.Type]TypeOverrides
	named     map[string]TypeOverrides
	described map[reflect.Type]*typegraph.Description
}

// Option configures a Source.
type Option func(*Source)

// WithRegistry sets the primitive registry. Defaults to an empty registry
// that knows the structural primitives only.
func WithRegistry(r *primitive.Registry) Option {
	return func(s *Source) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithTag sets the struct tag key. Defaults to DefaultTag.
func WithTag(key string) Option {
	return func(s *Source) {
		if key != "" {
			s.tag = key
		}
	}
}

// WithLogger sets the logger used for override warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Source.
func New(opts ...Option) *Source {
	s := &Source{
		registry:  primitive.NewRegistry(),
		tag:       DefaultTag,
		logger:    zap.NewNop(),
		overrides: make(map[reflect.Type]TypeOverrides),
		named:     make(map[string]TypeOverrides),
		described: make(map[reflect.Type]*typegraph.Description),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Canonical implements typegraph.Source.
func (s *Source) Canonical(t typegraph.Type) typegraph.Type {
	rt, ok := t.(reflect.Type)
	if !ok || rt == nil {
		return nil
	}

	return deref(rt)
}

// Primitive implements typegraph.Source.
func (s *Source) Primitive(t typegraph.Type) (primitive.FieldType, bool) {
	return s.registry.Lookup(t.(reflect.Type))
}

// Elem implements typegraph.Source.
func (s *Source) Elem(t typegraph.Type) (typegraph.Type, bool, error) {
	rt := t.(reflect.Type)

	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		return rt.Elem(), true, nil
	case reflect.Map:
		return nil, false, fmt.Errorf("%w: map %s has two type parameters", typegraph.ErrUnsupportedShape, rt)
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer,
		reflect.Complex64, reflect.Complex128, reflect.Uintptr:
		return nil, false, fmt.Errorf("%w: %s kind %s", typegraph.ErrUnsupportedShape, rt, rt.Kind())
	}

	if seq, ok := capability[Sequence](rt, sequenceType); ok {
		elem := seq.FudgeElem()
		if elem == nil {
			return nil, false, fmt.Errorf("%w: %s reports no element type", typegraph.ErrUnsupportedShape, rt)
		}

		return elem, true, nil
	}

	return nil, false, nil
}

// Convention implements typegraph.ConventionSource, so a list type such as a
// Sequence passes its override on to the element.
func (s *Source) Convention(t typegraph.Type) (*naming.Convention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.conventionOf(t.(reflect.Type)), nil
}

// conventionOf returns the registered convention of rt, else the one its
// ConventionProvider reports; s.mu must be held.
func (s *Source) conventionOf(rt reflect.Type) *naming.Convention {
	if ov, _ := s.overridesFor(rt); ov.Convention != nil {
		return ov.Convention
	}

	if cp, ok := capability[ConventionProvider](rt, conventionProviderType); ok {
		c := cp.FudgeConvention()
		return &c
	}

	return nil
}

// Describe implements typegraph.Source. Descriptions are memoized per type.
func (s *Source) Describe(t typegraph.Type) (*typegraph.Description, error) {
	rt := t.(reflect.Type)
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is neither primitive, list nor struct", typegraph.ErrUnsupportedShape, rt)
	}

	s.mu.RLock()
	desc, ok := s.described[rt]
	s.mu.RUnlock()

	if ok {
		return desc, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if desc, ok := s.described[rt]; ok {
		return desc, nil
	}

	desc = s.describe(rt)
	s.described[rt] = desc

	return desc, nil
}

// describe scans the fields of struct type rt; s.mu must be held.
func (s *Source) describe(rt reflect.Type) *typegraph.Description {
	ov, hasOverrides := s.overridesFor(rt)

	desc := &typegraph.Description{
		Convention: s.conventionOf(rt),
		Metadata: typegraph.Metadata{
			Factory:    func() any { return reflect.New(rt).Interface() },
			Attributes: maps.Clone(ov.Attributes),
		},
	}

	used := make(map[string]bool, len(ov.Members))

	for _, f := range reflect.VisibleFields(rt) {
		if !f.IsExported() || s.isEmbeddedStruct(f) {
			continue
		}

		tag := ParseTag(f.Tag, s.tag)
		if mo, ok := ov.Members[f.Name]; ok {
			used[f.Name] = true
			tag = Tag{
				Name:      mo.Name,
				Transient: mo.Transient,
				ReadOnly:  mo.ReadOnly,
			}
		}

		desc.Members = append(desc.Members, typegraph.MemberSpec{
			Name:           f.Name,
			Type:           f.Type,
			SerializedName: tag.Name,
			Transient:      tag.Transient,
			Mutable:        !tag.ReadOnly && !throughPointer(rt, f.Index),
			Index:          f.Index,
		})
	}

	if hasOverrides {
		for name := range ov.Members {
			if !used[name] {
				s.logger.Warn("override names an unknown member",
					zap.Stringer("type", rt),
					zap.String("member", name),
				)
			}
		}
	}

	return desc
}

// capability returns the zero value of rt, or of *rt, as an I.
func capability[I any](rt, iface reflect.Type) (I, bool) {
	var zero I

	if rt.Kind() == reflect.Interface {
		return zero, false
	}

	if rt.Implements(iface) {
		v, ok := reflect.Zero(rt).Interface().(I)
		return v, ok
	}

	if reflect.PointerTo(rt).Implements(iface) {
		v, ok := reflect.New(rt).Interface().(I)
		return v, ok
	}

	return zero, false
}

func deref(rt reflect.Type) reflect.Type {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	return rt
}

// isEmbeddedStruct reports whether f embeds a struct whose fields are
// promoted; the embedded field itself is not a member. Embedded primitives
// such as time.Time stay members.
func (s *Source) isEmbeddedStruct(f reflect.StructField) bool {
	if !f.Anonymous {
		return false
	}

	rt := deref(f.Type)
	if _, ok := s.registry.Lookup(rt); ok {
		return false
	}

	return rt.Kind() == reflect.Struct
}

// throughPointer reports whether the field at index is reached through an
// embedded pointer, which is nil after default construction.
func throughPointer(rt reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		ft := rt.Field(i).Type
		if ft.Kind() == reflect.Pointer {
			return true
		}
		rt = ft
	}

	return false
}

func zapDiagnostic(d diagnostic.Diagnostic) []zap.Field {
	return []zap.Field{
		zap.String("code", d.Code),
		zap.String("type", d.Type),
		zap.String("member", d.Member),
		zap.String("message", d.Message),
	}
}
