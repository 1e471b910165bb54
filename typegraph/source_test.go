package typegraph

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"fudge-schema/naming"
	"fudge-schema/primitive"
)

// fakeType is a string identity; "*X" canonicalizes to "X".
type fakeType string

func (f fakeType) String() string { return string(f) }

// fakeSource is an in-memory Source used by the cache tests.
type fakeSource struct {
	mu         sync.Mutex
	primitives  map[fakeType]primitive.FieldType
	lists       map[fakeType]fakeType
	objects     map[fakeType]*Description
	failures    map[fakeType]error
	describes   map[fakeType]int
	conventions map[fakeType]naming.Convention
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		primitives: map[fakeType]primitive.FieldType{
			"string": primitive.FieldString,
			"int32":  primitive.FieldInt32,
			"int64":  primitive.FieldInt64,
		},
		lists:       make(map[fakeType]fakeType),
		objects:     make(map[fakeType]*Description),
		failures:    make(map[fakeType]error),
		describes:   make(map[fakeType]int),
		conventions: make(map[fakeType]naming.Convention),
	}
}

func (s *fakeSource) object(name string, members ...MemberSpec) *Description {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &Description{Members: members}
	s.objects[fakeType(name)] = d

	return d
}

func (s *fakeSource) list(name, elem string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[fakeType(name)] = fakeType(elem)
}

func (s *fakeSource) fail(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, fakeType(name))
		return
	}
	s.failures[fakeType(name)] = err
}

func (s *fakeSource) describeCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.describes[fakeType(name)]
}

func (s *fakeSource) Canonical(t Type) Type {
	ft, ok := t.(fakeType)
	if !ok {
		return nil
	}

	return fakeType(strings.TrimLeft(string(ft), "*"))
}

func (s *fakeSource) Primitive(t Type) (primitive.FieldType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ft, ok := s.primitives[t.(fakeType)]

	return ft, ok
}

func (s *fakeSource) Elem(t Type) (Type, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := t.(fakeType)
	if strings.HasPrefix(string(name), "map[") {
		return nil, false, fmt.Errorf("%w: %s has two type parameters", ErrUnsupportedShape, name)
	}

	if strings.HasPrefix(string(name), "[]") {
		return name[2:], true, nil
	}

	elem, ok := s.lists[name]
	if !ok {
		return nil, false, nil
	}

	return elem, true, nil
}

func (s *fakeSource) Describe(t Type) (*Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := t.(fakeType)
	s.describes[name]++

	if err, ok := s.failures[name]; ok {
		return nil, err
	}

	d, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not declared", ErrUnsupportedShape, name)
	}

	return d, nil
}

func (s *fakeSource) Convention(t Type) (*naming.Convention, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conventions[t.(fakeType)]
	if !ok {
		return nil, nil
	}

	return &c, nil
}

func member(name, typ string) MemberSpec {
	return MemberSpec{Name: name, Type: fakeType(typ), Mutable: true}
}

func conventionPtr(c naming.Convention) *naming.Convention {
	return &c
}

var errBroken = errors.New("broken description")
