package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry answers whether a Go type is a known atomic wire field type.
// Explicit registrations take precedence over the structural rules of
// FromReflectType. A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]FieldType
}

// Entry is a single (type, field type) association in a Registry snapshot.
type Entry struct {
	Type      reflect.Type
	FieldType FieldType
}

// NewRegistry creates a Registry that knows the structural primitives only.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[reflect.Type]FieldType),
	}
}

// Register maps t onto ft. Re-registering a type replaces the previous entry.
func (r *Registry) Register(t reflect.Type, ft FieldType) error {
	if t == nil {
		return errors.New("primitive: cannot register nil type")
	}
	if !ft.Valid() {
		return fmt.Errorf("primitive: invalid field type %s for %s", ft, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[t] = ft
	return nil
}

// Lookup returns the field type of t, or false when t is not a primitive.
func (r *Registry) Lookup(t reflect.Type) (FieldType, bool) {
	if t == nil {
		return 0, false
	}

	r.mu.RLock()
	ft, ok := r.types[t]
	r.mu.RUnlock()

	if ok {
		return ft, true
	}

	ft = FromReflectType(t)

	return ft, ft != 0
}

// Entries returns the explicit registrations ordered by type name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.types))
	for t, ft := range r.types {
		out = append(out, Entry{Type: t, FieldType: ft})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Type.String() < out[j].Type.String()
	})

	return out
}
