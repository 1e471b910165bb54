package manifest

import (
	"strings"

	"fudge-schema/primitive"
)

// Ref identifies a manifest type by its reference expression, e.g.
// "Person", "[]Person" or "int64". Refs are comparable and are used directly
// as typegraph.Type values.
type Ref string

// String implements typegraph.Type.
func (r Ref) String() string {
	return string(r)
}

// Canonical strips surrounding spaces and pointer markers.
func (r Ref) Canonical() Ref {
	s := strings.TrimSpace(string(r))
	for strings.HasPrefix(s, "*") {
		s = strings.TrimSpace(s[1:])
	}

	return Ref(s)
}

// Elem returns the element of a "[]T" or "[N]T" reference.
func (r Ref) Elem() (Ref, bool) {
	s := string(r.Canonical())
	if !strings.HasPrefix(s, "[") {
		return "", false
	}

	end := strings.IndexByte(s, ']')
	if end < 0 || end == len(s)-1 {
		return "", false
	}

	for _, c := range s[1:end] {
		if c < '0' || c > '9' {
			return "", false
		}
	}

	return Ref(s[end+1:]).Canonical(), true
}

// IsMap reports whether r is a "map[K]V" expression.
func (r Ref) IsMap() bool {
	return strings.HasPrefix(string(r.Canonical()), "map[")
}

// Primitive returns the field type of a primitive name. Lists of bytes
// ("[]byte", "[16]uint8") are the bytes primitive, not lists.
func (r Ref) Primitive() (primitive.FieldType, bool) {
	c := r.Canonical()
	if _, ok := c.Elem(); ok {
		if c.isByteList() {
			return primitive.FieldBytes, true
		}

		return 0, false
	}

	return primitive.ParseFieldType(string(c))
}

// isByteList reports whether a list ref has byte elements; pointer
// elements do not count.
func (r Ref) isByteList() bool {
	s := string(r)
	elem := strings.TrimSpace(s[strings.IndexByte(s, ']')+1:])
	ft, ok := primitive.ParseFieldType(elem)

	return ok && ft == primitive.FieldUint8
}

// Base strips list and pointer wrappers: "[]*Person" -> "Person".
func (r Ref) Base() Ref {
	base := r.Canonical()
	for {
		elem, ok := base.Elem()
		if !ok {
			return base
		}
		base = elem
	}
}

// isPlainName reports whether name can be declared as a type: no
// expression syntax and no spaces.
func isPlainName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "[]*{}() \t")
}
