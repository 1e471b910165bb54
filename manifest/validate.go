package manifest

import (
	"fudge-schema/internal/diagnostic"
	"fudge-schema/naming"
)

// Mode selects how Validate interprets a manifest.
type Mode int

const (
	// ModeDeclared requires every member to have a resolvable type.
	ModeDeclared Mode = iota
	// ModeOverrides treats entries as overrides of Go types; member types
	// are ignored.
	ModeOverrides
)

// Validate checks a manifest structurally and reports every problem found.
func Validate(f *File, mode Mode) *diagnostic.Report {
	res := &diagnostic.Report{}
	if f == nil {
		res.Errorf("manifest_is_nil", "", "", "manifest is nil")
		return res
	}

	if f.Version != CurrentVersion {
		res.Errorf("unsupported_version", "", "", "unsupported manifest version %q", f.Version)
	}

	declared := make(map[string]struct{}, len(f.Types))

	for i := range f.Types {
		t := &f.Types[i]

		if t.Name == "" {
			res.Errorf("empty_type_name", "", "", "type #%d has no name", i+1)
			continue
		}

		if _, dup := declared[t.Name]; dup {
			res.Errorf("duplicate_type", t.Name, "", "type %q declared more than once", t.Name)
			continue
		}
		declared[t.Name] = struct{}{}

		if mode == ModeDeclared {
			if !isPlainName(t.Name) {
				res.Errorf("invalid_type_name", t.Name, "", "type name %q is not a plain identifier", t.Name)
			} else if _, ok := Ref(t.Name).Primitive(); ok {
				res.Errorf("primitive_shadowed", t.Name, "", "type %q shadows a primitive", t.Name)
			}
		}

		if _, err := naming.Parse(t.Convention); err != nil {
			res.Errorf("unknown_convention", t.Name, "", "%v", err)
		}

		if mode == ModeDeclared && len(t.Members) == 0 {
			res.Infof("empty_object", t.Name, "", "type has no members and encodes as an empty message")
		}

		validateMembers(res, t, mode)
	}

	if mode == ModeDeclared {
		validateReferences(res, f, declared)
	}

	return res
}

func validateMembers(res *diagnostic.Report, t *TypeSpec, mode Mode) {
	seen := make(map[string]struct{}, len(t.Members))
	serialized := make(map[string]string, len(t.Members))

	for i := range t.Members {
		m := &t.Members[i]

		if m.Name == "" {
			res.Errorf("empty_member_name", t.Name, "", "member #%d has no name", i+1)
			continue
		}

		if _, dup := seen[m.Name]; dup {
			res.Errorf("duplicate_member", t.Name, m.Name, "member %q declared more than once", m.Name)
			continue
		}
		seen[m.Name] = struct{}{}

		switch {
		case mode == ModeDeclared && m.Type == "":
			res.Errorf("missing_member_type", t.Name, m.Name, "member has no type")
		case mode == ModeOverrides && m.Type != "":
			res.Warnf("member_type_ignored", t.Name, m.Name, "member types of Go types come from the Go declaration")
		}

		if m.Transient && m.Serialized != "" {
			res.Warnf("serialized_name_unused", t.Name, m.Name, "transient member has a serialized name")
		}

		if m.Serialized != "" && !m.Transient {
			if other, dup := serialized[m.Serialized]; dup {
				res.Warnf("duplicate_serialized_name", t.Name, m.Name, "serialized name %q is also used by %q", m.Serialized, other)
			}
			serialized[m.Serialized] = m.Name
		}
	}
}

// validateReferences checks that every member type reaches a primitive or
// a declared type.
func validateReferences(res *diagnostic.Report, f *File, declared map[string]struct{}) {
	for i := range f.Types {
		t := &f.Types[i]

		for j := range t.Members {
			m := &t.Members[j]
			if m.Type == "" || m.Name == "" {
				continue
			}

			base := Ref(m.Type).Base()

			if base.IsMap() {
				res.Errorf("unsupported_map", t.Name, m.Name, "map type %q cannot be encoded", m.Type)
				continue
			}

			if _, ok := base.Primitive(); ok {
				continue
			}

			if _, ok := declared[string(base)]; !ok {
				res.Errorf("unknown_type", t.Name, m.Name, "type %q is not declared", base)
			}
		}
	}
}
