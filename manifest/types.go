package manifest

import (
	"fudge-schema/naming"
)

// CurrentVersion is the manifest schema version written by Marshal.
const CurrentVersion = "1"

// File is the root of a manifest.
type File struct {
	Version string     `yaml:"version"`
	Types   []TypeSpec `yaml:"types"`
}

// TypeSpec declares one type, or the overrides of one Go type.
type TypeSpec struct {
	Name       string            `yaml:"name"`
	Convention string            `yaml:"convention,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Members    []MemberSpec      `yaml:"members,omitempty"`
}

// MemberSpec declares one member of a type.
type MemberSpec struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type,omitempty"`
	Serialized string `yaml:"serialized,omitempty"`
	Transient  bool   `yaml:"transient,omitempty"`
	ReadOnly   bool   `yaml:"readonly,omitempty"`
}

// Type returns the spec with the given name.
func (f *File) Type(name string) (*TypeSpec, bool) {
	for i := range f.Types {
		if f.Types[i].Name == name {
			return &f.Types[i], true
		}
	}

	return nil, false
}

// TypeNames returns the declared type names in file order.
func (f *File) TypeNames() []string {
	names := make([]string, 0, len(f.Types))
	for _, t := range f.Types {
		names = append(names, t.Name)
	}

	return names
}

// ConventionOverride parses the type-level convention; nil when unset.
func (t *TypeSpec) ConventionOverride() (*naming.Convention, error) {
	if t.Convention == "" {
		return nil, nil
	}

	c, err := naming.Parse(t.Convention)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Member returns the member spec with the given name.
func (t *TypeSpec) Member(name string) (*MemberSpec, bool) {
	for i := range t.Members {
		if t.Members[i].Name == name {
			return &t.Members[i], true
		}
	}

	return nil, false
}
