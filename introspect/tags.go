package introspect

import (
	"reflect"
	"strings"
)

// DefaultTag is the struct tag key read for member options.
const DefaultTag = "fudge"

// Tag is the parsed form of one struct tag value.
type Tag struct {
	Name      string
	Transient bool
	ReadOnly  bool
}

// ParseTag reads the key of tag the same way encoding/json reads "json":
// a name followed by comma-separated options.
func ParseTag(tag reflect.StructTag, key string) Tag {
	value, ok := tag.Lookup(key)
	if !ok {
		return Tag{}
	}

	if value == "-" {
		return Tag{Transient: true}
	}

	name, opts, _ := strings.Cut(value, ",")
	ft := Tag{Name: strings.TrimSpace(name)}

	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")

		switch strings.TrimSpace(opt) {
		case "transient":
			ft.Transient = true
		case "readonly":
			ft.ReadOnly = true
		}
	}

	return ft
}
