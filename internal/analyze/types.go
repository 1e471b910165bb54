package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"sort"
	"strings"

	"fudge-schema/introspect"
	"fudge-schema/naming"
)

// ErrTypeNotFound is returned by Lookup when no loaded type has the name.
var ErrTypeNotFound = errors.New("type not found")

// TypeInfo is one exported named type of a loaded package.
type TypeInfo struct {
	ID  introspect.TypeID
	Obj *types.TypeName

	// Convention is the value of the //fudge:convention directive, nil
	// when the type has none.
	Convention *naming.Convention
	// conventionErr is set when the directive names no convention; it is
	// reported when the type is resolved.
	conventionErr error
}

// Type returns the declared type of i.
func (i *TypeInfo) Type() Type {
	return Type{T: i.Obj.Type()}
}

// IsStruct reports whether i is a non-generic struct type, the types
// resolved when no name is given.
func (i *TypeInfo) IsStruct() bool {
	named, ok := i.Obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return false
	}

	_, ok = named.Underlying().(*types.Struct)

	return ok
}

// PackageInfo lists the types found in one package.
type PackageInfo struct {
	Path  string
	Name  string
	Types []introspect.TypeID
}

// TypeGraph holds the named types of every loaded package.
type TypeGraph struct {
	Types    map[introspect.TypeID]*TypeInfo
	Packages map[string]*PackageInfo

	byObj map[*types.TypeName]*TypeInfo
}

// NewTypeGraph creates an empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[introspect.TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
		byObj:    make(map[*types.TypeName]*TypeInfo),
	}
}

func (g *TypeGraph) add(info *TypeInfo) {
	g.Types[info.ID] = info
	g.byObj[info.Obj] = info
}

// GetType returns the type with the given id, or nil.
func (g *TypeGraph) GetType(id introspect.TypeID) *TypeInfo {
	return g.Types[id]
}

// infoOf returns the TypeInfo declaring obj, or nil for types outside the
// loaded packages.
func (g *TypeGraph) infoOf(obj *types.TypeName) *TypeInfo {
	return g.byObj[obj]
}

// Lookup finds a type by "example.com/shop.Order", "shop.Order" or "Order".
// A name matching types of several packages is an error.
func (g *TypeGraph) Lookup(name string) (*TypeInfo, error) {
	var found []*TypeInfo

	for id, info := range g.Types {
		if id.String() == name || id.Short() == name || id.Name == name {
			found = append(found, info)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	case 1:
		return found[0], nil
	}

	ids := make([]string, 0, len(found))
	for _, info := range found {
		ids = append(ids, info.ID.String())
	}
	sort.Strings(ids)

	return nil, fmt.Errorf("type %q is ambiguous: %s", name, strings.Join(ids, ", "))
}

// Structs returns the non-generic struct types ordered by id.
func (g *TypeGraph) Structs() []*TypeInfo {
	out := make([]*TypeInfo, 0, len(g.Types))
	for _, info := range g.Types {
		if info.IsStruct() {
			out = append(out, info)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})

	return out
}
