package typegraph

import (
	"strings"
)

// TypePath builds a readable path from a root type to a nested member.
// Examples:
//   - "Order" for the root
//   - "Order.Lines" for a member
//   - "Order.Lines[]" for the element of a list member
//   - "Order.Lines[].Product" for a member of the list element
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a member name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice appends a list element indicator "[]" to the path.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}
	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = newParts[len(newParts)-1] + "[]"
	return &TypePath{parts: newParts}
}

// Depth returns the number of members between the root and the end of the path.
func (p *TypePath) Depth() int {
	return len(p.parts) - 1
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}
