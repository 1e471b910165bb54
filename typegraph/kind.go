package typegraph

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the shape classification of a Node.
type Kind int

const (
	_ Kind = iota // zero value marks a node that has not been classified yet

	KindPrimitive // primitive
	KindList      // list
	KindObject    // object
)
