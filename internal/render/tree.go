package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"fudge-schema/typegraph"
)

// TreeOptions configures Tree output.
type TreeOptions struct {
	NoColor bool
}

type treeStyle struct {
	typ       *color.Color
	name      *color.Color
	primitive *color.Color
	cycle     *color.Color
}

func newTreeStyle(opts TreeOptions) treeStyle {
	s := treeStyle{
		typ:       color.New(color.FgCyan),
		name:      color.New(color.Bold),
		primitive: color.New(color.FgGreen),
		cycle:     color.New(color.FgYellow),
	}

	if opts.NoColor {
		s.typ.DisableColor()
		s.name.DisableColor()
		s.primitive.DisableColor()
		s.cycle.DisableColor()
	}

	return s
}

// Tree writes every root as an indented tree. A node already printed on the
// current branch is marked as a cycle instead of being expanded again.
//
// Example output:
//
//	Order (object, camel)
//	├── orderId: int64
//	└── lines: []OrderLine (list)
//	    └── []: OrderLine (object, lower)
//	        └── order: Order (cycle)
func Tree(w io.Writer, opts TreeOptions, roots ...*typegraph.Node) error {
	var b strings.Builder

	style := newTreeStyle(opts)

	for _, r := range roots {
		writeNodeLine(&b, style, r)
		writeChildren(&b, style, r, "", map[*typegraph.Node]bool{r: true})
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func writeNodeLine(b *strings.Builder, s treeStyle, n *typegraph.Node) {
	switch n.Kind() {
	case typegraph.KindPrimitive:
		s.primitive.Fprint(b, Label(n))
	case typegraph.KindList:
		fmt.Fprintf(b, "%s (list)", s.typ.Sprint(Label(n)))
	default:
		fmt.Fprintf(b, "%s (object, %s)", s.typ.Sprint(Label(n)), n.Convention())
	}

	b.WriteString("\n")
}

func writeChildren(b *strings.Builder, s treeStyle, n *typegraph.Node, indent string, branch map[*typegraph.Node]bool) {
	type child struct {
		name string
		node *typegraph.Node
	}

	var children []child

	switch n.Kind() {
	case typegraph.KindList:
		children = append(children, child{name: "[]", node: n.Elem()})
	case typegraph.KindObject:
		for _, m := range n.Members() {
			children = append(children, child{name: m.SerializedName, node: m.Node()})
		}
	}

	for i, c := range children {
		connector, next := "├── ", "│   "
		if i == len(children)-1 {
			connector, next = "└── ", "    "
		}

		fmt.Fprintf(b, "%s%s%s: ", indent, connector, s.name.Sprint(c.name))

		if branch[c.node] {
			fmt.Fprintf(b, "%s %s\n", s.typ.Sprint(Label(c.node)), s.cycle.Sprint("(cycle)"))
			continue
		}

		writeNodeLine(b, s, c.node)

		branch[c.node] = true
		writeChildren(b, s, c.node, indent+next, branch)
		delete(branch, c.node)
	}
}
