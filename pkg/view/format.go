package view

import (
	"fmt"
	"reflect"
	"strings"
)

// Describer is implemented by views that provide a one-line summary for
// FormatTree.
type Describer interface {
	Describe() string
}

// Describe returns the one-line summary of v, falling back to its type name.
func Describe(v View) string {
	if d, ok := v.node().Self().(Describer); ok {
		return d.Describe()
	}
	return TypeName(v)
}

// TypeName returns the name of v's concrete type without package, pointer
// or type arguments.
func TypeName(v View) string {
	t := reflect.TypeOf(v.node().Self())
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name, _, _ := strings.Cut(t.Name(), "[")
	return name
}

// FormatTree renders v and its subviews as a tab-indented outline. Pinned
// views list their edge constants in brackets.
func FormatTree(v View) string {
	var sb strings.Builder
	seen := map[*Node]struct{}{}
	var visit func(v View, depth int)
	visit = func(v View, depth int) {
		n := v.node()
		if _, ok := seen[n]; ok {
			panic("view tree is actually a circular graph")
		}
		seen[n] = struct{}{}

		sb.WriteString(strings.Repeat("\t", depth))
		sb.WriteString(Describe(v))
		if edges := formatEdges(n); edges != "" {
			fmt.Fprintf(&sb, " [%s]", edges)
		}
		sb.WriteString("\n")
		for _, child := range n.subviews {
			visit(child, depth+1)
		}
	}
	visit(v, 0)
	return sb.String()
}

func formatEdges(n *Node) string {
	var parts []string
	for _, c := range n.constraints {
		parts = append(parts, c.Describe())
	}
	return strings.Join(parts, " ")
}
