package depgraph

import (
	"fmt"
	"sort"
	"strings"
)

// RenderDOT renders g as Graphviz DOT source. Vertices in the
// highlight set are filled in a distinct color (spec.md §4.6
// "Rendering"); self-edges are omitted regardless of how they arose
// during construction.
func RenderDOT(g *Graph, highlight map[string]bool) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  bgcolor=\"white\";\n")
	b.WriteString("  node [fontcolor=\"black\", color=\"black\"];\n")

	vertices := g.Vertices()
	sort.Strings(vertices)
	for _, v := range vertices {
		if highlight[v] {
			fmt.Fprintf(&b, "  %q [style=filled, fillcolor=\"#ffcc66\"];\n", v)
		} else {
			fmt.Fprintf(&b, "  %q;\n", v)
		}
	}

	for _, from := range vertices {
		succs := g.Successors(from)
		sort.Strings(succs)
		for _, to := range succs {
			if from == to {
				continue
			}
			fmt.Fprintf(&b, "  %q -> %q;\n", from, to)
		}
	}

	b.WriteString("}\n")
	return b.String()
}
