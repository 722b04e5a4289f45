// Package depgraph computes the dependency graph over a compiled
// transition system's state variables and answers cone-of-influence
// queries against it (spec.md §4.6). Package layout grounded on
// internal/strategy: the teacher's worklist abstraction over global
// states during symbolic execution, generalized here to a worklist
// over state-variable identities during reachability search.
package depgraph

import (
	"sync"

	"lustrecore/internal/term"
)

// Graph is a directed graph over state-variable identities.
type Graph struct {
	mu       sync.Mutex
	vertices map[string]bool
	edges    map[string]map[string]bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{vertices: make(map[string]bool), edges: make(map[string]map[string]bool)}
}

// AddVertex ensures id is present even if it ends up with no edges.
func (g *Graph) AddVertex(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vertices[id] = true
	if g.edges[id] == nil {
		g.edges[id] = make(map[string]bool)
	}
}

// AddEdge records a directed edge from -> to.
func (g *Graph) AddEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vertices[from] = true
	g.vertices[to] = true
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]bool)
	}
	g.edges[from][to] = true
}

// Successors returns the vertices id has an outgoing edge to.
func (g *Graph) Successors(id string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.edges[id]))
	for v := range g.edges[id] {
		out = append(out, v)
	}
	return out
}

// Vertices returns every vertex in the graph, in no particular order.
func (g *Graph) Vertices() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.vertices))
	for v := range g.vertices {
		out = append(out, v)
	}
	return out
}

// collectStateVars walks n and returns the identity of every
// state-variable reference found, deduplicated, using the same
// `scope::name` identity format as nodegen.StateVariable.Identity.
func collectStateVars(n *term.Node) []string {
	seen := make(map[string]bool)
	var walk func(*term.Node)
	walk = func(n *term.Node) {
		if n == nil {
			return
		}
		if v := n.Variable(); v != nil {
			switch v.Kind() {
			case term.VarStateInstance, term.VarConstState:
				ref := v.StateVar()
				seen[ref.Scope+"::"+ref.Name] = true
			}
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	return out
}

// SubsystemMapping is one parent/child state-variable correspondence at
// a node-call instantiation site (spec.md §4.6's "for each subsystem
// instance, for each mapping sv_parent <-> sv_child").
type SubsystemMapping struct {
	Parent, Child string
}

// BuildGraph implements spec.md §4.6's construction rules: definitions
// contribute lhs->rhs edges per referenced state variable; every other
// term in the transition system contributes a clique over its
// referenced state variables; subsystem mappings contribute
// bidirectional edges.
func BuildGraph(definitions map[string]*term.Node, otherTerms []*term.Node, mappings []SubsystemMapping) *Graph {
	g := NewGraph()
	for lhs, rhs := range definitions {
		g.AddVertex(lhs)
		for _, rv := range collectStateVars(rhs) {
			g.AddEdge(lhs, rv)
		}
	}
	for _, t := range otherTerms {
		vars := collectStateVars(t)
		for _, a := range vars {
			g.AddVertex(a)
			for _, b := range vars {
				if a != b {
					g.AddEdge(a, b)
				}
			}
		}
	}
	for _, m := range mappings {
		g.AddEdge(m.Parent, m.Child)
		g.AddEdge(m.Child, m.Parent)
	}
	return g
}

// PruneDefinitionSet removes from the definition set any definition
// whose left-hand side is transitively reachable, via the raw
// dependency edges, from one of the guaranteeAtoms.
func PruneDefinitionSet(definitions map[string]*term.Node, guaranteeAtoms []string) map[string]*term.Node {
	raw := BuildGraph(definitions, nil, nil)
	reached := ForwardReachable(raw, guaranteeAtoms, nil)
	pruned := make(map[string]*term.Node, len(definitions))
	for lhs, rhs := range definitions {
		if reached[lhs] {
			continue
		}
		pruned[lhs] = rhs
	}
	return pruned
}
