package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lustrecore/internal/term"
)

func svTerm(s *term.Store, name, scope string, ty *term.Type) *term.Node {
	return s.MkVar(s.StateInstanceVar(term.StateVarRef{Name: name, Scope: scope}, 0, ty))
}

func TestBuildGraphDefinitionAddsEdgePerReferencedVar(t *testing.T) {
	s := term.NewStore()
	a := svTerm(s, "a", "N", s.IntType())
	b := svTerm(s, "b", "N", s.IntType())
	sum, err := s.MkAdd(a, b)
	require.NoError(t, err)

	defs := map[string]*term.Node{"N::out": sum}
	g := BuildGraph(defs, nil, nil)

	succs := g.Successors("N::out")
	assert.ElementsMatch(t, []string{"N::a", "N::b"}, succs)
}

func TestBuildGraphNonDefinitionTermAddsClique(t *testing.T) {
	s := term.NewStore()
	a := svTerm(s, "a", "N", s.BoolType())
	b := svTerm(s, "b", "N", s.BoolType())
	and, err := s.MkAnd(a, b)
	require.NoError(t, err)

	g := BuildGraph(nil, []*term.Node{and}, nil)
	assert.Contains(t, g.Successors("N::a"), "N::b")
	assert.Contains(t, g.Successors("N::b"), "N::a")
}

func TestBuildGraphSubsystemMappingIsBidirectional(t *testing.T) {
	g := BuildGraph(nil, nil, []SubsystemMapping{{Parent: "N::x", Child: "M::y"}})
	assert.Contains(t, g.Successors("N::x"), "M::y")
	assert.Contains(t, g.Successors("M::y"), "N::x")
}

func TestForwardReachableFollowsChain(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	reached := ForwardReachable(g, []string{"a"}, nil)
	assert.True(t, reached["a"])
	assert.True(t, reached["b"])
	assert.True(t, reached["c"])
}

func TestForwardReachableStopsAtDeadEnd(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddVertex("z")

	reached := ForwardReachable(g, []string{"a"}, nil)
	assert.False(t, reached["z"])
}

func TestConeOfInfluenceUnionsAcrossProperties(t *testing.T) {
	g := NewGraph()
	g.AddEdge("p1", "x")
	g.AddEdge("p2", "y")

	coi := ConeOfInfluence(g, map[string][]string{"P1": {"p1"}, "P2": {"p2"}})
	assert.True(t, coi["x"])
	assert.True(t, coi["y"])
}

func TestPruneDefinitionSetRemovesReachableFromGuarantee(t *testing.T) {
	s := term.NewStore()
	b := svTerm(s, "b", "N", s.IntType())
	defs := map[string]*term.Node{"N::a": b}

	pruned := PruneDefinitionSet(defs, []string{"N::a"})
	assert.NotContains(t, pruned, "N::a")
}

func TestRenderDOTOmitsSelfEdgesAndHighlights(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "a")
	g.AddEdge("a", "b")

	out := RenderDOT(g, map[string]bool{"b": true})
	assert.NotContains(t, out, `"a" -> "a"`)
	assert.Contains(t, out, "fillcolor")
}
