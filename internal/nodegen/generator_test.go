package nodegen

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lustrecore/internal/ast"
	"lustrecore/internal/term"
)

const counterFixture = `{
  "nodes": [
    {
      "name": "counter",
      "is_main": true,
      "inputs": [{"name": "tick", "type": {"kind": "bool"}}],
      "outputs": [{"name": "count", "type": {"kind": "int"}}],
      "equations": [
        {"lhs": "count", "rhs": {
          "kind": "ite",
          "cond": {"kind": "ident", "name": "tick"},
          "then": {"kind": "int_const", "int": "1"},
          "else": {"kind": "int_const", "int": "0"}
        }}
      ]
    }
  ]
}`

const callerFixture = `{
  "nodes": [
    {
      "name": "doubler",
      "inputs": [{"name": "x", "type": {"kind": "int"}}],
      "outputs": [{"name": "y", "type": {"kind": "int"}}],
      "equations": [
        {"lhs": "y", "rhs": {
          "kind": "bin_op", "op": "+",
          "left": {"kind": "ident", "name": "x"},
          "right": {"kind": "ident", "name": "x"}
        }}
      ]
    },
    {
      "name": "uses_doubler",
      "is_main": true,
      "inputs": [{"name": "a", "type": {"kind": "int"}}],
      "outputs": [{"name": "b", "type": {"kind": "int"}}],
      "equations": [
        {"lhs": "b", "rhs": {"kind": "call", "callee": "doubler", "args": [{"kind": "ident", "name": "a"}]}}
      ]
    }
  ]
}`

func TestGeneratorCompilesNodeCallEndToEnd(t *testing.T) {
	prog, err := LoadProgram([]byte(callerFixture))
	require.NoError(t, err)

	g := NewGenerator(term.NewStore())
	require.NoError(t, g.CompileProgram(prog))

	rec, ok := g.State.LookupNode("uses_doubler")
	require.True(t, ok)
	require.Len(t, rec.Calls, 1)
	call := rec.Calls[0]
	assert.Equal(t, "doubler", call.Callee)
	assert.Equal(t, 1, call.Inputs.Len())
	assert.Equal(t, 1, call.Outputs.Len())

	require.Len(t, rec.Equations, 2)
	var sawOutputEq bool
	for _, eq := range rec.Equations {
		if eq.LHS.StateVar.Name == "b" {
			sawOutputEq = true
			assert.True(t, eq.RHS.IsVariable())
		}
	}
	assert.True(t, sawOutputEq)
}

func TestLoadProgramDecodesFixture(t *testing.T) {
	prog, err := LoadProgram([]byte(counterFixture))
	require.NoError(t, err)
	require.Len(t, prog.Nodes, 1)
	assert.Equal(t, "counter", prog.Nodes[0].Name)
	assert.True(t, prog.Nodes[0].IsMain)
}

func TestGeneratorCompilesFixtureProgramEndToEnd(t *testing.T) {
	prog, err := LoadProgram([]byte(counterFixture))
	require.NoError(t, err)

	g := NewGenerator(term.NewStore())
	require.NoError(t, g.CompileProgram(prog))

	require.Len(t, g.State.Nodes, 1)
	rec := g.State.Nodes[0]
	assert.Equal(t, "counter", rec.Name)
	assert.Equal(t, 1, rec.Inputs.Len())
	assert.Equal(t, 1, rec.Outputs.Len())
	require.Len(t, rec.Equations, 1)
	assert.Equal(t, "count", rec.Equations[0].LHS.StateVar.Name)
}

func TestGeneratorCompilesContractAssumesGuaranteesAndSofar(t *testing.T) {
	node := ast.NodeDecl{
		Name:    "gated",
		Inputs:  []ast.VarDecl{{Name: "tick", Type: &ast.TypeExpr{Kind: ast.TyBool}}},
		Outputs: []ast.VarDecl{{Name: "out", Type: &ast.TypeExpr{Kind: ast.TyInt}}},
		Equations: []ast.Equation{
			{LHS: &ast.LHSIdent{Name: "out"}, RHS: &ast.IntConst{Value: big.NewInt(0)}},
		},
		Contract: &ast.ContractDecl{
			Assumes:    []ast.ContractItem{{Expr: &ast.Ident{Name: "tick"}}},
			Guarantees: []ast.ContractItem{{Expr: &ast.Ident{Name: "tick"}}},
		},
	}

	g := NewGenerator(term.NewStore())
	require.NoError(t, g.CompileNode(node))

	rec, ok := g.State.LookupNode("gated")
	require.True(t, ok)
	require.NotNil(t, rec.Contract)
	require.Len(t, rec.Contract.Assumes, 1)
	require.Len(t, rec.Contract.Guarantees, 1)
	assert.Equal(t, "tick", rec.Contract.Assumes[0].StateVar.Name)
	require.NotNil(t, rec.Contract.Sofar)
	assert.Equal(t, "sofar", rec.Contract.Sofar.Name)
	_, hasDefiningTerm := rec.DefiningExpr[rec.Contract.Sofar.Identity()]
	assert.True(t, hasDefiningTerm)
}
