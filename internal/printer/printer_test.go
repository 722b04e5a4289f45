package printer

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"lustrecore/internal/expr"
	"lustrecore/internal/nodegen"
	"lustrecore/internal/term"
)

func TestTermRendersAppliedNodeAsPrefixExpression(t *testing.T) {
	s := term.NewStore()
	x := s.MkVar(s.StateInstanceVar(term.StateVarRef{Name: "x", Scope: "N"}, 0, s.IntType()))
	two := s.MkIntVal(big.NewInt(2))
	sum, err := s.MkAdd(x, two)
	assert.NoError(t, err)

	assert.Equal(t, "(+ N::x 2)", Term(sum))
}

func TestTermRendersBoolLiteral(t *testing.T) {
	s := term.NewStore()
	assert.Equal(t, "true", Term(s.MkBoolVal(true)))
	assert.Equal(t, "false", Term(s.MkBoolVal(false)))
}

func TestExprCollapsesWhenInitAndStepCoincide(t *testing.T) {
	s := term.NewStore()
	c := expr.Const(s.MkIntVal(big.NewInt(5)))
	assert.Equal(t, "5", Expr(c))
}

func TestExprShowsBothComponentsWhenDistinct(t *testing.T) {
	s := term.NewStore()
	e := expr.Expr{Init: s.MkIntVal(big.NewInt(0)), Step: s.MkIntVal(big.NewInt(1)), Typ: s.IntType()}
	assert.Equal(t, "init=0 step=1", Expr(e))
}

func TestStateVarRendersScopedNameAndType(t *testing.T) {
	s := term.NewStore()
	table := nodegen.NewTable()
	sv := table.GetOrCreate("x", []string{"N"}, s.IntType(), false, false, false)
	assert.Equal(t, "N.x : int", StateVar(sv))
}

func TestNodeRecordRendersEquationsAndPorts(t *testing.T) {
	s := term.NewStore()
	table := nodegen.NewTable()
	out := table.GetOrCreate("out", []string{"N"}, s.IntType(), false, false, false)

	rec := nodegen.NewNodeRecord("N")
	rec.Equations = append(rec.Equations, nodegen.EquationRecord{
		LHS: nodegen.EquationBound{StateVar: out},
		RHS: s.MkIntVal(big.NewInt(1)),
	})

	listing := NodeRecord(rec)
	assert.Contains(t, listing, "node N")
	assert.Contains(t, listing, "N.out : int = 1")
}
