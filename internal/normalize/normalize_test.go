package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lustrecore/internal/ast"
)

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func TestPreGuardRuleWrapsUnguardedPreInFreshArrow(t *testing.T) {
	ResetCounter()
	m := NewStandardManager()
	ctx := NewContext("N")

	out, err := m.Normalize(ctx, &ast.Pre{Operand: ident("x")})
	require.NoError(t, err)

	arrow, ok := out.(*ast.Arrow)
	require.True(t, ok, "unguarded pre must be arrow-wrapped")
	oracle, ok := arrow.Init.(*ast.Ident)
	require.True(t, ok)
	assert.Contains(t, oracle.Name, "_oracle")
	pre, ok := arrow.Step.(*ast.Pre)
	require.True(t, ok)
	assert.Equal(t, "x", pre.Operand.(*ast.Ident).Name)
}

func TestPreGuardRulePassesThroughUnderGuard(t *testing.T) {
	ResetCounter()
	m := NewStandardManager()
	ctx := NewContext("N")

	arrowExpr := &ast.Arrow{Init: ident("a"), Step: &ast.Pre{Operand: ident("x")}}
	out, err := m.Normalize(ctx, arrowExpr)
	require.NoError(t, err)

	arrow := out.(*ast.Arrow)
	pre, ok := arrow.Step.(*ast.Pre)
	require.True(t, ok, "guarded pre must not be re-wrapped in another arrow")
	assert.Equal(t, "x", pre.Operand.(*ast.Ident).Name)
}

func TestPreGuardRuleLiftsNonAtomicOperand(t *testing.T) {
	ResetCounter()
	m := NewStandardManager()
	ctx := NewContext("N")

	nonAtomic := &ast.BinOp{Op: "+", Left: ident("x"), Right: ident("y")}
	out, err := m.Normalize(ctx, &ast.Pre{Operand: nonAtomic})
	require.NoError(t, err)

	arrow := out.(*ast.Arrow)
	pre := arrow.Step.(*ast.Pre)
	liftedName := pre.Operand.(*ast.Ident).Name
	assert.Contains(t, liftedName, "_glocal")
	_, bound := ctx.Generated.Locals[liftedName]
	assert.True(t, bound)
}

func TestCallArgumentRuleLiftsNonAtomicArgs(t *testing.T) {
	ResetCounter()
	m := NewStandardManager()
	ctx := NewContext("N")

	call := &ast.Call{Callee: "f", Args: []ast.Expr{ident("x"), &ast.BinOp{Op: "+", Left: ident("a"), Right: ident("b")}}}
	out, err := m.Normalize(ctx, call)
	require.NoError(t, err)

	// calls-as-expressions has already replaced the call with an Ident,
	// so inspect what was recorded in the generated-identifiers table.
	require.Len(t, ctx.Generated.Calls, 1)
	entry := ctx.Generated.Calls[0]
	assert.Equal(t, "x", entry.Args[0].(*ast.Ident).Name)
	liftedName := entry.Args[1].(*ast.Ident).Name
	assert.Contains(t, liftedName, "_glocal")
	_, ok := out.(*ast.Ident)
	assert.True(t, ok, "unary callee must become a plain Ident")
}

func TestCallsAsExpressionsRuleHandlesNAryCallee(t *testing.T) {
	ResetCounter()
	m := NewManager()
	m.AddRule(&PreGuardRule{})
	m.AddRule(&CallArgumentRule{})
	m.AddRule(&CallsAsExpressionsRule{ArityOf: func(callee string) int {
		if callee == "pair" {
			return 2
		}
		return 1
	}})
	ctx := NewContext("N")

	call := &ast.Call{Callee: "pair", Args: []ast.Expr{ident("x")}}
	out, err := m.Normalize(ctx, call)
	require.NoError(t, err)

	group, ok := out.(*ast.GroupExpr)
	require.True(t, ok, "binary callee must become a GroupExpr")
	require.Len(t, group.Items, 2)
	require.Len(t, ctx.Generated.Calls, 1)
	assert.Equal(t, ctx.Generated.Calls[0].Outputs[0], group.Items[0].(*ast.Ident).Name)
}

func TestFreshNamesAreProcessGloballyUnique(t *testing.T) {
	ResetCounter()
	a := Fresh(KindLocal)
	b := Fresh(KindLocal)
	assert.NotEqual(t, a, b)
}

func TestFbyDesugarsToArrowPre(t *testing.T) {
	ResetCounter()
	m := NewStandardManager()
	ctx := NewContext("N")

	out, err := m.Normalize(ctx, &ast.Fby{First: ident("a"), Rest: ident("b")})
	require.NoError(t, err)
	arrow, ok := out.(*ast.Arrow)
	require.True(t, ok)
	assert.Equal(t, "a", arrow.Init.(*ast.Ident).Name)
	pre, ok := arrow.Step.(*ast.Pre)
	require.True(t, ok)
	assert.Equal(t, "b", pre.Operand.(*ast.Ident).Name)
}
