package nodegen

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lustrecore/internal/ast"
	"lustrecore/internal/term"
	"lustrecore/internal/trie"
)

func newTestCC(s *term.Store) *CompileContext {
	return NewCompileContext(s, NewTable(), &DefaultTypingContext{Store: s}, map[string]*term.Type{}, "N")
}

func TestCompileLHSIdentLooksUpBoundStateVar(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)
	sv := cc.Vars.GetOrCreate("x", []string{"N"}, s.IntType(), false, false, false)
	cc.Idents.Bind("x", trie.Singleton[*StateVariable](trie.Path{}, sv))

	tr, err := CompileLHSToTrie(cc, &ast.LHSIdent{Name: "x"})
	require.NoError(t, err)
	v, ok := tr.Find(trie.Path{})
	require.True(t, ok)
	assert.Same(t, sv, v)
}

func TestCompileLHSDiscardedYieldsEmptyTrie(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)

	tr, err := CompileLHSToTrie(cc, &ast.LHSIdent{Discarded: true})
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Len())
}

func TestCompileExprToTrieIntConst(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)

	tr, err := CompileExprToTrie(cc, &ast.IntConst{Value: big.NewInt(7)})
	require.NoError(t, err)
	n, ok := tr.Find(trie.Path{})
	require.True(t, ok)
	v, numOk := n.Symbol().IntValue()
	require.True(t, numOk)
	assert.Equal(t, int64(7), v.Int64())
}

func TestCompileExprToTrieBinOpAddsScalars(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)

	tr, err := CompileExprToTrie(cc, &ast.BinOp{Op: "+", Left: &ast.IntConst{Value: big.NewInt(2)}, Right: &ast.IntConst{Value: big.NewInt(3)}})
	require.NoError(t, err)
	n, ok := tr.Find(trie.Path{})
	require.True(t, ok)
	assert.Equal(t, term.TyInt, n.Type().Kind())
}

func TestCompileExprToTriePreShiftsInstantOffset(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)
	sv := cc.Vars.GetOrCreate("x", []string{"N"}, s.IntType(), false, false, false)
	cc.Idents.Bind("x", trie.Singleton[*StateVariable](trie.Path{}, sv))

	tr, err := CompileExprToTrie(cc, &ast.Pre{Operand: &ast.Pre{Operand: &ast.Ident{Name: "x"}}})
	require.NoError(t, err)
	n, ok := tr.Find(trie.Path{})
	require.True(t, ok)
	v := n.Variable()
	require.NotNil(t, v)
	assert.Equal(t, -2, v.Offset())
}

func TestCompileExprToTrieArrowSelectsInitOrStepViaInitFlag(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)
	cc.InitFlag = cc.Vars.GetOrCreate("init_flag", []string{"N", "reserved"}, s.BoolType(), false, false, false)

	tr, err := CompileExprToTrie(cc, &ast.Arrow{
		Init: &ast.IntConst{Value: big.NewInt(0)},
		Step: &ast.IntConst{Value: big.NewInt(1)},
	})
	require.NoError(t, err)
	n, ok := tr.Find(trie.Path{})
	require.True(t, ok)
	assert.Equal(t, term.SymIte, n.Symbol().Kind())
}

func TestCompileExprToTrieArrowWithoutInitFlagIsInvariantViolation(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)

	_, err := CompileExprToTrie(cc, &ast.Arrow{
		Init: &ast.IntConst{Value: big.NewInt(0)},
		Step: &ast.IntConst{Value: big.NewInt(1)},
	})
	assert.Error(t, err)
}

func TestExpandEquationProducesOneRecordPerLeaf(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)
	svA := cc.Vars.GetOrCreate("a", []string{"N", "t"}, s.IntType(), false, false, false)
	svB := cc.Vars.GetOrCreate("b", []string{"N", "t"}, s.IntType(), false, false, false)

	lhs := trie.Empty[*StateVariable]().
		Add(trie.Path{trie.TupleIndex(0)}, svA).
		Add(trie.Path{trie.TupleIndex(1)}, svB)

	rhsA, err := CompileExprToTrie(cc, &ast.IntConst{Value: big.NewInt(1)})
	require.NoError(t, err)
	rhsB, err := CompileExprToTrie(cc, &ast.IntConst{Value: big.NewInt(2)})
	require.NoError(t, err)
	rhsALeaf, _ := rhsA.Find(trie.Path{})
	rhsBLeaf, _ := rhsB.Find(trie.Path{})
	rhs := trie.Empty[*term.Node]().
		Add(trie.Path{trie.TupleIndex(0)}, rhsALeaf).
		Add(trie.Path{trie.TupleIndex(1)}, rhsBLeaf)

	recs, err := ExpandEquation(lhs, rhs)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Same(t, svA, recs[0].LHS.StateVar)
	assert.Same(t, svB, recs[1].LHS.StateVar)
}

func TestExpandEquationStripsListPrefixOnShapeMismatch(t *testing.T) {
	s := term.NewStore()
	cc := newTestCC(s)
	sv := cc.Vars.GetOrCreate("x", []string{"N", "t"}, s.IntType(), false, false, false)

	lhs := trie.Empty[*StateVariable]().Add(trie.Path{trie.ListIndex(0)}, sv)
	rhsLeaf, _ := mustCompile(t, cc, &ast.IntConst{Value: big.NewInt(9)}).Find(trie.Path{})
	rhs := trie.Singleton[*term.Node](trie.Path{}, rhsLeaf)

	recs, err := ExpandEquation(lhs, rhs)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Same(t, sv, recs[0].LHS.StateVar)
}

func mustCompile(t *testing.T, cc *CompileContext, e ast.Expr) *trie.Trie[*term.Node] {
	t.Helper()
	tr, err := CompileExprToTrie(cc, e)
	require.NoError(t, err)
	return tr
}

func TestPreferredBoundPicksSmallerNumeral(t *testing.T) {
	s := term.NewStore()
	lo := s.MkIntVal(big.NewInt(3))
	hi := s.MkIntVal(big.NewInt(10))
	assert.Same(t, lo, PreferredBound(lo, hi))
	assert.Same(t, lo, PreferredBound(hi, lo))
}

func TestPreferredBoundPicksNumericOverSymbolic(t *testing.T) {
	s := term.NewStore()
	numeric := s.MkIntVal(big.NewInt(5))
	symbolic := s.MkVar(s.FreeVar("n", s.IntType()))
	assert.Same(t, numeric, PreferredBound(numeric, symbolic))
	assert.Same(t, numeric, PreferredBound(symbolic, numeric))
}

func TestPreferredBoundDefaultsToLHSWhenBothSymbolic(t *testing.T) {
	s := term.NewStore()
	left := s.MkVar(s.FreeVar("l", s.IntType()))
	right := s.MkVar(s.FreeVar("r", s.IntType()))
	assert.Same(t, left, PreferredBound(left, right))
}
