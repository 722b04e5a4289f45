package expr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lustrecore/internal/term"
)

func TestMkArrowSplicesInitAndStep(t *testing.T) {
	s := term.NewStore()
	one := Const(s.MkIntVal(big.NewInt(1)))
	two := Const(s.MkIntVal(big.NewInt(2)))

	e, err := MkArrow(s, one, two)
	require.NoError(t, err)
	assert.Equal(t, one.Init, e.Init)
	assert.Equal(t, two.Step, e.Step)
}

func TestMkPreFreezesStepAtBothComponents(t *testing.T) {
	s := term.NewStore()
	x := Const(s.MkVar(s.FreeVar("x", s.IntType())))
	p := MkPre(x)
	assert.Equal(t, x.Step, p.Init)
	assert.Equal(t, x.Step, p.Step)
}

func TestMkIteRejectsMismatchedNonArrayTypes(t *testing.T) {
	s := term.NewStore()
	c := Const(s.MkBoolVal(true))
	a := Const(s.MkIntVal(big.NewInt(1)))
	b := Const(s.MkVar(s.FreeVar("p", s.BoolType())))

	_, err := MkIte(s, c, a, b)
	require.Error(t, err)
}

func TestMkIteCoalescesArrayDepth(t *testing.T) {
	s := term.NewStore()
	elemTy := s.IntType()
	idxTy := s.IntRangeType(nil, nil)
	arr1Ty := s.ArrayType(idxTy, elemTy)
	arr2Ty := s.ArrayType(idxTy, arr1Ty)

	c := Const(s.MkBoolVal(true))
	shallow := Const(s.MkVar(s.FreeVar("a", arr1Ty)))
	deep := Const(s.MkVar(s.FreeVar("b", arr2Ty)))

	res, err := MkIte(s, c, shallow, deep)
	require.NoError(t, err)
	assert.Equal(t, arr1Ty.Tag(), res.Typ.Tag())
}

func TestMkSelectAndPushDistributesOverIte(t *testing.T) {
	s := term.NewStore()
	elemTy := s.IntType()
	idxTy := s.IntRangeType(nil, nil)
	arrTy := s.ArrayType(idxTy, elemTy)

	cond := Const(s.MkBoolVal(true))
	a := Const(s.MkVar(s.FreeVar("a", arrTy)))
	b := Const(s.MkVar(s.FreeVar("b", arrTy)))
	iteTerm, err := s.MkIte(cond.Init, a.Init, b.Init)
	require.NoError(t, err)
	iteExpr := Const(iteTerm)

	idx := Const(s.MkVar(s.FreeVar("i", idxTy)))
	pushed, err := MkSelectAndPush(s, iteExpr, idx)
	require.NoError(t, err)
	require.Equal(t, term.SymIte, pushed.Init.Symbol().Kind())
	assert.Equal(t, term.SymSelect, pushed.Init.Children()[1].Symbol().Kind())
	assert.Equal(t, term.SymSelect, pushed.Init.Children()[2].Symbol().Kind())
}

func TestMkSelectAndPushRewritesOverStore(t *testing.T) {
	s := term.NewStore()
	elemTy := s.IntType()
	idxTy := s.IntRangeType(nil, nil)
	arrTy := s.ArrayType(idxTy, elemTy)

	arr := s.MkVar(s.FreeVar("a", arrTy))
	writeIdx := s.MkVar(s.FreeVar("j", idxTy))
	val := s.MkIntVal(big.NewInt(9))
	storeTerm, err := s.MkStore(arr, writeIdx, val)
	require.NoError(t, err)

	readIdx := Const(s.MkVar(s.FreeVar("i", idxTy)))
	pushed, err := MkSelectAndPush(s, Const(storeTerm), readIdx)
	require.NoError(t, err)
	assert.Equal(t, term.SymIte, pushed.Init.Symbol().Kind())
}

func TestPointwiseArithmeticLiftsBothComponents(t *testing.T) {
	s := term.NewStore()
	x := Const(s.MkVar(s.FreeVar("x", s.IntType())))
	one := Const(s.MkIntVal(big.NewInt(1)))

	sum, err := MkAdd(s, x, one)
	require.NoError(t, err)
	assert.Equal(t, term.SymAdd, sum.Init.Symbol().Kind())
	assert.Equal(t, term.SymAdd, sum.Step.Symbol().Kind())
}
