package builtins

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lustrecore/internal/term"
)

func TestAbstractIntDivDeclaresOneFunctionPerType(t *testing.T) {
	s := term.NewStore()
	Init(s)

	abs := s.AbstractType("Currency")
	a := s.MkVar(s.FreeVar("a", abs))
	b := s.MkVar(s.FreeVar("b", abs))

	d1, err := B.AbstractIntDiv(a, b)
	require.NoError(t, err)
	d2, err := B.AbstractIntDiv(a, b)
	require.NoError(t, err)

	assert.Same(t, d1, d2)
}

func TestAbstractModSeparateFromIntDiv(t *testing.T) {
	s := term.NewStore()
	Init(s)

	abs := s.AbstractType("Currency")
	a := s.MkVar(s.FreeVar("a", abs))
	b := s.MkVar(s.FreeVar("b", abs))

	div, err := B.AbstractIntDiv(a, b)
	require.NoError(t, err)
	mod, err := B.AbstractMod(a, b)
	require.NoError(t, err)

	assert.NotEqual(t, div.Symbol(), mod.Symbol())
}

func TestArrayLiteralStoresEachElementAtItsIndex(t *testing.T) {
	s := term.NewStore()
	arrTy := s.ArrayType(s.IntType(), s.IntType())
	elems := []*term.Node{s.MkIntVal(big.NewInt(1)), s.MkIntVal(big.NewInt(2))}

	arr, err := ArrayLiteral(s, "lit", arrTy, func(i int) *term.Node { return s.MkIntVal(big.NewInt(int64(i))) }, elems)
	require.NoError(t, err)
	assert.Equal(t, arrTy.Tag(), arr.Type().Tag())
}
