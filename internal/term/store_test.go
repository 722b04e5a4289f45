package term

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashconsSoundness(t *testing.T) {
	s := NewStore()

	a1 := s.MkBVVal(big.NewInt(7), 8)
	b1 := s.MkBVVal(big.NewInt(3), 8)
	sum1, err := s.MkBVAdd(a1, b1)
	require.NoError(t, err)

	a2 := s.MkBVVal(big.NewInt(7), 8)
	b2 := s.MkBVVal(big.NewInt(3), 8)
	sum2, err := s.MkBVAdd(a2, b2)
	require.NoError(t, err)

	assert.True(t, a1 == a2, "equal literals must be pointer-equal")
	assert.True(t, sum1 == sum2, "equal applications must be pointer-equal")
	assert.Equal(t, sum1.Tag(), sum2.Tag())
}

func TestHashconsCompleteness(t *testing.T) {
	s := NewStore()
	t1 := s.MkBoolVal(true)
	t2 := s.MkBoolVal(true)
	t3 := s.MkBoolVal(false)

	assert.Equal(t, t1.Tag(), t2.Tag())
	assert.NotEqual(t, t1.Tag(), t3.Tag())
	assert.True(t, t1 == t2)
	assert.False(t, t1 == t3)
}

func TestNegationIdempotence(t *testing.T) {
	s := NewStore()
	v := s.MkVar(s.FreeVar("p", s.BoolType()))
	n1 := s.Negate(v)
	n2 := s.Negate(n1)
	assert.Equal(t, v, n2)
}

func TestNegateSimplifyCancelsComparisons(t *testing.T) {
	s := NewStore()
	x := s.MkVar(s.FreeVar("x", s.IntType()))
	y := s.MkVar(s.FreeVar("y", s.IntType()))
	lt, err := s.mkCompareChecked(SymLt, x, y)
	require.NoError(t, err)
	neg := s.NegateSimplify(lt)
	require.NotNil(t, neg.sym)
	assert.Equal(t, SymGeq, neg.sym.kind)
}

func (s *Store) mkCompareChecked(kind SymbolKind, a, b *Node) (*Node, error) {
	return s.Apply(s.MkSymbol(kind), []*Node{a, b}, s.BoolType())
}

func TestApplyRejectsArityMismatch(t *testing.T) {
	s := NewStore()
	x := s.MkVar(s.FreeVar("x", s.BoolType()))
	_, err := s.Apply(s.MkSymbol(SymNot), []*Node{x, x}, s.BoolType())
	require.Error(t, err)
	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestStatsTracksSize(t *testing.T) {
	s := NewStore()
	before := s.Stats().Size
	s.MkBoolVal(true)
	s.MkBoolVal(false)
	after := s.Stats().Size
	assert.Greater(t, after, before)
}

func TestImportPreservesStructure(t *testing.T) {
	src := NewStore()
	x := src.MkVar(src.FreeVar("x", src.IntType()))
	y := src.MkVar(src.FreeVar("y", src.IntType()))
	sum, err := src.Apply(src.MkSymbol(SymAdd), []*Node{x, y}, src.IntType())
	require.NoError(t, err)

	dst := NewStore()
	imported := Import(sum, src, dst)
	assert.Equal(t, SymAdd, imported.Symbol().Kind())
	assert.Len(t, imported.Children(), 2)
	assert.Equal(t, "x", imported.Children()[0].Variable().Name())
}

func TestMkNamedRejectsReservedNamespaceInUnsafe(t *testing.T) {
	s := NewStore()
	x := s.MkVar(s.FreeVar("x", s.BoolType()))
	_, err := s.MkNamedUnsafe("t42", x)
	require.Error(t, err)

	_, err = s.MkNamedUnsafe("my_label", x)
	require.NoError(t, err)
}

func TestClampArraySize(t *testing.T) {
	assert.Equal(t, int64(0), ClampArraySize(-5))
	assert.Equal(t, int64(0), ClampArraySize(0))
	assert.Equal(t, int64(3), ClampArraySize(3))
}
