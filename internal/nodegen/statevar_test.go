package nodegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lustrecore/internal/term"
)

func TestGetOrCreateReturnsSamePointerForSameIdentity(t *testing.T) {
	s := term.NewStore()
	table := NewTable()

	a := table.GetOrCreate("x", []string{"main"}, s.IntType(), false, false, false)
	b := table.GetOrCreate("x", []string{"main"}, s.IntType(), false, false, false)

	assert.Same(t, a, b)
	assert.Equal(t, 1, table.Len())
}

func TestGetOrCreateDistinguishesByScope(t *testing.T) {
	s := term.NewStore()
	table := NewTable()

	a := table.GetOrCreate("x", []string{"main"}, s.IntType(), false, false, false)
	b := table.GetOrCreate("x", []string{"callee"}, s.IntType(), false, false, false)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, table.Len())
}

func TestConstStateVarTermUsesConstStateVariant(t *testing.T) {
	s := term.NewStore()
	table := NewTable()
	sv := table.GetOrCreate("k", []string{"main"}, s.IntType(), false, true, false)

	n := sv.Term(s, 0)
	require.True(t, n.IsVariable())
	assert.Equal(t, term.VarConstState, n.Variable().Kind())
}

func TestStateInstanceVarTermCarriesOffset(t *testing.T) {
	s := term.NewStore()
	table := NewTable()
	sv := table.GetOrCreate("y", []string{"main"}, s.BoolType(), false, false, false)

	n := sv.Term(s, -1)
	require.True(t, n.IsVariable())
	assert.Equal(t, term.VarStateInstance, n.Variable().Kind())
	assert.Equal(t, -1, n.Variable().Offset())
}
