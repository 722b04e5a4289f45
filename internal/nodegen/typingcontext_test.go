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

func TestResolveScalarTypeBuiltins(t *testing.T) {
	s := term.NewStore()
	tc := &DefaultTypingContext{Store: s}

	ty, err := tc.ResolveScalarType(&ast.TypeExpr{Kind: ast.TyBool}, nil)
	require.NoError(t, err)
	assert.Equal(t, s.BoolType(), ty)
}

func TestResolveScalarTypeNamedFallsBackToAbstract(t *testing.T) {
	s := term.NewStore()
	tc := &DefaultTypingContext{Store: s}

	ty, err := tc.ResolveScalarType(&ast.TypeExpr{Kind: ast.TyNamed, Name: "Color"}, nil)
	require.NoError(t, err)
	assert.Equal(t, term.TyAbstract, ty.Kind())
	assert.Equal(t, "Color", ty.Name())
}

func TestResolveScalarTypeNamedResolvesViaAliasMap(t *testing.T) {
	s := term.NewStore()
	tc := &DefaultTypingContext{Store: s}
	aliases := map[string]*term.Type{"MyInt": s.IntType()}

	ty, err := tc.ResolveScalarType(&ast.TypeExpr{Kind: ast.TyNamed, Name: "MyInt"}, aliases)
	require.NoError(t, err)
	assert.Same(t, s.IntType(), ty)
}

func TestCompileTypeToTrieArrayProducesOneLeafPerIndex(t *testing.T) {
	s := term.NewStore()
	tc := &DefaultTypingContext{Store: s}
	te := &ast.TypeExpr{Kind: ast.TyArray, Elem: &ast.TypeExpr{Kind: ast.TyInt}, Size: &ast.IntConst{Value: big.NewInt(3)}}

	tr, err := CompileTypeToTrie(tc, te, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())
	for _, b := range tr.Bindings() {
		assert.Equal(t, s.IntType(), b.Value)
	}
}

func TestCompileTypeToTrieRecordProducesOneLeafPerField(t *testing.T) {
	s := term.NewStore()
	tc := &DefaultTypingContext{Store: s}
	te := &ast.TypeExpr{Kind: ast.TyRecord, Fields: []ast.RecordFieldType{
		{Name: "a", Type: &ast.TypeExpr{Kind: ast.TyInt}},
		{Name: "b", Type: &ast.TypeExpr{Kind: ast.TyBool}},
	}}

	tr, err := CompileTypeToTrie(tc, te, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
	aTy, ok := tr.Find(trie.Path{trie.RecordIndex("a")})
	require.True(t, ok)
	assert.Equal(t, s.IntType(), aTy)
	bTy, ok := tr.Find(trie.Path{trie.RecordIndex("b")})
	require.True(t, ok)
	assert.Equal(t, s.BoolType(), bTy)
}
