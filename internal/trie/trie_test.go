package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFindRemove(t *testing.T) {
	tr := Empty[int]()
	p1 := Path{RecordIndex("x"), TupleIndex(0)}
	p2 := Path{RecordIndex("y")}

	tr = tr.Add(p1, 1)
	tr = tr.Add(p2, 2)

	v, ok := tr.Find(p1)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = tr.Find(p2)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = tr.Find(Path{RecordIndex("z")})
	assert.False(t, ok)

	tr = tr.Remove(p1)
	_, ok = tr.Find(p1)
	assert.False(t, ok)
	assert.Equal(t, 1, tr.Len())
}

func TestBindingsKeyOrder(t *testing.T) {
	tr := Empty[int]()
	tr = tr.Add(Path{ListIndex(2)}, 2)
	tr = tr.Add(Path{ListIndex(0)}, 0)
	tr = tr.Add(Path{ListIndex(1)}, 1)

	bs := tr.Bindings()
	require.Len(t, bs, 3)
	assert.Equal(t, 0, bs[0].Value)
	assert.Equal(t, 1, bs[1].Value)
	assert.Equal(t, 2, bs[2].Value)
}

func TestFindPrefixAndMemPrefix(t *testing.T) {
	tr := Empty[string]()
	tr = tr.Add(Path{RecordIndex("a"), TupleIndex(0)}, "a0")
	tr = tr.Add(Path{RecordIndex("a"), TupleIndex(1)}, "a1")
	tr = tr.Add(Path{RecordIndex("b")}, "b")

	assert.True(t, tr.MemPrefix(Path{RecordIndex("a")}))
	assert.False(t, tr.MemPrefix(Path{RecordIndex("c")}))

	sub := tr.FindPrefix(Path{RecordIndex("a")})
	require.Len(t, sub, 2)
	assert.Equal(t, "a0", sub[0].Value)
	assert.Equal(t, Path{TupleIndex(0)}, sub[0].Path)
}

func TestFold2ShapeLawSucceedsOnMatchingKeys(t *testing.T) {
	ta := Empty[int]().Add(Path{TupleIndex(0)}, 1).Add(Path{TupleIndex(1)}, 2)
	tb := Empty[int]().Add(Path{TupleIndex(0)}, 10).Add(Path{TupleIndex(1)}, 20)

	sum, err := Fold2(ta, tb, func(_ Path, a, b, acc int) int { return acc + a + b }, 0)
	require.NoError(t, err)
	assert.Equal(t, 33, sum)

	combined, err := Map2(ta, tb, func(_ Path, a, b int) int { return a + b })
	require.NoError(t, err)
	assert.Equal(t, []int{11, 22}, combined.Values())
}

func TestFold2ShapeLawFailsOnDifferentKeys(t *testing.T) {
	ta := Empty[int]().Add(Path{TupleIndex(0)}, 1)
	tb := Empty[int]().Add(Path{TupleIndex(1)}, 1)

	_, err := Fold2(ta, tb, func(_ Path, a, b, acc int) int { return acc }, 0)
	require.Error(t, err)
	var shapeErr *ErrShapeMismatch
	require.ErrorAs(t, err, &shapeErr)

	_, err = Map2(ta, tb, func(_ Path, a, b int) int { return a })
	require.Error(t, err)
}

func TestFold2ShapeLawFailsOnDifferentLeafCount(t *testing.T) {
	ta := Empty[int]().Add(Path{TupleIndex(0)}, 1).Add(Path{TupleIndex(1)}, 2)
	tb := Empty[int]().Add(Path{TupleIndex(0)}, 1)

	_, err := Fold2(ta, tb, func(_ Path, a, b, acc int) int { return acc }, 0)
	require.Error(t, err)
}

func TestTopMaxIndex(t *testing.T) {
	tr := Empty[int]()
	assert.Equal(t, -1, tr.TopMaxIndex())

	tr = tr.Add(Path{ListIndex(0)}, 0)
	tr = tr.Add(Path{ListIndex(3)}, 3)
	tr = tr.Add(Path{RecordIndex("x")}, 9)
	assert.Equal(t, 3, tr.TopMaxIndex())
}

func TestMkScopeForIndex(t *testing.T) {
	p := Path{RecordIndex("pos"), TupleIndex(1), ArrayIntIndex(4)}
	assert.Equal(t, []string{"pos", "1", "4"}, MkScopeForIndex(p))
}

func TestFilterArrayIndices(t *testing.T) {
	tr := Empty[int]()
	tr = tr.Add(Path{ArrayIntIndex(0)}, 1)
	tr = tr.Add(Path{ArrayVarIndex("i")}, 2)
	tr = tr.Add(Path{RecordIndex("x")}, 3)

	filtered := FilterArrayIndices(tr)
	assert.Equal(t, 2, filtered.Len())
}

func TestStripListPrefix(t *testing.T) {
	tr := Empty[int]()
	tr = tr.Add(Path{ListIndex(0), RecordIndex("x")}, 1)
	tr = tr.Add(Path{ListIndex(1), RecordIndex("x")}, 2)

	stripped := StripListPrefix(tr)
	v, ok := stripped.Find(Path{RecordIndex("x")})
	assert.True(t, ok)
	assert.True(t, v == 1 || v == 2)
	assert.Equal(t, 2, stripped.Len())
}

func TestMapPreservesKeys(t *testing.T) {
	tr := Empty[int]().Add(Path{TupleIndex(0)}, 1).Add(Path{TupleIndex(1)}, 2)
	doubled := Map(tr, func(_ Path, v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4}, doubled.Values())
}

func TestTagOrderingAcrossKinds(t *testing.T) {
	assert.True(t, RecordIndex("a").Less(TupleIndex(0)))
	assert.True(t, TupleIndex(0).Less(ListIndex(0)))
	assert.True(t, ListIndex(0).Less(ArrayIntIndex(0)))
	assert.True(t, ArrayIntIndex(0).Less(ArrayVarIndex("z")))
	assert.True(t, ArrayVarIndex("z").Less(AbstractTypeIndex("a")))
}
