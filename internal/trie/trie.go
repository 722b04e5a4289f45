package trie

import (
	"fmt"
	"sort"
)

// ErrShapeMismatch is returned by Map2/Fold2 when the two tries do not
// share an identical, identically-ordered key set (spec.md §3, §4.2,
// §8's "fold2 shape law").
type ErrShapeMismatch struct {
	Left, Right Path
	Reason      string
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("index-trie shape mismatch: %s (left=%s right=%s)", e.Reason, e.Left, e.Right)
}

type entry[V any] struct {
	path  Path
	value V
}

// Trie is a persistent (copy-on-write at the operation level, not
// internally versioned) total map from an ordered index path to a
// value of type V. The zero value is not usable; construct with Empty
// or Singleton.
type Trie[V any] struct {
	entries []entry[V]
}

// Empty returns an empty trie.
func Empty[V any]() *Trie[V] {
	return &Trie[V]{}
}

// Singleton returns a trie mapping exactly path to v.
func Singleton[V any](path Path, v V) *Trie[V] {
	return &Trie[V]{entries: []entry[V]{{path: path, value: v}}}
}

func (t *Trie[V]) search(path Path) (int, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return !t.entries[i].path.Less(path)
	})
	if i < len(t.entries) && t.entries[i].path.Equal(path) {
		return i, true
	}
	return i, false
}

// Add returns a new trie identical to t but with path bound to v (an
// existing binding at path is replaced).
func (t *Trie[V]) Add(path Path, v V) *Trie[V] {
	i, found := t.search(path)
	out := &Trie[V]{entries: make([]entry[V], len(t.entries), len(t.entries)+1)}
	copy(out.entries, t.entries)
	if found {
		out.entries[i] = entry[V]{path: path, value: v}
		return out
	}
	out.entries = append(out.entries, entry[V]{})
	copy(out.entries[i+1:], out.entries[i:len(out.entries)-1])
	out.entries[i] = entry[V]{path: path, value: v}
	return out
}

// Remove returns a new trie identical to t but without any binding at
// path.
func (t *Trie[V]) Remove(path Path) *Trie[V] {
	i, found := t.search(path)
	if !found {
		return t
	}
	out := &Trie[V]{entries: make([]entry[V], 0, len(t.entries)-1)}
	out.entries = append(out.entries, t.entries[:i]...)
	out.entries = append(out.entries, t.entries[i+1:]...)
	return out
}

// Find returns the value bound to path, if any.
func (t *Trie[V]) Find(path Path) (V, bool) {
	i, found := t.search(path)
	if !found {
		var zero V
		return zero, false
	}
	return t.entries[i].value, true
}

// FindPrefix returns every binding whose path starts with prefix,
// in key order, with the prefix stripped from each returned path.
func (t *Trie[V]) FindPrefix(prefix Path) []struct {
	Path  Path
	Value V
} {
	var out []struct {
		Path  Path
		Value V
	}
	for _, e := range t.entries {
		if len(e.path) >= len(prefix) && Path(e.path[:len(prefix)]).Equal(prefix) {
			out = append(out, struct {
				Path  Path
				Value V
			}{Path: e.path[len(prefix):], Value: e.value})
		}
	}
	return out
}

// MemPrefix reports whether any binding's path starts with prefix.
func (t *Trie[V]) MemPrefix(prefix Path) bool {
	for _, e := range t.entries {
		if len(e.path) >= len(prefix) && Path(e.path[:len(prefix)]).Equal(prefix) {
			return true
		}
	}
	return false
}

// Bindings returns every (path, value) pair in key order.
func (t *Trie[V]) Bindings() []struct {
	Path  Path
	Value V
} {
	out := make([]struct {
		Path  Path
		Value V
	}, len(t.entries))
	for i, e := range t.entries {
		out[i] = struct {
			Path  Path
			Value V
		}{Path: e.path, Value: e.value}
	}
	return out
}

// Values returns every bound value in key order.
func (t *Trie[V]) Values() []V {
	out := make([]V, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.value
	}
	return out
}

// Len reports the number of bindings.
func (t *Trie[V]) Len() int { return len(t.entries) }

// Fold folds f over the trie's bindings in key order.
func Fold[V, R any](t *Trie[V], f func(path Path, v V, acc R) R, init R) R {
	acc := init
	for _, e := range t.entries {
		acc = f(e.path, e.value, acc)
	}
	return acc
}

// Map applies f to every value, preserving keys and order.
func Map[V, W any](t *Trie[V], f func(path Path, v V) W) *Trie[W] {
	out := &Trie[W]{entries: make([]entry[W], len(t.entries))}
	for i, e := range t.entries {
		out.entries[i] = entry[W]{path: e.path, value: f(e.path, e.value)}
	}
	return out
}

// Map2 combines two tries leaf-by-leaf under identical key sets,
// failing with ErrShapeMismatch when the key sets or their order
// disagree (spec.md §3's "totality" invariant).
func Map2[A, B, R any](ta *Trie[A], tb *Trie[B], f func(path Path, a A, b B) R) (*Trie[R], error) {
	if len(ta.entries) != len(tb.entries) {
		return nil, &ErrShapeMismatch{Reason: "different number of leaves"}
	}
	out := &Trie[R]{entries: make([]entry[R], len(ta.entries))}
	for i := range ta.entries {
		ea, eb := ta.entries[i], tb.entries[i]
		if !ea.path.Equal(eb.path) {
			return nil, &ErrShapeMismatch{Left: ea.path, Right: eb.path, Reason: "index paths disagree"}
		}
		out.entries[i] = entry[R]{path: ea.path, value: f(ea.path, ea.value, eb.value)}
	}
	return out, nil
}

// Fold2 folds two tries leaf-by-leaf under identical key sets, failing
// with ErrShapeMismatch on any shape disagreement.
func Fold2[A, B, R any](ta *Trie[A], tb *Trie[B], f func(path Path, a A, b B, acc R) R, init R) (R, error) {
	var zero R
	if len(ta.entries) != len(tb.entries) {
		return zero, &ErrShapeMismatch{Reason: "different number of leaves"}
	}
	acc := init
	for i := range ta.entries {
		ea, eb := ta.entries[i], tb.entries[i]
		if !ea.path.Equal(eb.path) {
			return zero, &ErrShapeMismatch{Left: ea.path, Right: eb.path, Reason: "index paths disagree"}
		}
		acc = f(ea.path, ea.value, eb.value, acc)
	}
	return acc, nil
}

// TopMaxIndex returns the greatest KindList index tag at the root of any
// path, or -1 if no path begins with a list index.
func (t *Trie[V]) TopMaxIndex() int {
	max := -1
	for _, e := range t.entries {
		if len(e.path) == 0 {
			continue
		}
		if root := e.path[0]; root.Kind == KindList && root.Pos > max {
			max = root.Pos
		}
	}
	return max
}

// MkScopeForIndex derives the scope segment list a state variable
// created for the leaf at path should carry, disambiguating flattened
// structured identifiers (spec.md §3 "Scope").
func MkScopeForIndex(path Path) []string {
	segs := make([]string, len(path))
	for i, tag := range path {
		switch tag.Kind {
		case KindRecord, KindAbstractType:
			segs[i] = tag.Name
		case KindTuple, KindList, KindArrayInt:
			segs[i] = fmt.Sprintf("%d", tag.Pos)
		case KindArrayVar:
			segs[i] = tag.ExprKey
		}
	}
	return segs
}

// FilterArrayIndices returns only the bindings whose root tag is an
// array index (KindArrayInt or KindArrayVar), used to isolate the
// array-indexed leaves of a structured value from its record/tuple/list
// leaves (e.g. when compiling array-literal-typed locals).
func FilterArrayIndices[V any](t *Trie[V]) *Trie[V] {
	out := &Trie[V]{}
	for _, e := range t.entries {
		if len(e.path) > 0 && (e.path[0].Kind == KindArrayInt || e.path[0].Kind == KindArrayVar) {
			out.entries = append(out.entries, e)
		}
	}
	return out
}

// StripListPrefix removes a single leading KindList tag from every path
// that has one, implementing spec.md §4.5's tie-break: "When a LHS trie
// has a ListIndex prefix that the RHS has already flattened out,
// ListIndex prefixes are stripped before the leaf match."
func StripListPrefix[V any](t *Trie[V]) *Trie[V] {
	out := &Trie[V]{entries: make([]entry[V], len(t.entries))}
	for i, e := range t.entries {
		p := e.path
		if len(p) > 0 && p[0].Kind == KindList {
			p = p[1:]
		}
		out.entries[i] = entry[V]{path: p, value: e.value}
	}
	sort.Slice(out.entries, func(i, j int) bool { return out.entries[i].path.Less(out.entries[j].path) })
	return out
}
