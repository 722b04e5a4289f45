package nodegen

import (
	"lustrecore/internal/trie"
)

// IdentMap resolves a surface identifier bound in the current node
// (input, output, local, or a normalizer-generated name) to the index
// trie of state variables backing its (possibly structured) value.
// Grounded on internal/ethereum/state/machine_state.go's per-frame
// local-variable slot table, generalized from flat slots to trie-shaped
// entries so a single identifier can stand for a record or array.
type IdentMap struct {
	byName map[string]*trie.Trie[*StateVariable]
}

// NewIdentMap returns an empty identifier map for one node's scope.
func NewIdentMap() *IdentMap {
	return &IdentMap{byName: make(map[string]*trie.Trie[*StateVariable])}
}

// Bind associates name with the trie of state variables representing
// its value, overwriting any prior binding (shadowing is the caller's
// responsibility to reject, per the surface language's scoping rules).
func (m *IdentMap) Bind(name string, t *trie.Trie[*StateVariable]) {
	m.byName[name] = t
}

// Lookup returns the trie bound to name, or (nil, false) if name is
// unbound in this scope.
func (m *IdentMap) Lookup(name string) (*trie.Trie[*StateVariable], bool) {
	t, ok := m.byName[name]
	return t, ok
}

// arrayIndexScope is a transient submap that shadows the enclosing
// IdentMap for exactly one bound variable name, such as an
// array-defining comprehension's index variable. No compilation step in
// this package constructs one.
type arrayIndexScope struct {
	parent *IdentMap
	name   string
	value  *trie.Trie[*StateVariable]
}

func newArrayIndexScope(parent *IdentMap, name string, value *trie.Trie[*StateVariable]) *arrayIndexScope {
	return &arrayIndexScope{parent: parent, name: name, value: value}
}

func (s *arrayIndexScope) Lookup(name string) (*trie.Trie[*StateVariable], bool) {
	if name == s.name {
		return s.value, true
	}
	return s.parent.Lookup(name)
}
