// Package expr implements the expression layer: a typed view over
// internal/term that carries the source dataflow language's time model.
// Grounded on internal/ethereum/state/symbolic.go's pairing of one raw
// value with its symbolic counterpart, generalized here from a
// concrete/symbolic pairing to an init/step temporal pairing.
package expr

import "lustrecore/internal/term"

// Expr is a pair of terms — one valid at the initial instant, one valid
// at every subsequent instant — plus the type both share.
type Expr struct {
	Init *term.Node
	Step *term.Node
	Typ  *term.Type
}

func (e Expr) Type() *term.Type { return e.Typ }

// Const lifts a single term that is the same at every instant into an
// Expr whose init and step components are identical.
func Const(t *term.Node) Expr {
	return Expr{Init: t, Step: t, Typ: t.Type()}
}

// MkPre copies e's step component, unchanged, into both components of
// the result; it does not shift the instant offsets of the state
// variables inside it. The normalizer (internal/normalize), not this
// constructor, is responsible for guarding the initial instant with an
// arrow and a fresh oracle where required.
func MkPre(e Expr) Expr {
	return Expr{Init: e.Step, Step: e.Step, Typ: e.Typ}
}

// MkArrow builds e1 -> e2: the init component of e1 followed from the
// second instant onward by the step component of e2. Array operands of
// differing dimensionality are coalesced by inserting select on the
// deeper side until their shapes match.
func MkArrow(s *term.Store, e1, e2 Expr) (Expr, error) {
	a, b, typ, err := coalesceArrays(s, e1, e2)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: a.Init, Step: b.Step, Typ: typ}, nil
}

// MkIte builds if c then a else b, coalescing array-typed branches of
// differing dimensionality before constructing the underlying ite term.
func MkIte(s *term.Store, c Expr, a, b Expr) (Expr, error) {
	ca, cb, typ, err := coalesceArrays(s, a, b)
	if err != nil {
		return Expr{}, err
	}
	init, err := s.MkIte(c.Init, ca.Init, cb.Init)
	if err != nil {
		return Expr{}, err
	}
	step, err := s.MkIte(c.Step, ca.Step, cb.Step)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: typ}, nil
}

// arrayDepth counts the nesting of array(...) constructors in t: 0 for
// a non-array type, 1 for array(idx, elem) with a non-array elem, and
// so on.
func arrayDepth(t *term.Type) int {
	depth := 0
	for t != nil && t.Kind() == term.TyArray {
		depth++
		t = t.ElemType()
	}
	return depth
}

// coalesceArrays implements the array-coalescing rule shared by MkArrow
// and MkIte: when a and b's types are arrays of different dimensionality,
// select is inserted on the deeper side, once per excess dimension,
// until both sides describe the same element type. The index used for
// each inserted select is an unconstrained free variable of the array's
// index type, standing for "every index" — sound because the result
// of coalescing is only ever consumed as the Init/Step pair of a single
// point-wise equation, never compared positionally against the original
// array.
func coalesceArrays(s *term.Store, a, b Expr) (Expr, Expr, *term.Type, error) {
	da, db := arrayDepth(a.Typ), arrayDepth(b.Typ)
	for da > db {
		var err error
		a, err = selectOneDimension(s, a)
		if err != nil {
			return Expr{}, Expr{}, nil, err
		}
		da--
	}
	for db > da {
		var err error
		b, err = selectOneDimension(s, b)
		if err != nil {
			return Expr{}, Expr{}, nil, err
		}
		db--
	}
	if a.Typ == nil || b.Typ == nil || a.Typ.Tag() != b.Typ.Tag() {
		return Expr{}, Expr{}, nil, &term.TypeError{Symbol: "coalesce", Detail: "branches do not agree after array coalescing"}
	}
	return a, b, a.Typ, nil
}

// selectOneDimension strips one array dimension off e by inserting a
// select over a fresh index variable of the array's declared index type.
func selectOneDimension(s *term.Store, e Expr) (Expr, error) {
	if e.Typ == nil || e.Typ.Kind() != term.TyArray {
		return Expr{}, &term.TypeError{Symbol: "coalesce", Detail: "cannot select a non-array operand"}
	}
	idxVar := s.FreeVar("_coalesce_idx", e.Typ.IndexType())
	idx := s.MkVar(idxVar)
	return MkSelectAndPush(s, e, Const(idx))
}

// MkSelectAndPush builds select(e, i), distributing the select to the
// leaves of e when e is itself an ite or a store, to preserve
// readability for downstream encoding.
func MkSelectAndPush(s *term.Store, e, i Expr) (Expr, error) {
	init, err := pushSelect(s, e.Init, i.Init)
	if err != nil {
		return Expr{}, err
	}
	step, err := pushSelect(s, e.Step, i.Step)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: init.Type()}, nil
}

func pushSelect(s *term.Store, t, idx *term.Node) (*term.Node, error) {
	if t.Symbol() != nil {
		switch t.Symbol().Kind() {
		case term.SymIte:
			children := t.Children()
			sa, err := pushSelect(s, children[1], idx)
			if err != nil {
				return nil, err
			}
			sb, err := pushSelect(s, children[2], idx)
			if err != nil {
				return nil, err
			}
			return s.MkIte(children[0], sa, sb)
		case term.SymStore:
			children := t.Children()
			arr, storedIdx, val := children[0], children[1], children[2]
			eq, err := s.MkEq(idx, storedIdx)
			if err != nil {
				return nil, err
			}
			selArr, err := s.MkSelect(arr, idx)
			if err != nil {
				return nil, err
			}
			return s.MkIte(eq, val, selArr)
		}
	}
	return s.MkSelect(t, idx)
}
