package term

import "math/big"

// Integer/real arithmetic, comparison, and quantifier constructors.
// Grounded on internal/smt/bitvec.go's type-checked binary-op pattern,
// generalized from bit-vectors to the unbounded int/real domain.

// MkIntVal interns the integer literal v.
func (s *Store) MkIntVal(v *big.Int) *Node {
	return s.MkLeaf(s.MkIntConstSymbol(v), s.IntType())
}

// MkRealVal interns the rational literal v.
func (s *Store) MkRealVal(v *big.Rat) *Node {
	sym := s.internSymbol(SymRealConst, nil, 0, 0, v.RatString())
	return s.MkLeaf(sym, s.RealType())
}

func (s *Store) checkNumeric(symbolName string, wantKind TypeKind, nodes ...*Node) error {
	for _, n := range nodes {
		if n.typ == nil || n.typ.kind != wantKind {
			return &TypeError{Symbol: symbolName, Detail: "operand is not of the expected numeric type"}
		}
	}
	return nil
}

func (s *Store) mkNumericBinOp(kind SymbolKind, name string, a, b *Node) (*Node, error) {
	if a.typ == nil || b.typ == nil || a.typ.kind != b.typ.kind {
		return nil, &TypeError{Symbol: name, Detail: "operands must share a numeric type"}
	}
	if a.typ.kind != TyInt && a.typ.kind != TyReal && a.typ.kind != TyIntRange {
		return nil, &TypeError{Symbol: name, Detail: "operands must be int, int_range, or real"}
	}
	resultTyp := a.typ
	if a.typ.kind == TyIntRange {
		resultTyp = s.IntType()
	}
	return s.Apply(s.MkSymbol(kind), []*Node{a, b}, resultTyp)
}

func (s *Store) MkAdd(a, b *Node) (*Node, error) { return s.mkNumericBinOp(SymAdd, "+", a, b) }
func (s *Store) MkSub(a, b *Node) (*Node, error) { return s.mkNumericBinOp(SymSub, "-", a, b) }
func (s *Store) MkMul(a, b *Node) (*Node, error) { return s.mkNumericBinOp(SymMul, "*", a, b) }
func (s *Store) MkIntDiv(a, b *Node) (*Node, error) {
	return s.mkNumericBinOp(SymIntDiv, "div", a, b)
}
func (s *Store) MkMod(a, b *Node) (*Node, error) { return s.mkNumericBinOp(SymMod, "mod", a, b) }
func (s *Store) MkRealDiv(a, b *Node) (*Node, error) {
	return s.mkNumericBinOp(SymRealDiv, "/", a, b)
}

// MkUMinus builds unary negation of an int/real/int_range operand.
func (s *Store) MkUMinus(a *Node) (*Node, error) {
	if a.typ == nil || (a.typ.kind != TyInt && a.typ.kind != TyReal && a.typ.kind != TyIntRange) {
		return nil, &TypeError{Symbol: "u-", Detail: "operand must be int, int_range, or real"}
	}
	resultTyp := a.typ
	if a.typ.kind == TyIntRange {
		resultTyp = s.IntType()
	}
	return s.Apply(s.MkSymbol(SymUMinus), []*Node{a}, resultTyp)
}

func (s *Store) mkCompareOp(kind SymbolKind, name string, a, b *Node) (*Node, error) {
	if a.typ == nil || b.typ == nil || a.typ.kind != b.typ.kind {
		return nil, &TypeError{Symbol: name, Detail: "operands must share a comparable type"}
	}
	return s.Apply(s.MkSymbol(kind), []*Node{a, b}, s.BoolType())
}

func (s *Store) MkLt(a, b *Node) (*Node, error)  { return s.mkCompareOp(SymLt, "<", a, b) }
func (s *Store) MkLeq(a, b *Node) (*Node, error) { return s.mkCompareOp(SymLeq, "<=", a, b) }
func (s *Store) MkGt(a, b *Node) (*Node, error)  { return s.mkCompareOp(SymGt, ">", a, b) }
func (s *Store) MkGeq(a, b *Node) (*Node, error) { return s.mkCompareOp(SymGeq, ">=", a, b) }

// MkForall/MkExists build a quantified formula binding names over body;
// body's free BoundVar occurrences at the corresponding de-Bruijn
// positions are the bound variables. body must be boolean.
func (s *Store) MkForall(names []string, body *Node) (*Node, error) {
	if err := s.checkBool("forall", body); err != nil {
		return nil, err
	}
	return s.MkBinder(SymForall, names, []*Node{body}, s.BoolType()), nil
}

func (s *Store) MkExists(names []string, body *Node) (*Node, error) {
	if err := s.checkBool("exists", body); err != nil {
		return nil, err
	}
	return s.MkBinder(SymExists, names, []*Node{body}, s.BoolType()), nil
}

// MkLet builds let name = bound in body, with body's declared type
// carried through as the let's own type.
func (s *Store) MkLet(names []string, bound []*Node, body *Node) *Node {
	return s.MkBinder(SymLet, names, append(append([]*Node(nil), bound...), body), body.typ)
}
