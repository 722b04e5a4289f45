package term

// Boolean term constructors. Grounded file-for-file on
// internal/smt/bool.go: the teacher's Bool wrapper around a yices2
// handle becomes a thin set of closed constructors over *Node, each
// type-checking its operands before interning.

// MkBoolVal interns the boolean literal true or false.
func (s *Store) MkBoolVal(v bool) *Node {
	return s.MkLeaf(s.MkBoolConstSymbol(v), s.BoolType())
}

func (s *Store) checkBool(symbolName string, nodes ...*Node) error {
	for _, n := range nodes {
		if n.typ == nil || n.typ.kind != TyBool {
			return &TypeError{Symbol: symbolName, Detail: "operand is not of type bool"}
		}
	}
	return nil
}

// MkNot builds the negation of a boolean node (see also Negate, which
// cancels a leading Not instead of stacking).
func (s *Store) MkNot(a *Node) (*Node, error) {
	if err := s.checkBool("not", a); err != nil {
		return nil, err
	}
	return s.Apply(s.MkSymbol(SymNot), []*Node{a}, s.BoolType())
}

// MkAnd builds the conjunction of two or more boolean nodes.
func (s *Store) MkAnd(operands ...*Node) (*Node, error) {
	if len(operands) < 2 {
		return nil, &TypeError{Symbol: "and", Detail: "requires at least two operands"}
	}
	if err := s.checkBool("and", operands...); err != nil {
		return nil, err
	}
	return s.Apply(s.MkSymbol(SymAnd), operands, s.BoolType())
}

// MkOr builds the disjunction of two or more boolean nodes.
func (s *Store) MkOr(operands ...*Node) (*Node, error) {
	if len(operands) < 2 {
		return nil, &TypeError{Symbol: "or", Detail: "requires at least two operands"}
	}
	if err := s.checkBool("or", operands...); err != nil {
		return nil, err
	}
	return s.Apply(s.MkSymbol(SymOr), operands, s.BoolType())
}

// MkImplies builds a => b.
func (s *Store) MkImplies(a, b *Node) (*Node, error) {
	if err := s.checkBool("=>", a, b); err != nil {
		return nil, err
	}
	return s.Apply(s.MkSymbol(SymImplies), []*Node{a, b}, s.BoolType())
}

// MkXor builds a xor b.
func (s *Store) MkXor(a, b *Node) (*Node, error) {
	if err := s.checkBool("xor", a, b); err != nil {
		return nil, err
	}
	return s.Apply(s.MkSymbol(SymXor), []*Node{a, b}, s.BoolType())
}

// MkDistinct builds an n-ary distinctness assertion over operands of
// identical type.
func (s *Store) MkDistinct(operands ...*Node) (*Node, error) {
	if len(operands) < 2 {
		return nil, &TypeError{Symbol: "distinct", Detail: "requires at least two operands"}
	}
	for _, o := range operands[1:] {
		if o.typ == nil || operands[0].typ == nil || o.typ.tag != operands[0].typ.tag {
			return nil, &TypeError{Symbol: "distinct", Detail: "operands must share a type"}
		}
	}
	return s.Apply(s.MkSymbol(SymDistinct), operands, s.BoolType())
}

// MkEq builds a = b; a and b must share a type.
func (s *Store) MkEq(a, b *Node) (*Node, error) {
	if a.typ == nil || b.typ == nil || a.typ.tag != b.typ.tag {
		return nil, &TypeError{Symbol: "=", Detail: "operands must share a type"}
	}
	return s.Apply(s.MkSymbol(SymEq), []*Node{a, b}, s.BoolType())
}

// MkIte builds if c then a else b. Array operands of differing
// dimensionality are coalesced by the expression layer (internal/expr);
// this constructor requires a and b to already share a type.
func (s *Store) MkIte(c, a, b *Node) (*Node, error) {
	if err := s.checkBool("ite", c); err != nil {
		return nil, err
	}
	if a.typ == nil || b.typ == nil || a.typ.tag != b.typ.tag {
		return nil, &TypeError{Symbol: "ite", Detail: "branches must share a type"}
	}
	return s.Apply(s.MkSymbol(SymIte), []*Node{c, a, b}, a.typ)
}
