package term

import "math/big"

// Bit-vector term constructors. Grounded file-for-file on
// internal/smt/bitvec.go (NewBitVecVal, Concat, Concats, and friends):
// the teacher builds these over a live yices2.TermT handle, we build
// them over an interned *Node. Operand-width checks happen here instead
// of at a solver boundary. bv and ubv operands are not told apart: a
// bv and a ubv of the same width combine, and results are typed bv.

func bvWidth(t *Type) (uint32, bool) {
	if t == nil {
		return 0, false
	}
	switch t.kind {
	case TyBV, TyUBV:
		return t.width, true
	default:
		return 0, false
	}
}

// MkBVVal interns a bit-vector literal of the given width.
func (s *Store) MkBVVal(v *big.Int, width uint32) *Node {
	return s.MkLeaf(s.MkBVConstSymbol(v, width), s.BVType(width))
}

func (s *Store) checkBVSameWidth(symbolName string, a, b *Node) (uint32, error) {
	wa, ok := bvWidth(a.typ)
	if !ok {
		return 0, &TypeError{Symbol: symbolName, Detail: "left operand is not a bit-vector"}
	}
	wb, ok := bvWidth(b.typ)
	if !ok {
		return 0, &TypeError{Symbol: symbolName, Detail: "right operand is not a bit-vector"}
	}
	if wa != wb {
		return 0, &TypeError{Symbol: symbolName, Detail: "operand widths disagree"}
	}
	return wa, nil
}

func (s *Store) mkBVBinOp(kind SymbolKind, name string, a, b *Node) (*Node, error) {
	w, err := s.checkBVSameWidth(name, a, b)
	if err != nil {
		return nil, err
	}
	return s.Apply(s.MkSymbol(kind), []*Node{a, b}, s.BVType(w))
}

func (s *Store) MkBVAdd(a, b *Node) (*Node, error)  { return s.mkBVBinOp(SymBVAdd, "bvadd", a, b) }
func (s *Store) MkBVSub(a, b *Node) (*Node, error)  { return s.mkBVBinOp(SymBVSub, "bvsub", a, b) }
func (s *Store) MkBVMul(a, b *Node) (*Node, error)  { return s.mkBVBinOp(SymBVMul, "bvmul", a, b) }
func (s *Store) MkBVUdiv(a, b *Node) (*Node, error) { return s.mkBVBinOp(SymBVUdiv, "bvudiv", a, b) }
func (s *Store) MkBVSdiv(a, b *Node) (*Node, error) { return s.mkBVBinOp(SymBVSdiv, "bvsdiv", a, b) }
func (s *Store) MkBVUrem(a, b *Node) (*Node, error) { return s.mkBVBinOp(SymBVUrem, "bvurem", a, b) }
func (s *Store) MkBVSrem(a, b *Node) (*Node, error) { return s.mkBVBinOp(SymBVSrem, "bvsrem", a, b) }
func (s *Store) MkBVAnd(a, b *Node) (*Node, error)  { return s.mkBVBinOp(SymBVAnd, "bvand", a, b) }
func (s *Store) MkBVOr(a, b *Node) (*Node, error)   { return s.mkBVBinOp(SymBVOr, "bvor", a, b) }
func (s *Store) MkBVXor(a, b *Node) (*Node, error)  { return s.mkBVBinOp(SymBVXor, "bvxor", a, b) }
func (s *Store) MkBVShl(a, b *Node) (*Node, error)  { return s.mkBVBinOp(SymBVShl, "bvshl", a, b) }
func (s *Store) MkBVLshr(a, b *Node) (*Node, error) { return s.mkBVBinOp(SymBVLshr, "bvlshr", a, b) }
func (s *Store) MkBVAshr(a, b *Node) (*Node, error) { return s.mkBVBinOp(SymBVAshr, "bvashr", a, b) }

// MkBVNot builds the bitwise complement of a.
func (s *Store) MkBVNot(a *Node) (*Node, error) {
	w, ok := bvWidth(a.typ)
	if !ok {
		return nil, &TypeError{Symbol: "bvnot", Detail: "operand is not a bit-vector"}
	}
	return s.Apply(s.MkSymbol(SymBVNot), []*Node{a}, s.BVType(w))
}

// MkBVNeg builds the two's-complement negation of a.
func (s *Store) MkBVNeg(a *Node) (*Node, error) {
	w, ok := bvWidth(a.typ)
	if !ok {
		return nil, &TypeError{Symbol: "bvneg", Detail: "operand is not a bit-vector"}
	}
	return s.Apply(s.MkSymbol(SymBVNeg), []*Node{a}, s.BVType(w))
}

// Concat concatenates two bit-vectors, producing one of combined width.
func (s *Store) Concat(lhs, rhs *Node) (*Node, error) {
	wl, ok := bvWidth(lhs.typ)
	if !ok {
		return nil, &TypeError{Symbol: "concat", Detail: "left operand is not a bit-vector"}
	}
	wr, ok := bvWidth(rhs.typ)
	if !ok {
		return nil, &TypeError{Symbol: "concat", Detail: "right operand is not a bit-vector"}
	}
	return s.Apply(s.MkSymbol(SymBVConcat), []*Node{lhs, rhs}, s.BVType(wl+wr))
}

// Concats concatenates a slice of same-width bit-vectors left to right,
// mirroring internal/smt/bitvec.go's Concats.
func (s *Store) Concats(values ...*Node) (*Node, error) {
	if len(values) == 0 {
		return nil, nil
	}
	result := values[0]
	var err error
	for _, v := range values[1:] {
		result, err = s.Concat(result, v)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Extract builds bits [low, high] of a (inclusive), width high-low+1.
func (s *Store) Extract(a *Node, low, high uint32) (*Node, error) {
	w, ok := bvWidth(a.typ)
	if !ok {
		return nil, &TypeError{Symbol: "extract", Detail: "operand is not a bit-vector"}
	}
	if high >= w || low > high {
		return nil, &TypeError{Symbol: "extract", Detail: "bit range out of bounds"}
	}
	return s.Apply(s.MkExtractSymbol(low, high), []*Node{a}, s.BVType(high-low+1))
}

// SignExtend widens a by extraBits, preserving sign.
func (s *Store) SignExtend(a *Node, extraBits uint32) (*Node, error) {
	w, ok := bvWidth(a.typ)
	if !ok {
		return nil, &TypeError{Symbol: "sign_extend", Detail: "operand is not a bit-vector"}
	}
	return s.Apply(s.MkExtendSymbol(SymBVSignExtend, extraBits), []*Node{a}, s.BVType(w+extraBits))
}

// ZeroExtend widens a by extraBits with zero fill.
func (s *Store) ZeroExtend(a *Node, extraBits uint32) (*Node, error) {
	w, ok := bvWidth(a.typ)
	if !ok {
		return nil, &TypeError{Symbol: "zero_extend", Detail: "operand is not a bit-vector"}
	}
	return s.Apply(s.MkExtendSymbol(SymBVZeroExtend, extraBits), []*Node{a}, s.BVType(w+extraBits))
}
