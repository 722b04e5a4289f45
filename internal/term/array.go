package term

// Array term constructors. Grounded on internal/smt/array.go's
// Array{Get,Set} over a yices2 uninterpreted function; here select/store
// are ordinary hash-consed applied nodes over an array-typed operand.

// MkSelect builds select(arr, idx). arr must have array type; idx must
// match its declared index type.
func (s *Store) MkSelect(arr, idx *Node) (*Node, error) {
	if arr.typ == nil || arr.typ.kind != TyArray {
		return nil, &TypeError{Symbol: "select", Detail: "first operand is not an array"}
	}
	if idx.typ == nil || idx.typ.tag != arr.typ.index.tag {
		return nil, &TypeError{Symbol: "select", Detail: "index type does not match array's index type"}
	}
	return s.Apply(s.MkSymbol(SymSelect), []*Node{arr, idx}, arr.typ.elem)
}

// MkStore builds store(arr, idx, val), an array identical to arr except
// at idx, which now holds val.
func (s *Store) MkStore(arr, idx, val *Node) (*Node, error) {
	if arr.typ == nil || arr.typ.kind != TyArray {
		return nil, &TypeError{Symbol: "store", Detail: "first operand is not an array"}
	}
	if idx.typ == nil || idx.typ.tag != arr.typ.index.tag {
		return nil, &TypeError{Symbol: "store", Detail: "index type does not match array's index type"}
	}
	if val.typ == nil || val.typ.tag != arr.typ.elem.tag {
		return nil, &TypeError{Symbol: "store", Detail: "value type does not match array's element type"}
	}
	return s.Apply(s.MkSymbol(SymStore), []*Node{arr, idx, val}, arr.typ)
}

// MkArrayConst builds an uninterpreted constant array of the given type,
// named for readability in printed output.
func (s *Store) MkArrayConst(name string, arrTy *Type) *Node {
	v := s.FreeVar(name, arrTy)
	return s.MkVar(v)
}
