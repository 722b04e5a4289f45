package term

import (
	"fmt"
	"math/big"
)

// SymbolKind is the tag of a Symbol: the operator (or literal) that an
// applied term node carries. Grounded on internal/opcode's Operation
// enum in the teacher (a flat mnemonic with known stack effect); here
// each kind additionally declares its arity so a constructor can
// type-check its argument count before it ever touches the store.
type SymbolKind int

const (
	// Boolean connectives.
	SymBoolConst SymbolKind = iota
	SymAnd
	SymOr
	SymNot
	SymImplies
	SymXor

	// Literals.
	SymIntConst
	SymRealConst
	SymBVConst

	// Arithmetic.
	SymAdd
	SymSub
	SymMul
	SymIntDiv
	SymMod
	SymRealDiv
	SymUMinus

	// Bit-vector operators.
	SymBVAdd
	SymBVSub
	SymBVMul
	SymBVUdiv
	SymBVSdiv
	SymBVUrem
	SymBVSrem
	SymBVAnd
	SymBVOr
	SymBVXor
	SymBVNot
	SymBVNeg
	SymBVShl
	SymBVLshr
	SymBVAshr
	SymBVExtract
	SymBVConcat
	SymBVSignExtend
	SymBVZeroExtend

	// Comparisons (polymorphic over int/real/bv operands).
	SymEq
	SymLt
	SymLeq
	SymGt
	SymGeq
	SymDistinct

	// Arrays.
	SymSelect
	SymStore

	// Control.
	SymIte

	// Uninterpreted function reference (the symbol payload carries the
	// function's declared name).
	SymUF

	// Quantifiers and binding.
	SymForall
	SymExists
	SymLet

	// Naming / diagnostics.
	SymNamed
	SymInterpGroup
)

var symbolKindNames = map[SymbolKind]string{
	SymBoolConst: "bool-const", SymAnd: "and", SymOr: "or", SymNot: "not",
	SymImplies: "=>", SymXor: "xor",
	SymIntConst: "int-const", SymRealConst: "real-const", SymBVConst: "bv-const",
	SymAdd: "+", SymSub: "-", SymMul: "*", SymIntDiv: "div", SymMod: "mod",
	SymRealDiv: "/", SymUMinus: "u-", SymBVAdd: "bvadd", SymBVSub: "bvsub",
	SymBVMul: "bvmul", SymBVUdiv: "bvudiv", SymBVSdiv: "bvsdiv", SymBVUrem: "bvurem",
	SymBVSrem: "bvsrem", SymBVAnd: "bvand", SymBVOr: "bvor", SymBVXor: "bvxor",
	SymBVNot: "bvnot", SymBVNeg: "bvneg", SymBVShl: "bvshl", SymBVLshr: "bvlshr",
	SymBVAshr: "bvashr", SymBVExtract: "extract", SymBVConcat: "concat",
	SymBVSignExtend: "sign_extend", SymBVZeroExtend: "zero_extend",
	SymEq: "=", SymLt: "<", SymLeq: "<=", SymGt: ">", SymGeq: ">=",
	SymDistinct: "distinct", SymSelect: "select", SymStore: "store", SymIte: "ite",
	SymUF: "uf", SymForall: "forall", SymExists: "exists", SymLet: "let",
	SymNamed: "!", SymInterpGroup: "interp-group",
}

func (k SymbolKind) String() string {
	if n, ok := symbolKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("symbol-kind(%d)", int(k))
}

// Arity returns the fixed number of children a symbol of this kind
// expects, or -1 if the kind is variadic (and-or-distinct-style n-ary
// symbols, and function application which is checked against the
// function's declared domain instead).
func (k SymbolKind) Arity() int {
	switch k {
	case SymBoolConst, SymIntConst, SymRealConst, SymBVConst:
		return 0
	case SymNot, SymUMinus, SymBVNot, SymBVNeg, SymNamed:
		return 1
	case SymImplies, SymXor, SymEq, SymLt, SymLeq, SymGt, SymGeq,
		SymAdd, SymSub, SymMul, SymIntDiv, SymMod, SymRealDiv,
		SymBVAdd, SymBVSub, SymBVMul, SymBVUdiv, SymBVSdiv, SymBVUrem, SymBVSrem,
		SymBVAnd, SymBVOr, SymBVXor, SymBVShl, SymBVLshr, SymBVAshr,
		SymBVConcat, SymSelect:
		return 2
	case SymIte, SymStore:
		return 3
	case SymBVExtract, SymBVSignExtend, SymBVZeroExtend:
		return 1 // the bound(s) live in the symbol payload, not as children
	case SymAnd, SymOr, SymDistinct, SymUF, SymInterpGroup, SymForall, SymExists:
		return -1
	default:
		return -1
	}
}

// Symbol is a hash-consed operator/literal tag. Two Symbols with equal
// kind and payload are the same pointer.
type Symbol struct {
	tag  Tag
	kind SymbolKind

	// Literal payload (SymIntConst, SymRealConst, SymBVConst).
	intVal *big.Int
	bvBits uint32 // SymBVConst bit width; SymBVExtract high bit; SymBVSignExtend/ZeroExtend added width.
	bvLow  uint32 // SymBVExtract low bit.

	// SymUF / SymNamed / SymInterpGroup payload.
	name string
}

// Tag returns the symbol's process-wide unique identity.
func (s *Symbol) Tag() Tag { return s.tag }

// Kind returns the symbol's operator tag.
func (s *Symbol) Kind() SymbolKind { return s.kind }

// Name returns the uninterpreted-function name, the named-term
// namespace id, or the interpolation-group id carried by this symbol.
func (s *Symbol) Name() string { return s.name }

// IntValue returns the integer payload of an int-const, bv-const or
// bool-const symbol (1 for true, 0 for false). ok is false for any
// other kind, including real-const (whose payload is a rational string
// in Name, not an integer).
func (s *Symbol) IntValue() (v *big.Int, ok bool) {
	if s.intVal == nil {
		return nil, false
	}
	return s.intVal, true
}

func symbolKey(kind SymbolKind, intVal *big.Int, bvBits, bvLow uint32, name string) string {
	iv := ""
	if intVal != nil {
		iv = intVal.String()
	}
	return fmt.Sprintf("%d|%s|%d|%d|%s", kind, iv, bvBits, bvLow, name)
}

func (s *Store) internSymbol(kind SymbolKind, intVal *big.Int, bvBits, bvLow uint32, name string) *Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := symbolKey(kind, intVal, bvBits, bvLow, name)
	if existing, ok := s.symbols[key]; ok {
		return existing
	}
	sym := &Symbol{
		tag: s.allocTag(), kind: kind,
		intVal: intVal, bvBits: bvBits, bvLow: bvLow, name: name,
	}
	s.symbols[key] = sym
	s.bumpPeak()
	return sym
}

// MkSymbol interns a plain, payload-free operator symbol (and, or, ite,
// select, store, comparisons, arithmetic and bit-vector operators).
func (s *Store) MkSymbol(kind SymbolKind) *Symbol {
	return s.internSymbol(kind, nil, 0, 0, "")
}

// MkIntConstSymbol interns an integer literal symbol.
func (s *Store) MkIntConstSymbol(v *big.Int) *Symbol {
	return s.internSymbol(SymIntConst, v, 0, 0, "")
}

// MkBoolConstSymbol interns the boolean-literal symbol for true or false.
func (s *Store) MkBoolConstSymbol(v bool) *Symbol {
	iv := big.NewInt(0)
	if v {
		iv = big.NewInt(1)
	}
	return s.internSymbol(SymBoolConst, iv, 0, 0, "")
}

// MkBVConstSymbol interns a bit-vector literal symbol of the given width.
func (s *Store) MkBVConstSymbol(v *big.Int, width uint32) *Symbol {
	return s.internSymbol(SymBVConst, v, width, 0, "")
}

// MkExtractSymbol interns a bit-vector extract(low, high) symbol.
func (s *Store) MkExtractSymbol(low, high uint32) *Symbol {
	return s.internSymbol(SymBVExtract, nil, high, low, "")
}

// MkExtendSymbol interns a sign/zero-extend-by-n symbol.
func (s *Store) MkExtendSymbol(kind SymbolKind, extraBits uint32) *Symbol {
	return s.internSymbol(kind, nil, extraBits, 0, "")
}

// MkUFSymbol interns an uninterpreted-function reference symbol.
func (s *Store) MkUFSymbol(name string) *Symbol {
	return s.internSymbol(SymUF, nil, 0, 0, name)
}

// MkNamedSymbol interns a named-term or interpolation-group tag symbol.
func (s *Store) MkNamedSymbol(kind SymbolKind, name string) *Symbol {
	return s.internSymbol(kind, nil, 0, 0, name)
}
