package nodegen

import (
	"lustrecore/internal/ast"
	"lustrecore/internal/term"
	"lustrecore/internal/trie"
)

// TypingContext resolves a scalar (non-structured) source type
// annotation to a hash-consed term.Type. The surface type checker that
// produces the input AST's declared types is an external collaborator
// (spec.md §1); this interface is the seam the node generator consumes
// it through.
type TypingContext interface {
	ResolveScalarType(te *ast.TypeExpr, aliases map[string]*term.Type) (*term.Type, error)
}

// DefaultTypingContext resolves spec.md's built-in scalar kinds
// directly and everything else (named enum/abstract types, anything
// still unresolved after alias substitution) as an abstract type
// carrying the source name — sound because nothing in this core
// interprets an abstract type's internal structure.
type DefaultTypingContext struct {
	Store *term.Store
}

func (d *DefaultTypingContext) ResolveScalarType(te *ast.TypeExpr, aliases map[string]*term.Type) (*term.Type, error) {
	s := d.Store
	switch te.Kind {
	case ast.TyBool:
		return s.BoolType(), nil
	case ast.TyInt:
		return s.IntType(), nil
	case ast.TyReal:
		return s.RealType(), nil
	case ast.TySubrange:
		lo, hasLo := constInt(te.Lo)
		hi, hasHi := constInt(te.Hi)
		var lop, hip *int64
		if hasLo {
			lop = &lo
		}
		if hasHi {
			hip = &hi
		}
		return s.IntRangeType(lop, hip), nil
	case ast.TyNamed:
		if resolved, ok := aliases[te.Name]; ok {
			return resolved, nil
		}
		return s.AbstractType(te.Name), nil
	default:
		return nil, &term.TypeError{Symbol: "typing-context", Detail: "not a scalar type: " + typeExprKindName(te.Kind)}
	}
}

func typeExprKindName(k ast.TypeExprKind) string {
	switch k {
	case ast.TyBool:
		return "bool"
	case ast.TyInt:
		return "int"
	case ast.TyReal:
		return "real"
	case ast.TySubrange:
		return "subrange"
	case ast.TyNamed:
		return "named"
	case ast.TyArray:
		return "array"
	case ast.TyTuple:
		return "tuple"
	case ast.TyRecord:
		return "record"
	default:
		return "unknown"
	}
}

func constInt(e ast.Expr) (int64, bool) {
	if e == nil {
		return 0, false
	}
	ic, ok := e.(*ast.IntConst)
	if !ok || ic.Value == nil {
		return 0, false
	}
	return ic.Value.Int64(), true
}

// CompileTypeToTrie compiles a (possibly structured) source type
// annotation into an index trie of scalar term.Types, one leaf per
// record field / tuple position / array index (spec.md §4.5 step 2).
func CompileTypeToTrie(tc TypingContext, te *ast.TypeExpr, aliases map[string]*term.Type) (*trie.Trie[*term.Type], error) {
	switch te.Kind {
	case ast.TyArray:
		sizeConst, known := constInt(te.Size)
		n := term.ClampArraySize(sizeConst)
		sub, err := CompileTypeToTrie(tc, te.Elem, aliases)
		if err != nil {
			return nil, err
		}
		if !known {
			// A symbolic or unresolved size is represented by a single
			// array-variable leaf standing for the whole element shape,
			// keyed by the fixed placeholder "?"; no later step replaces
			// it with an index expression's key.
			return prefixTrie(trie.ArrayVarIndex("?"), sub), nil
		}
		out := trie.Empty[*term.Type]()
		for i := int64(0); i < n; i++ {
			leafSub := prefixTrie(trie.ArrayIntIndex(int(i)), sub)
			for _, b := range leafSub.Bindings() {
				out = out.Add(b.Path, b.Value)
			}
		}
		return out, nil

	case ast.TyTuple:
		out := trie.Empty[*term.Type]()
		for i, elemTE := range te.Elems {
			sub, err := CompileTypeToTrie(tc, elemTE, aliases)
			if err != nil {
				return nil, err
			}
			prefixed := prefixTrie(trie.TupleIndex(i), sub)
			for _, b := range prefixed.Bindings() {
				out = out.Add(b.Path, b.Value)
			}
		}
		return out, nil

	case ast.TyRecord:
		out := trie.Empty[*term.Type]()
		for _, field := range te.Fields {
			sub, err := CompileTypeToTrie(tc, field.Type, aliases)
			if err != nil {
				return nil, err
			}
			prefixed := prefixTrie(trie.RecordIndex(field.Name), sub)
			for _, b := range prefixed.Bindings() {
				out = out.Add(b.Path, b.Value)
			}
		}
		return out, nil

	default:
		scalar, err := tc.ResolveScalarType(te, aliases)
		if err != nil {
			return nil, err
		}
		return trie.Singleton[*term.Type](trie.Path{}, scalar), nil
	}
}

func prefixTrie[V any](tag trie.Tag, sub *trie.Trie[V]) *trie.Trie[V] {
	out := trie.Empty[V]()
	for _, b := range sub.Bindings() {
		out = out.Add(append(trie.Path{tag}, b.Path...), b.Value)
	}
	return out
}
