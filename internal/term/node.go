package term

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// TypeError is raised when a constructor's operands disagree with the
// symbol's expected signature. Construction-time type checking is
// mandatory per spec.md §4.1. Callers receive a TypeError as is; no
// package in this module converts it into a diagnostic.TypeMismatch.
type TypeError struct {
	Symbol string
	Detail string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: %s", e.Symbol, e.Detail)
}

// Node is a hash-consed term: a lambda-tree leaf (a literal symbol or a
// variable) or an internal node (a symbol applied to an ordered list of
// child term references). Two structurally equal nodes are the same
// pointer and carry the same Tag (spec.md §3 invariant).
type Node struct {
	tag      Tag
	sym      *Symbol // nil for a pure variable leaf
	variable *Variable
	children []*Node
	typ      *Type

	// binderNames carries the bound-variable names for SymForall /
	// SymExists / SymLet nodes, one per bound position, so Destruct can
	// report them without guessing. Empty for non-binder nodes.
	binderNames []string
}

func (n *Node) Tag() Tag          { return n.tag }
func (n *Node) Symbol() *Symbol   { return n.sym }
func (n *Node) Variable() *Variable { return n.variable }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) Type() *Type       { return n.typ }
func (n *Node) IsLeaf() bool      { return len(n.children) == 0 }
func (n *Node) IsVariable() bool  { return n.variable != nil }

// IsNumeral reports whether n is a literal int/real/bv constant leaf.
func (n *Node) IsNumeral() bool {
	if n.sym == nil {
		return false
	}
	switch n.sym.kind {
	case SymIntConst, SymRealConst, SymBVConst:
		return true
	default:
		return false
	}
}

// TypeOf is an accessor alias kept for readability at call sites that
// read like the spec's "type_of".
func (n *Node) TypeOf() *Type { return n.typ }

func nodeKey(symTag Tag, hasSym bool, varTag Tag, hasVar bool, children []*Node, typeTag Tag) string {
	var b strings.Builder
	if hasSym {
		fmt.Fprintf(&b, "s%d|", symTag)
	}
	if hasVar {
		fmt.Fprintf(&b, "v%d|", varTag)
	}
	for _, c := range children {
		fmt.Fprintf(&b, "%d,", c.tag)
	}
	fmt.Fprintf(&b, "|t%d", typeTag)
	return b.String()
}

func (s *Store) internNode(sym *Symbol, variable *Variable, children []*Node, typ *Type, binderNames []string) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	var symTag, varTag, typeTag Tag
	hasSym, hasVar := sym != nil, variable != nil
	if hasSym {
		symTag = sym.tag
	}
	if hasVar {
		varTag = variable.tag
	}
	if typ != nil {
		typeTag = typ.tag
	}
	key := nodeKey(symTag, hasSym, varTag, hasVar, children, typeTag)
	if existing, ok := s.nodes[key]; ok {
		s.collisions++ // a repeat lookup on an existing key: tracked as a
		// "would-have-collided-on-structural-hash" event for observability,
		// mirroring the design note's call for collision counters.
		return existing
	}
	cp := append([]*Node(nil), children...)
	node := &Node{tag: s.allocTag(), sym: sym, variable: variable, children: cp, typ: typ, binderNames: append([]string(nil), binderNames...)}
	s.nodes[key] = node
	s.bumpPeak()
	return node
}

// MkVar builds a variable leaf node.
func (s *Store) MkVar(v *Variable) *Node {
	return s.internNode(nil, v, nil, v.typ, nil)
}

// MkLeaf builds a zero-arity symbol leaf (a literal).
func (s *Store) MkLeaf(sym *Symbol, typ *Type) *Node {
	if sym.kind.Arity() != 0 {
		panic(&TypeError{Symbol: sym.kind.String(), Detail: "MkLeaf called on a non-zero-arity symbol"})
	}
	return s.internNode(sym, nil, nil, typ, nil)
}

// Apply builds an internal applied-symbol node, checking arity against
// the symbol's declared Arity() when it is fixed. Per-operator operand
// type checks live beside each operator's closed constructor in bool.go,
// bitvec.go, and array.go; Apply is the common interning primitive they
// all funnel through.
func (s *Store) Apply(sym *Symbol, children []*Node, typ *Type) (*Node, error) {
	if want := sym.kind.Arity(); want >= 0 && want != len(children) {
		return nil, &TypeError{Symbol: sym.kind.String(), Detail: fmt.Sprintf("expected %d children, got %d", want, len(children))}
	}
	return s.internNode(sym, nil, children, typ, nil), nil
}

// MkBinder builds a SymForall/SymExists/SymLet node binding len(names)
// fresh de-Bruijn positions over body, whose bound variables must
// already have been constructed via BoundVar relative to this binder.
// For SymLet, children is [bound-value-1, ..., bound-value-n, body];
// for SymForall/SymExists, children is [body].
func (s *Store) MkBinder(kind SymbolKind, names []string, children []*Node, typ *Type) *Node {
	sym := s.MkSymbol(kind)
	return s.internNode(sym, nil, children, typ, names)
}

// Destruct flattens top-level binders: if n is headed by a chain of
// SymForall/SymExists/SymLet of the same kind, it returns the combined
// list of bound names and the innermost non-binder body. Otherwise it
// returns (nil, n).
func (n *Node) Destruct() ([]string, *Node) {
	if n.sym == nil {
		return nil, n
	}
	switch n.sym.kind {
	case SymForall, SymExists, SymLet:
		names := append([]string(nil), n.binderNames...)
		body := n.children[len(n.children)-1]
		if body.sym == nil || body.sym.kind != n.sym.kind {
			return names, body
		}
		innerNames, innerBody := body.Destruct()
		return append(names, innerNames...), innerBody
	default:
		return nil, n
	}
}

// NodeArgs returns the children of an applied node (spec.md's
// "node_args_of"), or nil for a leaf.
func (n *Node) NodeArgs() []*Node { return n.children }

// EvalT performs a bottom-up, right-to-left fold over n with lazy
// let-unfolding: SymLet bindings are not eagerly substituted into the
// term; instead, while folding a let's body, a lookup of one of its
// bound de-Bruijn positions is served from the already-folded bound
// value. f receives the node being visited and the already-folded
// results of its children (bound-value children first, in the same
// left-to-right order as Children(), even though evaluation of sibling
// subterms internally proceeds right-to-left).
func EvalT(n *Node, f func(node *Node, childResults []interface{}) interface{}) interface{} {
	memo := make(map[Tag]interface{})
	var env []map[int]interface{}
	var walk func(*Node) interface{}
	walk = func(cur *Node) interface{} {
		if cur.IsVariable() && cur.variable.kind == VarBound {
			for i := len(env) - 1; i >= 0; i-- {
				if v, ok := env[i][cur.variable.index]; ok {
					return v
				}
			}
			// Unbound de-Bruijn index under the current traversal: fall
			// through to a plain leaf visit.
		}
		if v, ok := memo[cur.tag]; ok {
			return v
		}
		if cur.sym != nil && cur.sym.kind == SymLet {
			n := len(cur.children) - 1
			boundResults := make(map[int]interface{}, n)
			results := make([]interface{}, len(cur.children))
			for i := n - 1; i >= 0; i-- {
				r := walk(cur.children[i])
				results[i] = r
				boundResults[i] = r
			}
			env = append(env, boundResults)
			bodyResult := walk(cur.children[n])
			env = env[:len(env)-1]
			results[n] = bodyResult
			out := f(cur, results)
			memo[cur.tag] = out
			return out
		}
		results := make([]interface{}, len(cur.children))
		for i := len(cur.children) - 1; i >= 0; i-- {
			results[i] = walk(cur.children[i])
		}
		out := f(cur, results)
		memo[cur.tag] = out
		return out
	}
	return walk(n)
}

// Map rebuilds n by applying f to every node, innermost first; f
// receives the current binder depth (the number of enclosing
// SymForall/SymExists/SymLet binders) so it can shift de-Bruijn indices
// correctly when substituting under a binder.
func (s *Store) Map(f func(depth int, n *Node) *Node, n *Node) *Node {
	var walk func(depth int, cur *Node) *Node
	walk = func(depth int, cur *Node) *Node {
		childDepth := depth
		if cur.sym != nil {
			switch cur.sym.kind {
			case SymForall, SymExists, SymLet:
				childDepth = depth + 1
			}
		}
		if len(cur.children) == 0 {
			return f(depth, cur)
		}
		newChildren := make([]*Node, len(cur.children))
		for i, c := range cur.children {
			d := depth
			if cur.sym != nil && isBinder(cur.sym.kind) && isLetBoundValueIndex(cur.sym.kind, i, len(cur.children)) == false {
				d = childDepth
			}
			newChildren[i] = walk(d, c)
		}
		rebuilt := s.internNode(cur.sym, cur.variable, newChildren, cur.typ, cur.binderNames)
		return f(depth, rebuilt)
	}
	return walk(0, n)
}

func isBinder(k SymbolKind) bool {
	return k == SymForall || k == SymExists || k == SymLet
}

// isLetBoundValueIndex reports whether child index i of a SymLet node
// (with total arity n) is one of the bound-value children (which live
// at the binder's original depth) rather than the body (which lives one
// deeper).
func isLetBoundValueIndex(k SymbolKind, i, n int) bool {
	if k != SymLet {
		return false
	}
	return i < n-1
}

const namedReservedNamespace = "t"

var namedCounter int64

// MkNamed tags t with a fresh integer key in the reserved "t" namespace,
// returning the key and a node recording the association via SymNamed.
func (s *Store) MkNamed(t *Node) (int64, *Node) {
	k := atomic.AddInt64(&namedCounter, 1)
	sym := s.MkNamedSymbol(SymNamed, fmt.Sprintf("%s%d", namedReservedNamespace, k))
	named, _ := s.Apply(sym, []*Node{t}, t.typ)
	return k, named
}

// MkNamedUnsafe tags t under caller-chosen name, rejecting any name in
// the reserved "t<digits>" namespace that MkNamed uses.
func (s *Store) MkNamedUnsafe(name string, t *Node) (*Node, error) {
	if strings.HasPrefix(name, namedReservedNamespace) {
		rest := strings.TrimPrefix(name, namedReservedNamespace)
		if rest == "" {
			return nil, &TypeError{Symbol: "mk_named_unsafe", Detail: "name uses the reserved \"t\" namespace"}
		}
		allDigits := true
		for _, r := range rest {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			return nil, &TypeError{Symbol: "mk_named_unsafe", Detail: "name uses the reserved \"t<n>\" namespace"}
		}
	}
	sym := s.MkNamedSymbol(SymNamed, name)
	return s.Apply(sym, []*Node{t}, t.typ)
}

// Import copies t, built against a disjoint store, into s, preserving
// structure (and re-establishing hash-consing identity within s).
func Import(src *Node, from, to *Store) *Node {
	if from == to {
		return src
	}
	if src.IsVariable() {
		v := src.variable
		switch v.kind {
		case VarFree:
			return to.MkVar(to.FreeVar(v.name, importType(v.typ, from, to)))
		case VarBound:
			return to.MkVar(to.BoundVar(v.index, importType(v.typ, from, to)))
		case VarStateInstance:
			return to.MkVar(to.StateInstanceVar(v.svar, v.offset, importType(v.typ, from, to)))
		case VarConstState:
			return to.MkVar(to.ConstStateVar(v.svar, importType(v.typ, from, to)))
		}
	}
	if src.IsLeaf() {
		sym := importSymbol(src.sym, to)
		return to.MkLeaf(sym, importType(src.typ, from, to))
	}
	children := make([]*Node, len(src.children))
	for i, c := range src.children {
		children[i] = Import(c, from, to)
	}
	sym := importSymbol(src.sym, to)
	n, _ := to.Apply(sym, children, importType(src.typ, from, to))
	return n
}

func importSymbol(sym *Symbol, to *Store) *Symbol {
	return to.internSymbol(sym.kind, sym.intVal, sym.bvBits, sym.bvLow, sym.name)
}

func importType(t *Type, from, to *Store) *Type {
	if t == nil {
		return nil
	}
	switch t.kind {
	case TyBool:
		return to.BoolType()
	case TyInt:
		return to.IntType()
	case TyReal:
		return to.RealType()
	case TyIntRange:
		var lo, hi *int64
		if t.hasLo {
			v := t.lo
			lo = &v
		}
		if t.hasHi {
			v := t.hi
			hi = &v
		}
		return to.IntRangeType(lo, hi)
	case TyBV:
		return to.BVType(t.width)
	case TyUBV:
		return to.UBVType(t.width)
	case TyArray:
		return to.ArrayType(importType(t.index, from, to), importType(t.elem, from, to))
	case TyEnum:
		return to.EnumType(t.name, t.ctors)
	case TyAbstract:
		return to.AbstractType(t.name)
	default:
		return nil
	}
}

// Negate returns the logical negation of a boolean-typed node,
// cancelling a leading SymNot rather than stacking another one:
// Negate(Negate(t)) == t whenever the inner node is itself a negation
// (spec.md §4.1, §8 "Negation idempotence").
func (s *Store) Negate(t *Node) *Node {
	if t.sym != nil && t.sym.kind == SymNot {
		return t.children[0]
	}
	notSym := s.MkSymbol(SymNot)
	n, _ := s.Apply(notSym, []*Node{t}, t.typ)
	return n
}

// NegateSimplify is Negate plus cancellation through boolean constants
// and arithmetic/bitvector comparison flips (< becomes >=, = becomes
// distinct, and so on), so the result stays in negation-normal form
// instead of accumulating a literal "not" wrapper.
func (s *Store) NegateSimplify(t *Node) *Node {
	if t.sym == nil {
		return s.Negate(t)
	}
	switch t.sym.kind {
	case SymNot:
		return t.children[0]
	case SymBoolConst:
		return s.MkLeaf(s.MkBoolConstSymbol(!t.IsTrue()), t.typ)
	case SymLt:
		return s.mkCompare(SymGeq, t.children[0], t.children[1], t.typ)
	case SymLeq:
		return s.mkCompare(SymGt, t.children[0], t.children[1], t.typ)
	case SymGt:
		return s.mkCompare(SymLeq, t.children[0], t.children[1], t.typ)
	case SymGeq:
		return s.mkCompare(SymLt, t.children[0], t.children[1], t.typ)
	case SymEq:
		return s.mkCompare(SymDistinct, t.children[0], t.children[1], s.BoolType())
	case SymDistinct:
		return s.mkCompare(SymEq, t.children[0], t.children[1], s.BoolType())
	default:
		return s.Negate(t)
	}
}

func (s *Store) mkCompare(kind SymbolKind, a, b *Node, typ *Type) *Node {
	sym := s.MkSymbol(kind)
	n, _ := s.Apply(sym, []*Node{a, b}, typ)
	return n
}

// IsTrue reports whether n is the boolean-literal-true leaf.
func (n *Node) IsTrue() bool {
	return n.sym != nil && n.sym.kind == SymBoolConst && n.sym.intVal != nil && n.sym.intVal.Sign() != 0
}

// IsFalse reports whether n is the boolean-literal-false leaf.
func (n *Node) IsFalse() bool {
	return n.sym != nil && n.sym.kind == SymBoolConst && (n.sym.intVal == nil || n.sym.intVal.Sign() == 0)
}
