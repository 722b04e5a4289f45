package nodegen

import (
	"lustrecore/internal/ast"
	"lustrecore/internal/diagnostic"
	"lustrecore/internal/term"
	"lustrecore/internal/trie"
)

// CompileLHSToTrie destructures an equation's left-hand side into a
// trie of the state variables it binds (spec.md §4.5 step 7). An
// array-defining LHS yields its base's trie; its index binder is not
// bound in any identifier-map scope.
func CompileLHSToTrie(cc *CompileContext, lhs ast.StructItem) (*trie.Trie[*StateVariable], error) {
	switch v := lhs.(type) {
	case *ast.LHSIdent:
		if v.Discarded {
			return trie.Empty[*StateVariable](), nil
		}
		sub, ok := cc.Idents.Lookup(v.Name)
		if !ok {
			return nil, &diagnostic.UnboundIdentifier{Pos: v.Pos(), Name: v.Name}
		}
		return sub, nil

	case *ast.LHSTuple:
		out := trie.Empty[*StateVariable]()
		for i, item := range v.Items {
			sub, err := CompileLHSToTrie(cc, item)
			if err != nil {
				return nil, err
			}
			for _, b := range sub.Bindings() {
				out = out.Add(append(trie.Path{trie.TupleIndex(i)}, b.Path...), b.Value)
			}
		}
		return out, nil

	case *ast.LHSField:
		sub, err := CompileLHSToTrie(cc, v.Base)
		if err != nil {
			return nil, err
		}
		out := trie.Empty[*StateVariable]()
		for _, b := range sub.FindPrefix(trie.Path{trie.RecordIndex(v.Field)}) {
			out = out.Add(b.Path, b.Value)
		}
		return out, nil

	case *ast.LHSArrayDef:
		sub, err := CompileLHSToTrie(cc, v.Base)
		if err != nil {
			return nil, err
		}
		return sub, nil

	default:
		return nil, &diagnostic.UnsupportedConstruct{Pos: lhs.Pos(), What: "equation LHS shape"}
	}
}

// CompileExprToTrie lowers a normalized RHS expression into a trie of
// term nodes, one leaf per scalar component (spec.md §4.5 step 7).
// Calls have already been replaced by the normalizer with plain
// identifiers/GroupExprs, so this walk never encounters Call/Condact/
// RestartEvery directly.
func CompileExprToTrie(cc *CompileContext, e ast.Expr) (*trie.Trie[*term.Node], error) {
	return compileExprAt(cc, e, 0)
}

// compileExprAt is CompileExprToTrie's recursive implementation,
// threading the current instant offset (0 = this instant, -1 = one
// instant back, ...) down to the *ast.Ident leaves that resolve it
// against a StateVariable (spec.md §4.3's `mk_pre(e) = shift(e.step,
// -1)`: the shift happens here, at the point an identifier is resolved
// to a term, rather than on an already-built term). *ast.Pre is the
// only case that changes the offset it passes down; every other case
// passes offset through to its subexpressions unchanged.
func compileExprAt(cc *CompileContext, e ast.Expr, offset int) (*trie.Trie[*term.Node], error) {
	switch v := e.(type) {
	case *ast.Ident:
		svs, ok := cc.Idents.Lookup(v.Name)
		if !ok {
			return nil, &diagnostic.UnboundIdentifier{Pos: v.Pos(), Name: v.Name}
		}
		return trie.Map(svs, func(_ trie.Path, sv *StateVariable) *term.Node {
			return sv.Term(cc.Store, offset)
		}), nil

	case *ast.IntConst:
		return trie.Singleton[*term.Node](trie.Path{}, cc.Store.MkIntVal(v.Value)), nil
	case *ast.RealConst:
		return trie.Singleton[*term.Node](trie.Path{}, cc.Store.MkRealVal(v.Value)), nil
	case *ast.BoolConst:
		return trie.Singleton[*term.Node](trie.Path{}, cc.Store.MkBoolVal(v.Value)), nil

	case *ast.GroupExpr:
		out := trie.Empty[*term.Node]()
		for i, item := range v.Items {
			sub, err := compileExprAt(cc, item, offset)
			if err != nil {
				return nil, err
			}
			for _, b := range sub.Bindings() {
				out = out.Add(append(trie.Path{trie.TupleIndex(i)}, b.Path...), b.Value)
			}
		}
		return out, nil

	case *ast.StructLit:
		out := trie.Empty[*term.Node]()
		for _, f := range v.Fields {
			sub, err := compileExprAt(cc, f.Value, offset)
			if err != nil {
				return nil, err
			}
			for _, b := range sub.Bindings() {
				out = out.Add(append(trie.Path{trie.RecordIndex(f.Name)}, b.Path...), b.Value)
			}
		}
		return out, nil

	case *ast.RecordProject:
		sub, err := compileExprAt(cc, v.Record, offset)
		if err != nil {
			return nil, err
		}
		out := trie.Empty[*term.Node]()
		for _, b := range sub.FindPrefix(trie.Path{trie.RecordIndex(v.Field)}) {
			out = out.Add(b.Path, b.Value)
		}
		return out, nil

	case *ast.TupleProject:
		sub, err := compileExprAt(cc, v.Tuple, offset)
		if err != nil {
			return nil, err
		}
		out := trie.Empty[*term.Node]()
		for _, b := range sub.FindPrefix(trie.Path{trie.TupleIndex(v.Index)}) {
			out = out.Add(b.Path, b.Value)
		}
		return out, nil

	case *ast.ArrayIndex:
		sub, err := compileExprAt(cc, v.Array, offset)
		if err != nil {
			return nil, err
		}
		idxConst, ok := v.Index.(*ast.IntConst)
		if !ok {
			return nil, &diagnostic.UnsupportedConstruct{Pos: v.Pos(), What: "non-literal array index in RHS"}
		}
		out := trie.Empty[*term.Node]()
		for _, b := range sub.FindPrefix(trie.Path{trie.ArrayIntIndex(int(idxConst.Value.Int64()))}) {
			out = out.Add(b.Path, b.Value)
		}
		return out, nil

	case *ast.BinOp:
		l, err := compileExprAt(cc, v.Left, offset)
		if err != nil {
			return nil, err
		}
		r, err := compileExprAt(cc, v.Right, offset)
		if err != nil {
			return nil, err
		}
		op, ok := binOps[v.Op]
		if !ok {
			return nil, &diagnostic.UnsupportedConstruct{Pos: v.Pos(), What: "binary operator " + v.Op}
		}
		result, mapErr := trie.Map2(l, r, func(_ trie.Path, a, b *term.Node) *term.Node {
			n, err := op(cc.Store, a, b)
			if err != nil {
				return cc.Store.MkBoolVal(false)
			}
			return n
		})
		if mapErr != nil {
			return nil, mapErr
		}
		return result, nil

	case *ast.UnOp:
		sub, err := compileExprAt(cc, v.Operand, offset)
		if err != nil {
			return nil, err
		}
		op, ok := unOps[v.Op]
		if !ok {
			return nil, &diagnostic.UnsupportedConstruct{Pos: v.Pos(), What: "unary operator " + v.Op}
		}
		return trie.Map(sub, func(_ trie.Path, a *term.Node) *term.Node {
			n, err := op(cc.Store, a)
			if err != nil {
				return cc.Store.MkBoolVal(false)
			}
			return n
		}), nil

	case *ast.Ite:
		cond, err := compileExprAt(cc, v.Cond, offset)
		if err != nil {
			return nil, err
		}
		condLeaf, ok := cond.Find(trie.Path{})
		if !ok {
			return nil, &diagnostic.UnsupportedConstruct{Pos: v.Pos(), What: "structured ite condition"}
		}
		a, err := compileExprAt(cc, v.Then, offset)
		if err != nil {
			return nil, err
		}
		b, err := compileExprAt(cc, v.Else, offset)
		if err != nil {
			return nil, err
		}
		return trie.Map2(a, b, func(_ trie.Path, x, y *term.Node) *term.Node {
			n, err := cc.Store.MkIte(condLeaf, x, y)
			if err != nil {
				return x
			}
			return n
		})

	case *ast.Pre:
		return compileExprAt(cc, v.Operand, offset-1)

	case *ast.Arrow:
		i, err := compileExprAt(cc, v.Init, offset)
		if err != nil {
			return nil, err
		}
		st, err := compileExprAt(cc, v.Step, offset)
		if err != nil {
			return nil, err
		}
		if cc.InitFlag == nil {
			return nil, &diagnostic.InvariantViolation{Pos: v.Pos(), Summary: "arrow compiled with no init-flag state variable bound"}
		}
		initFlag := cc.InitFlag.Term(cc.Store, offset)
		return trie.Map2(i, st, func(_ trie.Path, a, b *term.Node) *term.Node {
			n, err := cc.Store.MkIte(initFlag, a, b)
			if err != nil {
				return b
			}
			return n
		})

	default:
		return nil, &diagnostic.UnsupportedConstruct{Pos: e.Pos(), What: "equation RHS shape"}
	}
}

type binOpFn func(*term.Store, *term.Node, *term.Node) (*term.Node, error)
type unOpFn func(*term.Store, *term.Node) (*term.Node, error)

func mkAnd2(s *term.Store, a, b *term.Node) (*term.Node, error) { return s.MkAnd(a, b) }
func mkOr2(s *term.Store, a, b *term.Node) (*term.Node, error)  { return s.MkOr(a, b) }

var binOps = map[string]binOpFn{
	"+": (*term.Store).MkAdd, "-": (*term.Store).MkSub, "*": (*term.Store).MkMul,
	"/": (*term.Store).MkRealDiv, "div": (*term.Store).MkIntDiv, "mod": (*term.Store).MkMod,
	"<": (*term.Store).MkLt, "<=": (*term.Store).MkLeq, ">": (*term.Store).MkGt, ">=": (*term.Store).MkGeq,
	"=": (*term.Store).MkEq, "and": mkAnd2, "or": mkOr2,
	"=>": (*term.Store).MkImplies, "xor": (*term.Store).MkXor,
}

var unOps = map[string]unOpFn{
	"not": (*term.Store).MkNot, "-": (*term.Store).MkUMinus,
}

// ExpandEquation implements spec.md §4.5 step 7's tuple expansion: walk
// LHS and RHS tries simultaneously via Fold2, emitting one scalar
// equation per leaf. On a shape mismatch it retries once with
// ListIndex prefixes stripped from both sides (the "LHS has an already
// flattened ListIndex prefix" tie-break) before giving up.
func ExpandEquation(lhs *trie.Trie[*StateVariable], rhs *trie.Trie[*term.Node]) ([]EquationRecord, error) {
	recs, err := expandOnce(lhs, rhs)
	if err == nil {
		return recs, nil
	}
	stripped, sErr := expandOnce(trie.StripListPrefix(lhs), trie.StripListPrefix(rhs))
	if sErr == nil {
		return stripped, nil
	}
	return nil, err
}

func expandOnce(lhs *trie.Trie[*StateVariable], rhs *trie.Trie[*term.Node]) ([]EquationRecord, error) {
	return trie.Fold2(lhs, rhs, func(_ trie.Path, sv *StateVariable, rhsNode *term.Node, acc []EquationRecord) []EquationRecord {
		return append(acc, EquationRecord{LHS: EquationBound{StateVar: sv}, RHS: rhsNode})
	}, nil)
}

// PreferredBound implements the numeral-bound tie-break: when both
// bounds are known integer literals, the smaller is preferred; when
// exactly one is numeric, it wins; when neither is numeric, the LHS
// bound is preferred without attempting to prove equality (spec.md §9
// open question 1 — documented false-positive tolerance, not a bug).
func PreferredBound(lhsBound, rhsBound *term.Node) *term.Node {
	lSym, lOK := scalarIntSymbol(lhsBound)
	rSym, rOK := scalarIntSymbol(rhsBound)
	if lOK && rOK {
		lv, _ := lSym.IntValue()
		rv, _ := rSym.IntValue()
		if rv.Cmp(lv) < 0 {
			return rhsBound
		}
		return lhsBound
	}
	if rOK && !lOK {
		return rhsBound
	}
	return lhsBound
}

func scalarIntSymbol(n *term.Node) (*term.Symbol, bool) {
	if n == nil {
		return nil, false
	}
	sym := n.Symbol()
	if sym == nil {
		return nil, false
	}
	if _, ok := sym.IntValue(); !ok {
		return nil, false
	}
	return sym, true
}
