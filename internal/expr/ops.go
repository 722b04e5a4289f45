package expr

import "lustrecore/internal/term"

// Pointwise lifts of internal/term's constructors: each applies the
// underlying term constructor once to the init components and once to
// the step components, mirroring the source operators one-to-one as
// spec.md §4.3 requires. None of these need array coalescing — only
// MkArrow and MkIte (expr.go) do.

func lift1(s *term.Store, f func(*term.Node) (*term.Node, error), a Expr) (Expr, error) {
	init, err := f(a.Init)
	if err != nil {
		return Expr{}, err
	}
	step, err := f(a.Step)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: init.Type()}, nil
}

func lift2(s *term.Store, f func(*term.Node, *term.Node) (*term.Node, error), a, b Expr) (Expr, error) {
	init, err := f(a.Init, b.Init)
	if err != nil {
		return Expr{}, err
	}
	step, err := f(a.Step, b.Step)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: init.Type()}, nil
}

func liftVariadic(s *term.Store, f func(...*term.Node) (*term.Node, error), operands []Expr) (Expr, error) {
	inits := make([]*term.Node, len(operands))
	steps := make([]*term.Node, len(operands))
	for i, o := range operands {
		inits[i], steps[i] = o.Init, o.Step
	}
	init, err := f(inits...)
	if err != nil {
		return Expr{}, err
	}
	step, err := f(steps...)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: init.Type()}, nil
}

// Boolean connectives.

func MkNot(s *term.Store, a Expr) (Expr, error) { return lift1(s, s.MkNot, a) }
func MkAnd(s *term.Store, operands ...Expr) (Expr, error) {
	return liftVariadic(s, s.MkAnd, operands)
}
func MkOr(s *term.Store, operands ...Expr) (Expr, error) {
	return liftVariadic(s, s.MkOr, operands)
}
func MkImplies(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkImplies, a, b) }
func MkXor(s *term.Store, a, b Expr) (Expr, error)     { return lift2(s, s.MkXor, a, b) }
func MkDistinct(s *term.Store, operands ...Expr) (Expr, error) {
	return liftVariadic(s, s.MkDistinct, operands)
}
func MkEq(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkEq, a, b) }

// Arithmetic.

func MkAdd(s *term.Store, a, b Expr) (Expr, error)    { return lift2(s, s.MkAdd, a, b) }
func MkSub(s *term.Store, a, b Expr) (Expr, error)    { return lift2(s, s.MkSub, a, b) }
func MkMul(s *term.Store, a, b Expr) (Expr, error)    { return lift2(s, s.MkMul, a, b) }
func MkIntDiv(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkIntDiv, a, b) }
func MkMod(s *term.Store, a, b Expr) (Expr, error)    { return lift2(s, s.MkMod, a, b) }
func MkRealDiv(s *term.Store, a, b Expr) (Expr, error) {
	return lift2(s, s.MkRealDiv, a, b)
}
func MkUMinus(s *term.Store, a Expr) (Expr, error) { return lift1(s, s.MkUMinus, a) }

// Comparisons.

func MkLt(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkLt, a, b) }
func MkLeq(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkLeq, a, b) }
func MkGt(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkGt, a, b) }
func MkGeq(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkGeq, a, b) }

// Bit-vector operators.

func MkBVAdd(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkBVAdd, a, b) }
func MkBVSub(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkBVSub, a, b) }
func MkBVMul(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkBVMul, a, b) }
func MkBVUdiv(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkBVUdiv, a, b) }
func MkBVSdiv(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkBVSdiv, a, b) }
func MkBVUrem(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkBVUrem, a, b) }
func MkBVSrem(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkBVSrem, a, b) }
func MkBVAnd(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkBVAnd, a, b) }
func MkBVOr(s *term.Store, a, b Expr) (Expr, error)   { return lift2(s, s.MkBVOr, a, b) }
func MkBVXor(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkBVXor, a, b) }
func MkBVNot(s *term.Store, a Expr) (Expr, error)     { return lift1(s, s.MkBVNot, a) }
func MkBVNeg(s *term.Store, a Expr) (Expr, error)     { return lift1(s, s.MkBVNeg, a) }
func MkBVShl(s *term.Store, a, b Expr) (Expr, error)  { return lift2(s, s.MkBVShl, a, b) }
func MkBVLshr(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkBVLshr, a, b) }
func MkBVAshr(s *term.Store, a, b Expr) (Expr, error) { return lift2(s, s.MkBVAshr, a, b) }

// Store/select (the select/push-through variant lives in expr.go as
// MkSelectAndPush; these are the plain, non-distributing forms).

func MkSelect(s *term.Store, arr, idx Expr) (Expr, error) { return lift2(s, s.MkSelect, arr, idx) }
func MkStore(s *term.Store, arr, idx, val Expr) (Expr, error) {
	init, err := s.MkStore(arr.Init, idx.Init, val.Init)
	if err != nil {
		return Expr{}, err
	}
	step, err := s.MkStore(arr.Step, idx.Step, val.Step)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: init.Type()}, nil
}

// Quantifiers. Forall/exists bind the same names at both instants;
// body must already have matching init/step shape (an Expr whose
// Init/Step were each built over BoundVar nodes of the same binder).

func MkForall(s *term.Store, names []string, body Expr) (Expr, error) {
	init, err := s.MkForall(names, body.Init)
	if err != nil {
		return Expr{}, err
	}
	step, err := s.MkForall(names, body.Step)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: s.BoolType()}, nil
}

func MkExists(s *term.Store, names []string, body Expr) (Expr, error) {
	init, err := s.MkExists(names, body.Init)
	if err != nil {
		return Expr{}, err
	}
	step, err := s.MkExists(names, body.Step)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Init: init, Step: step, Typ: s.BoolType()}, nil
}
