package ast

import "math/big"

// Expr is any source expression. Every variant embeds its Position and
// implements exprNode to close the sum type to this package.
type Expr interface {
	Pos() Position
	exprNode()
}

type Base struct{ P Position }

func (b Base) Pos() Position { return b.P }
func (Base) exprNode()       {}

// Ident references an identifier — a source variable, a node-local, an
// input/output, or (post-normalization) a fresh local/oracle/call
// output.
type Ident struct {
	Base
	Name string
}

// IntConst, RealConst, BoolConst, EnumConst are literal leaves.
type IntConst struct {
	Base
	Value *big.Int
}

type RealConst struct {
	Base
	Value *big.Rat
}

type BoolConst struct {
	Base
	Value bool
}

type EnumConst struct {
	Base
	TypeName string
	Ctor     string
}

// Pre is `pre(e)`: the previous-instant value of e.
type Pre struct {
	Base
	Operand Expr
}

// Arrow is `e1 -> e2`: e1 at the initial instant, e2 thereafter.
type Arrow struct {
	Base
	Init Expr
	Step Expr
}

// BinOp covers arithmetic, boolean, comparison, and bit-vector binary
// operators; Op names the operator the way the typed AST names it
// ("+", "-", "and", "<", "bvand", ...).
type BinOp struct {
	Base
	Op          string
	Left, Right Expr
}

// UnOp covers unary operators ("-", "not", "bvnot", ...).
type UnOp struct {
	Base
	Op      string
	Operand Expr
}

// Ite is `if c then a else b`.
type Ite struct {
	Base
	Cond, Then, Else Expr
}

// Call is a node-call expression: callee(args...).
type Call struct {
	Base
	Callee string
	Args   []Expr
}

// Condact is `condact(activate, callee(args...), defaults...)`: the
// call only ticks while activate holds, falling back to defaults
// otherwise.
type Condact struct {
	Base
	Activate Expr
	Callee   string
	Args     []Expr
	Defaults []Expr
}

// RestartEvery is `restart callee(args...) every restart_cond`.
type RestartEvery struct {
	Base
	Callee   string
	Args     []Expr
	RestartC Expr
}

// GroupExpr is a parenthesized tuple of expressions, `(e1, ..., en)`,
// used for the multiple-output side of a call site and for tuple
// literals generally.
type GroupExpr struct {
	Base
	Items []Expr
}

// StructLit is a record literal, `{field1 = e1; ...; fieldn = en}`.
type StructLit struct {
	Base
	TypeName string
	Fields   []StructLitField
}

type StructLitField struct {
	Name  string
	Value Expr
}

// ArrayDef is an array-comprehension literal, `[e(i) | i]` over a
// statically-known size; Binder names the bound index variable visible
// inside Body.
type ArrayDef struct {
	Base
	Binder string
	Size   Expr
	Body   Expr
}

// ArrayIndex is `e[i]`.
type ArrayIndex struct {
	Base
	Array Expr
	Index Expr
}

// RecordProject is `e.field`.
type RecordProject struct {
	Base
	Record Expr
	Field  string
}

// TupleProject is `e.%n` (tuple element by position).
type TupleProject struct {
	Base
	Tuple Expr
	Index int
}

// Fby is `e1 fby e2`, sugar the surface language may desugar instead to
// `e1 -> pre(e2)`; kept distinct so the normalizer can recognize and
// rewrite it without guessing at its Arrow/Pre encoding.
type Fby struct {
	Base
	First, Rest Expr
}

// Quantified is a forall/exists expression over typed binders.
type Quantified struct {
	Base
	Universal bool
	Binders   []VarDecl
	Body      Expr
}
