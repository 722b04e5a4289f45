package ast

// StructItem is the LHS of an equation: the structural shape that the
// node generator walks into a trie of state variables (spec.md §4.5
// step 7). It is distinct from Expr because an equation's LHS is never
// evaluated, only destructured.
type StructItem interface {
	Pos() Position
	structItemNode()
}

type StructBase struct{ P Position }

func (b StructBase) Pos() Position { return b.P }
func (StructBase) structItemNode() {}

// LHSIdent binds a single identifier (an output, a local, or `_` for a
// discarded equation output).
type LHSIdent struct {
	StructBase
	Name      string
	Discarded bool
}

// LHSTuple binds a parenthesized group, `(x, y) = ...`.
type LHSTuple struct {
	StructBase
	Items []StructItem
}

// LHSField projects into a record field, `r.field = ...`.
type LHSField struct {
	StructBase
	Base  StructItem
	Field string
}

// LHSArrayDef is an array-defining LHS, `a[i] = ...` under an implicit
// or explicit forall over Binder; Size is nil when the bound is
// inferred from the declared type of the array being defined.
type LHSArrayDef struct {
	StructBase
	Base   StructItem
	Binder string
	Size   Expr
}

// VarDecl declares one input, output, or local variable.
type VarDecl struct {
	Name  string
	Type  *TypeExpr
	Pos   Position
	Const bool
	Clock Expr // non-nil for a clocked local
}

// Opacity controls how transparently a node's internals may be
// inlined/inspected downstream.
type Opacity int

const (
	Opaque Opacity = iota
	Transparent
	Translucent
)

// Equation is one `lhs = rhs` source equation.
type Equation struct {
	Pos Position
	LHS StructItem
	RHS Expr
}

// Assert is a source `assert(e)`.
type Assert struct {
	Pos  Position
	Expr Expr
}

// PropertyKind distinguishes how a property was declared.
type PropertyKind int

const (
	PropertyPlain PropertyKind = iota
	PropertyNonvacuity
)

// Property is a named proof obligation, `--%PROPERTY name: e;` or a
// contract guarantee lowered to a property by the node generator.
type Property struct {
	Name string
	Expr Expr
	Pos  Position
	Kind PropertyKind
}

// ContractItem is one assume/guarantee/require/ensure clause.
type ContractItem struct {
	Name *string
	Pos  Position
	Expr Expr
	Soft bool
}

// ModeDecl is one contract mode: `mode name (require ...; ensure ...;)`.
type ModeDecl struct {
	Name     string
	Pos      Position
	Requires []ContractItem
	Ensures  []ContractItem
}

// ContractCall instantiates an imported contract at a call site,
// `(import other_contract(args) returns (outs))`, scoped under its own
// dotted contract-scope path.
type ContractCall struct {
	Name    string
	Pos     Position
	Callee  string
	Args    []Expr
	Returns []string
	Scope   []string
}

// ContractDecl is a node's full assume/guarantee/mode contract.
type ContractDecl struct {
	Pos           Position
	GhostConsts   []VarDecl
	GhostVars     []Equation
	Assumes       []ContractItem
	Guarantees    []ContractItem
	Modes         []ModeDecl
	Imports       []ContractCall
}

// NodeDecl is one top-level node or function declaration.
type NodeDecl struct {
	Name       string
	Pos        Position
	Extern     bool
	IsFunction bool
	IsMain     bool
	Opacity    Opacity
	TypeParams []string

	Inputs  []VarDecl
	Outputs []VarDecl
	Locals  []VarDecl

	Equations  []Equation
	Asserts    []Assert
	Properties []Property

	Contract *ContractDecl
}

// Program is the whole type-checked input: every node/function
// declaration, in program order. Top-level type-alias and constant
// declarations are not represented here (spec.md §1: the type checker
// and its typing context are external collaborators; Program is only
// the shape the node generator consumes).
type Program struct {
	Nodes []NodeDecl
}
