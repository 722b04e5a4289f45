package normalize

import "lustrecore/internal/ast"

// OracleEntry records one fresh oracle the pre-guarding rule introduced:
// either a plain unconstrained constant (SeedExpr nil) or one that
// closes over a pre-existing expression (SeedExpr non-nil), per
// spec.md §4.5 step 5's "oracles that close over a pre-existing state
// variable".
type OracleEntry struct {
	Name     string
	Type     *ast.TypeExpr
	SeedExpr ast.Expr
}

// CallEntry records one call lifted to an expression by rule 3
// (spec.md §4.4 rule 3).
type CallEntry struct {
	Pos        ast.Position
	Outputs    []string
	Activation ast.Expr
	Restart    ast.Expr
	Callee     string
	Args       []ast.Expr
	Defaults   []ast.Expr
}

// ContractCallInstantiation records one contract import instantiation
// site discovered while normalizing a node's contract (spec.md §4.5
// step 4). Returns names the importer's identifiers that receive the
// imported contract's formal outputs, positionally, mirroring Args.
type ContractCallInstantiation struct {
	Name    string
	Callee  string
	Scope   []string
	Args    []ast.Expr
	Returns []string
}

// GeneratedIdentifiers is the per-node side table the normalizer
// produces alongside the rewritten AST (spec.md §3 "Generated
// Identifiers").
type GeneratedIdentifiers struct {
	Locals map[string]ast.Expr
	Oracles []OracleEntry
	Calls   []CallEntry

	SubrangeConstraints   []ast.Equation
	RefinementConstraints []ast.Equation
	Assertions            []ast.Assert
	HistoryVars           []ast.VarDecl
	Equations             []ast.Equation
	ArrayLiteralVars      []ast.VarDecl
	NonvacuityProperties  []ast.Property
	ContractCalls         []ContractCallInstantiation
}

// NewGeneratedIdentifiers returns an empty table ready to accumulate
// one node's normalization output.
func NewGeneratedIdentifiers() *GeneratedIdentifiers {
	return &GeneratedIdentifiers{Locals: make(map[string]ast.Expr)}
}

// BindLocal records a fresh local bound to defining, returning its
// freshly minted name.
func (g *GeneratedIdentifiers) BindLocal(defining ast.Expr) string {
	name := Fresh(KindLocal)
	g.Locals[name] = defining
	return name
}
