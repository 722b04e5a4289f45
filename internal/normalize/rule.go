package normalize

import "lustrecore/internal/ast"

// Rule mirrors internal/module's DetectionModule: a self-contained unit
// of rewriting hooked to one or more AST node kinds, executed by a
// Manager in registration order.
type Rule interface {
	// Kinds names the Go-type tags (ast.Ident, ast.Pre, ast.Call, ...
	// identified by KindOf) this rule fires on.
	Kinds() []string
	// Apply rewrites e (whose children have already been normalized)
	// in ctx, returning the replacement expression.
	Apply(ctx *Context, e ast.Expr) (ast.Expr, error)
}

// KindOf returns the dispatch key for e, the way the teacher dispatches
// DetectionModules by opcode mnemonic.
func KindOf(e ast.Expr) string {
	switch e.(type) {
	case *ast.Ident:
		return "Ident"
	case *ast.IntConst, *ast.RealConst, *ast.BoolConst, *ast.EnumConst:
		return "Const"
	case *ast.Pre:
		return "Pre"
	case *ast.Arrow:
		return "Arrow"
	case *ast.Fby:
		return "Fby"
	case *ast.BinOp:
		return "BinOp"
	case *ast.UnOp:
		return "UnOp"
	case *ast.Ite:
		return "Ite"
	case *ast.Call:
		return "Call"
	case *ast.Condact:
		return "Condact"
	case *ast.RestartEvery:
		return "RestartEvery"
	case *ast.GroupExpr:
		return "GroupExpr"
	case *ast.StructLit:
		return "StructLit"
	case *ast.ArrayDef:
		return "ArrayDef"
	case *ast.ArrayIndex:
		return "ArrayIndex"
	case *ast.RecordProject:
		return "RecordProject"
	case *ast.TupleProject:
		return "TupleProject"
	case *ast.Quantified:
		return "Quantified"
	default:
		return "Unknown"
	}
}

// IsAtomic reports whether e is an identifier or a constant: the two
// forms spec.md §4.4 rule 2 allows to appear directly as a pre operand
// or call argument without being lifted to a fresh local.
func IsAtomic(e ast.Expr) bool {
	switch KindOf(e) {
	case "Ident", "Const":
		return true
	default:
		return false
	}
}
