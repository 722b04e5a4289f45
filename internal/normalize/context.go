package normalize

import "lustrecore/internal/ast"

// Context carries the normalizer's per-node state: the pre-guard
// currently in scope (spec.md §9: "pre-guard passing as an explicit
// optional continuation argument, not ambient state") and the
// accumulating GeneratedIdentifiers table for the node being
// normalized.
type Context struct {
	NodeName  string
	Guard     ast.Expr // nil when no enclosing Arrow guards this position
	Generated *GeneratedIdentifiers
}

// NewContext starts a fresh normalization context for one node.
func NewContext(nodeName string) *Context {
	return &Context{NodeName: nodeName, Generated: NewGeneratedIdentifiers()}
}

// WithGuard returns a copy of ctx with Guard set to guard, used when
// recursing into the step branch of an Arrow.
func (ctx *Context) WithGuard(guard ast.Expr) *Context {
	cp := *ctx
	cp.Guard = guard
	return &cp
}
