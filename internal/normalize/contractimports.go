package normalize

import "lustrecore/internal/ast"

// CollectContractCalls implements the half of spec.md §4.4's last
// paragraph that the structural rule walk cannot reach: a contract's
// `import` clauses are not expressions, so no Rule ever sees them.
// Called once per node, directly against the (already-normalized)
// contract declaration, it records one ContractCallInstantiation per
// import, scoped under scopeBase, for the node generator's step 4 to
// consume.
func CollectContractCalls(scopeBase []string, decl *ast.ContractDecl, gen *GeneratedIdentifiers) {
	if decl == nil {
		return
	}
	for _, imp := range decl.Imports {
		scope := append(append([]string(nil), scopeBase...), imp.Scope...)
		gen.ContractCalls = append(gen.ContractCalls, ContractCallInstantiation{
			Name:    imp.Name,
			Callee:  imp.Callee,
			Scope:   scope,
			Args:    imp.Args,
			Returns: imp.Returns,
		})
	}
}
