package nodegen

import (
	"lustrecore/internal/normalize"
	"lustrecore/internal/term"
)

// CompileContext bundles everything one node's compilation reads from
// or writes to: the shared term store, the process-wide state-variable
// table, this node's identifier scope, its normalizer output, the
// typing context used to resolve declared types, and the type-alias
// map in scope. Grounded on internal/ethereum/state/global_state.go's
// role as the single object threaded through instruction execution,
// generalized from EVM execution state to node-compilation state.
type CompileContext struct {
	Store     *term.Store
	Vars      *Table
	Idents    *IdentMap
	Generated *normalize.GeneratedIdentifiers
	Typing    TypingContext
	Aliases   map[string]*term.Type
	NodeName  string
	Scope     []string

	// InitFlag is the owning node record's init-flag state variable
	// (spec.md §3 "Node Record"), consulted by equation.go's Arrow case
	// to select the init branch at the first instant and the step
	// branch thereafter. Set once, in step 2, before any expression is
	// compiled.
	InitFlag *StateVariable
}

// NewCompileContext starts a fresh compilation context for one node,
// sharing the store and state-variable table across the whole run.
func NewCompileContext(s *term.Store, vars *Table, typing TypingContext, aliases map[string]*term.Type, nodeName string) *CompileContext {
	return &CompileContext{
		Store:     s,
		Vars:      vars,
		Idents:    NewIdentMap(),
		Generated: normalize.NewGeneratedIdentifiers(),
		Typing:    typing,
		Aliases:   aliases,
		NodeName:  nodeName,
		Scope:     []string{nodeName},
	}
}

// WithScope returns a copy of cc with an extra scope segment pushed and
// a fresh, empty identifier map. instantiateContractImport uses it to
// compile an imported contract's body apart from the importer's own
// identifier bindings.
func (cc *CompileContext) WithScope(segment string) *CompileContext {
	cp := *cc
	cp.Scope = append(append([]string(nil), cc.Scope...), segment)
	cp.Idents = NewIdentMap()
	return &cp
}
