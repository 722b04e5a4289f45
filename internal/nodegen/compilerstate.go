package nodegen

import (
	"sync"

	"lustrecore/internal/term"
)

// CompilerState is the persistent, process-wide accumulator across an
// entire compilation run: every node compiled so far, the type-alias
// map, and the constant/bounds/global-constraint bookkeeping needed to
// resolve later nodes against earlier ones (spec.md §3 "Compiler
// State"). Grounded on internal/ethereum/state/world_state.go's
// WorldState — there, a process-wide accumulator of every account and
// its balance/code/storage across a chain of transactions; here, the
// same accumulate-across-units shape generalized from accounts to
// compiled node records.
type CompilerState struct {
	mu sync.Mutex

	// Nodes newest-first, matching spec.md §3's stated order; later
	// lookups by name still scan the whole slice since a node can only
	// call callees compiled earlier in program order.
	Nodes []*NodeRecord

	TypeAliases     map[string]*term.Type
	FreeConstants   []*StateVariable
	OtherConstants  map[string]*term.Node
	StateVarBounds  map[string]*term.Node
	GlobalConstraints []*term.Node
}

// NewCompilerState returns an empty accumulator, ready for the
// generator to push node records onto as it compiles a program.
func NewCompilerState() *CompilerState {
	return &CompilerState{
		TypeAliases:    make(map[string]*term.Type),
		OtherConstants: make(map[string]*term.Node),
		StateVarBounds: make(map[string]*term.Node),
	}
}

// PushNode prepends rec to Nodes, keeping the "newest first" ordering
// spec.md §3 specifies.
func (cs *CompilerState) PushNode(rec *NodeRecord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.Nodes = append([]*NodeRecord{rec}, cs.Nodes...)
}

// LookupNode finds a previously compiled node record by name.
func (cs *CompilerState) LookupNode(name string) (*NodeRecord, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, n := range cs.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// InternConstant records or reuses a propagated constant's defining
// term under name, implementing spec.md §4.5's "constant propagation:
// untyped/typed constants that are not ghost are kept in
// other_constants and inlined on identifier lookup."
func (cs *CompilerState) InternConstant(name string, def *term.Node) *term.Node {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if existing, ok := cs.OtherConstants[name]; ok {
		return existing
	}
	cs.OtherConstants[name] = def
	return def
}

// RecordBound associates sv with its known bounds term, used by the
// array-variable-index compilation step.
func (cs *CompilerState) RecordBound(sv *StateVariable, bound *term.Node) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.StateVarBounds[sv.Identity()] = bound
}

// AddGlobalConstraint appends a constraint that holds across every
// node instance (e.g. a global free-constant range restriction).
func (cs *CompilerState) AddGlobalConstraint(c *term.Node) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.GlobalConstraints = append(cs.GlobalConstraints, c)
}
