package nodegen

import (
	"sync/atomic"

	"lustrecore/internal/ast"
	"lustrecore/internal/trie"
)

// callIDCounter mints the process-wide monotone call_id (spec.md §4.5
// step 6), separate from the normalizer's name counter since it labels
// call records rather than source identifiers.
var callIDCounter uint64

func nextCallID() uint64 { return atomic.AddUint64(&callIDCounter, 1) }

// CallRecord abstracts one node-call site into its typed input/output
// state variables, grounded on internal/ethereum/state/call.go's
// call-graph record (caller/callee/args/return-slots, generalized from
// an EVM CALL opcode's stack frame to a dataflow node instantiation).
type CallRecord struct {
	CallID     uint64
	Pos        ast.Position
	Callee     string
	Conditions []*StateVariable // activation, restart, in that order when present
	Inputs     *trie.Trie[*StateVariable]
	Oracles    []*StateVariable
	Outputs    *trie.Trie[*StateVariable]
	Defaults   []ast.Expr // nil when the call has no defaults clause
	Inlined    bool
}

// NewCallRecord assembles a call record with a freshly minted call_id.
func NewCallRecord(pos ast.Position, callee string, conditions []*StateVariable, inputs *trie.Trie[*StateVariable], oracles []*StateVariable, outputs *trie.Trie[*StateVariable], defaults []ast.Expr) *CallRecord {
	return &CallRecord{
		CallID:     nextCallID(),
		Pos:        pos,
		Callee:     callee,
		Conditions: conditions,
		Inputs:     inputs,
		Oracles:    oracles,
		Outputs:    outputs,
		Defaults:   defaults,
	}
}
