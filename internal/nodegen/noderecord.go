package nodegen

import (
	"lustrecore/internal/ast"
	"lustrecore/internal/term"
	"lustrecore/internal/trie"
)

// PropertySource distinguishes a property written directly in the
// source from one the node generator derived from a subrange or
// refinement-type constraint (spec.md §4.5 point 9's "non-original
// constraints become candidate invariants").
type PropertySource int

const (
	PropertyOriginal PropertySource = iota
	PropertyCandidate
)

// PropertyRecord is one proof obligation attached to a compiled node.
type PropertyRecord struct {
	StateVar *StateVariable
	Name     string
	Source   PropertySource
	Kind     ast.PropertyKind
}

// AssertRecord ties a source assertion's position to the state
// variable the normalizer resolved its operand to.
type AssertRecord struct {
	Pos      ast.Position
	StateVar *StateVariable
}

// EquationBound is the (state-variable, bounds) pair spec.md §3 gives
// each compiled equation's left side; Bounds is nil for an equation
// with no attached array-index bound.
type EquationBound struct {
	StateVar *StateVariable
	Bounds   *term.Node
}

// EquationRecord is one scalar equation surviving expand_tuple.
type EquationRecord struct {
	LHS EquationBound
	RHS *term.Node
}

// NodeRecord is the intermediate-node-graph artifact one compiled
// declaration contributes to the compiler state (spec.md §3 "Node
// Record"), grounded on
// internal/ethereum/state/transaction_models.go's per-transaction
// receipt shape: a flat record of everything one execution unit
// produced, generalized from a transaction's logs/gas/status to a
// node's equations/calls/contract/properties.
type NodeRecord struct {
	Name       string
	Extern     bool
	Opacity    ast.Opacity
	TypeArgs   []*term.Type
	Instance   *StateVariable
	InitFlag   *StateVariable
	Inputs     *trie.Trie[*StateVariable]
	Outputs    *trie.Trie[*StateVariable]
	Locals     *trie.Trie[*StateVariable]
	Oracles    []*StateVariable
	Equations  []EquationRecord
	Calls      []*CallRecord
	Asserts    []AssertRecord
	Properties []PropertyRecord
	Contract   *Contract // nil when the node declares no contract

	IsMain     bool
	IsFunction bool

	// Source maps (spec.md §3's "source maps").
	SourceKindOf   map[string]SourceKind     // state-var identity -> why it exists
	OracleCloses   map[string]*StateVariable // oracle identity -> the state-var it closes over, when any
	DefiningExpr   map[string]*term.Node     // state-var identity -> its defining term, when known

	AssumptionVars []*StateVariable
	HistoryVars    map[*term.Type][]*StateVariable
}

// NewNodeRecord returns a node record with its maps initialized, ready
// for the generator to fill in as it walks one declaration.
func NewNodeRecord(name string) *NodeRecord {
	return &NodeRecord{
		Name:         name,
		SourceKindOf: make(map[string]SourceKind),
		OracleCloses: make(map[string]*StateVariable),
		DefiningExpr: make(map[string]*term.Node),
		HistoryVars:  make(map[*term.Type][]*StateVariable),
	}
}

// RecordSource tags sv's reason for existing, for downstream
// diagnostics and dependency-graph classification.
func (n *NodeRecord) RecordSource(sv *StateVariable, kind SourceKind) {
	n.SourceKindOf[sv.Identity()] = kind
}
