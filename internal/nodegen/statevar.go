// Package nodegen lowers a normalized node declaration, its typing
// context, and its generated-identifiers table into the intermediate
// node graph (spec.md §4.5). Package layout grounded on
// internal/ethereum/state: an EVM WorldState/Account/MachineState
// accumulator pattern, generalized from contract-execution state to
// dataflow-node-compilation state.
package nodegen

import (
	"fmt"
	"strings"
	"sync"

	"lustrecore/internal/term"
)

// SourceKind classifies why a state variable exists (spec.md §3's
// "state-var → source kind" map).
type SourceKind int

const (
	SourceInput SourceKind = iota
	SourceOutput
	SourceLocal
	SourceOracle
	SourceCall
	SourceGhostConst
	SourceGhostVar
	SourceHistory
	SourceGenerated
)

func (k SourceKind) String() string {
	switch k {
	case SourceInput:
		return "input"
	case SourceOutput:
		return "output"
	case SourceLocal:
		return "local"
	case SourceOracle:
		return "oracle"
	case SourceCall:
		return "call"
	case SourceGhostConst:
		return "ghost_const"
	case SourceGhostVar:
		return "ghost_var"
	case SourceHistory:
		return "history"
	case SourceGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// StateVariable is a named, typed entity with an identity of
// (Name, Scope) — created at most once per identity (spec.md §3).
type StateVariable struct {
	Name       string
	Scope      []string
	Type       *term.Type
	IsInput    bool
	IsConst    bool
	ForInvGen  bool
}

// Identity returns the string key the state-variable table interns on:
// scope segments joined by "." followed by the bare name.
func (sv *StateVariable) Identity() string {
	return strings.Join(sv.Scope, ".") + "::" + sv.Name
}

func (sv *StateVariable) ref() term.StateVarRef {
	return term.StateVarRef{Name: sv.Name, Scope: strings.Join(sv.Scope, ".")}
}

// Term returns the term-level reference to sv sampled at the given
// instant offset (0 = current instant), or as a constant if sv.IsConst.
func (sv *StateVariable) Term(s *term.Store, offset int) *term.Node {
	if sv.IsConst {
		return s.MkVar(s.ConstStateVar(sv.ref(), sv.Type))
	}
	return s.MkVar(s.StateInstanceVar(sv.ref(), offset, sv.Type))
}

// Table is the process for one compilation: the set of state variables
// created so far, keyed by identity, so that a repeated request for the
// same (name, scope) returns the existing variable rather than minting
// a duplicate (spec.md §3's state-variable-uniqueness invariant).
type Table struct {
	mu  sync.Mutex
	byID map[string]*StateVariable
}

// NewTable returns an empty state-variable table.
func NewTable() *Table {
	return &Table{byID: make(map[string]*StateVariable)}
}

// GetOrCreate returns the existing state variable at (name, scope) if
// one exists, otherwise creates and records it.
func (t *Table) GetOrCreate(name string, scope []string, typ *term.Type, isInput, isConst, forInvGen bool) *StateVariable {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := strings.Join(scope, ".") + "::" + name
	if existing, ok := t.byID[key]; ok {
		return existing
	}
	sv := &StateVariable{Name: name, Scope: append([]string(nil), scope...), Type: typ, IsInput: isInput, IsConst: isConst, ForInvGen: forInvGen}
	t.byID[key] = sv
	return sv
}

// Len reports how many distinct state variables this table has minted.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byID)
}

// ScopedName joins scope segments with name for diagnostics/printing.
func ScopedName(name string, scope []string) string {
	if len(scope) == 0 {
		return name
	}
	return fmt.Sprintf("%s.%s", strings.Join(scope, "."), name)
}
