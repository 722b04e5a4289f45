package nodegen

import (
	"lustrecore/internal/ast"
	"lustrecore/internal/term"
)

// ContractSVarKind classifies a contract-attached state variable
// (spec.md §3 "Contract"'s eight kinds).
type ContractSVarKind int

const (
	KindAssumption ContractSVarKind = iota
	KindWeakAssumption
	KindGuarantee
	KindWeakGuarantee
	KindRequire
	KindEnsure
	KindGuaranteeOneModeActive
	KindGuaranteeModeImplication
)

func (k ContractSVarKind) String() string {
	switch k {
	case KindAssumption:
		return "assumption"
	case KindWeakAssumption:
		return "weak_assumption"
	case KindGuarantee:
		return "guarantee"
	case KindWeakGuarantee:
		return "weak_guarantee"
	case KindRequire:
		return "require"
	case KindEnsure:
		return "ensure"
	case KindGuaranteeOneModeActive:
		return "guarantee_one_mode_active"
	case KindGuaranteeModeImplication:
		return "guarantee_mode_implication"
	default:
		return "unknown"
	}
}

// ContractSVar is one assume/guarantee/require/ensure item lowered to
// its backing state variable.
type ContractSVar struct {
	Pos      ast.Position
	Index    int
	Name     *string
	StateVar *StateVariable
	Scope    []string // the defining scope, for a mode's require/ensure clauses
	Kind     ContractSVarKind
	Soft     bool // Guarantee/WeakGuarantee only
}

// Mode is one compiled contract mode.
type Mode struct {
	Name     string
	Pos      ast.Position
	Path     []string // scope ++ [Name], the dotted mode path
	Requires []ContractSVar
	Ensures  []ContractSVar
}

// Contract is a node's fully compiled assume/guarantee/mode structure
// (spec.md §3 "Contract"), grounded on
// internal/ethereum/state/constraints.go's path-constraint accumulator:
// there, a sequence of boolean predicates gathered along one execution
// path; here, the same accumulation shape generalized to a node's
// assumption/guarantee/mode obligations.
type Contract struct {
	Assumes    []ContractSVar
	Sofar      *StateVariable // sofar = assumes_conj -> (assumes_conj && pre sofar)
	Guarantees []ContractSVar
	Modes      []Mode
}

// CompileSofar builds and records the defining equation for the
// contract's sofar accumulator (spec.md §4.5 step 8): `sofar =
// assumes_conj -> (assumes_conj && pre sofar)`. Compiled directly as
// an ite on the node's init-flag rather than through equation.go's
// Arrow case, since sofar is synthesized here rather than walked from
// an ast.Arrow node. Returns the (state-var, defining-term) pair the
// caller stores in the owning node's DefiningExpr map.
func CompileSofar(s *term.Store, vars *Table, scope []string, initFlag *StateVariable, assumesConj *term.Node) (*StateVariable, *term.Node, error) {
	boolTy := s.BoolType()
	sofar := vars.GetOrCreate("sofar", scope, boolTy, false, false, false)
	preSofar := sofar.Term(s, -1)
	conjAndPre, err := s.MkAnd(assumesConj, preSofar)
	if err != nil {
		return nil, nil, err
	}
	def, err := s.MkIte(initFlag.Term(s, 0), assumesConj, conjAndPre)
	if err != nil {
		return nil, nil, err
	}
	return sofar, def, nil
}
